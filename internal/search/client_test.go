// ABOUTME: Tests for the Azure AI Search client against an httptest server
// ABOUTME: Verifies request shape, auth headers, result decoding, and error surfacing
package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

type fakeCredential struct {
	token string
}

func (f *fakeCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: f.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

type recordedRequest struct {
	method     string
	path       string
	apiVersion string
	apiKey     string
	auth       string
	body       searchRequest
}

func newSearchServer(t *testing.T, rec *recordedRequest, status int, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.apiVersion = r.URL.Query().Get("api-version")
		rec.apiKey = r.Header.Get("api-key")
		rec.auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&rec.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func noRetry() *policy.ClientOptions {
	return &policy.ClientOptions{Retry: policy.RetryOptions{MaxRetries: -1}}
}

func TestNewClient_RequiresAuth(t *testing.T) {
	if _, err := NewClient(Options{Endpoint: "https://x.search.windows.net", IndexName: "idx"}); err == nil {
		t.Error("NewClient() should fail without credential or key")
	}
}

func TestSearch_SemanticRequestWithKey(t *testing.T) {
	var rec recordedRequest
	payload := `{"value":[
		{"@search.score":2.5,"@search.rerankerScore":3.1,"id":"1","content":"Update GPU drivers"},
		{"@search.score":1.5,"id":"2","content":"Close background apps"},
		{"@search.score":0.5,"id":"3"}
	]}`
	srv := newSearchServer(t, &rec, http.StatusOK, payload)

	client, err := NewClient(Options{
		Endpoint:       srv.URL + "/",
		IndexName:      "games",
		SemanticConfig: "games-semantic",
		APIVersion:     "2024-07-01",
		APIKey:         "search-key",
		ClientOptions:  noRetry(),
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	results, err := client.Search(context.Background(), "game crashes")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if rec.method != http.MethodPost {
		t.Errorf("method = %s, want POST", rec.method)
	}
	if rec.path != "/indexes/games/docs/search" {
		t.Errorf("path = %s, want /indexes/games/docs/search", rec.path)
	}
	if rec.apiVersion != "2024-07-01" {
		t.Errorf("api-version = %s, want 2024-07-01", rec.apiVersion)
	}
	if rec.apiKey != "search-key" {
		t.Errorf("api-key = %q, want search-key", rec.apiKey)
	}
	if rec.body.Search != "game crashes" {
		t.Errorf("search = %q, want game crashes", rec.body.Search)
	}
	if rec.body.QueryType != QueryTypeSemantic {
		t.Errorf("queryType = %q, want semantic", rec.body.QueryType)
	}
	if rec.body.SemanticConfiguration != "games-semantic" {
		t.Errorf("semanticConfiguration = %q, want games-semantic", rec.body.SemanticConfiguration)
	}

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if c, ok := results[0].Content(); !ok || c != "Update GPU drivers" {
		t.Errorf("results[0].Content() = (%q, %v)", c, ok)
	}
	if results[0].Score != 2.5 || results[0].RerankerScore != 3.1 {
		t.Errorf("scores = (%v, %v), want (2.5, 3.1)", results[0].Score, results[0].RerankerScore)
	}
	if _, ok := results[2].Content(); ok {
		t.Error("results[2] has no content field")
	}
}

func TestSearch_BearerToken(t *testing.T) {
	var rec recordedRequest
	srv := newSearchServer(t, &rec, http.StatusOK, `{"value":[]}`)

	client, err := NewClient(Options{
		Endpoint:      srv.URL,
		IndexName:     "games",
		APIVersion:    "2024-07-01",
		Credential:    &fakeCredential{token: "entra-token"},
		ClientOptions: noRetry(),
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	results, err := client.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
	if rec.auth != "Bearer entra-token" {
		t.Errorf("Authorization = %q, want Bearer entra-token", rec.auth)
	}
	if rec.apiKey != "" {
		t.Errorf("api-key = %q, want empty", rec.apiKey)
	}
	if rec.body.SemanticConfiguration != "" {
		t.Errorf("semanticConfiguration = %q, want omitted", rec.body.SemanticConfiguration)
	}
}

func TestSearch_ErrorStatus(t *testing.T) {
	var rec recordedRequest
	srv := newSearchServer(t, &rec, http.StatusForbidden, `{"error":{"code":"Forbidden","message":"no access"}}`)

	client, err := NewClient(Options{
		Endpoint:      srv.URL,
		IndexName:     "games",
		APIVersion:    "2024-07-01",
		APIKey:        "bad",
		ClientOptions: noRetry(),
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Search(context.Background(), "q")
	if err == nil {
		t.Fatal("Search() should fail on 403")
	}

	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("error = %T, want *azcore.ResponseError", err)
	}
	if respErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", respErr.StatusCode)
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	var rec recordedRequest
	srv := newSearchServer(t, &rec, http.StatusOK, `{"value": not-json`)

	client, err := NewClient(Options{
		Endpoint:      srv.URL,
		IndexName:     "games",
		APIKey:        "k",
		ClientOptions: noRetry(),
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := client.Search(context.Background(), "q"); err == nil {
		t.Error("Search() should fail on malformed JSON")
	}
}
