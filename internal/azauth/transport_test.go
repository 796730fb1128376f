// ABOUTME: Tests for the Azure auth transport
// ABOUTME: Verifies api-version injection, bearer tokens, and api-key headers
package azauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// fakeCredential implements azcore.TokenCredential for testing
type fakeCredential struct {
	token  string
	err    error
	scopes []string
	calls  int
}

func (f *fakeCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.calls++
	f.scopes = opts.Scopes
	if f.err != nil {
		return azcore.AccessToken{}, f.err
	}
	return azcore.AccessToken{Token: f.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

type captured struct {
	auth       string
	apiKey     string
	apiVersion string
	other      string
}

func newCaptureServer(t *testing.T, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.auth = r.Header.Get("Authorization")
		got.apiKey = r.Header.Get(APIKeyHeader)
		got.apiVersion = r.URL.Query().Get("api-version")
		got.other = r.URL.Query().Get("other")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTransport_BearerToken(t *testing.T) {
	var got captured
	srv := newCaptureServer(t, &got)

	cred := &fakeCredential{token: "tok-123"}
	client := &http.Client{Transport: &Transport{
		APIVersion: "2024-05-01-preview",
		Credential: cred,
		Scopes:     []string{CognitiveScope},
	}}

	resp, err := client.Get(srv.URL + "/chat/completions?other=kept")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp.Body.Close()

	if got.auth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", got.auth)
	}
	if got.apiKey != "" {
		t.Errorf("api-key = %q, want empty", got.apiKey)
	}
	if got.apiVersion != "2024-05-01-preview" {
		t.Errorf("api-version = %q", got.apiVersion)
	}
	if got.other != "kept" {
		t.Errorf("existing query parameters should survive, got other=%q", got.other)
	}
	if len(cred.scopes) != 1 || cred.scopes[0] != CognitiveScope {
		t.Errorf("scopes = %v, want [%s]", cred.scopes, CognitiveScope)
	}
}

func TestTransport_TokenFetchedPerRequest(t *testing.T) {
	var got captured
	srv := newCaptureServer(t, &got)

	cred := &fakeCredential{token: "tok"}
	client := &http.Client{Transport: &Transport{Credential: cred, Scopes: []string{SearchScope}}}

	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		resp.Body.Close()
	}

	if cred.calls != 3 {
		t.Errorf("GetToken calls = %d, want 3", cred.calls)
	}
}

func TestTransport_APIKey(t *testing.T) {
	var got captured
	srv := newCaptureServer(t, &got)

	client := &http.Client{Transport: &Transport{APIKey: "secret"}}

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set("Authorization", "Bearer should-be-dropped")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()

	if got.apiKey != "secret" {
		t.Errorf("api-key = %q, want secret", got.apiKey)
	}
	if got.auth != "" {
		t.Errorf("Authorization = %q, want empty", got.auth)
	}
	if got.apiVersion != "" {
		t.Errorf("api-version = %q, want empty when unset", got.apiVersion)
	}
}

func TestTransport_TokenError(t *testing.T) {
	var got captured
	srv := newCaptureServer(t, &got)

	client := &http.Client{Transport: &Transport{Credential: &fakeCredential{err: errors.New("no identity")}}}

	if _, err := client.Get(srv.URL); err == nil {
		t.Fatal("expected error when token acquisition fails")
	}
}

func TestTransport_DoesNotMutateOriginalRequest(t *testing.T) {
	var got captured
	srv := newCaptureServer(t, &got)

	tr := &Transport{APIVersion: "v1", APIKey: "k"}
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/path", nil)

	resp, err := tr.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	resp.Body.Close()

	if req.URL.RawQuery != "" {
		t.Errorf("original RawQuery = %q, want empty", req.URL.RawQuery)
	}
	if req.Header.Get(APIKeyHeader) != "" {
		t.Error("original request headers should be untouched")
	}
}
