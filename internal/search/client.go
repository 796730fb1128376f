// ABOUTME: Azure AI Search client issuing semantic queries over the azcore pipeline
// ABOUTME: Authenticates with an Entra ID token or an api-key header
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/harper/searchqa/internal/azauth"
	"github.com/harper/searchqa/internal/models"
)

const (
	moduleName    = "searchqa/search"
	moduleVersion = "v0.1.0"

	// QueryTypeSemantic asks the service to rerank with its semantic model
	QueryTypeSemantic = "semantic"
)

// Options configures a Client
type Options struct {
	Endpoint       string
	IndexName      string
	SemanticConfig string
	APIVersion     string

	// Credential is used when set; otherwise APIKey is sent in the api-key header
	Credential azcore.TokenCredential
	APIKey     string

	ClientOptions *policy.ClientOptions
}

// Client runs semantic searches against a single index
type Client struct {
	pipeline       runtime.Pipeline
	endpoint       string
	indexName      string
	semanticConfig string
	apiVersion     string
}

// NewClient builds the request pipeline for the configured index
func NewClient(opts Options) (*Client, error) {
	if opts.Credential == nil && opts.APIKey == "" {
		return nil, errors.New("search: a credential or API key is required")
	}

	// Local emulators and test servers speak plain HTTP
	insecure := strings.HasPrefix(strings.ToLower(opts.Endpoint), "http://")

	var authPolicy policy.Policy
	if opts.Credential != nil {
		authPolicy = runtime.NewBearerTokenPolicy(opts.Credential, []string{azauth.SearchScope}, &policy.BearerTokenOptions{
			InsecureAllowCredentialWithHTTP: insecure,
		})
	} else {
		authPolicy = runtime.NewKeyCredentialPolicy(azcore.NewKeyCredential(opts.APIKey), azauth.APIKeyHeader, &runtime.KeyCredentialPolicyOptions{
			InsecureAllowCredentialWithHTTP: insecure,
		})
	}

	pl := runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{
		PerRetry: []policy.Policy{authPolicy},
	}, opts.ClientOptions)

	return &Client{
		pipeline:       pl,
		endpoint:       strings.TrimRight(opts.Endpoint, "/"),
		indexName:      opts.IndexName,
		semanticConfig: opts.SemanticConfig,
		apiVersion:     opts.APIVersion,
	}, nil
}

type searchRequest struct {
	Search                string `json:"search"`
	QueryType             string `json:"queryType"`
	SemanticConfiguration string `json:"semanticConfiguration,omitempty"`
}

type searchResponse struct {
	Value []map[string]any `json:"value"`
}

// Search posts a semantic query and returns the first page of results in ranked order
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	u := fmt.Sprintf("%s/indexes/%s/docs/search", c.endpoint, url.PathEscape(c.indexName))

	req, err := runtime.NewRequest(ctx, http.MethodPost, u)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}

	raw := req.Raw()
	q := raw.URL.Query()
	q.Set("api-version", c.apiVersion)
	raw.URL.RawQuery = q.Encode()
	raw.Header.Set("Accept", "application/json")

	body := searchRequest{
		Search:                query,
		QueryType:             QueryTypeSemantic,
		SemanticConfiguration: c.semanticConfig,
	}
	if err := runtime.MarshalAsJSON(req, body); err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	resp, err := c.pipeline.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return nil, runtime.NewResponseError(resp)
	}

	var decoded searchResponse
	if err := runtime.UnmarshalAsJSON(resp, &decoded); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	results := make([]models.SearchResult, 0, len(decoded.Value))
	for _, doc := range decoded.Value {
		r := models.SearchResult{Fields: doc}
		if v, ok := doc["@search.score"].(float64); ok {
			r.Score = v
		}
		if v, ok := doc["@search.rerankerScore"].(float64); ok {
			r.RerankerScore = v
		}
		results = append(results, r)
	}

	return results, nil
}
