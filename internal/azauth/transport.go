// ABOUTME: HTTP transport that adds api-version and Azure auth to outbound requests
// ABOUTME: Lets OpenAI-compatible clients talk to Azure-hosted inference endpoints
package azauth

import (
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// APIKeyHeader is the header Azure services read static keys from
const APIKeyHeader = "api-key"

// Transport decorates requests with an api-version query parameter and either
// a bearer token from Credential or a static APIKey. Credential wins when both are set.
type Transport struct {
	Base       http.RoundTripper
	APIVersion string
	Credential azcore.TokenCredential
	Scopes     []string
	APIKey     string
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if t.APIVersion != "" {
		q := r.URL.Query()
		q.Set("api-version", t.APIVersion)
		r.URL.RawQuery = q.Encode()
	}

	switch {
	case t.Credential != nil:
		tok, err := t.Credential.GetToken(r.Context(), policy.TokenRequestOptions{Scopes: t.Scopes})
		if err != nil {
			return nil, fmt.Errorf("acquiring token for %v: %w", t.Scopes, err)
		}
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	case t.APIKey != "":
		r.Header.Del("Authorization")
		r.Header.Set(APIKeyHeader, t.APIKey)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}
