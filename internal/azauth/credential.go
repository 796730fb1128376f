// ABOUTME: Azure credential helpers shared by the search and chat clients
// ABOUTME: Wraps DefaultAzureCredential and defines the token scopes each service expects
package azauth

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Token scopes for the two hosted services
const (
	SearchScope    = "https://search.azure.com/.default"
	CognitiveScope = "https://cognitiveservices.azure.com/.default"
)

// NewDefaultCredential returns the environment/managed-identity/CLI credential chain.
// Token caching and refresh happen inside the returned credential.
func NewDefaultCredential() (azcore.TokenCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("creating default azure credential: %w", err)
	}
	return cred, nil
}
