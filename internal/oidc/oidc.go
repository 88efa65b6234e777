package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/dealcraft/dealcraft-server/pkg/middleware"
)

// firebaseIssuerBase is the issuer prefix of Firebase Authentication ID tokens.
const firebaseIssuerBase = "https://securetoken.google.com/"

// Verifier wraps the OIDC provider and token verifier
type Verifier struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// NewVerifier creates a new OIDC verifier for the given issuer and client ID.
// ctx is kept by the provider for key set refreshes and should outlive the verifier.
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	return &Verifier{provider: provider, verifier: verifier}, nil
}

// Verify verifies the provided raw ID token using the provided context and returns a middleware.Token
func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}

// FirebaseIssuer returns the issuer URL of ID tokens minted for a Firebase project.
// The token audience is the project id itself.
func FirebaseIssuer(projectID string) string {
	return firebaseIssuerBase + projectID
}

// ProjectIDFromServiceAccount reads project_id from a service-account key file.
func ProjectIDFromServiceAccount(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read service account: %w", err)
	}
	var sa struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(b, &sa); err != nil {
		return "", fmt.Errorf("parse service account: %w", err)
	}
	if strings.TrimSpace(sa.ProjectID) == "" {
		return "", fmt.Errorf("service account %s has no project_id", path)
	}
	return sa.ProjectID, nil
}
