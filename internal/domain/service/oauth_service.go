package service

import (
	"context"

	"keeper/internal/domain/entity"
)

// OAuthProvider runs the authorization code flow against one identity provider.
type OAuthProvider interface {
	// Name identifies the provider in routes and in the users table.
	Name() entity.ProviderType

	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for the user's profile.
	Exchange(ctx context.Context, code string) (*entity.OAuthProfile, error)
}

// StateSigner issues and checks the opaque state value round-tripped
// through the provider during an OAuth login.
type StateSigner interface {
	// Sign returns a state bound to provider.
	Sign(provider entity.ProviderType) (string, error)

	// Verify fails unless state was signed for provider and has not expired.
	Verify(state string, provider entity.ProviderType) error
}
