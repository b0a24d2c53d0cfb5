package usecase

import (
	"context"

	"keeper/internal/domain/entity"
)

// OAuthCallbackInput carries the query parameters of a provider callback.
type OAuthCallbackInput struct {
	Provider entity.ProviderType
	Code     string
	State    string
}

// OAuthUsecase drives the authorization code flow and maps provider
// profiles to local accounts.
type OAuthUsecase interface {
	// Begin returns the provider consent URL for a fresh login attempt.
	Begin(ctx context.Context, provider entity.ProviderType) (string, error)

	// Complete verifies the callback and signs the user in.
	Complete(ctx context.Context, input OAuthCallbackInput) (*AuthOutput, error)

	// HandleOAuthUser finds, links or creates the account behind profile.
	HandleOAuthUser(ctx context.Context, profile *entity.OAuthProfile) (*AuthOutput, error)
}
