// Package google implements the Google sign-in provider on top of OpenID Connect.
package google

import (
	"context"
	"log/slog"
	"strings"

	"keeper/config"
	"keeper/internal/domain/entity"
	"keeper/internal/domain/service"
	"keeper/internal/errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/fx"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// Endpoints locates the OpenID provider. Tests point it at a local issuer.
type Endpoints struct {
	Issuer  string
	OAuth2  oauth2.Endpoint
	JWKSURL string
}

// DefaultEndpoints are Google's production endpoints.
var DefaultEndpoints = Endpoints{
	Issuer:  "https://accounts.google.com",
	OAuth2:  googleoauth.Endpoint,
	JWKSURL: "https://www.googleapis.com/oauth2/v3/certs",
}

type idTokenClaims struct {
	Subject           string `json:"sub"`
	Email             string `json:"email"`
	EmailVerified     bool   `json:"email_verified"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
}

// Provider runs the authorization code flow and verifies the returned ID token.
type Provider struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
	logger      *slog.Logger
}

// Params defines the dependencies for the fx-provided Google provider.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// Provide registers the Google provider when client credentials are configured.
func Provide(params Params) []service.OAuthProvider {
	cfg := params.Config.OAuth.Google
	if !cfg.Enabled() {
		params.Logger.Info("Google OAuth disabled: no client id configured")

		return nil
	}

	return []service.OAuthProvider{New(cfg, DefaultEndpoints, params.Logger)}
}

// New creates a Google provider against the given endpoints.
func New(cfg config.OAuthProviderConfig, endpoints Endpoints, logger *slog.Logger) *Provider {
	keySet := oidc.NewRemoteKeySet(context.Background(), endpoints.JWKSURL)

	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     endpoints.OAuth2,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: oidc.NewVerifier(endpoints.Issuer, keySet, &oidc.Config{ClientID: cfg.ClientID}),
		logger:   logger,
	}
}

// Name implements service.OAuthProvider.
func (p *Provider) Name() entity.ProviderType {
	return entity.ProviderGoogle
}

// AuthCodeURL implements service.OAuthProvider.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state)
}

// Exchange implements service.OAuthProvider. Unverified emails are refused
// because accounts are linked by email.
func (p *Provider) Exchange(ctx context.Context, code string) (*entity.OAuthProfile, error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "google code exchange")
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("google token response has no id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.Wrap(err, "verify google id_token")
	}

	var claims idTokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.Wrap(err, "decode google id_token claims")
	}

	if claims.Email != "" && !claims.EmailVerified {
		p.logger.WarnContext(ctx, "Google account email is not verified", slog.String("sub", claims.Subject))

		return nil, errors.Errorf("google email %s is not verified", claims.Email)
	}

	return &entity.OAuthProfile{
		Provider:    entity.ProviderGoogle,
		ProviderID:  claims.Subject,
		Email:       claims.Email,
		DisplayName: firstNonEmpty(claims.Name, claims.PreferredUsername),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
