// Package github implements the GitHub sign-in provider.
package github

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"keeper/config"
	"keeper/internal/domain/entity"
	"keeper/internal/domain/service"
	"keeper/internal/errors"

	"go.uber.org/fx"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

// DefaultAPIBaseURL is the public GitHub REST API.
const DefaultAPIBaseURL = "https://api.github.com"

type userResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type emailResponse struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// Provider runs the GitHub OAuth app flow and reads the profile from the REST API.
type Provider struct {
	oauthConfig *oauth2.Config
	apiBaseURL  string
	logger      *slog.Logger
}

// Params defines the dependencies for the fx-provided GitHub provider.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// Provide registers the GitHub provider when client credentials are configured.
func Provide(params Params) []service.OAuthProvider {
	cfg := params.Config.OAuth.GitHub
	if !cfg.Enabled() {
		params.Logger.Info("GitHub OAuth disabled: no client id configured")

		return nil
	}

	return []service.OAuthProvider{New(cfg, githuboauth.Endpoint, DefaultAPIBaseURL, params.Logger)}
}

// New creates a GitHub provider against the given OAuth endpoint and API base URL.
func New(cfg config.OAuthProviderConfig, endpoint oauth2.Endpoint, apiBaseURL string, logger *slog.Logger) *Provider {
	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     endpoint,
			Scopes:       []string{"user:email"},
		},
		apiBaseURL: strings.TrimRight(apiBaseURL, "/"),
		logger:     logger,
	}
}

// Name implements service.OAuthProvider.
func (p *Provider) Name() entity.ProviderType {
	return entity.ProviderGitHub
}

// AuthCodeURL implements service.OAuthProvider.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state)
}

// Exchange implements service.OAuthProvider. Users with a private profile
// email fall back to their primary verified address from /user/emails.
func (p *Provider) Exchange(ctx context.Context, code string) (*entity.OAuthProfile, error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "github code exchange")
	}

	client := p.oauthConfig.Client(ctx, token)

	var user userResponse
	if err := p.getJSON(ctx, client, "/user", &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, errors.New("github user response has no id")
	}

	email := user.Email
	if email == "" {
		var emails []emailResponse
		if err := p.getJSON(ctx, client, "/user/emails", &emails); err != nil {
			return nil, err
		}
		email = pickEmail(emails)
	}

	return &entity.OAuthProfile{
		Provider:    entity.ProviderGitHub,
		ProviderID:  strconv.FormatInt(user.ID, 10),
		Email:       email,
		Username:    user.Login,
		DisplayName: user.Name,
	}, nil
}

func (p *Provider) getJSON(ctx context.Context, client *http.Client, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBaseURL+path, nil)
	if err != nil {
		return errors.Wrapf(err, "build github request %s", path)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "github request %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.WarnContext(ctx, "GitHub API returned non-200",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)

		return errors.Errorf("github request %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode github response %s", path)
	}

	return nil
}

// pickEmail prefers the primary verified address, then any verified one.
func pickEmail(emails []emailResponse) string {
	var fallback string
	for _, e := range emails {
		if !e.Verified {
			continue
		}
		if e.Primary {
			return e.Email
		}
		if fallback == "" {
			fallback = e.Email
		}
	}

	return fallback
}
