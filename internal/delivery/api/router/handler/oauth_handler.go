package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"keeper/config"
	deliverycontext "keeper/internal/delivery/context"
	"keeper/internal/domain/entity"
	"keeper/internal/errors"
	"keeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	oauthSuccessPath  = "/auth-success"
	oauthFailurePath  = "/login"
	oauthFailureError = "oauth_failed"
)

// OAuthHandlerParams holds dependencies for OAuthHandler, injected by Fx.
type OAuthHandlerParams struct {
	fx.In

	OAuthUC usecase.OAuthUsecase
	Config  *config.Config
	Logger  *slog.Logger
}

// OAuthHandler starts provider logins and hands the session token to the frontend.
type OAuthHandler struct {
	oauthUC     usecase.OAuthUsecase
	frontendURL string
	logger      *slog.Logger
}

// NewOAuthHandler is the constructor for OAuthHandler.
func NewOAuthHandler(params OAuthHandlerParams) *OAuthHandler {
	frontendURL := ""
	if params.Config != nil && params.Config.OAuth != nil {
		frontendURL = params.Config.OAuth.FrontendURL
	}

	return &OAuthHandler{
		oauthUC:     params.OAuthUC,
		frontendURL: frontendURL,
		logger:      params.Logger,
	}
}

// Begin handles GET /api/oauth/:provider by redirecting to the consent page.
func (h *OAuthHandler) Begin(c echo.Context) error {
	provider := entity.ProviderType(c.Param("provider"))

	consentURL, err := h.oauthUC.Begin(c.Request().Context(), provider)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusFound, consentURL)
}

// Callback handles GET /api/oauth/:provider/callback. Every failure lands
// on the frontend login page rather than a JSON error.
func (h *OAuthHandler) Callback(c echo.Context) error {
	provider := entity.ProviderType(c.Param("provider"))
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)

	if providerErr := c.QueryParam("error"); providerErr != "" {
		logger.Warn("OAuth provider returned an error", slog.String("provider", provider.String()), slog.String("error", providerErr))

		return c.Redirect(http.StatusFound, h.failureURL())
	}

	output, err := h.oauthUC.Complete(c.Request().Context(), usecase.OAuthCallbackInput{
		Provider: provider,
		Code:     c.QueryParam("code"),
		State:    c.QueryParam("state"),
	})
	if err != nil {
		logger.Warn("OAuth callback failed", slog.String("provider", provider.String()), slog.Any("error", err))

		return c.Redirect(http.StatusFound, h.failureURL())
	}

	query := url.Values{}
	query.Set("token", output.Token)
	query.Set("userId", strconv.FormatInt(output.User.ID, 10))
	query.Set("username", output.User.Username)

	return c.Redirect(http.StatusFound, h.frontendURL+oauthSuccessPath+"?"+query.Encode())
}

func (h *OAuthHandler) failureURL() string {
	return h.frontendURL + oauthFailurePath + "?error=" + oauthFailureError
}
