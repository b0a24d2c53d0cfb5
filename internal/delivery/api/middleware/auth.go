package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "keeper/internal/delivery/context"
	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerPrefix = "bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	Logger       *slog.Logger
}

// AuthMiddleware verifies session tokens on protected routes.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: params.TokenService, logger: params.Logger}
}

// Authenticate requires an "Authorization: Bearer <token>" header. A missing
// header fails 401; a token that does not verify fails 403.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrTokenRequired
		}

		claims, err := m.tokenSvc.Verify(token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Token verification failed", slog.Any("error", err))

			return domainerrors.ErrTokenInvalid.WrapMessage(err.Error())
		}

		deliverycontext.SetClaims(c, claims)

		return next(c)
	}
}

// GetUserID returns the authenticated user's id.
func GetUserID(c echo.Context) (int64, bool) {
	claims, ok := deliverycontext.GetClaims(c)
	if !ok {
		return 0, false
	}

	return claims.UserID, true
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}
