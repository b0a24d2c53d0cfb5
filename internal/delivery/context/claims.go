package context

import (
	"context"

	"keeper/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// KeyClaims is the key for the verified session claims.
const KeyClaims ContextKey = "claims"

// SetClaims stores claims on both the echo context and the request context.
func SetClaims(c echo.Context, claims *service.Claims) {
	c.Set(string(KeyClaims), claims)
	c.SetRequest(c.Request().WithContext(WithClaims(c.Request().Context(), claims)))
}

// GetClaims returns the claims attached by the auth middleware.
func GetClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(string(KeyClaims)).(*service.Claims)

	return claims, ok && claims != nil
}

// WithClaims returns a new context with the claims.
func WithClaims(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, KeyClaims, claims)
}

// ClaimsFromContext extracts the claims from standard context.Context.
func ClaimsFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(KeyClaims).(*service.Claims)

	return claims, ok && claims != nil
}
