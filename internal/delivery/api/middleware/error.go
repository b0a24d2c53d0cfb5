// Package middleware contains the API-specific echo middleware.
package middleware

import (
	"log/slog"
	"net/http"

	"keeper/internal/delivery/api/response"
	deliverycontext "keeper/internal/delivery/context"
	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		// Never expose internal details for 5xx errors.
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.String("code", appErr.ErrorCode()), slog.Any("error", err))
		}

		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message())

		return
	}

	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		m.writeHTTPError(c, logger, httpErr)

		return
	}

	logger.Error("Unhandled error", slog.Any("error", err))

	_ = response.InternalServerError(c)
}

// writeHTTPError maps echo's own errors (unknown route, bad method, body too large, bind failures).
func (m *ErrorMiddleware) writeHTTPError(c echo.Context, logger *slog.Logger, httpErr *echo.HTTPError) {
	code := httpErr.Code
	switch {
	case code == http.StatusNotFound:
		_ = response.Error(c, code, domainerrors.ErrNotFound.ErrorCode(), domainerrors.ErrNotFound.Message())
	case code >= http.StatusInternalServerError:
		logger.Error("Unhandled HTTP error", slog.Any("error", httpErr))
		_ = response.InternalServerError(c)
	default:
		message := http.StatusText(code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}
		_ = response.Error(c, code, "HTTP_ERROR", message)
	}
}
