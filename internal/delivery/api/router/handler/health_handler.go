package handler

import (
	"net/http"

	"keeper/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck handles GET /api/health.
func HealthCheck(c echo.Context) error {
	return response.Message(c, http.StatusOK, "Server is running")
}
