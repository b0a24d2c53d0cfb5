package impl

import (
	"io"
	"log/slog"

	"keeper/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(minPasswordLength int) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			MinPasswordLength: minPasswordLength,
		},
	}
}

func strPtr(s string) *string {
	return &s
}
