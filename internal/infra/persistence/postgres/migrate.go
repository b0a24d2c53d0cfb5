package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"keeper/internal/errors"
	"keeper/internal/infra/persistence/migrations"

	"github.com/pressly/goose/v3"
)

// gooseUpContext is swapped in tests.
var gooseUpContext = goose.UpContext

// Migrate applies the embedded goose migrations to db.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(&gooseSlogLogger{logger: logger})

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "apply migrations")
	}

	return nil
}

type gooseSlogLogger struct {
	logger *slog.Logger
}

func (l *gooseSlogLogger) Printf(format string, v ...any) {
	l.logger.Info("goose: " + fmt.Sprintf(format, v...))
}

func (l *gooseSlogLogger) Fatalf(format string, v ...any) {
	l.logger.Error("goose: " + fmt.Sprintf(format, v...))
	os.Exit(1)
}
