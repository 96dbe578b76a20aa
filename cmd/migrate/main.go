package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/laundromart/admin-api/internal/platform/migrations"
	platformpostgres "github.com/laundromart/admin-api/internal/platform/postgres"
)

// migrate applies the database schema and exits. Useful in deploy pipelines
// where the API process should not own schema changes.
func main() {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		log.Fatal("POSTGRES_DSN must be set")
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, cleanup, err := platformpostgres.MustConnect(context.Background(), dsn, logger)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	defer cleanup()

	if err := migrations.Run(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	logger.Info("migrations applied")
}
