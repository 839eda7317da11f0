// migrate applies the embedded SQL migrations and exits.
// Run: go run ./cmd/migrate
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ErlanBelekov/finance-tracker/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/finance-tracker/internal/log"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	logger := ctxlog.New(os.Getenv("ENV"), slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		logger.Error("migrate", "error", err)
		pool.Close()
		os.Exit(1)
	}
	logger.Info("migrations applied")
}
