// Command migrate applies or rolls back the embedded database migrations.
//
// Usage:
//
//	migrate up|down|status
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/citymaps-backend/internal/adapter/postgres"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: migrate up|down|status")
		os.Exit(1)
	}

	cmd := postgres.MigrateCommand(os.Args[1])
	switch cmd {
	case postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus:
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := postgres.Migrate(ctx, dsn, cmd, logger); err != nil {
		log.Fatalf("migrate %s: %v", cmd, err)
	}
}
