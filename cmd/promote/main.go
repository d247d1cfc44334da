// Command promote sets a user's role. It is used to bootstrap the first
// content and company managers; registration only ever creates clients.
//
// Usage:
//
//	promote --username=anna --role=COMPANY_MANAGER
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

func main() {
	username := flag.String("username", "", "username of the account to promote")
	role := flag.String("role", string(domain.UserRoleCompanyManager), "new role")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --username=anna --role=COMPANY_MANAGER")
		os.Exit(1)
	}
	if !domain.UserRole(*role).IsValid() {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	tag, err := pool.Exec(ctx,
		"UPDATE users SET role = $2, updated_at = now() WHERE username = $1 AND role != $2",
		*username, *role,
	)
	if err != nil {
		log.Fatalf("update role: %v", err)
	}

	if tag.RowsAffected() == 0 {
		fmt.Printf("No user %q found, or already %s.\n", *username, *role)
		os.Exit(1)
	}

	fmt.Printf("User %q is now %s.\n", *username, *role)
}
