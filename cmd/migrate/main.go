// Command migrate applies or rolls back the embedded database migrations.
//
// Usage:
//
//	migrate [-dsn DSN] up|down|status
//
// The DSN defaults to the DATABASE_DSN environment variable.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/tenantdesk-backend/internal/adapter/postgres"
)

func main() {
	dsn := flag.String("dsn", os.Getenv("DATABASE_DSN"), "PostgreSQL connection string")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DATABASE_DSN environment variable or -dsn flag is required")
	}
	if flag.NArg() != 1 {
		log.Fatal("usage: migrate [-dsn DSN] up|down|status")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, *dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	provider, closeDB, err := postgres.NewMigrationProvider(pool)
	if err != nil {
		log.Fatalf("migrations: %v", err)
	}
	defer func() { _ = closeDB() }()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			log.Fatalf("up: %v", err)
		}
		for _, r := range results {
			fmt.Printf("applied %05d %s (%s)\n", r.Source.Version, r.Source.Path, r.Duration)
		}
		if len(results) == 0 {
			fmt.Println("no pending migrations")
		}
	case "down":
		r, err := provider.Down(ctx)
		if err != nil {
			log.Fatalf("down: %v", err)
		}
		fmt.Printf("rolled back %05d %s\n", r.Source.Version, r.Source.Path)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			log.Fatalf("status: %v", err)
		}
		for _, s := range statuses {
			applied := "pending"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%05d %-40s %s\n", s.Source.Version, s.Source.Path, applied)
		}
	default:
		log.Fatalf("unknown command %q", cmd)
	}
}
