// Package dbtest starts a throwaway Postgres with the snipmark schema for
// repository tests.
package dbtest

import (
	"context"
	_ "embed"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/PabloPavan/snipmark_api/internal/db"
)

//go:embed schema.sql
var Schema string

// Start runs a Postgres container, applies Schema and returns a Base bound
// to it. The test is skipped under -short or when no container runtime is
// reachable.
func Start(t *testing.T) *db.Base {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container test skipped in -short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("snipmark_test"),
		postgres.WithUsername("snipmark"),
		postgres.WithPassword("snipmark"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	d, err := db.New(ctx, connStr, db.DefaultPoolConfig())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(d.Close)

	if _, err := d.Pool.Exec(ctx, Schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db.NewBase(d.Pool, 5*time.Second)
}
