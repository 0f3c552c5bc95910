package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vdavid/chatlens/internal/db"
)

// NewTestDB starts a Postgres container, applies the migrations, and returns a pool.
// The container is terminated when the test finishes. Skipped under -short.
func NewTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping Postgres container test in short mode")
	}

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("chatlens_test"),
		postgres.WithUsername("chatlens"),
		postgres.WithPassword("chatlens"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start Postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Errorf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	pool, err := db.NewPoolFromURL(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	if err := db.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return pool
}

// NewTestSQLiteStore opens a SQLite store in a temporary directory.
func NewTestSQLiteStore(t *testing.T) *db.SQLiteStore {
	t.Helper()

	store, err := db.NewSQLiteStore(t.TempDir() + "/chatlens.db")
	if err != nil {
		t.Fatalf("Failed to open SQLite store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
