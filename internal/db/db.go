package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vdavid/chatlens/internal/config"
	"github.com/vdavid/chatlens/internal/models"
)

// ErrSummaryNotFound is returned when no stored export matches a lookup.
var ErrSummaryNotFound = errors.New("summary not found")

// Store persists summarized chat exports.
type Store interface {
	// SaveExport stores a summary and returns the created export.
	SaveExport(ctx context.Context, filename string, summary *models.Summary) (*models.ChatExport, error)
	// LatestSummary returns the summary of the most recently saved export.
	LatestSummary(ctx context.Context) (*models.Summary, error)
	// GetExport returns one export including its summary.
	GetExport(ctx context.Context, id string) (*models.ChatExport, error)
	// ListExports returns up to limit exports, newest first, without summaries.
	ListExports(ctx context.Context, limit int) ([]*models.ChatExport, error)
	Close() error
}

//go:embed migrations/*.up.sql
var migrationFiles embed.FS

// Open connects the store selected by cfg.Store and prepares its schema.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		pool, err := NewConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, pool); err != nil {
			CloseConnection(pool)
			return nil, err
		}
		return NewPostgresStore(pool), nil
	case config.StoreSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// NewConnection creates a new PostgreSQL connection pool with the given configuration.
func NewConnection(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	dbURL := cfg.GetDatabaseURL()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// configurePool applies the pool limits shared by the server and tests.
func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute
}

// NewPoolFromURL is NewConnection for a ready-made connection string.
func NewPoolFromURL(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	return pool, nil
}

// CloseConnection closes the given database connection pool.
func CloseConnection(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

// RunMigrations executes the embedded *.up.sql files in filename order.
// Every migration is idempotent, so this runs on each startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	names, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
	}

	return nil
}
