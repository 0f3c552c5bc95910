package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vdavid/chatlens/internal/models"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps exports in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and creates the schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := migrateSQLite(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func migrateSQLite(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS chat_exports (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	filename   TEXT NOT NULL,
	summary    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveExport(ctx context.Context, filename string, summary *models.Summary) (*models.ChatExport, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}

	export := &models.ChatExport{
		ID:        uuid.NewString(),
		Filename:  filename,
		Summary:   summary,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chat_exports (id, filename, summary, created_at)
		VALUES (?, ?, ?, ?)
	`, export.ID, export.Filename, string(payload), export.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to save export: %w", err)
	}

	return export, nil
}

func (s *SQLiteStore) LatestSummary(ctx context.Context) (*models.Summary, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT summary FROM chat_exports ORDER BY seq DESC LIMIT 1
	`).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSummaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest summary: %w", err)
	}

	return decodeSummary([]byte(payload))
}

func (s *SQLiteStore) GetExport(ctx context.Context, id string) (*models.ChatExport, error) {
	var (
		export    models.ChatExport
		payload   string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, filename, summary, created_at FROM chat_exports WHERE id = ?
	`, id).Scan(&export.ID, &export.Filename, &payload, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSummaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export: %w", err)
	}

	if export.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if export.Summary, err = decodeSummary([]byte(payload)); err != nil {
		return nil, err
	}

	return &export, nil
}

func (s *SQLiteStore) ListExports(ctx context.Context, limit int) ([]*models.ChatExport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, created_at FROM chat_exports ORDER BY seq DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	exports := make([]*models.ChatExport, 0)
	for rows.Next() {
		var (
			export    models.ChatExport
			createdAt string
		)
		if err := rows.Scan(&export.ID, &export.Filename, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		if export.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		exports = append(exports, &export)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exports: %w", err)
	}

	return exports, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
