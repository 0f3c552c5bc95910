package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vdavid/chatlens/internal/models"
)

// PostgresStore keeps exports in the chat_exports table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an open pool. The store owns the pool from then on.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) SaveExport(ctx context.Context, filename string, summary *models.Summary) (*models.ChatExport, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}

	export := &models.ChatExport{Filename: filename, Summary: summary}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO chat_exports (filename, summary)
		VALUES ($1, $2)
		RETURNING id::text, created_at
	`, filename, payload).Scan(&export.ID, &export.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to save export: %w", err)
	}

	return export, nil
}

func (s *PostgresStore) LatestSummary(ctx context.Context) (*models.Summary, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT summary
		FROM chat_exports
		ORDER BY seq DESC
		LIMIT 1
	`).Scan(&payload)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSummaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest summary: %w", err)
	}

	return decodeSummary(payload)
}

func (s *PostgresStore) GetExport(ctx context.Context, id string) (*models.ChatExport, error) {
	var (
		export  models.ChatExport
		payload []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id::text, filename, summary, created_at
		FROM chat_exports
		WHERE id::text = $1
	`, id).Scan(&export.ID, &export.Filename, &payload, &export.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSummaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export: %w", err)
	}

	summary, err := decodeSummary(payload)
	if err != nil {
		return nil, err
	}
	export.Summary = summary

	return &export, nil
}

func (s *PostgresStore) ListExports(ctx context.Context, limit int) ([]*models.ChatExport, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, filename, created_at
		FROM chat_exports
		ORDER BY seq DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	exports := make([]*models.ChatExport, 0)
	for rows.Next() {
		var export models.ChatExport
		if err := rows.Scan(&export.ID, &export.Filename, &export.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		exports = append(exports, &export)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exports: %w", err)
	}

	return exports, nil
}

func (s *PostgresStore) Close() error {
	CloseConnection(s.pool)
	return nil
}

func decodeSummary(payload []byte) (*models.Summary, error) {
	var summary models.Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode stored summary: %w", err)
	}
	return &summary, nil
}
