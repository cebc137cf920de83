package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"paste/internal/models"
)

const (
	postgresMaxOpenConns = 10
	postgresMaxIdleConns = 5
	postgresPingTimeout  = 5 * time.Second
)

const postgresSchemaSQL = `
CREATE TABLE IF NOT EXISTS pastes (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  content TEXT NOT NULL
);
`

// PostgresStore is the PostgreSQL paste backend. Ids are allocated by the
// database column default.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to PostgreSQL and ensures the pastes table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	configurePool(db, postgresMaxOpenConns, postgresMaxIdleConns)

	pingCtx, cancel := context.WithTimeout(ctx, postgresPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, postgresSchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap postgres schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PostgresStore) CreatePaste(ctx context.Context, content string) (models.Paste, error) {
	row := s.db.QueryRowContext(ctx, "INSERT INTO pastes (content) VALUES ($1) RETURNING id, content", content)
	paste, err := scanPaste(row)
	if err != nil {
		return models.Paste{}, fmt.Errorf("create paste: %w", err)
	}
	return *paste, nil
}

func (s *PostgresStore) GetPaste(ctx context.Context, id uuid.UUID) (*models.Paste, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, content FROM pastes WHERE id = $1", id.String())
	paste, err := scanOptionalPaste(row)
	if err != nil {
		return nil, fmt.Errorf("get paste %s: %w", id, err)
	}
	return paste, nil
}

func (s *PostgresStore) RemovePaste(ctx context.Context, id uuid.UUID) (*models.Paste, error) {
	row := s.db.QueryRowContext(ctx, "DELETE FROM pastes WHERE id = $1 RETURNING id, content", id.String())
	paste, err := scanOptionalPaste(row)
	if err != nil {
		return nil, fmt.Errorf("remove paste %s: %w", id, err)
	}
	return paste, nil
}
