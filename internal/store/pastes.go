package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"paste/internal/models"
)

// CreatePaste inserts content under a freshly generated id.
func (s *Store) CreatePaste(ctx context.Context, content string) (models.Paste, error) {
	paste, err := insertWithFreshID(func(id uuid.UUID) (models.Paste, error) {
		row := s.db.QueryRowContext(ctx,
			"INSERT INTO pastes (id, content) VALUES (?, ?) RETURNING id, content",
			id.String(), content)
		paste, err := scanPaste(row)
		if isUniqueConstraint(err) {
			return models.Paste{}, errIDTaken
		}
		if err != nil {
			return models.Paste{}, err
		}
		return *paste, nil
	})
	if err != nil {
		return models.Paste{}, fmt.Errorf("create paste: %w", err)
	}
	return paste, nil
}

// GetPaste returns the paste with id, or nil if it does not exist.
func (s *Store) GetPaste(ctx context.Context, id uuid.UUID) (*models.Paste, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, content FROM pastes WHERE id = ?", id.String())
	paste, err := scanOptionalPaste(row)
	if err != nil {
		return nil, fmt.Errorf("get paste %s: %w", id, err)
	}
	return paste, nil
}

// RemovePaste deletes the paste with id and returns it, or nil if it did not exist.
func (s *Store) RemovePaste(ctx context.Context, id uuid.UUID) (*models.Paste, error) {
	row := s.db.QueryRowContext(ctx, "DELETE FROM pastes WHERE id = ? RETURNING id, content", id.String())
	paste, err := scanOptionalPaste(row)
	if err != nil {
		return nil, fmt.Errorf("remove paste %s: %w", id, err)
	}
	return paste, nil
}

func scanPaste(row *sql.Row) (*models.Paste, error) {
	var paste models.Paste
	if err := row.Scan(&paste.ID, &paste.Content); err != nil {
		return nil, err
	}
	return &paste, nil
}

func scanOptionalPaste(row *sql.Row) (*models.Paste, error) {
	paste, err := scanPaste(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return paste, err
}

func isUniqueConstraint(err error) bool {
	if err == nil {
		return false
	}
	message := err.Error()
	return strings.Contains(message, "UNIQUE constraint failed: pastes.id") ||
		strings.Contains(message, "SQLSTATE 23505")
}
