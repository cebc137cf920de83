package store

import (
	"context"

	"github.com/google/uuid"

	"paste/internal/models"
)

// PasteStore abstracts paste storage backends.
//
// GetPaste and RemovePaste return a nil paste and a nil error when the id is
// not live. RemovePaste must be atomic: of several concurrent removals of the
// same id, exactly one observes the record.
type PasteStore interface {
	CreatePaste(ctx context.Context, content string) (models.Paste, error)
	GetPaste(ctx context.Context, id uuid.UUID) (*models.Paste, error)
	RemovePaste(ctx context.Context, id uuid.UUID) (*models.Paste, error)
}

var (
	_ PasteStore = (*Store)(nil)
	_ PasteStore = (*PostgresStore)(nil)
	_ PasteStore = (*RedisStore)(nil)
	_ PasteStore = (*MemoryStore)(nil)
)
