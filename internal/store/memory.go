package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"paste/internal/models"
)

// MemoryStore keeps pastes in process memory. It is meant for tests and
// throwaway servers; contents are lost on exit.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[uuid.UUID]string)}
}

func (m *MemoryStore) CreatePaste(ctx context.Context, content string) (models.Paste, error) {
	return insertWithFreshID(func(id uuid.UUID) (models.Paste, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.entries[id]; ok {
			return models.Paste{}, errIDTaken
		}
		m.entries[id] = content
		return models.Paste{ID: id, Content: content}, nil
	})
}

func (m *MemoryStore) GetPaste(ctx context.Context, id uuid.UUID) (*models.Paste, error) {
	m.mu.Lock()
	content, ok := m.entries[id]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return &models.Paste{ID: id, Content: content}, nil
}

func (m *MemoryStore) RemovePaste(ctx context.Context, id uuid.UUID) (*models.Paste, error) {
	m.mu.Lock()
	content, ok := m.entries[id]
	if ok {
		delete(m.entries, id)
	}
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return &models.Paste{ID: id, Content: content}, nil
}

// Close is a no-op; it lets MemoryStore satisfy Backend.
func (m *MemoryStore) Close() error {
	return nil
}
