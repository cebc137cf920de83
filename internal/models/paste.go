package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Paste is a stored text record keyed by a UUID.
type Paste struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
}

// ParsePasteID parses a canonical UUID string into a paste id.
func ParsePasteID(raw string) (uuid.UUID, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return uuid.Nil, fmt.Errorf("paste id is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid paste id %q", raw)
	}
	return id, nil
}
