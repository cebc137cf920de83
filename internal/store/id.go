package store

import (
	"fmt"

	"github.com/google/uuid"
)

const idMaxAttempts = 20

// errIDTaken signals that a generated id was already live in a backend.
var errIDTaken = fmt.Errorf("paste id already exists")

// insertWithFreshID generates random ids and calls insert until one is accepted.
// insert returns errIDTaken when the id collides with a live paste.
func insertWithFreshID[T any](insert func(id uuid.UUID) (T, error)) (T, error) {
	var zero T
	for i := 0; i < idMaxAttempts; i++ {
		id, err := uuid.NewRandom()
		if err != nil {
			return zero, err
		}
		out, err := insert(id)
		if err == errIDTaken {
			continue
		}
		if err != nil {
			return zero, err
		}
		return out, nil
	}
	return zero, fmt.Errorf("unable to generate unique id")
}
