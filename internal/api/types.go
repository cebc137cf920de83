package api

import "github.com/google/uuid"

// CreateResponse describes a newly created paste.
type CreateResponse struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}
