package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check.
	mux.HandleFunc("GET /health", s.handleHealth)

	// Usage and upload.
	mux.HandleFunc("GET /{$}", s.handleUsage)
	mux.HandleFunc("POST /{$}", s.handleCreate)

	// Single paste.
	mux.HandleFunc("GET /{id}", s.handleRetrieve)
	mux.HandleFunc("GET /{id}/{lang}", s.handleRetrieveHighlighted)
	mux.HandleFunc("DELETE /{id}", s.handleRemove)

	return mux
}
