package server

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Scheme guesses the URL scheme clients use to reach host: plain http for
// loopback hosts, https otherwise.
func Scheme(host string) string {
	if strings.Contains(host, "127.0.0.1") || strings.Contains(host, "localhost") {
		return "http"
	}
	return "https"
}

// PasteURL builds the absolute retrieval URL for a paste served from host.
func PasteURL(host string, id uuid.UUID) string {
	return fmt.Sprintf("%s://%s/%s", Scheme(host), host, id)
}
