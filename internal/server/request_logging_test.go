package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"paste/internal/store"
)

func TestRequestLoggingRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	srv := New("127.0.0.1:0", App{Pastes: store.NewMemoryStore()}, Options{}, logger)

	req := httptest.NewRequest(http.MethodGet, "/"+uuid.NewString(), nil)
	srv.Handler().ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, "request complete") {
		t.Fatalf("expected request log, got %q", out)
	}
	if !strings.Contains(out, "status=404") {
		t.Fatalf("expected status in log, got %q", out)
	}
	if !strings.Contains(out, "route=\"GET /{id}\"") {
		t.Fatalf("expected route in log, got %q", out)
	}
}

func TestRequestLoggingSkipsHealth(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	srv := New("127.0.0.1:0", App{Pastes: store.NewMemoryStore()}, Options{}, logger)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Handler().ServeHTTP(httptest.NewRecorder(), req)

	if strings.Contains(buf.String(), "request complete") {
		t.Fatalf("expected no log for health check, got %q", buf.String())
	}
}

func TestLoggingResponseWriterDefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &loggingResponseWriter{ResponseWriter: rec}
	if rw.Status() != http.StatusOK {
		t.Fatalf("expected implicit 200, got %d", rw.Status())
	}
	if _, err := rw.Write([]byte("abc")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rw.bytes != 3 {
		t.Fatalf("expected 3 bytes recorded, got %d", rw.bytes)
	}
	if rw.Unwrap() != rec {
		t.Fatal("expected Unwrap to return the wrapped writer")
	}
}
