package store

import (
	"context"
	"fmt"
	"strings"
)

// Supported backend names.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Backend is a PasteStore that owns a connection or file handle.
type Backend interface {
	PasteStore
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend     string
	DBPath      string
	PostgresDSN string
	Redis       RedisOptions
}

// Backends returns the supported backend names.
func Backends() []string {
	return []string{BackendSQLite, BackendPostgres, BackendRedis, BackendMemory}
}

// OpenBackend opens the backend named by opts.Backend.
func OpenBackend(ctx context.Context, opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendSQLite:
		return Open(opts.DBPath)
	case BackendPostgres:
		return OpenPostgres(ctx, opts.PostgresDSN)
	case BackendRedis:
		return OpenRedis(ctx, opts.Redis)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (allowed: %s)", opts.Backend, strings.Join(Backends(), ", "))
	}
}
