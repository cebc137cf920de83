package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"paste/internal/config"
	"paste/internal/highlight"
	"paste/internal/server"
	"paste/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the paste API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			backend, err := openBackend(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			app := server.App{
				Pastes:      backend,
				Highlighter: highlight.New(),
				Theme:       cfg.Highlight.Theme,
			}
			opts := server.Options{
				MaxBodyBytes:   cfg.MaxBodyBytes,
				AllowedOrigins: cfg.CORSOrigins,
			}
			srv := server.New(addr, app, opts, logger)
			return srv.ListenAndServe(ctx)
		},
	}
}

func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Backend, error) {
	opts := storeOptions(cfg)
	switch opts.Backend {
	case store.BackendSQLite, "":
		logger.Info("opening database", "backend", store.BackendSQLite, "path", opts.DBPath)
	case store.BackendRedis:
		logger.Info("connecting to redis", "addr", opts.Redis.Addr, "prefix", opts.Redis.Prefix)
	default:
		logger.Info("opening storage backend", "backend", opts.Backend)
	}
	return store.OpenBackend(ctx, opts)
}

func storeOptions(cfg *config.Config) store.Options {
	return store.Options{
		Backend:     strings.ToLower(strings.TrimSpace(cfg.Storage.Backend)),
		DBPath:      cfg.Storage.DBPath,
		PostgresDSN: cfg.Storage.PostgresDSN,
		Redis: store.RedisOptions{
			Addr:   cfg.Storage.RedisAddr,
			Prefix: cfg.Storage.RedisPrefix,
		},
	}
}
