package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"paste/internal/api"
	"paste/internal/config"
)

func newPutCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "put [file]",
		Short: "Upload a file or stdin as a new paste",
		Args:  requireAtMostArgs(1, "put accepts at most one file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, closeFn, err := openPutSource(cmd, args)
			if err != nil {
				return err
			}
			defer closeFn()

			return withClient(cfg, func(ctx context.Context, client *api.Client) error {
				created, err := client.Create(ctx, content)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(created)
				}
				return writePlain("%s\n", created.URL)
			})
		},
	}
}

func openPutSource(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", args[0], err)
	}
	return f, func() { _ = f.Close() }, nil
}
