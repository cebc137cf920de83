package main

import (
	"context"

	"github.com/spf13/cobra"

	"paste/internal/api"
	"paste/internal/config"
)

type removeResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func newRmCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id|url>",
		Short: "Permanently delete a paste",
		Args:  requireOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(ctx context.Context, client *api.Client) error {
				if err := client.Delete(ctx, id); err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(removeResult{ID: id.String(), Deleted: true})
				}
				return writePlain("deleted %s\n", id)
			})
		},
	}
}
