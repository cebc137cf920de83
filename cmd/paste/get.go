package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"paste/internal/api"
	"paste/internal/config"
)

func newGetCmd(cfg *config.Config) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "get <id|url>",
		Short: "Print a paste, optionally highlighted for the terminal",
		Args:  requireOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(ctx context.Context, client *api.Client) error {
				var content string
				if strings.TrimSpace(lang) != "" {
					content, err = client.GetHighlighted(ctx, id, strings.TrimSpace(lang))
				} else {
					content, err = client.Get(ctx, id)
				}
				if err != nil {
					return err
				}
				return writePlain("%s", content)
			})
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "syntax to highlight with, by file extension (e.g. rs, go, py)")
	return cmd
}
