package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"paste/internal/models"
)

func requireExactlyArgs(count int, message string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != count {
			return errors.New(message)
		}
		return nil
	}
}

func requireAtMostArgs(max int, message string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > max {
			return errors.New(message)
		}
		return nil
	}
}

func requireOneID(cmd *cobra.Command, args []string) error {
	if err := requireExactlyArgs(1, "paste id is required")(cmd, args); err != nil {
		return err
	}
	_, err := parseIDArg(args[0])
	return err
}

// parseIDArg accepts either a bare paste id or the URL printed by put.
func parseIDArg(raw string) (uuid.UUID, error) {
	id, err := models.ParsePasteID(lastPathSegment(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w (expected a paste id or url)", err)
	}
	return id, nil
}
