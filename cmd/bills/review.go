package main

import (
	"fmt"

	"github.com/Veraticus/the-bills-must-flow/internal/storage"
	"github.com/Veraticus/the-bills-must-flow/internal/tui"

	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review and submit invoices interactively",
		Long: `Open the interactive invoice table. Cycle the status filter with 'f',
toggle rows with 'x', and submit the selected batch with 's'.`,
		RunE: runReview,
	}
}

func runReview(cmd *cobra.Command, _ []string) error {
	dbPath, err := databasePath()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return tui.Run(cmd.Context(), tui.WithService(store))
}
