package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/the-bills-must-flow/internal/storage"

	"github.com/spf13/cobra"
)

func submitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit invoices by id without the TUI",
		Long: `Submit a batch of invoices for processing directly from the command
line. Useful for scripting; the interactive flow lives in 'bills review'.`,
		RunE: runSubmit,
	}

	cmd.Flags().StringSlice("ids", nil, "invoice ids to submit (comma separated)")
	_ = cmd.MarkFlagRequired("ids")

	return cmd
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	ids, _ := cmd.Flags().GetStringSlice("ids")
	if len(ids) == 0 {
		return fmt.Errorf("no invoice ids given")
	}

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

	if err := store.SubmitInvoices(cmd.Context(), ids); err != nil {
		return fmt.Errorf("failed to submit invoices: %w", err)
	}

	slog.Info("Invoices submitted for processing", "count", len(ids))
	return nil
}
