package main

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/Veraticus/the-bills-must-flow/internal/model"
	"github.com/Veraticus/the-bills-must-flow/internal/storage"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo invoices",
		Long: `Generate realistic demo invoices so the review table has something to
show. Safe to run repeatedly; each run adds new invoices.`,
		RunE: runSeed,
	}

	cmd.Flags().Int("count", 50, "number of invoices to generate")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	count, _ := cmd.Flags().GetInt("count")
	if count <= 0 {
		return fmt.Errorf("count must be positive")
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

	bar := progressbar.NewOptions(count,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Seeding invoices...[reset]"),
	)

	invoices := generateDemoInvoices(count)
	for _, inv := range invoices {
		if err := store.SaveInvoices(cmd.Context(), []model.Invoice{inv}); err != nil {
			return fmt.Errorf("failed to save invoice %q: %w", inv.Name, err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	slog.Info("Demo invoices created", "count", count, "database", dbPath)
	return nil
}

// generateDemoInvoices creates realistic demo invoices.
func generateDemoInvoices(count int) []model.Invoice {
	vendors := []struct {
		name   string
		minAmt float64
		maxAmt float64
	}{
		{"Acme Office Supplies", 40, 600},
		{"Spacing Guild Logistics", 250, 4000},
		{"Harkonnen Utilities", 80, 900},
		{"Atreides Consulting", 1000, 12000},
		{"Caladan Cloud Hosting", 29, 450},
		{"Fremen Water Works", 120, 2400},
		{"Ix Machine Services", 500, 8000},
		{"Tleilaxu Labs", 300, 5500},
	}

	statuses := []string{
		model.StatusDraft,
		model.StatusOpen,
		model.StatusOpen,
		model.StatusOpen,
		model.StatusPaid,
	}

	invoices := make([]model.Invoice, 0, count)
	for i := 0; i < count; i++ {
		vendor := vendors[rand.Intn(len(vendors))]
		amount := vendor.minAmt + rand.Float64()*(vendor.maxAmt-vendor.minAmt)

		invoices = append(invoices, model.Invoice{
			ID:     uuid.NewString(),
			Name:   fmt.Sprintf("INV-%04d %s", i+1, vendor.name),
			Amount: float64(int(amount*100)) / 100,
			Status: statuses[rand.Intn(len(statuses))],
		})
	}

	return invoices
}
