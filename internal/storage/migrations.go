package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS invoices (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					amount REAL NOT NULL,
					status TEXT NOT NULL,
					submitted_at DATETIME,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_invoices_status ON invoices(status)`,

				`CREATE TABLE IF NOT EXISTS object_infos (
					object_type TEXT PRIMARY KEY,
					default_record_type_id TEXT NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS picklist_values (
					record_type_id TEXT NOT NULL,
					field TEXT NOT NULL,
					value TEXT NOT NULL,
					label TEXT NOT NULL,
					position INTEGER NOT NULL,
					PRIMARY KEY (record_type_id, field, value)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed invoice schema metadata and status picklist",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(
				`INSERT OR IGNORE INTO object_infos (object_type, default_record_type_id) VALUES (?, ?)`,
				"invoice", "standard",
			); err != nil {
				return fmt.Errorf("failed to seed object info: %w", err)
			}

			statuses := []struct {
				value string
				label string
			}{
				{"Draft", "Draft"},
				{"Open", "Open"},
				{"Submitted", "Submitted"},
				{"Paid", "Paid"},
			}
			for i, st := range statuses {
				if _, err := tx.Exec(
					`INSERT OR IGNORE INTO picklist_values (record_type_id, field, value, label, position)
					 VALUES (?, ?, ?, ?, ?)`,
					"standard", "status", st.value, st.label, i,
				); err != nil {
					return fmt.Errorf("failed to seed status %q: %w", st.value, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any outstanding schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		slog.Info("Applying migration",
			"version", migration.Version,
			"description", migration.Description)

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, verErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); verErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, verErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}
	}

	return nil
}

// SchemaVersion returns the currently applied schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return s.schemaVersion(ctx)
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
