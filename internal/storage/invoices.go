package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/the-bills-must-flow/internal/common"
	"github.com/Veraticus/the-bills-must-flow/internal/model"
)

// GetObjectInfo resolves schema metadata for an object type.
func (s *SQLiteStorage) GetObjectInfo(ctx context.Context, objectType string) (*model.ObjectInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(objectType, "objectType"); err != nil {
		return nil, err
	}

	var recordTypeID string
	err := s.db.QueryRowContext(ctx,
		`SELECT default_record_type_id FROM object_infos WHERE object_type = ?`,
		objectType,
	).Scan(&recordTypeID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("object type %q: %w", objectType, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get object info: %w", err)
	}

	return &model.ObjectInfo{DefaultRecordTypeID: recordTypeID}, nil
}

// GetPicklistValues resolves the picklist for a field of a record type, in
// seeded position order.
func (s *SQLiteStorage) GetPicklistValues(ctx context.Context, recordTypeID, fieldID string) (*model.Picklist, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(recordTypeID, "recordTypeID"); err != nil {
		return nil, err
	}
	if err := validateString(fieldID, "fieldID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT label, value FROM picklist_values
		 WHERE record_type_id = ? AND field = ?
		 ORDER BY position`,
		recordTypeID, fieldID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query picklist values: %w", err)
	}
	defer func() { _ = rows.Close() }()

	picklist := &model.Picklist{}
	for rows.Next() {
		var v model.PicklistValue
		if err := rows.Scan(&v.Label, &v.Value); err != nil {
			return nil, fmt.Errorf("failed to scan picklist value: %w", err)
		}
		picklist.Values = append(picklist.Values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate picklist values: %w", err)
	}

	return picklist, nil
}

// SaveInvoices inserts or replaces invoices.
func (s *SQLiteStorage) SaveInvoices(ctx context.Context, invoices []model.Invoice) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(invoices) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO invoices (id, name, amount, status, submitted_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, inv := range invoices {
		if _, err := stmt.ExecContext(ctx, inv.ID, inv.Name, inv.Amount, inv.Status, inv.SubmittedAt); err != nil {
			return fmt.Errorf("failed to save invoice %q: %w", inv.ID, err)
		}
	}

	return tx.Commit()
}

// getInvoices returns invoices matching the status filter, newest first.
// A nil filter matches all statuses.
func (s *SQLiteStorage) getInvoices(ctx context.Context, statusFilter *string) ([]model.Invoice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, name, amount, status, submitted_at, created_at FROM invoices`
	var args []any
	if statusFilter != nil {
		query += ` WHERE status = ?`
		args = append(args, *statusFilter)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var invoices []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		var submittedAt sql.NullTime
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Amount, &inv.Status, &submittedAt, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		if submittedAt.Valid {
			t := submittedAt.Time
			inv.SubmittedAt = &t
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	return invoices, nil
}

// SubmitInvoices marks the given invoices as submitted for processing. Ids
// that do not reference an existing invoice fail the whole batch with a
// remote-shaped error carrying one sub-error per missing id.
func (s *SQLiteStorage) SubmitInvoices(ctx context.Context, ids []string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateIDs(ids); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM invoices WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("failed to look up invoices: %w", err)
	}

	found := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return fmt.Errorf("failed to scan invoice id: %w", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("failed to iterate invoice ids: %w", err)
	}
	_ = rows.Close()

	var details []common.ErrorDetail
	for _, id := range ids {
		if !found[id] {
			details = append(details, common.ErrorDetail{
				Message: fmt.Sprintf("invoice %s does not exist", id),
			})
		}
	}
	if len(details) > 0 {
		return &common.RemoteError{
			Body:    details,
			Message: "failed to submit invoices",
		}
	}

	now := time.Now().UTC()
	updateArgs := append([]any{model.StatusSubmitted, now}, args...)
	if _, err := tx.ExecContext(ctx,
		`UPDATE invoices SET status = ?, submitted_at = ? WHERE id IN (`+placeholders+`)`,
		updateArgs...,
	); err != nil {
		return fmt.Errorf("failed to submit invoices: %w", err)
	}

	return tx.Commit()
}
