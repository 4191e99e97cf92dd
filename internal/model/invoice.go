// Package model contains the core domain types shared across the application.
package model

import "time"

// Invoice statuses seeded by the default migrations. The UI never assumes
// this list is complete; the authoritative set comes from the status picklist.
const (
	StatusDraft     = "Draft"
	StatusOpen      = "Open"
	StatusSubmitted = "Submitted"
	StatusPaid      = "Paid"
)

// Invoice is a read-only projection of a remote invoice record. Rows are
// replaced wholesale on each successful list query; there are no partial
// merges.
type Invoice struct {
	ID          string
	Name        string
	Status      string
	Amount      float64
	SubmittedAt *time.Time
	CreatedAt   time.Time
}
