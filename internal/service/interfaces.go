// Package service defines the interfaces the review session consumes.
// The session treats everything behind these interfaces as a remote layer;
// its retry and consistency guarantees are owned by the implementation.
package service

import (
	"context"

	"github.com/Veraticus/the-bills-must-flow/internal/model"
)

// InvoiceReviewService is the remote collaborator surface of the review
// session: schema metadata, picklist metadata, the invoice list query, and
// the batch submit operation.
type InvoiceReviewService interface {
	// GetObjectInfo resolves schema metadata for an object type.
	GetObjectInfo(ctx context.Context, objectType string) (*model.ObjectInfo, error)

	// GetPicklistValues resolves the picklist for a field of a record type.
	GetPicklistValues(ctx context.Context, recordTypeID, fieldID string) (*model.Picklist, error)

	// InvoiceQuery returns a cacheable handle for the invoice list with the
	// given status filter. A nil filter means all statuses.
	InvoiceQuery(statusFilter *string) QueryHandle

	// SubmitInvoices submits the given invoice ids for processing.
	SubmitInvoices(ctx context.Context, ids []string) error
}

// QueryHandle is an opaque reference to an issued invoice list query. The
// holder may re-read the cached result or force a re-execution that
// bypasses the cache.
type QueryHandle interface {
	// Fetch returns the query result, serving a cached copy when one exists.
	Fetch(ctx context.Context) ([]model.Invoice, error)

	// Refresh re-executes the query, bypassing and repopulating the cache.
	Refresh(ctx context.Context) ([]model.Invoice, error)
}
