package tui

import (
	"context"
	"time"

	"github.com/Veraticus/the-bills-must-flow/internal/model"
	"github.com/Veraticus/the-bills-must-flow/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	metadataTimeout = 10 * time.Second
	queryTimeout    = 30 * time.Second
	submitTimeout   = 30 * time.Second
)

// loadObjectInfo resolves schema metadata for the invoice object.
func (m Model) loadObjectInfo() tea.Cmd {
	svc := m.config.Service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metadataTimeout)
		defer cancel()

		info, err := svc.GetObjectInfo(ctx, model.ObjectTypeInvoice)
		return objectInfoLoadedMsg{info: info, err: err}
	}
}

// loadPicklist resolves the status picklist for the given record type.
func (m Model) loadPicklist(recordTypeID string) tea.Cmd {
	svc := m.config.Service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metadataTimeout)
		defer cancel()

		picklist, err := svc.GetPicklistValues(ctx, recordTypeID, model.FieldInvoiceStatus)
		return picklistLoadedMsg{picklist: picklist, err: err}
	}
}

// fetchInvoices executes a list request through its handle.
func (m Model) fetchInvoices(handle service.QueryHandle, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		invoices, err := handle.Fetch(ctx)
		return invoicesLoadedMsg{invoices: invoices, err: err, seq: seq}
	}
}

// refreshInvoices re-executes a list request, bypassing the cache.
func (m Model) refreshInvoices(handle service.QueryHandle, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		invoices, err := handle.Refresh(ctx)
		return invoicesLoadedMsg{invoices: invoices, err: err, seq: seq}
	}
}

// submitInvoices submits the selected batch.
func (m Model) submitInvoices(ids []string) tea.Cmd {
	svc := m.config.Service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		return submitFinishedMsg{err: svc.SubmitInvoices(ctx, ids)}
	}
}
