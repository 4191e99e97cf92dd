package tui

import "github.com/Veraticus/the-bills-must-flow/internal/model"

// Metadata resolution messages.
type objectInfoLoadedMsg struct {
	err  error
	info *model.ObjectInfo
}

type picklistLoadedMsg struct {
	err      error
	picklist *model.Picklist
}

// invoicesLoadedMsg carries a settled list request. seq identifies the
// request so the session can discard results of superseded ones.
type invoicesLoadedMsg struct {
	err      error
	invoices []model.Invoice
	seq      uint64
}

// submitFinishedMsg carries the result of a batch submit.
type submitFinishedMsg struct {
	err error
}
