package session

import (
	"fmt"
	"sort"

	"github.com/Veraticus/the-bills-must-flow/internal/model"
	"github.com/Veraticus/the-bills-must-flow/internal/service"
)

// Session owns the invoice rows, the selection, the filter, and the
// in-flight state of the list, submit, and refresh operations. All methods
// must be called from a single goroutine; the event loop invokes a
// transition for every settled remote call and every user action.
//
// Overlapping list requests share one query channel. Each issued request is
// tagged with an increasing sequence number and only the result carrying
// the latest sequence is applied; late results of superseded requests are
// dropped rather than cancelled.
type Session struct {
	svc  service.InvoiceReviewService
	sink *NotificationSink

	rows     []model.Invoice
	selected map[string]struct{}
	options  []model.StatusOption

	filter       string
	recordTypeID string
	handle       service.QueryHandle
	listSeq      uint64
	submitCount  int

	listLoading bool
	submitting  bool
	refreshing  bool
}

// New creates a session over the given remote service, reporting
// notifications through sink.
func New(svc service.InvoiceReviewService, sink *NotificationSink) *Session {
	return &Session{
		svc:      svc,
		sink:     sink,
		selected: make(map[string]struct{}),
		options:  DefaultStatusOptions(),
		filter:   AllStatuses,
	}
}

// ApplyObjectInfo records the schema lookup result. A failure is silent;
// the picklist simply never loads and the default options remain. The
// returned id is non-empty when the picklist fetch should now run.
func (s *Session) ApplyObjectInfo(info *model.ObjectInfo, err error) string {
	if err != nil || info == nil {
		return ""
	}
	s.recordTypeID = info.DefaultRecordTypeID
	return s.recordTypeID
}

// ApplyPicklist rebuilds the filter options from a picklist resolution.
// Failures degrade to the All-only option set and are not notified.
func (s *Session) ApplyPicklist(picklist *model.Picklist, err error) {
	s.options = BuildStatusOptions(picklist, err)
}

// ChangeFilter records a new filter value, invalidates the selection, and
// issues a new list request. The returned handle and sequence identify the
// request the caller must execute.
func (s *Session) ChangeFilter(value string) (service.QueryHandle, uint64) {
	s.filter = value
	s.clearSelection()
	s.handle = s.svc.InvoiceQuery(TranslateStatusFilter(value))
	s.listSeq++
	s.listLoading = true
	return s.handle, s.listSeq
}

// BeginRefresh issues a forced re-execution of the current list query
// through its cached handle. It reports false when no query has been
// issued yet.
func (s *Session) BeginRefresh() (service.QueryHandle, uint64, bool) {
	if s.handle == nil {
		return nil, 0, false
	}
	s.listSeq++
	s.refreshing = true
	return s.handle, s.listSeq, true
}

// ApplyListResult applies a settled list request. Results whose sequence is
// not the latest issued are discarded; the request that superseded them is
// still in flight and will clear the loading flags itself. It reports
// whether the result was applied.
func (s *Session) ApplyListResult(seq uint64, rows []model.Invoice, err error) bool {
	if seq != s.listSeq {
		return false
	}

	s.listLoading = false
	s.refreshing = false

	if err != nil {
		s.rows = nil
		s.clearSelection()
		s.sink.ListErrorOnce(err)
		return true
	}

	s.rows = rows
	s.clearSelection()
	s.sink.ResetListError()
	return true
}

// SetSelected replaces the selection with the full selected-id set reported
// by the table widget. The ids are trusted to reference current rows.
func (s *Session) SetSelected(ids []string) {
	s.selected = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.selected[id] = struct{}{}
	}
}

// BeginSubmit starts submitting the current selection. With an empty
// selection it is a no-op, not an error. The returned ids are the batch the
// caller must pass to the remote submit operation.
func (s *Session) BeginSubmit() ([]string, bool) {
	if len(s.selected) == 0 {
		return nil, false
	}

	ids := s.SelectedIDs()
	s.submitCount = len(ids)
	s.submitting = true
	return ids, true
}

// FinishSubmit applies the submit result. On success the selection is
// cleared and the caller must begin a forced refresh so the submitted rows'
// updated status is reflected; on failure the selection is preserved so the
// user can retry without re-selecting. The submitting flag clears on every
// exit path.
func (s *Session) FinishSubmit(err error) (refresh bool) {
	defer func() { s.submitting = false }()

	if err != nil {
		s.sink.Failure("Error submitting invoices", NormalizeError(err))
		return false
	}

	s.sink.Success(fmt.Sprintf("%d invoice(s) submitted for processing", s.submitCount))
	s.clearSelection()
	return true
}

// Rows returns the current invoice rows.
func (s *Session) Rows() []model.Invoice {
	return s.rows
}

// Filter returns the current filter value.
func (s *Session) Filter() string {
	return s.filter
}

// Options returns the current filter dropdown options.
func (s *Session) Options() []model.StatusOption {
	return s.options
}

// IsSelected reports whether the invoice with the given id is selected.
func (s *Session) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectedIDs returns the selected invoice ids in stable order.
func (s *Session) SelectedIDs() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelectionCount returns the number of selected invoices.
func (s *Session) SelectionCount() int {
	return len(s.selected)
}

// Loading reports whether a list request is in flight.
func (s *Session) Loading() bool { return s.listLoading }

// Submitting reports whether a submit is in flight.
func (s *Session) Submitting() bool { return s.submitting }

// Refreshing reports whether a forced refresh is in flight.
func (s *Session) Refreshing() bool { return s.refreshing }

// Busy is the OR of the list, submit, and refresh flags. Each flag is owned
// by its own operation so one operation settling cannot clear another's
// spinner early.
func (s *Session) Busy() bool {
	return s.listLoading || s.submitting || s.refreshing
}

// SubmitDisabled reports whether the submit action is unavailable.
func (s *Session) SubmitDisabled() bool {
	return len(s.selected) == 0 || s.Busy()
}

func (s *Session) clearSelection() {
	s.selected = make(map[string]struct{})
}
