package session

import (
	"context"
	"testing"

	"github.com/Veraticus/the-bills-must-flow/internal/common"
	"github.com/Veraticus/the-bills-must-flow/internal/model"
	"github.com/Veraticus/the-bills-must-flow/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService records collaborator calls and serves canned results.
type fakeService struct {
	objectInfo  *model.ObjectInfo
	objectErr   error
	picklist    *model.Picklist
	picklistErr error
	invoices    []model.Invoice
	listErr     error
	submitErr   error
	submitCalls [][]string
	queries     []*fakeHandle
}

func (f *fakeService) GetObjectInfo(_ context.Context, _ string) (*model.ObjectInfo, error) {
	return f.objectInfo, f.objectErr
}

func (f *fakeService) GetPicklistValues(_ context.Context, _, _ string) (*model.Picklist, error) {
	return f.picklist, f.picklistErr
}

func (f *fakeService) InvoiceQuery(statusFilter *string) service.QueryHandle {
	h := &fakeHandle{svc: f, filter: statusFilter}
	f.queries = append(f.queries, h)
	return h
}

func (f *fakeService) SubmitInvoices(_ context.Context, ids []string) error {
	f.submitCalls = append(f.submitCalls, ids)
	return f.submitErr
}

type fakeHandle struct {
	svc      *fakeService
	filter   *string
	fetches  int
	refreshs int
}

func (h *fakeHandle) Fetch(_ context.Context) ([]model.Invoice, error) {
	h.fetches++
	return h.svc.invoices, h.svc.listErr
}

func (h *fakeHandle) Refresh(_ context.Context) ([]model.Invoice, error) {
	h.refreshs++
	return h.svc.invoices, h.svc.listErr
}

func testInvoices(ids ...string) []model.Invoice {
	rows := make([]model.Invoice, 0, len(ids))
	for i, id := range ids {
		rows = append(rows, model.Invoice{
			ID:     id,
			Name:   "INV-" + id,
			Amount: float64(i+1) * 100,
			Status: model.StatusOpen,
		})
	}
	return rows
}

func newTestSession(svc *fakeService) (*Session, *NotificationSink) {
	sink := NewNotificationSink()
	return New(svc, sink), sink
}

func TestSessionInitialState(t *testing.T) {
	s, _ := newTestSession(&fakeService{})

	assert.Equal(t, AllStatuses, s.Filter())
	assert.Equal(t, DefaultStatusOptions(), s.Options())
	assert.Empty(t, s.Rows())
	assert.Zero(t, s.SelectionCount())
	assert.False(t, s.Busy())
	assert.True(t, s.SubmitDisabled())
}

func TestSessionApplyObjectInfo(t *testing.T) {
	tests := []struct {
		info   *model.ObjectInfo
		err    error
		name   string
		wantID string
	}{
		{
			name:   "resolved id gates the picklist fetch",
			info:   &model.ObjectInfo{DefaultRecordTypeID: "standard"},
			wantID: "standard",
		},
		{
			name:   "failure is silent and keeps the picklist from running",
			err:    common.NewRemoteError("schema unavailable"),
			wantID: "",
		},
		{
			name:   "nil info is treated as unresolved",
			wantID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sink := newTestSession(&fakeService{})

			got := s.ApplyObjectInfo(tt.info, tt.err)

			assert.Equal(t, tt.wantID, got)
			assert.Empty(t, sink.Drain(), "metadata failures never notify")
			assert.Equal(t, DefaultStatusOptions(), s.Options())
		})
	}
}

func TestSessionApplyPicklist(t *testing.T) {
	s, sink := newTestSession(&fakeService{})

	s.ApplyPicklist(&model.Picklist{Values: []model.PicklistValue{
		{Label: "Open", Value: "Open"},
		{Label: "Paid", Value: "Paid"},
	}}, nil)
	require.Len(t, s.Options(), 3)
	assert.Equal(t, AllStatuses, s.Options()[0].Value)

	// A later failure falls back instead of keeping the stale set.
	s.ApplyPicklist(nil, common.NewRemoteError("gone"))
	assert.Equal(t, DefaultStatusOptions(), s.Options())
	assert.Empty(t, sink.Drain())
}

func TestSessionChangeFilterClearsSelection(t *testing.T) {
	svc := &fakeService{invoices: testInvoices("a", "b")}
	s, _ := newTestSession(svc)

	handle, seq := s.ChangeFilter(AllStatuses)
	require.True(t, s.ApplyListResult(seq, svc.invoices, nil))
	s.SetSelected([]string{"a", "b"})
	require.Equal(t, 2, s.SelectionCount())

	_, seq = s.ChangeFilter("Open")

	assert.Zero(t, s.SelectionCount(), "filter change invalidates the selection")
	assert.True(t, s.Loading())
	require.Len(t, svc.queries, 2, "each filter change issues a fresh query")
	assert.Nil(t, svc.queries[0].filter)
	require.NotNil(t, svc.queries[1].filter)
	assert.Equal(t, "Open", *svc.queries[1].filter)
	assert.NotSame(t, handle, svc.queries[1])
	assert.Equal(t, uint64(2), seq)
}

func TestSessionListResultReplacesRows(t *testing.T) {
	svc := &fakeService{}
	s, sink := newTestSession(svc)

	_, seq := s.ChangeFilter(AllStatuses)
	applied := s.ApplyListResult(seq, testInvoices("a", "b", "c"), nil)

	require.True(t, applied)
	assert.Len(t, s.Rows(), 3)
	assert.False(t, s.Loading())
	assert.False(t, s.Busy())
	assert.Zero(t, s.SelectionCount(), "row replacement clears the selection")
	assert.Empty(t, sink.Drain())
}

func TestSessionListResultError(t *testing.T) {
	svc := &fakeService{}
	s, sink := newTestSession(svc)
	failure := common.NewRemoteError("query failed")

	_, seq := s.ChangeFilter(AllStatuses)
	require.True(t, s.ApplyListResult(seq, nil, failure))

	assert.Empty(t, s.Rows(), "a failed query empties the row set")
	assert.False(t, s.Loading())

	got := sink.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, "query failed", got[0].Message)

	// The identical failure on the next request is suppressed.
	_, seq = s.ChangeFilter("Open")
	require.True(t, s.ApplyListResult(seq, nil, failure))
	assert.Empty(t, sink.Drain())

	// A success in between resets deduplication.
	_, seq = s.ChangeFilter(AllStatuses)
	require.True(t, s.ApplyListResult(seq, testInvoices("a"), nil))
	_, seq = s.ChangeFilter("Open")
	require.True(t, s.ApplyListResult(seq, nil, failure))
	require.Len(t, sink.Drain(), 1, "identical failure renotifies after a success")
}

func TestSessionStaleListResultsAreDiscarded(t *testing.T) {
	svc := &fakeService{}
	s, _ := newTestSession(svc)

	_, first := s.ChangeFilter(AllStatuses)
	_, second := s.ChangeFilter("Open")

	// The superseded request settles late; its rows must not land.
	assert.False(t, s.ApplyListResult(first, testInvoices("stale"), nil))
	assert.Empty(t, s.Rows())
	assert.True(t, s.Loading(), "the newest request is still in flight")

	require.True(t, s.ApplyListResult(second, testInvoices("fresh"), nil))
	assert.Equal(t, "fresh", s.Rows()[0].ID)
	assert.False(t, s.Loading())
}

func TestSessionSubmitEmptySelectionIsNoOp(t *testing.T) {
	svc := &fakeService{}
	s, sink := newTestSession(svc)

	ids, ok := s.BeginSubmit()

	assert.False(t, ok)
	assert.Nil(t, ids)
	assert.False(t, s.Submitting())
	assert.Empty(t, svc.submitCalls)
	assert.Empty(t, sink.Drain())
}

func TestSessionSubmitSuccess(t *testing.T) {
	svc := &fakeService{invoices: testInvoices("a", "b", "c")}
	s, sink := newTestSession(svc)

	_, seq := s.ChangeFilter(AllStatuses)
	require.True(t, s.ApplyListResult(seq, svc.invoices, nil))
	s.SetSelected([]string{"a", "b", "c"})

	ids, ok := s.BeginSubmit()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.True(t, s.Submitting())
	assert.True(t, s.Busy())

	refresh := s.FinishSubmit(nil)

	assert.True(t, refresh, "a successful submit forces a refresh")
	assert.False(t, s.Submitting())
	assert.Zero(t, s.SelectionCount(), "successful submit clears the selection")

	got := sink.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, KindSuccess, got[0].Kind)
	assert.Contains(t, got[0].Message, "3")

	handle, seq, ok := s.BeginRefresh()
	require.True(t, ok)
	assert.True(t, s.Refreshing())
	assert.Same(t, svc.queries[0], handle.(*fakeHandle), "refresh reuses the cached query handle")

	require.True(t, s.ApplyListResult(seq, testInvoices("a", "b", "c"), nil))
	assert.False(t, s.Refreshing())
	assert.False(t, s.Busy())
}

func TestSessionSubmitFailurePreservesSelection(t *testing.T) {
	svc := &fakeService{invoices: testInvoices("a", "b")}
	s, sink := newTestSession(svc)

	_, seq := s.ChangeFilter(AllStatuses)
	require.True(t, s.ApplyListResult(seq, svc.invoices, nil))
	s.SetSelected([]string{"a", "b"})

	_, ok := s.BeginSubmit()
	require.True(t, ok)

	refresh := s.FinishSubmit(&common.RemoteError{Body: []common.ErrorDetail{
		{Message: "a"},
		{Message: "b"},
	}})

	assert.False(t, refresh)
	assert.False(t, s.Submitting(), "the submitting flag clears on the failure path too")
	assert.Equal(t, 2, s.SelectionCount(), "failed submit keeps the selection for retry")
	assert.Equal(t, svc.invoices, s.Rows(), "failed submit does not alter rows")

	got := sink.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, KindError, got[0].Kind)
	assert.Equal(t, "a, b", got[0].Message)
}

func TestSessionBusyFlagScenario(t *testing.T) {
	// Walks the flag composition through a full load → submit → refresh
	// cycle; at every intermediate point exactly one sub-flag is set.
	svc := &fakeService{invoices: testInvoices("a")}
	s, _ := newTestSession(svc)

	_, seq := s.ChangeFilter(AllStatuses)
	assert.True(t, s.Busy())
	assertFlags(t, s, true, false, false)

	require.True(t, s.ApplyListResult(seq, svc.invoices, nil))
	assert.False(t, s.Busy())

	s.SetSelected([]string{"a"})
	_, ok := s.BeginSubmit()
	require.True(t, ok)
	assert.True(t, s.Busy())
	assertFlags(t, s, false, true, false)

	require.True(t, s.FinishSubmit(nil))
	assert.False(t, s.Busy())

	_, seq, ok = s.BeginRefresh()
	require.True(t, ok)
	assert.True(t, s.Busy())
	assertFlags(t, s, false, false, true)

	require.True(t, s.ApplyListResult(seq, svc.invoices, nil))
	assert.False(t, s.Busy())
	assertFlags(t, s, false, false, false)
}

func TestSessionRefreshWithoutQueryIsNoOp(t *testing.T) {
	s, _ := newTestSession(&fakeService{})

	_, _, ok := s.BeginRefresh()

	assert.False(t, ok)
	assert.False(t, s.Refreshing())
}

func TestSessionRefreshErrorUsesListFailurePath(t *testing.T) {
	svc := &fakeService{invoices: testInvoices("a")}
	s, sink := newTestSession(svc)

	_, seq := s.ChangeFilter(AllStatuses)
	require.True(t, s.ApplyListResult(seq, svc.invoices, nil))
	sink.Drain()

	_, seq, ok := s.BeginRefresh()
	require.True(t, ok)
	require.True(t, s.ApplyListResult(seq, nil, common.NewRemoteError("refresh failed")))

	assert.False(t, s.Refreshing())
	assert.Empty(t, s.Rows())
	got := sink.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, "refresh failed", got[0].Message)
}

func assertFlags(t *testing.T, s *Session, loading, submitting, refreshing bool) {
	t.Helper()
	assert.Equal(t, loading, s.Loading())
	assert.Equal(t, submitting, s.Submitting())
	assert.Equal(t, refreshing, s.Refreshing())
}
