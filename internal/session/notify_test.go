package session

import (
	"testing"

	"github.com/Veraticus/the-bills-must-flow/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationSinkAlwaysEmits(t *testing.T) {
	sink := NewNotificationSink()

	sink.Success("3 invoice(s) submitted for processing")
	sink.Failure("Error submitting invoices", "boom")
	sink.Success("done again")

	got := sink.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, KindSuccess, got[0].Kind)
	assert.Equal(t, "3 invoice(s) submitted for processing", got[0].Message)
	assert.Equal(t, KindError, got[1].Kind)
	assert.Equal(t, "Error submitting invoices", got[1].Title)
	assert.Equal(t, KindSuccess, got[2].Kind)

	assert.Empty(t, sink.Drain(), "drain clears the queue")
}

func TestNotificationSinkListErrorDeduplication(t *testing.T) {
	sink := NewNotificationSink()
	failure := common.NewRemoteError("query failed")

	sink.ListErrorOnce(failure)
	sink.ListErrorOnce(failure)

	got := sink.Drain()
	require.Len(t, got, 1, "identical consecutive failures notify once")
	assert.Equal(t, "Error loading invoices", got[0].Title)
	assert.Equal(t, "query failed", got[0].Message)
}

func TestNotificationSinkListErrorChangesMessage(t *testing.T) {
	sink := NewNotificationSink()

	sink.ListErrorOnce(common.NewRemoteError("first"))
	sink.ListErrorOnce(common.NewRemoteError("second"))
	sink.ListErrorOnce(common.NewRemoteError("second"))

	got := sink.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, "second", got[1].Message)
}

func TestNotificationSinkSuccessResetsDeduplication(t *testing.T) {
	sink := NewNotificationSink()
	failure := common.NewRemoteError("query failed")

	sink.ListErrorOnce(failure)
	sink.ResetListError()
	sink.ListErrorOnce(failure)

	got := sink.Drain()
	require.Len(t, got, 2, "an intervening success renotifies the identical failure")
	assert.Equal(t, got[0].Message, got[1].Message)
}
