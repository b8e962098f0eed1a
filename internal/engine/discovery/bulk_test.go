// internal/engine/discovery/bulk_test.go
package discovery

import (
	"context"
	"errors"
	"testing"

	"planora-workers/internal/inquiry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	calls   []string
	failFor map[string]bool
}

func (d *recordingDispatcher) Dispatch(_ context.Context, req inquiry.Request) error {
	d.calls = append(d.calls, req.VendorID)
	if d.failFor[req.VendorID] {
		return errors.New("delivery refused")
	}
	return nil
}

func TestSendBulkInquiries_DedupIdempotence(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	dedup := NewDedupSet("B")
	ctx := context.Background()

	result, err := SendBulkInquiries(ctx, dispatcher, dedup, "event-1", "user-1",
		[]string{"A", "B", "C"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C"}, result.Sent)
	assert.Equal(t, []string{"B"}, result.Skipped)
	assert.False(t, result.NothingToSend)
	assert.Equal(t, []string{"A", "C"}, dispatcher.calls)

	// A repeat of the same request performs zero dispatch calls.
	dispatcher.calls = nil
	repeat, err := SendBulkInquiries(ctx, dispatcher, dedup, "event-1", "user-1",
		[]string{"A", "B", "C"}, nil)
	require.NoError(t, err)
	assert.True(t, repeat.NothingToSend)
	assert.Empty(t, dispatcher.calls)
}

func TestSendBulkInquiries_NothingToSend(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	dedup := NewDedupSet("B")

	result, err := SendBulkInquiries(context.Background(), dispatcher, dedup,
		"event-1", "user-1", []string{"B"}, nil)
	require.NoError(t, err)

	assert.True(t, result.NothingToSend)
	assert.Empty(t, result.Sent)
	assert.Empty(t, dispatcher.calls)
}

func TestSendBulkInquiries_PartialFailureRetriesOnlyFailures(t *testing.T) {
	dispatcher := &recordingDispatcher{failFor: map[string]bool{"B": true}}
	dedup := NewDedupSet()
	ctx := context.Background()

	result, err := SendBulkInquiries(ctx, dispatcher, dedup, "event-1", "user-1",
		[]string{"A", "B", "C"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C"}, result.Sent)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "B", result.Failed[0].VendorID)

	// Retry: only the failed vendor goes out again.
	dispatcher.failFor = nil
	dispatcher.calls = nil
	retry, err := SendBulkInquiries(ctx, dispatcher, dedup, "event-1", "user-1",
		[]string{"A", "B", "C"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, retry.Sent)
	assert.Equal(t, []string{"B"}, dispatcher.calls)
}

func TestSendBulkInquiries_DuplicateInputCollapses(t *testing.T) {
	dispatcher := &recordingDispatcher{}

	result, err := SendBulkInquiries(context.Background(), dispatcher, NewDedupSet(),
		"event-1", "user-1", []string{"A", "A", "A"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, result.Sent)
	assert.Equal(t, []string{"A"}, dispatcher.calls)
}
