// internal/workers/outreach/send-bulk-inquiries/handler_test.go
package sendbulkinquiries

import (
	"context"
	"errors"
	"testing"

	"planora-workers/internal/common/logger"
	"planora-workers/internal/inquiry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDispatcher struct {
	dispatched []string
	failFor    map[string]bool
}

func (f *fakeDispatcher) Dispatch(_ context.Context, req inquiry.Request) error {
	if f.failFor[req.VendorID] {
		return errors.New("delivery refused")
	}
	f.dispatched = append(f.dispatched, req.VendorID)
	return nil
}

type fakeLog struct {
	sent []string
	err  error
}

func (f *fakeLog) SentVendorIDs(_ context.Context, _ string) ([]string, error) {
	return f.sent, f.err
}

func testInput(vendorIDs ...string) *Input {
	return &Input{
		EventID:   "event-1",
		UserID:    "user-1",
		VendorIDs: vendorIDs,
	}
}

func TestHandler_Execute_DedupSkipsAlreadySent(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	h := NewHandler(LoadConfig(), dispatcher, &fakeLog{sent: []string{"B"}}, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), testInput("A", "B", "C"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"A", "C"}, output.Sent)
	assert.Equal(t, []string{"B"}, output.Skipped)
	assert.False(t, output.NothingToSend)
	assert.ElementsMatch(t, []string{"A", "C"}, dispatcher.dispatched)
}

func TestHandler_Execute_NothingToSend(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	h := NewHandler(LoadConfig(), dispatcher, &fakeLog{sent: []string{"B"}}, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), testInput("B"))
	require.NoError(t, err)

	assert.True(t, output.NothingToSend)
	assert.Empty(t, output.Sent)
	assert.Empty(t, dispatcher.dispatched, "no dispatch call may happen")
}

func TestHandler_Execute_PartialFailure(t *testing.T) {
	dispatcher := &fakeDispatcher{failFor: map[string]bool{"B": true}}
	h := NewHandler(LoadConfig(), dispatcher, &fakeLog{}, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), testInput("A", "B", "C"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"A", "C"}, output.Sent)
	require.Len(t, output.Failed, 1)
	assert.Equal(t, "B", output.Failed[0].VendorID)
	assert.False(t, output.Failed[0].Sent)
}

func TestHandler_Execute_LogLookupFailure(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	h := NewHandler(LoadConfig(), dispatcher, &fakeLog{err: errors.New("db down")}, logger.NewNoOpLogger())

	_, err := h.Execute(context.Background(), testInput("A"))
	require.Error(t, err)
	assert.Empty(t, dispatcher.dispatched)
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{"valid", `{"eventId":"e1","userId":"u1","vendorIds":["v1"]}`, true},
		{"empty vendor list is valid", `{"eventId":"e1","userId":"u1","vendorIds":[]}`, true},
		{"missing eventId", `{"userId":"u1","vendorIds":["v1"]}`, false},
		{"blank userId", `{"eventId":"e1","userId":"","vendorIds":["v1"]}`, false},
		{"vendorIds not an array", `{"eventId":"e1","userId":"u1","vendorIds":"v1"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInput([]byte(tt.payload))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
