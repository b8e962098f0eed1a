// internal/workers/lifecycle/update-vendor-status/handler_test.go
package updatevendorstatus

import (
	"context"
	"testing"

	"planora-workers/internal/common/logger"
	"planora-workers/internal/engine/lifecycle"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler() *Handler {
	tracker := lifecycle.NewTracker(lifecycle.NewMemoryStore())
	return NewHandler(LoadConfig(), tracker, logger.NewNoOpLogger())
}

func TestHandler_Execute_SetStatus(t *testing.T) {
	h := newHandler()
	ctx := context.Background()

	output, err := h.Execute(ctx, &Input{
		EventID:    "event-1",
		VendorID:   "v1",
		VendorName: "Grand Caterers",
		Status:     "shortlisted",
	})
	require.NoError(t, err)

	assert.Equal(t, "shortlisted", output.Status)
	assert.Equal(t, 1, output.Counts["shortlisted"])
	assert.Equal(t, 0, output.Counts["confirmed"])
	assert.Len(t, output.Counts, 4)
}

func TestHandler_Execute_LastWriteWins(t *testing.T) {
	h := newHandler()
	ctx := context.Background()

	input := &Input{EventID: "event-1", VendorID: "v1", Status: "shortlisted"}
	_, err := h.Execute(ctx, input)
	require.NoError(t, err)

	// Any transition is allowed, including confirmed back to shortlisted.
	input.Status = "confirmed"
	_, err = h.Execute(ctx, input)
	require.NoError(t, err)

	input.Status = "shortlisted"
	output, err := h.Execute(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, 1, output.Counts["shortlisted"])
	assert.Equal(t, 0, output.Counts["confirmed"])
}

func TestHandler_Execute_InvalidStatus(t *testing.T) {
	h := newHandler()

	_, err := h.Execute(context.Background(), &Input{
		EventID:  "event-1",
		VendorID: "v1",
		Status:   "ghosted",
	})
	require.Error(t, err)
}

func TestHandler_Execute_Remove(t *testing.T) {
	h := newHandler()
	ctx := context.Background()

	_, err := h.Execute(ctx, &Input{EventID: "event-1", VendorID: "v1", Status: "negotiating"})
	require.NoError(t, err)

	output, err := h.Execute(ctx, &Input{EventID: "event-1", VendorID: "v1", Remove: true})
	require.NoError(t, err)

	assert.True(t, output.Removed)
	assert.Equal(t, 0, output.Counts["negotiating"])
}

func TestHandler_Execute_RedisStoreCorruptionDegradesToEmpty(t *testing.T) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	defer srv.Close()

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	tracker := lifecycle.NewTracker(lifecycle.NewRedisStore(client))
	h := NewHandler(LoadConfig(), tracker, logger.NewNoOpLogger())

	require.NoError(t, srv.Set("lifecycle:event-1", "{not json"))

	output, err := h.Execute(context.Background(), &Input{
		EventID:  "event-1",
		VendorID: "v1",
		Status:   "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, output.Counts["confirmed"])
}

func TestValidateInput(t *testing.T) {
	assert.NoError(t, validateInput([]byte(`{"eventId":"e1","vendorId":"v1","status":"confirmed"}`)))
	assert.NoError(t, validateInput([]byte(`{"eventId":"e1","vendorId":"v1","remove":true}`)))
	assert.Error(t, validateInput([]byte(`{"vendorId":"v1","status":"confirmed"}`)))
	assert.Error(t, validateInput([]byte(`{"eventId":"","vendorId":"v1"}`)))
}
