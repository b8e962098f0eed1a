// internal/workers/matching/check-readiness-score/handler_test.go
package checkreadinessscore

import (
	"context"
	"testing"
	"time"

	"planora-workers/internal/common/logger"
	"planora-workers/internal/engine/budget"
	"planora-workers/internal/engine/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGuide() budget.Guide {
	return budget.Guide{
		"wedding": {
			Budget:            budget.Range{Min: 200000, Max: 500000},
			SuggestedServices: []string{"catering", "decor", "photography", "music"},
		},
	}
}

func floatPtr(f float64) *float64 { return &f }

func newHandler(tracker *lifecycle.Tracker) *Handler {
	return NewHandler(LoadConfig(), testGuide(), tracker, logger.NewNoOpLogger())
}

func TestHandler_Execute_Breakdown(t *testing.T) {
	eventDate := time.Now().Add(40 * 24 * time.Hour)

	input := &Input{
		EventType:              "wedding",
		SelectedServiceCount:   4,
		ConfirmedVendorCount:   2,
		ShortlistedVendorCount: 1,
		InquiryCount:           3,
		BudgetMin:              floatPtr(300000),
		BudgetMax:              floatPtr(400000),
		EventDate:              &eventDate,
	}

	output, err := newHandler(nil).Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 86, output.ReadinessScore)
	assert.Equal(t, "Almost Ready!", output.Label)

	require.Len(t, output.Breakdown, 5)
	factors := make([]string, 0, 5)
	for _, f := range output.Breakdown {
		factors = append(factors, f.Factor)
	}
	assert.Equal(t, []string{"Services", "Vendor Progress", "Budget", "Timeline", "Outreach"}, factors)

	assert.Equal(t, 25, output.Breakdown[0].Points)
	assert.Equal(t, 23, output.Breakdown[1].Points)
	assert.Equal(t, 20, output.Breakdown[2].Points)
	assert.Equal(t, 12, output.Breakdown[3].Points)
	assert.Equal(t, 6, output.Breakdown[4].Points)
}

func TestHandler_Execute_EmptyPlan(t *testing.T) {
	output, err := newHandler(nil).Execute(context.Background(), &Input{EventType: "wedding"})
	require.NoError(t, err)

	assert.Equal(t, 0, output.ReadinessScore)
	assert.Equal(t, "Getting Started", output.Label)
}

func TestHandler_Execute_CountsFromTracker(t *testing.T) {
	tracker := lifecycle.NewTracker(lifecycle.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, tracker.Set(ctx, "event-1", "v1", lifecycle.StatusConfirmed, "Vendor One"))
	require.NoError(t, tracker.Set(ctx, "event-1", "v2", lifecycle.StatusShortlisted, "Vendor Two"))

	input := &Input{
		EventID:   "event-1",
		EventType: "wedding",
		// Input counts are stale on purpose; tracked state wins.
		ConfirmedVendorCount:   0,
		ShortlistedVendorCount: 0,
	}

	output, err := newHandler(tracker).Execute(ctx, input)
	require.NoError(t, err)

	// 1 confirmed (10) + 1 shortlisted bonus (3).
	assert.Equal(t, 13, output.Breakdown[1].Points)
}

func TestHandler_Execute_UnknownEventType(t *testing.T) {
	input := &Input{
		EventType:            "hackathon",
		SelectedServiceCount: 2,
		BudgetMin:            floatPtr(50000),
		BudgetMax:            floatPtr(80000),
	}

	output, err := newHandler(nil).Execute(context.Background(), input)
	require.NoError(t, err)

	// No guidance entry: services degrade to full credit when any selected,
	// budget to the flat 10.
	assert.Equal(t, 25, output.Breakdown[0].Points)
	assert.Equal(t, 10, output.Breakdown[2].Points)
}
