// internal/engine/readiness/readiness_test.go
package readiness

import (
	"testing"
	"time"

	"planora-workers/internal/engine/budget"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }

func testEntry() *budget.GuidanceEntry {
	return &budget.GuidanceEntry{
		Budget:            budget.Range{Min: 200000, Max: 500000},
		SuggestedServices: []string{"catering", "decor", "photography", "music"},
	}
}

func TestCalculate_WorkedExample(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	result := Calculate(Input{
		EventType:              "wedding",
		SelectedServiceCount:   4,
		ConfirmedVendorCount:   2,
		ShortlistedVendorCount: 1,
		InquiryCount:           3,
		BudgetMin:              floatPtr(300000),
		BudgetMax:              floatPtr(400000),
		EventDate:              timePtr(now.Add(40 * 24 * time.Hour)),
		Now:                    now,
	}, testEntry())

	assert.Equal(t, 86, result.Score)
	assert.Equal(t, "Almost Ready!", result.Label)

	require.Len(t, result.Breakdown, 5)
	assert.Equal(t, "Services", result.Breakdown[0].Factor)
	assert.Equal(t, 25, result.Breakdown[0].Points)
	assert.Equal(t, "Vendor Progress", result.Breakdown[1].Factor)
	assert.Equal(t, 23, result.Breakdown[1].Points)
	assert.Equal(t, "Budget", result.Breakdown[2].Factor)
	assert.Equal(t, 20, result.Breakdown[2].Points)
	assert.Equal(t, "Timeline", result.Breakdown[3].Factor)
	assert.Equal(t, 12, result.Breakdown[3].Points)
	assert.Equal(t, "Outreach", result.Breakdown[4].Factor)
	assert.Equal(t, 6, result.Breakdown[4].Points)
}

func TestCalculate_EmptyPlan(t *testing.T) {
	result := Calculate(Input{EventType: "wedding"}, testEntry())

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "Getting Started", result.Label)
	require.Len(t, result.Breakdown, 5)
	for _, f := range result.Breakdown {
		assert.Zero(t, f.Points)
	}
}

func TestCalculate_VendorFactorCaps(t *testing.T) {
	result := Calculate(Input{
		ConfirmedVendorCount:   5,
		ShortlistedVendorCount: 10,
	}, nil)

	assert.Equal(t, 30, result.Breakdown[1].Points)
}

func TestCalculate_ShortlistBonusCaps(t *testing.T) {
	result := Calculate(Input{
		ShortlistedVendorCount: 8,
	}, nil)

	// No confirmed vendors; shortlist bonus alone caps at 10.
	assert.Equal(t, 10, result.Breakdown[1].Points)
}

func TestCalculate_TimelineBands(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		days   int
		points int
	}{
		{90, 15},
		{61, 15},
		{45, 12},
		{20, 8},
		{7, 4},
		{-1, 0},
	}

	for _, tt := range tests {
		result := Calculate(Input{
			EventDate: timePtr(now.Add(time.Duration(tt.days) * 24 * time.Hour)),
			Now:       now,
		}, nil)
		assert.Equal(t, tt.points, result.Breakdown[3].Points, "days=%d", tt.days)
	}
}

func TestCalculate_NoGuidanceDegrades(t *testing.T) {
	result := Calculate(Input{
		SelectedServiceCount: 1,
		BudgetMin:            floatPtr(50000),
		BudgetMax:            floatPtr(60000),
	}, nil)

	// Any selection gets full services credit without a suggestion list;
	// a set budget without a reference range gets the flat middle score.
	assert.Equal(t, 25, result.Breakdown[0].Points)
	assert.Equal(t, 10, result.Breakdown[2].Points)
}

func TestCalculate_BudgetRatioBands(t *testing.T) {
	entry := testEntry() // guide midpoint 350000

	tests := []struct {
		name   string
		min    float64
		max    float64
		points int
	}{
		{"realistic", 300000, 400000, 20},
		{"somewhat off", 100000, 150000, 12},
		{"far off", 10000, 20000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Calculate(Input{
				BudgetMin: floatPtr(tt.min),
				BudgetMax: floatPtr(tt.max),
			}, entry)
			assert.Equal(t, tt.points, result.Breakdown[2].Points)
		})
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		score int
		label string
	}{
		{85, "Almost Ready!"},
		{80, "Almost Ready!"},
		{79, "Good Progress"},
		{60, "Good Progress"},
		{59, "Making Progress"},
		{40, "Making Progress"},
		{39, "Early Stage"},
		{20, "Early Stage"},
		{19, "Getting Started"},
		{0, "Getting Started"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, labelFor(tt.score), "score=%d", tt.score)
	}
}
