// internal/engine/matchscore/score_test.go
package matchscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hours(h float64) *float64 { return &h }

func TestScore_Components(t *testing.T) {
	tests := []struct {
		name    string
		factors Factors
		score   int
		reasons []string
	}{
		{
			name: "full marks",
			factors: Factors{
				EventTypeMatch:       true,
				BudgetOverlapPercent: 100,
				ServiceMatchPercent:  100,
				ResponseTimeHours:    hours(2),
				IsAvailable:          true,
			},
			score: 100,
			reasons: []string{
				"Supports your event type",
				"Within your budget",
				"Matches your selected services",
				"Fast responder",
				"Currently available",
			},
		},
		{
			name:    "zero factors",
			factors: Factors{ResponseTimeHours: hours(48)},
			score:   0,
			reasons: []string{},
		},
		{
			name: "partial budget overlap",
			factors: Factors{
				BudgetOverlapPercent: 60,
				ResponseTimeHours:    hours(48),
			},
			score:   18,
			reasons: []string{"Partially within budget"},
		},
		{
			name: "some services no budget reason",
			factors: Factors{
				ServiceMatchPercent: 50,
				ResponseTimeHours:   hours(48),
			},
			score:   13,
			reasons: []string{"Offers some of your required services"},
		},
		{
			name: "slow but within a day gives points without a reason",
			factors: Factors{
				ResponseTimeHours: hours(20),
			},
			score:   4,
			reasons: []string{},
		},
		{
			name: "moderate responder",
			factors: Factors{
				ResponseTimeHours: hours(10),
			},
			score:   7,
			reasons: []string{"Responds within 12 hours"},
		},
		{
			name:    "unknown response time is neutral",
			factors: Factors{},
			score:   5,
			reasons: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(tt.factors)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.reasons, result.Reasons)
		})
	}
}

func TestScore_ClampsOutOfRangeInput(t *testing.T) {
	result := Score(Factors{
		EventTypeMatch:       true,
		BudgetOverlapPercent: 250,
		ServiceMatchPercent:  -40,
		ResponseTimeHours:    hours(1),
		IsAvailable:          true,
	})

	// 25 + 30 + 0 + 10 + 10
	assert.Equal(t, 75, result.Score)
}

func TestScore_BoundsHold(t *testing.T) {
	overlaps := []float64{-10, 0, 33, 50, 79, 80, 100, 400}
	services := []float64{-5, 0, 25, 80, 100, 180}
	times := []*float64{nil, hours(0), hours(4), hours(12), hours(24), hours(100)}

	for _, bo := range overlaps {
		for _, sm := range services {
			for _, rt := range times {
				for _, et := range []bool{true, false} {
					for _, av := range []bool{true, false} {
						result := Score(Factors{
							EventTypeMatch:       et,
							BudgetOverlapPercent: bo,
							ServiceMatchPercent:  sm,
							ResponseTimeHours:    rt,
							IsAvailable:          av,
						})
						assert.GreaterOrEqual(t, result.Score, 0)
						assert.LessOrEqual(t, result.Score, 100)
					}
				}
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	f := Factors{
		EventTypeMatch:       true,
		BudgetOverlapPercent: 67,
		ServiceMatchPercent:  50,
		ResponseTimeHours:    hours(6),
		IsAvailable:          true,
	}

	first := Score(f)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(f))
	}
}
