// internal/engine/matchscore/score.go

// Package matchscore computes a 0–100 compatibility estimate between one
// vendor and one event, with human-readable reasons. Pure and deterministic:
// a given factor set always yields the same score and the same reason order.
package matchscore

import "math"

// Factors are the per-vendor signals the score is built from. Percent
// fields are expected in [0,100]; out-of-range input is clamped.
type Factors struct {
	EventTypeMatch       bool     `json:"eventTypeMatch"`
	BudgetOverlapPercent float64  `json:"budgetOverlapPercent"`
	ServiceMatchPercent  float64  `json:"serviceMatchPercent"`
	ResponseTimeHours    *float64 `json:"responseTimeHours,omitempty"`
	IsAvailable          bool     `json:"isAvailable"`
}

// Result carries the final score and reasons in evaluation order:
// event type, budget, services, response time, availability.
type Result struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Point budget per factor; maxima sum to 100.
const (
	eventTypePoints    = 25
	budgetMaxPoints    = 30
	serviceMaxPoints   = 25
	responseMaxPoints  = 10
	availabilityPoints = 10

	// Unknown response time contributes a flat neutral amount, no reason.
	responseNeutralPoints = 5
)

// Score evaluates the factors into a Result. The total is clamped with
// min(100, …); each contribution is non-negative so the lower bound holds
// by construction.
func Score(f Factors) Result {
	score := 0
	reasons := make([]string, 0, 5)

	if f.EventTypeMatch {
		score += eventTypePoints
		reasons = append(reasons, "Supports your event type")
	}

	budgetOverlap := clampPercent(f.BudgetOverlapPercent)
	score += int(math.Round(budgetOverlap / 100 * budgetMaxPoints))
	if budgetOverlap >= 80 {
		reasons = append(reasons, "Within your budget")
	} else if budgetOverlap >= 50 {
		reasons = append(reasons, "Partially within budget")
	}

	serviceMatch := clampPercent(f.ServiceMatchPercent)
	score += int(math.Round(serviceMatch / 100 * serviceMaxPoints))
	if serviceMatch >= 80 {
		reasons = append(reasons, "Matches your selected services")
	} else if serviceMatch > 0 {
		reasons = append(reasons, "Offers some of your required services")
	}

	if f.ResponseTimeHours == nil {
		score += responseNeutralPoints
	} else {
		switch hours := *f.ResponseTimeHours; {
		case hours <= 4:
			score += responseMaxPoints
			reasons = append(reasons, "Fast responder")
		case hours <= 12:
			score += 7
			reasons = append(reasons, "Responds within 12 hours")
		case hours <= 24:
			score += 4
		}
	}

	if f.IsAvailable {
		score += availabilityPoints
		reasons = append(reasons, "Currently available")
	}

	if score > 100 {
		score = 100
	}

	return Result{Score: score, Reasons: reasons}
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
