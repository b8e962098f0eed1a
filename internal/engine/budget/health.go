// internal/engine/budget/health.go
package budget

import "fmt"

type HealthStatus string

const (
	HealthBelow   HealthStatus = "below"
	HealthAligned HealthStatus = "aligned"
	HealthAbove   HealthStatus = "above"
)

// Health classifies a user's budget against the guidance range.
type Health struct {
	Status      HealthStatus `json:"status"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
}

// EvaluateHealth compares the user's budget midpoint against the guidance
// range for the event type. Returns nil when no guidance entry exists —
// a valid "unknown" outcome, not an error.
//
// The comparisons are strict (`<` and `>`): a midpoint exactly at
// 0.8×guide.Min or 1.2×guide.Max classifies as aligned.
func EvaluateHealth(guide Guide, eventType string, budgetMin, budgetMax float64) *Health {
	entry := guide.Lookup(eventType)
	if entry == nil {
		return nil
	}

	lo, hi := normalizeBounds(budgetMin, budgetMax)
	userMid := (lo + hi) / 2

	switch {
	case userMid < entry.Budget.Min*0.8:
		return &Health{
			Status: HealthBelow,
			Label:  "Below typical range",
			Description: fmt.Sprintf(
				"Budgets for this event type usually run %s–%s. A tight budget narrows vendor options.",
				formatAmount(entry.Budget.Min), formatAmount(entry.Budget.Max)),
		}
	case userMid > entry.Budget.Max*1.2:
		return &Health{
			Status: HealthAbove,
			Label:  "Above typical range",
			Description: fmt.Sprintf(
				"Budgets for this event type usually run %s–%s. You have room for premium vendors.",
				formatAmount(entry.Budget.Min), formatAmount(entry.Budget.Max)),
		}
	default:
		return &Health{
			Status:      HealthAligned,
			Label:       "On track",
			Description: "Your budget is in line with similar events.",
		}
	}
}

// normalizeBounds tolerates inverted input; upstream does not guarantee
// min ≤ max.
func normalizeBounds(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
