// internal/engine/budget/distribution.go
package budget

import "math"

// PlannedAmount is one category's allocation rendered against a concrete
// budget midpoint.
type PlannedAmount struct {
	Category string  `json:"category"`
	Percent  float64 `json:"percent"`
	Amount   float64 `json:"amount"`
}

// DistributionPlan returns the configured category split for an event type,
// in configured order. Empty when no entry exists.
func DistributionPlan(guide Guide, eventType string) []Allocation {
	entry := guide.Lookup(eventType)
	if entry == nil {
		return nil
	}
	return entry.Distribution
}

// PlanAmounts renders a distribution plan against the event's budget
// midpoint. Purely presentational arithmetic.
func PlanAmounts(plan []Allocation, budgetMin, budgetMax float64) []PlannedAmount {
	lo, hi := normalizeBounds(budgetMin, budgetMax)
	mid := (lo + hi) / 2

	out := make([]PlannedAmount, 0, len(plan))
	for _, a := range plan {
		out = append(out, PlannedAmount{
			Category: a.Category,
			Percent:  a.Percent,
			Amount:   math.Round(mid * a.Percent / 100),
		})
	}
	return out
}
