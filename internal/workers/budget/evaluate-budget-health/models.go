// internal/workers/budget/evaluate-budget-health/models.go
package evaluatebudgethealth

import "planora-workers/internal/engine/budget"

type Input struct {
	EventID   string  `json:"eventId,omitempty"`
	EventType string  `json:"eventType"`
	BudgetMin float64 `json:"budgetMin"`
	BudgetMax float64 `json:"budgetMax"`
}

// Output reports the health classification plus the guidance extras for the
// event type. Known is false when no guidance exists; the remaining fields
// are then empty.
type Output struct {
	Known             bool                   `json:"known"`
	Status            string                 `json:"status,omitempty"`
	Label             string                 `json:"label,omitempty"`
	Description       string                 `json:"description,omitempty"`
	SuggestedServices []string               `json:"suggestedServices,omitempty"`
	Distribution      []budget.PlannedAmount `json:"distribution,omitempty"`
}
