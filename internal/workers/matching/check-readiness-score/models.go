// internal/workers/matching/check-readiness-score/models.go
package checkreadinessscore

import (
	"time"

	"planora-workers/internal/engine/readiness"
)

// Input carries the planning signals for one event. When EventID is set and
// a lifecycle tracker is attached, confirmed/shortlisted counts come from
// tracked vendor state instead of the input fields.
type Input struct {
	EventID                string     `json:"eventId,omitempty"`
	EventType              string     `json:"eventType"`
	SelectedServiceCount   int        `json:"selectedServiceCount"`
	ConfirmedVendorCount   int        `json:"confirmedVendorCount"`
	ShortlistedVendorCount int        `json:"shortlistedVendorCount"`
	InquiryCount           int        `json:"inquiryCount"`
	BudgetMin              *float64   `json:"budgetMin,omitempty"`
	BudgetMax              *float64   `json:"budgetMax,omitempty"`
	EventDate              *time.Time `json:"eventDate,omitempty"`
}

type Output struct {
	ReadinessScore int                     `json:"readinessScore"`
	Label          string                  `json:"label"`
	Breakdown      []readiness.FactorScore `json:"breakdown"`
}
