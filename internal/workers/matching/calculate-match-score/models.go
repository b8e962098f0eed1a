// internal/workers/matching/calculate-match-score/models.go
package calculatematchscore

import "planora-workers/internal/catalog"

type Input struct {
	EventID            string                 `json:"eventId"`
	EventType          string                 `json:"eventType"`
	RequiredServiceIDs []string               `json:"requiredServiceIds"`
	BudgetMin          float64                `json:"budgetMin"`
	BudgetMax          float64                `json:"budgetMax"`
	VendorID           string                 `json:"vendorId"`
	VendorProfile      *catalog.VendorProfile `json:"vendorProfile,omitempty"`
}

type Output struct {
	VendorID   string   `json:"vendorId"`
	MatchScore int      `json:"matchScore"`
	Reasons    []string `json:"reasons"`
	Matched    bool     `json:"matched"`
}
