// internal/workers/matching/discover-vendors/models.go
package discovervendors

import "planora-workers/internal/engine/discovery"

type Input struct {
	EventID            string   `json:"eventId"`
	City               string   `json:"city"`
	EventType          string   `json:"eventType"`
	RequiredServiceIDs []string `json:"requiredServiceIds"`
	BudgetMin          float64  `json:"budgetMin"`
	BudgetMax          float64  `json:"budgetMax"`
	SortBy             string   `json:"sortBy,omitempty"`
	ServiceName        string   `json:"serviceName,omitempty"`
	Page               int      `json:"page,omitempty"`
}

type Output struct {
	Vendors       []discovery.ScoredVendor `json:"vendors"`
	Page          int                      `json:"page"`
	TotalPages    int                      `json:"totalPages"`
	FilteredCount int                      `json:"filteredCount"`
}
