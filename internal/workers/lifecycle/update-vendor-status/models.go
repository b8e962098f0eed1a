// internal/workers/lifecycle/update-vendor-status/models.go
package updatevendorstatus

type Input struct {
	EventID    string `json:"eventId"`
	VendorID   string `json:"vendorId"`
	VendorName string `json:"vendorName,omitempty"`
	// Status is one of shortlisted, negotiating, confirmed, rejected.
	// Ignored when Remove is true.
	Status string `json:"status,omitempty"`
	Remove bool   `json:"remove,omitempty"`
}

// Output echoes the applied change and the event's updated status counts.
// All four statuses are always present in Counts.
type Output struct {
	EventID  string         `json:"eventId"`
	VendorID string         `json:"vendorId"`
	Status   string         `json:"status,omitempty"`
	Removed  bool           `json:"removed,omitempty"`
	Counts   map[string]int `json:"counts"`
}
