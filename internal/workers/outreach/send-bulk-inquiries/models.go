// internal/workers/outreach/send-bulk-inquiries/models.go
package sendbulkinquiries

import "planora-workers/internal/inquiry"

type Input struct {
	EventID   string   `json:"eventId"`
	UserID    string   `json:"userId"`
	VendorIDs []string `json:"vendorIds"`
	Message   *string  `json:"message,omitempty"`
}

type Output struct {
	Sent          []string              `json:"sent"`
	Skipped       []string              `json:"skipped"`
	Failed        []inquiry.ItemOutcome `json:"failed,omitempty"`
	NothingToSend bool                  `json:"nothingToSend"`
}
