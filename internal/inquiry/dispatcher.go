// internal/inquiry/dispatcher.go

// Package inquiry delivers vendor inquiries and records what was sent. The
// engine only depends on the Dispatcher interface; delivery transport is an
// external collaborator.
package inquiry

import "context"

// Request is one inquiry from a user to a vendor about an event.
type Request struct {
	EventID  string  `json:"eventId"`
	VendorID string  `json:"vendorId"`
	UserID   string  `json:"userId"`
	Message  *string `json:"message,omitempty"`
}

// ItemOutcome is the per-vendor result of a bulk dispatch.
type ItemOutcome struct {
	VendorID string `json:"vendorId"`
	Sent     bool   `json:"sent"`
	Error    string `json:"error,omitempty"`
}

// Dispatcher submits inquiries. Dispatch returns an error when delivery for
// that single request could not be confirmed; the caller decides whether to
// keep going.
type Dispatcher interface {
	Dispatch(ctx context.Context, req Request) error
}
