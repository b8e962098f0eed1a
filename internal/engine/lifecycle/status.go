// internal/engine/lifecycle/status.go

// Package lifecycle tracks the per-(event, vendor) negotiation state. It is
// the only state the matching engine owns; everything else it computes fresh.
package lifecycle

import "fmt"

// Status is a vendor's negotiation stage within one event. Any status may
// follow any other; no transition graph is enforced.
type Status string

const (
	StatusShortlisted Status = "shortlisted"
	StatusNegotiating Status = "negotiating"
	StatusConfirmed   Status = "confirmed"
	StatusRejected    Status = "rejected"
)

// AllStatuses lists every status in display order. CountsForEvent reports
// all of them even when zero.
var AllStatuses = []Status{StatusShortlisted, StatusNegotiating, StatusConfirmed, StatusRejected}

// ParseStatus validates a raw status value. Unknown values are a caller
// defect and rejected loudly rather than stored.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusShortlisted, StatusNegotiating, StatusConfirmed, StatusRejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown lifecycle status %q", s)
}
