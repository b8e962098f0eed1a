// internal/engine/discovery/bulk.go

package discovery

import (
	"context"
	"sort"

	"planora-workers/internal/inquiry"
)

// DedupSet tracks vendor IDs already inquired for one event. It is the
// authority for bulk-dispatch idempotence: a vendor in the set is never
// submitted again.
type DedupSet struct {
	sent map[string]bool
}

// NewDedupSet seeds the set with vendors from prior sessions, typically the
// dispatcher's send log.
func NewDedupSet(sentVendorIDs ...string) *DedupSet {
	s := &DedupSet{sent: make(map[string]bool, len(sentVendorIDs))}
	for _, id := range sentVendorIDs {
		s.sent[id] = true
	}
	return s
}

func (s *DedupSet) Contains(vendorID string) bool {
	return s.sent[vendorID]
}

func (s *DedupSet) Mark(vendorID string) {
	s.sent[vendorID] = true
}

func (s *DedupSet) Len() int {
	return len(s.sent)
}

// BulkResult reports a bulk dispatch: which vendors were confirmed sent,
// which were skipped as duplicates, and which failed. NothingToSend is true
// when dedup left no vendors to submit and no dispatch call was made.
type BulkResult struct {
	Sent          []string              `json:"sent"`
	Skipped       []string              `json:"skipped"`
	Failed        []inquiry.ItemOutcome `json:"failed,omitempty"`
	NothingToSend bool                  `json:"nothingToSend"`
}

// SendBulkInquiries submits an inquiry to every vendor in vendorIDs that is
// not already in the dedup set. Confirmed sends are added to the set as they
// happen, so a retry after a partial failure only re-submits the failures.
func SendBulkInquiries(ctx context.Context, dispatcher inquiry.Dispatcher, dedup *DedupSet, eventID, userID string, vendorIDs []string, message *string) (*BulkResult, error) {
	result := &BulkResult{}

	var pending []string
	seen := make(map[string]bool, len(vendorIDs))
	for _, id := range vendorIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if dedup.Contains(id) {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		pending = append(pending, id)
	}

	if len(pending) == 0 {
		result.NothingToSend = true
		return result, nil
	}
	sort.Strings(pending)

	for _, vendorID := range pending {
		err := dispatcher.Dispatch(ctx, inquiry.Request{
			EventID:  eventID,
			VendorID: vendorID,
			UserID:   userID,
			Message:  message,
		})
		if err != nil {
			result.Failed = append(result.Failed, inquiry.ItemOutcome{
				VendorID: vendorID,
				Sent:     false,
				Error:    err.Error(),
			})
			continue
		}
		dedup.Mark(vendorID)
		result.Sent = append(result.Sent, vendorID)
	}

	return result, nil
}
