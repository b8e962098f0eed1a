// internal/engine/lifecycle/tracker.go
package lifecycle

import (
	"context"
	"time"

	"planora-workers/internal/common/errors"
)

// Tracker is the per-(event, vendor) state machine over an injected Store.
// At most one status per pair; writes overwrite atomically, last-write-wins,
// no history retained.
type Tracker struct {
	store Store
	now   func() time.Time
}

func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// WithClock replaces the timestamp source. Test hook.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Get returns the record for a vendor, nil when none exists.
func (t *Tracker) Get(ctx context.Context, eventID, vendorID string) (*Record, error) {
	records, err := t.store.Load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	rec, ok := records[vendorID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Set creates or overwrites the vendor's record, stamping the current time.
func (t *Tracker) Set(ctx context.Context, eventID, vendorID string, status Status, vendorName string) error {
	records, err := t.store.Load(ctx, eventID)
	if err != nil {
		return err
	}
	records[vendorID] = Record{
		Status:     status,
		VendorName: vendorName,
		UpdatedAt:  t.now().UTC(),
	}
	if err := t.store.Save(ctx, eventID, records); err != nil {
		return errors.NewLifecycleStoreFailedError(eventID, err)
	}
	return nil
}

// Remove deletes the vendor's record. When the event bucket empties it is
// removed entirely; no empty buckets persist.
func (t *Tracker) Remove(ctx context.Context, eventID, vendorID string) error {
	records, err := t.store.Load(ctx, eventID)
	if err != nil {
		return err
	}
	delete(records, vendorID)
	if len(records) == 0 {
		if err := t.store.Delete(ctx, eventID); err != nil {
			return errors.NewLifecycleStoreFailedError(eventID, err)
		}
		return nil
	}
	if err := t.store.Save(ctx, eventID, records); err != nil {
		return errors.NewLifecycleStoreFailedError(eventID, err)
	}
	return nil
}

// ListForEvent returns every tracked vendor for an event.
func (t *Tracker) ListForEvent(ctx context.Context, eventID string) (map[string]Record, error) {
	return t.store.Load(ctx, eventID)
}

// CountsForEvent tallies records per status. All four statuses are present
// in the result even when zero.
func (t *Tracker) CountsForEvent(ctx context.Context, eventID string) (map[Status]int, error) {
	records, err := t.store.Load(ctx, eventID)
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int, len(AllStatuses))
	for _, s := range AllStatuses {
		counts[s] = 0
	}
	for _, rec := range records {
		counts[rec.Status]++
	}
	return counts, nil
}
