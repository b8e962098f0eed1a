// internal/engine/budget/guidance.go

// Package budget classifies a user's budget against per-event-type guidance
// and sketches how a budget is typically split across service categories.
// Guidance is supplied by configuration and consumed here, never computed.
package budget

import "planora-workers/internal/common/config"

// Range is a closed budget interval.
type Range struct {
	Min float64
	Max float64
}

// Mid returns the interval midpoint.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Allocation is one category's share of an event budget, in percent.
type Allocation struct {
	Category string  `json:"category"`
	Percent  float64 `json:"percent"`
}

// GuidanceEntry holds the reference data for one event type.
type GuidanceEntry struct {
	Budget            Range
	SuggestedServices []string
	Distribution      []Allocation
}

// Guide maps event type to its guidance entry. Absent entries are valid and
// every consumer degrades to an "unknown" result.
type Guide map[string]GuidanceEntry

// Lookup returns the entry for an event type, nil when none is configured.
func (g Guide) Lookup(eventType string) *GuidanceEntry {
	if g == nil {
		return nil
	}
	entry, ok := g[eventType]
	if !ok {
		return nil
	}
	return &entry
}

// FromConfig builds a Guide from the loaded configuration tables.
func FromConfig(cfg config.GuidanceConfig) Guide {
	guide := make(Guide, len(cfg.EventTypes))
	for eventType, g := range cfg.EventTypes {
		allocations := make([]Allocation, 0, len(g.Distribution))
		for _, a := range g.Distribution {
			allocations = append(allocations, Allocation{Category: a.Category, Percent: a.Percent})
		}
		guide[eventType] = GuidanceEntry{
			Budget:            Range{Min: g.BudgetMin, Max: g.BudgetMax},
			SuggestedServices: append([]string(nil), g.SuggestedServices...),
			Distribution:      allocations,
		}
	}
	return guide
}
