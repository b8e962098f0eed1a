// internal/engine/readiness/readiness.go

// Package readiness aggregates planning-progress signals into one 0–100
// score with a per-factor breakdown. Pure and deterministic.
package readiness

import (
	"fmt"
	"math"
	"time"

	"planora-workers/internal/engine/budget"
)

// Input carries the planning signals for one event.
type Input struct {
	EventType              string
	SelectedServiceCount   int
	ConfirmedVendorCount   int
	ShortlistedVendorCount int
	InquiryCount           int
	BudgetMin              *float64
	BudgetMax              *float64
	EventDate              *time.Time
	// Now anchors the timeline factor; the zero value means time.Now().
	Now time.Time
}

// FactorScore is one line of the breakdown.
type FactorScore struct {
	Factor      string `json:"factor"`
	Points      int    `json:"points"`
	MaxPoints   int    `json:"maxPoints"`
	Description string `json:"description"`
}

// Result is the aggregated readiness estimate. Breakdown order is a
// contract consumers rely on for display: Services, Vendor Progress,
// Budget, Timeline, Outreach.
type Result struct {
	Score     int           `json:"score"`
	Label     string        `json:"label"`
	Breakdown []FactorScore `json:"breakdown"`
}

const (
	servicesMax = 25
	vendorsMax  = 30
	budgetMax   = 20
	timelineMax = 15
	outreachMax = 10
)

// Calculate scores the input against the guidance entry for its event type.
// A nil entry means no guidance is configured — every factor that depends on
// it degrades to its neutral rule.
func Calculate(in Input, entry *budget.GuidanceEntry) Result {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	breakdown := []FactorScore{
		servicesFactor(in, entry),
		vendorFactor(in),
		budgetFactor(in, entry),
		timelineFactor(in, now),
		outreachFactor(in),
	}

	total := 0
	for _, f := range breakdown {
		total += f.Points
	}

	return Result{
		Score:     total,
		Label:     labelFor(total),
		Breakdown: breakdown,
	}
}

func servicesFactor(in Input, entry *budget.GuidanceEntry) FactorScore {
	suggested := 0
	if entry != nil {
		suggested = len(entry.SuggestedServices)
	}

	var coverage float64
	if suggested == 0 {
		if in.SelectedServiceCount > 0 {
			coverage = 1
		}
	} else {
		coverage = float64(in.SelectedServiceCount) / float64(suggested)
		if coverage > 1 {
			coverage = 1
		}
	}

	points := int(math.Round(coverage * servicesMax))
	desc := fmt.Sprintf("%d services selected", in.SelectedServiceCount)
	if suggested > 0 {
		desc = fmt.Sprintf("%d of %d commonly needed services selected", in.SelectedServiceCount, suggested)
	}

	return FactorScore{Factor: "Services", Points: points, MaxPoints: servicesMax, Description: desc}
}

func vendorFactor(in Input) FactorScore {
	points := in.ConfirmedVendorCount * 10
	if points > vendorsMax {
		points = vendorsMax
	}
	if points < vendorsMax {
		bonus := in.ShortlistedVendorCount * 3
		if bonus > 10 {
			bonus = 10
		}
		points += bonus
		if points > vendorsMax {
			points = vendorsMax
		}
	}

	return FactorScore{
		Factor:      "Vendor Progress",
		Points:      points,
		MaxPoints:   vendorsMax,
		Description: fmt.Sprintf("%d confirmed, %d shortlisted", in.ConfirmedVendorCount, in.ShortlistedVendorCount),
	}
}

func budgetFactor(in Input, entry *budget.GuidanceEntry) FactorScore {
	f := FactorScore{Factor: "Budget", MaxPoints: budgetMax}

	if in.BudgetMin == nil || in.BudgetMax == nil {
		f.Description = "No budget set yet"
		return f
	}

	if entry == nil {
		f.Points = 10
		f.Description = "Budget set; no reference range for this event type"
		return f
	}

	guideMid := entry.Budget.Mid()
	if guideMid <= 0 {
		f.Points = 10
		f.Description = "Budget set; no reference range for this event type"
		return f
	}

	lo, hi := *in.BudgetMin, *in.BudgetMax
	if lo > hi {
		lo, hi = hi, lo
	}
	ratio := ((lo + hi) / 2) / guideMid

	switch {
	case ratio >= 0.5 && ratio <= 2:
		f.Points = 20
		f.Description = "Budget is realistic for this event type"
	case ratio >= 0.3 && ratio <= 3:
		f.Points = 12
		f.Description = "Budget is somewhat off typical for this event type"
	default:
		f.Points = 5
		f.Description = "Budget is far from typical for this event type"
	}
	return f
}

func timelineFactor(in Input, now time.Time) FactorScore {
	f := FactorScore{Factor: "Timeline", MaxPoints: timelineMax}

	if in.EventDate == nil {
		f.Description = "No event date set"
		return f
	}

	days := int(math.Floor(in.EventDate.Sub(now).Hours() / 24))
	switch {
	case days > 60:
		f.Points = 15
	case days > 30:
		f.Points = 12
	case days > 14:
		f.Points = 8
	case days > 0:
		f.Points = 4
	}

	if days > 0 {
		f.Description = fmt.Sprintf("%d days until the event", days)
	} else {
		f.Description = "Event date has passed"
	}
	return f
}

func outreachFactor(in Input) FactorScore {
	points := in.InquiryCount * 2
	if points > outreachMax {
		points = outreachMax
	}
	return FactorScore{
		Factor:      "Outreach",
		Points:      points,
		MaxPoints:   outreachMax,
		Description: fmt.Sprintf("%d inquiries sent", in.InquiryCount),
	}
}

// labelFor maps a total score to its display label, first match wins.
func labelFor(score int) string {
	switch {
	case score >= 80:
		return "Almost Ready!"
	case score >= 60:
		return "Good Progress"
	case score >= 40:
		return "Making Progress"
	case score >= 20:
		return "Early Stage"
	default:
		return "Getting Started"
	}
}
