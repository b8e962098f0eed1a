// internal/engine/discovery/pipeline.go

// Package discovery orchestrates vendor matching for one event: fetch the
// city-scoped catalog, filter, score, sort, and paginate. Each run works on a
// fresh snapshot; nothing is incrementally maintained between invocations.
package discovery

import (
	"context"
	"sort"
	"strings"

	"planora-workers/internal/catalog"
	"planora-workers/internal/common/errors"
	"planora-workers/internal/common/logger"
	"planora-workers/internal/engine/matchscore"
)

// PageSize is the fixed number of scored vendors per result page.
const PageSize = 10

// Sort keys accepted by Options.SortBy.
const (
	SortByMatch     = "match"
	SortByRating    = "rating"
	SortByPriceLow  = "price-low"
	SortByPriceHigh = "price-high"
	SortByServices  = "services"
)

// Event is the matching input: where, what kind, which services, and the
// budget range the candidates are judged against.
type Event struct {
	EventID            string   `json:"eventId"`
	City               string   `json:"city"`
	EventType          string   `json:"eventType"`
	RequiredServiceIDs []string `json:"requiredServiceIds"`
	BudgetMin          float64  `json:"budgetMin"`
	BudgetMax          float64  `json:"budgetMax"`
}

// Options hold the caller's sort/filter/pagination state. Zero values mean
// match-ordered, unfiltered, first page.
type Options struct {
	SortBy      string `json:"sortBy,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`
	Page        int    `json:"page,omitempty"`
}

// ScoredVendor is one admissible candidate with its score and the pricing
// derived from the services that matched the event's required set.
type ScoredVendor struct {
	Vendor              catalog.VendorProfile   `json:"vendor"`
	Score               int                     `json:"score"`
	Reasons             []string                `json:"reasons"`
	MatchedServices     []catalog.VendorService `json:"matchedServices"`
	MatchedServiceCount int                     `json:"matchedServiceCount"`
	PriceMin            float64                 `json:"priceMin"`
	PriceMax            float64                 `json:"priceMax"`
	AggregateMin        float64                 `json:"aggregateMin"`
	AggregateMax        float64                 `json:"aggregateMax"`
}

// ResultPage is one page of the ranked result set.
type ResultPage struct {
	Vendors       []ScoredVendor `json:"vendors"`
	Page          int            `json:"page"`
	TotalPages    int            `json:"totalPages"`
	FilteredCount int            `json:"filteredCount"`
}

// normalized returns the event with its budget bounds in (min, max) order.
// Upstream does not guarantee ordering, same as vendor service prices.
func (e Event) normalized() Event {
	if e.BudgetMin > e.BudgetMax {
		e.BudgetMin, e.BudgetMax = e.BudgetMax, e.BudgetMin
	}
	return e
}

// Pipeline runs discovery against a catalog source.
type Pipeline struct {
	source catalog.Source
	log    logger.Logger
}

func NewPipeline(source catalog.Source, log logger.Logger) *Pipeline {
	return &Pipeline{source: source, log: log}
}

// Discover fetches the event city's catalog and returns the requested page of
// scored candidates. A catalog read failure fails closed: the error is
// returned and no partial results are produced.
func (p *Pipeline) Discover(ctx context.Context, event Event, opts Options) (*ResultPage, error) {
	if err := validateSortKey(opts.SortBy); err != nil {
		return nil, err
	}

	vendors, err := p.source.VendorsByCity(ctx, event.City)
	if err != nil {
		p.log.Error("catalog fetch failed", map[string]interface{}{
			"eventId": event.EventID,
			"city":    event.City,
			"error":   err,
		})
		return nil, errors.NewCatalogFetchFailedError(event.City, err)
	}

	scored := ScoreCandidates(event, vendors)
	sortCandidates(scored, opts.SortBy)
	scored = filterByServiceName(scored, opts.ServiceName)

	return paginate(scored, opts.Page), nil
}

// ScoreCandidates applies the filter and scoring steps to a catalog snapshot.
// Pure: safe to call from tests and from re-ranking paths without I/O.
func ScoreCandidates(event Event, vendors []catalog.VendorProfile) []ScoredVendor {
	event = event.normalized()
	required := make(map[string]bool, len(event.RequiredServiceIDs))
	for _, id := range event.RequiredServiceIDs {
		required[id] = true
	}

	scored := make([]ScoredVendor, 0, len(vendors))
	for _, vendor := range vendors {
		if !vendor.SupportsEventType(event.EventType) {
			continue
		}

		matched := matchedServices(vendor, required)
		if len(matched) == 0 {
			continue
		}

		candidate := aggregatePricing(vendor, matched)
		if candidate.AggregateMin > event.BudgetMax {
			continue
		}

		factors := matchscore.Factors{
			EventTypeMatch:       true,
			BudgetOverlapPercent: budgetOverlapPercent(event, candidate.PriceMin, candidate.PriceMax),
			ServiceMatchPercent:  serviceMatchPercent(len(matched), len(event.RequiredServiceIDs)),
			ResponseTimeHours:    vendor.ResponseTimeHours,
			IsAvailable:          true,
		}
		result := matchscore.Score(factors)
		candidate.Score = result.Score
		candidate.Reasons = result.Reasons

		scored = append(scored, candidate)
	}
	return scored
}

// FactorsFor derives the score factors for one vendor against one event,
// for callers that score a single vendor outside the full pipeline. The
// second return is false when the vendor would not pass the pipeline filters.
func FactorsFor(event Event, vendor catalog.VendorProfile) (matchscore.Factors, bool) {
	event = event.normalized()
	if !vendor.SupportsEventType(event.EventType) {
		return matchscore.Factors{}, false
	}

	required := make(map[string]bool, len(event.RequiredServiceIDs))
	for _, id := range event.RequiredServiceIDs {
		required[id] = true
	}
	matched := matchedServices(vendor, required)
	if len(matched) == 0 {
		return matchscore.Factors{}, false
	}

	candidate := aggregatePricing(vendor, matched)
	return matchscore.Factors{
		EventTypeMatch:       true,
		BudgetOverlapPercent: budgetOverlapPercent(event, candidate.PriceMin, candidate.PriceMax),
		ServiceMatchPercent:  serviceMatchPercent(len(matched), len(event.RequiredServiceIDs)),
		ResponseTimeHours:    vendor.ResponseTimeHours,
		IsAvailable:          true,
	}, true
}

func matchedServices(vendor catalog.VendorProfile, required map[string]bool) []catalog.VendorService {
	var matched []catalog.VendorService
	for _, svc := range vendor.Services {
		if svc.IsAvailable && required[svc.ServiceID] {
			matched = append(matched, svc.Normalized())
		}
	}
	return matched
}

func aggregatePricing(vendor catalog.VendorProfile, matched []catalog.VendorService) ScoredVendor {
	candidate := ScoredVendor{
		Vendor:              vendor,
		MatchedServices:     matched,
		MatchedServiceCount: len(matched),
		PriceMin:            matched[0].PriceMin,
		PriceMax:            matched[0].PriceMax,
	}
	for _, svc := range matched {
		candidate.AggregateMin += svc.PriceMin
		candidate.AggregateMax += svc.PriceMax
		if svc.PriceMin < candidate.PriceMin {
			candidate.PriceMin = svc.PriceMin
		}
		if svc.PriceMax > candidate.PriceMax {
			candidate.PriceMax = svc.PriceMax
		}
	}
	return candidate
}

// budgetOverlapPercent measures how much of the event's budget range the
// vendor's matched-service price span covers. A zero-width event range has no
// meaningful overlap length, so a neutral 80 is used.
func budgetOverlapPercent(event Event, vendorMin, vendorMax float64) float64 {
	width := event.BudgetMax - event.BudgetMin
	if width <= 0 {
		return 80
	}

	low := event.BudgetMin
	if vendorMin > low {
		low = vendorMin
	}
	high := event.BudgetMax
	if vendorMax < high {
		high = vendorMax
	}
	if high <= low {
		return 0
	}

	percent := (high - low) / width * 100
	if percent > 100 {
		percent = 100
	}
	return percent
}

func serviceMatchPercent(matchedCount, requiredCount int) float64 {
	if requiredCount == 0 {
		return 0
	}
	return float64(matchedCount) / float64(requiredCount) * 100
}

func validateSortKey(sortBy string) error {
	switch sortBy {
	case "", SortByMatch, SortByRating, SortByPriceLow, SortByPriceHigh, SortByServices:
		return nil
	}
	return errors.NewInvalidSortKeyError(sortBy)
}

func sortCandidates(scored []ScoredVendor, sortBy string) {
	switch sortBy {
	case SortByRating:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Vendor.RatingAverage > scored[j].Vendor.RatingAverage
		})
	case SortByPriceLow:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].PriceMin < scored[j].PriceMin
		})
	case SortByPriceHigh:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].PriceMax > scored[j].PriceMax
		})
	case SortByServices:
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].MatchedServiceCount > scored[j].MatchedServiceCount
		})
	default: // match
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})
	}
}

func filterByServiceName(scored []ScoredVendor, name string) []ScoredVendor {
	if name == "" {
		return scored
	}
	needle := strings.ToLower(name)

	filtered := make([]ScoredVendor, 0, len(scored))
	for _, candidate := range scored {
		for _, svc := range candidate.MatchedServices {
			if strings.Contains(strings.ToLower(svc.Name), needle) {
				filtered = append(filtered, candidate)
				break
			}
		}
	}
	return filtered
}

func paginate(scored []ScoredVendor, page int) *ResultPage {
	if page < 1 {
		page = 1
	}
	totalPages := (len(scored) + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	if start > len(scored) {
		start = len(scored)
	}
	end := start + PageSize
	if end > len(scored) {
		end = len(scored)
	}

	return &ResultPage{
		Vendors:       scored[start:end],
		Page:          page,
		TotalPages:    totalPages,
		FilteredCount: len(scored),
	}
}
