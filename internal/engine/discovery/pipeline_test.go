// internal/engine/discovery/pipeline_test.go
package discovery

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"planora-workers/internal/catalog"
	stderrors "planora-workers/internal/common/errors"
	"planora-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	vendors []catalog.VendorProfile
	err     error
}

func (s *stubSource) VendorsByCity(_ context.Context, _ string) ([]catalog.VendorProfile, error) {
	return s.vendors, s.err
}

func hoursPtr(h float64) *float64 { return &h }

func testEvent() Event {
	return Event{
		EventID:            "event-1",
		City:               "Pune",
		EventType:          "wedding",
		RequiredServiceIDs: []string{"catering", "decor"},
		BudgetMin:          100000,
		BudgetMax:          500000,
	}
}

func vendor(id string, opts ...func(*catalog.VendorProfile)) catalog.VendorProfile {
	v := catalog.VendorProfile{
		VendorID:            id,
		Name:                "Vendor " + id,
		City:                "Pune",
		SupportedEventTypes: []string{"wedding"},
		RatingAverage:       4.0,
		ResponseTimeHours:   hoursPtr(3),
		Services: []catalog.VendorService{
			{ServiceID: "catering", Name: "Catering", PriceMin: 120000, PriceMax: 300000, IsAvailable: true},
		},
	}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

func newPipeline(source catalog.Source) *Pipeline {
	return NewPipeline(source, logger.NewNoOpLogger())
}

func TestDiscover_EventTypeFilter(t *testing.T) {
	vendors := []catalog.VendorProfile{
		vendor("match"),
		vendor("other-type", func(v *catalog.VendorProfile) {
			v.SupportedEventTypes = []string{"corporate"}
		}),
		vendor("all-types", func(v *catalog.VendorProfile) {
			v.SupportedEventTypes = nil
		}),
	}

	page, err := newPipeline(&stubSource{vendors: vendors}).Discover(context.Background(), testEvent(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, page.FilteredCount)
	for _, sv := range page.Vendors {
		assert.NotEqual(t, "other-type", sv.Vendor.VendorID)
	}
}

func TestDiscover_ServiceOverlapFilter(t *testing.T) {
	vendors := []catalog.VendorProfile{
		vendor("has-service"),
		vendor("unavailable", func(v *catalog.VendorProfile) {
			v.Services[0].IsAvailable = false
		}),
		vendor("wrong-service", func(v *catalog.VendorProfile) {
			v.Services[0].ServiceID = "fireworks"
		}),
	}

	page, err := newPipeline(&stubSource{vendors: vendors}).Discover(context.Background(), testEvent(), Options{})
	require.NoError(t, err)

	require.Equal(t, 1, page.FilteredCount)
	assert.Equal(t, "has-service", page.Vendors[0].Vendor.VendorID)
}

func TestDiscover_BudgetAdmissibility(t *testing.T) {
	vendors := []catalog.VendorProfile{
		vendor("affordable"),
		vendor("too-expensive", func(v *catalog.VendorProfile) {
			v.Services[0].PriceMin = 600000
			v.Services[0].PriceMax = 900000
		}),
	}

	page, err := newPipeline(&stubSource{vendors: vendors}).Discover(context.Background(), testEvent(), Options{})
	require.NoError(t, err)

	require.Equal(t, 1, page.FilteredCount)
	assert.Equal(t, "affordable", page.Vendors[0].Vendor.VendorID)
}

func TestDiscover_InvertedPriceBoundsNormalize(t *testing.T) {
	straight := vendor("straight")
	inverted := vendor("inverted", func(v *catalog.VendorProfile) {
		v.Services[0].PriceMin = 300000
		v.Services[0].PriceMax = 120000
	})

	scoredStraight := ScoreCandidates(testEvent(), []catalog.VendorProfile{straight})
	scoredInverted := ScoreCandidates(testEvent(), []catalog.VendorProfile{inverted})

	require.Len(t, scoredStraight, 1)
	require.Len(t, scoredInverted, 1)
	assert.Equal(t, scoredStraight[0].Score, scoredInverted[0].Score)
	assert.Equal(t, scoredStraight[0].PriceMin, scoredInverted[0].PriceMin)
	assert.Equal(t, scoredStraight[0].PriceMax, scoredInverted[0].PriceMax)
}

func TestDiscover_InvertedEventBudgetNormalizes(t *testing.T) {
	straight := testEvent()
	inverted := testEvent()
	inverted.BudgetMin, inverted.BudgetMax = inverted.BudgetMax, inverted.BudgetMin

	scoredStraight := ScoreCandidates(straight, []catalog.VendorProfile{vendor("v1")})
	scoredInverted := ScoreCandidates(inverted, []catalog.VendorProfile{vendor("v1")})

	require.Len(t, scoredStraight, 1)
	require.Len(t, scoredInverted, 1)
	assert.Equal(t, scoredStraight[0].Score, scoredInverted[0].Score)

	factorsStraight, ok := FactorsFor(straight, vendor("v1"))
	require.True(t, ok)
	factorsInverted, ok := FactorsFor(inverted, vendor("v1"))
	require.True(t, ok)
	assert.Equal(t, factorsStraight.BudgetOverlapPercent, factorsInverted.BudgetOverlapPercent)
}

func TestDiscover_AggregatePricing(t *testing.T) {
	v := vendor("multi", func(v *catalog.VendorProfile) {
		v.Services = append(v.Services, catalog.VendorService{
			ServiceID: "decor", Name: "Decor", PriceMin: 50000, PriceMax: 150000, IsAvailable: true,
		})
	})

	scored := ScoreCandidates(testEvent(), []catalog.VendorProfile{v})
	require.Len(t, scored, 1)

	assert.Equal(t, 170000.0, scored[0].AggregateMin)
	assert.Equal(t, 450000.0, scored[0].AggregateMax)
	assert.Equal(t, 50000.0, scored[0].PriceMin)
	assert.Equal(t, 300000.0, scored[0].PriceMax)
	assert.Equal(t, 2, scored[0].MatchedServiceCount)
}

func TestDiscover_ZeroWidthBudgetRangeIsNeutral(t *testing.T) {
	event := testEvent()
	event.BudgetMin = 300000
	event.BudgetMax = 300000

	assert.Equal(t, 80.0, budgetOverlapPercent(event, 120000, 300000))
}

func TestDiscover_SortKeys(t *testing.T) {
	vendors := []catalog.VendorProfile{
		vendor("a", func(v *catalog.VendorProfile) {
			v.RatingAverage = 3.0
			v.Services[0].PriceMin = 200000
			v.Services[0].PriceMax = 250000
		}),
		vendor("b", func(v *catalog.VendorProfile) {
			v.RatingAverage = 4.8
			v.Services[0].PriceMin = 120000
			v.Services[0].PriceMax = 400000
			v.Services = append(v.Services, catalog.VendorService{
				ServiceID: "decor", Name: "Decor", PriceMin: 40000, PriceMax: 90000, IsAvailable: true,
			})
		}),
	}
	source := &stubSource{vendors: vendors}
	p := newPipeline(source)
	ctx := context.Background()

	byRating, err := p.Discover(ctx, testEvent(), Options{SortBy: SortByRating})
	require.NoError(t, err)
	assert.Equal(t, "b", byRating.Vendors[0].Vendor.VendorID)

	byPriceLow, err := p.Discover(ctx, testEvent(), Options{SortBy: SortByPriceLow})
	require.NoError(t, err)
	assert.Equal(t, "b", byPriceLow.Vendors[0].Vendor.VendorID)

	byPriceHigh, err := p.Discover(ctx, testEvent(), Options{SortBy: SortByPriceHigh})
	require.NoError(t, err)
	assert.Equal(t, "b", byPriceHigh.Vendors[0].Vendor.VendorID)

	byServices, err := p.Discover(ctx, testEvent(), Options{SortBy: SortByServices})
	require.NoError(t, err)
	assert.Equal(t, "b", byServices.Vendors[0].Vendor.VendorID)

	_, err = p.Discover(ctx, testEvent(), Options{SortBy: "alphabetical"})
	require.Error(t, err)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeInvalidSortKey, stdErr.Code)
}

func TestDiscover_ServiceNameFilter(t *testing.T) {
	vendors := []catalog.VendorProfile{
		vendor("caterer"),
		vendor("decorator", func(v *catalog.VendorProfile) {
			v.Services[0].ServiceID = "decor"
			v.Services[0].Name = "Floral Decor"
		}),
	}

	page, err := newPipeline(&stubSource{vendors: vendors}).
		Discover(context.Background(), testEvent(), Options{ServiceName: "FLORAL"})
	require.NoError(t, err)

	require.Equal(t, 1, page.FilteredCount)
	assert.Equal(t, "decorator", page.Vendors[0].Vendor.VendorID)
}

func TestDiscover_Pagination(t *testing.T) {
	vendors := make([]catalog.VendorProfile, 0, 23)
	for i := 0; i < 23; i++ {
		vendors = append(vendors, vendor(fmt.Sprintf("v%02d", i)))
	}
	p := newPipeline(&stubSource{vendors: vendors})
	ctx := context.Background()

	page1, err := p.Discover(ctx, testEvent(), Options{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Len(t, page1.Vendors, 10)

	page3, err := p.Discover(ctx, testEvent(), Options{Page: 3})
	require.NoError(t, err)
	assert.Len(t, page3.Vendors, 3)

	beyond, err := p.Discover(ctx, testEvent(), Options{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, beyond.Vendors)
	assert.Equal(t, 23, beyond.FilteredCount)
}

func TestDiscover_CatalogFailureFailsClosed(t *testing.T) {
	p := newPipeline(&stubSource{err: errors.New("boom")})

	page, err := p.Discover(context.Background(), testEvent(), Options{})
	require.Error(t, err)
	assert.Nil(t, page)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeCatalogFetchFailed, stdErr.Code)
}

func TestFactorsFor(t *testing.T) {
	factors, ok := FactorsFor(testEvent(), vendor("v1"))
	require.True(t, ok)
	assert.True(t, factors.EventTypeMatch)
	assert.True(t, factors.IsAvailable)
	assert.Equal(t, 50.0, factors.ServiceMatchPercent)

	_, ok = FactorsFor(testEvent(), vendor("v2", func(v *catalog.VendorProfile) {
		v.SupportedEventTypes = []string{"corporate"}
	}))
	assert.False(t, ok)
}
