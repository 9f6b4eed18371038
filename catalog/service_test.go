package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rental-engine/catalog"
	"github.com/warp/rental-engine/catalog/store"
	"github.com/warp/rental-engine/rental"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService(t *testing.T) (*catalog.Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return catalog.NewService(mem), mem
}

func testProduct(id string) catalog.Product {
	to3, to7 := 3, 7
	return catalog.Product{
		ID:       catalog.ProductID(id),
		Name:     "Scaffolding set",
		Category: "construction",
		Currency: "EUR",
		Pricing: rental.PriceModel{
			Tiers: []rental.PriceTier{
				{DaysFrom: 1, DaysTo: &to3, PricePerDay: rental.NewMoney(30, "EUR")},
				{DaysFrom: 4, DaysTo: &to7, PricePerDay: rental.NewMoney(25, "EUR")},
				{DaysFrom: 8, PricePerDay: rental.NewMoney(20, "EUR")},
			},
			Deposit:           rental.NewMoney(100, "EUR"),
			FallbackDailyRate: rental.NewMoney(35, "EUR"),
		},
		Availability: rental.AvailabilityState{
			Periods: []rental.AvailabilityPeriod{
				{
					Start:  rental.NewDate(2024, time.June, 1),
					End:    rental.NewDate(2024, time.June, 30),
					Status: rental.StatusAvailable,
				},
				{
					Start:  rental.NewDate(2024, time.June, 20),
					End:    rental.NewDate(2024, time.June, 22),
					Status: rental.StatusRented,
				},
			},
			UnavailableDates: []rental.Date{rental.NewDate(2024, time.June, 10)},
		},
	}
}

// =============================================================================
// QUOTE FLOW TESTS
// =============================================================================

func TestService_QuoteProduct(t *testing.T) {
	// GIVEN: A stored product with tiered pricing and an open June
	// WHEN: Quoting Jun 2-6 (5 days)
	// THEN: Tier 4-7 applies: 5 x 25 + 100 deposit = 225

	svc, mem := newTestService(t)
	ctx := context.Background()
	require.NoError(t, mem.Save(ctx, testProduct("prod-1")))

	rng, err := rental.NewRange(rental.NewDate(2024, time.June, 2), rental.NewDate(2024, time.June, 6))
	require.NoError(t, err)

	quote, err := svc.QuoteProduct(ctx, "prod-1", rng)
	require.NoError(t, err)

	assert.Equal(t, 5, quote.Days)
	assert.True(t, quote.PricePerDay.Equal(rental.NewMoney(25, "EUR")))
	assert.True(t, quote.RentalSubtotal.Equal(rental.NewMoney(125, "EUR")))
	assert.True(t, quote.Deposit.Equal(rental.NewMoney(100, "EUR")))
	assert.True(t, quote.Total.Equal(rental.NewMoney(225, "EUR")))
}

func TestService_QuoteProduct_RejectionPassesThrough(t *testing.T) {
	// The service must not downgrade engine rejections to generic errors.
	svc, mem := newTestService(t)
	ctx := context.Background()
	require.NoError(t, mem.Save(ctx, testProduct("prod-1")))

	rng, err := rental.NewRange(rental.NewDate(2024, time.June, 19), rental.NewDate(2024, time.June, 21))
	require.NoError(t, err)

	_, err = svc.QuoteProduct(ctx, "prod-1", rng)
	require.Error(t, err)

	reason, at, ok := rental.ReasonOf(err)
	require.True(t, ok, "expected an availability rejection")
	assert.Equal(t, rental.ReasonAlreadyRented, reason)
	assert.True(t, at.Equal(rental.NewDate(2024, time.June, 20)))
}

func TestService_QuoteProduct_UnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	rng, err := rental.NewRange(rental.NewDate(2024, time.June, 1), rental.NewDate(2024, time.June, 2))
	require.NoError(t, err)

	_, err = svc.QuoteProduct(context.Background(), "missing", rng)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

// =============================================================================
// CALENDAR TESTS
// =============================================================================

func TestService_Calendar_MatchesQuoteDecisions(t *testing.T) {
	// A day the calendar paints available must quote successfully as a
	// single-day range, and every non-available day must be rejected.

	svc, mem := newTestService(t)
	ctx := context.Background()
	require.NoError(t, mem.Save(ctx, testProduct("prod-1")))

	days, err := svc.Calendar(ctx, "prod-1", 2024, time.June)
	require.NoError(t, err)
	require.Len(t, days, 30)

	for _, day := range days {
		single := rental.RentalRange{Start: day.Date, End: day.Date}
		_, quoteErr := svc.QuoteProduct(ctx, "prod-1", single)

		if day.Class.Bookable() {
			assert.NoError(t, quoteErr, "calendar says %s is available", day.Date)
		} else {
			assert.Error(t, quoteErr, "calendar says %s is not available", day.Date)
		}
	}
}

func TestService_Calendar_ClassifiesSpecificDays(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	require.NoError(t, mem.Save(ctx, testProduct("prod-1")))

	days, err := svc.Calendar(ctx, "prod-1", 2024, time.June)
	require.NoError(t, err)

	byDate := make(map[string]rental.DayClass)
	for _, day := range days {
		byDate[day.Date.String()] = day.Class
	}

	assert.Equal(t, rental.DayAvailable, byDate["2024-06-05"])
	assert.Equal(t, rental.DayBlocked, byDate["2024-06-10"])
	assert.Equal(t, rental.DayRented, byDate["2024-06-21"])
}

func TestService_Calendar_MonthOutsidePeriods(t *testing.T) {
	// December has no availability records at all: every day no_record.
	svc, mem := newTestService(t)
	ctx := context.Background()
	require.NoError(t, mem.Save(ctx, testProduct("prod-1")))

	days, err := svc.Calendar(ctx, "prod-1", 2024, time.December)
	require.NoError(t, err)
	require.Len(t, days, 31)

	for _, day := range days {
		assert.Equal(t, rental.DayNoRecord, day.Class)
	}
}

// =============================================================================
// MEMORY STORE TESTS
// =============================================================================

func TestMemoryStore_SnapshotsAreIsolated(t *testing.T) {
	// Mutating a product returned by Get must not leak into the store.
	mem := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Save(ctx, testProduct("prod-1")))

	first, err := mem.Get(ctx, "prod-1")
	require.NoError(t, err)
	first.Availability.Periods[0].Status = rental.StatusRented
	first.Pricing.Tiers[0].PricePerDay = rental.NewMoney(999, "EUR")

	second, err := mem.Get(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, rental.StatusAvailable, second.Availability.Periods[0].Status)
	assert.True(t, second.Pricing.Tiers[0].PricePerDay.Equal(rental.NewMoney(30, "EUR")))
}

func TestMemoryStore_SaveRejectsInvalidProduct(t *testing.T) {
	mem := store.NewMemory()
	bad := testProduct("prod-1")
	bad.Pricing.Deposit = rental.NewMoney(-10, "EUR")

	err := mem.Save(context.Background(), bad)
	assert.ErrorIs(t, err, rental.ErrInvalidPriceModel)
}

func TestMemoryStore_DeleteMissing(t *testing.T) {
	mem := store.NewMemory()
	err := mem.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestMemoryStore_ListOrderedByName(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	a := testProduct("prod-a")
	a.Name = "Angle grinder"
	z := testProduct("prod-z")
	z.Name = "Zoom lens kit"
	require.NoError(t, mem.Save(ctx, z))
	require.NoError(t, mem.Save(ctx, a))

	products, err := mem.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Angle grinder", products[0].Name)
	assert.Equal(t, "Zoom lens kit", products[1].Name)
}
