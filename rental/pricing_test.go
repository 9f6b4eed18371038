package rental_test

import (
	"errors"
	"testing"

	"github.com/warp/rental-engine/rental"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func eur(value float64) rental.Money {
	return rental.NewMoney(value, "EUR")
}

func tier(from int, to int, rate float64) rental.PriceTier {
	t := rental.PriceTier{DaysFrom: from, PricePerDay: eur(rate)}
	if to > 0 {
		t.DaysTo = &to
	}
	return t
}

// standardModel mirrors a typical listing: cheaper daily rates for
// longer commitments, open-ended top tier.
func standardModel() rental.PriceModel {
	return rental.PriceModel{
		Tiers: []rental.PriceTier{
			tier(1, 3, 10),
			tier(4, 7, 8),
			tier(8, 0, 6), // 8+ days, unbounded
		},
		Deposit:           eur(50),
		FallbackDailyRate: eur(12),
	}
}

// =============================================================================
// TIER MATCHING TESTS
// =============================================================================

func TestResolveTier_SelectsBucketForDuration(t *testing.T) {
	// GIVEN: Tiers 1-3 @ 10, 4-7 @ 8, 8+ @ 6
	// WHEN: Resolving various durations
	// THEN: Each duration maps to its bucket's rate

	model := standardModel()

	cases := []struct {
		days int
		want float64
	}{
		{1, 10},
		{3, 10},
		{4, 8},
		{5, 8}, // monotonicity check: must be 8, not 10 or 6
		{7, 8},
		{8, 6},
		{30, 6},
	}

	for _, tc := range cases {
		rate := model.RateFor(tc.days)
		if !rate.Equal(eur(tc.want)) {
			t.Errorf("duration %d: expected %v/day, got %v", tc.days, tc.want, rate)
		}
	}
}

func TestResolveTier_UnboundedTierMatchesLargeDurations(t *testing.T) {
	tiers := []rental.PriceTier{tier(8, 0, 6)}

	resolved, ok := rental.ResolveTier(tiers, 365)
	if !ok {
		t.Fatal("unbounded tier should match a year-long rental")
	}
	if !resolved.PricePerDay.Equal(eur(6)) {
		t.Errorf("expected 6/day, got %v", resolved.PricePerDay)
	}
}

func TestResolveTier_NoMatchFallsBackToDailyRate(t *testing.T) {
	// GIVEN: Tiers starting at 5 days, leaving a gap for short rentals
	// WHEN: Resolving a 2-day rental
	// THEN: No tier matches; the fallback daily rate applies

	model := rental.PriceModel{
		Tiers:             []rental.PriceTier{tier(5, 10, 7)},
		Deposit:           eur(0),
		FallbackDailyRate: eur(15),
	}

	if _, ok := rental.ResolveTier(model.Tiers, 2); ok {
		t.Error("no tier should match a 2-day rental")
	}
	if rate := model.RateFor(2); !rate.Equal(eur(15)) {
		t.Errorf("expected fallback rate 15, got %v", rate)
	}
}

func TestResolveTier_OverlappingTiers_LargestDaysFromWins(t *testing.T) {
	// GIVEN: User-entered tiers that overlap: 1-10 @ 10 and 5-10 @ 8
	// WHEN: Resolving a 6-day rental (both match)
	// THEN: The more specific tier (daysFrom 5) wins

	tiers := []rental.PriceTier{
		tier(1, 10, 10),
		tier(5, 10, 8),
	}

	resolved, ok := rental.ResolveTier(tiers, 6)
	if !ok {
		t.Fatal("expected a matching tier")
	}
	if resolved.DaysFrom != 5 {
		t.Errorf("expected tier with daysFrom 5 to win, got daysFrom %d", resolved.DaysFrom)
	}
}

func TestResolveTier_EqualDaysFrom_FirstInOrderWins(t *testing.T) {
	tiers := []rental.PriceTier{
		tier(1, 10, 9),
		tier(1, 5, 11),
	}

	resolved, _ := rental.ResolveTier(tiers, 3)
	if !resolved.PricePerDay.Equal(eur(9)) {
		t.Errorf("ties on daysFrom resolve to input order; got %v", resolved.PricePerDay)
	}
}

// =============================================================================
// MODEL VALIDATION TESTS
// =============================================================================

func TestPriceModel_Validate(t *testing.T) {
	bad := func(mutate func(*rental.PriceModel)) rental.PriceModel {
		m := standardModel()
		mutate(&m)
		return m
	}

	cases := []struct {
		name  string
		model rental.PriceModel
	}{
		{"negative deposit", bad(func(m *rental.PriceModel) { m.Deposit = eur(-1) })},
		{"negative fallback", bad(func(m *rental.PriceModel) { m.FallbackDailyRate = eur(-1) })},
		{"negative tier rate", bad(func(m *rental.PriceModel) { m.Tiers[0].PricePerDay = eur(-5) })},
		{"daysFrom below 1", bad(func(m *rental.PriceModel) { m.Tiers[0].DaysFrom = 0 })},
		{"daysTo below daysFrom", bad(func(m *rental.PriceModel) {
			to := 2
			m.Tiers[1].DaysFrom = 4
			m.Tiers[1].DaysTo = &to
		})},
		{"mixed currencies", bad(func(m *rental.PriceModel) {
			m.Tiers[0].PricePerDay = rental.NewMoney(10, "USD")
		})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.model.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, rental.ErrInvalidPriceModel) {
				t.Errorf("expected ErrInvalidPriceModel, got %v", err)
			}
		})
	}

	if err := standardModel().Validate(); err != nil {
		t.Errorf("well-formed model should validate, got %v", err)
	}
}

func TestPriceModel_OverlapAndGapAcceptedAtLoad(t *testing.T) {
	// Overlapping and gapped tiers are legal input; ambiguity is
	// resolved at resolution time, not rejected at load.
	model := rental.PriceModel{
		Tiers: []rental.PriceTier{
			tier(1, 10, 10),
			tier(5, 10, 8),  // overlaps the first
			tier(20, 30, 5), // gap between 11 and 19
		},
		Deposit:           eur(0),
		FallbackDailyRate: eur(12),
	}

	if err := model.Validate(); err != nil {
		t.Errorf("overlap/gap should pass load validation, got %v", err)
	}
}
