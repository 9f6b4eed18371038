package rental_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/rental-engine/rental"
)

func openState(start, end rental.Date) rental.AvailabilityState {
	return rental.AvailabilityState{
		Periods: []rental.AvailabilityPeriod{
			{Start: start, End: end, Status: rental.StatusAvailable},
		},
	}
}

// =============================================================================
// BREAKDOWN TESTS
// =============================================================================

func TestQuote_FullBreakdown(t *testing.T) {
	// GIVEN: Tiers 1-3 @ 10, 4-7 @ 8, 8+ @ 6, deposit 50, June available
	// WHEN: Quoting Jun 1-5 (5 days)
	// THEN: 5 days x 8 = 40 subtotal, 50 deposit, 90 total

	model := standardModel()
	state := openState(date(2024, time.June, 1), date(2024, time.June, 30))
	r := mustRange(t, date(2024, time.June, 1), date(2024, time.June, 5))

	quote, err := rental.Quote(model, state, r)
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}

	if quote.Days != 5 {
		t.Errorf("expected 5 days, got %d", quote.Days)
	}
	if !quote.PricePerDay.Equal(eur(8)) {
		t.Errorf("expected 8/day, got %v", quote.PricePerDay)
	}
	if !quote.RentalSubtotal.Equal(eur(40)) {
		t.Errorf("expected subtotal 40, got %v", quote.RentalSubtotal)
	}
	if !quote.Deposit.Equal(eur(50)) {
		t.Errorf("expected deposit 50, got %v", quote.Deposit)
	}
	if !quote.Total.Equal(eur(90)) {
		t.Errorf("expected total 90, got %v", quote.Total)
	}
}

func TestQuote_SingleDayRange(t *testing.T) {
	// Start == End is a one-day rental, not an empty range.
	model := standardModel()
	state := openState(date(2024, time.June, 1), date(2024, time.June, 30))
	r := mustRange(t, date(2024, time.June, 10), date(2024, time.June, 10))

	quote, err := rental.Quote(model, state, r)
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if quote.Days != 1 {
		t.Errorf("expected 1 day, got %d", quote.Days)
	}
	if !quote.RentalSubtotal.Equal(eur(10)) {
		t.Errorf("expected subtotal 10, got %v", quote.RentalSubtotal)
	}
}

func TestQuote_DepositIsFlat(t *testing.T) {
	// GIVEN: The same model quoted for 2 days and 20 days
	// THEN: Identical deposits, different subtotals

	model := standardModel()
	state := openState(date(2024, time.June, 1), date(2024, time.July, 31))

	short, err := rental.Quote(model, state, mustRange(t, date(2024, time.June, 1), date(2024, time.June, 2)))
	if err != nil {
		t.Fatalf("short quote rejected: %v", err)
	}
	long, err := rental.Quote(model, state, mustRange(t, date(2024, time.June, 1), date(2024, time.June, 20)))
	if err != nil {
		t.Fatalf("long quote rejected: %v", err)
	}

	if !short.Deposit.Equal(long.Deposit) {
		t.Errorf("deposit must not scale with duration: %v vs %v", short.Deposit, long.Deposit)
	}
	if short.RentalSubtotal.Equal(long.RentalSubtotal) {
		t.Error("subtotals for 2 and 20 days should differ")
	}
}

// =============================================================================
// REJECTION TESTS
// =============================================================================

func TestQuote_InvalidRange_RegardlessOfAvailability(t *testing.T) {
	// End before start is invalid even for an always-available product.
	model := standardModel()
	state := rental.AvailabilityState{AlwaysAvailable: true}

	r := rental.RentalRange{
		Start: date(2024, time.June, 10),
		End:   date(2024, time.June, 5),
	}

	_, err := rental.Quote(model, state, r)
	if !errors.Is(err, rental.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestQuote_RejectionPreservesReason(t *testing.T) {
	// Availability rejections pass through verbatim; no downgrade to a
	// generic error, no partially computed quote.
	model := standardModel()
	state := rental.AvailabilityState{
		Periods: []rental.AvailabilityPeriod{
			{Start: date(2024, time.June, 1), End: date(2024, time.June, 10), Status: rental.StatusAvailable},
			{Start: date(2024, time.June, 11), End: date(2024, time.June, 12), Status: rental.StatusPending},
		},
	}

	quote, err := rental.Quote(model, state, mustRange(t, date(2024, time.June, 8), date(2024, time.June, 12)))
	if quote != (rental.RentalQuote{}) {
		t.Error("rejected quote must be zero-valued, not partially computed")
	}

	reason, at, ok := rental.ReasonOf(err)
	if !ok {
		t.Fatalf("expected an AvailabilityError, got %v", err)
	}
	if reason != rental.ReasonAlreadyPending {
		t.Errorf("expected date_already_pending, got %v", reason)
	}
	if !at.Equal(date(2024, time.June, 11)) {
		t.Errorf("expected conflict at 2024-06-11, got %v", at)
	}
}

// =============================================================================
// DETERMINISM
// =============================================================================

func TestQuote_Deterministic(t *testing.T) {
	// Same inputs, same outputs: run the quote twice and compare.
	model := standardModel()
	state := openState(date(2024, time.June, 1), date(2024, time.June, 30))
	r := mustRange(t, date(2024, time.June, 3), date(2024, time.June, 12))

	first, err1 := rental.Quote(model, state, r)
	second, err2 := rental.Quote(model, state, r)

	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected rejections: %v, %v", err1, err2)
	}
	if first.Days != second.Days ||
		!first.PricePerDay.Equal(second.PricePerDay) ||
		!first.RentalSubtotal.Equal(second.RentalSubtotal) ||
		!first.Deposit.Equal(second.Deposit) ||
		!first.Total.Equal(second.Total) {
		t.Errorf("quotes differ across runs: %+v vs %+v", first, second)
	}
}

func TestQuote_DoesNotMutateInputs(t *testing.T) {
	model := standardModel()
	state := openState(date(2024, time.June, 1), date(2024, time.June, 30))
	r := mustRange(t, date(2024, time.June, 1), date(2024, time.June, 4))

	periodsBefore := len(state.Periods)
	tiersBefore := len(model.Tiers)

	if _, err := rental.Quote(model, state, r); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}

	if len(state.Periods) != periodsBefore || len(model.Tiers) != tiersBefore {
		t.Error("quote must not mutate its inputs")
	}
}
