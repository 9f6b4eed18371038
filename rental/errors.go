/*
errors.go - Centralized error types for the rental engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers branch on these to render specific messages; nothing here is
  retryable - a rejection is a definitive answer for the given inputs.

ERROR CATEGORIES:
  1. Range errors - Malformed candidate ranges
  2. Price model errors - Malformed tiers or negative money (caught at load)
  3. Availability errors - A day in the range cannot be booked

USAGE:
  quote, err := rental.Quote(model, state, rng)
  if reason, date, ok := rental.ReasonOf(err); ok {
      // e.g. reason == rental.ReasonAlreadyRented, date == first conflict
  }

SEE ALSO:
  - availability.go: Produces AvailabilityError
  - pricing.go: Produces PriceModelError
*/
package rental

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned when a candidate range ends before it
	// starts or has zero dates.
	ErrInvalidRange = errors.New("invalid range: end before start")

	// ErrInvalidPriceModel is returned when a price model fails load-time
	// validation (negative money, daysTo < daysFrom, daysFrom < 1, mixed
	// currencies).
	ErrInvalidPriceModel = errors.New("invalid price model")

	// ErrRangeNotAvailable is returned when at least one day in the
	// candidate range cannot be booked. Wrap target for AvailabilityError.
	ErrRangeNotAvailable = errors.New("range not fully available")
)

// =============================================================================
// REJECTION REASONS - Machine-readable availability sub-reasons
// =============================================================================

type RejectionReason string

const (
	ReasonExplicitlyBlocked  RejectionReason = "date_explicitly_blocked"
	ReasonAlreadyRented      RejectionReason = "date_already_rented"
	ReasonAlreadyPending     RejectionReason = "date_already_pending"
	ReasonMarkedUnavailable  RejectionReason = "date_marked_unavailable"
	ReasonNoAvailabilityData RejectionReason = "date_has_no_availability_record"
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// AvailabilityError reports the first (lowest-date) conflicting day in a
// rejected range along with the specific reason it conflicts.
type AvailabilityError struct {
	Date   Date
	Reason RejectionReason
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("range not fully available: %s at %s", e.Reason, e.Date)
}

func (e *AvailabilityError) Unwrap() error {
	return ErrRangeNotAvailable
}

// PriceModelError describes why a price model failed validation.
// TierIndex is -1 when the problem is not tied to a specific tier.
type PriceModelError struct {
	TierIndex int
	Detail    string
}

func (e *PriceModelError) Error() string {
	if e.TierIndex >= 0 {
		return fmt.Sprintf("invalid price model: tier %d: %s", e.TierIndex, e.Detail)
	}
	return fmt.Sprintf("invalid price model: %s", e.Detail)
}

func (e *PriceModelError) Unwrap() error {
	return ErrInvalidPriceModel
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// ReasonOf extracts the rejection reason and offending date from an
// availability rejection. ok is false for any other error.
func ReasonOf(err error) (RejectionReason, Date, bool) {
	var avErr *AvailabilityError
	if errors.As(err, &avErr) {
		return avErr.Reason, avErr.Date, true
	}
	return "", Date{}, false
}

// IsClientError returns true if the error is due to invalid caller input
// rather than an engine fault. Every rejection the engine produces is a
// client error; retrying with the same inputs cannot succeed.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidPriceModel) ||
		errors.Is(err, ErrRangeNotAvailable)
}
