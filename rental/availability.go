/*
availability.go - Day classification and range booking checks

PURPOSE:
  Decides whether a candidate date range may be booked given a product's
  labeled availability periods, exact-date exclusions, and the
  always-available override. Also classifies individual days for
  calendar rendering. Both entry points share one precedence rule, so a
  day a calendar shows as available is guaranteed bookable.

PRECEDENCE (highest wins, per day):
  always-available override > exact-date exclusion > rented period >
  pending period > unavailable period > available period > no record.

  A day with no covering period is NOT bookable: absence of data is
  treated as unavailable, never as an implicit allow. Protective
  statuses (rented/pending/unavailable) are never overridden by an
  overlapping available period.

INPUT CONTRACT:
  Periods are not required to be sorted or non-overlapping; the scan
  resolves conflicts via precedence. Cost is O(days x periods) per call,
  which is fine for realistic rental durations and per-product period
  counts.

SEE ALSO:
  - quote.go: Calls CheckRange before pricing
  - errors.go: AvailabilityError and rejection reasons
*/
package rental

// =============================================================================
// PERIOD STATUS - Booking state labels supplied per product
// =============================================================================

type PeriodStatus string

const (
	StatusAvailable   PeriodStatus = "available"
	StatusRented      PeriodStatus = "rented"
	StatusPending     PeriodStatus = "pending"
	StatusUnavailable PeriodStatus = "unavailable"
)

// ValidPeriodStatus reports whether s is one of the four known labels.
func ValidPeriodStatus(s PeriodStatus) bool {
	switch s {
	case StatusAvailable, StatusRented, StatusPending, StatusUnavailable:
		return true
	}
	return false
}

// AvailabilityPeriod is a labeled closed date interval [Start, End].
type AvailabilityPeriod struct {
	Start  Date
	End    Date
	Status PeriodStatus
}

// Covers returns true if the day falls within the period, inclusive.
func (p AvailabilityPeriod) Covers(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// AvailabilityState is the read-only availability snapshot of one product.
// AlwaysAvailable short-circuits all period and exclusion logic.
type AvailabilityState struct {
	AlwaysAvailable  bool
	Periods          []AvailabilityPeriod
	UnavailableDates []Date
}

// =============================================================================
// DAY CLASS - Resolved state of a single calendar day
// =============================================================================

type DayClass string

const (
	DayAvailable   DayClass = "available"
	DayRented      DayClass = "rented"
	DayPending     DayClass = "pending"
	DayUnavailable DayClass = "unavailable"
	DayBlocked     DayClass = "blocked"   // exact-date exclusion
	DayNoRecord    DayClass = "no_record" // no covering period
)

// Bookable returns true if a day with this class can be part of a booking.
func (c DayClass) Bookable() bool {
	return c == DayAvailable
}

// RejectionReason maps a non-bookable class to its rejection reason.
func (c DayClass) RejectionReason() (RejectionReason, bool) {
	switch c {
	case DayBlocked:
		return ReasonExplicitlyBlocked, true
	case DayRented:
		return ReasonAlreadyRented, true
	case DayPending:
		return ReasonAlreadyPending, true
	case DayUnavailable:
		return ReasonMarkedUnavailable, true
	case DayNoRecord:
		return ReasonNoAvailabilityData, true
	}
	return "", false
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// ClassifyDay resolves the state of a single calendar day under the
// precedence rule. This is the one place precedence is implemented;
// CheckRange and calendar rendering both go through it.
func ClassifyDay(state AvailabilityState, d Date) DayClass {
	if state.AlwaysAvailable {
		return DayAvailable
	}

	for _, blocked := range state.UnavailableDates {
		if blocked.Equal(d) {
			return DayBlocked
		}
	}

	var rented, pending, unavailable, available bool
	for _, period := range state.Periods {
		if !period.Covers(d) {
			continue
		}
		switch period.Status {
		case StatusRented:
			rented = true
		case StatusPending:
			pending = true
		case StatusUnavailable:
			unavailable = true
		case StatusAvailable:
			available = true
		}
	}

	switch {
	case rented:
		return DayRented
	case pending:
		return DayPending
	case unavailable:
		return DayUnavailable
	case available:
		return DayAvailable
	default:
		return DayNoRecord
	}
}

// CheckRange returns nil if every day in [Start, End] is bookable.
// Otherwise it returns an AvailabilityError for the first conflicting
// day (lowest date) with the specific reason. A single conflicting day
// rejects the whole range; there are no partial bookings.
func CheckRange(state AvailabilityState, r RentalRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if state.AlwaysAvailable {
		return nil
	}

	current := r.Start
	for current.BeforeOrEqual(r.End) {
		class := ClassifyDay(state, current)
		if !class.Bookable() {
			reason, _ := class.RejectionReason()
			return &AvailabilityError{Date: current, Reason: reason}
		}
		current = current.AddDays(1)
	}
	return nil
}
