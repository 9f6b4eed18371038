package rental

// =============================================================================
// RENTAL RANGE - The candidate interval being priced and checked
// =============================================================================

// RentalRange is a closed interval of calendar days [Start, End].
// A single-day rental has Start == End and counts as one day; there is
// no partial-day proration anywhere in the engine.
type RentalRange struct {
	Start Date
	End   Date
}

// NewRange builds a validated range. End before Start is rejected.
func NewRange(start, end Date) (RentalRange, error) {
	r := RentalRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return RentalRange{}, err
	}
	return r, nil
}

func (r RentalRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidRange
	}
	if r.End.Before(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Days returns the inclusive day count: (End - Start) + 1.
func (r RentalRange) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// Contains returns true if the day falls within [Start, End].
func (r RentalRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Dates returns every day in the range in ascending order.
func (r RentalRange) Dates() []Date {
	var days []Date
	current := r.Start
	for current.BeforeOrEqual(r.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

func (r RentalRange) Overlaps(other RentalRange) bool {
	return r.Start.BeforeOrEqual(other.End) && other.Start.BeforeOrEqual(r.End)
}

func (r RentalRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
