/*
pricing.go - Duration-tiered pricing and tier resolution

PURPOSE:
  Defines the price model a product carries (base tiers, deposit,
  fallback daily rate) and selects the applicable per-day rate for a
  rental length. Longer commitments typically buy cheaper daily rates,
  so tier selection favors the most specific long-duration tier.

TIE-BREAK POLICY:
  Tiers are user-entered and may overlap or leave gaps; the resolver
  never assumes continuity. Among matching tiers the one with the
  largest DaysFrom wins. Tiers with equal DaysFrom resolve to the first
  in input order. When no tier matches, the model's fallback daily rate
  applies.

VALIDATION:
  Malformed models (negative money, daysTo < daysFrom, daysFrom < 1,
  mixed currencies) are rejected by Validate at load time. Resolution
  assumes a validated model and stays total: any duration >= 1 yields a
  rate.

SEE ALSO:
  - quote.go: Uses RateFor to compute the breakdown
  - errors.go: PriceModelError
*/
package rental

// =============================================================================
// PRICE TIER - One duration bucket with its own per-day rate
// =============================================================================

// PriceTier prices rentals whose day count falls in [DaysFrom, DaysTo].
// A nil DaysTo means the tier is unbounded above.
type PriceTier struct {
	DaysFrom    int
	DaysTo      *int
	PricePerDay Money
}

// Matches returns true if the tier applies to the given duration.
func (t PriceTier) Matches(durationDays int) bool {
	if durationDays < t.DaysFrom {
		return false
	}
	return t.DaysTo == nil || durationDays <= *t.DaysTo
}

// Unbounded returns true if the tier has no upper duration limit.
func (t PriceTier) Unbounded() bool {
	return t.DaysTo == nil
}

// =============================================================================
// PRICE MODEL - The complete pricing definition of one product
// =============================================================================

// PriceModel is a read-only snapshot of a product's pricing. Deposit is
// a flat amount charged once per rental, independent of duration.
type PriceModel struct {
	Tiers             []PriceTier
	Deposit           Money
	FallbackDailyRate Money
}

// Validate rejects malformed models. Called at load time (factory, store),
// not on every quote.
func (m PriceModel) Validate() error {
	if m.Deposit.IsNegative() {
		return &PriceModelError{TierIndex: -1, Detail: "deposit cannot be negative"}
	}
	if m.FallbackDailyRate.IsNegative() {
		return &PriceModelError{TierIndex: -1, Detail: "fallback daily rate cannot be negative"}
	}
	if !m.Deposit.SameCurrency(m.FallbackDailyRate) {
		return &PriceModelError{TierIndex: -1, Detail: "deposit and fallback rate currencies differ"}
	}
	for i, tier := range m.Tiers {
		if tier.DaysFrom < 1 {
			return &PriceModelError{TierIndex: i, Detail: "daysFrom must be at least 1"}
		}
		if tier.DaysTo != nil && *tier.DaysTo < tier.DaysFrom {
			return &PriceModelError{TierIndex: i, Detail: "daysTo is below daysFrom"}
		}
		if tier.PricePerDay.IsNegative() {
			return &PriceModelError{TierIndex: i, Detail: "price per day cannot be negative"}
		}
		if !tier.PricePerDay.SameCurrency(m.FallbackDailyRate) {
			return &PriceModelError{TierIndex: i, Detail: "tier currency differs from model currency"}
		}
	}
	return nil
}

// Currency returns the single currency the model is denominated in.
func (m PriceModel) Currency() string {
	return m.FallbackDailyRate.Currency
}

// =============================================================================
// TIER RESOLUTION
// =============================================================================

// ResolveTier selects the applicable tier for a rental length.
// Among matching tiers the largest DaysFrom wins; ok is false when no
// tier matches and the caller should fall back to the model's daily rate.
func ResolveTier(tiers []PriceTier, durationDays int) (PriceTier, bool) {
	var best PriceTier
	found := false
	for _, tier := range tiers {
		if !tier.Matches(durationDays) {
			continue
		}
		if !found || tier.DaysFrom > best.DaysFrom {
			best = tier
			found = true
		}
	}
	return best, found
}

// RateFor returns the per-day rate for a duration: the resolved tier's
// rate, or the fallback when no tier matches.
func (m PriceModel) RateFor(durationDays int) Money {
	if tier, ok := ResolveTier(m.Tiers, durationDays); ok {
		return tier.PricePerDay
	}
	return m.FallbackDailyRate
}
