package rental

// =============================================================================
// QUOTE - The single composed operation the engine exposes
// =============================================================================

// Quote validates the candidate range, checks availability, resolves the
// applicable tier, and returns the price breakdown. The flow is linear:
//
//  1. Validate the range (end >= start)
//  2. Check availability; rejections pass through verbatim
//  3. Resolve the per-day rate for the inclusive day count
//  4. Compute subtotal = days x rate, total = subtotal + flat deposit
//
// Quote is a pure function: no side effects, no retained state, same
// inputs always produce the same output. Price models are assumed to
// have passed Validate at load time.
func Quote(model PriceModel, state AvailabilityState, r RentalRange) (RentalQuote, error) {
	if err := r.Validate(); err != nil {
		return RentalQuote{}, err
	}

	if err := CheckRange(state, r); err != nil {
		return RentalQuote{}, err
	}

	days := r.Days()
	rate := model.RateFor(days)
	subtotal := rate.MulInt(int64(days))
	total := subtotal.Add(model.Deposit)

	return RentalQuote{
		Days:           days,
		PricePerDay:    rate,
		RentalSubtotal: subtotal,
		Deposit:        model.Deposit,
		Total:          total,
	}, nil
}
