/*
Package rental provides the core pricing and availability engine.

PURPOSE:
  This package contains the pure domain types and algorithms for quoting
  equipment rentals: duration-tiered pricing, date-range availability
  resolution, and the quote operation that composes them. It performs no
  I/O, keeps no state between calls, and is safe to call concurrently.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A monetary amount with a currency code
  - Date: A calendar day (UTC, day granularity)
  - RentalQuote: The computed price breakdown for a candidate range

DESIGN PRINCIPLES:
  1. Purity: Every operation is a function of its inputs; same inputs,
     same outputs. No caching, no mutation of arguments.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
     in money arithmetic.
  3. Typed failures: Rejections are returned as error values carrying a
     machine-readable reason, never panics.

USAGE:
  model := rental.PriceModel{...}
  state := rental.AvailabilityState{...}
  rng, _ := rental.NewRange(rental.NewDate(2024, time.June, 1), rental.NewDate(2024, time.June, 5))
  quote, err := rental.Quote(model, state, rng)

SEE ALSO:
  - pricing.go: Price tiers and tier resolution
  - availability.go: Day classification and range checks
  - quote.go: The composed quote operation
  - errors.go: Error taxonomy
*/
package rental

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Amount with currency
// =============================================================================

// Money is a monetary amount in a single currency. Arithmetic never mixes
// currencies: PriceModel.Validate enforces that every amount inside one
// model shares the same currency code, so the per-quote arithmetic below
// can carry the receiver's currency.
type Money struct {
	Value    decimal.Decimal
	Currency string
}

func NewMoney(value float64, currency string) Money {
	return Money{Value: decimal.NewFromFloat(value), Currency: currency}
}

func NewMoneyFromInt(value int64, currency string) Money {
	return Money{Value: decimal.NewFromInt(value), Currency: currency}
}

// MustParseMoney builds Money from a decimal string, useful in fixtures.
// Malformed input yields a zero amount.
func MustParseMoney(s, currency string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{Value: decimal.Zero, Currency: currency}
	}
	return Money{Value: d, Currency: currency}
}

func (m Money) Zero() Money                 { return Money{Value: decimal.Zero, Currency: m.Currency} }
func (m Money) Add(b Money) Money           { return Money{Value: m.Value.Add(b.Value), Currency: m.Currency} }
func (m Money) Sub(b Money) Money           { return Money{Value: m.Value.Sub(b.Value), Currency: m.Currency} }
func (m Money) MulInt(n int64) Money        { return Money{Value: m.Value.Mul(decimal.NewFromInt(n)), Currency: m.Currency} }
func (m Money) IsNegative() bool            { return m.Value.IsNegative() }
func (m Money) IsZero() bool                { return m.Value.IsZero() }
func (m Money) Equal(b Money) bool          { return m.Currency == b.Currency && m.Value.Equal(b.Value) }
func (m Money) SameCurrency(b Money) bool   { return m.Currency == b.Currency }

func (m Money) String() string {
	if m.Currency == "" {
		return m.Value.String()
	}
	return m.Value.String() + " " + m.Currency
}

// =============================================================================
// RENTAL QUOTE - Computed price breakdown
// =============================================================================

// RentalQuote is the successful output of Quote: a full breakdown of the
// price for a candidate rental range. Deposit is flat, never scaled by
// duration.
type RentalQuote struct {
	Days           int
	PricePerDay    Money
	RentalSubtotal Money
	Deposit        Money
	Total          Money
}
