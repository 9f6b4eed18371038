/*
Package factory provides JSON to Go product conversion.

PURPOSE:
  Converts JSON product definitions into catalog.Product values with
  validated pricing and availability. This is the load boundary: hosts
  enter tiers and periods freely in the UI, and everything malformed is
  rejected HERE, not at quote time. The sqlite store also round-trips
  pricing/availability through this package's JSON forms.

JSON SCHEMA:
  {
    "id": "excavator-1",
    "name": "Mini excavator",
    "category": "construction",
    "currency": "EUR",
    "pricing": {
      "currency": "EUR",
      "fallback_daily_rate": "120.00",
      "deposit": "500.00",
      "tiers": [
        {"days_from": 1, "days_to": 3, "price_per_day": "120.00"},
        {"days_from": 4, "days_to": 7, "price_per_day": "100.00"},
        {"days_from": 8, "price_per_day": "80.00"}
      ]
    },
    "availability": {
      "always_available": false,
      "periods": [
        {"start": "2024-06-01", "end": "2024-06-30", "status": "available"}
      ],
      "unavailable_dates": ["2024-06-15"]
    }
  }

  Money amounts are decimal strings to avoid float round-trips. A tier
  without days_to is unbounded above.

SEE ALSO:
  - catalog/product.go: Product type and validation
  - store/sqlite/sqlite.go: Uses Encode/Parse for the JSON columns
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/rental-engine/catalog"
	"github.com/warp/rental-engine/rental"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

type ProductJSON struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category,omitempty"`
	Currency     string           `json:"currency"`
	Pricing      PriceModelJSON   `json:"pricing"`
	Availability AvailabilityJSON `json:"availability"`
}

type PriceModelJSON struct {
	Currency          string     `json:"currency"`
	FallbackDailyRate string     `json:"fallback_daily_rate"`
	Deposit           string     `json:"deposit"`
	Tiers             []TierJSON `json:"tiers,omitempty"`
}

type TierJSON struct {
	DaysFrom    int    `json:"days_from"`
	DaysTo      *int   `json:"days_to,omitempty"` // omitted = unbounded
	PricePerDay string `json:"price_per_day"`
}

type AvailabilityJSON struct {
	AlwaysAvailable  bool         `json:"always_available,omitempty"`
	Periods          []PeriodJSON `json:"periods,omitempty"`
	UnavailableDates []string     `json:"unavailable_dates,omitempty"`
}

type PeriodJSON struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
}

// =============================================================================
// PRODUCT FACTORY
// =============================================================================

type ProductFactory struct{}

func NewProductFactory() *ProductFactory {
	return &ProductFactory{}
}

// ParseProduct converts a JSON document into a validated Product.
func (f *ProductFactory) ParseProduct(data string) (*catalog.Product, error) {
	var pj ProductJSON
	if err := json.Unmarshal([]byte(data), &pj); err != nil {
		return nil, fmt.Errorf("invalid product JSON: %w", err)
	}
	return f.FromJSON(pj)
}

// FromJSON builds a validated Product from parsed JSON.
func (f *ProductFactory) FromJSON(pj ProductJSON) (*catalog.Product, error) {
	if pj.ID == "" {
		pj.ID = string(catalog.NewProductID())
	}

	currency := pj.Currency
	if currency == "" {
		currency = pj.Pricing.Currency
	}

	pricing, err := f.ParsePriceModel(pj.Pricing, currency)
	if err != nil {
		return nil, err
	}

	availability, err := f.ParseAvailability(pj.Availability)
	if err != nil {
		return nil, err
	}

	product := &catalog.Product{
		ID:           catalog.ProductID(pj.ID),
		Name:         pj.Name,
		Category:     pj.Category,
		Currency:     currency,
		Pricing:      pricing,
		Availability: availability,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// ParsePriceModel converts pricing JSON and enforces load-time
// validation: this is where ErrInvalidPriceModel surfaces.
func (f *ProductFactory) ParsePriceModel(pj PriceModelJSON, currency string) (rental.PriceModel, error) {
	if pj.Currency != "" {
		currency = pj.Currency
	}
	if currency == "" {
		return rental.PriceModel{}, &rental.PriceModelError{TierIndex: -1, Detail: "currency is required"}
	}

	fallback, err := parseMoney(pj.FallbackDailyRate, currency, "fallback_daily_rate")
	if err != nil {
		return rental.PriceModel{}, err
	}
	deposit, err := parseMoney(pj.Deposit, currency, "deposit")
	if err != nil {
		return rental.PriceModel{}, err
	}

	model := rental.PriceModel{
		Deposit:           deposit,
		FallbackDailyRate: fallback,
	}
	for i, tj := range pj.Tiers {
		rate, err := parseMoney(tj.PricePerDay, currency, fmt.Sprintf("tiers[%d].price_per_day", i))
		if err != nil {
			return rental.PriceModel{}, err
		}
		tier := rental.PriceTier{DaysFrom: tj.DaysFrom, PricePerDay: rate}
		if tj.DaysTo != nil {
			to := *tj.DaysTo
			tier.DaysTo = &to
		}
		model.Tiers = append(model.Tiers, tier)
	}

	if err := model.Validate(); err != nil {
		return rental.PriceModel{}, err
	}
	return model, nil
}

// ParseAvailability converts availability JSON. Period layout is not
// validated beyond date syntax and known statuses; overlaps and gaps
// are legal and resolve via precedence at classification time.
func (f *ProductFactory) ParseAvailability(aj AvailabilityJSON) (rental.AvailabilityState, error) {
	state := rental.AvailabilityState{AlwaysAvailable: aj.AlwaysAvailable}

	for i, pj := range aj.Periods {
		start, err := rental.ParseDate(pj.Start)
		if err != nil {
			return rental.AvailabilityState{}, fmt.Errorf("periods[%d].start: %w", i, err)
		}
		end, err := rental.ParseDate(pj.End)
		if err != nil {
			return rental.AvailabilityState{}, fmt.Errorf("periods[%d].end: %w", i, err)
		}
		if end.Before(start) {
			return rental.AvailabilityState{}, fmt.Errorf("periods[%d]: end before start", i)
		}
		status := rental.PeriodStatus(pj.Status)
		if !rental.ValidPeriodStatus(status) {
			return rental.AvailabilityState{}, fmt.Errorf("periods[%d]: unknown status %q", i, pj.Status)
		}
		state.Periods = append(state.Periods, rental.AvailabilityPeriod{Start: start, End: end, Status: status})
	}

	for i, ds := range aj.UnavailableDates {
		d, err := rental.ParseDate(ds)
		if err != nil {
			return rental.AvailabilityState{}, fmt.Errorf("unavailable_dates[%d]: %w", i, err)
		}
		state.UnavailableDates = append(state.UnavailableDates, d)
	}

	return state, nil
}

// =============================================================================
// ENCODING - Domain back to JSON (for storage and API responses)
// =============================================================================

func (f *ProductFactory) EncodePriceModel(m rental.PriceModel) PriceModelJSON {
	pj := PriceModelJSON{
		Currency:          m.Currency(),
		FallbackDailyRate: m.FallbackDailyRate.Value.String(),
		Deposit:           m.Deposit.Value.String(),
	}
	for _, tier := range m.Tiers {
		tj := TierJSON{DaysFrom: tier.DaysFrom, PricePerDay: tier.PricePerDay.Value.String()}
		if tier.DaysTo != nil {
			to := *tier.DaysTo
			tj.DaysTo = &to
		}
		pj.Tiers = append(pj.Tiers, tj)
	}
	return pj
}

func (f *ProductFactory) EncodeAvailability(s rental.AvailabilityState) AvailabilityJSON {
	aj := AvailabilityJSON{AlwaysAvailable: s.AlwaysAvailable}
	for _, period := range s.Periods {
		aj.Periods = append(aj.Periods, PeriodJSON{
			Start:  period.Start.String(),
			End:    period.End.String(),
			Status: string(period.Status),
		})
	}
	for _, d := range s.UnavailableDates {
		aj.UnavailableDates = append(aj.UnavailableDates, d.String())
	}
	return aj
}

func parseMoney(s, currency, field string) (rental.Money, error) {
	if s == "" {
		return rental.NewMoneyFromInt(0, currency), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return rental.Money{}, &rental.PriceModelError{TierIndex: -1, Detail: fmt.Sprintf("%s: malformed amount %q", field, s)}
	}
	return rental.Money{Value: d, Currency: currency}, nil
}
