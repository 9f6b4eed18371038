package catalog

import (
	"context"
	"time"

	"github.com/warp/rental-engine/rental"
)

// =============================================================================
// SERVICE - Quoting and calendar queries over stored products
// =============================================================================

// Service loads product snapshots from the store and runs the rental
// engine over them. It holds no per-call state; a Service value is safe
// for concurrent use if its store is.
type Service struct {
	Store ProductStore
}

func NewService(store ProductStore) *Service {
	return &Service{Store: store}
}

// QuoteProduct prices a candidate range for a product. Rejections from
// the engine pass through unchanged so callers can branch on the reason.
func (s *Service) QuoteProduct(ctx context.Context, id ProductID, r rental.RentalRange) (rental.RentalQuote, error) {
	product, err := s.Store.Get(ctx, id)
	if err != nil {
		return rental.RentalQuote{}, err
	}
	return rental.Quote(product.Pricing, product.Availability, r)
}

// CheckRange answers the go/no-go question without pricing.
func (s *Service) CheckRange(ctx context.Context, id ProductID, r rental.RentalRange) error {
	product, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	return rental.CheckRange(product.Availability, r)
}

// CalendarDay is one rendered day of a product's availability calendar.
type CalendarDay struct {
	Date  rental.Date
	Class rental.DayClass
}

// Calendar classifies every day of a month for calendar rendering. It
// uses the exact same precedence rules as QuoteProduct, so a day shown
// as available here is guaranteed bookable there.
func (s *Service) Calendar(ctx context.Context, id ProductID, year int, month time.Month) ([]CalendarDay, error) {
	product, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var days []CalendarDay
	current := rental.StartOfMonth(year, month)
	end := rental.EndOfMonth(year, month)
	for current.BeforeOrEqual(end) {
		days = append(days, CalendarDay{
			Date:  current,
			Class: rental.ClassifyDay(product.Availability, current),
		})
		current = current.AddDays(1)
	}
	return days, nil
}
