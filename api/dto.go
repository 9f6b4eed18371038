/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and in the factory, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/product.go: ProductJSON and friends
*/
package api

import (
	"github.com/warp/rental-engine/catalog"
	"github.com/warp/rental-engine/factory"
	"github.com/warp/rental-engine/rental"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ProductDTO represents a product in API responses.
type ProductDTO struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Category     string                   `json:"category,omitempty"`
	Currency     string                   `json:"currency"`
	Pricing      factory.PriceModelJSON   `json:"pricing"`
	Availability factory.AvailabilityJSON `json:"availability"`
	CreatedAt    string                   `json:"created_at,omitempty"`
}

// CreateProductRequest is the request to create or replace a product.
// It reuses the factory's JSON schema so API input and stored documents
// share one validated form.
type CreateProductRequest = factory.ProductJSON

// QuoteRequest asks for a price on a candidate range.
type QuoteRequest struct {
	StartDate string `json:"start_date"` // 2006-01-02
	EndDate   string `json:"end_date"`
}

// QuoteDTO is the successful price breakdown.
type QuoteDTO struct {
	Days           int    `json:"days"`
	Currency       string `json:"currency"`
	PricePerDay    string `json:"price_per_day"`
	RentalSubtotal string `json:"rental_subtotal"`
	Deposit        string `json:"deposit"`
	Total          string `json:"total"`
}

// RejectionDTO is returned when a range cannot be quoted or booked.
// Reason is machine-readable; Date is the first offending day when the
// rejection is availability-related.
type RejectionDTO struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Date   string `json:"date,omitempty"`
}

// CalendarDayDTO is one colored day of a product's calendar.
type CalendarDayDTO struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// CalendarDTO is a month of classified days.
type CalendarDTO struct {
	ProductID string           `json:"product_id"`
	Month     string           `json:"month"` // 2006-01
	Days      []CalendarDayDTO `json:"days"`
}

// CheckDTO answers the go/no-go question without pricing.
type CheckDTO struct {
	Bookable bool   `json:"bookable"`
	Reason   string `json:"reason,omitempty"`
	Date     string `json:"date,omitempty"`
}

// ErrorResponse is the generic error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPERS
// =============================================================================

func toProductDTO(f *factory.ProductFactory, p catalog.Product) ProductDTO {
	dto := ProductDTO{
		ID:           string(p.ID),
		Name:         p.Name,
		Category:     p.Category,
		Currency:     p.Currency,
		Pricing:      f.EncodePriceModel(p.Pricing),
		Availability: f.EncodeAvailability(p.Availability),
	}
	if !p.CreatedAt.IsZero() {
		dto.CreatedAt = p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return dto
}

func toQuoteDTO(q rental.RentalQuote) QuoteDTO {
	return QuoteDTO{
		Days:           q.Days,
		Currency:       q.PricePerDay.Currency,
		PricePerDay:    q.PricePerDay.Value.String(),
		RentalSubtotal: q.RentalSubtotal.Value.String(),
		Deposit:        q.Deposit.Value.String(),
		Total:          q.Total.Value.String(),
	}
}
