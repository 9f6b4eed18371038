// Package catalog manages rental products and exposes the quoting
// surface to callers. It composes the pure rental engine with a product
// store: the store loads read-only pricing/availability snapshots, the
// engine does the math.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/warp/rental-engine/rental"
)

// =============================================================================
// PRODUCT - One rentable item with its pricing and availability
// =============================================================================

type ProductID string

func NewProductID() ProductID {
	return ProductID(uuid.NewString())
}

// Product is a rentable listing. Pricing and Availability are read-only
// snapshots handed to the engine per call; the engine never writes them
// back.
type Product struct {
	ID           ProductID
	Name         string
	Category     string
	Currency     string
	Pricing      rental.PriceModel
	Availability rental.AvailabilityState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the product's pricing at load time. Availability needs
// no validation: unknown period layouts are legal input and resolve via
// precedence.
func (p *Product) Validate() error {
	if p.ID == "" {
		return errors.New("catalog: product id is required")
	}
	if p.Name == "" {
		return errors.New("catalog: product name is required")
	}
	if err := p.Pricing.Validate(); err != nil {
		return err
	}
	if p.Currency != "" && p.Currency != p.Pricing.Currency() {
		return errors.New("catalog: product currency does not match price model")
	}
	for _, period := range p.Availability.Periods {
		if !rental.ValidPeriodStatus(period.Status) {
			return errors.New("catalog: unknown availability period status: " + string(period.Status))
		}
		if period.End.Before(period.Start) {
			return errors.New("catalog: availability period ends before it starts")
		}
	}
	return nil
}

// =============================================================================
// PRODUCT STORE - Persistence interface
// =============================================================================

var ErrProductNotFound = errors.New("catalog: product not found")

// ProductStore persists products. Implementations: store/memory for
// tests and dev, store/sqlite for durable storage.
type ProductStore interface {
	// Save inserts or replaces a product.
	Save(ctx context.Context, p Product) error

	// Get returns the product or ErrProductNotFound.
	Get(ctx context.Context, id ProductID) (*Product, error)

	// List returns all products ordered by name.
	List(ctx context.Context) ([]Product, error)

	// Delete removes a product. Missing products return ErrProductNotFound.
	Delete(ctx context.Context, id ProductID) error
}
