// Package store provides ProductStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/rental-engine/catalog"
	"github.com/warp/rental-engine/rental"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	products map[catalog.ProductID]catalog.Product
}

func NewMemory() *Memory {
	return &Memory{products: make(map[catalog.ProductID]catalog.Product)}
}

var _ catalog.ProductStore = (*Memory)(nil)

func (m *Memory) Save(_ context.Context, p catalog.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = cloneProduct(p)
	return nil
}

func (m *Memory) Get(_ context.Context, id catalog.ProductID) (*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	clone := cloneProduct(p)
	return &clone, nil
}

func (m *Memory) List(_ context.Context) ([]catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		result = append(result, cloneProduct(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *Memory) Delete(_ context.Context, id catalog.ProductID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return catalog.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// cloneProduct deep-copies the slices so callers get immutable snapshots:
// mutating a returned product never leaks back into the store.
func cloneProduct(p catalog.Product) catalog.Product {
	clone := p
	clone.Pricing.Tiers = append([]rental.PriceTier(nil), p.Pricing.Tiers...)
	for i, tier := range clone.Pricing.Tiers {
		if tier.DaysTo != nil {
			to := *tier.DaysTo
			clone.Pricing.Tiers[i].DaysTo = &to
		}
	}
	clone.Availability.Periods = append([]rental.AvailabilityPeriod(nil), p.Availability.Periods...)
	clone.Availability.UnavailableDates = append([]rental.Date(nil), p.Availability.UnavailableDates...)
	return clone
}
