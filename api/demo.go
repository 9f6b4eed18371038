/*
demo.go - Demo catalog loader for testing and demonstrations

PURPOSE:
  Seeds the store with a small, realistic equipment catalog so the
  storefront can be exercised without hand-entering products. Each demo
  product demonstrates a specific engine feature: tiered discounts,
  overlapping periods, exact-date exclusions, the always-available
  override.

USAGE VIA API:
  POST /api/demo/load

NOTE:
  Loading replaces products with the same IDs. Only use in
  development/demo environments.

SEE ALSO:
  - handlers.go: Shares the Handler context
  - factory/product.go: Product JSON definitions
*/
package api

import (
	"context"
	"fmt"
	"net/http"
)

// =============================================================================
// DEMO PRODUCT DEFINITIONS
// =============================================================================

var demoProducts = []string{
	// Tiered discounts with an unbounded top tier; June open for booking
	// except a maintenance day.
	`{
		"id": "demo-excavator",
		"name": "Mini excavator 1.8t",
		"category": "construction",
		"currency": "EUR",
		"pricing": {
			"fallback_daily_rate": "150.00",
			"deposit": "500.00",
			"tiers": [
				{"days_from": 1, "days_to": 3, "price_per_day": "150.00"},
				{"days_from": 4, "days_to": 7, "price_per_day": "120.00"},
				{"days_from": 8, "price_per_day": "95.00"}
			]
		},
		"availability": {
			"periods": [
				{"start": "2024-06-01", "end": "2024-08-31", "status": "available"}
			],
			"unavailable_dates": ["2024-06-15"]
		}
	}`,
	// Overlapping periods: an available window with a rented booking
	// punched into the middle.
	`{
		"id": "demo-party-tent",
		"name": "Party tent 6x12m",
		"category": "events",
		"currency": "EUR",
		"pricing": {
			"fallback_daily_rate": "80.00",
			"deposit": "200.00",
			"tiers": [
				{"days_from": 1, "days_to": 2, "price_per_day": "80.00"},
				{"days_from": 3, "price_per_day": "60.00"}
			]
		},
		"availability": {
			"periods": [
				{"start": "2024-05-01", "end": "2024-09-30", "status": "available"},
				{"start": "2024-07-12", "end": "2024-07-14", "status": "rented"},
				{"start": "2024-08-02", "end": "2024-08-04", "status": "pending"}
			]
		}
	}`,
	// Always-available flat-rate item, no period bookkeeping at all.
	`{
		"id": "demo-pressure-washer",
		"name": "Pressure washer",
		"category": "tools",
		"currency": "EUR",
		"pricing": {
			"fallback_daily_rate": "35.00",
			"deposit": "50.00"
		},
		"availability": {
			"always_available": true
		}
	}`,
}

// =============================================================================
// DEMO HANDLER
// =============================================================================

// LoadDemoCatalog seeds the demo products.
func (h *Handler) LoadDemoCatalog(w http.ResponseWriter, r *http.Request) {
	loaded, err := h.loadDemoProducts(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load demo catalog", err)
		return
	}

	h.Logger.Info("demo catalog loaded", "products", loaded)
	writeJSON(w, http.StatusOK, map[string]any{"loaded": loaded})
}

func (h *Handler) loadDemoProducts(ctx context.Context) (int, error) {
	for i, doc := range demoProducts {
		product, err := h.Factory.ParseProduct(doc)
		if err != nil {
			return i, fmt.Errorf("demo product %d: %w", i, err)
		}
		if err := h.Store.Save(ctx, *product); err != nil {
			return i, fmt.Errorf("demo product %s: %w", product.ID, err)
		}
	}
	return len(demoProducts), nil
}
