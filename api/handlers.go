/*
handlers.go - HTTP API handlers for the rental quoting service

PURPOSE:
  Exposes the catalog and the rental engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Products:
    GET    /api/products                   List all products
    POST   /api/products                   Create/replace product
    GET    /api/products/{id}              Get product details
    DELETE /api/products/{id}              Delete product

  Quoting:
    POST   /api/products/{id}/quote        Price a candidate range
    POST   /api/products/{id}/check        Go/no-go without pricing
    GET    /api/products/{id}/calendar     Month calendar (?month=2006-01)

  Demo:
    POST   /api/demo/load                  Seed the demo catalog

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input (malformed dates, bad price model, invalid range)
  - 404: Product not found
  - 409: Availability rejection (reason and offending date included)
  - 500: Internal errors

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input via the factory
  3. Call domain logic (catalog service, rental engine)
  4. Serialize response, record metrics
  5. Map errors to statuses

SEE ALSO:
  - dto.go: Request/response data structures
  - demo.go: Demo catalog seeding
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/rental-engine/catalog"
	"github.com/warp/rental-engine/factory"
	"github.com/warp/rental-engine/obs"
	"github.com/warp/rental-engine/rental"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   catalog.ProductStore
	Service *catalog.Service
	Factory *factory.ProductFactory
	Logger  *slog.Logger
}

// NewHandler creates a new handler over the given store.
func NewHandler(store catalog.ProductStore, logger *slog.Logger) *Handler {
	return &Handler{
		Store:   store,
		Service: catalog.NewService(store),
		Factory: factory.NewProductFactory(),
		Logger:  logger,
	}
}

// =============================================================================
// PRODUCT HANDLERS
// =============================================================================

// ListProducts returns all products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.List(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list products", err)
		return
	}

	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(h.Factory, p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateProduct creates or replaces a product from its JSON definition.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	product, err := h.Factory.FromJSON(req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid product definition", err)
		return
	}

	if err := h.Store.Save(r.Context(), *product); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to save product", err)
		return
	}

	h.Logger.Info("product saved", "product_id", product.ID, "name", product.Name)
	writeJSON(w, http.StatusCreated, toProductDTO(h.Factory, *product))
}

// GetProduct returns a single product.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := catalog.ProductID(chi.URLParam(r, "id"))

	product, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		h.writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to get product", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(h.Factory, *product))
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := catalog.ProductID(chi.URLParam(r, "id"))

	err := h.Store.Delete(r.Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		h.writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": string(id)})
}

// =============================================================================
// QUOTE HANDLERS
// =============================================================================

// QuoteProduct prices a candidate range for a product.
func (h *Handler) QuoteProduct(w http.ResponseWriter, r *http.Request) {
	id := catalog.ProductID(chi.URLParam(r, "id"))

	rng, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	quote, err := h.Service.QuoteProduct(r.Context(), id, rng)
	obs.ObserveQuote(err)
	if err != nil {
		h.writeQuoteError(w, r, id, err)
		return
	}

	h.Logger.Info("quote issued", "product_id", id, "days", quote.Days, "total", quote.Total.String())
	writeJSON(w, http.StatusOK, toQuoteDTO(quote))
}

// CheckAvailability answers go/no-go without pricing. Unlike a quote
// rejection this is a 200: the question was answered.
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id := catalog.ProductID(chi.URLParam(r, "id"))

	rng, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	err := h.Service.CheckRange(r.Context(), id, rng)
	if errors.Is(err, catalog.ErrProductNotFound) {
		h.writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil && !rental.IsClientError(err) {
		h.writeError(w, http.StatusInternalServerError, "Failed to check availability", err)
		return
	}

	dto := CheckDTO{Bookable: err == nil}
	if reason, at, ok := rental.ReasonOf(err); ok {
		dto.Reason = string(reason)
		dto.Date = at.String()
	} else if errors.Is(err, rental.ErrInvalidRange) {
		h.writeError(w, http.StatusBadRequest, "Invalid range", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetCalendar classifies every day of a month for calendar rendering.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	id := catalog.ProductID(chi.URLParam(r, "id"))

	monthParam := r.URL.Query().Get("month")
	if monthParam == "" {
		now := time.Now().UTC()
		monthParam = now.Format("2006-01")
	}
	month, err := time.Parse("2006-01", monthParam)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM", err)
		return
	}

	days, err := h.Service.Calendar(r.Context(), id, month.Year(), month.Month())
	if errors.Is(err, catalog.ErrProductNotFound) {
		h.writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to build calendar", err)
		return
	}

	dto := CalendarDTO{ProductID: string(id), Month: monthParam}
	for _, day := range days {
		dto.Days = append(dto.Days, CalendarDayDTO{Date: day.Date.String(), Status: string(day.Class)})
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

// parseRange reads and validates the range from the request body.
// Writes a 400 and returns ok=false on malformed input.
func (h *Handler) parseRange(w http.ResponseWriter, r *http.Request) (rental.RentalRange, bool) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return rental.RentalRange{}, false
	}

	start, err := rental.ParseDate(req.StartDate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD", err)
		return rental.RentalRange{}, false
	}
	end, err := rental.ParseDate(req.EndDate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD", err)
		return rental.RentalRange{}, false
	}

	// Range validity (end >= start) is the engine's call, not ours:
	// Quote and CheckRange report ErrInvalidRange themselves.
	return rental.RentalRange{Start: start, End: end}, true
}

// writeQuoteError maps quote failures onto HTTP statuses.
func (h *Handler) writeQuoteError(w http.ResponseWriter, r *http.Request, id catalog.ProductID, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		h.writeError(w, http.StatusNotFound, "Product not found", nil)

	case errors.Is(err, rental.ErrInvalidRange):
		h.writeError(w, http.StatusBadRequest, "Invalid range: end date is before start date", nil)

	case errors.Is(err, rental.ErrInvalidPriceModel):
		h.writeError(w, http.StatusBadRequest, "Invalid price model", err)

	case errors.Is(err, rental.ErrRangeNotAvailable):
		dto := RejectionDTO{Error: "Range is not fully available"}
		if reason, at, ok := rental.ReasonOf(err); ok {
			dto.Reason = string(reason)
			dto.Date = at.String()
		}
		h.Logger.Info("quote rejected", "product_id", id, "reason", dto.Reason, "date", dto.Date)
		writeJSON(w, http.StatusConflict, dto)

	default:
		h.Logger.Error("quote failed", "product_id", id, "err", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to compute quote", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	if status >= http.StatusInternalServerError {
		h.Logger.Error(message, "err", fmt.Sprint(err))
	}
	writeJSON(w, status, resp)
}
