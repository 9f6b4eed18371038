/*
Package sqlite provides a SQLite-backed implementation of the product store.

PURPOSE:
  Implements catalog.ProductStore using SQLite. In production, the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLE:
  products: One row per rentable product. Pricing and availability are
  stored as JSON documents (the same forms the factory package parses),
  so the schema never chases tier or period shape changes. Both columns
  pass through factory validation on read AND write: a malformed model
  cannot enter the database, and a row edited by hand cannot leave it
  unvalidated.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

USAGE:
  store, err := sqlite.New("./data/rentals.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := catalog.NewService(store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - catalog/product.go: Interface definition
  - catalog/store/memory.go: In-memory implementation for testing
  - factory/product.go: JSON column round-tripping
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/rental-engine/catalog"
	"github.com/warp/rental-engine/factory"
)

// Store implements catalog.ProductStore using SQLite.
type Store struct {
	db      *sql.DB
	mu      sync.RWMutex
	factory *factory.ProductFactory
}

var _ catalog.ProductStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, factory: factory.NewProductFactory()}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		currency TEXT NOT NULL,
		pricing_json TEXT NOT NULL,
		availability_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PRODUCT STORE IMPLEMENTATION
// =============================================================================

// Save inserts or replaces a product. Pricing and availability are
// validated before they hit the table.
func (s *Store) Save(ctx context.Context, p catalog.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	pricingJSON, err := json.Marshal(s.factory.EncodePriceModel(p.Pricing))
	if err != nil {
		return fmt.Errorf("failed to encode pricing: %w", err)
	}
	availabilityJSON, err := json.Marshal(s.factory.EncodeAvailability(p.Availability))
	if err != nil {
		return fmt.Errorf("failed to encode availability: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	createdAt := now
	if !p.CreatedAt.IsZero() {
		createdAt = p.CreatedAt.UTC().Format(time.RFC3339)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, category, currency, pricing_json, availability_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			currency = excluded.currency,
			pricing_json = excluded.pricing_json,
			availability_json = excluded.availability_json,
			updated_at = excluded.updated_at`,
		string(p.ID), p.Name, p.Category, p.Currency,
		string(pricingJSON), string(availabilityJSON), createdAt, now)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// Get returns the product or catalog.ErrProductNotFound.
func (s *Store) Get(ctx context.Context, id catalog.ProductID) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, currency, pricing_json, availability_json, created_at, updated_at
		FROM products WHERE id = ?`, string(id))

	product, err := s.scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// List returns all products ordered by name.
func (s *Store) List(ctx context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, currency, pricing_json, availability_json, created_at, updated_at
		FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		product, err := s.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

// Delete removes a product.
func (s *Store) Delete(ctx context.Context, id catalog.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanProduct(row rowScanner) (*catalog.Product, error) {
	var (
		id, name, category, currency string
		pricingJSON, availJSON       string
		createdAt, updatedAt         string
	)
	if err := row.Scan(&id, &name, &category, &currency, &pricingJSON, &availJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var pj factory.PriceModelJSON
	if err := json.Unmarshal([]byte(pricingJSON), &pj); err != nil {
		return nil, fmt.Errorf("corrupt pricing_json for product %s: %w", id, err)
	}
	pricing, err := s.factory.ParsePriceModel(pj, currency)
	if err != nil {
		return nil, fmt.Errorf("invalid pricing for product %s: %w", id, err)
	}

	var aj factory.AvailabilityJSON
	if err := json.Unmarshal([]byte(availJSON), &aj); err != nil {
		return nil, fmt.Errorf("corrupt availability_json for product %s: %w", id, err)
	}
	availability, err := s.factory.ParseAvailability(aj)
	if err != nil {
		return nil, fmt.Errorf("invalid availability for product %s: %w", id, err)
	}

	product := &catalog.Product{
		ID:           catalog.ProductID(id),
		Name:         name,
		Category:     category,
		Currency:     currency,
		Pricing:      pricing,
		Availability: availability,
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		product.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		product.UpdatedAt = t
	}
	return product, nil
}
