// Package store provides the store aggregate: a product catalog that
// validates and executes multi-line orders.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"storefront/domain"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("storefront/store")

// LineItem is one entry of a shopping list.
type LineItem struct {
	Product  *domain.Product
	Quantity int
}

// Store owns an ordered product catalog. The mutex makes every Order an
// exclusive section covering validation and execution.
type Store struct {
	mu       sync.Mutex
	products []*domain.Product
}

// New constructs a Store holding products in the given order.
func New(products ...*domain.Product) (*Store, error) {
	s := &Store{}
	if err := s.AddProducts(products...); err != nil {
		return nil, err
	}
	return s, nil
}

// AddProducts appends products to the catalog. Nothing is added when any
// element is nil or already present.
func (s *Store) AddProducts(products ...*domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[*domain.Product]struct{}, len(products))
	for i, p := range products {
		if p == nil {
			return domain.NewInvalidArgumentError("products", "element is not a product", fmt.Sprintf("index %d", i))
		}
		if _, dup := seen[p]; dup || s.indexOf(p) >= 0 {
			return domain.NewDuplicateProductError(p.Name())
		}
		seen[p] = struct{}{}
	}
	s.products = append(s.products, products...)
	return nil
}

// RemoveProduct drops p from the catalog.
func (s *Store) RemoveProduct(p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(p)
	if i < 0 {
		name := "<nil>"
		if p != nil {
			name = p.Name()
		}
		return domain.NewProductNotFoundError(name)
	}
	s.products = slices.Delete(s.products, i, i+1)
	slog.Debug("product removed", "product", p.Name(), "product_id", p.ID())
	return nil
}

// TotalQuantity sums stock over the catalog. Non-stocked products count as 0.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, p := range s.products {
		if p.UnlimitedStock() {
			continue
		}
		total += p.Quantity()
	}
	return total
}

// AllProducts returns the active products in catalog order.
func (s *Store) AllProducts() []*domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// Products returns the whole catalog, inactive products included.
func (s *Store) Products() []*domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products)
}

// Order validates the whole shopping list before buying anything, so it
// either charges every line or changes nothing.
func (s *Store) Order(ctx context.Context, list []LineItem) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	ctx, span := tracer.Start(ctx, "store.Order")
	defer span.End()
	span.SetAttributes(attribute.Int("order.lines", len(list)))

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	if err := s.validate(list); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order rejected")
		slog.WarnContext(ctx, "order rejected", "lines", len(list), "error", err)
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i, item := range list {
		amount, err := item.Product.Buy(item.Quantity)
		if err != nil {
			// unreachable while the catalog is only touched under s.mu
			span.RecordError(err)
			span.SetStatus(codes.Error, "purchase failed")
			slog.ErrorContext(ctx, "purchase failed after validation", "line", i+1, "product", item.Product.Name(), "error", err)
			return decimal.Zero, fmt.Errorf("line %d: %w", i+1, err)
		}
		total = total.Add(amount)
	}

	span.SetAttributes(attribute.String("order.total", total.String()))
	slog.InfoContext(ctx, "order placed",
		"lines", len(list),
		"total", total.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return total, nil
}

// validate checks every distinct product against its aggregated request.
// Callers must hold s.mu.
func (s *Store) validate(list []LineItem) error {
	for i, item := range list {
		if item.Product == nil {
			return domain.NewInvalidArgumentError("product", "line has no product", fmt.Sprintf("line %d", i+1))
		}
		if item.Quantity < 0 {
			return domain.NewInvalidArgumentError("quantity", "must be non-negative", item.Quantity)
		}
	}

	for _, line := range Cart(list) {
		p := line.Product
		if s.indexOf(p) < 0 {
			return domain.NewProductNotFoundError(p.Name())
		}
		if !p.IsActive() {
			return domain.NewInactiveProductError(p.Name())
		}
		if !p.UnlimitedStock() && line.Quantity > p.Quantity() {
			return domain.NewInsufficientStockError(p.Name(), line.Quantity, p.Quantity())
		}
		if p.Kind() == domain.Limited && line.Quantity > p.Limit() {
			return domain.NewLimitExceededError(p.Name(), line.Quantity, p.Limit())
		}
	}
	return nil
}

func (s *Store) indexOf(p *domain.Product) int {
	return slices.Index(s.products, p)
}

// Cart folds repeated products into one line each, keeping first-seen order.
// Lines without a product are skipped.
func Cart(list []LineItem) []LineItem {
	out := make([]LineItem, 0, len(list))
	pos := make(map[*domain.Product]int, len(list))
	for _, item := range list {
		if item.Product == nil {
			continue
		}
		if i, ok := pos[item.Product]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		pos[item.Product] = len(out)
		out = append(out, item)
	}
	return out
}
