// Package domain defines core business types: products, promotions and the
// error taxonomy shared by the store and the shell.
package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies a product variant.
type Kind int

const (
	// Standard products are bounded by stock.
	Standard Kind = iota
	// NonStocked products have no stock (licenses, services) and are always purchasable.
	NonStocked
	// Limited products are bounded by stock and by a per-order cap.
	Limited
)

func (k Kind) String() string {
	switch k {
	case Standard:
		return "standard"
	case NonStocked:
		return "non_stocked"
	case Limited:
		return "limited"
	default:
		return "unknown"
	}
}

// ParseKind maps catalog text to a variant. An empty string means Standard.
func ParseKind(s string) (Kind, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "", "standard":
		return Standard, nil
	case "non_stocked", "nonstocked":
		return NonStocked, nil
	case "limited":
		return Limited, nil
	default:
		return 0, NewInvalidArgumentError("kind", "unknown product kind", s)
	}
}

// purchaseRules is the per-variant check table applied by Buy.
type purchaseRules struct {
	checkActive bool
	checkStock  bool
	checkLimit  bool
	decrement   bool
}

var rulesByKind = map[Kind]purchaseRules{
	Standard:   {checkActive: true, checkStock: true, decrement: true},
	NonStocked: {},
	Limited:    {checkActive: true, checkStock: true, checkLimit: true, decrement: true},
}

// Product is a sellable item. Invariant: a stocked product with zero quantity
// is never active.
type Product struct {
	id        string
	name      string
	price     decimal.Decimal
	quantity  int
	active    bool
	kind      Kind
	limit     int
	promotion *Promotion
}

// NewProduct creates a stock-bounded product.
func NewProduct(name string, price decimal.Decimal, quantity int) (*Product, error) {
	if err := validate(name, price, quantity); err != nil {
		return nil, err
	}
	p := &Product{
		id:     uuid.NewString(),
		name:   name,
		price:  price,
		active: true,
		kind:   Standard,
	}
	if err := p.SetQuantity(quantity); err != nil {
		return nil, err
	}
	return p, nil
}

// NewNonStockedProduct creates a product without stock, such as a software license.
func NewNonStockedProduct(name string, price decimal.Decimal) (*Product, error) {
	if err := validate(name, price, 0); err != nil {
		return nil, err
	}
	return &Product{
		id:     uuid.NewString(),
		name:   name,
		price:  price,
		active: true,
		kind:   NonStocked,
	}, nil
}

// NewLimitedProduct creates a stock-bounded product that may be bought at
// most limit units per order.
func NewLimitedProduct(name string, price decimal.Decimal, quantity, limit int) (*Product, error) {
	if limit < 1 {
		return nil, NewInvalidArgumentError("limit", "must be at least 1", limit)
	}
	p, err := NewProduct(name, price, quantity)
	if err != nil {
		return nil, err
	}
	p.kind = Limited
	p.limit = limit
	return p, nil
}

func validate(name string, price decimal.Decimal, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return NewInvalidArgumentError("name", "cannot be empty", name)
	}
	if price.IsNegative() {
		return NewInvalidArgumentError("price", "must be non-negative", price)
	}
	if quantity < 0 {
		return NewInvalidArgumentError("quantity", "must be non-negative", quantity)
	}
	return nil
}

// ID returns the identifier assigned at creation.
func (p *Product) ID() string { return p.id }

// Name returns the product name.
func (p *Product) Name() string { return p.name }

// Price returns the unit price.
func (p *Product) Price() decimal.Decimal { return p.price }

// Quantity returns the units in stock. Non-stocked products always report 0.
func (p *Product) Quantity() int { return p.quantity }

// Kind returns the product variant.
func (p *Product) Kind() Kind { return p.kind }

// Limit returns the per-order cap of a Limited product, 0 otherwise.
func (p *Product) Limit() int { return p.limit }

// Promotion returns the attached promotion or nil.
func (p *Product) Promotion() *Promotion { return p.promotion }

// IsActive reports whether the product may be listed and purchased.
func (p *Product) IsActive() bool { return p.active }

// UnlimitedStock reports whether stock never constrains a purchase.
func (p *Product) UnlimitedStock() bool { return !rulesByKind[p.kind].checkStock }

// Activate marks the product as available.
func (p *Product) Activate() { p.active = true }

// Deactivate pulls the product from listings and blocks purchases.
func (p *Product) Deactivate() { p.active = false }

// SetPromotion attaches promo, replacing any previous one. nil removes it.
func (p *Product) SetPromotion(promo *Promotion) { p.promotion = promo }

// SetPrice updates the unit price.
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return NewInvalidArgumentError("price", "must be non-negative", price)
	}
	p.price = price
	return nil
}

// SetQuantity updates stock. Reaching zero deactivates the product; a
// positive quantity leaves the active flag untouched.
func (p *Product) SetQuantity(quantity int) error {
	if quantity < 0 {
		return NewInvalidArgumentError("quantity", "must be non-negative", quantity)
	}
	if p.kind == NonStocked {
		if quantity != 0 {
			return NewInvalidArgumentError("quantity", "stock is not tracked for non-stocked products", quantity)
		}
		return nil
	}
	p.quantity = quantity
	if p.quantity == 0 {
		p.Deactivate()
	}
	return nil
}

// Buy purchases quantity units and returns the amount to charge. A failed
// call leaves the product untouched.
func (p *Product) Buy(quantity int) (decimal.Decimal, error) {
	rules := rulesByKind[p.kind]

	if quantity < 0 {
		return decimal.Zero, NewInvalidArgumentError("quantity", "must be non-negative", quantity)
	}
	if rules.checkActive && !p.active {
		return decimal.Zero, NewInactiveProductError(p.name)
	}
	if rules.checkStock && quantity > p.quantity {
		return decimal.Zero, NewInsufficientStockError(p.name, quantity, p.quantity)
	}
	if rules.checkLimit && quantity > p.limit {
		return decimal.Zero, NewLimitExceededError(p.name, quantity, p.limit)
	}

	total := p.Total(quantity)
	if rules.decrement {
		if err := p.SetQuantity(p.quantity - quantity); err != nil {
			return decimal.Zero, err
		}
	}
	return total, nil
}

// Total prices quantity units without touching stock.
func (p *Product) Total(quantity int) decimal.Decimal {
	if p.promotion != nil {
		return p.promotion.Apply(p.price, quantity)
	}
	return p.price.Mul(decimal.NewFromInt(int64(quantity)))
}

// String renders the summary line shown in listings.
func (p *Product) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, Price: $%s", p.name, p.price.StringFixed(2))
	switch p.kind {
	case NonStocked:
		b.WriteString(", Quantity: Unlimited")
	case Limited:
		fmt.Fprintf(&b, ", Quantity: %d, Limited to %d per order!", p.quantity, p.limit)
	default:
		fmt.Fprintf(&b, ", Quantity: %d", p.quantity)
	}
	if p.promotion != nil {
		fmt.Fprintf(&b, ", Promotion: %s", p.promotion.Name())
	}
	return b.String()
}

// ComparePrice orders products by unit price, returning -1, 0 or +1.
func ComparePrice(a, b *Product) int {
	return a.price.Cmp(b.price)
}
