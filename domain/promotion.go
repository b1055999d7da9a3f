package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PromotionKind enumerates the supported pricing strategies.
type PromotionKind int

const (
	// SecondHalfPrice charges half price for every second unit.
	SecondHalfPrice PromotionKind = iota + 1
	// ThirdOneFree gives away every third unit.
	ThirdOneFree
	// PercentDiscount scales the linear total by (1 + percent/100).
	PercentDiscount
)

var promotionKindNames = map[PromotionKind]string{
	SecondHalfPrice: "second_half_price",
	ThirdOneFree:    "third_one_free",
	PercentDiscount: "percent_discount",
}

func (k PromotionKind) String() string {
	if s, ok := promotionKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParsePromotionKind maps catalog text such as "third_one_free" to a kind.
func ParsePromotionKind(s string) (PromotionKind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for k, name := range promotionKindNames {
		if name == norm {
			return k, nil
		}
	}
	return 0, NewInvalidArgumentError("promotion type", "unknown promotion type", s)
}

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// Promotion is a named pricing strategy. It holds no state between calls and
// may be shared by any number of products.
type Promotion struct {
	name    string
	kind    PromotionKind
	percent decimal.Decimal
}

// NewSecondHalfPrice returns a promotion where every second unit costs 50%.
func NewSecondHalfPrice(name string) *Promotion {
	return &Promotion{name: name, kind: SecondHalfPrice}
}

// NewThirdOneFree returns a promotion where every third unit is free.
func NewThirdOneFree(name string) *Promotion {
	return &Promotion{name: name, kind: ThirdOneFree}
}

// NewPercentDiscount returns a promotion computing price*qty*(1+percent/100).
// A positive percent raises the total; existing price lists rely on it.
func NewPercentDiscount(name string, percent decimal.Decimal) *Promotion {
	return &Promotion{name: name, kind: PercentDiscount, percent: percent}
}

// Name returns the display name.
func (p *Promotion) Name() string { return p.name }

// Kind returns the pricing strategy.
func (p *Promotion) Kind() PromotionKind { return p.kind }

// Percent returns the percent payload of a PercentDiscount, zero otherwise.
func (p *Promotion) Percent() decimal.Decimal { return p.percent }

func (p *Promotion) String() string { return p.name }

// Apply returns the total for quantity units at the given unit price.
// quantity must not be negative.
func (p *Promotion) Apply(price decimal.Decimal, quantity int) decimal.Decimal {
	q := int64(quantity)
	switch p.kind {
	case SecondHalfPrice:
		// odd positions pay full, even positions pay half
		full := price.Mul(decimal.NewFromInt((q + 1) / 2))
		halved := price.Mul(half).Mul(decimal.NewFromInt(q / 2))
		return full.Add(halved)
	case ThirdOneFree:
		return price.Mul(decimal.NewFromInt(q - q/3))
	case PercentDiscount:
		multiplier := p.percent.Div(hundred).Add(decimal.NewFromInt(1))
		return price.Mul(decimal.NewFromInt(q)).Mul(multiplier)
	default:
		return price.Mul(decimal.NewFromInt(q))
	}
}
