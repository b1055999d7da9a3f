package store

import (
	"fmt"
	"os"
	"storefront/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// PromotionDef declares a named promotion in a catalog file.
type PromotionDef struct {
	Name    string  `mapstructure:"name" json:"name"`
	Type    string  `mapstructure:"type" json:"type"`
	Percent float64 `mapstructure:"percent" json:"percent,omitempty"`
}

// ProductDef declares one catalog entry. Promotion refers to a PromotionDef by name.
type ProductDef struct {
	Name      string  `mapstructure:"name" json:"name"`
	Kind      string  `mapstructure:"kind" json:"kind,omitempty"`
	Price     float64 `mapstructure:"price" json:"price"`
	Quantity  int     `mapstructure:"quantity" json:"quantity"`
	Limit     int     `mapstructure:"limit" json:"limit,omitempty"`
	Promotion string  `mapstructure:"promotion" json:"promotion,omitempty"`
	Inactive  bool    `mapstructure:"inactive" json:"inactive,omitempty"`
}

// Catalog is the declarative form of a store's initial contents.
type Catalog struct {
	Promotions []PromotionDef `mapstructure:"promotions" json:"promotions"`
	Products   []ProductDef   `mapstructure:"products" json:"products"`
}

// DefaultCatalog returns the demo catalog used when no file is configured.
func DefaultCatalog() Catalog {
	return Catalog{
		Promotions: []PromotionDef{
			{Name: "Second Half price!", Type: "second_half_price"},
			{Name: "Third One Free!", Type: "third_one_free"},
			{Name: "30% off!", Type: "percent_discount", Percent: 30},
		},
		Products: []ProductDef{
			{Name: "MacBook Air M2", Price: 1450, Quantity: 100, Promotion: "Second Half price!"},
			{Name: "Bose QuietComfort Earbuds", Price: 250, Quantity: 500, Promotion: "Third One Free!"},
			{Name: "Google Pixel 7", Price: 500, Quantity: 250},
			{Name: "Windows License", Kind: "non_stocked", Price: 125, Promotion: "30% off!"},
			{Name: "Shipping", Kind: "limited", Price: 10, Quantity: 250, Limit: 1},
		},
	}
}

// LoadCatalogFile reads a catalog from a YAML, JSON or TOML file.
func LoadCatalogFile(path string) (Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		return Catalog{}, err
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var c Catalog
	if err := v.Unmarshal(&c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return c, nil
}

// Build creates the promotions and products and returns a Store holding them
// in declaration order.
func (c Catalog) Build() (*Store, error) {
	promos := make(map[string]*domain.Promotion, len(c.Promotions))
	for _, def := range c.Promotions {
		promo, err := def.build()
		if err != nil {
			return nil, err
		}
		if _, dup := promos[def.Name]; dup {
			return nil, domain.NewInvalidArgumentError("promotion name", "declared twice", def.Name)
		}
		promos[def.Name] = promo
	}

	products := make([]*domain.Product, 0, len(c.Products))
	for _, def := range c.Products {
		p, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", def.Name, err)
		}
		if def.Promotion != "" {
			promo, ok := promos[def.Promotion]
			if !ok {
				return nil, fmt.Errorf("product %q: %w", def.Name,
					domain.NewInvalidArgumentError("promotion", "not declared", def.Promotion))
			}
			p.SetPromotion(promo)
		}
		if def.Inactive {
			p.Deactivate()
		}
		products = append(products, p)
	}
	return New(products...)
}

func (def PromotionDef) build() (*domain.Promotion, error) {
	if def.Name == "" {
		return nil, domain.NewInvalidArgumentError("promotion name", "cannot be empty", def.Name)
	}
	kind, err := domain.ParsePromotionKind(def.Type)
	if err != nil {
		return nil, err
	}
	switch kind {
	case domain.SecondHalfPrice:
		return domain.NewSecondHalfPrice(def.Name), nil
	case domain.ThirdOneFree:
		return domain.NewThirdOneFree(def.Name), nil
	default:
		return domain.NewPercentDiscount(def.Name, decimal.NewFromFloat(def.Percent)), nil
	}
}

func (def ProductDef) build() (*domain.Product, error) {
	kind, err := domain.ParseKind(def.Kind)
	if err != nil {
		return nil, err
	}
	price := decimal.NewFromFloat(def.Price)
	switch kind {
	case domain.NonStocked:
		return domain.NewNonStockedProduct(def.Name, price)
	case domain.Limited:
		return domain.NewLimitedProduct(def.Name, price, def.Quantity, def.Limit)
	default:
		return domain.NewProduct(def.Name, price, def.Quantity)
	}
}
