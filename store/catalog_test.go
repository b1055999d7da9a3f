package store

import (
	"os"
	"path/filepath"
	"storefront/domain"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlCatalog = `
promotions:
  - name: "Third One Free!"
    type: third_one_free
  - name: "10% markup"
    type: percent_discount
    percent: 10
products:
  - name: Ipod
    price: 100
    quantity: 3
    promotion: "Third One Free!"
  - name: Support Plan
    kind: non_stocked
    price: 49.99
    promotion: "10% markup"
  - name: Gift Wrap
    kind: limited
    price: 2.5
    quantity: 10
    limit: 2
  - name: Old Stock
    price: 1
    quantity: 4
    inactive: true
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultCatalogBuild(t *testing.T) {
	s, err := DefaultCatalog().Build()
	require.NoError(t, err)

	all := s.AllProducts()
	require.Len(t, all, 5)
	assert.Equal(t, "MacBook Air M2", all[0].Name())
	assert.Equal(t, domain.NonStocked, all[3].Kind())
	assert.Equal(t, 1, all[4].Limit())
	assert.Equal(t, "Second Half price!", all[0].Promotion().Name())
	assert.Equal(t, 100+500+250+250, s.TotalQuantity())
}

func TestLoadCatalogFile(t *testing.T) {
	path := writeFile(t, "catalog.yaml", yamlCatalog)

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	require.Len(t, c.Products, 4)
	assert.Equal(t, "non_stocked", c.Products[1].Kind)

	s, err := c.Build()
	require.NoError(t, err)
	assert.Len(t, s.Products(), 4)
	assert.Len(t, s.AllProducts(), 3)

	ipod := s.Products()[0]
	total, err := ipod.Buy(3)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(200)))

	support := s.Products()[1]
	assert.True(t, support.Price().Equal(decimal.RequireFromString("49.99")))
	assert.True(t, support.Promotion().Percent().Equal(decimal.NewFromInt(10)))
}

func TestLoadCatalogFileJSON(t *testing.T) {
	path := writeFile(t, "catalog.json", `{"products":[{"name":"Pen","price":1.5,"quantity":10}]}`)
	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	require.Len(t, c.Products, 1)
	assert.Equal(t, 10, c.Products[0].Quantity)
}

func TestLoadCatalogFileErrors(t *testing.T) {
	_, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadCatalogFile(writeFile(t, "broken.yaml", "products: [unclosed"))
	assert.Error(t, err)
}

func TestCatalogBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
	}{
		{"unknown promotion reference", Catalog{Products: []ProductDef{{Name: "A", Price: 1, Quantity: 1, Promotion: "nope"}}}},
		{"unknown promotion type", Catalog{Promotions: []PromotionDef{{Name: "x", Type: "bogo"}}}},
		{"unnamed promotion", Catalog{Promotions: []PromotionDef{{Type: "third_one_free"}}}},
		{"duplicate promotion", Catalog{Promotions: []PromotionDef{{Name: "x", Type: "third_one_free"}, {Name: "x", Type: "second_half_price"}}}},
		{"unknown kind", Catalog{Products: []ProductDef{{Name: "A", Kind: "digital", Price: 1}}}},
		{"negative price", Catalog{Products: []ProductDef{{Name: "A", Price: -1, Quantity: 1}}}},
		{"empty name", Catalog{Products: []ProductDef{{Price: 1, Quantity: 1}}}},
		{"limited without limit", Catalog{Products: []ProductDef{{Name: "A", Kind: "limited", Price: 1, Quantity: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.catalog.Build()
			assert.Nil(t, s)
			assert.True(t, domain.IsInvalidArgumentError(err), "got %v", err)
		})
	}
}
