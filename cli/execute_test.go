package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - name: Pen\n    price: 1.5\n    quantity: 7\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd(&app{})
	cmd.SetArgs([]string{"--catalog", "file", "--catalog-file", path, "total"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Total of 7 items in store")
}

func TestPersistentPreRunErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--catalog", "file", "--catalog-file", "", "total"},
		{"--catalog", "unknown", "total"},
		{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "total"},
	} {
		cmd := newRootCmd(&app{})
		cmd.SetArgs(args)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		assert.Error(t, cmd.Execute(), "args %v", args)
	}
}

func TestCatalogFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"products":[{"name":"Mug","price":8,"quantity":3},{"name":"Tea","price":4,"quantity":0}]}`), 0o644))
	t.Setenv("STOREFRONT_CATALOG", "file")
	t.Setenv("STOREFRONT_CATALOG_FILE", path)

	var out bytes.Buffer
	cmd := newRootCmd(&app{})
	cmd.SetArgs([]string{"list"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1. Mug, Price: $8.00, Quantity: 3")
	assert.NotContains(t, out.String(), "Tea")
}

func TestConfigFileSelectsCatalog(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte("products:\n  - name: Lamp\n    price: 30\n    quantity: 2\n"), 0o644))
	cfg := filepath.Join(dir, "storefront.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("catalog: file\ncatalog-file: "+catalog+"\nlog-level: error\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd(&app{})
	cmd.SetArgs([]string{"--config", cfg, "order", "--item", "1=2"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Order made! Total payment: $60.00\n", out.String())
}
