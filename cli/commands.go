// Package cli provides the Cobra-based shell for the storefront.
package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"storefront/domain"
	"storefront/store"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by every command. The store is built once
// per process unless a test injects one.
type app struct {
	store *store.Store
	v     *viper.Viper
}

func newRootCmd(a *app) *cobra.Command {
	if a.v == nil {
		a.v = viper.New()
	}
	v := a.v

	rootCmd := &cobra.Command{
		Use:           "storefront",
		Short:         "A small retail store with promotions and stock-checked orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// allow tests to inject a store
			if a.store != nil {
				return nil
			}

			if cfg := v.GetString("config"); cfg != "" {
				v.SetConfigFile(cfg)
				if err := v.ReadInConfig(); err != nil {
					return err
				}
			}

			lvl := slog.LevelInfo
			switch strings.ToLower(v.GetString("log-level")) {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}),
			))

			st, err := store.NewStore(v.GetString("catalog"), v.GetString("catalog-file"))
			if err != nil {
				return err
			}
			a.store = st
			slog.Debug("store ready", "catalog", v.GetString("catalog"), "products", len(st.Products()))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("catalog", "builtin", "catalog source: builtin|file")
	rootCmd.PersistentFlags().String("catalog-file", "catalog.yaml", "catalog file path (yaml, json or toml)")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level")

	for _, name := range []string{"catalog", "catalog-file", "config", "log-level"} {
		_ = v.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(
		newListCmd(a),
		newTotalCmd(a),
		newOrderCmd(a),
		newShellCmd(a),
	)
	return rootCmd
}

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return newRootCmd(&app{}).Execute()
}

type productView struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Limit     int    `json:"limit,omitempty"`
	Promotion string `json:"promotion,omitempty"`
}

func newListCmd(a *app) *cobra.Command {
	var sortBy, order, output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products := a.store.AllProducts()
			index := make(map[*domain.Product]int, len(products))
			for i, p := range products {
				index[p] = i + 1
			}

			if err := sortProducts(products, sortBy, order); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "json" {
				views := make([]productView, 0, len(products))
				for _, p := range products {
					v := productView{
						Index:    index[p],
						ID:       p.ID(),
						Name:     p.Name(),
						Kind:     p.Kind().String(),
						Price:    p.Price().StringFixed(2),
						Quantity: p.Quantity(),
						Limit:    p.Limit(),
					}
					if promo := p.Promotion(); promo != nil {
						v.Promotion = promo.Name()
					}
					views = append(views, v)
				}
				b, _ := json.MarshalIndent(views, "", "  ")
				fmt.Fprintln(out, string(b))
				return nil
			}

			fmt.Fprintln(out, strings.Repeat("-", 8))
			for _, p := range products {
				fmt.Fprintf(out, "%d. %s\n", index[p], p)
			}
			fmt.Fprintln(out, strings.Repeat("-", 8))
			return nil
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "sort field: name|price|quantity")
	cmd.Flags().StringVar(&order, "order", "asc", "sort order")
	cmd.Flags().StringVar(&output, "output", "", "output format")
	return cmd
}

func sortProducts(products []*domain.Product, sortBy, order string) error {
	var compare func(a, b *domain.Product) int
	switch sortBy {
	case "":
		return nil
	case "name":
		compare = func(a, b *domain.Product) int { return strings.Compare(a.Name(), b.Name()) }
	case "price":
		compare = domain.ComparePrice
	case "quantity":
		compare = func(a, b *domain.Product) int { return cmp.Compare(a.Quantity(), b.Quantity()) }
	default:
		return fmt.Errorf("unknown sort field: %s", sortBy)
	}
	if order == "desc" {
		asc := compare
		compare = func(a, b *domain.Product) int { return asc(b, a) }
	}
	slices.SortStableFunc(products, compare)
	return nil
}

func newTotalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Show the number of items in stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printTotal(cmd.OutOrStdout(), a.store)
			return nil
		},
	}
}

func printTotal(out io.Writer, st *store.Store) {
	fmt.Fprintln(out, strings.Repeat("-", 8))
	fmt.Fprintf(out, "Total of %d items in store\n", st.TotalQuantity())
	fmt.Fprintln(out, strings.Repeat("-", 8))
}

func newOrderCmd(a *app) *cobra.Command {
	var items []string
	cmd := &cobra.Command{
		Use:   "order --item <n>=<quantity> [--item ...]",
		Short: "Place an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(items) == 0 {
				return fmt.Errorf("--item required")
			}
			products := a.store.AllProducts()
			list := make([]store.LineItem, 0, len(items))
			for _, raw := range items {
				item, err := parseItem(raw, products)
				if err != nil {
					return err
				}
				list = append(list, item)
			}

			total, err := a.store.Order(cmd.Context(), list)
			if err != nil {
				return fmt.Errorf("there was an error while processing your order: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order made! Total payment: $%s\n", total.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&items, "item", nil, "product number from the unsorted list output and quantity, e.g. 1=2")
	return cmd
}

// parseItem turns "n=q" (or "n:q") into a line for the n-th listed product.
func parseItem(raw string, products []*domain.Product) (store.LineItem, error) {
	left, right, ok := strings.Cut(raw, "=")
	if !ok {
		left, right, ok = strings.Cut(raw, ":")
	}
	if !ok {
		return store.LineItem{}, fmt.Errorf("invalid item %q: expected <n>=<quantity>", raw)
	}
	n, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return store.LineItem{}, fmt.Errorf("invalid product number %q: %w", left, err)
	}
	if n < 1 || n > len(products) {
		return store.LineItem{}, fmt.Errorf("not found product with index %d", n)
	}
	q, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return store.LineItem{}, fmt.Errorf("invalid quantity %q: %w", right, err)
	}
	if q < 0 {
		return store.LineItem{}, fmt.Errorf("amount must be a positive number: %d", q)
	}
	return store.LineItem{Product: products[n-1], Quantity: q}, nil
}
