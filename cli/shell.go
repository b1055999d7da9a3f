package cli

import (
	"bufio"
	"fmt"
	"io"
	"storefront/domain"
	"storefront/store"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type menuEntry struct {
	description string
	run         func(*session)
}

var menu = []menuEntry{
	{"List all products in store", (*session).showItems},
	{"Show total amount in store", func(s *session) { printTotal(s.out, s.store) }},
	{"Make an order", (*session).placeOrder},
	{"Quit", nil},
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive store menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &session{
				cmd:   cmd,
				store: a.store,
				in:    bufio.NewScanner(cmd.InOrStdin()),
				out:   cmd.OutOrStdout(),
			}
			s.run()
			return nil
		},
	}
}

// session is one interactive run over a single store value.
type session struct {
	cmd   *cobra.Command
	store *store.Store
	in    *bufio.Scanner
	out   io.Writer
	eof   bool
}

func (s *session) ask(prompt string) string {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		s.eof = true
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

// askNumber returns ok=false on empty input.
func (s *session) askNumber(prompt string) (int, bool) {
	for !s.eof {
		text := s.ask(prompt)
		if text == "" {
			return 0, false
		}
		n, err := strconv.Atoi(text)
		if err == nil {
			return n, true
		}
		fmt.Fprintln(s.out, "Please enter a Number!")
	}
	return 0, false
}

func (s *session) run() {
	for !s.eof {
		fmt.Fprintf(s.out, "   Store Menu\n   %s\n", strings.Repeat("-", 10))
		for i, e := range menu {
			fmt.Fprintf(s.out, "%d. %s\n", i+1, e.description)
		}
		choice, ok := s.askNumber("Please choose a number: ")
		if !ok {
			continue
		}
		if choice < 1 || choice > len(menu) {
			fmt.Fprintln(s.out, "Please choose a number from the menu!")
			continue
		}
		entry := menu[choice-1]
		if entry.run == nil {
			return
		}
		entry.run(s)
	}
}

func (s *session) showItems() {
	fmt.Fprintln(s.out, strings.Repeat("-", 8))
	for i, p := range s.store.AllProducts() {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, p)
	}
	fmt.Fprintln(s.out, strings.Repeat("-", 8))
}

func (s *session) placeOrder() {
	products := s.store.AllProducts()
	var list []store.LineItem

	s.showItems()
	fmt.Fprintln(s.out, "When you want to finish your order, enter empty text")
	for {
		list = append(list, s.collectItems(products)...)
		s.printCart(list)
		if s.eof || !s.wantsMore() {
			break
		}
	}

	if s.eof {
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "Thanks for nothing")
		return
	}
	total, err := s.store.Order(s.cmd.Context(), list)
	if err != nil {
		fmt.Fprintf(s.out, "There was an error while processing your order: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s\nOrder made! Total payment: $%s\n", strings.Repeat("*", 8), total.StringFixed(2))
}

func (s *session) collectItems(products []*domain.Product) []store.LineItem {
	var list []store.LineItem
	for !s.eof {
		n, ok := s.askNumber("Which product # do you want? ")
		if !ok {
			return list
		}
		if n < 1 || n > len(products) {
			fmt.Fprintf(s.out, "Not found product with index %d\n", n)
			continue
		}
		q, ok := s.askNumber("What amount do you want? ")
		if !ok {
			return list
		}
		if q < 0 {
			fmt.Fprintln(s.out, "Amount must be a positive Number!")
			continue
		}
		list = append(list, store.LineItem{Product: products[n-1], Quantity: q})
		fmt.Fprintln(s.out, "Product added to list!")
	}
	return list
}

func (s *session) printCart(list []store.LineItem) {
	fmt.Fprintf(s.out, "%s\nYour shopping cart:\n", strings.Repeat("*", 8))
	cart := store.Cart(list)
	if len(cart) == 0 {
		fmt.Fprintln(s.out, "Empty")
		return
	}
	for i, line := range cart {
		fmt.Fprintf(s.out, "%d. %s, Price: $%s, Quantity: %d\n",
			i+1, line.Product.Name(), line.Product.Price().StringFixed(2), line.Quantity)
	}
}

func (s *session) wantsMore() bool {
	for !s.eof {
		switch strings.ToLower(s.ask("Do you want to continue (Yes or No/empty)? ")) {
		case "yes":
			return true
		case "no", "":
			return false
		default:
			fmt.Fprintln(s.out, "Please confirm with yes or no/empty")
		}
	}
	return false
}
