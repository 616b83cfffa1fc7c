package shell

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/azaliaz/luxefurnish/storefront/internal/catalog"
	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
)

func (s *Shell) categories() {
	for _, c := range s.catalog.Categories() {
		mark := " "
		if strings.EqualFold(c, s.category) {
			mark = "*"
		}
		s.printf("%s %s\n", mark, c)
	}
}

func (s *Shell) products() {
	list := s.catalog.Filter(s.category, s.query)
	if len(list) == 0 {
		s.printf("No products found.\n")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING")
	for _, p := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\n", p.ID, p.Name, p.Category, money(p.Price), p.Rating)
	}
	_ = tw.Flush()
}

func (s *Shell) filter(args []string) {
	if len(args) != 1 {
		s.printf("usage: filter <category>\n")
		return
	}
	category := strings.ToLower(args[0])
	known := false
	for _, c := range s.catalog.Categories() {
		if strings.EqualFold(c, category) {
			known = true
			break
		}
	}
	if !known {
		s.printf("Unknown category %q.\n", args[0])
		return
	}
	s.category = category
	s.products()
}

func (s *Shell) search(args []string) {
	s.query = strings.Join(args, " ")
	s.products()
}

func (s *Shell) add(args []string) {
	id, ok := s.productID(args)
	if !ok {
		return
	}
	p, found := s.catalog.Product(id)
	if !found {
		s.printf("No product with id %d.\n", id)
		return
	}
	s.cart.AddItem(catalog.CartItem(p))
	s.printf("Added %s to cart.\n", p.Name)
}

func (s *Shell) showCart() {
	state := s.cart.State()
	if state.Empty() {
		s.printf("Your cart is empty.\n")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range state.Items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			item.ID, item.Name, item.Quantity, money(item.Price), money(item.Price*float64(item.Quantity)))
	}
	fmt.Fprintf(tw, "\t\t\tTotal\t%s\n", money(state.Total))
	_ = tw.Flush()
}

func (s *Shell) step(args []string, delta int) {
	id, ok := s.productID(args)
	if !ok {
		return
	}
	item, found := line(s.cart.State(), id)
	if !found {
		s.printf("Product %d is not in your cart.\n", id)
		return
	}
	s.cart.UpdateQuantity(id, item.Quantity+delta)
	s.showCart()
}

func (s *Shell) setQuantity(args []string) {
	if len(args) != 2 {
		s.printf("usage: qty <id> <n>\n")
		return
	}
	id, ok := s.productID(args[:1])
	if !ok {
		return
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		s.printf("Quantity must be a number.\n")
		return
	}
	if _, found := line(s.cart.State(), id); !found {
		s.printf("Product %d is not in your cart.\n", id)
		return
	}
	s.cart.UpdateQuantity(id, n)
	s.showCart()
}

func (s *Shell) remove(args []string) {
	id, ok := s.productID(args)
	if !ok {
		return
	}
	s.cart.RemoveItem(id)
	s.showCart()
}

func (s *Shell) productID(args []string) (int64, bool) {
	if len(args) != 1 {
		s.printf("A product id is required.\n")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		s.printf("Invalid product id %q.\n", args[0])
		return 0, false
	}
	return id, true
}

func line(state models.CartState, id int64) (models.CartItem, bool) {
	for _, item := range state.Items {
		if item.ID == id {
			return item, true
		}
	}
	return models.CartItem{}, false
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
