package shell

import (
	"errors"

	"github.com/azaliaz/luxefurnish/storefront/internal/checkout"
	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
)

func (s *Shell) ShowEmptyCart() {
	s.printf("Your cart is empty. Continue shopping with \"products\".\n")
}

// Navigate switches the current page; the checkout page runs the shipping
// form right away and returns home afterwards.
func (s *Shell) Navigate(route string) {
	s.route = route
	if route != checkout.RouteCheckout {
		return
	}
	defer func() { s.route = RouteHome }()
	s.checkoutForm()
}

func (s *Shell) checkoutForm() {
	s.showCart()
	details := s.flow.Form()
	fields := []struct {
		label string
		dst   *string
	}{
		{"First name", &details.FirstName},
		{"Last name", &details.LastName},
		{"Email", &details.Email},
		{"Address", &details.Address},
		{"City", &details.City},
		{"Postal code", &details.PostalCode},
		{"Country", &details.Country},
	}
	for _, f := range fields {
		label := f.label
		if *f.dst != "" {
			label += " [" + *f.dst + "]"
		}
		v, ok := s.ask(label)
		if !ok {
			return
		}
		if v != "" {
			*f.dst = v
		}
	}

	order, err := s.flow.PlaceOrder(s.ctx, details)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		s.ShowEmptyCart()
	case errors.Is(err, checkout.ErrNotAuthenticated):
		s.printf("Your session has ended. Sign in and try again.\n")
	case err != nil:
		s.printf("%s\n", err)
	default:
		s.orderPlaced(order)
	}
}

func (s *Shell) orderPlaced(order models.Order) {
	s.printf("Order %s %s: %d item(s), total %s. Shipping to %s %s, %s.\n",
		order.ID, order.Status, len(order.Items), money(order.Total),
		order.Shipping.FirstName, order.Shipping.LastName, order.Shipping.City)
}
