// Package checkout decides when a shopper may place an order and turns a
// filled-in shipping form into an order submission.
package checkout

import (
	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
)

const RouteCheckout = "/checkout"

type CartReader interface {
	State() models.CartState
}

type SessionReader interface {
	User() (models.User, bool)
}

type Navigator interface {
	Navigate(route string)
}

// Prompter shows the affordances a blocked checkout falls back to.
type Prompter interface {
	ShowEmptyCart()
	RequestAuth()
}

type Outcome int

const (
	OutcomeEmptyCart Outcome = iota + 1
	OutcomeAuthRequired
	OutcomeNavigated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmptyCart:
		return "empty_cart"
	case OutcomeAuthRequired:
		return "auth_required"
	case OutcomeNavigated:
		return "navigated"
	default:
		return "unknown"
	}
}

// Gate reads the cart and the session afresh on every call; nothing is
// cached between calls.
type Gate struct {
	cart    CartReader
	session SessionReader
	nav     Navigator
	prompt  Prompter
}

func NewGate(cart CartReader, session SessionReader, nav Navigator, prompt Prompter) *Gate {
	return &Gate{cart: cart, session: session, nav: nav, prompt: prompt}
}

func (g *Gate) CanCheckout() bool {
	_, signedIn := g.session.User()
	return signedIn && !g.cart.State().Empty()
}

// RequestCheckout navigates to the checkout route only when the cart has
// items and someone is signed in. An empty cart wins over a missing session.
func (g *Gate) RequestCheckout() Outcome {
	if g.cart.State().Empty() {
		g.prompt.ShowEmptyCart()
		return OutcomeEmptyCart
	}
	if _, ok := g.session.User(); !ok {
		g.prompt.RequestAuth()
		return OutcomeAuthRequired
	}
	g.nav.Navigate(RouteCheckout)
	return OutcomeNavigated
}
