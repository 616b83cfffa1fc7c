package checkout

import "errors"

var (
	ErrEmptyCart        = errors.New("your cart is empty")
	ErrNotAuthenticated = errors.New("sign in to place an order")
	ErrInvalidShipping  = errors.New("invalid shipping details")
)
