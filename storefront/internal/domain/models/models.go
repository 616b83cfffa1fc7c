package models

import "time"

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// CartItem is a product line in the cart; ID is the catalog product id.
type CartItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

type CartState struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

func (s CartState) Empty() bool {
	return len(s.Items) == 0
}

// Count is the number of units in the cart, shown as the nav badge.
func (s CartState) Count() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ShippingDetails struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

const OrderSubmitted = "submitted"

type Order struct {
	ID       string          `json:"id"`
	Items    []CartItem      `json:"items"`
	Total    float64         `json:"total"`
	Shipping ShippingDetails `json:"shipping"`
	Status   string          `json:"status"`
	PlacedAt time.Time       `json:"placedAt"`
}
