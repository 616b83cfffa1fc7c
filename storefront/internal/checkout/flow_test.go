package checkout

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
	"github.com/azaliaz/luxefurnish/storefront/internal/logger"
)

func validDetails() models.ShippingDetails {
	return models.ShippingDetails{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane@example.com",
		Address:    "12 Elm Street",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
	}
}

func TestForm_PrefillsEmail(t *testing.T) {
	c, s, _, _ := setup(t)
	f := NewFlow(c, s)
	assert.Equal(t, models.ShippingDetails{}, f.Form())

	require.NoError(t, s.Set(context.Background(), models.User{Username: "jane", Email: "jane@example.com"}))
	assert.Equal(t, models.ShippingDetails{Email: "jane@example.com"}, f.Form())
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	c, s, _, _ := setup(t)
	c.AddItem(sofa)
	c.AddItem(sofa)
	require.NoError(t, s.Set(ctx, models.User{Username: "jane", Email: "jane@example.com"}))

	placed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	f := NewFlow(c, s)
	f.now = func() time.Time { return placed }

	details := validDetails()
	details.City = "  Springfield "
	order, err := f.PlaceOrder(ctx, details)
	require.NoError(t, err)

	_, err = uuid.Parse(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderSubmitted, order.Status)
	assert.Equal(t, placed, order.PlacedAt)
	assert.Equal(t, validDetails(), order.Shipping)
	assert.Equal(t, c.State().Items, order.Items)
	assert.InDelta(t, 1799.98, order.Total, 1e-9)
}

func TestPlaceOrder_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		c, s, _, _ := setup(t)
		require.NoError(t, s.Set(ctx, models.User{Username: "jane", Email: "jane@example.com"}))

		_, err := NewFlow(c, s).PlaceOrder(ctx, validDetails())
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("signed out", func(t *testing.T) {
		c, s, _, _ := setup(t)
		c.AddItem(sofa)

		_, err := NewFlow(c, s).PlaceOrder(ctx, validDetails())
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("incomplete shipping", func(t *testing.T) {
		c, s, _, _ := setup(t)
		c.AddItem(sofa)
		require.NoError(t, s.Set(ctx, models.User{Username: "jane", Email: "jane@example.com"}))

		details := validDetails()
		details.PostalCode = "   "
		details.Email = "nope"
		_, err := NewFlow(c, s).PlaceOrder(ctx, details)
		require.ErrorIs(t, err, ErrInvalidShipping)
		assert.Contains(t, err.Error(), "postalCode is required")
		assert.Contains(t, err.Error(), "email must be a valid email")
	})
}

func TestPlaceOrder_InfoLogOmitsEmail(t *testing.T) {
	var buf bytes.Buffer
	restore := logger.SetOutput(&buf, zerolog.InfoLevel)
	defer restore()

	ctx := context.Background()
	c, s, _, _ := setup(t)
	c.AddItem(sofa)
	require.NoError(t, s.Set(ctx, models.User{Username: "jane", Email: "jane@example.com"}))

	order, err := NewFlow(c, s).PlaceOrder(ctx, validDetails())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "order submitted")
	assert.Contains(t, buf.String(), order.ID)
	assert.NotContains(t, buf.String(), "jane@example.com")
}
