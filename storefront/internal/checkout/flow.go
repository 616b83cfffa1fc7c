package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
	"github.com/azaliaz/luxefurnish/storefront/internal/logger"
	"github.com/azaliaz/luxefurnish/storefront/internal/validation"
)

// Flow collects shipping details and produces the order submission. Orders
// are logged and handed back; nothing is charged or stored.
type Flow struct {
	cart    CartReader
	session SessionReader
	valid   *validator.Validate
	now     func() time.Time
}

func NewFlow(cart CartReader, session SessionReader) *Flow {
	return &Flow{
		cart:    cart,
		session: session,
		valid:   validation.New(),
		now:     time.Now,
	}
}

// Form returns an empty shipping form with the email taken from the session.
func (f *Flow) Form() models.ShippingDetails {
	user, _ := f.session.User()
	return models.ShippingDetails{Email: user.Email}
}

func (f *Flow) PlaceOrder(ctx context.Context, details models.ShippingDetails) (models.Order, error) {
	state := f.cart.State()
	if state.Empty() {
		return models.Order{}, ErrEmptyCart
	}
	user, ok := f.session.User()
	if !ok {
		return models.Order{}, ErrNotAuthenticated
	}
	details = trimDetails(details)
	if err := f.valid.StructCtx(ctx, details); err != nil {
		return models.Order{}, fmt.Errorf("%w: %s", ErrInvalidShipping, validation.Message(err))
	}

	order := models.Order{
		ID:       uuid.NewString(),
		Items:    state.Items,
		Total:    state.Total,
		Shipping: details,
		Status:   models.OrderSubmitted,
		PlacedAt: f.now().UTC(),
	}
	log := logger.Get()
	log.Info().
		Str("order_id", order.ID).
		Int("items", state.Count()).
		Float64("total", order.Total).
		Msg("order submitted")
	log.Debug().Str("order_id", order.ID).Str("user", user.Email).Msg("order placed by")
	return order, nil
}

func trimDetails(d models.ShippingDetails) models.ShippingDetails {
	return models.ShippingDetails{
		FirstName:  strings.TrimSpace(d.FirstName),
		LastName:   strings.TrimSpace(d.LastName),
		Email:      strings.TrimSpace(d.Email),
		Address:    strings.TrimSpace(d.Address),
		City:       strings.TrimSpace(d.City),
		PostalCode: strings.TrimSpace(d.PostalCode),
		Country:    strings.TrimSpace(d.Country),
	}
}
