package checkout

import (
	"context"
	"errors"
	"strings"

	"scanbill_cli/internal/scanbill"

	"go.uber.org/zap"
)

var ErrNotReady = errors.New("checkout requires a customer name, a mobile number, and a non-empty cart")

type API interface {
	Checkout(ctx context.Context, userID, storeID, customerName, customerMobile string) (scanbill.Order, error)
}

type Form struct {
	CustomerName   string
	CustomerMobile string
}

// CanSubmit is the client-side gate: both customer fields filled and a
// strictly positive server-reported total. This is UX only; the backend
// revalidates everything on submit.
func CanSubmit(form Form, cart scanbill.Cart) bool {
	return strings.TrimSpace(form.CustomerName) != "" &&
		strings.TrimSpace(form.CustomerMobile) != "" &&
		cart.TotalAmount > 0
}

// Flow drives a single checkout attempt against the current cart.
type Flow struct {
	api     API
	userID  string
	storeID string
	logger  *zap.Logger

	form Form
}

func NewFlow(api API, userID, storeID string, logger *zap.Logger) *Flow {
	return &Flow{
		api:     api,
		userID:  userID,
		storeID: storeID,
		logger:  logger.Named("checkout"),
	}
}

func (f *Flow) Form() Form {
	return f.form
}

func (f *Flow) SetCustomer(name, mobile string) {
	f.form.CustomerName = strings.TrimSpace(name)
	f.form.CustomerMobile = strings.TrimSpace(mobile)
}

// Submit places the order. The form is only reset on success, so a failed
// attempt can be retried without retyping the customer details.
func (f *Flow) Submit(ctx context.Context, cart scanbill.Cart) (scanbill.Order, error) {
	if !CanSubmit(f.form, cart) {
		return scanbill.Order{}, ErrNotReady
	}

	order, err := f.api.Checkout(ctx, f.userID, f.storeID, f.form.CustomerName, f.form.CustomerMobile)
	if err != nil {
		return scanbill.Order{}, err
	}

	f.logger.Info("checkout complete",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.TotalAmount),
	)
	f.form = Form{}
	return order, nil
}
