package cart

import (
	"context"
	"fmt"

	"scanbill_cli/internal/scanbill"

	"go.uber.org/zap"
)

// API is the slice of the backend client the cart needs.
type API interface {
	GetCart(ctx context.Context, userID, storeID string) (scanbill.Cart, error)
	AddUnit(ctx context.Context, userID, storeID, serialNumber string) (scanbill.Cart, error)
	RemoveUnit(ctx context.Context, userID, storeID, serialNumber string) (scanbill.Cart, error)
}

// Controller mirrors the server's cart for one (user, store) pair. The
// server is authoritative: every mutation replaces the local copy wholesale
// with the server's post-mutation state, and the total is never computed
// locally. There is no optimistic update.
type Controller struct {
	api     API
	userID  string
	storeID string
	logger  *zap.Logger

	current scanbill.Cart
	stale   bool
}

func NewController(api API, userID, storeID string, logger *zap.Logger) *Controller {
	return &Controller{
		api:     api,
		userID:  userID,
		storeID: storeID,
		logger:  logger.Named("cart"),
	}
}

// Refresh replaces the local cart with the server's. On failure the
// previously displayed cart is kept and the controller is marked stale
// until the next successful sync.
func (c *Controller) Refresh(ctx context.Context) error {
	fetched, err := c.api.GetCart(ctx, c.userID, c.storeID)
	if err != nil {
		c.stale = true
		c.logger.Warn("cart refresh failed, keeping stale state", zap.Error(err))
		return fmt.Errorf("refresh cart: %w", err)
	}
	c.current = fetched
	c.stale = false
	return nil
}

// Add reserves one serialized unit into the cart. A failure (for example
// the unit was grabbed by another session first) leaves the local cart
// untouched and surfaces the backend's error.
func (c *Controller) Add(ctx context.Context, serialNumber string) (scanbill.Cart, error) {
	updated, err := c.api.AddUnit(ctx, c.userID, c.storeID, serialNumber)
	if err != nil {
		return c.current, err
	}
	c.current = updated
	c.stale = false
	c.logger.Info("unit added",
		zap.String("serial_number", serialNumber),
		zap.Float64("total", updated.TotalAmount),
	)
	return c.current, nil
}

func (c *Controller) Remove(ctx context.Context, serialNumber string) (scanbill.Cart, error) {
	updated, err := c.api.RemoveUnit(ctx, c.userID, c.storeID, serialNumber)
	if err != nil {
		return c.current, err
	}
	c.current = updated
	c.stale = false
	return c.current, nil
}

func (c *Controller) Current() scanbill.Cart {
	return c.current
}

// Stale reports whether the displayed cart may lag the server because the
// last refresh failed.
func (c *Controller) Stale() bool {
	return c.stale
}

func (c *Controller) Empty() bool {
	return len(c.current.Items) == 0
}

// Reset drops all local cart state. Used at logout.
func (c *Controller) Reset() {
	c.current = scanbill.Cart{}
	c.stale = false
}
