package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scanbill_cli/internal/scanbill"

	"go.uber.org/zap"
)

var ErrMissingStore = errors.New("admin view needs a store to operate on")

type API interface {
	GetStats(ctx context.Context, storeID string) (scanbill.Stats, error)
	ListProducts(ctx context.Context, storeID string) ([]scanbill.Product, error)
	ListAdminOrders(ctx context.Context, storeID string) ([]scanbill.Order, error)
	CreateProduct(ctx context.Context, product scanbill.NewProduct, initialStock int) (scanbill.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	AddInventory(ctx context.Context, barcode string, quantity int, storeID string) error
}

// Controller is the store-scoped admin view. A store admin gets one bound
// to their own store; a super-admin gets one bound to whichever store they
// drilled into. Every fetch and mutation goes through the bound store ID.
type Controller struct {
	api     API
	storeID string
	logger  *zap.Logger

	stats    scanbill.Stats
	products []scanbill.Product
	orders   []scanbill.Order
	stale    bool
}

func NewController(api API, storeID string, logger *zap.Logger) (*Controller, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, ErrMissingStore
	}
	return &Controller{
		api:     api,
		storeID: storeID,
		logger:  logger.Named("admin").With(zap.String("store_id", storeID)),
	}, nil
}

func (c *Controller) StoreID() string {
	return c.storeID
}

// Refresh pulls stats, products, and orders for the bound store. A partial
// failure keeps whatever was displayed before and marks the view stale.
func (c *Controller) Refresh(ctx context.Context) error {
	stats, err := c.api.GetStats(ctx, c.storeID)
	if err != nil {
		c.stale = true
		c.logger.Warn("stats refresh failed, keeping stale state", zap.Error(err))
		return fmt.Errorf("refresh stats: %w", err)
	}
	products, err := c.api.ListProducts(ctx, c.storeID)
	if err != nil {
		c.stale = true
		c.logger.Warn("product refresh failed, keeping stale state", zap.Error(err))
		return fmt.Errorf("refresh products: %w", err)
	}
	orders, err := c.api.ListAdminOrders(ctx, c.storeID)
	if err != nil {
		c.stale = true
		c.logger.Warn("admin order refresh failed, keeping stale state", zap.Error(err))
		return fmt.Errorf("refresh admin orders: %w", err)
	}

	c.stats = stats
	c.products = products
	c.orders = orders
	c.stale = false
	return nil
}

func (c *Controller) Stats() scanbill.Stats {
	return c.stats
}

func (c *Controller) Products() []scanbill.Product {
	return c.products
}

func (c *Controller) Orders() []scanbill.Order {
	return c.orders
}

func (c *Controller) Stale() bool {
	return c.stale
}

// CreateProduct registers a product in the bound store, seeding
// initialStock serialized units. The store binding overrides whatever
// store ID the form carried.
func (c *Controller) CreateProduct(ctx context.Context, product scanbill.NewProduct, initialStock int) (scanbill.Product, error) {
	product.StoreID = c.storeID
	if strings.TrimSpace(product.Barcode) == "" || strings.TrimSpace(product.Name) == "" {
		return scanbill.Product{}, errors.New("product needs a barcode and a name")
	}
	if product.Price <= 0 {
		return scanbill.Product{}, errors.New("product price must be positive")
	}

	created, err := c.api.CreateProduct(ctx, product, initialStock)
	if err != nil {
		return scanbill.Product{}, err
	}
	c.logger.Info("product created",
		zap.String("barcode", created.Barcode),
		zap.Int("initial_stock", initialStock),
	)
	return created, nil
}

// DeleteProduct issues the destructive call. The explicit user confirmation
// lives in the view layer; by the time this runs the operator already said
// yes.
func (c *Controller) DeleteProduct(ctx context.Context, productID string) error {
	if err := c.api.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	c.logger.Info("product deleted", zap.String("product_id", productID))
	return nil
}

// Restock adds quantity more serialized units of an existing barcode.
func (c *Controller) Restock(ctx context.Context, barcode string, quantity int) error {
	if err := c.api.AddInventory(ctx, barcode, quantity, c.storeID); err != nil {
		return err
	}
	c.logger.Info("inventory replenished",
		zap.String("barcode", barcode),
		zap.Int("quantity", quantity),
	)
	return nil
}
