package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"scanbill_cli/internal/scanbill"

	"go.uber.org/zap"
)

type API interface {
	ListOrders(ctx context.Context, storeID string) ([]scanbill.Order, error)
}

// History caches the store's past orders for display.
type History struct {
	api     API
	storeID string
	logger  *zap.Logger

	orders []scanbill.Order
	stale  bool
}

func NewHistory(api API, storeID string, logger *zap.Logger) *History {
	return &History{
		api:     api,
		storeID: storeID,
		logger:  logger.Named("orders"),
	}
}

func (h *History) Refresh(ctx context.Context) error {
	orders, err := h.api.ListOrders(ctx, h.storeID)
	if err != nil {
		h.stale = true
		h.logger.Warn("order history refresh failed, keeping stale state", zap.Error(err))
		return fmt.Errorf("refresh orders: %w", err)
	}
	h.orders = orders
	h.stale = false
	return nil
}

// Sorted returns orders newest first. Ordering among equal timestamps is
// whatever the server sent.
func (h *History) Sorted() []scanbill.Order {
	out := make([]scanbill.Order, len(h.orders))
	copy(out, h.orders)
	sort.SliceStable(out, func(i, j int) bool {
		return parseTimestamp(out[i].Timestamp).After(parseTimestamp(out[j].Timestamp))
	})
	return out
}

func (h *History) Stale() bool {
	return h.stale
}

// Reset drops the cached history. Used at logout.
func (h *History) Reset() {
	h.orders = nil
	h.stale = false
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

func parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
