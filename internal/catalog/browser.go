package catalog

import (
	"context"
	"fmt"
	"strings"

	"scanbill_cli/internal/scanbill"

	"go.uber.org/zap"
)

type API interface {
	ListProducts(ctx context.Context, storeID string) ([]scanbill.Product, error)
	ListUnits(ctx context.Context, barcode, storeID string) ([]scanbill.InventoryUnit, error)
}

// Browser holds the last-fetched catalog for one store and offers purely
// client-side filtering over it. Filters are a view concern: nothing typed
// into the search box ever reaches the server.
type Browser struct {
	api     API
	storeID string
	logger  *zap.Logger

	products []scanbill.Product
	stale    bool
}

func NewBrowser(api API, storeID string, logger *zap.Logger) *Browser {
	return &Browser{
		api:     api,
		storeID: storeID,
		logger:  logger.Named("catalog"),
	}
}

func (b *Browser) Refresh(ctx context.Context) error {
	products, err := b.api.ListProducts(ctx, b.storeID)
	if err != nil {
		b.stale = true
		b.logger.Warn("catalog refresh failed, keeping stale state", zap.Error(err))
		return fmt.Errorf("refresh catalog: %w", err)
	}
	b.products = products
	b.stale = false
	return nil
}

func (b *Browser) Products() []scanbill.Product {
	return b.products
}

func (b *Browser) Stale() bool {
	return b.stale
}

// Filter returns the cached products whose name, category, or barcode
// contains query, case-insensitively. An empty query matches everything.
func (b *Browser) Filter(query string) []scanbill.Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return b.products
	}

	var matches []scanbill.Product
	for _, p := range b.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Barcode), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}

// AvailableUnits fetches the serialized units for a barcode and keeps only
// the ones still offerable. The backend already filters, but the view
// restricts again so a stale or permissive response never offers a sold
// unit for selection.
func (b *Browser) AvailableUnits(ctx context.Context, barcode string) ([]scanbill.InventoryUnit, error) {
	units, err := b.api.ListUnits(ctx, barcode, b.storeID)
	if err != nil {
		return nil, err
	}

	available := units[:0]
	for _, unit := range units {
		if unit.Status == scanbill.UnitAvailable {
			available = append(available, unit)
		}
	}
	return available, nil
}

// Reset drops the cached catalog. Used at logout.
func (b *Browser) Reset() {
	b.products = nil
	b.stale = false
}
