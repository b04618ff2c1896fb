package ui

import (
	"context"

	"scanbill_cli/internal/admin"
	"scanbill_cli/internal/cart"
	"scanbill_cli/internal/catalog"
	"scanbill_cli/internal/checkout"
	"scanbill_cli/internal/orders"
	"scanbill_cli/internal/scanbill"

	"go.uber.org/zap"
)

// workspace is everything that exists only while someone is logged in. It
// is built once per login (or session restore) from the routed view and
// torn down wholesale at logout.
type workspace struct {
	user     scanbill.User
	view     View
	cart     *cart.Controller
	catalog  *catalog.Browser
	checkout *checkout.Flow
	history  *orders.History
	receipts *orders.ReceiptViewer
	admin    *admin.Controller
	eco      *admin.Ecosystem
	entered  *admin.Controller
}

func newWorkspace(user scanbill.User, client *scanbill.Client, webBaseURL string, logger *zap.Logger) (*workspace, error) {
	ws := &workspace{
		user:     user,
		view:     RouteFor(user),
		receipts: orders.NewReceiptViewer(client, webBaseURL, logger),
	}

	switch ws.view {
	case SuperAdminView:
		ws.eco = admin.NewEcosystem(client, logger)
	default:
		ws.cart = cart.NewController(client, user.ID, user.StoreID, logger)
		ws.catalog = catalog.NewBrowser(client, user.StoreID, logger)
		ws.checkout = checkout.NewFlow(client, user.ID, user.StoreID, logger)
		ws.history = orders.NewHistory(client, user.StoreID, logger)
		if ws.view == StoreAdminView {
			ctrl, err := admin.NewController(client, user.StoreID, logger)
			if err != nil {
				return nil, err
			}
			ws.admin = ctrl
		}
	}
	return ws, nil
}

// warmUp does the initial fetches the web client fires after login. A
// failure here is not fatal: the affected controller keeps its stale flag
// raised and the views say so.
func (w *workspace) warmUp(ctx context.Context) {
	if w.catalog != nil {
		_ = w.catalog.Refresh(ctx)
	}
	if w.cart != nil {
		_ = w.cart.Refresh(ctx)
	}
	if w.history != nil {
		_ = w.history.Refresh(ctx)
	}
	if w.eco != nil {
		_ = w.eco.Refresh(ctx)
	}
}

// adminController resolves which store-scoped admin view is active: a
// store admin's own, or the store a super-admin entered. Nil when a
// super-admin has not entered a store yet.
func (w *workspace) adminController() *admin.Controller {
	if w.entered != nil {
		return w.entered
	}
	return w.admin
}

// reset clears every cache that depends on the session. Called at logout.
func (w *workspace) reset() {
	if w.cart != nil {
		w.cart.Reset()
	}
	if w.catalog != nil {
		w.catalog.Reset()
	}
	if w.history != nil {
		w.history.Reset()
	}
	w.entered = nil
}
