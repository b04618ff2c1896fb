package admin

import (
	"context"
	"errors"
	"testing"

	"scanbill_cli/internal/scanbill"

	"go.uber.org/zap"
)

// fakeStoreAPI records which store every call was scoped to.
type fakeStoreAPI struct {
	scopedStores []string

	statsFn     func() (scanbill.Stats, error)
	productsFn  func() ([]scanbill.Product, error)
	ordersFn    func() ([]scanbill.Order, error)
	createFn    func(product scanbill.NewProduct, initialStock int) (scanbill.Product, error)
	deleteFn    func(productID string) error
	inventoryFn func(barcode string, quantity int) error
	storesFn    func() ([]scanbill.Store, error)
	registerFn  func(reg scanbill.StoreRegistration) (scanbill.Store, error)
}

func (f *fakeStoreAPI) GetStats(_ context.Context, storeID string) (scanbill.Stats, error) {
	f.scopedStores = append(f.scopedStores, storeID)
	if f.statsFn != nil {
		return f.statsFn()
	}
	return scanbill.Stats{}, nil
}

func (f *fakeStoreAPI) ListProducts(_ context.Context, storeID string) ([]scanbill.Product, error) {
	f.scopedStores = append(f.scopedStores, storeID)
	if f.productsFn != nil {
		return f.productsFn()
	}
	return nil, nil
}

func (f *fakeStoreAPI) ListAdminOrders(_ context.Context, storeID string) ([]scanbill.Order, error) {
	f.scopedStores = append(f.scopedStores, storeID)
	if f.ordersFn != nil {
		return f.ordersFn()
	}
	return nil, nil
}

func (f *fakeStoreAPI) CreateProduct(_ context.Context, product scanbill.NewProduct, initialStock int) (scanbill.Product, error) {
	f.scopedStores = append(f.scopedStores, product.StoreID)
	if f.createFn != nil {
		return f.createFn(product, initialStock)
	}
	return scanbill.Product{}, nil
}

func (f *fakeStoreAPI) DeleteProduct(_ context.Context, productID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(productID)
	}
	return nil
}

func (f *fakeStoreAPI) AddInventory(_ context.Context, barcode string, quantity int, storeID string) error {
	f.scopedStores = append(f.scopedStores, storeID)
	if f.inventoryFn != nil {
		return f.inventoryFn(barcode, quantity)
	}
	return nil
}

func (f *fakeStoreAPI) ListStores(_ context.Context) ([]scanbill.Store, error) {
	if f.storesFn != nil {
		return f.storesFn()
	}
	return nil, nil
}

func (f *fakeStoreAPI) RegisterStore(_ context.Context, reg scanbill.StoreRegistration) (scanbill.Store, error) {
	if f.registerFn != nil {
		return f.registerFn(reg)
	}
	return scanbill.Store{}, nil
}

func TestControllerRequiresStore(t *testing.T) {
	if _, err := NewController(&fakeStoreAPI{}, "  ", zap.NewNop()); !errors.Is(err, ErrMissingStore) {
		t.Fatalf("expected ErrMissingStore, got %v", err)
	}
}

func TestRefreshScopesEveryFetchToBoundStore(t *testing.T) {
	api := &fakeStoreAPI{
		statsFn: func() (scanbill.Stats, error) {
			return scanbill.Stats{TotalRevenue: 100, TotalOrders: 3}, nil
		},
	}
	ctrl, err := NewController(api, "s1", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	for _, storeID := range api.scopedStores {
		if storeID != "s1" {
			t.Errorf("fetch scoped to %q, want s1", storeID)
		}
	}
	if ctrl.Stats().TotalOrders != 3 {
		t.Errorf("stats = %+v", ctrl.Stats())
	}
}

func TestRefreshFailureMarksStale(t *testing.T) {
	fail := false
	api := &fakeStoreAPI{statsFn: func() (scanbill.Stats, error) {
		if fail {
			return scanbill.Stats{}, errors.New("backend down")
		}
		return scanbill.Stats{TotalRevenue: 50}, nil
	}}
	ctrl, err := NewController(api, "s1", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	fail = true
	if err := ctrl.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if !ctrl.Stale() {
		t.Error("failed refresh must mark the view stale")
	}
	if ctrl.Stats().TotalRevenue != 50 {
		t.Errorf("displayed stats must survive the failure, got %+v", ctrl.Stats())
	}
}

func TestCreateProductBindsStoreAndValidates(t *testing.T) {
	api := &fakeStoreAPI{createFn: func(product scanbill.NewProduct, initialStock int) (scanbill.Product, error) {
		if product.StoreID != "s1" {
			t.Errorf("store binding must override the form, got %q", product.StoreID)
		}
		if initialStock != 10 {
			t.Errorf("initialStock = %d", initialStock)
		}
		return scanbill.Product{ID: "p1"}, nil
	}}
	ctrl, err := NewController(api, "s1", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	form := scanbill.NewProduct{Barcode: "B100", Name: "Widget", Price: 9.99, StoreID: "someone-elses-store"}
	if _, err := ctrl.CreateProduct(context.Background(), form, 10); err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := []scanbill.NewProduct{
		{Name: "NoBarcode", Price: 1},
		{Barcode: "B1", Price: 1},
		{Barcode: "B1", Name: "FreeStuff", Price: 0},
	}
	for _, product := range bad {
		if _, err := ctrl.CreateProduct(context.Background(), product, 1); err == nil {
			t.Errorf("expected validation error for %+v", product)
		}
	}
}

func TestEcosystemEnterUsesChosenStore(t *testing.T) {
	api := &fakeStoreAPI{storesFn: func() ([]scanbill.Store, error) {
		return []scanbill.Store{{ID: "S1", Name: "Downtown"}}, nil
	}}
	eco := NewEcosystem(api, zap.NewNop())
	if err := eco.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctrl, err := eco.Enter("S1")
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	if ctrl.StoreID() != "S1" {
		t.Errorf("controller bound to %q, want S1", ctrl.StoreID())
	}

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, storeID := range api.scopedStores {
		if storeID != "S1" {
			t.Errorf("admin fetch used %q, must use the chosen S1", storeID)
		}
	}

	// The super-admin's own store id is empty; entering it must fail
	// rather than silently scope to nothing.
	if _, err := eco.Enter(""); !errors.Is(err, ErrMissingStore) {
		t.Errorf("expected ErrMissingStore for empty store, got %v", err)
	}
}

func TestProvisionValidation(t *testing.T) {
	called := false
	api := &fakeStoreAPI{registerFn: func(reg scanbill.StoreRegistration) (scanbill.Store, error) {
		called = true
		return scanbill.Store{ID: "S2", Name: reg.StoreName}, nil
	}}
	eco := NewEcosystem(api, zap.NewNop())

	if _, err := eco.Provision(context.Background(), scanbill.StoreRegistration{}); err == nil {
		t.Fatal("expected validation error")
	}
	if called {
		t.Fatal("no request may be issued for an invalid form")
	}

	reg := scanbill.StoreRegistration{
		StoreName:     "Uptown",
		Location:      "5th Ave",
		AdminUsername: "boss",
		AdminPassword: "pw",
	}
	store, err := eco.Provision(context.Background(), reg)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if store.ID != "S2" {
		t.Errorf("unexpected store %+v", store)
	}
}
