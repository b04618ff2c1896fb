package admin

import (
	"context"
	"errors"
	"strings"

	"scanbill_cli/internal/scanbill"

	"go.uber.org/zap"
)

type StoreAPI interface {
	API
	ListStores(ctx context.Context) ([]scanbill.Store, error)
	RegisterStore(ctx context.Context, reg scanbill.StoreRegistration) (scanbill.Store, error)
}

// Ecosystem is the super-admin surface: the store fleet, provisioning, and
// drill-down into any single store's admin view. A super-admin has no store
// of their own, so every store-scoped action goes through Enter.
type Ecosystem struct {
	api    StoreAPI
	logger *zap.Logger

	stores []scanbill.Store
}

func NewEcosystem(api StoreAPI, logger *zap.Logger) *Ecosystem {
	return &Ecosystem{
		api:    api,
		logger: logger.Named("ecosystem"),
	}
}

func (e *Ecosystem) Refresh(ctx context.Context) error {
	stores, err := e.api.ListStores(ctx)
	if err != nil {
		return err
	}
	e.stores = stores
	return nil
}

func (e *Ecosystem) Stores() []scanbill.Store {
	return e.stores
}

// Provision registers a new store together with its bootstrap admin.
func (e *Ecosystem) Provision(ctx context.Context, reg scanbill.StoreRegistration) (scanbill.Store, error) {
	if strings.TrimSpace(reg.StoreName) == "" || strings.TrimSpace(reg.AdminUsername) == "" || reg.AdminPassword == "" {
		return scanbill.Store{}, errors.New("store name and admin credentials are required")
	}
	store, err := e.api.RegisterStore(ctx, reg)
	if err != nil {
		return scanbill.Store{}, err
	}
	e.logger.Info("store provisioned",
		zap.String("store_id", store.ID),
		zap.String("name", store.Name),
	)
	return store, nil
}

// Enter builds an admin controller bound to the chosen store, never to the
// super-admin's own (empty) store ID.
func (e *Ecosystem) Enter(storeID string) (*Controller, error) {
	return NewController(e.api, storeID, e.logger)
}
