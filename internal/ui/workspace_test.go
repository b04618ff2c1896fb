package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scanbill_cli/internal/config"
	"scanbill_cli/internal/scanbill"

	"go.uber.org/zap"
)

func testBackendClient(t *testing.T) *scanbill.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)
	return scanbill.NewClient(config.Config{APIBaseURL: srv.URL, Timeout: time.Second}, zap.NewNop())
}

func TestWorkspaceForStaff(t *testing.T) {
	client := testBackendClient(t)
	user := scanbill.User{ID: "u1", Username: "cashier", Role: "CASHIER", StoreID: "s1"}

	ws, err := newWorkspace(user, client, "https://pos.example.com", zap.NewNop())
	if err != nil {
		t.Fatalf("workspace: %v", err)
	}
	if ws.view != StaffView {
		t.Errorf("view = %v, want StaffView", ws.view)
	}
	if ws.cart == nil || ws.catalog == nil || ws.checkout == nil || ws.history == nil {
		t.Error("staff workspace needs cart, catalog, checkout, and history")
	}
	if ws.admin != nil || ws.eco != nil {
		t.Error("staff workspace must not carry admin surfaces")
	}
}

func TestWorkspaceForStoreAdmin(t *testing.T) {
	client := testBackendClient(t)
	user := scanbill.User{ID: "u1", Username: "boss", Role: scanbill.RoleAdmin, StoreID: "s1"}

	ws, err := newWorkspace(user, client, "https://pos.example.com", zap.NewNop())
	if err != nil {
		t.Fatalf("workspace: %v", err)
	}
	if ws.view != StoreAdminView {
		t.Errorf("view = %v, want StoreAdminView", ws.view)
	}
	if ws.admin == nil {
		t.Fatal("store admin needs an admin controller")
	}
	if ws.admin.StoreID() != "s1" {
		t.Errorf("admin bound to %q, want own store s1", ws.admin.StoreID())
	}
	if ws.adminController() != ws.admin {
		t.Error("without a drill-down the own-store controller is active")
	}
}

func TestWorkspaceForSuperAdmin(t *testing.T) {
	client := testBackendClient(t)
	user := scanbill.User{ID: "u1", Username: "root", Role: scanbill.RoleSuperAdmin}

	ws, err := newWorkspace(user, client, "https://pos.example.com", zap.NewNop())
	if err != nil {
		t.Fatalf("workspace: %v", err)
	}
	if ws.view != SuperAdminView {
		t.Errorf("view = %v, want SuperAdminView", ws.view)
	}
	if ws.eco == nil {
		t.Fatal("super admin needs the ecosystem surface")
	}
	if ws.cart != nil || ws.checkout != nil {
		t.Error("super admin does not sell; no cart or checkout")
	}
	if ws.adminController() != nil {
		t.Error("no store entered yet, no active admin controller")
	}

	entered, err := ws.eco.Enter("S1")
	if err != nil {
		t.Fatal(err)
	}
	ws.entered = entered
	if ws.adminController() != entered {
		t.Error("entered store controller must take over")
	}
	if ws.adminController().StoreID() != "S1" {
		t.Errorf("entered controller bound to %q, want S1", ws.adminController().StoreID())
	}

	ws.reset()
	if ws.entered != nil {
		t.Error("reset must leave the drill-down")
	}
}
