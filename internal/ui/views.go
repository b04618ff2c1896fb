package ui

import "scanbill_cli/internal/scanbill"

// View is the closed set of top-level view variants. It is selected once,
// at the routing layer, from the authenticated role; individual commands
// never re-inspect the role.
type View int

const (
	LoginView View = iota
	StaffView
	StoreAdminView
	SuperAdminView
)

func (v View) String() string {
	switch v {
	case StaffView:
		return "staff"
	case StoreAdminView:
		return "store-admin"
	case SuperAdminView:
		return "super-admin"
	default:
		return "login"
	}
}

// RouteFor maps a user onto its view variant. Anything that is not an
// admin role is the implicit staff/cashier role.
func RouteFor(user scanbill.User) View {
	switch user.Role {
	case scanbill.RoleSuperAdmin:
		return SuperAdminView
	case scanbill.RoleAdmin:
		return StoreAdminView
	default:
		return StaffView
	}
}

var (
	loginCommands = []string{"login", "register-store", "help", "exit"}

	staffCommands = []string{
		"products", "find", "units", "add",
		"cart", "remove", "checkout",
		"orders", "receipt",
		"logout", "help", "exit",
	}

	adminCommands = []string{
		"stats", "product-add", "product-del", "restock", "admin-orders",
	}

	superAdminCommands = []string{
		"stores", "store-add", "use", "back",
		"stats", "product-add", "product-del", "restock", "admin-orders",
		"receipt", "logout", "help", "exit",
	}
)

// Commands is the permitted-action set for the view. Store admins carry
// the full staff set plus the store-scoped admin set; super-admins get the
// fleet commands plus the same admin set against whichever store they
// entered with "use".
func (v View) Commands() []string {
	switch v {
	case StaffView:
		return staffCommands
	case StoreAdminView:
		out := make([]string, 0, len(staffCommands)+len(adminCommands))
		out = append(out, staffCommands...)
		out = append(out, adminCommands...)
		return out
	case SuperAdminView:
		return superAdminCommands
	default:
		return loginCommands
	}
}

func (v View) Allows(command string) bool {
	for _, allowed := range v.Commands() {
		if allowed == command {
			return true
		}
	}
	return false
}
