package ui

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"scanbill_cli/internal/config"
	"scanbill_cli/internal/notify"
	"scanbill_cli/internal/scanbill"
	"scanbill_cli/internal/session"

	"go.uber.org/zap"
)

type Runner struct {
	cfg      config.Config
	logger   *zap.Logger
	client   *scanbill.Client
	sessions *session.Store
	notifier *notify.Notifier

	jsonOut bool
	in      *bufio.Scanner
	ws      *workspace
}

func NewRunner(cfg config.Config, logger *zap.Logger, client *scanbill.Client, sessions *session.Store, notifier *notify.Notifier) *Runner {
	return &Runner{
		cfg:      cfg,
		logger:   logger.Named("ui"),
		client:   client,
		sessions: sessions,
		notifier: notifier,
		in:       bufio.NewScanner(os.Stdin),
	}
}

func (r *Runner) Execute() error {
	var timeoutSeconds int

	fs := flag.NewFlagSet("scanbill", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", fs.Name())
		fs.PrintDefaults()
	}

	fs.StringVar(&r.cfg.APIBaseURL, "api-base-url", r.cfg.APIBaseURL, "ScanBill backend base URL (API_BASE_URL)")
	fs.StringVar(&r.cfg.WebBaseURL, "web-base-url", r.cfg.WebBaseURL, "Public receipt base URL (WEB_BASE_URL)")
	fs.StringVar(&r.cfg.SessionFile, "session-file", r.cfg.SessionFile, "Session file path (SESSION_FILE)")
	fs.StringVar(&r.cfg.LogFile, "log-file", r.cfg.LogFile, "Log file path")
	fs.BoolVar(&r.cfg.Debug, "debug", r.cfg.Debug, "Enable debug logging")
	fs.BoolVar(&r.jsonOut, "json", false, "Output JSON format")
	fs.IntVar(&timeoutSeconds, "timeout", int(r.cfg.Timeout.Seconds()), "Request timeout in seconds")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			fs.Usage()
			return nil
		}
		return err
	}

	if timeoutSeconds > 0 {
		r.cfg.Timeout = time.Duration(timeoutSeconds) * time.Second
	}

	// Flags may have moved the backend or the timeout; rebuild the client
	// and session store from the effective config.
	r.client = scanbill.NewClient(r.cfg, r.logger)
	r.sessions = session.NewStore(r.cfg, r.logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Session restore happens before the first routing decision: a
	// persisted identity skips the login view entirely.
	if user, err := r.sessions.Load(); err == nil && user != nil {
		ws, err := newWorkspace(*user, r.client, r.cfg.WebBaseURL, r.logger)
		if err != nil {
			return err
		}
		r.ws = ws
		ws.warmUp(ctx)
		fmt.Fprintf(os.Stdout, "Restored session for %s (%s)\n", user.Username, ws.view)
	}

	return r.repl(ctx)
}

func (r *Runner) repl(ctx context.Context) error {
	fmt.Fprintln(os.Stdout, "ScanBill terminal (type 'help' for commands, 'exit' to quit)")

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintf(os.Stdout, "%s> ", r.currentView())
		if !r.in.Scan() {
			return r.in.Err()
		}

		fields := strings.Fields(r.in.Text())
		if len(fields) == 0 {
			continue
		}
		command, args := strings.ToLower(fields[0]), fields[1:]

		switch command {
		case "exit", "quit":
			return nil
		case "help":
			r.writeHelp()
			continue
		}

		if !r.currentView().Allows(command) {
			fmt.Fprintf(os.Stdout, "unknown command %q (type 'help')\n", command)
			continue
		}

		r.dispatch(ctx, command, args)
	}
}

func (r *Runner) currentView() View {
	if r.ws == nil {
		return LoginView
	}
	return r.ws.view
}

func (r *Runner) dispatch(ctx context.Context, command string, args []string) {
	switch command {
	case "login":
		r.handleLogin(ctx, args)
	case "register-store":
		r.handleRegisterStore(ctx)
	case "logout":
		r.handleLogout()
	case "products":
		r.handleProducts(ctx)
	case "find":
		r.handleFind(ctx, strings.Join(args, " "))
	case "units":
		r.handleUnits(ctx, args)
	case "add":
		r.handleAdd(ctx, args)
	case "cart":
		r.handleCart(ctx)
	case "remove":
		r.handleRemove(ctx, args)
	case "checkout":
		r.handleCheckout(ctx)
	case "orders":
		r.handleOrders(ctx)
	case "receipt":
		r.handleReceipt(ctx, args)
	case "stats", "admin-orders":
		r.handleAdminRefresh(ctx, command)
	case "product-add":
		r.handleProductAdd(ctx)
	case "product-del":
		r.handleProductDelete(ctx, args)
	case "restock":
		r.handleRestock(ctx, args)
	case "stores":
		r.handleStores(ctx)
	case "store-add":
		r.handleStoreAdd(ctx)
	case "use":
		r.handleUse(ctx, args)
	case "back":
		r.handleBack()
	}
}

func (r *Runner) handleLogin(ctx context.Context, args []string) {
	username, password := "", ""
	if len(args) >= 2 {
		username, password = args[0], args[1]
	} else {
		var ok bool
		if username, ok = r.prompt("Username"); !ok {
			return
		}
		if password, ok = r.prompt("Password"); !ok {
			return
		}
	}

	user, err := r.client.Login(ctx, username, password)
	if err != nil {
		r.notifier.Error(friendlyError(err, "Login failed"))
		return
	}
	if err := r.sessions.Save(user); err != nil {
		r.notifier.Error(err.Error())
		return
	}

	ws, err := newWorkspace(user, r.client, r.cfg.WebBaseURL, r.logger)
	if err != nil {
		r.notifier.Error(err.Error())
		return
	}
	r.ws = ws
	ws.warmUp(ctx)
	r.notifier.Success(fmt.Sprintf("Logged in as %s", user.Username))
}

func (r *Runner) handleRegisterStore(ctx context.Context) {
	reg, ok := r.promptStoreRegistration()
	if !ok {
		return
	}
	if _, err := r.client.RegisterStore(ctx, reg); err != nil {
		r.notifier.Error(friendlyError(err, "Registration failed"))
		return
	}
	r.notifier.Success("Store registered, please log in")
}

func (r *Runner) handleLogout() {
	if err := r.sessions.Clear(); err != nil {
		r.notifier.Error(err.Error())
		return
	}
	if r.ws != nil {
		r.ws.reset()
	}
	r.ws = nil
	r.notifier.Success("Logged out successfully")
}

func (r *Runner) handleProducts(ctx context.Context) {
	r.loading("products")
	if err := r.ws.catalog.Refresh(ctx); err != nil {
		r.notifier.Error("Could not retrieve products")
	}
	r.writeProducts(r.ws.catalog.Products(), r.ws.catalog.Stale())
}

func (r *Runner) handleFind(ctx context.Context, query string) {
	if len(r.ws.catalog.Products()) == 0 {
		r.loading("products")
		if err := r.ws.catalog.Refresh(ctx); err != nil {
			r.notifier.Error("Could not retrieve products")
			return
		}
	}
	r.writeProducts(r.ws.catalog.Filter(query), r.ws.catalog.Stale())
}

func (r *Runner) handleUnits(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stdout, "usage: units <barcode>")
		return
	}
	r.loading("units")
	units, err := r.ws.catalog.AvailableUnits(ctx, args[0])
	if err != nil {
		r.notifier.Error("Could not retrieve units")
		return
	}
	r.writeUnits(args[0], units)
}

func (r *Runner) handleAdd(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stdout, "usage: add <serialNumber>")
		return
	}
	if _, err := r.ws.cart.Add(ctx, args[0]); err != nil {
		r.notifier.Error(friendlyError(err, "Error"))
		return
	}
	r.notifier.Success("Added to cart")
	// Back to the catalog after a successful pick.
	r.writeProducts(r.ws.catalog.Products(), r.ws.catalog.Stale())
}

func (r *Runner) handleCart(ctx context.Context) {
	r.loading("cart")
	if err := r.ws.cart.Refresh(ctx); err != nil {
		r.notifier.Error("Could not retrieve cart")
	}
	r.writeCart(r.ws.cart.Current(), r.ws.cart.Stale())
}

func (r *Runner) handleRemove(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stdout, "usage: remove <serialNumber>")
		return
	}
	if _, err := r.ws.cart.Remove(ctx, args[0]); err != nil {
		r.notifier.Error(friendlyError(err, "Error"))
		return
	}
	r.writeCart(r.ws.cart.Current(), r.ws.cart.Stale())
}

func (r *Runner) handleCheckout(ctx context.Context) {
	name, ok := r.prompt("Customer name")
	if !ok {
		return
	}
	mobile, ok := r.prompt("Customer mobile")
	if !ok {
		return
	}
	r.ws.checkout.SetCustomer(name, mobile)

	order, err := r.ws.checkout.Submit(ctx, r.ws.cart.Current())
	if err != nil {
		r.notifier.Error(friendlyError(err, "Checkout failed"))
		return
	}

	r.notifier.Success(fmt.Sprintf("Order %s placed successfully", order.ID))
	_ = r.ws.cart.Refresh(ctx)
	_ = r.ws.history.Refresh(ctx)
	r.writeOrders(r.ws.history.Sorted(), r.ws.history.Stale())
}

func (r *Runner) handleOrders(ctx context.Context) {
	r.loading("orders")
	if err := r.ws.history.Refresh(ctx); err != nil {
		r.notifier.Error("Could not retrieve orders")
	}
	r.writeOrders(r.ws.history.Sorted(), r.ws.history.Stale())
}

func (r *Runner) handleReceipt(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stdout, "usage: receipt <orderId> [qr.png]")
		return
	}
	orderID := args[0]

	r.loading("receipt")
	receipt, err := r.ws.receipts.Fetch(ctx, orderID)
	if err != nil {
		if errors.Is(err, scanbill.ErrReceiptNotFound) {
			fmt.Fprintf(os.Stdout, "Receipt not found for order %s\n", orderID)
			return
		}
		r.notifier.Error("Could not retrieve receipt")
		return
	}

	r.writeReceipt(receipt, r.ws.receipts.ShareURL(orderID))

	if !r.jsonOut {
		qr, err := r.ws.receipts.QRTerminal(orderID)
		if err == nil {
			fmt.Fprintln(os.Stdout, qr)
		}
	}
	if len(args) >= 2 {
		if err := r.ws.receipts.SaveQRPNG(orderID, args[1]); err != nil {
			r.notifier.Error(err.Error())
			return
		}
		fmt.Fprintf(os.Stdout, "QR saved to %s\n", args[1])
	}
}

func (r *Runner) handleAdminRefresh(ctx context.Context, command string) {
	ctrl := r.ws.adminController()
	if ctrl == nil {
		fmt.Fprintln(os.Stdout, "select a store first with 'use <storeId>'")
		return
	}

	r.loading("store data")
	if err := ctrl.Refresh(ctx); err != nil {
		r.notifier.Error("Could not retrieve store data")
	}
	switch command {
	case "stats":
		r.writeStats(ctrl.StoreID(), ctrl.Stats(), ctrl.Stale())
	case "admin-orders":
		r.writeOrders(ctrl.Orders(), ctrl.Stale())
	}
}

func (r *Runner) handleProductAdd(ctx context.Context) {
	ctrl := r.ws.adminController()
	if ctrl == nil {
		fmt.Fprintln(os.Stdout, "select a store first with 'use <storeId>'")
		return
	}

	product, initialStock, ok := r.promptNewProduct()
	if !ok {
		return
	}
	if _, err := ctrl.CreateProduct(ctx, product, initialStock); err != nil {
		r.notifier.Error(friendlyError(err, "Failed to add product"))
		return
	}
	r.notifier.Success("Product added successfully")
}

func (r *Runner) handleProductDelete(ctx context.Context, args []string) {
	ctrl := r.ws.adminController()
	if ctrl == nil {
		fmt.Fprintln(os.Stdout, "select a store first with 'use <storeId>'")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stdout, "usage: product-del <productId>")
		return
	}

	answer, ok := r.prompt("Delete this product? (y/N)")
	if !ok || !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(os.Stdout, "cancelled")
		return
	}
	if err := ctrl.DeleteProduct(ctx, args[0]); err != nil {
		r.notifier.Error(friendlyError(err, "Failed to delete"))
		return
	}
	r.notifier.Success("Product deleted")
}

func (r *Runner) handleRestock(ctx context.Context, args []string) {
	ctrl := r.ws.adminController()
	if ctrl == nil {
		fmt.Fprintln(os.Stdout, "select a store first with 'use <storeId>'")
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(os.Stdout, "usage: restock <barcode> <quantity>")
		return
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(os.Stdout, "usage: restock <barcode> <quantity>")
		return
	}
	if err := ctrl.Restock(ctx, args[0], quantity); err != nil {
		r.notifier.Error(friendlyError(err, "Failed to add stock"))
		return
	}
	r.notifier.Success("Stock added successfully")
}

func (r *Runner) handleStores(ctx context.Context) {
	r.loading("stores")
	if err := r.ws.eco.Refresh(ctx); err != nil {
		r.notifier.Error("Could not retrieve stores")
		return
	}
	r.writeStores(r.ws.eco.Stores())
}

func (r *Runner) handleStoreAdd(ctx context.Context) {
	reg, ok := r.promptStoreRegistration()
	if !ok {
		return
	}
	store, err := r.ws.eco.Provision(ctx, reg)
	if err != nil {
		r.notifier.Error(friendlyError(err, "Registration failed"))
		return
	}
	r.notifier.Success(fmt.Sprintf("Store %s registered", store.Name))
}

func (r *Runner) handleUse(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stdout, "usage: use <storeId>")
		return
	}
	ctrl, err := r.ws.eco.Enter(args[0])
	if err != nil {
		r.notifier.Error(err.Error())
		return
	}
	r.ws.entered = ctrl

	r.loading("store data")
	if err := ctrl.Refresh(ctx); err != nil {
		r.notifier.Error("Could not retrieve store data")
	}
	fmt.Fprintf(os.Stdout, "Managing store %s\n", ctrl.StoreID())
}

func (r *Runner) handleBack() {
	r.ws.entered = nil
	fmt.Fprintln(os.Stdout, "Back to store list")
}

func (r *Runner) prompt(label string) (string, bool) {
	fmt.Fprintf(os.Stdout, "%s: ", label)
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func (r *Runner) promptStoreRegistration() (scanbill.StoreRegistration, bool) {
	var reg scanbill.StoreRegistration
	var ok bool
	if reg.StoreName, ok = r.prompt("Store name"); !ok {
		return reg, false
	}
	if reg.Location, ok = r.prompt("Location"); !ok {
		return reg, false
	}
	if reg.AdminUsername, ok = r.prompt("Admin username"); !ok {
		return reg, false
	}
	if reg.AdminPassword, ok = r.prompt("Admin password"); !ok {
		return reg, false
	}
	return reg, true
}

func (r *Runner) promptNewProduct() (scanbill.NewProduct, int, bool) {
	var product scanbill.NewProduct
	var ok bool
	if product.Barcode, ok = r.prompt("Barcode"); !ok {
		return product, 0, false
	}
	if product.Name, ok = r.prompt("Name"); !ok {
		return product, 0, false
	}
	priceText, ok := r.prompt("Price")
	if !ok {
		return product, 0, false
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		fmt.Fprintln(os.Stdout, "price must be a number")
		return product, 0, false
	}
	product.Price = price
	if product.Category, ok = r.prompt("Category"); !ok {
		return product, 0, false
	}
	if product.ImageURL, ok = r.prompt("Image URL"); !ok {
		return product, 0, false
	}
	stockText, ok := r.prompt("Initial stock")
	if !ok {
		return product, 0, false
	}
	initialStock, err := strconv.Atoi(stockText)
	if err != nil || initialStock < 0 {
		fmt.Fprintln(os.Stdout, "initial stock must be a non-negative number")
		return product, 0, false
	}
	return product, initialStock, true
}

func (r *Runner) loading(what string) {
	if r.jsonOut {
		return
	}
	fmt.Fprintf(os.Stdout, "loading %s...\n", what)
}

func (r *Runner) writeHelp() {
	view := r.currentView()
	fmt.Fprintf(os.Stdout, "commands (%s):\n", view)
	for _, command := range view.Commands() {
		fmt.Fprintf(os.Stdout, "  %s\n", command)
	}
}
