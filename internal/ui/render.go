package ui

import (
	"encoding/json"
	"fmt"
	"os"

	"scanbill_cli/internal/scanbill"
)

func (r *Runner) writeJSON(payload any) bool {
	if !r.jsonOut {
		return false
	}
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(payload)
	return true
}

func staleMarker(stale bool) string {
	if stale {
		return " (stale: last refresh failed)"
	}
	return ""
}

func (r *Runner) writeProducts(products []scanbill.Product, stale bool) {
	if r.writeJSON(products) {
		return
	}
	fmt.Fprintf(os.Stdout, "Products%s:\n", staleMarker(stale))
	if len(products) == 0 {
		fmt.Fprintln(os.Stdout, "- (no products)")
		return
	}
	for i, p := range products {
		fmt.Fprintf(os.Stdout, "%d) %s  $%.2f  [%s]", i+1, p.Name, p.Price, p.Barcode)
		if p.Category != "" {
			fmt.Fprintf(os.Stdout, "  %s", p.Category)
		}
		fmt.Fprintln(os.Stdout)
	}
}

func (r *Runner) writeUnits(barcode string, units []scanbill.InventoryUnit) {
	if r.writeJSON(units) {
		return
	}
	fmt.Fprintf(os.Stdout, "Available units for %s:\n", barcode)
	if len(units) == 0 {
		fmt.Fprintln(os.Stdout, "- (none in stock)")
		return
	}
	for i, unit := range units {
		fmt.Fprintf(os.Stdout, "%d) %s\n", i+1, unit.SerialNumber)
	}
	fmt.Fprintln(os.Stdout, "pick one with: add <serialNumber>")
}

func (r *Runner) writeCart(cart scanbill.Cart, stale bool) {
	if r.writeJSON(cart) {
		return
	}
	fmt.Fprintf(os.Stdout, "Cart%s:\n", staleMarker(stale))
	if len(cart.Items) == 0 {
		fmt.Fprintln(os.Stdout, "- (your cart is empty)")
		return
	}
	for i, item := range cart.Items {
		fmt.Fprintf(os.Stdout, "%d) %s  $%.2f  [%s]\n", i+1, item.ProductName, item.Price, item.SerialNumber)
	}
	fmt.Fprintf(os.Stdout, "Total: $%.2f\n", cart.TotalAmount)
	fmt.Fprintln(os.Stdout, "checkout when ready")
}

func (r *Runner) writeOrders(orders []scanbill.Order, stale bool) {
	if r.writeJSON(orders) {
		return
	}
	fmt.Fprintf(os.Stdout, "Orders%s:\n", staleMarker(stale))
	if len(orders) == 0 {
		fmt.Fprintln(os.Stdout, "- (no orders yet)")
		return
	}
	for i, order := range orders {
		fmt.Fprintf(os.Stdout, "%d) %s  %s  $%.2f  %s (%s)\n",
			i+1, order.ID, order.Timestamp, order.TotalAmount, order.CustomerName, order.CustomerMobile)
	}
}

func (r *Runner) writeReceipt(receipt scanbill.Receipt, shareURL string) {
	if r.writeJSON(receipt) {
		return
	}
	fmt.Fprintf(os.Stdout, "Receipt for order %s\n", receipt.OrderID)
	fmt.Fprintf(os.Stdout, "Customer: %s (%s)\n", receipt.CustomerName, receipt.CustomerMobile)
	for i, item := range receipt.Items {
		fmt.Fprintf(os.Stdout, "%d) %s  $%.2f  [%s]\n", i+1, item.ProductName, item.Price, item.SerialNumber)
	}
	fmt.Fprintf(os.Stdout, "Subtotal: $%.2f\n", receipt.Subtotal)
	fmt.Fprintf(os.Stdout, "Tax:      $%.2f\n", receipt.TaxAmount)
	if receipt.DiscountAmount != 0 {
		fmt.Fprintf(os.Stdout, "Discount: $%.2f\n", receipt.DiscountAmount)
	}
	fmt.Fprintf(os.Stdout, "Total:    $%.2f\n", receipt.TotalAmount)
	if receipt.PaymentMethod != "" {
		fmt.Fprintf(os.Stdout, "Paid via %s", receipt.PaymentMethod)
		if receipt.PaymentID != "" {
			fmt.Fprintf(os.Stdout, " (%s)", receipt.PaymentID)
		}
		fmt.Fprintln(os.Stdout)
	}
	fmt.Fprintf(os.Stdout, "Issued: %s\n", receipt.Timestamp)
	fmt.Fprintf(os.Stdout, "Share: %s\n", shareURL)
}

func (r *Runner) writeStats(storeID string, stats scanbill.Stats, stale bool) {
	if r.writeJSON(stats) {
		return
	}
	fmt.Fprintf(os.Stdout, "Store %s%s:\n", storeID, staleMarker(stale))
	fmt.Fprintf(os.Stdout, "- total revenue: $%.2f\n", stats.TotalRevenue)
	fmt.Fprintf(os.Stdout, "- total orders:  %d\n", stats.TotalOrders)
}

func (r *Runner) writeStores(stores []scanbill.Store) {
	if r.writeJSON(stores) {
		return
	}
	fmt.Fprintln(os.Stdout, "Stores:")
	if len(stores) == 0 {
		fmt.Fprintln(os.Stdout, "- (no stores)")
		return
	}
	for i, store := range stores {
		fmt.Fprintf(os.Stdout, "%d) %s  %s", i+1, store.ID, store.Name)
		if store.Location != "" {
			fmt.Fprintf(os.Stdout, "  (%s)", store.Location)
		}
		fmt.Fprintln(os.Stdout)
	}
	fmt.Fprintln(os.Stdout, "drill in with: use <storeId>")
}
