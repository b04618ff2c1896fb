package checkout

import (
	"context"
	"errors"
	"testing"

	"scanbill_cli/internal/scanbill"

	"go.uber.org/zap"
)

type fakeAPI struct {
	checkoutFn func(userID, storeID, customerName, customerMobile string) (scanbill.Order, error)
	calls      int
}

func (f *fakeAPI) Checkout(_ context.Context, userID, storeID, customerName, customerMobile string) (scanbill.Order, error) {
	f.calls++
	return f.checkoutFn(userID, storeID, customerName, customerMobile)
}

func TestCanSubmit(t *testing.T) {
	filled := scanbill.Cart{Items: []scanbill.CartItem{{Price: 9.99}}, TotalAmount: 9.99}
	empty := scanbill.Cart{Items: []scanbill.CartItem{}, TotalAmount: 0}

	tests := []struct {
		name string
		form Form
		cart scanbill.Cart
		want bool
	}{
		{"all set", Form{"Bob", "555"}, filled, true},
		{"empty name", Form{"", "555"}, filled, false},
		{"whitespace name", Form{"   ", "555"}, filled, false},
		{"empty mobile", Form{"Bob", ""}, filled, false},
		{"empty cart", Form{"Bob", "555"}, empty, false},
		{"zero total", Form{"Bob", "555"}, scanbill.Cart{Items: []scanbill.CartItem{{}}, TotalAmount: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanSubmit(tt.form, tt.cart); got != tt.want {
				t.Errorf("CanSubmit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubmitGateBlocksTheCall(t *testing.T) {
	api := &fakeAPI{checkoutFn: func(_, _, _, _ string) (scanbill.Order, error) {
		return scanbill.Order{}, nil
	}}
	flow := NewFlow(api, "u1", "s1", zap.NewNop())
	flow.SetCustomer("", "")

	_, err := flow.Submit(context.Background(), scanbill.Cart{TotalAmount: 9.99})
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if api.calls != 0 {
		t.Errorf("no request may be issued when the gate blocks, got %d", api.calls)
	}
}

func TestSubmitSuccessResetsForm(t *testing.T) {
	api := &fakeAPI{checkoutFn: func(userID, storeID, name, mobile string) (scanbill.Order, error) {
		if userID != "u1" || storeID != "s1" || name != "Bob" || mobile != "555" {
			t.Errorf("unexpected args (%s,%s,%s,%s)", userID, storeID, name, mobile)
		}
		return scanbill.Order{ID: "o1", TotalAmount: 9.99}, nil
	}}
	flow := NewFlow(api, "u1", "s1", zap.NewNop())
	flow.SetCustomer("Bob", "555")

	order, err := flow.Submit(context.Background(), scanbill.Cart{TotalAmount: 9.99})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.ID != "o1" {
		t.Errorf("unexpected order %+v", order)
	}
	if flow.Form() != (Form{}) {
		t.Errorf("form must reset after success, got %+v", flow.Form())
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	api := &fakeAPI{checkoutFn: func(_, _, _, _ string) (scanbill.Order, error) {
		return scanbill.Order{}, errors.New("cart is empty")
	}}
	flow := NewFlow(api, "u1", "s1", zap.NewNop())
	flow.SetCustomer("Bob", "555")

	if _, err := flow.Submit(context.Background(), scanbill.Cart{TotalAmount: 9.99}); err == nil {
		t.Fatal("expected submit error")
	}
	if flow.Form() != (Form{CustomerName: "Bob", CustomerMobile: "555"}) {
		t.Errorf("form must survive a failed submit for retry, got %+v", flow.Form())
	}
}
