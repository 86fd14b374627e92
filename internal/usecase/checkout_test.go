package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lithoprint/printdesk/internal/adapter/stripe"
	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/domain/repository"
	"github.com/lithoprint/printdesk/internal/pricing"
)

func testRates() pricing.Rates {
	return pricing.Rates{
		ShippingFlat: decimal.RequireFromString("10.00"),
		TaxRate:      decimal.RequireFromString("0.08"),
	}
}

func pendingOrder(id int64) *model.Order {
	return &model.Order{
		ID:     id,
		Status: model.OrderStatusSubmittedPending,
		Items: []model.LineItem{
			{ID: 1, OrderID: id, ItemTypeID: 6, ItemName: "Single 4x4", Price: decimal.RequireFromString("12.00")},
			{ID: 2, OrderID: id, ItemTypeID: 7, ItemName: "Double 4x4", Price: decimal.RequireFromString("20.00")},
		},
	}
}

func newTestCheckout(orders *stubOrderRepo, customers *stubCustomerRepo, payments *stubPayments, broadcaster *stubBroadcaster) *CheckoutUseCase {
	ledger := NewLedgerUseCase(orders, testCatalog(), 1)
	return NewCheckoutUseCase(ledger, customers, orders, payments, broadcaster, testRates(), "usd", testLogger())
}

func TestCheckoutHappyPath(t *testing.T) {
	var gotUpdate repository.CheckoutUpdate
	orders := &stubOrderRepo{
		getWithItemsFn: func(_ context.Context, orderID int64) (*model.Order, error) {
			return pendingOrder(orderID), nil
		},
		subtotalFn: func(context.Context, int64) (decimal.Decimal, error) {
			return decimal.RequireFromString("32.00"), nil
		},
		completeCheckoutFn: func(_ context.Context, _ int64, update repository.CheckoutUpdate) error {
			gotUpdate = update
			return nil
		},
	}
	customers := &stubCustomerRepo{
		upsertFn: func(_ context.Context, customer model.Customer) (int64, error) {
			if customer.Name != "Ada Lovelace" {
				t.Errorf("customer name = %q", customer.Name)
			}
			if customer.Email != "ada@example.com" {
				t.Errorf("customer email = %q", customer.Email)
			}
			return 42, nil
		},
	}
	payments := &stubPayments{
		chargeFn: func(_ context.Context, req stripe.ChargeRequest) (*stripe.ChargeResult, error) {
			return &stripe.ChargeResult{ChargeID: "ch_123", CardLast4: "4242"}, nil
		},
	}
	broadcaster := &stubBroadcaster{}
	u := newTestCheckout(orders, customers, payments, broadcaster)

	result, err := u.Checkout(context.Background(), CheckoutInput{
		OrderID:     10,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		StripeToken: "tok_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 32.00 + 10.00 shipping + 8% tax on the subtotal only.
	if !result.Totals.Total.Equal(decimal.RequireFromString("44.56")) {
		t.Errorf("total = %s, want 44.56", result.Totals.Total)
	}
	if result.ChargeID != "ch_123" {
		t.Errorf("charge id = %s", result.ChargeID)
	}

	req := payments.requests[0]
	if req.AmountMinor != 4456 {
		t.Errorf("charge amount = %d cents, want 4456", req.AmountMinor)
	}
	if req.Currency != "usd" || req.SourceToken != "tok_visa" {
		t.Errorf("charge request = %+v", req)
	}

	if gotUpdate.CustomerID != 42 {
		t.Errorf("update customer = %d, want 42", gotUpdate.CustomerID)
	}
	if gotUpdate.Status != model.OrderStatusSubmittedPaid {
		t.Errorf("update status = %s, want submitted_paid", gotUpdate.Status)
	}
	if gotUpdate.CardLast4 != "4242" || gotUpdate.ChargeID != "ch_123" {
		t.Errorf("update charge fields = %+v", gotUpdate)
	}
	if !gotUpdate.Total.Equal(decimal.RequireFromString("44.56")) {
		t.Errorf("update total = %s, want 44.56", gotUpdate.Total)
	}

	if len(broadcaster.calls) != 1 || broadcaster.calls[0] != 10 {
		t.Fatalf("broadcast calls = %v, want [10]", broadcaster.calls)
	}
	if len(broadcaster.items[0]) != 2 {
		t.Errorf("broadcast items = %d, want full item list", len(broadcaster.items[0]))
	}
}

func TestCheckoutUnknownOrder(t *testing.T) {
	orders := &stubOrderRepo{
		getWithItemsFn: func(context.Context, int64) (*model.Order, error) { return nil, nil },
	}
	payments := &stubPayments{
		chargeFn: func(context.Context, stripe.ChargeRequest) (*stripe.ChargeResult, error) {
			t.Fatal("no charge expected for a missing order")
			return nil, nil
		},
	}
	u := newTestCheckout(orders, &stubCustomerRepo{}, payments, &stubBroadcaster{})

	_, err := u.Checkout(context.Background(), CheckoutInput{OrderID: 404})
	if !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("error = %v, want ErrOrderNotFound", err)
	}
}

func TestCheckoutDeclinedChargeLeavesOrderPending(t *testing.T) {
	completed := false
	orders := &stubOrderRepo{
		getWithItemsFn: func(_ context.Context, orderID int64) (*model.Order, error) {
			return pendingOrder(orderID), nil
		},
		subtotalFn: func(context.Context, int64) (decimal.Decimal, error) {
			return decimal.RequireFromString("32.00"), nil
		},
		completeCheckoutFn: func(context.Context, int64, repository.CheckoutUpdate) error {
			completed = true
			return nil
		},
	}
	customers := &stubCustomerRepo{
		upsertFn: func(context.Context, model.Customer) (int64, error) { return 42, nil },
	}
	payments := &stubPayments{
		chargeFn: func(context.Context, stripe.ChargeRequest) (*stripe.ChargeResult, error) {
			return nil, stripe.DeclinedError{Code: "card_declined", Message: "Your card was declined."}
		},
	}
	broadcaster := &stubBroadcaster{}
	u := newTestCheckout(orders, customers, payments, broadcaster)

	_, err := u.Checkout(context.Background(), CheckoutInput{OrderID: 10, StripeToken: "tok_chargeDeclined"})
	if !errors.Is(err, domainErrors.ErrPaymentDeclined) {
		t.Fatalf("error = %v, want ErrPaymentDeclined", err)
	}
	if completed {
		t.Error("declined charge must not complete the checkout")
	}
	if len(broadcaster.calls) != 0 {
		t.Error("declined charge must not broadcast")
	}
}

func TestCheckoutCompleteWriteFailure(t *testing.T) {
	writeErr := errors.New("connection reset")
	orders := &stubOrderRepo{
		getWithItemsFn: func(_ context.Context, orderID int64) (*model.Order, error) {
			return pendingOrder(orderID), nil
		},
		subtotalFn: func(context.Context, int64) (decimal.Decimal, error) {
			return decimal.RequireFromString("32.00"), nil
		},
		completeCheckoutFn: func(context.Context, int64, repository.CheckoutUpdate) error {
			return writeErr
		},
	}
	customers := &stubCustomerRepo{
		upsertFn: func(context.Context, model.Customer) (int64, error) { return 42, nil },
	}
	payments := &stubPayments{
		chargeFn: func(context.Context, stripe.ChargeRequest) (*stripe.ChargeResult, error) {
			return &stripe.ChargeResult{ChargeID: "ch_123", CardLast4: "4242"}, nil
		},
	}
	broadcaster := &stubBroadcaster{}
	u := newTestCheckout(orders, customers, payments, broadcaster)

	_, err := u.Checkout(context.Background(), CheckoutInput{OrderID: 10, StripeToken: "tok_visa"})
	if !errors.Is(err, writeErr) {
		t.Fatalf("error = %v, want wrapped write failure", err)
	}
	if len(broadcaster.calls) != 0 {
		t.Error("failed checkout write must not broadcast")
	}
}
