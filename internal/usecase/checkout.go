package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lithoprint/printdesk/internal/adapter/stripe"
	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/domain/repository"
	"github.com/lithoprint/printdesk/internal/pricing"
)

// CheckoutInput carries the buyer details and the tokenized card for one
// pending order.
type CheckoutInput struct {
	OrderID     int64
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Address1    string
	Address2    string
	City        string
	State       string
	Zip         string
	StripeToken string
}

// CheckoutResult reports the charge outcome back to the storefront.
type CheckoutResult struct {
	OrderID  int64
	Totals   pricing.Totals
	ChargeID string
}

// Broadcaster announces a paid order to connected fulfillment machines.
type Broadcaster interface {
	NotifyAll(ctx context.Context, orderID int64, items []model.LineItem)
}

// CheckoutUseCase coordinates payment for a pending order: identify the
// customer, recompute totals from stored snapshot prices, charge the card
// and, only on success, attach everything to the order and announce it.
type CheckoutUseCase struct {
	ledger      *LedgerUseCase
	customers   repository.CustomerRepository
	orders      repository.OrderRepository
	payments    stripe.Client
	broadcaster Broadcaster
	rates       pricing.Rates
	currency    string
	logger      *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	ledger *LedgerUseCase,
	customers repository.CustomerRepository,
	orders repository.OrderRepository,
	payments stripe.Client,
	broadcaster Broadcaster,
	rates pricing.Rates,
	currency string,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		ledger:      ledger,
		customers:   customers,
		orders:      orders,
		payments:    payments,
		broadcaster: broadcaster,
		rates:       rates,
		currency:    currency,
		logger:      logger,
	}
}

// Checkout runs the full payment sequence for one order.
//
// Totals are always recomputed server-side from stored snapshot prices;
// client-submitted amounts are never trusted. A declined or failed charge
// leaves the order untouched in submitted_pending so the buyer can retry.
func (u *CheckoutUseCase) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	order, err := u.ledger.GetOrderWithItems(ctx, input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, domainErrors.ErrOrderNotFound
	}

	customerID, err := u.customers.Upsert(ctx, model.Customer{
		Name:     strings.TrimSpace(input.FirstName + " " + input.LastName),
		Email:    input.Email,
		Phone:    input.Phone,
		Address1: input.Address1,
		Address2: input.Address2,
		City:     input.City,
		State:    input.State,
		Zip:      input.Zip,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert customer: %w", err)
	}

	subtotal, err := u.ledger.Subtotal(ctx, input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("compute subtotal: %w", err)
	}
	totals := pricing.Calculate(subtotal, u.rates)

	charge, err := u.payments.Charge(ctx, stripe.ChargeRequest{
		AmountMinor: pricing.MinorUnits(totals.Total),
		Currency:    u.currency,
		Description: fmt.Sprintf("Photo print order #%d", input.OrderID),
		SourceToken: input.StripeToken,
	})
	if err != nil {
		return nil, err
	}

	err = u.orders.CompleteCheckout(ctx, input.OrderID, repository.CheckoutUpdate{
		CustomerID: customerID,
		Total:      totals.Total,
		ChargeID:   charge.ChargeID,
		CardLast4:  charge.CardLast4,
		Status:     model.OrderStatusSubmittedPaid,
	})
	if err != nil {
		return nil, fmt.Errorf("complete checkout: %w", err)
	}

	u.logger.InfoContext(ctx, "order paid",
		slog.Int64("order_id", input.OrderID),
		slog.Int64("customer_id", customerID),
		slog.String("total", totals.Total.StringFixed(2)),
	)

	u.broadcaster.NotifyAll(ctx, input.OrderID, order.Items)

	return &CheckoutResult{
		OrderID:  input.OrderID,
		Totals:   totals,
		ChargeID: charge.ChargeID,
	}, nil
}
