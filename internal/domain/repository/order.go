package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lithoprint/printdesk/internal/domain/model"
)

// OrderFilter narrows dashboard order listings.
type OrderFilter struct {
	// Status restricts to one lifecycle status when non-empty.
	Status model.OrderStatus
	// Search matches the order id or the customer name, case-insensitive.
	Search string
}

// CheckoutUpdate is the single atomic write performed when a charge
// succeeds. All four columns flip together or not at all.
type CheckoutUpdate struct {
	CustomerID int64
	Total      decimal.Decimal
	ChargeID   string
	CardLast4  string
	Status     model.OrderStatus
}

// NewLineItem is one line item of an order about to be created. Price is
// the caller's catalog snapshot.
type NewLineItem struct {
	ItemTypeID int64
	Price      decimal.Decimal
	HasHangers bool
}

// OrderRepository describes persistence operations with orders and their
// line items.
type OrderRepository interface {
	Create(ctx context.Context, customerID int64, boxIncluded bool) (int64, error)
	AddLineItem(ctx context.Context, orderID, itemTypeID int64, price decimal.Decimal, hasHangers bool) (int64, error)
	// CreateWithItems inserts the order and all its line items in one
	// transaction. Item ids come back in input order. A failure anywhere
	// rolls the whole write back.
	CreateWithItems(ctx context.Context, customerID int64, boxIncluded bool, items []NewLineItem) (int64, []int64, error)
	AddLineItemImage(ctx context.Context, lineItemID int64, filepath string) error
	// GetWithItems reconstructs the full aggregate from one join read.
	// Returns nil (not an error) when the order does not exist.
	GetWithItems(ctx context.Context, orderID int64) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.OrderSummary, error)
	SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	SetItemStatus(ctx context.Context, orderID, itemID int64, status model.ItemStatus) error
	// Subtotal sums each distinct line item's snapshot price.
	Subtotal(ctx context.Context, orderID int64) (decimal.Decimal, error)
	CompleteCheckout(ctx context.Context, orderID int64, update CheckoutUpdate) error
}
