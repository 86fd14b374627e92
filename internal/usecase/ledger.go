package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/domain/repository"
)

// LedgerUseCase owns order and line-item persistence lifecycle.
type LedgerUseCase struct {
	orders            repository.OrderRepository
	catalog           repository.CatalogRepository
	defaultCustomerID int64
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(orders repository.OrderRepository, catalog repository.CatalogRepository, defaultCustomerID int64) *LedgerUseCase {
	return &LedgerUseCase{orders: orders, catalog: catalog, defaultCustomerID: defaultCustomerID}
}

// CreateOrder inserts a new order in submitted_pending. A zero customerID
// selects the placeholder guest customer; checkout identifies the real one
// later.
func (u *LedgerUseCase) CreateOrder(ctx context.Context, customerID int64, boxIncluded bool) (int64, error) {
	if customerID == 0 {
		customerID = u.defaultCustomerID
	}
	return u.orders.Create(ctx, customerID, boxIncluded)
}

// AddLineItem snapshots the current catalog price onto a new line item.
// The snapshot is the price of record from here on; later catalog changes
// never touch existing orders.
func (u *LedgerUseCase) AddLineItem(ctx context.Context, orderID, itemTypeID int64, hasHangers bool) (int64, error) {
	itemType, err := u.catalog.GetItemType(ctx, itemTypeID)
	if err != nil {
		return 0, err
	}
	return u.orders.AddLineItem(ctx, orderID, itemTypeID, itemType.Price, hasHangers)
}

// LineItemSpec describes one line item of an order about to be created.
type LineItemSpec struct {
	ItemTypeID int64
	HasHangers bool
}

// CreateOrderWithItems persists an order and all its line items in one
// transaction, so a storage failure partway through never leaves a partial
// order behind. Prices are snapshotted from the catalog exactly as
// AddLineItem does; a zero customerID selects the placeholder guest.
func (u *LedgerUseCase) CreateOrderWithItems(ctx context.Context, customerID int64, boxIncluded bool, items []LineItemSpec) (int64, []int64, error) {
	if customerID == 0 {
		customerID = u.defaultCustomerID
	}
	rows := make([]repository.NewLineItem, len(items))
	for i, item := range items {
		itemType, err := u.catalog.GetItemType(ctx, item.ItemTypeID)
		if err != nil {
			return 0, nil, err
		}
		rows[i] = repository.NewLineItem{
			ItemTypeID: item.ItemTypeID,
			Price:      itemType.Price,
			HasHangers: item.HasHangers,
		}
	}
	return u.orders.CreateWithItems(ctx, customerID, boxIncluded, rows)
}

// AddLineItemImage appends one image record in status pending.
func (u *LedgerUseCase) AddLineItemImage(ctx context.Context, lineItemID int64, filepath string) error {
	return u.orders.AddLineItemImage(ctx, lineItemID, filepath)
}

// GetOrderWithItems reconstructs the full aggregate. Returns nil (not an
// error) when the order does not exist.
func (u *LedgerUseCase) GetOrderWithItems(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetWithItems(ctx, orderID)
}

// ListOrders returns dashboard summaries, optionally filtered.
func (u *LedgerUseCase) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.OrderSummary, error) {
	return u.orders.List(ctx, filter)
}

// SetOrderStatus applies a staff-driven status change.
func (u *LedgerUseCase) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if !status.Known() {
		return domainErrors.ErrInvalidStatus
	}
	return u.orders.SetStatus(ctx, orderID, status)
}

// SetLineItemStatus applies the dashboard's toggle contract: unchecking
// always resets the item to pending regardless of the status argument.
func (u *LedgerUseCase) SetLineItemStatus(ctx context.Context, orderID, itemID int64, status model.ItemStatus, checked bool) error {
	if !checked {
		status = model.ItemStatusPending
	}
	if !status.Known() {
		return domainErrors.ErrInvalidStatus
	}
	return u.orders.SetItemStatus(ctx, orderID, itemID, status)
}

// Subtotal sums the order's distinct line-item snapshot prices.
func (u *LedgerUseCase) Subtotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	return u.orders.Subtotal(ctx, orderID)
}
