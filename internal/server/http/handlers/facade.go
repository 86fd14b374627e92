package handlers

import (
	"context"

	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/domain/repository"
	"github.com/lithoprint/printdesk/internal/notifier"
	"github.com/lithoprint/printdesk/internal/usecase"
)

// IngestFacade describes order intake capabilities required by handlers.
type IngestFacade interface {
	SubmitOrder(ctx context.Context, input usecase.IngestInput) (int64, error)
}

// CheckoutFacade encapsulates payment completion exposed via HTTP.
type CheckoutFacade interface {
	CompleteOrder(ctx context.Context, input usecase.CheckoutInput) (*usecase.CheckoutResult, error)
}

// LedgerFacade provides dashboard order operations.
type LedgerFacade interface {
	Orders(ctx context.Context, filter repository.OrderFilter) ([]model.OrderSummary, error)
	OrderDetail(ctx context.Context, orderID int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdateItemStatus(ctx context.Context, orderID, itemID int64, status model.ItemStatus, checked bool) error
	ResendItem(ctx context.Context, orderID, itemID int64) error
}

// ImageFacade provides post-hoc image adjustment.
type ImageFacade interface {
	AdjustImage(filename string, brightness, contrast float64) (string, error)
}

// MachineFacade manages fulfillment machine channel membership.
type MachineFacade interface {
	RegisterMachine(conn notifier.Conn)
	DeregisterMachine(conn notifier.Conn)
}

// PrintFacade aggregates the full set of operations used across handlers.
type PrintFacade interface {
	IngestFacade
	CheckoutFacade
	LedgerFacade
	ImageFacade
	MachineFacade
}
