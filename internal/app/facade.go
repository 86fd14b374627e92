package app

import (
	"context"

	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/domain/repository"
	"github.com/lithoprint/printdesk/internal/notifier"
	pkgAuth "github.com/lithoprint/printdesk/internal/pkg/auth"
	"github.com/lithoprint/printdesk/internal/usecase"
)

// ImageAdjuster is the post-hoc adjustment capability of the image
// transform collaborator.
type ImageAdjuster interface {
	Adjust(filename string, brightness, contrast float64) (string, error)
}

// PrintFacade aggregates the application's use cases behind the surface
// the HTTP layer consumes.
type PrintFacade struct {
	ingest   *usecase.IngestUseCase
	checkout *usecase.CheckoutUseCase
	ledger   *usecase.LedgerUseCase
	notifier *notifier.Notifier
	images   ImageAdjuster
	tokens   pkgAuth.Strategy
}

// NewPrintFacade constructs PrintFacade.
func NewPrintFacade(
	ingest *usecase.IngestUseCase,
	checkout *usecase.CheckoutUseCase,
	ledger *usecase.LedgerUseCase,
	fulfillment *notifier.Notifier,
	images ImageAdjuster,
	tokens pkgAuth.Strategy,
) *PrintFacade {
	return &PrintFacade{
		ingest:   ingest,
		checkout: checkout,
		ledger:   ledger,
		notifier: fulfillment,
		images:   images,
		tokens:   tokens,
	}
}

func (f *PrintFacade) SubmitOrder(ctx context.Context, input usecase.IngestInput) (int64, error) {
	return f.ingest.Ingest(ctx, input)
}

func (f *PrintFacade) CompleteOrder(ctx context.Context, input usecase.CheckoutInput) (*usecase.CheckoutResult, error) {
	return f.checkout.Checkout(ctx, input)
}

func (f *PrintFacade) Orders(ctx context.Context, filter repository.OrderFilter) ([]model.OrderSummary, error) {
	return f.ledger.ListOrders(ctx, filter)
}

func (f *PrintFacade) OrderDetail(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.ledger.GetOrderWithItems(ctx, orderID)
}

func (f *PrintFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return f.ledger.SetOrderStatus(ctx, orderID, status)
}

func (f *PrintFacade) UpdateItemStatus(ctx context.Context, orderID, itemID int64, status model.ItemStatus, checked bool) error {
	return f.ledger.SetLineItemStatus(ctx, orderID, itemID, status, checked)
}

func (f *PrintFacade) ResendItem(ctx context.Context, orderID, itemID int64) error {
	return f.notifier.NotifyOne(ctx, orderID, itemID)
}

func (f *PrintFacade) AdjustImage(filename string, brightness, contrast float64) (string, error) {
	return f.images.Adjust(filename, brightness, contrast)
}

func (f *PrintFacade) RegisterMachine(conn notifier.Conn) {
	f.notifier.Registry().Register(conn)
}

func (f *PrintFacade) DeregisterMachine(conn notifier.Conn) {
	f.notifier.Registry().Deregister(conn)
}

func (f *PrintFacade) ParseToken(token string) (string, error) {
	return f.tokens.ParseToken(token)
}
