package test

import (
	"context"
	"sync"

	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/domain/repository"
	"github.com/lithoprint/printdesk/internal/notifier"
	"github.com/lithoprint/printdesk/internal/usecase"
)

// IngestFacadeStub provides controllable behaviour for upload endpoints.
type IngestFacadeStub struct {
	SubmitFn func(context.Context, usecase.IngestInput) (int64, error)
}

// SubmitOrder delegates to the override or returns a fixed order id.
func (s IngestFacadeStub) SubmitOrder(ctx context.Context, input usecase.IngestInput) (int64, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, input)
	}
	return 1, nil
}

// CheckoutFacadeStub simulates payment completion.
type CheckoutFacadeStub struct {
	CompleteFn func(context.Context, usecase.CheckoutInput) (*usecase.CheckoutResult, error)
}

// CompleteOrder delegates to the override or reports a trivial success.
func (s CheckoutFacadeStub) CompleteOrder(ctx context.Context, input usecase.CheckoutInput) (*usecase.CheckoutResult, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, input)
	}
	return &usecase.CheckoutResult{OrderID: input.OrderID}, nil
}

// LedgerFacadeStub provides controllable behaviour for dashboard endpoints.
type LedgerFacadeStub struct {
	OrdersFn           func(context.Context, repository.OrderFilter) ([]model.OrderSummary, error)
	OrderDetailFn      func(context.Context, int64) (*model.Order, error)
	UpdateStatusFn     func(context.Context, int64, model.OrderStatus) error
	UpdateItemStatusFn func(context.Context, int64, int64, model.ItemStatus, bool) error
	ResendFn           func(context.Context, int64, int64) error
}

// Orders returns the configured listing.
func (s LedgerFacadeStub) Orders(ctx context.Context, filter repository.OrderFilter) ([]model.OrderSummary, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter)
	}
	return []model.OrderSummary{}, nil
}

// OrderDetail returns the configured aggregate, nil by default.
func (s LedgerFacadeStub) OrderDetail(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.OrderDetailFn != nil {
		return s.OrderDetailFn(ctx, orderID)
	}
	return nil, nil
}

// UpdateOrderStatus executes the configured handler.
func (s LedgerFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	return nil
}

// UpdateItemStatus executes the configured handler.
func (s LedgerFacadeStub) UpdateItemStatus(ctx context.Context, orderID, itemID int64, status model.ItemStatus, checked bool) error {
	if s.UpdateItemStatusFn != nil {
		return s.UpdateItemStatusFn(ctx, orderID, itemID, status, checked)
	}
	return nil
}

// ResendItem executes the configured handler.
func (s LedgerFacadeStub) ResendItem(ctx context.Context, orderID, itemID int64) error {
	if s.ResendFn != nil {
		return s.ResendFn(ctx, orderID, itemID)
	}
	return nil
}

// ImageFacadeStub simulates post-hoc image adjustment.
type ImageFacadeStub struct {
	AdjustFn func(string, float64, float64) (string, error)
}

// AdjustImage delegates to the override or echoes the filename.
func (s ImageFacadeStub) AdjustImage(filename string, brightness, contrast float64) (string, error) {
	if s.AdjustFn != nil {
		return s.AdjustFn(filename, brightness, contrast)
	}
	return filename, nil
}

// MachineFacadeStub records machine channel membership changes.
type MachineFacadeStub struct {
	mu           sync.Mutex
	Registered   []notifier.Conn
	Deregistered []notifier.Conn
}

// RegisterMachine records the connection.
func (s *MachineFacadeStub) RegisterMachine(conn notifier.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Registered = append(s.Registered, conn)
}

// DeregisterMachine records the removal.
func (s *MachineFacadeStub) DeregisterMachine(conn notifier.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deregistered = append(s.Deregistered, conn)
}

// RegisteredSnapshot returns the recorded registrations.
func (s *MachineFacadeStub) RegisteredSnapshot() []notifier.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notifier.Conn(nil), s.Registered...)
}

// DeregisteredSnapshot returns the recorded removals.
func (s *MachineFacadeStub) DeregisteredSnapshot() []notifier.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notifier.Conn(nil), s.Deregistered...)
}

// PrintFacadeStub aggregates facade dependencies for HTTP layer tests.
type PrintFacadeStub struct {
	IngestFacadeStub
	CheckoutFacadeStub
	LedgerFacadeStub
	ImageFacadeStub
	*MachineFacadeStub
}

// NewPrintFacadeStub builds a stub with machine recording initialized.
func NewPrintFacadeStub() *PrintFacadeStub {
	return &PrintFacadeStub{MachineFacadeStub: &MachineFacadeStub{}}
}
