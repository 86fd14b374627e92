package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lithoprint/printdesk/internal/adapter/stripe"
	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/domain/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type lineItemRecord struct {
	orderID    int64
	itemTypeID int64
	price      decimal.Decimal
	hasHangers bool
}

type stubOrderRepo struct {
	mu sync.Mutex

	createFn           func(ctx context.Context, customerID int64, boxIncluded bool) (int64, error)
	addLineItemFn      func(ctx context.Context, orderID, itemTypeID int64, price decimal.Decimal, hasHangers bool) (int64, error)
	createWithItemsFn  func(ctx context.Context, customerID int64, boxIncluded bool, items []repository.NewLineItem) (int64, []int64, error)
	getWithItemsFn     func(ctx context.Context, orderID int64) (*model.Order, error)
	listFn             func(ctx context.Context, filter repository.OrderFilter) ([]model.OrderSummary, error)
	setStatusFn        func(ctx context.Context, orderID int64, status model.OrderStatus) error
	setItemStatusFn    func(ctx context.Context, orderID, itemID int64, status model.ItemStatus) error
	subtotalFn         func(ctx context.Context, orderID int64) (decimal.Decimal, error)
	completeCheckoutFn func(ctx context.Context, orderID int64, update repository.CheckoutUpdate) error
	addImageErr        error

	lineItems []lineItemRecord
	images    map[int64][]string
}

func (s *stubOrderRepo) Create(ctx context.Context, customerID int64, boxIncluded bool) (int64, error) {
	return s.createFn(ctx, customerID, boxIncluded)
}

func (s *stubOrderRepo) AddLineItem(ctx context.Context, orderID, itemTypeID int64, price decimal.Decimal, hasHangers bool) (int64, error) {
	if s.addLineItemFn != nil {
		return s.addLineItemFn(ctx, orderID, itemTypeID, price, hasHangers)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lineItems = append(s.lineItems, lineItemRecord{orderID, itemTypeID, price, hasHangers})
	return int64(len(s.lineItems)), nil
}

// CreateWithItems mimics the transactional write by chaining the Create
// and AddLineItem behaviors, so tests hook either one.
func (s *stubOrderRepo) CreateWithItems(ctx context.Context, customerID int64, boxIncluded bool, items []repository.NewLineItem) (int64, []int64, error) {
	if s.createWithItemsFn != nil {
		return s.createWithItemsFn(ctx, customerID, boxIncluded, items)
	}
	orderID, err := s.Create(ctx, customerID, boxIncluded)
	if err != nil {
		return 0, nil, err
	}
	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		id, err := s.AddLineItem(ctx, orderID, item.ItemTypeID, item.Price, item.HasHangers)
		if err != nil {
			return 0, nil, err
		}
		itemIDs = append(itemIDs, id)
	}
	return orderID, itemIDs, nil
}

func (s *stubOrderRepo) AddLineItemImage(_ context.Context, lineItemID int64, filepath string) error {
	if s.addImageErr != nil {
		return s.addImageErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.images == nil {
		s.images = make(map[int64][]string)
	}
	s.images[lineItemID] = append(s.images[lineItemID], filepath)
	return nil
}

func (s *stubOrderRepo) GetWithItems(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.getWithItemsFn(ctx, orderID)
}

func (s *stubOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]model.OrderSummary, error) {
	return s.listFn(ctx, filter)
}

func (s *stubOrderRepo) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return s.setStatusFn(ctx, orderID, status)
}

func (s *stubOrderRepo) SetItemStatus(ctx context.Context, orderID, itemID int64, status model.ItemStatus) error {
	return s.setItemStatusFn(ctx, orderID, itemID, status)
}

func (s *stubOrderRepo) Subtotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	return s.subtotalFn(ctx, orderID)
}

func (s *stubOrderRepo) CompleteCheckout(ctx context.Context, orderID int64, update repository.CheckoutUpdate) error {
	return s.completeCheckoutFn(ctx, orderID, update)
}

type stubCatalogRepo struct {
	getItemTypeFn func(ctx context.Context, id int64) (*model.ItemType, error)
}

func (s *stubCatalogRepo) GetItemType(ctx context.Context, id int64) (*model.ItemType, error) {
	return s.getItemTypeFn(ctx, id)
}

type stubCustomerRepo struct {
	upsertFn   func(ctx context.Context, customer model.Customer) (int64, error)
	getByEmail func(ctx context.Context, email string) (*model.Customer, error)
	getByID    func(ctx context.Context, id int64) (*model.Customer, error)
}

func (s *stubCustomerRepo) Upsert(ctx context.Context, customer model.Customer) (int64, error) {
	return s.upsertFn(ctx, customer)
}

func (s *stubCustomerRepo) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return s.getByEmail(ctx, email)
}

func (s *stubCustomerRepo) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return s.getByID(ctx, id)
}

type stubTransformer struct {
	mu          sync.Mutex
	transformed []string
	grayscaleFn func(data []byte, filename string) (string, error)
	adjustFn    func(filename string, brightness, contrast float64) (string, error)
}

func (s *stubTransformer) GrayscaleToProcessed(data []byte, filename string) (string, error) {
	if s.grayscaleFn != nil {
		return s.grayscaleFn(data, filename)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transformed = append(s.transformed, filename)
	return "processed/" + filename, nil
}

func (s *stubTransformer) Adjust(filename string, brightness, contrast float64) (string, error) {
	return s.adjustFn(filename, brightness, contrast)
}

type stubPublisher struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (s *stubPublisher) Publish(_ context.Context, localPath, remoteKey string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, remoteKey)
	return nil
}

type stubPayments struct {
	chargeFn func(ctx context.Context, req stripe.ChargeRequest) (*stripe.ChargeResult, error)
	requests []stripe.ChargeRequest
}

func (s *stubPayments) Charge(ctx context.Context, req stripe.ChargeRequest) (*stripe.ChargeResult, error) {
	s.requests = append(s.requests, req)
	return s.chargeFn(ctx, req)
}

type stubBroadcaster struct {
	mu    sync.Mutex
	calls []int64
	items [][]model.LineItem
}

func (s *stubBroadcaster) NotifyAll(_ context.Context, orderID int64, items []model.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, orderID)
	s.items = append(s.items, items)
}
