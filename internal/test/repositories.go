package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/domain/repository"
)

// OrderRepositoryStub allows tests to customize order persistence.
type OrderRepositoryStub struct {
	CreateFn           func(context.Context, int64, bool) (int64, error)
	AddLineItemFn      func(context.Context, int64, int64, decimal.Decimal, bool) (int64, error)
	CreateWithItemsFn  func(context.Context, int64, bool, []repository.NewLineItem) (int64, []int64, error)
	AddImageFn         func(context.Context, int64, string) error
	GetWithItemsFn     func(context.Context, int64) (*model.Order, error)
	ListFn             func(context.Context, repository.OrderFilter) ([]model.OrderSummary, error)
	SetStatusFn        func(context.Context, int64, model.OrderStatus) error
	SetItemStatusFn    func(context.Context, int64, int64, model.ItemStatus) error
	SubtotalFn         func(context.Context, int64) (decimal.Decimal, error)
	CompleteCheckoutFn func(context.Context, int64, repository.CheckoutUpdate) error

	mu     sync.Mutex
	Images map[int64][]string
}

// Create delegates to the override or returns a fixed id.
func (s *OrderRepositoryStub) Create(ctx context.Context, customerID int64, boxIncluded bool) (int64, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, customerID, boxIncluded)
	}
	return 1, nil
}

// AddLineItem delegates to the override or returns a fixed id.
func (s *OrderRepositoryStub) AddLineItem(ctx context.Context, orderID, itemTypeID int64, price decimal.Decimal, hasHangers bool) (int64, error) {
	if s.AddLineItemFn != nil {
		return s.AddLineItemFn(ctx, orderID, itemTypeID, price, hasHangers)
	}
	return 1, nil
}

// CreateWithItems chains the Create and AddLineItem behaviors so tests
// can hook either one, unless overridden directly.
func (s *OrderRepositoryStub) CreateWithItems(ctx context.Context, customerID int64, boxIncluded bool, items []repository.NewLineItem) (int64, []int64, error) {
	if s.CreateWithItemsFn != nil {
		return s.CreateWithItemsFn(ctx, customerID, boxIncluded, items)
	}
	orderID, err := s.Create(ctx, customerID, boxIncluded)
	if err != nil {
		return 0, nil, err
	}
	itemIDs := make([]int64, 0, len(items))
	for i, item := range items {
		id, err := s.AddLineItem(ctx, orderID, item.ItemTypeID, item.Price, item.HasHangers)
		if err != nil {
			return 0, nil, err
		}
		if s.AddLineItemFn == nil {
			id = int64(i + 1)
		}
		itemIDs = append(itemIDs, id)
	}
	return orderID, itemIDs, nil
}

// AddLineItemImage records the image or delegates to the override.
func (s *OrderRepositoryStub) AddLineItemImage(ctx context.Context, lineItemID int64, filepath string) error {
	if s.AddImageFn != nil {
		return s.AddImageFn(ctx, lineItemID, filepath)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Images == nil {
		s.Images = make(map[int64][]string)
	}
	s.Images[lineItemID] = append(s.Images[lineItemID], filepath)
	return nil
}

// GetWithItems delegates to the override, nil otherwise.
func (s *OrderRepositoryStub) GetWithItems(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.GetWithItemsFn != nil {
		return s.GetWithItemsFn(ctx, orderID)
	}
	return nil, nil
}

// List delegates to the override or returns an empty listing.
func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.OrderSummary, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return []model.OrderSummary{}, nil
}

// SetStatus delegates to the override.
func (s *OrderRepositoryStub) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, orderID, status)
	}
	return nil
}

// SetItemStatus delegates to the override.
func (s *OrderRepositoryStub) SetItemStatus(ctx context.Context, orderID, itemID int64, status model.ItemStatus) error {
	if s.SetItemStatusFn != nil {
		return s.SetItemStatusFn(ctx, orderID, itemID, status)
	}
	return nil
}

// Subtotal delegates to the override or returns zero.
func (s *OrderRepositoryStub) Subtotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	if s.SubtotalFn != nil {
		return s.SubtotalFn(ctx, orderID)
	}
	return decimal.Zero, nil
}

// CompleteCheckout delegates to the override.
func (s *OrderRepositoryStub) CompleteCheckout(ctx context.Context, orderID int64, update repository.CheckoutUpdate) error {
	if s.CompleteCheckoutFn != nil {
		return s.CompleteCheckoutFn(ctx, orderID, update)
	}
	return nil
}

// CustomerRepositoryStub stores customers in-memory for tests.
type CustomerRepositoryStub struct {
	UpsertFn func(context.Context, model.Customer) (int64, error)

	Customers map[string]model.Customer
	Next      int64
}

// Upsert records the customer keyed by email.
func (s *CustomerRepositoryStub) Upsert(ctx context.Context, customer model.Customer) (int64, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, customer)
	}
	if s.Customers == nil {
		s.Customers = make(map[string]model.Customer)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	s.Customers[customer.Email] = customer
	id := s.Next
	s.Next++
	return id, nil
}

// GetByEmail fetches a stored customer or reports not found.
func (s *CustomerRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	if customer, ok := s.Customers[email]; ok {
		return &customer, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID is unused by the stub's consumers and reports not found.
func (s *CustomerRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return nil, domainErrors.ErrNotFound
}

// CatalogRepositoryStub serves a fixed item-type table.
type CatalogRepositoryStub struct {
	Types map[int64]model.ItemType
}

// GetItemType returns the configured entry or ErrItemTypeNotFound.
func (s *CatalogRepositoryStub) GetItemType(ctx context.Context, id int64) (*model.ItemType, error) {
	if itemType, ok := s.Types[id]; ok {
		return &itemType, nil
	}
	return nil, domainErrors.ErrItemTypeNotFound
}
