package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle on the staff dashboard.
type OrderStatus string

const (
	OrderStatusSubmittedPending   OrderStatus = "submitted_pending"
	OrderStatusSubmittedPaid      OrderStatus = "submitted_paid"
	OrderStatusProcessing         OrderStatus = "processing"
	OrderStatusCompletedPending   OrderStatus = "completed_pending"
	OrderStatusCompletedShipped   OrderStatus = "completed_shipped"
	OrderStatusCompletedDelivered OrderStatus = "completed_delivered"
)

// Known reports whether s is one of the dashboard statuses.
func (s OrderStatus) Known() bool {
	switch s {
	case OrderStatusSubmittedPending, OrderStatusSubmittedPaid,
		OrderStatusProcessing, OrderStatusCompletedPending,
		OrderStatusCompletedShipped, OrderStatusCompletedDelivered:
		return true
	}
	return false
}

// Order is the aggregate root of a print order.
type Order struct {
	ID          int64
	CustomerID  int64
	Customer    *Customer
	CreatedAt   time.Time
	Status      OrderStatus
	Total       *decimal.Decimal
	ChargeID    *string
	CardLast4   *string
	BoxIncluded bool
	Items       []LineItem
}

// OrderSummary is the flattened dashboard listing row.
type OrderSummary struct {
	ID           int64
	CustomerName string
	CreatedAt    time.Time
	Status       OrderStatus
	Total        *decimal.Decimal
	BoxIncluded  bool
	PictureCount int
}

// PictureCount is the number of images across all line items.
func (o *Order) PictureCount() int {
	n := 0
	for _, item := range o.Items {
		n += len(item.Images)
	}
	return n
}

// Item finds a line item by id, nil when absent.
func (o *Order) Item(itemID int64) *LineItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}
