package model

import "github.com/shopspring/decimal"

// AspectRatio classifies an uploaded image.
type AspectRatio string

const (
	AspectRatio4x4 AspectRatio = "4x4"
	AspectRatio4x6 AspectRatio = "4x6"
	AspectRatio6x4 AspectRatio = "6x4"
)

// ItemStatus describes fulfillment state of a single line item.
type ItemStatus string

const (
	ItemStatusPending ItemStatus = "pending"
	ItemStatusPrinted ItemStatus = "printed"
)

// Known reports whether s is one of the fulfillment statuses.
func (s ItemStatus) Known() bool {
	return s == ItemStatusPending || s == ItemStatusPrinted
}

// ItemType is a catalog entry mapping a billable unit to its price.
type ItemType struct {
	ID          int64
	Name        string
	AspectRatio AspectRatio
	Price       decimal.Decimal
}

// LineItem is one billable unit of an order. Price is snapshotted from the
// catalog at creation time and never re-read.
type LineItem struct {
	ID          int64
	OrderID     int64
	ItemTypeID  int64
	ItemName    string
	AspectRatio AspectRatio
	Price       decimal.Decimal
	HasHangers  bool
	Status      ItemStatus
	Images      []LineItemImage
}

// Printed reports whether the item has been produced.
func (li LineItem) Printed() bool {
	return li.Status == ItemStatusPrinted
}

// LineItemImage is one stored raster belonging to a line item.
type LineItemImage struct {
	ID         int64
	LineItemID int64
	Filepath   string
	Status     ItemStatus
}
