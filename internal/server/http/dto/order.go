package dto

import "time"

// OrderSummaryResponse is one dashboard listing row.
type OrderSummaryResponse struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customerName"`
	CreatedAt    time.Time `json:"createdAt"`
	Status       string    `json:"status"`
	Total        *string   `json:"total"`
	BoxIncluded  bool      `json:"boxIncluded"`
	PictureCount int       `json:"pictureCount"`
}

// CustomerResponse is the contact block on the order detail view.
type CustomerResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
}

// OrderItemResponse is one line item on the order detail view.
type OrderItemResponse struct {
	ItemID    int64    `json:"itemID"`
	ItemName  string   `json:"itemName"`
	PhotoSize string   `json:"photoSize"`
	Price     string   `json:"price"`
	Hanger    bool     `json:"hanger"`
	Printed   bool     `json:"printed"`
	Images    []string `json:"imageFile"`
}

// OrderDetailResponse is the full order aggregate.
type OrderDetailResponse struct {
	ID          int64               `json:"id"`
	CreatedAt   time.Time           `json:"createdAt"`
	Status      string              `json:"status"`
	Total       *string             `json:"total"`
	CardLast4   *string             `json:"cardLast4"`
	BoxIncluded bool                `json:"boxIncluded"`
	Customer    *CustomerResponse   `json:"customer"`
	Items       []OrderItemResponse `json:"items"`
}

// UpdateOrderStatusRequest is the POST /api/update-order-status payload.
type UpdateOrderStatusRequest struct {
	OrderID int64  `json:"orderID"`
	Status  string `json:"status"`
}

// UpdateItemStatusRequest is the POST /api/update-item-status payload.
// Unchecking an item always resets it to pending.
type UpdateItemStatusRequest struct {
	OrderID int64  `json:"orderID"`
	ItemID  int64  `json:"itemID"`
	Status  string `json:"status"`
	Checked bool   `json:"checked"`
}

// ResendRequest is the POST /api/resend-stl payload.
type ResendRequest struct {
	OrderID int64 `json:"orderID"`
	ItemID  int64 `json:"itemID"`
}
