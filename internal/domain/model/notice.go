package model

// NoticeItem is the denormalized line-item snapshot sent to fulfillment
// machines. Built on demand from ledger state, sent once, discarded.
type NoticeItem struct {
	ItemID    int64    `json:"itemID"`
	Price     string   `json:"price"`
	PhotoSize string   `json:"photoSize"`
	Hanger    bool     `json:"hanger"`
	Images    []string `json:"imageFile"`
	Printed   bool     `json:"printed"`
}

// FulfillmentNotice is the transient broadcast payload.
type FulfillmentNotice struct {
	Event   string       `json:"event"`
	OrderID int64        `json:"orderID"`
	Items   []NoticeItem `json:"items"`
}

// Broadcast event kinds.
const (
	NoticeEventGenerate = "generateSTL"
	NoticeEventResend   = "resendSTL"
)
