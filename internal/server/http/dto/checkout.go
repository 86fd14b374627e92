package dto

// CompleteOrderRequest is the POST /complete-order payload. Monetary
// amounts are never accepted from the client; totals are recomputed
// server-side.
type CompleteOrderRequest struct {
	OrderID      int64  `json:"orderID"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	StripeToken  string `json:"stripeToken"`
}

// CompleteOrderResponse reports the charge outcome and authoritative
// totals.
type CompleteOrderResponse struct {
	OrderID  int64  `json:"orderID"`
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
	ChargeID string `json:"chargeID"`
}
