package model

import "time"

// Customer is identified by email; repeat checkouts with the same email
// update the existing record instead of duplicating it.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Address1  string
	Address2  string
	City      string
	State     string
	Zip       string
	CreatedAt time.Time
}
