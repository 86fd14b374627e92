package repository

import (
	"context"

	"github.com/lithoprint/printdesk/internal/domain/model"
)

// CustomerRepository describes persistence operations with customers.
type CustomerRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	// Upsert creates the customer keyed by email or updates the contact
	// fields of the existing record, returning its id.
	Upsert(ctx context.Context, customer model.Customer) (int64, error)
}
