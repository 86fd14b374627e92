package repository

import (
	"context"

	"github.com/lithoprint/printdesk/internal/domain/model"
)

// CatalogRepository reads the static item-type catalog.
type CatalogRepository interface {
	// GetItemType returns ErrItemTypeNotFound for unknown ids.
	GetItemType(ctx context.Context, itemTypeID int64) (*model.ItemType, error)
}
