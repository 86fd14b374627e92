package notifier

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/domain/repository"
)

// Module wires the machine registry and the notifier.
var Module = fx.Options(
	fx.Provide(NewRegistry),
	fx.Provide(newNotifier),
)

type notifierParams struct {
	fx.In

	Registry *Registry
	Orders   repository.OrderRepository
	Catalog  repository.CatalogRepository
	Logger   *slog.Logger
}

type repoItemSource struct {
	orders repository.OrderRepository
}

func (s repoItemSource) OrderWithItems(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.orders.GetWithItems(ctx, orderID)
}

func newNotifier(p notifierParams) *Notifier {
	return New(p.Registry, repoItemSource{orders: p.Orders}, p.Catalog, p.Logger)
}
