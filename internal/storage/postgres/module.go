package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/lithoprint/printdesk/internal/config"
	"github.com/lithoprint/printdesk/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(func(s *Storage) repository.Factory { return s }),
	fx.Provide(
		func(f repository.Factory) repository.CustomerRepository { return f.Customers() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.CatalogRepository { return f.Catalog() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return storage.HealthCheck(ctx)
		},
		OnStop: func(ctx context.Context) error {
			storage.Close()
			storage.logger.Info("database connection closed")
			return nil
		},
	})
}
