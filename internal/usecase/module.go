package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/lithoprint/printdesk/internal/adapter/imagetx"
	"github.com/lithoprint/printdesk/internal/adapter/printbed"
	"github.com/lithoprint/printdesk/internal/adapter/stripe"
	"github.com/lithoprint/printdesk/internal/bundler"
	"github.com/lithoprint/printdesk/internal/config"
	"github.com/lithoprint/printdesk/internal/domain/repository"
	"github.com/lithoprint/printdesk/internal/pricing"
	"github.com/lithoprint/printdesk/internal/worker"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newLedgerUseCase,
	newIngestUseCase,
	newCheckoutUseCase,
)

func newLedgerUseCase(orders repository.OrderRepository, catalog repository.CatalogRepository, cfg *config.Config) *LedgerUseCase {
	return NewLedgerUseCase(orders, catalog, cfg.DefaultCustomerID)
}

func newIngestUseCase(
	b *bundler.Bundler,
	ledger *LedgerUseCase,
	transformer imagetx.Transformer,
	publisher printbed.Publisher,
	pipeline *worker.ImagePipeline,
	logger *slog.Logger,
) *IngestUseCase {
	return NewIngestUseCase(b, ledger, transformer, publisher, pipeline, logger)
}

func newCheckoutUseCase(
	ledger *LedgerUseCase,
	customers repository.CustomerRepository,
	orders repository.OrderRepository,
	payments stripe.Client,
	broadcaster Broadcaster,
	cfg *config.Config,
	logger *slog.Logger,
) *CheckoutUseCase {
	rates := pricing.Rates{ShippingFlat: cfg.ShippingFlat, TaxRate: cfg.TaxRate}
	return NewCheckoutUseCase(ledger, customers, orders, payments, broadcaster, rates, cfg.Currency, logger)
}
