package di

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/lithoprint/printdesk/internal/adapter/imagetx"
	"github.com/lithoprint/printdesk/internal/adapter/printbed"
	"github.com/lithoprint/printdesk/internal/adapter/stripe"
	"github.com/lithoprint/printdesk/internal/app"
	"github.com/lithoprint/printdesk/internal/bundler"
	"github.com/lithoprint/printdesk/internal/config"
	"github.com/lithoprint/printdesk/internal/logger"
	"github.com/lithoprint/printdesk/internal/notifier"
	"github.com/lithoprint/printdesk/internal/pkg/auth"
	"github.com/lithoprint/printdesk/internal/server/http/handlers"
	"github.com/lithoprint/printdesk/internal/server/http/router"
	"github.com/lithoprint/printdesk/internal/storage/postgres"
	"github.com/lithoprint/printdesk/internal/usecase"
	"github.com/lithoprint/printdesk/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		stripe.Module,
		imagetx.Module,
		printbed.Module,
		notifier.Module,
		fx.Provide(newBundler),
		fx.Provide(newImagePipeline),
		fx.Provide(func(n *notifier.Notifier) usecase.Broadcaster { return n }),
		usecase.Module,
		fx.Provide(func(f *app.PrintFacade) handlers.PrintFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

func newBundler(cfg *config.Config) *bundler.Bundler {
	return bundler.New(bundler.Config{
		LightboxID:  cfg.ItemLightbox,
		Single4x4ID: cfg.ItemSingle4x4,
		Double4x4ID: cfg.ItemDouble4x4,
		Single4x6ID: cfg.ItemSingle4x6,
		Single6x4ID: cfg.ItemSingle6x4,
	})
}

func newImagePipeline(cfg *config.Config, log *slog.Logger) *worker.ImagePipeline {
	return worker.NewImagePipeline(cfg.ImageWorkers, log)
}
