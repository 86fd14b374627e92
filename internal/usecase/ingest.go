package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/lithoprint/printdesk/internal/adapter/imagetx"
	"github.com/lithoprint/printdesk/internal/adapter/printbed"
	"github.com/lithoprint/printdesk/internal/bundler"
	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/worker"
)

// IngestImage is one uploaded image as received from the storefront.
type IngestImage struct {
	AspectRatio model.AspectRatio
	Hangers     bool
	Data        []byte
}

// IngestInput is a full upload submission.
type IngestInput struct {
	Package bundler.PackageType
	Images  []IngestImage
}

// IngestUseCase turns an upload submission into a persisted order: bundle
// the images into billable groups, persist the order and its line items,
// then transform, publish and record every image.
type IngestUseCase struct {
	bundler     *bundler.Bundler
	ledger      *LedgerUseCase
	transformer imagetx.Transformer
	publisher   printbed.Publisher
	pipeline    *worker.ImagePipeline
	logger      *slog.Logger
}

// NewIngestUseCase constructs IngestUseCase.
func NewIngestUseCase(
	b *bundler.Bundler,
	ledger *LedgerUseCase,
	transformer imagetx.Transformer,
	publisher printbed.Publisher,
	pipeline *worker.ImagePipeline,
	logger *slog.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		bundler:     b,
		ledger:      ledger,
		transformer: transformer,
		publisher:   publisher,
		pipeline:    pipeline,
		logger:      logger,
	}
}

// Ingest processes one upload submission and returns the new order id.
//
// The order and all its line items are written in one transaction before
// any image work starts; a storage failure rolls the submission back so a
// partial order never exists. Image transform/publish/record work then
// runs on the bounded pipeline, and the first image failure fails the
// submission.
func (u *IngestUseCase) Ingest(ctx context.Context, input IngestInput) (int64, error) {
	images := make([]bundler.Image, len(input.Images))
	for i, img := range input.Images {
		images[i] = bundler.Image{AspectRatio: img.AspectRatio, Hangers: img.Hangers, Data: img.Data}
	}

	groups, err := u.bundler.Bundle(input.Package, images)
	if err != nil {
		return 0, err
	}

	specs := make([]LineItemSpec, len(groups))
	for i, group := range groups {
		specs[i] = LineItemSpec{ItemTypeID: group.ItemTypeID, HasHangers: group.HasHangers}
	}
	orderID, itemIDs, err := u.ledger.CreateOrderWithItems(ctx, 0, input.Package == bundler.PackageLightbox, specs)
	if err != nil {
		return 0, fmt.Errorf("persist order: %w", err)
	}

	var jobs []worker.Job
	for i, group := range groups {
		for n, img := range group.Images {
			jobs = append(jobs, u.imageJob(orderID, itemIDs[i], n+1, img.Data))
		}
	}

	if err := u.pipeline.Run(ctx, jobs); err != nil {
		return 0, err
	}

	u.logger.InfoContext(ctx, "order ingested",
		slog.Int64("order_id", orderID),
		slog.String("package", string(input.Package)),
		slog.Int("items", len(groups)),
		slog.Int("images", len(images)),
	)
	return orderID, nil
}

func (u *IngestUseCase) imageJob(orderID, itemID int64, seq int, data []byte) worker.Job {
	filename := fmt.Sprintf("order_%d_item_%d_image_%d.png", orderID, itemID, seq)
	return func(ctx context.Context) error {
		localPath, err := u.transformer.GrayscaleToProcessed(data, filename)
		if err != nil {
			return fmt.Errorf("transform %s: %w", filename, err)
		}
		remoteKey := path.Join(fmt.Sprintf("order_%d", orderID), filename)
		if err := u.publisher.Publish(ctx, localPath, remoteKey); err != nil {
			return fmt.Errorf("publish %s: %w", filename, err)
		}
		if err := u.ledger.AddLineItemImage(ctx, itemID, filename); err != nil {
			return fmt.Errorf("record %s: %w", filename, err)
		}
		return nil
	}
}
