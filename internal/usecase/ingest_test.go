package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lithoprint/printdesk/internal/bundler"
	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/worker"
)

func testBundler() *bundler.Bundler {
	return bundler.New(bundler.Config{
		LightboxID:  5,
		Single4x4ID: 6,
		Double4x4ID: 7,
		Single4x6ID: 8,
		Single6x4ID: 9,
	})
}

func testCatalog() *stubCatalogRepo {
	return &stubCatalogRepo{
		getItemTypeFn: func(_ context.Context, id int64) (*model.ItemType, error) {
			return &model.ItemType{ID: id, Price: decimal.RequireFromString("12.00")}, nil
		},
	}
}

func newTestIngest(orders *stubOrderRepo, transformer *stubTransformer, publisher *stubPublisher) *IngestUseCase {
	ledger := NewLedgerUseCase(orders, testCatalog(), 1)
	pipeline := worker.NewImagePipeline(1, testLogger())
	return NewIngestUseCase(testBundler(), ledger, transformer, publisher, pipeline, testLogger())
}

func TestIngestIndividualMixedUpload(t *testing.T) {
	orders := &stubOrderRepo{
		createFn: func(_ context.Context, customerID int64, boxIncluded bool) (int64, error) {
			if boxIncluded {
				t.Error("individual package must not include a box")
			}
			return 10, nil
		},
	}
	transformer := &stubTransformer{}
	publisher := &stubPublisher{}
	u := newTestIngest(orders, transformer, publisher)

	orderID, err := u.Ingest(context.Background(), IngestInput{
		Package: bundler.PackageIndividual,
		Images: []IngestImage{
			{AspectRatio: model.AspectRatio4x4, Data: []byte("a")},
			{AspectRatio: model.AspectRatio4x6, Data: []byte("b")},
			{AspectRatio: model.AspectRatio4x4, Hangers: true, Data: []byte("c")},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != 10 {
		t.Errorf("order id = %d, want 10", orderID)
	}

	// The interleaved 4x4s pair into a double despite the 4x6 between them.
	if len(orders.lineItems) != 2 {
		t.Fatalf("line items = %d, want 2", len(orders.lineItems))
	}
	if orders.lineItems[0].itemTypeID != 8 {
		t.Errorf("first item type = %d, want single 4x6", orders.lineItems[0].itemTypeID)
	}
	if orders.lineItems[1].itemTypeID != 7 {
		t.Errorf("second item type = %d, want double 4x4", orders.lineItems[1].itemTypeID)
	}
	if !orders.lineItems[1].hasHangers {
		t.Error("double 4x4 group should inherit hangers from its second image")
	}

	if got := orders.images[1]; len(got) != 1 || got[0] != "order_10_item_1_image_1.png" {
		t.Errorf("item 1 images = %v", got)
	}
	if got := orders.images[2]; len(got) != 2 {
		t.Errorf("item 2 images = %v, want 2 files", got)
	}

	wantPublished := []string{
		"order_10/order_10_item_1_image_1.png",
		"order_10/order_10_item_2_image_1.png",
		"order_10/order_10_item_2_image_2.png",
	}
	sort.Strings(publisher.published)
	if len(publisher.published) != len(wantPublished) {
		t.Fatalf("published = %v", publisher.published)
	}
	for i, key := range wantPublished {
		if publisher.published[i] != key {
			t.Errorf("published[%d] = %s, want %s", i, publisher.published[i], key)
		}
	}
}

func TestIngestLightboxIncludesBox(t *testing.T) {
	var gotBox bool
	orders := &stubOrderRepo{
		createFn: func(_ context.Context, _ int64, boxIncluded bool) (int64, error) {
			gotBox = boxIncluded
			return 11, nil
		},
	}
	u := newTestIngest(orders, &stubTransformer{}, &stubPublisher{})

	_, err := u.Ingest(context.Background(), IngestInput{
		Package: bundler.PackageLightbox,
		Images: []IngestImage{
			{AspectRatio: model.AspectRatio4x4, Data: []byte("a")},
			{AspectRatio: model.AspectRatio6x4, Data: []byte("b")},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotBox {
		t.Error("lightbox order must include the box")
	}
	if len(orders.lineItems) != 1 || orders.lineItems[0].itemTypeID != 5 {
		t.Errorf("line items = %+v, want one lightbox bundle", orders.lineItems)
	}
}

func TestIngestEmptyUpload(t *testing.T) {
	created := false
	orders := &stubOrderRepo{
		createFn: func(context.Context, int64, bool) (int64, error) {
			created = true
			return 12, nil
		},
	}
	u := newTestIngest(orders, &stubTransformer{}, &stubPublisher{})

	_, err := u.Ingest(context.Background(), IngestInput{Package: bundler.PackageIndividual})
	if !errors.Is(err, domainErrors.ErrEmptyUpload) {
		t.Fatalf("error = %v, want ErrEmptyUpload", err)
	}
	if created {
		t.Error("no order should be created for an empty upload")
	}
}

func TestIngestUnsupportedAspectRatio(t *testing.T) {
	u := newTestIngest(&stubOrderRepo{}, &stubTransformer{}, &stubPublisher{})

	_, err := u.Ingest(context.Background(), IngestInput{
		Package: bundler.PackageIndividual,
		Images:  []IngestImage{{AspectRatio: model.AspectRatio("16x9"), Data: []byte("a")}},
	})
	if !errors.Is(err, domainErrors.ErrUnsupportedAspectRatio) {
		t.Fatalf("error = %v, want ErrUnsupportedAspectRatio", err)
	}
}

func TestIngestLineItemFailureAbortsBeforeImages(t *testing.T) {
	persistErr := errors.New("insert failed")
	orders := &stubOrderRepo{
		createFn: func(context.Context, int64, bool) (int64, error) { return 13, nil },
		addLineItemFn: func(context.Context, int64, int64, decimal.Decimal, bool) (int64, error) {
			return 0, persistErr
		},
	}
	transformer := &stubTransformer{}
	u := newTestIngest(orders, transformer, &stubPublisher{})

	_, err := u.Ingest(context.Background(), IngestInput{
		Package: bundler.PackageIndividual,
		Images:  []IngestImage{{AspectRatio: model.AspectRatio4x6, Data: []byte("a")}},
	})
	if !errors.Is(err, persistErr) {
		t.Fatalf("error = %v, want wrapped insert failure", err)
	}
	if len(transformer.transformed) != 0 {
		t.Errorf("no image work expected after line-item failure, got %v", transformer.transformed)
	}
}

func TestIngestTransformFailure(t *testing.T) {
	decodeErr := errors.New("decode image: bad data")
	transformer := &stubTransformer{
		grayscaleFn: func([]byte, string) (string, error) { return "", decodeErr },
	}
	orders := &stubOrderRepo{
		createFn: func(context.Context, int64, bool) (int64, error) { return 14, nil },
	}
	publisher := &stubPublisher{}
	u := newTestIngest(orders, transformer, publisher)

	_, err := u.Ingest(context.Background(), IngestInput{
		Package: bundler.PackageIndividual,
		Images:  []IngestImage{{AspectRatio: model.AspectRatio4x6, Data: []byte("a")}},
	})
	if !errors.Is(err, decodeErr) {
		t.Fatalf("error = %v, want transform failure", err)
	}
	if len(publisher.published) != 0 {
		t.Errorf("nothing should publish after a failed transform, got %v", publisher.published)
	}
}
