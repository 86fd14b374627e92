package test

import (
	"context"
	"sync"

	"github.com/lithoprint/printdesk/internal/adapter/stripe"
)

// TransformerStub simulates the image transform collaborator.
type TransformerStub struct {
	GrayscaleFn func([]byte, string) (string, error)
	AdjustFn    func(string, float64, float64) (string, error)

	mu        sync.Mutex
	Processed []string
}

// GrayscaleToProcessed records the filename or delegates to the override.
func (s *TransformerStub) GrayscaleToProcessed(data []byte, filename string) (string, error) {
	if s.GrayscaleFn != nil {
		return s.GrayscaleFn(data, filename)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Processed = append(s.Processed, filename)
	return "processed/" + filename, nil
}

// Adjust delegates to the override or echoes a finalized path.
func (s *TransformerStub) Adjust(filename string, brightness, contrast float64) (string, error) {
	if s.AdjustFn != nil {
		return s.AdjustFn(filename, brightness, contrast)
	}
	return "finalized/" + filename, nil
}

// PublisherStub records print-bed publications.
type PublisherStub struct {
	PublishFn func(context.Context, string, string) error

	mu        sync.Mutex
	Published []string
}

// Publish records the remote key or delegates to the override.
func (s *PublisherStub) Publish(ctx context.Context, localPath, remoteKey string) error {
	if s.PublishFn != nil {
		return s.PublishFn(ctx, localPath, remoteKey)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = append(s.Published, remoteKey)
	return nil
}

// ChargeClientStub simulates the payment gateway.
type ChargeClientStub struct {
	ChargeFn func(context.Context, stripe.ChargeRequest) (*stripe.ChargeResult, error)

	Requests []stripe.ChargeRequest
}

// Charge records the request and delegates or returns a canned success.
func (s *ChargeClientStub) Charge(ctx context.Context, req stripe.ChargeRequest) (*stripe.ChargeResult, error) {
	s.Requests = append(s.Requests, req)
	if s.ChargeFn != nil {
		return s.ChargeFn(ctx, req)
	}
	return &stripe.ChargeResult{ChargeID: "ch_stub", CardLast4: "4242"}, nil
}
