// Package stripe talks to the Stripe charge API. Only the narrow charge
// operation the checkout coordinator needs is exposed.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
)

// ChargeRequest describes one payment capture.
type ChargeRequest struct {
	AmountMinor int64
	Currency    string
	Description string
	SourceToken string
}

// ChargeResult is the successful outcome of a charge.
type ChargeResult struct {
	ChargeID  string
	CardLast4 string
}

// DeclinedError reports a card decline. It unwraps to ErrPaymentDeclined so
// callers can branch on the sentinel.
type DeclinedError struct {
	Code    string
	Message string
}

func (e DeclinedError) Error() string {
	return fmt.Sprintf("payment declined (%s): %s", e.Code, e.Message)
}

func (e DeclinedError) Unwrap() error {
	return domainErrors.ErrPaymentDeclined
}

// Client exposes the charge operation.
type Client interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// HTTPClient implements Client against the Stripe REST API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a charge client with a bounded request timeout; a
// hung payment call must surface as an error, not stall checkout forever.
func NewHTTPClient(baseURL, secretKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse stripe url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("stripe url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		secretKey: secretKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type chargeResponse struct {
	ID                   string `json:"id"`
	PaymentMethodDetails struct {
		Card struct {
			Last4 string `json:"last4"`
		} `json:"card"`
	} `json:"payment_method_details"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Charge captures a payment and returns the transaction reference plus the
// card fingerprint (last four digits).
func (c *HTTPClient) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	endpoint := *c.baseURL
	endpoint.Path = "/v1/charges"

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountMinor, 10))
	form.Set("currency", req.Currency)
	form.Set("description", req.Description)
	form.Set("source", req.SourceToken)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK {
		var data chargeResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("decode charge response: %w", err)
		}
		return &ChargeResult{ChargeID: data.ID, CardLast4: data.PaymentMethodDetails.Card.Last4}, nil
	}

	var failure errorResponse
	if err := json.Unmarshal(body, &failure); err == nil && failure.Error.Type == "card_error" {
		return nil, DeclinedError{Code: failure.Error.Code, Message: failure.Error.Message}
	}

	c.logger.Error("stripe charge failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
	return nil, fmt.Errorf("payment error: %s", resp.Status)
}
