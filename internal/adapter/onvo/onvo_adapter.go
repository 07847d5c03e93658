// Package onvo implements the ProviderAdapter for ONVO, the single-call
// provider: each operation is one POST to /payment-links whose response
// carries the redirect URL directly. No intermediate resources exist.
package onvo

import (
	"context"
	"net/http"

	"github.com/yourorg/checkout-orchestrator/internal/adapter"
	"github.com/yourorg/checkout-orchestrator/internal/apperror"
	"github.com/yourorg/checkout-orchestrator/internal/checkout"
	"github.com/yourorg/checkout-orchestrator/internal/config"
)

const defaultBaseURL = "https://api.onvopay.com/v1"

// Adapter implements adapter.ProviderAdapter for ONVO.
type Adapter struct {
	client *adapter.Client
}

// NewAdapter creates an ONVO adapter. An empty cfg.BaseURL falls back to
// the production API; tests point it at an httptest server.
func NewAdapter(httpClient *http.Client, cfg config.ProviderConfig) *Adapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		client: adapter.NewClient(httpClient, string(checkout.ProviderOnvo), baseURL, cfg.SecretKey),
	}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return string(checkout.ProviderOnvo)
}

type linkPayload struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
	Interval    string `json:"interval,omitempty"`
	SuccessURL  string `json:"successUrl"`
	CancelURL   string `json:"cancelUrl"`
}

type linkResponse struct {
	URL string `json:"url"`
}

// CreateOneTimePaymentLink performs the single payment-link call.
func (a *Adapter) CreateOneTimePaymentLink(ctx context.Context, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error) {
	return a.createLink(ctx, linkPayload{
		Amount:      req.AmountMinor,
		Currency:    string(req.Currency),
		Description: req.Description,
		SuccessURL:  req.SuccessURL,
		CancelURL:   req.CancelURL,
	})
}

// CreateSubscriptionLink performs the single payment-link call with the
// billing interval attached.
func (a *Adapter) CreateSubscriptionLink(ctx context.Context, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error) {
	return a.createLink(ctx, linkPayload{
		Amount:      req.AmountMinor,
		Currency:    string(req.Currency),
		Description: req.Description,
		Interval:    string(req.Interval),
		SuccessURL:  req.SuccessURL,
		CancelURL:   req.CancelURL,
	})
}

func (a *Adapter) createLink(ctx context.Context, payload linkPayload) (checkout.PaymentLinkResult, error) {
	var resp linkResponse
	if err := a.client.Post(ctx, "/payment-links", payload, &resp); err != nil {
		return checkout.PaymentLinkResult{}, err
	}
	if resp.URL == "" {
		return checkout.PaymentLinkResult{}, apperror.NewProviderAPI("onvo: malformed response: missing url", 0, "")
	}
	return checkout.PaymentLinkResult{URL: resp.URL}, nil
}
