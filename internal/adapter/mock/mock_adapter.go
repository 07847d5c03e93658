// Package mock provides a function-stub implementation of the
// ProviderAdapter interface for tests.
package mock

import (
	"context"

	"github.com/yourorg/checkout-orchestrator/internal/adapter"
	"github.com/yourorg/checkout-orchestrator/internal/checkout"
)

// Adapter is a mock ProviderAdapter. Each operation calls its stub func if
// set and otherwise returns a default successful result. Calls records
// every invocation in order ("one_time" / "subscription").
type Adapter struct {
	ProviderName     string
	OneTimeFunc      func(ctx context.Context, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error)
	SubscriptionFunc func(ctx context.Context, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error)
	Calls            []string
	LastRequest      checkout.NormalizedRequest
}

// NewAdapter creates a mock adapter with the given provider name.
func NewAdapter(name string) *Adapter {
	return &Adapter{ProviderName: name}
}

// CreateOneTimePaymentLink implements adapter.ProviderAdapter.
func (m *Adapter) CreateOneTimePaymentLink(ctx context.Context, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error) {
	m.Calls = append(m.Calls, "one_time")
	m.LastRequest = req
	if m.OneTimeFunc != nil {
		return m.OneTimeFunc(ctx, req)
	}
	return checkout.PaymentLinkResult{URL: "https://pay.example/mock-one-time"}, nil
}

// CreateSubscriptionLink implements adapter.ProviderAdapter.
func (m *Adapter) CreateSubscriptionLink(ctx context.Context, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error) {
	m.Calls = append(m.Calls, "subscription")
	m.LastRequest = req
	if m.SubscriptionFunc != nil {
		return m.SubscriptionFunc(ctx, req)
	}
	return checkout.PaymentLinkResult{URL: "https://pay.example/mock-subscription"}, nil
}

// Name implements adapter.ProviderAdapter.
func (m *Adapter) Name() string {
	return m.ProviderName
}

var _ adapter.ProviderAdapter = (*Adapter)(nil)
