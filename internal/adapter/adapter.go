// Package adapter defines the interface for payment provider adapters and
// the shared HTTP helper they call the providers' APIs with. Adapters own
// everything provider-specific: endpoint paths, payload construction, the
// number and order of dependent resource calls, and the extraction of the
// redirect URL. The orchestrator only ever sees the two link operations.
package adapter

import (
	"context"

	"github.com/yourorg/checkout-orchestrator/internal/checkout"
)

// ProviderAdapter is the interface implemented by each payment processor
// adapter. Both operations are idempotent in intent but not in effect:
// calling twice with identical input creates two independent sets of
// provider-side resources and two distinct URLs.
type ProviderAdapter interface {
	// CreateOneTimePaymentLink produces a hosted-checkout URL for a single
	// payment.
	CreateOneTimePaymentLink(ctx context.Context, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error)

	// CreateSubscriptionLink produces a hosted-checkout URL for a recurring
	// subscription.
	CreateSubscriptionLink(ctx context.Context, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error)

	// Name returns the provider identifier (e.g. "onvo", "stripe").
	Name() string
}
