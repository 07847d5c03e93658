// Package orchestrator drives a payment-link request end to end: it runs
// the validator, applies guard rules, selects the provider adapter and the
// operation, and maps every outcome into either a PaymentLinkResult or a
// classified error suitable for direct exposure to the caller.
//
// No branching in here depends on currency, and no provider step counts
// leak out of the adapters: a third provider is a new adapter variant, not
// a new branch.
package orchestrator

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yourorg/checkout-orchestrator/internal/adapter"
	"github.com/yourorg/checkout-orchestrator/internal/apperror"
	"github.com/yourorg/checkout-orchestrator/internal/checkout"
	"github.com/yourorg/checkout-orchestrator/internal/policy"
	"github.com/yourorg/checkout-orchestrator/internal/reporting"
)

// Orchestrator holds the closed adapter registry and the request-level
// collaborators. It is safe for concurrent use: every request is
// independent and no state outlives a single GenerateLink call.
type Orchestrator struct {
	adapters map[checkout.Provider]adapter.ProviderAdapter
	enforcer *policy.Enforcer
	recorder *reporting.Recorder // may be nil; recording is then skipped
}

// New creates an Orchestrator.
func New(adapters map[checkout.Provider]adapter.ProviderAdapter, enforcer *policy.Enforcer, recorder *reporting.Recorder) *Orchestrator {
	if len(adapters) == 0 {
		panic("adapter registry cannot be empty")
	}
	if enforcer == nil {
		panic("policy enforcer cannot be nil")
	}
	return &Orchestrator{
		adapters: adapters,
		enforcer: enforcer,
		recorder: recorder,
	}
}

// GenerateLink processes one raw payment-link request. Validation failures
// short-circuit before any network call; adapter errors propagate
// unchanged.
func (o *Orchestrator) GenerateLink(ctx context.Context, raw checkout.Request) (checkout.PaymentLinkResult, error) {
	tracer := otel.Tracer("orchestrator")
	ctx, span := tracer.Start(ctx, "Orchestrator.GenerateLink")
	defer span.End()

	requestID := uuid.NewString()
	start := time.Now()

	result, normalized, err := o.generate(ctx, raw)

	providerLabel := providerLabel(raw.Provider)
	typeLabel := paymentTypeLabel(raw.PaymentType)
	span.SetAttributes(
		attribute.String("checkout.request_id", requestID),
		attribute.String("checkout.provider", providerLabel),
		attribute.String("checkout.payment_type", typeLabel),
	)

	outcome := "success"
	if err != nil {
		outcome = apperror.KindOf(err).String()
	}
	linkRequestsTotal.WithLabelValues(providerLabel, typeLabel, outcome).Inc()
	linkDurationSeconds.WithLabelValues(providerLabel).Observe(time.Since(start).Seconds())

	o.record(requestID, providerLabel, typeLabel, normalized, err)

	if err != nil {
		// Validation failures are the caller's fault, not a system fault.
		if apperror.KindOf(err) != apperror.KindValidation {
			log.Printf("orchestrator: request %s failed: %v", requestID, err)
		}
		return checkout.PaymentLinkResult{}, err
	}

	log.Printf("orchestrator: request %s produced link via %s", requestID, providerLabel)
	return result, nil
}

func (o *Orchestrator) generate(ctx context.Context, raw checkout.Request) (checkout.PaymentLinkResult, checkout.NormalizedRequest, error) {
	normalized, err := checkout.Normalize(raw)
	if err != nil {
		return checkout.PaymentLinkResult{}, checkout.NormalizedRequest{}, err
	}

	provider, err := checkout.ParseProvider(raw.Provider)
	if err != nil {
		return checkout.PaymentLinkResult{}, normalized, err
	}

	if err := o.enforcer.Check(normalized, provider); err != nil {
		return checkout.PaymentLinkResult{}, normalized, err
	}

	providerAdapter, ok := o.adapters[provider]
	if !ok {
		return checkout.PaymentLinkResult{}, normalized,
			apperror.NewProviderConfig("no adapter registered for provider %q", provider)
	}

	var result checkout.PaymentLinkResult
	switch normalized.PaymentType {
	case checkout.PaymentOneTime:
		result, err = providerAdapter.CreateOneTimePaymentLink(ctx, normalized)
	case checkout.PaymentRecurring:
		result, err = providerAdapter.CreateSubscriptionLink(ctx, normalized)
	default:
		// Unreachable after Normalize; kept so a future enum value cannot
		// fall through silently.
		err = apperror.NewUnexpected("unhandled payment type "+string(normalized.PaymentType), nil)
	}
	if err != nil {
		return checkout.PaymentLinkResult{}, normalized, err
	}
	return result, normalized, nil
}

func (o *Orchestrator) record(requestID, provider, paymentType string, normalized checkout.NormalizedRequest, err error) {
	if o.recorder == nil {
		return
	}
	entry := reporting.Entry{
		Timestamp:   time.Now().UTC(),
		RequestID:   requestID,
		Provider:    provider,
		PaymentType: paymentType,
		Status:      reporting.StatusSuccess,
		AmountMinor: normalized.AmountMinor,
		Currency:    string(normalized.Currency),
	}
	if err != nil {
		entry.Status = reporting.StatusFailure
		entry.ErrorKind = apperror.KindOf(err).String()
		entry.ErrorMessage = err.Error()
	}
	o.recorder.Append(entry)
}

// providerLabel bounds the metric label to the closed provider set plus
// "unknown" so arbitrary caller input cannot explode label cardinality.
func providerLabel(raw string) string {
	if _, err := checkout.ParseProvider(raw); err != nil {
		return "unknown"
	}
	return raw
}

func paymentTypeLabel(raw string) string {
	switch checkout.PaymentType(raw) {
	case checkout.PaymentOneTime, checkout.PaymentRecurring:
		return raw
	default:
		return "unknown"
	}
}
