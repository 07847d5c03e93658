package checkout

import (
	"math"
	"strings"

	"github.com/yourorg/checkout-orchestrator/internal/apperror"
)

const maxDescriptionLen = 200

// Normalize validates a raw request and converts the amount to the
// currency's minor unit. Rules run in order; the first failure wins and is
// returned as a validation error. Normalize performs no network activity.
func Normalize(req Request) (NormalizedRequest, error) {
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
		return NormalizedRequest{}, apperror.NewValidation("amount must be a positive number")
	}

	currency := Currency(req.Currency)
	if currency != CurrencyUSD && currency != CurrencyCRC {
		return NormalizedRequest{}, apperror.NewValidation("currency must be USD or CRC")
	}

	paymentType := PaymentType(req.PaymentType)
	if paymentType != PaymentOneTime && paymentType != PaymentRecurring {
		return NormalizedRequest{}, apperror.NewValidation("type must be one_time or recurring")
	}

	var interval Interval
	if paymentType == PaymentRecurring {
		interval = Interval(req.Interval)
		if interval != IntervalMonth && interval != IntervalYear {
			return NormalizedRequest{}, apperror.NewValidation("interval must be month or year for recurring payments")
		}
	}

	if err := validateURL("success_url", req.SuccessURL); err != nil {
		return NormalizedRequest{}, err
	}
	if err := validateURL("cancel_url", req.CancelURL); err != nil {
		return NormalizedRequest{}, err
	}

	description := strings.TrimSpace(req.Description)
	if len(description) > maxDescriptionLen {
		return NormalizedRequest{}, apperror.NewValidation("description must be at most %d characters", maxDescriptionLen)
	}

	// Guards against representable-but-degenerate inputs such as 1e-9,
	// which is positive yet rounds to zero minor units.
	amountMinor := int64(math.Round(req.Amount * 100))
	if amountMinor <= 0 {
		return NormalizedRequest{}, apperror.NewValidation("amount must be a positive number")
	}

	return NormalizedRequest{
		AmountMinor: amountMinor,
		Currency:    currency,
		PaymentType: paymentType,
		Interval:    interval,
		Description: description,
		SuccessURL:  req.SuccessURL,
		CancelURL:   req.CancelURL,
	}, nil
}

func validateURL(field, value string) error {
	if value == "" {
		return apperror.NewValidation("%s is required", field)
	}
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return apperror.NewValidation("%s must be an absolute http(s) URL", field)
	}
	return nil
}

// ParseProvider resolves a provider identifier against the closed set of
// known providers. Unknown tags are a validation error, not a fallthrough.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderOnvo:
		return ProviderOnvo, nil
	case ProviderStripe:
		return ProviderStripe, nil
	default:
		return "", apperror.NewValidation("unknown provider: %q", s)
	}
}
