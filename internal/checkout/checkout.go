// Package checkout holds the domain types for hosted-checkout link
// generation: the raw inbound request, the normalized minor-unit request
// consumed by provider adapters, and the closed enums for currency, payment
// type, billing interval and provider.
package checkout

// Currency is an ISO 4217 code from the supported set. Both supported
// currencies use a 1:100 minor unit.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyCRC Currency = "CRC"
)

// PaymentType selects between a single payment and a recurring subscription.
type PaymentType string

const (
	PaymentOneTime   PaymentType = "one_time"
	PaymentRecurring PaymentType = "recurring"
)

// Interval is the billing period of a subscription.
type Interval string

const (
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"
)

// Provider identifies one of the two supported external processors.
type Provider string

const (
	ProviderOnvo   Provider = "onvo"
	ProviderStripe Provider = "stripe"
)

// Request is the raw payment-link request as received from the web layer.
// All fields are unvalidated strings/numbers; Normalize turns a Request
// into a NormalizedRequest or fails with a validation error.
type Request struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	PaymentType string  `json:"type"`
	Provider    string  `json:"provider"`
	Interval    string  `json:"interval,omitempty"`
	Description string  `json:"description,omitempty"`
	SuccessURL  string  `json:"success_url"`
	CancelURL   string  `json:"cancel_url"`
}

// NormalizedRequest is the validated request every provider call consumes.
// AmountMinor is the amount re-expressed as a positive integer in the
// currency's minor unit (cents/céntimos).
type NormalizedRequest struct {
	AmountMinor int64
	Currency    Currency
	PaymentType PaymentType
	Interval    Interval // set iff PaymentType is recurring
	Description string   // empty means absent
	SuccessURL  string
	CancelURL   string
}

// PaymentLinkResult is the only successful output, regardless of provider
// or payment type.
type PaymentLinkResult struct {
	URL string `json:"url"`
}
