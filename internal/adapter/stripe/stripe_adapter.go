// Package stripe implements the ProviderAdapter for Stripe, the
// dependent-resource provider. Each operation is a strictly sequential
// chain of resource creations, each step consuming the identifier produced
// by the previous one and ending in a checkout session that yields the
// redirect URL.
//
// A step failure aborts the chain immediately and surfaces that step's
// classified error. Resources created by earlier steps are not rolled
// back; they remain orphaned on Stripe's side.
package stripe

import (
	"context"
	"net/http"
	"strings"

	"github.com/yourorg/checkout-orchestrator/internal/adapter"
	"github.com/yourorg/checkout-orchestrator/internal/apperror"
	"github.com/yourorg/checkout-orchestrator/internal/checkout"
	"github.com/yourorg/checkout-orchestrator/internal/config"
)

const (
	defaultBaseURL = "https://api.stripe.com/v1"

	defaultOneTimeLabel      = "One-time payment"
	defaultSubscriptionLabel = "Subscription"
)

// Adapter implements adapter.ProviderAdapter for Stripe.
type Adapter struct {
	client *adapter.Client
}

// NewAdapter creates a Stripe adapter. An empty cfg.BaseURL falls back to
// the production API; tests point it at an httptest server.
func NewAdapter(httpClient *http.Client, cfg config.ProviderConfig) *Adapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		client: adapter.NewClient(httpClient, string(checkout.ProviderStripe), baseURL, cfg.SecretKey),
	}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return string(checkout.ProviderStripe)
}

type resource struct {
	ID string `json:"id"`
}

type session struct {
	URL string `json:"url"`
}

type recurring struct {
	Interval      string `json:"interval"`
	IntervalCount int    `json:"interval_count"`
}

type lineItem struct {
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// CreateOneTimePaymentLink runs the four-step one-time chain:
// Product → Price → PaymentIntent → CheckoutSession.
func (a *Adapter) CreateOneTimePaymentLink(ctx context.Context, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error) {
	productID, err := a.createProduct(ctx, req.Description, defaultOneTimeLabel)
	if err != nil {
		return checkout.PaymentLinkResult{}, err
	}

	priceID, err := a.createPrice(ctx, productID, req, nil)
	if err != nil {
		return checkout.PaymentLinkResult{}, err
	}

	// The payment intent's identifier is not consumed downstream, but the
	// call authorizes capture on Stripe's side and is mandatory.
	if err := a.createPaymentIntent(ctx, req); err != nil {
		return checkout.PaymentLinkResult{}, err
	}

	return a.createCheckoutSession(ctx, "payment", priceID, req)
}

// CreateSubscriptionLink runs the five-step subscription chain:
// Customer → Product → Price → Subscription → CheckoutSession. The
// subscription is created with a deferred-payment policy so payment is
// collected at checkout, not at subscription creation.
func (a *Adapter) CreateSubscriptionLink(ctx context.Context, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error) {
	customerID, err := a.createCustomer(ctx)
	if err != nil {
		return checkout.PaymentLinkResult{}, err
	}

	productID, err := a.createProduct(ctx, req.Description, defaultSubscriptionLabel)
	if err != nil {
		return checkout.PaymentLinkResult{}, err
	}

	priceID, err := a.createPrice(ctx, productID, req, &recurring{
		Interval:      string(req.Interval),
		IntervalCount: 1,
	})
	if err != nil {
		return checkout.PaymentLinkResult{}, err
	}

	if err := a.createSubscription(ctx, customerID, priceID, req); err != nil {
		return checkout.PaymentLinkResult{}, err
	}

	return a.createCheckoutSession(ctx, "subscription", priceID, req)
}

func (a *Adapter) createCustomer(ctx context.Context) (string, error) {
	// A bare customer record; no profile fields are required.
	var res resource
	if err := a.client.Post(ctx, "/customers", struct{}{}, &res); err != nil {
		return "", err
	}
	return requireID("/customers", res)
}

func (a *Adapter) createProduct(ctx context.Context, description, fallback string) (string, error) {
	name := strings.TrimSpace(description)
	if name == "" {
		name = fallback
	}
	payload := struct {
		Name string `json:"name"`
	}{Name: name}

	var res resource
	if err := a.client.Post(ctx, "/products", payload, &res); err != nil {
		return "", err
	}
	return requireID("/products", res)
}

func (a *Adapter) createPrice(ctx context.Context, productID string, req checkout.NormalizedRequest, rec *recurring) (string, error) {
	payload := struct {
		Product    string     `json:"product"`
		UnitAmount int64      `json:"unit_amount"`
		Currency   string     `json:"currency"`
		Recurring  *recurring `json:"recurring,omitempty"`
	}{
		Product:    productID,
		UnitAmount: req.AmountMinor,
		Currency:   strings.ToLower(string(req.Currency)),
		Recurring:  rec,
	}

	var res resource
	if err := a.client.Post(ctx, "/prices", payload, &res); err != nil {
		return "", err
	}
	return requireID("/prices", res)
}

func (a *Adapter) createPaymentIntent(ctx context.Context, req checkout.NormalizedRequest) error {
	payload := struct {
		Amount      int64  `json:"amount"`
		Currency    string `json:"currency"`
		Description string `json:"description,omitempty"`
	}{
		Amount:      req.AmountMinor,
		Currency:    strings.ToLower(string(req.Currency)),
		Description: req.Description,
	}
	return a.client.Post(ctx, "/payment_intents", payload, &resource{})
}

func (a *Adapter) createSubscription(ctx context.Context, customerID, priceID string, req checkout.NormalizedRequest) error {
	payload := struct {
		Customer        string     `json:"customer"`
		Amount          int64      `json:"amount"`
		Items           []lineItem `json:"items"`
		PaymentBehavior string     `json:"payment_behavior"`
	}{
		Customer:        customerID,
		Amount:          req.AmountMinor,
		Items:           []lineItem{{Price: priceID, Quantity: 1}},
		PaymentBehavior: "default_incomplete",
	}

	var res resource
	if err := a.client.Post(ctx, "/subscriptions", payload, &res); err != nil {
		return err
	}
	_, err := requireID("/subscriptions", res)
	return err
}

func (a *Adapter) createCheckoutSession(ctx context.Context, mode, priceID string, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error) {
	payload := struct {
		Mode       string     `json:"mode"`
		LineItems  []lineItem `json:"line_items"`
		SuccessURL string     `json:"success_url"`
		CancelURL  string     `json:"cancel_url"`
	}{
		Mode:       mode,
		LineItems:  []lineItem{{Price: priceID, Quantity: 1}},
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	}

	var res session
	if err := a.client.Post(ctx, "/checkout/sessions", payload, &res); err != nil {
		return checkout.PaymentLinkResult{}, err
	}
	if res.URL == "" {
		return checkout.PaymentLinkResult{}, apperror.NewProviderAPI("stripe: malformed response: missing url", 0, "")
	}
	return checkout.PaymentLinkResult{URL: res.URL}, nil
}

func requireID(path string, res resource) (string, error) {
	if res.ID == "" {
		return "", apperror.NewProviderAPI("stripe: malformed response: missing id from "+path, 0, "")
	}
	return res.ID, nil
}
