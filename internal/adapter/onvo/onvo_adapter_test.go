package onvo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/checkout-orchestrator/internal/apperror"
	"github.com/yourorg/checkout-orchestrator/internal/checkout"
	"github.com/yourorg/checkout-orchestrator/internal/config"
)

func oneTimeRequest() checkout.NormalizedRequest {
	return checkout.NormalizedRequest{
		AmountMinor: 1000,
		Currency:    checkout.CurrencyUSD,
		PaymentType: checkout.PaymentOneTime,
		Description: "sticker pack",
		SuccessURL:  "https://shop.example/ok",
		CancelURL:   "https://shop.example/cancel",
	}
}

func newTestAdapter(server *httptest.Server) *Adapter {
	return NewAdapter(server.Client(), config.ProviderConfig{
		SecretKey: "onvo_test_key",
		BaseURL:   server.URL,
	})
}

func TestCreateOneTimePaymentLink(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/payment-links", r.URL.Path)
		assert.Equal(t, "Bearer onvo_test_key", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(1000), payload["amount"])
		assert.Equal(t, "USD", payload["currency"])
		assert.Equal(t, "sticker pack", payload["description"])
		assert.Equal(t, "https://shop.example/ok", payload["successUrl"])
		assert.Equal(t, "https://shop.example/cancel", payload["cancelUrl"])
		_, hasInterval := payload["interval"]
		assert.False(t, hasInterval, "one-time payload must not carry an interval")

		json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example/abc"})
	}))
	defer server.Close()

	result, err := newTestAdapter(server).CreateOneTimePaymentLink(context.Background(), oneTimeRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", result.URL)
	assert.Equal(t, 1, calls, "simple adapter makes exactly one call per operation")
}

func TestCreateSubscriptionLink(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(550), payload["amount"])
		assert.Equal(t, "CRC", payload["currency"])
		assert.Equal(t, "month", payload["interval"])

		json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example/sub"})
	}))
	defer server.Close()

	req := checkout.NormalizedRequest{
		AmountMinor: 550,
		Currency:    checkout.CurrencyCRC,
		PaymentType: checkout.PaymentRecurring,
		Interval:    checkout.IntervalMonth,
		SuccessURL:  "https://shop.example/ok",
		CancelURL:   "https://shop.example/cancel",
	}

	result, err := newTestAdapter(server).CreateSubscriptionLink(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/sub", result.URL)
	assert.Equal(t, 1, calls)
}

func TestCreateOneTimePaymentLink_MissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "pl_123"})
	}))
	defer server.Close()

	_, err := newTestAdapter(server).CreateOneTimePaymentLink(context.Background(), oneTimeRequest())
	require.Error(t, err)
	assert.Equal(t, apperror.KindProviderAPI, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "missing url")
}

func TestCreateOneTimePaymentLink_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"message": []string{"amount too small"}})
	}))
	defer server.Close()

	_, err := newTestAdapter(server).CreateOneTimePaymentLink(context.Background(), oneTimeRequest())
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindProviderAPI, appErr.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus)
	assert.Contains(t, appErr.Message, "amount too small")
}

func TestCreateOneTimePaymentLink_MissingCredential(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	adapter := NewAdapter(server.Client(), config.ProviderConfig{BaseURL: server.URL})
	_, err := adapter.CreateOneTimePaymentLink(context.Background(), oneTimeRequest())
	require.Error(t, err)
	assert.Equal(t, apperror.KindProviderConfig, apperror.KindOf(err))
	assert.Equal(t, 0, calls)
}

func TestDefaultBaseURL(t *testing.T) {
	adapter := NewAdapter(nil, config.ProviderConfig{SecretKey: "k"})
	assert.Equal(t, "onvo", adapter.Name())
}
