package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/checkout-orchestrator/internal/apperror"
	"github.com/yourorg/checkout-orchestrator/internal/checkout"
)

func TestDefaults(t *testing.T) {
	m := NewAdapter("mock-provider")
	assert.Equal(t, "mock-provider", m.Name())

	result, err := m.CreateOneTimePaymentLink(context.Background(), checkout.NormalizedRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, result.URL)

	result, err = m.CreateSubscriptionLink(context.Background(), checkout.NormalizedRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, result.URL)

	assert.Equal(t, []string{"one_time", "subscription"}, m.Calls)
}

func TestStubFuncs(t *testing.T) {
	m := NewAdapter("mock-provider")
	m.OneTimeFunc = func(ctx context.Context, req checkout.NormalizedRequest) (checkout.PaymentLinkResult, error) {
		return checkout.PaymentLinkResult{}, apperror.NewProviderAPI("declined", 402, "card_declined")
	}

	_, err := m.CreateOneTimePaymentLink(context.Background(), checkout.NormalizedRequest{AmountMinor: 100})
	require.Error(t, err)
	assert.Equal(t, apperror.KindProviderAPI, apperror.KindOf(err))
	assert.Equal(t, int64(100), m.LastRequest.AmountMinor)
}
