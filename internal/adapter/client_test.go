package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/checkout-orchestrator/internal/apperror"
)

func TestPost_Success(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment-links", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(1000), payload["amount"])

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example/abc"})
	}))
	defer server.Close()

	client := NewClient(server.Client(), "onvo", server.URL, "sk_test_key")

	var out struct {
		URL string `json:"url"`
	}
	err := client.Post(context.Background(), "/payment-links", map[string]int64{"amount": 1000}, &out)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", out.URL)
	assert.Equal(t, 1, calls)
}

func TestPost_MissingCredentialBeforeNetwork(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := NewClient(server.Client(), "onvo", server.URL, "")
	err := client.Post(context.Background(), "/payment-links", map[string]string{}, nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindProviderConfig, apperror.KindOf(err))
	assert.Equal(t, 0, calls, "no network attempt may happen without a credential")
}

func TestPost_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from now on

	client := NewClient(nil, "onvo", server.URL, "sk_test_key")
	err := client.Post(context.Background(), "/payment-links", map[string]string{}, nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindProviderNetwork, apperror.KindOf(err))
}

func TestPost_APIErrorShapes(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
	}{
		{
			name:        "message string",
			status:      400,
			body:        `{"message": "amount is invalid"}`,
			wantMessage: "amount is invalid",
		},
		{
			name:        "message array",
			status:      422,
			body:        `{"message": ["amount is invalid", "currency is required"]}`,
			wantMessage: "amount is invalid; currency is required",
		},
		{
			name:        "error object with code",
			status:      402,
			body:        `{"error": {"message": "Your card was declined.", "code": "card_declined"}}`,
			wantMessage: "Your card was declined.",
			wantCode:    "card_declined",
		},
		{
			name:        "error string with code field",
			status:      401,
			body:        `{"error": "unauthorized", "code": "401_key"}`,
			wantMessage: "unauthorized",
			wantCode:    "401_key",
		},
		{
			name:        "unparsable body falls back to raw text",
			status:      500,
			body:        "upstream exploded",
			wantMessage: "upstream exploded",
		},
		{
			name:        "empty body falls back to reason phrase",
			status:      503,
			body:        "",
			wantMessage: "Service Unavailable",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(server.Client(), "stripe", server.URL, "sk_test_key")
			err := client.Post(context.Background(), "/prices", map[string]string{}, nil)
			require.Error(t, err)

			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.KindProviderAPI, appErr.Kind)
			assert.Equal(t, tc.status, appErr.HTTPStatus)
			assert.Contains(t, appErr.Message, tc.wantMessage)
			assert.Equal(t, tc.wantCode, appErr.ProviderCode)
		})
	}
}

func TestPost_MalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "onvo", server.URL, "sk_test_key")

	var out map[string]interface{}
	err := client.Post(context.Background(), "/payment-links", map[string]string{}, &out)
	require.Error(t, err)
	assert.Equal(t, apperror.KindProviderAPI, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "malformed response")
}

func TestPost_SuccessWithoutOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "onvo", server.URL, "sk_test_key")
	assert.NoError(t, client.Post(context.Background(), "/payment-links", map[string]string{}, nil))
}
