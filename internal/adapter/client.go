package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/yourorg/checkout-orchestrator/internal/apperror"
)

// Client performs authenticated JSON calls against one provider's API base
// URL and classifies every failure. All adapter steps go through Post.
type Client struct {
	httpClient *http.Client
	provider   string
	baseURL    string
	secretKey  string
}

// NewClient creates a Client for one provider. A nil httpClient falls back
// to http.DefaultClient; whatever timeout that client carries is the only
// timeout enforced per call.
func NewClient(httpClient *http.Client, provider, baseURL, secretKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		provider:   provider,
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
	}
}

// Post serializes payload, POSTs it to path under the provider's base URL
// with bearer authentication, and deserializes the response into out (which
// may be nil). Failures are returned as classified errors: a missing
// credential before any network attempt, transport failures as network
// errors, non-2xx responses as provider API errors carrying the HTTP status
// and any provider code, and unparsable 2xx bodies as malformed responses.
func (c *Client) Post(ctx context.Context, path string, payload, out interface{}) error {
	if strings.TrimSpace(c.secretKey) == "" {
		return apperror.NewProviderConfig("%s: missing secret key", c.provider)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return apperror.NewUnexpected(fmt.Sprintf("%s: failed to serialize payload for %s", c.provider, path), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperror.NewUnexpected(fmt.Sprintf("%s: failed to build request for %s", c.provider, path), err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.NewProviderNetwork(fmt.Sprintf("%s: request to %s failed: %v", c.provider, path, err), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.NewProviderNetwork(fmt.Sprintf("%s: reading response from %s failed: %v", c.provider, path, err), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Diagnostic log for upstream rejections. The payload carries no
		// secrets; the bearer header is never logged.
		log.Printf("adapter: %s POST %s status=%d payload=%s response=%s",
			c.provider, path, resp.StatusCode, string(body), string(respBody))
		return parseAPIError(c.provider, path, resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return apperror.NewProviderAPI(
				fmt.Sprintf("%s: malformed response from %s", c.provider, path),
				resp.StatusCode, "")
		}
	}
	return nil
}

// parseAPIError extracts a message and provider code from an error body,
// tolerating the shapes the two processors emit: a top-level message that
// is a string or an array of strings, a top-level error that is a string or
// an object with message/code, and a bare code field. An unparsable body
// falls back to the raw text or the HTTP reason phrase.
func parseAPIError(provider, path string, status int, body []byte) *apperror.Error {
	message := ""
	code := ""

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if raw, ok := envelope["error"]; ok {
			var nested struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			}
			if err := json.Unmarshal(raw, &nested); err == nil && nested.Message != "" {
				message = nested.Message
				code = nested.Code
			} else {
				message = flattenJSONString(raw)
			}
		}
		if message == "" {
			if raw, ok := envelope["message"]; ok {
				message = flattenJSONString(raw)
			}
		}
		if code == "" {
			if raw, ok := envelope["code"]; ok {
				code = flattenJSONString(raw)
			}
		}
	}

	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = http.StatusText(status)
	}

	return apperror.NewProviderAPI(fmt.Sprintf("%s: %s: %s", provider, path, message), status, code)
}

// flattenJSONString renders a raw JSON value as a plain string: quoted
// strings are unwrapped, string arrays joined with "; ", anything else kept
// as its JSON text.
func flattenJSONString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return strings.Trim(string(raw), `"`)
}
