// Package apperror defines the classified error value used across the
// checkout orchestrator. Every failure path ends in an *Error carrying a
// Kind, a human-readable message and, for upstream API failures, the
// provider's HTTP status and error code.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for propagation and outward status mapping.
type Kind int

const (
	// KindValidation means the caller's input is malformed. Never retried,
	// never logged as a system fault.
	KindValidation Kind = iota
	// KindProviderConfig means a required provider credential is absent.
	KindProviderConfig
	// KindProviderNetwork means the processor could not be reached at the
	// transport level (DNS, connection, timeout).
	KindProviderNetwork
	// KindProviderAPI means the processor rejected or could not fulfill the
	// request.
	KindProviderAPI
	// KindUnexpected covers anything that does not match the above, e.g. a
	// malformed response shape.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindProviderConfig:
		return "provider_config_error"
	case KindProviderNetwork:
		return "provider_network_error"
	case KindProviderAPI:
		return "provider_api_error"
	default:
		return "unexpected_error"
	}
}

// Error is the classified failure value.
type Error struct {
	Kind         Kind
	Message      string
	HTTPStatus   int    // HTTP status returned by the provider, if any
	ProviderCode string // Provider-specific error code, if any
	cause        error
}

func (e *Error) Error() string {
	if e.HTTPStatus != 0 && e.ProviderCode != "" {
		return fmt.Sprintf("%s: %s (status %d, code %s)", e.Kind, e.Message, e.HTTPStatus, e.ProviderCode)
	}
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.HTTPStatus)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewValidation reports malformed caller input.
func NewValidation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewProviderConfig reports a deployment misconfiguration, e.g. a missing
// provider secret.
func NewProviderConfig(format string, args ...interface{}) *Error {
	return &Error{Kind: KindProviderConfig, Message: fmt.Sprintf(format, args...)}
}

// NewProviderNetwork wraps a transport-level failure reaching a processor.
func NewProviderNetwork(message string, cause error) *Error {
	return &Error{Kind: KindProviderNetwork, Message: message, cause: cause}
}

// NewProviderAPI reports that a processor rejected or could not fulfill the
// request. status is the provider's HTTP status, code its error code;
// either may be zero/empty.
func NewProviderAPI(message string, status int, code string) *Error {
	return &Error{Kind: KindProviderAPI, Message: message, HTTPStatus: status, ProviderCode: code}
}

// NewUnexpected wraps a failure that matches no other classification.
func NewUnexpected(message string, cause error) *Error {
	return &Error{Kind: KindUnexpected, Message: message, cause: cause}
}

// KindOf extracts the classification from err. Errors that are not an
// *Error are treated as unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// ResponseStatus maps err to the HTTP status exposed to the caller:
// validation failures are a 400-class outcome, configuration and unexpected
// failures a 500-class outcome, and confirmed upstream failures a 502-class
// outcome.
func ResponseStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindProviderNetwork, KindProviderAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
