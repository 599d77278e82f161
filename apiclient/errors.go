package apiclient

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-commerce-client/internal/errors"
)

// ErrorKind classifies dispatcher failures so callers can branch
// without string matching.
type ErrorKind int

const (
	// KindNetwork means the HTTP call itself never completed (offline,
	// DNS, connection reset). The server saw nothing, or we never heard
	// its answer.
	KindNetwork ErrorKind = iota + 1

	// KindHTTP means the call completed with a non-success status.
	KindHTTP

	// KindDecode means the body did not parse as JSON when one was
	// expected.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// APIError is the failure the dispatcher raises. Status is only set
// for KindHTTP; Message carries the backend's diagnostic message when
// one could be parsed out of the failure body.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	cause   error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindHTTP:
		if e.Message != "" {
			return fmt.Sprintf("api: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
		}
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	case KindNetwork:
		return fmt.Sprintf("api: network failure: %v", e.cause)
	case KindDecode:
		return fmt.Sprintf("api: malformed response body: %v", e.cause)
	default:
		return fmt.Sprintf("api: %v", e.cause)
	}
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// Is lets callers match on the sentinel errors without caring about
// the APIError type: ErrNetwork for KindNetwork, ErrMalformedBody for
// KindDecode, and ErrAuthExpired for an HTTP 401.
func (e *APIError) Is(target error) bool {
	switch target {
	case errors.ErrNetwork:
		return e.Kind == KindNetwork
	case errors.ErrMalformedBody:
		return e.Kind == KindDecode
	case errors.ErrAuthExpired:
		return e.Kind == KindHTTP && e.Status == http.StatusUnauthorized
	}
	return false
}

func networkError(cause error) *APIError {
	return &APIError{Kind: KindNetwork, cause: cause}
}

func decodeError(cause error) *APIError {
	return &APIError{Kind: KindDecode, cause: cause}
}

func httpError(status int, message string, cause error) *APIError {
	return &APIError{Kind: KindHTTP, Status: status, Message: message, cause: cause}
}
