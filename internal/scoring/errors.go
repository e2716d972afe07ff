package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is wrapped by every StatusError.
	ErrUnexpectedStatus = errors.New("scoring: unexpected status")

	// ErrMalformedResponse marks a 2xx body that could not be decoded or did
	// not satisfy the result schema.
	ErrMalformedResponse = errors.New("scoring: malformed response")

	// ErrInvalidPayload is returned before any request when the payload does
	// not carry exactly one answer per item.
	ErrInvalidPayload = errors.New("scoring: invalid payload")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scoring: %s returned status %d", e.Path, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
