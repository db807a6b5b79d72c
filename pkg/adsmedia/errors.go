package adsmedia

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig  = errors.New("adsmedia.errors.invalid_config")
	ErrInvalidMessage = errors.New("adsmedia.errors.invalid_message")

	// ErrNoCredential indicates the client has no API key. Recoverable by
	// constructing a client with a credential and retrying.
	ErrNoCredential = errors.New("adsmedia.errors.no_credential")

	// ErrTransport indicates a connection failure or request timeout.
	// The request may be retried by the caller; the client never retries.
	ErrTransport = errors.New("adsmedia.errors.transport")

	// ErrService indicates the API returned a well-formed envelope with
	// success=false. The service message is carried by APIError.
	ErrService = errors.New("adsmedia.errors.service")

	// ErrProtocol indicates the response could not be interpreted as an
	// ADSMedia envelope, or the envelope is missing a required field.
	ErrProtocol = errors.New("adsmedia.errors.protocol")
)

// APIError carries the failure message reported by the service, verbatim.
// It matches ErrService under errors.Is, so callers branch on the sentinel
// and surface Message to the end user.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("adsmedia: api error: %s", e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrService
}
