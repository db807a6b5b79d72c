package notify

import "errors"

var (
	// ErrInvalidSignature indicates the inbound payload failed HMAC
	// verification or the signature headers are missing/malformed.
	ErrInvalidSignature = errors.New("notify.errors.invalid_signature")

	// ErrInvalidTemplate indicates a template failed to parse or render.
	ErrInvalidTemplate = errors.New("notify.errors.invalid_template")

	// ErrInvalidConfig indicates the handler is missing a required collaborator.
	ErrInvalidConfig = errors.New("notify.errors.invalid_config")
)
