package compose

import "errors"

var (
	// ErrNoActiveSession indicates input arrived for a key with no session
	// in progress. User-facing guidance is to start a new compose dialogue.
	ErrNoActiveSession = errors.New("compose.errors.no_active_session")

	// ErrSessionExpired indicates the session sat idle past the configured
	// threshold. The session is cancelled; the user must start over.
	ErrSessionExpired = errors.New("compose.errors.session_expired")

	// ErrInvalidConfig indicates the engine was constructed without a sender.
	ErrInvalidConfig = errors.New("compose.errors.invalid_config")
)
