package compose

import (
	"time"

	"github.com/google/uuid"

	"github.com/adsmedia/adsmedia-go/pkg/adsmedia"
)

// State identifies where a compose dialogue is in its lifecycle. Each
// non-terminal collecting state accepts exactly one text input and advances.
type State string

const (
	StateAwaitingRecipient State = "awaiting_recipient"
	StateAwaitingSubject   State = "awaiting_subject"
	StateAwaitingBody      State = "awaiting_body"
	StateSubmitting        State = "submitting"
	StateCompleted         State = "completed"
	StateFailed            State = "failed"
	StateCancelled         State = "cancelled"
)

// Terminal reports whether no further input is accepted in this state.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateCancelled:
		return true
	}
	return false
}

// Session is one in-progress compose dialogue, keyed by the initiating
// user/channel. It is owned by the Engine and mutated only under the
// engine's per-key lock.
type Session struct {
	ID             string
	Key            string
	State          State
	Draft          adsmedia.EmailMessage
	CreatedAt      time.Time
	LastActivityAt time.Time

	// Result and Err are populated on entry to a terminal state and kept
	// for the caller's final report.
	Result *adsmedia.SendResult
	Err    error
}

func newSession(key string, now time.Time) *Session {
	return &Session{
		ID:             uuid.New().String(),
		Key:            key,
		State:          StateAwaitingRecipient,
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// idle reports whether the session has gone without input past the threshold.
func (s *Session) idle(timeout time.Duration, now time.Time) bool {
	return timeout > 0 && now.Sub(s.LastActivityAt) > timeout
}

func (s *Session) touch(now time.Time) {
	s.LastActivityAt = now
}
