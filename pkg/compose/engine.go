package compose

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/adsmedia/adsmedia-go/pkg/adsmedia"
)

// EmailSender submits the finished draft. *adsmedia.Client satisfies this;
// tests inject fakes.
type EmailSender interface {
	SendEmail(ctx context.Context, msg adsmedia.EmailMessage) (*adsmedia.SendResult, error)
}

// EventKind discriminates engine events handed back to the front-end.
type EventKind string

const (
	// EventPrompt asks the user for the next field; Prompt carries the text.
	EventPrompt EventKind = "prompt"
	// EventCompleted reports a successful send; MessageID carries the id.
	EventCompleted EventKind = "completed"
	// EventFailed reports a failed send; Err carries the classified error.
	EventFailed EventKind = "failed"
	// EventCancelled reports the dialogue was abandoned.
	EventCancelled EventKind = "cancelled"
)

// Event is what the front-end renders after each turn.
type Event struct {
	Kind      EventKind
	Prompt    string
	MessageID string
	Err       error
}

// Prompts issued when entering each collecting state.
const (
	PromptRecipient = "Enter recipient email address:"
	PromptSubject   = "Enter subject line:"
	PromptBody      = "Enter message (HTML supported):"
)

// Engine drives per-session compose dialogues. Sessions live only in memory
// for the process lifetime. Inputs for the same key are applied in arrival
// order via a per-key lock; different keys are fully independent.
type Engine struct {
	sender EmailSender
	cfg    Config
	log    *slog.Logger
	now    func() time.Time

	store *sessionStore

	mu    sync.Mutex
	locks map[string]*keyLock

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

// Option configures an Engine during construction.
type Option func(*Engine)

// WithLogger supplies an external slog.Logger. If nil, logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock overrides the time source, used by tests to drive expiry.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates a conversation engine backed by the given sender.
func New(sender EmailSender, cfg Config, opts ...Option) (*Engine, error) {
	if sender == nil {
		return nil, fmt.Errorf("%w: sender is required", ErrInvalidConfig)
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultConfig().IdleTimeout
	}

	e := &Engine{
		sender: sender,
		cfg:    cfg,
		now:    time.Now,
		store:  newSessionStore(),
		locks:  make(map[string]*keyLock),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.New(discardHandler{})
	}

	e.startSweeper()

	return e, nil
}

// MustNew creates an engine that panics on invalid configuration.
func MustNew(sender EmailSender, cfg Config, opts ...Option) *Engine {
	e, err := New(sender, cfg, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Close stops the background sweeper. In-memory sessions are discarded.
func (e *Engine) Close() {
	e.stopOnce.Do(func() {
		if e.ticker != nil {
			e.ticker.Stop()
		}
		close(e.done)
	})
}

// startSweeper launches the background loop that expires abandoned sessions.
// A non-positive interval disables it; idle sessions are still expired lazily
// on their next touch.
func (e *Engine) startSweeper() {
	if e.cfg.CleanupInterval <= 0 {
		return
	}
	e.ticker = time.NewTicker(e.cfg.CleanupInterval)
	go func() {
		for {
			select {
			case <-e.done:
				return
			case <-e.ticker.C:
				e.sweepIdle()
			}
		}
	}()
}

// sweepIdle expires every session idle past the timeout. Each session is
// re-checked and mutated only under its key lock, so the sweeper serializes
// with Input and Cancel the same way any other caller does.
func (e *Engine) sweepIdle() {
	for _, key := range e.store.keys() {
		unlock := e.lockKey(key)
		sess, ok := e.store.get(key)
		if ok && sess.idle(e.cfg.IdleTimeout, e.now()) {
			sess.State = StateCancelled
			e.store.delete(key)
			e.log.Info("compose session expired", slog.String("session_key", key), slog.String("session_id", sess.ID))
		}
		unlock()
	}
}

// Start begins a compose dialogue for the key. An active session for the
// same key is replaced; its collected fields are discarded.
func (e *Engine) Start(ctx context.Context, key string) Event {
	unlock := e.lockKey(key)
	defer unlock()

	sess := newSession(key, e.now())
	e.store.put(sess)

	e.log.DebugContext(ctx, "compose session started", slog.String("session_key", key), slog.String("session_id", sess.ID))
	return Event{Kind: EventPrompt, Prompt: PromptRecipient}
}

// Input feeds one user turn into the key's session. The returned event is
// the next thing to show the user; the error is non-nil only when there is
// nothing to continue (no session, or the session expired while idle).
// A send failure is a valid outcome, reported as an EventFailed event.
func (e *Engine) Input(ctx context.Context, key, text string) (Event, error) {
	unlock := e.lockKey(key)
	defer unlock()

	sess, ok := e.store.get(key)
	if !ok {
		return Event{}, ErrNoActiveSession
	}

	now := e.now()
	if sess.idle(e.cfg.IdleTimeout, now) {
		sess.State = StateCancelled
		e.store.delete(key)
		e.log.DebugContext(ctx, "compose session expired on touch", slog.String("session_key", key))
		return Event{}, ErrSessionExpired
	}
	sess.touch(now)

	switch sess.State {
	case StateAwaitingRecipient:
		sess.Draft.To = text
		sess.State = StateAwaitingSubject
		return Event{Kind: EventPrompt, Prompt: PromptSubject}, nil

	case StateAwaitingSubject:
		sess.Draft.Subject = text
		sess.State = StateAwaitingBody
		return Event{Kind: EventPrompt, Prompt: PromptBody}, nil

	case StateAwaitingBody:
		sess.Draft.HTML = text
		sess.State = StateSubmitting
		return e.submit(ctx, sess), nil

	default:
		// Submitting is never observable here: submit completes under the
		// key lock before the next input is applied.
		return Event{}, ErrNoActiveSession
	}
}

// Cancel abandons the key's session, discarding collected fields.
func (e *Engine) Cancel(ctx context.Context, key string) (Event, error) {
	unlock := e.lockKey(key)
	defer unlock()

	sess, ok := e.store.get(key)
	if !ok {
		return Event{}, ErrNoActiveSession
	}

	sess.State = StateCancelled
	sess.Draft = adsmedia.EmailMessage{}
	e.store.delete(key)

	e.log.DebugContext(ctx, "compose session cancelled", slog.String("session_key", key), slog.String("session_id", sess.ID))
	return Event{Kind: EventCancelled}, nil
}

// Active reports whether a session is currently in progress for the key.
func (e *Engine) Active(key string) bool {
	sess, ok := e.store.get(key)
	return ok && !sess.State.Terminal()
}

// submit sends the accumulated draft. The session reaches a terminal state
// either way and is removed from the table; the session value keeps the
// draft and outcome for the caller's report.
func (e *Engine) submit(ctx context.Context, sess *Session) Event {
	result, err := e.sender.SendEmail(ctx, sess.Draft)
	if err != nil {
		sess.State = StateFailed
		sess.Err = err
		e.store.delete(sess.Key)
		e.log.WarnContext(ctx, "compose submit failed",
			slog.String("session_key", sess.Key),
			slog.String("to", sess.Draft.To),
			slog.Any("error", err),
		)
		return Event{Kind: EventFailed, Err: err}
	}

	sess.State = StateCompleted
	sess.Result = result
	e.store.delete(sess.Key)
	e.log.InfoContext(ctx, "compose submit succeeded",
		slog.String("session_key", sess.Key),
		slog.String("message_id", result.MessageID),
	)
	return Event{Kind: EventCompleted, MessageID: result.MessageID}
}

// keyLock is a refcounted per-key mutex. The count tracks holders and
// waiters so the entry can be dropped from the table once the last one
// releases, keeping the table bounded by in-flight keys.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// lockKey serializes processing per session key. The lock is held across the
// submit network call so the outcome is observed before the next input for
// the same key is applied; other keys are unaffected.
func (e *Engine) lockKey(key string) func() {
	e.mu.Lock()
	l, ok := e.locks[key]
	if !ok {
		l = &keyLock{}
		e.locks[key] = l
	}
	l.refs++
	e.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		e.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(e.locks, key)
		}
		e.mu.Unlock()
	}
}

// discardHandler is a slog.Handler that drops all records.
type discardHandler struct{}

func (discardHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (d discardHandler) WithAttrs(_ []slog.Attr) slog.Handler        { return d }
func (d discardHandler) WithGroup(_ string) slog.Handler             { return d }
