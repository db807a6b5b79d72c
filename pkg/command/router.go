package command

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/adsmedia/adsmedia-go/pkg/adsmedia"
	"github.com/adsmedia/adsmedia-go/pkg/compose"
)

// Router is the front-end-facing surface of the toolkit: one-shot operations
// by name, and the multi-turn compose dialogue. Each chat platform or agent
// framework maps its native command dispatch onto these two entry points and
// renders the returned text/events its own way.
type Router struct {
	ops    map[string]Operation
	engine *compose.Engine
}

// NewRouter creates a router with the built-in operations registered.
// The compose engine may be nil for front-ends that only expose one-shots.
func NewRouter(client *adsmedia.Client, engine *compose.Engine) *Router {
	r := &Router{
		ops:    make(map[string]Operation),
		engine: engine,
	}
	for _, op := range []Operation{
		&sendOperation{client: client},
		&checkOperation{client: client},
		&pingOperation{client: client},
		&usageOperation{client: client},
		&statusOperation{client: client},
	} {
		r.ops[op.Name()] = op
	}
	return r
}

// Register adds a custom operation. Names must be unique.
func (r *Router) Register(op Operation) error {
	if _, exists := r.ops[op.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOperation, op.Name())
	}
	r.ops[op.Name()] = op
	return nil
}

// Operations lists registered operations sorted by name, for front-ends that
// advertise their capabilities (tool listings, autocomplete).
func (r *Router) Operations() []Operation {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)

	ops := make([]Operation, 0, len(names))
	for _, name := range names {
		ops = append(ops, r.ops[name])
	}
	return ops
}

// OneShot invokes a registered operation by name and returns its plain-text
// result.
func (r *Router) OneShot(ctx context.Context, name string, args map[string]string) (string, error) {
	op, ok := r.ops[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op.Invoke(ctx, args)
}

// StartCompose begins a compose dialogue for the session key.
func (r *Router) StartCompose(ctx context.Context, key string) compose.Event {
	return r.engine.Start(ctx, key)
}

// Converse feeds one user turn into the key's compose dialogue.
func (r *Router) Converse(ctx context.Context, key, text string) (compose.Event, error) {
	return r.engine.Input(ctx, key, text)
}

// CancelCompose abandons the key's compose dialogue.
func (r *Router) CancelCompose(ctx context.Context, key string) (compose.Event, error) {
	return r.engine.Cancel(ctx, key)
}

// FormatError turns any toolkit error into a line of user-facing guidance.
// Front-ends surface classified kinds, never the raw error text, with the
// one exception of the message the service itself reported.
func FormatError(err error) string {
	var apiErr *adsmedia.APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return fmt.Sprintf("The email service rejected the request: %s", apiErr.Message)
	case errors.Is(err, adsmedia.ErrNoCredential):
		return "API key is not configured. Set ADSMEDIA_API_KEY and try again."
	case errors.Is(err, adsmedia.ErrTransport):
		return "Could not reach the email service. Please try again."
	case errors.Is(err, adsmedia.ErrProtocol):
		return "The email service returned an unexpected response. Please try again later."
	case errors.Is(err, adsmedia.ErrInvalidMessage):
		return fmt.Sprintf("Invalid request: %v", err)
	case errors.Is(err, compose.ErrSessionExpired):
		return "Your compose session expired. Start again to compose a new email."
	case errors.Is(err, compose.ErrNoActiveSession):
		return "No compose session in progress. Start one to compose an email."
	case errors.Is(err, ErrMissingArgument), errors.Is(err, ErrUnknownOperation):
		return fmt.Sprintf("Invalid command: %v", err)
	default:
		return "Something went wrong. Please try again."
	}
}
