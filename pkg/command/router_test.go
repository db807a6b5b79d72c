package command_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsmedia/adsmedia-go/pkg/adsmedia"
	"github.com/adsmedia/adsmedia-go/pkg/command"
	"github.com/adsmedia/adsmedia-go/pkg/compose"
)

// newRouter wires a router against a stub API handler.
func newRouter(t *testing.T, handler http.HandlerFunc) *command.Router {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := adsmedia.New(adsmedia.Config{APIKey: "test-api-key", BaseURL: srv.URL})
	require.NoError(t, err)

	engine, err := compose.New(client, compose.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	return command.NewRouter(client, engine)
}

func TestRouter_UnknownOperation(t *testing.T) {
	t.Parallel()

	router := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := router.OneShot(context.Background(), "explode", nil)
	assert.ErrorIs(t, err, command.ErrUnknownOperation)
}

func TestRouter_Operations(t *testing.T) {
	t.Parallel()

	router := newRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	ops := router.Operations()
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name())
		assert.NotEmpty(t, op.Description())
	}
	assert.Equal(t, []string{"check", "ping", "send", "status", "usage"}, names)
}

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	router := newRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	err := router.Register(&fakeOperation{name: "custom"})
	require.NoError(t, err)

	err = router.Register(&fakeOperation{name: "custom"})
	assert.ErrorIs(t, err, command.ErrDuplicateOperation)

	err = router.Register(&fakeOperation{name: "send"})
	assert.ErrorIs(t, err, command.ErrDuplicateOperation)
}

type fakeOperation struct {
	name string
}

func (f *fakeOperation) Name() string            { return f.name }
func (f *fakeOperation) Description() string     { return "fake" }
func (f *fakeOperation) Schema() []command.Param { return nil }
func (f *fakeOperation) Invoke(_ context.Context, _ map[string]string) (string, error) {
	return "ok", nil
}

func TestRouter_Converse(t *testing.T) {
	t.Parallel()

	router := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send", r.URL.Path)
		_, _ = w.Write([]byte(`{"success": true, "data": {"message_id": "m9"}}`))
	})

	ctx := context.Background()
	ev := router.StartCompose(ctx, "chat:1")
	assert.Equal(t, compose.EventPrompt, ev.Kind)

	ev, err := router.Converse(ctx, "chat:1", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, compose.PromptSubject, ev.Prompt)

	ev, err = router.Converse(ctx, "chat:1", "Hi")
	require.NoError(t, err)
	ev, err = router.Converse(ctx, "chat:1", "<p>hello</p>")
	require.NoError(t, err)
	assert.Equal(t, compose.EventCompleted, ev.Kind)
	assert.Equal(t, "m9", ev.MessageID)
}

func TestRouter_CancelCompose(t *testing.T) {
	t.Parallel()

	router := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("cancelled dialogue must not reach the API")
	})

	ctx := context.Background()
	router.StartCompose(ctx, "chat:2")

	ev, err := router.CancelCompose(ctx, "chat:2")
	require.NoError(t, err)
	assert.Equal(t, compose.EventCancelled, ev.Kind)

	_, err = router.Converse(ctx, "chat:2", "a@b.com")
	assert.ErrorIs(t, err, compose.ErrNoActiveSession)
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "service error surfaces message verbatim",
			err:  &adsmedia.APIError{Message: "daily quota exceeded"},
			want: "The email service rejected the request: daily quota exceeded",
		},
		{
			name: "transport",
			err:  adsmedia.ErrTransport,
			want: "Could not reach the email service. Please try again.",
		},
		{
			name: "no credential",
			err:  adsmedia.ErrNoCredential,
			want: "API key is not configured. Set ADSMEDIA_API_KEY and try again.",
		},
		{
			name: "protocol",
			err:  adsmedia.ErrProtocol,
			want: "The email service returned an unexpected response. Please try again later.",
		},
		{
			name: "session expired",
			err:  compose.ErrSessionExpired,
			want: "Your compose session expired. Start again to compose a new email.",
		},
		{
			name: "no active session",
			err:  compose.ErrNoActiveSession,
			want: "No compose session in progress. Start one to compose an email.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, command.FormatError(tt.err))
		})
	}
}
