package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsmedia/adsmedia-go/pkg/adsmedia"
	"github.com/adsmedia/adsmedia-go/pkg/notify"
)

// fakeSender records relayed messages and returns a scripted outcome.
type fakeSender struct {
	mu   sync.Mutex
	sent []adsmedia.EmailMessage
	err  error
}

func (f *fakeSender) SendEmail(_ context.Context, msg adsmedia.EmailMessage) (*adsmedia.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return nil, f.err
	}
	return &adsmedia.SendResult{MessageID: "m1"}, nil
}

func (f *fakeSender) last(t *testing.T) adsmedia.EmailMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

func postJSON(t *testing.T, h http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhooks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestNewHandler_RequiresSender(t *testing.T) {
	t.Parallel()

	h, err := notify.NewHandler(nil, notify.Config{})
	assert.Nil(t, h)
	assert.ErrorIs(t, err, notify.ErrInvalidConfig)
}

func TestHandler_RelaysEvent(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	h, err := notify.NewHandler(sender, notify.Config{})
	require.NoError(t, err)

	rec := postJSON(t, h, `{"type": "user_signup", "to": "owner@example.com", "data": {"name": "Alice", "email": "alice@example.com"}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "m1", data["message_id"])

	msg := sender.last(t)
	assert.Equal(t, "owner@example.com", msg.To)
	assert.Equal(t, "Welcome, Alice!", msg.Subject)
	assert.Contains(t, msg.HTML, "alice@example.com")
	assert.Equal(t, "Webhook Notification", msg.FromName)
}

func TestHandler_TopLevelPayload(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	h, err := notify.NewHandler(sender, notify.Config{DefaultTo: "fallback@example.com"})
	require.NoError(t, err)

	// No data object and no explicit recipient: top-level fields feed the
	// template, the configured default receives the email.
	rec := postJSON(t, h, `{"event": "payment_received", "amount": "$10", "id": "tx_1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	msg := sender.last(t)
	assert.Equal(t, "fallback@example.com", msg.To)
	assert.Equal(t, "Payment Received - $10", msg.Subject)
	assert.Contains(t, msg.HTML, "tx_1")
}

func TestHandler_NoRecipient(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	h, err := notify.NewHandler(sender, notify.Config{})
	require.NoError(t, err)

	rec := postJSON(t, h, `{"type": "notification", "message": "hello"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Empty(t, sender.sent)
}

func TestHandler_InvalidJSON(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	h, err := notify.NewHandler(sender, notify.Config{})
	require.NoError(t, err)

	rec := postJSON(t, h, `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	h, err := notify.NewHandler(sender, notify.Config{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/webhooks", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_Signature(t *testing.T) {
	t.Parallel()

	payload := `{"type": "notification", "to": "a@b.com", "message": "hi"}`

	t.Run("valid signature accepted", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{}
		h, err := notify.NewHandler(sender, notify.Config{Secret: "hook-secret"})
		require.NoError(t, err)

		sig, ts := notify.SignPayload("hook-secret", []byte(payload), time.Now())
		rec := postJSON(t, h, payload, map[string]string{
			notify.HeaderSignature: sig,
			notify.HeaderTimestamp: ts,
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing signature rejected", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{}
		h, err := notify.NewHandler(sender, notify.Config{Secret: "hook-secret"})
		require.NoError(t, err)

		rec := postJSON(t, h, payload, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, sender.sent)
	})

	t.Run("tampered body rejected", func(t *testing.T) {
		t.Parallel()

		sender := &fakeSender{}
		h, err := notify.NewHandler(sender, notify.Config{Secret: "hook-secret"})
		require.NoError(t, err)

		sig, ts := notify.SignPayload("hook-secret", []byte(payload), time.Now())
		rec := postJSON(t, h, `{"type": "notification", "to": "evil@b.com"}`, map[string]string{
			notify.HeaderSignature: sig,
			notify.HeaderTimestamp: ts,
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_SendFailure(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{err: &adsmedia.APIError{Message: "recipient suppressed"}}
	h, err := notify.NewHandler(sender, notify.Config{})
	require.NoError(t, err)

	rec := postJSON(t, h, `{"type": "notification", "to": "a@b.com", "message": "hi"}`, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "recipient suppressed", errObj["message"])
}

func TestHandler_CustomRegistry(t *testing.T) {
	t.Parallel()

	registry := notify.NewRegistry()
	require.NoError(t, registry.Register("deploy_finished", "Deploy {{.version}} done", "<p>{{.version}} live</p>"))

	sender := &fakeSender{}
	h, err := notify.NewHandler(sender, notify.Config{}, notify.WithRegistry(registry))
	require.NoError(t, err)

	rec := postJSON(t, h, `{"type": "deploy_finished", "to": "ops@example.com", "data": {"version": "v1.2"}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	msg := sender.last(t)
	assert.Equal(t, "Deploy v1.2 done", msg.Subject)
}
