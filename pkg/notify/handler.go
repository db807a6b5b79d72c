package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/adsmedia/adsmedia-go/pkg/adsmedia"
)

// maxPayloadBytes bounds inbound webhook bodies.
const maxPayloadBytes = 1 << 20

// DefaultFromName is the sender display name used when neither the payload
// nor the configuration names one.
const DefaultFromName = "Webhook Notification"

// EmailSender delivers the rendered notification. *adsmedia.Client
// satisfies this.
type EmailSender interface {
	SendEmail(ctx context.Context, msg adsmedia.EmailMessage) (*adsmedia.SendResult, error)
}

// Config holds webhook relay configuration.
type Config struct {
	// DefaultTo receives notifications whose payload names no recipient.
	DefaultTo string `env:"NOTIFICATION_EMAIL"`

	// Secret enables HMAC verification of inbound payloads when non-empty.
	Secret string `env:"ADSMEDIA_WEBHOOK_SECRET"`

	// FromName is the sender display name on relayed notifications.
	FromName string `env:"NOTIFICATION_FROM_NAME" envDefault:"Webhook Notification"`

	// SignatureMaxAge bounds the replay window for signed payloads.
	SignatureMaxAge time.Duration `env:"ADSMEDIA_WEBHOOK_SIGNATURE_MAX_AGE" envDefault:"5m"`
}

// Handler turns inbound automation webhooks (form builders, commerce hooks,
// signup events) into notification emails. It accepts a JSON payload,
// resolves the event type and recipient, renders the matching template, and
// sends the result through the email client.
type Handler struct {
	registry *Registry
	sender   EmailSender
	cfg      Config
	log      *slog.Logger
}

// HandlerOption configures a Handler during construction.
type HandlerOption func(*Handler)

// WithRegistry replaces the default template registry.
func WithRegistry(r *Registry) HandlerOption {
	return func(h *Handler) {
		if r != nil {
			h.registry = r
		}
	}
}

// WithLogger supplies an external slog.Logger. If nil, logs are discarded.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHandler creates a webhook relay handler.
func NewHandler(sender EmailSender, cfg Config, opts ...HandlerOption) (*Handler, error) {
	if sender == nil {
		return nil, fmt.Errorf("%w: sender is required", ErrInvalidConfig)
	}
	if cfg.SignatureMaxAge <= 0 {
		cfg.SignatureMaxAge = DefaultSignatureMaxAge
	}
	if cfg.FromName == "" {
		cfg.FromName = DefaultFromName
	}

	h := &Handler{
		registry: NewRegistry(),
		sender:   sender,
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = slog.New(discardHandler{})
	}
	return h, nil
}

// payload is the loosely-shaped inbound event body. Every field is optional;
// recipient and event type fall back through aliases the way upstream
// automation tools actually send them.
type payload struct {
	Type      string         `json:"type"`
	Event     string         `json:"event"`
	To        string         `json:"to"`
	Email     string         `json:"email"`
	Recipient string         `json:"recipient"`
	FromName  string         `json:"from_name"`
	Data      map[string]any `json:"data"`
}

// ServeHTTP implements http.Handler. Responses mirror the ADSMedia envelope
// shape so relay consumers parse one format everywhere.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	if h.cfg.Secret != "" {
		err := VerifySignature(h.cfg.Secret, raw,
			r.Header.Get(HeaderSignature), r.Header.Get(HeaderTimestamp), h.cfg.SignatureMaxAge)
		if err != nil {
			h.log.WarnContext(r.Context(), "webhook signature rejected", slog.Any("error", err))
			writeError(w, http.StatusUnauthorized, "invalid signature")
			return
		}
	}

	var body payload
	if err := json.Unmarshal(raw, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	// Generic payloads carry top-level fields instead of a data object.
	data := body.Data
	if data == nil {
		data = map[string]any{}
		_ = json.Unmarshal(raw, &data)
	}

	event := firstNonEmpty(body.Type, body.Event, r.URL.Query().Get("type"), DefaultEvent)
	to := firstNonEmpty(body.To, body.Email, body.Recipient, h.cfg.DefaultTo)
	if to == "" {
		writeError(w, http.StatusBadRequest, "recipient email required")
		return
	}

	msg, err := h.registry.Render(event, data)
	if err != nil {
		h.log.ErrorContext(r.Context(), "webhook template render failed",
			slog.String("event", event), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "template render failed")
		return
	}

	result, err := h.sender.SendEmail(r.Context(), adsmedia.EmailMessage{
		To:       to,
		Subject:  msg.Subject,
		HTML:     msg.HTML,
		FromName: firstNonEmpty(body.FromName, h.cfg.FromName),
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "webhook relay send failed",
			slog.String("event", event), slog.Any("error", err))

		var apiErr *adsmedia.APIError
		if errors.As(err, &apiErr) {
			writeError(w, http.StatusBadGateway, apiErr.Message)
			return
		}
		writeError(w, http.StatusBadGateway, "failed to send notification")
		return
	}

	h.log.InfoContext(r.Context(), "webhook relayed",
		slog.String("event", event), slog.String("message_id", result.MessageID))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"message_id": result.MessageID},
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   map[string]any{"message": message},
	})
}

// discardHandler is a slog.Handler that drops all records.
type discardHandler struct{}

func (discardHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (d discardHandler) WithAttrs(_ []slog.Attr) slog.Handler        { return d }
func (d discardHandler) WithGroup(_ string) slog.Handler             { return d }
