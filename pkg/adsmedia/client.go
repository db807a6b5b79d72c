package adsmedia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// Client is a typed client for the ADSMedia transactional email API.
// It holds a single credential for its lifetime and is safe for concurrent
// use; calls are independent and stateless.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client during construction.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Useful for custom transports,
// proxies, or testing. The configured request timeout is still applied.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger supplies an external slog.Logger. If nil, logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates an ADSMedia API client. The API key is required; BaseURL and
// Timeout fall back to package defaults when unset.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: APIKey is required", ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.New(noopHandler{})
	}
	return c, nil
}

// MustNew creates a client that panics on invalid config, failing fast
// during initialization rather than allowing a broken service to start.
func MustNew(cfg Config, opts ...Option) *Client {
	c, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// SendEmail delivers a single transactional email and returns the message id
// assigned by the service. The client's default FromName is applied when the
// message doesn't set its own.
func (c *Client) SendEmail(ctx context.Context, msg EmailMessage) (*SendResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if msg.FromName == "" && c.cfg.FromName != "" {
		msg.FromName = c.cfg.FromName
	}

	var result SendResult
	if err := c.do(ctx, http.MethodPost, "/send", nil, msg, &result); err != nil {
		return nil, err
	}
	if result.MessageID == "" {
		return nil, fmt.Errorf("%w: send response missing message_id", ErrProtocol)
	}

	c.log.DebugContext(ctx, "email sent", slog.String("to", msg.To), slog.String("message_id", result.MessageID))
	return &result, nil
}

// SendBatch queues up to 1000 emails as a single asynchronous task.
func (c *Client) SendBatch(ctx context.Context, msg BatchMessage) (*BatchResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if msg.FromName == "" && c.cfg.FromName != "" {
		msg.FromName = c.cfg.FromName
	}

	var result BatchResult
	if err := c.do(ctx, http.MethodPost, "/send/batch", nil, msg, &result); err != nil {
		return nil, err
	}

	c.log.DebugContext(ctx, "batch queued", slog.Int("recipients", len(msg.Recipients)))
	return &result, nil
}

// SendStatus returns the delivery status of a previously sent message.
func (c *Client) SendStatus(ctx context.Context, messageID string) (*SendStatus, error) {
	if messageID == "" {
		return nil, fmt.Errorf("%w: message id is required", ErrInvalidMessage)
	}

	query := url.Values{"message_id": {messageID}}
	var status SendStatus
	if err := c.do(ctx, http.MethodGet, "/send/status", query, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// CheckSuppression reports whether an address is suppressed (bounced,
// unsubscribed, or blocked). Read-only and idempotent.
func (c *Client) CheckSuppression(ctx context.Context, email string) (*SuppressionStatus, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email address is required", ErrInvalidMessage)
	}

	query := url.Values{"email": {email}}
	var status SuppressionStatus
	if err := c.do(ctx, http.MethodGet, "/suppressions/check", query, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Ping verifies connectivity and the credential, returning the account id
// and API version.
func (c *Client) Ping(ctx context.Context) (*PingResult, error) {
	var result PingResult
	if err := c.do(ctx, http.MethodGet, "/ping", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUsage returns account usage counters. Counters the API omits come back
// as zero.
func (c *Client) GetUsage(ctx context.Context) (*UsageStats, error) {
	var stats UsageStats
	if err := c.do(ctx, http.MethodGet, "/account/usage", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do issues a single request and decodes the response envelope into out.
// GET parameters travel as a query string, POST bodies as JSON. Exactly one
// attempt is made; retry policy belongs to the caller.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.cfg.APIKey == "" {
		return ErrNoCredential
	}

	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %v", ErrProtocol, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.Join(ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Join(ErrTransport, err)
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		return err
	}
	data, err := env.result()
	if err != nil {
		return err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: decoding response data: %v", ErrProtocol, err)
		}
	}
	return nil
}

// noopHandler is a slog.Handler that discards all logs.
type noopHandler struct{}

func (n noopHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (n noopHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (n noopHandler) WithAttrs(_ []slog.Attr) slog.Handler          { return n }
func (n noopHandler) WithGroup(_ string) slog.Handler               { return n }
