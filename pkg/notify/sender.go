package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/platinummonkey/contentlint/pkg/observability"
)

// Sender posts lint report events to a fixed set of webhook endpoints
type Sender struct {
	endpoints []string
	secret    string
	client    *http.Client
	policy    *RetryPolicy
	logger    *observability.Logger

	delivered atomic.Int64
	failed    atomic.Int64
}

// SenderOption configures a Sender
type SenderOption func(*Sender)

// WithHTTPClient overrides the HTTP client used for deliveries
func WithHTTPClient(client *http.Client) SenderOption {
	return func(s *Sender) {
		s.client = client
	}
}

// WithRetryConfig overrides the retry behavior
func WithRetryConfig(config RetryConfig) SenderOption {
	return func(s *Sender) {
		s.policy = NewRetryPolicy(config)
	}
}

// NewSender creates a webhook sender. An empty endpoint list produces a
// disabled sender whose Send is a no-op.
func NewSender(endpoints []string, secret string, timeout time.Duration, logger *observability.Logger, opts ...SenderOption) *Sender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}

	s := &Sender{
		endpoints: endpoints,
		secret:    secret,
		client:    &http.Client{Timeout: timeout},
		policy:    NewRetryPolicy(DefaultRetryConfig()),
		logger:    logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Enabled reports whether any endpoints are configured
func (s *Sender) Enabled() bool {
	return len(s.endpoints) > 0
}

// Send delivers an event to every configured endpoint. Each endpoint is
// retried with backoff independently. Failures are logged and counted
// but never returned; webhook trouble must not surface to lint callers.
func (s *Sender) Send(ctx context.Context, event *Event) {
	defer observability.RecoverPanic(s.logger, "webhook delivery")

	if !s.Enabled() {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.WithError(err).Error("failed to marshal webhook event")
		return
	}

	for _, endpoint := range s.endpoints {
		if err := s.deliver(ctx, endpoint, event, payload); err != nil {
			s.failed.Add(1)
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"endpoint":   endpoint,
				"event_id":   event.ID,
				"event_type": string(event.Type),
			}).Error("webhook delivery failed")
			continue
		}
		s.delivered.Add(1)
	}
}

// Stats returns cumulative delivery counters
func (s *Sender) Stats() (delivered, failed int64) {
	return s.delivered.Load(), s.failed.Load()
}

func (s *Sender) deliver(ctx context.Context, endpoint string, event *Event, payload []byte) error {
	var lastErr error

	for attempt := 1; ; attempt++ {
		lastErr = s.post(ctx, endpoint, event, payload)
		if lastErr == nil {
			return nil
		}

		if !s.policy.ShouldRetry(attempt, lastErr) {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.policy.NextRetryDelay(attempt)):
		}
	}
}

func (s *Sender) post(ctx context.Context, endpoint string, event *Event, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Contentlint-Event", string(event.Type))
	req.Header.Set("X-Contentlint-Event-ID", event.ID)
	req.Header.Set("X-Contentlint-Delivery", time.Now().Format(time.RFC3339))
	if s.secret != "" {
		req.Header.Set("X-Contentlint-Signature", Sign(payload, s.secret))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned non-2xx status: %d", resp.StatusCode)
	}

	return nil
}
