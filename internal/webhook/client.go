// Package webhook delivers run results to an HTTP endpoint with
// exponential-backoff retries. Delivery is best effort: callers treat a
// failed notification as a log line, never as a failed run.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Client posts JSON payloads to a configured endpoint.
type Client struct {
	httpClient  *http.Client
	config      *Config
	retryConfig *RetryConfig
	log         logrus.FieldLogger
}

// NewClient builds a client. A nil retryConfig selects the default
// policy; a nil logger discards delivery chatter.
func NewClient(config *Config, retryConfig *RetryConfig, log logrus.FieldLogger) *Client {
	if config.Method == "" {
		config.Method = "POST"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if retryConfig == nil {
		retryConfig = DefaultRetryConfig()
	}
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second, // per attempt; Config.Timeout bounds the whole delivery
		},
		config:      config,
		retryConfig: retryConfig,
		log:         log,
	}
}

// Send marshals the payload and delivers it, retrying retryable
// failures until the attempt budget or overall timeout runs out.
func (c *Client) Send(ctx context.Context, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var lastErr error

	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt, c.retryConfig)
			c.log.WithFields(logrus.Fields{
				"attempt": attempt,
				"max":     c.retryConfig.MaxRetries,
				"delay":   delay,
			}).Debug("webhook retry")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("webhook timeout after %d attempts: %w", attempt, ctx.Err())
			}
		}

		statusCode, err := c.post(ctx, body)

		if err == nil && statusCode >= 200 && statusCode < 300 {
			c.log.WithField("status", statusCode).Debug("webhook delivered")
			return nil
		}

		if err != nil {
			lastErr = fmt.Errorf("attempt %d failed: %w", attempt+1, err)
		} else {
			lastErr = fmt.Errorf("attempt %d failed with status %d", attempt+1, statusCode)
		}

		if statusCode > 0 && !retryable(statusCode) {
			c.log.WithField("status", statusCode).Debug("webhook status not retryable")
			return lastErr
		}
	}

	return fmt.Errorf("webhook failed after %d attempts: %w", c.retryConfig.MaxRetries+1, lastErr)
}

func (c *Client) post(ctx context.Context, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, c.config.Method, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}

	switch c.config.AuthType {
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	case "api-key":
		req.Header.Set("X-API-Key", c.config.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
