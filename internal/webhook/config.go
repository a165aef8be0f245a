package webhook

import "time"

// Config describes the notification endpoint.
type Config struct {
	URL       string
	Method    string            // default POST
	Headers   map[string]string // extra headers, merged after Content-Type
	Timeout   time.Duration     // overall budget across all attempts
	AuthType  string            // none, bearer, api-key
	AuthToken string
}

// RetryConfig controls delivery retries.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig returns the retry policy used when none is given.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}
