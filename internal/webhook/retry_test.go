package webhook

import (
	"fmt"
	"testing"
	"time"
)

func TestBackoffDelay(t *testing.T) {
	config := &RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
	}

	tests := []struct {
		name    string
		attempt int
		min     time.Duration
		max     time.Duration
	}{
		{"no delay before first attempt", 0, 0, 0},
		{"first retry", 1, 90 * time.Millisecond, 110 * time.Millisecond},
		{"second retry", 2, 180 * time.Millisecond, 220 * time.Millisecond},
		{"third retry", 3, 360 * time.Millisecond, 440 * time.Millisecond},
		{"capped at max delay", 10, 4500 * time.Millisecond, 5500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delay := backoffDelay(tt.attempt, config)
			if tt.min == 0 && tt.max == 0 {
				if delay != 0 {
					t.Errorf("expected zero delay for attempt %d, got %v", tt.attempt, delay)
				}
				return
			}
			if delay < tt.min || delay > tt.max {
				t.Errorf("expected delay in [%v, %v] for attempt %d, got %v",
					tt.min, tt.max, tt.attempt, delay)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{200, false},
		{204, false},
		{400, false},
		{401, false},
		{404, false},
		{408, true},
		{429, true},
		{500, true},
		{501, false},
		{502, true},
		{503, true},
		{504, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.code), func(t *testing.T) {
			if got := retryable(tt.code); got != tt.want {
				t.Errorf("retryable(%d) = %v; want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxRetries != 3 {
		t.Errorf("expected MaxRetries 3, got %d", config.MaxRetries)
	}
	if config.InitialDelay != 1*time.Second {
		t.Errorf("expected InitialDelay 1s, got %v", config.InitialDelay)
	}
	if config.MaxDelay != 30*time.Second {
		t.Errorf("expected MaxDelay 30s, got %v", config.MaxDelay)
	}
	if config.Multiplier != 2.0 {
		t.Errorf("expected Multiplier 2.0, got %f", config.Multiplier)
	}
}
