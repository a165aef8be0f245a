// Package output defines the JSON envelope emitted for a supervised tool
// run. It is printed by the CLI and delivered to webhooks.
package output

import "github.com/openflow-dev/wrench/internal/runner"

type Result struct {
	RunID         string `json:"run_id"`
	Tool          string `json:"tool,omitempty"`
	Command       string `json:"command"`
	Status        string `json:"status"`
	ExitCode      int    `json:"exit_code"`
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	Error         string `json:"error,omitempty"`
	ExecutionTime int64  `json:"execution_time"`
	Timeout       *int64 `json:"timeout,omitempty"` // in milliseconds
	Metrics       any    `json:"metrics,omitempty"` // parsed tool output, when available

	// Webhook status (only in local output, not sent to webhook)
	WebhookSent  bool   `json:"webhook_sent,omitempty"`
	WebhookError string `json:"webhook_error,omitempty"`
}

// FromRunner builds the envelope for a runner result.
func FromRunner(runID, tool string, r *runner.Result, timeoutMs int64) *Result {
	result := &Result{
		RunID:         runID,
		Tool:          tool,
		Command:       r.Command,
		Status:        string(r.Status),
		ExitCode:      r.ExitCode,
		Stdout:        r.Stdout,
		Stderr:        r.Stderr,
		Error:         r.Error,
		ExecutionTime: r.ExecutionTime,
	}
	if timeoutMs > 0 {
		result.Timeout = &timeoutMs
	}
	return result
}
