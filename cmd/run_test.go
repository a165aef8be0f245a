package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/openflow-dev/wrench/internal/output"
)

func resetRunFlags() {
	// Re-init the shared flag set: pflag only clears argsLenAtDash in
	// Init, not on each Parse, so a '--' seen by an earlier test would
	// otherwise leak into the next one.
	runCmd.Flags().Init("run", pflag.ContinueOnError)
	runCwd = ""
	runEnv = nil
	runVerbose = false
	runTimeoutStr = ""
	runTimeout = 0
	runWebhook = webhookFlags{AuthType: "none", Timeout: "30s", Retries: 3, RetryDelay: "1s"}
	runUpload = uploadFlags{}
}

// execRun runs the run command with the given args and returns the
// JSON result printed on stdout.
func execRun(t *testing.T, args ...string) *output.Result {
	t.Helper()
	resetRunFlags()

	oldStdout := os.Stdout
	defer func() { os.Stdout = oldStdout }()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	root := &cobra.Command{}
	root.AddCommand(runCmd)
	root.SetArgs(append([]string{"run"}, args...))

	execErr := root.Execute()

	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	if execErr != nil {
		t.Fatalf("Command failed: %v", execErr)
	}

	var result output.Result
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse stdout JSON: %v\noutput: %s", err, buf.String())
	}
	return &result
}

func TestRunCommandOutput(t *testing.T) {
	result := execRun(t, "--", "echo", "hello world")

	if result.Status != "success" {
		t.Errorf("Expected status success, got %s", result.Status)
	}
	if result.ExitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", result.ExitCode)
	}
	if result.Stdout != "hello world\n" {
		t.Errorf("Expected stdout %q, got %q", "hello world\n", result.Stdout)
	}
	if result.Tool != "run" {
		t.Errorf("Expected tool run, got %s", result.Tool)
	}
	if result.RunID == "" {
		t.Error("Expected a run ID")
	}
}

func TestRunCommandFailureIsData(t *testing.T) {
	result := execRun(t, "--", "sh", "-c", "exit 3")

	if result.Status != "failed" {
		t.Errorf("Expected status failed, got %s", result.Status)
	}
	if result.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", result.ExitCode)
	}
}

func TestRunCommandEnvAndCwd(t *testing.T) {
	tmpDir := t.TempDir()

	result := execRun(t, "--cwd", tmpDir, "--env", "WRENCH_TEST_VALUE=marker", "--", "sh", "-c", "echo $WRENCH_TEST_VALUE; pwd")

	if result.Status != "success" {
		t.Fatalf("Expected success, got %s (%s)", result.Status, result.Error)
	}
	if !bytes.Contains([]byte(result.Stdout), []byte("marker")) {
		t.Errorf("Expected env value in output, got %q", result.Stdout)
	}
}

func TestRunCommandTimeoutFlag(t *testing.T) {
	result := execRun(t, "--timeout", "100ms", "--", "sleep", "5")

	if result.Status != "timeout" {
		t.Errorf("Expected status timeout, got %s", result.Status)
	}
	if result.Timeout == nil || *result.Timeout != 100 {
		t.Errorf("Expected timeout field 100, got %v", result.Timeout)
	}
}

func TestRunCommandRequiresSeparator(t *testing.T) {
	resetRunFlags()

	root := &cobra.Command{}
	root.AddCommand(runCmd)
	root.SetArgs([]string{"run", "echo", "hello"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Error("Expected error when '--' separator is missing")
	}
}

func TestRunCommandWithWebhook(t *testing.T) {
	var received output.Result
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST method, got %s", r.Method)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("Failed to read body: %v", err)
		}
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("Failed to unmarshal payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	result := execRun(t, "--webhook-url", server.URL, "--webhook-retries", "0", "--", "echo", "notify me")

	if !result.WebhookSent {
		t.Error("Expected webhook_sent to be true")
	}
	if received.Stdout != "notify me\n" {
		t.Errorf("Expected webhook payload stdout %q, got %q", "notify me\n", received.Stdout)
	}
	if received.WebhookSent {
		t.Error("Webhook payload must not claim delivery before it happened")
	}
}

func TestRunCommandWebhookFailureTolerated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	result := execRun(t, "--webhook-url", server.URL, "--webhook-retries", "0", "--", "echo", "still fine")

	if result.WebhookSent {
		t.Error("Expected webhook_sent to be false")
	}
	if result.WebhookError == "" {
		t.Error("Expected webhook_error to be recorded")
	}
	if result.Status != "success" {
		t.Errorf("Run itself should still succeed, got %s", result.Status)
	}
}

func TestParseEnvPairs(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]string
		wantErr bool
	}{
		{"empty", nil, nil, false},
		{"single pair", []string{"KEY=value"}, map[string]string{"KEY": "value"}, false},
		{"value with equals", []string{"KEY=a=b"}, map[string]string{"KEY": "a=b"}, false},
		{"empty value", []string{"KEY="}, map[string]string{"KEY": ""}, false},
		{"missing equals", []string{"KEY"}, nil, true},
		{"empty key", []string{"=value"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEnvPairs(tt.pairs)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d pairs, got %d", len(tt.want), len(got))
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Expected %s=%q, got %q", k, v, got[k])
				}
			}
		})
	}
}
