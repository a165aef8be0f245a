package runner

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// DefaultTimeout is applied when the caller does not set one explicitly.
// A zero or negative timeout disables the timer entirely.
const DefaultTimeout = 5 * time.Minute

// Status describes how a supervised command finished.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusTimeout Status = "timeout"
	StatusError   Status = "error" // the command never started
)

type Config struct {
	Command string
	Args    []string
	Cwd     string
	Env     map[string]string // overlaid on the inherited environment
	Timeout time.Duration
	Verbose bool
}

// Result is the outcome of one supervised execution. Exactly one Result is
// produced per Execute call; Error is non-empty iff Status is not success.
type Result struct {
	Command       string
	Status        Status
	ExitCode      int
	Stdout        string
	Stderr        string
	Error         string
	ExecutionTime int64 // milliseconds
}

// Success reports whether the command ran to completion with exit code 0.
func (r *Result) Success() bool {
	return r.Status == StatusSuccess
}

// CombinedOutput returns stdout followed by stderr for output parsing.
func (r *Result) CombinedOutput() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	if r.Stdout == "" {
		return r.Stderr
	}
	return r.Stdout + "\n" + r.Stderr
}

// Execute runs the configured command to completion or forced termination.
//
// Tool failures are data, not control flow: every path returns a populated
// Result and no Go error, so callers discover launch failures, non-zero
// exits and timeouts by reading Status and Error. The child's stdin is not
// connected; stdout and stderr are captured into independent buffers. When
// a positive timeout elapses before the child exits, the child's whole
// process group is killed so descendant processes do not outlive it.
func Execute(config *Config) *Result {
	if config.Verbose {
		PrintPreExecution(config)
	}
	result := execute(config)
	if config.Verbose {
		PrintPostExecution(result)
	}
	return result
}

func execute(config *Config) *Result {
	fullCommand := buildFullCommand(config)

	result := &Result{
		Command:  fullCommand,
		ExitCode: -1,
	}

	cmd := exec.Command(config.Command, config.Args...)
	cmd.Stdin = nil

	if config.Cwd != "" {
		if info, err := os.Stat(config.Cwd); err != nil || !info.IsDir() {
			result.Status = StatusError
			result.Error = fmt.Sprintf("invalid working directory: %s", config.Cwd)
			return result
		}
		cmd.Dir = config.Cwd
	}

	if len(config.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), config.Env)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	setProcessGroup(cmd)

	startTime := time.Now()
	if err := cmd.Start(); err != nil {
		result.Status = StatusError
		result.Error = fmt.Sprintf("failed to start command: %v", err)
		return result
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var waitErr error
	timedOut := false

	if config.Timeout > 0 {
		timer := time.NewTimer(config.Timeout)
		select {
		case waitErr = <-done:
			timer.Stop()
		case <-timer.C:
			timedOut = true
			killProcessGroup(cmd)
			// Reap the child so the wait goroutine does not leak. The late
			// wait error is ignored: the timeout already resolved this call.
			<-done
		}
	} else {
		waitErr = <-done
	}

	result.ExecutionTime = time.Since(startTime).Milliseconds()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if timedOut {
		result.Status = StatusTimeout
		result.ExitCode = -1
		result.Error = fmt.Sprintf("command timed out after %s", config.Timeout)
		return result
	}

	result.ExitCode = normalizeExitCode(waitErr)
	if result.ExitCode == 0 {
		result.Status = StatusSuccess
	} else {
		result.Status = StatusFailed
		result.Error = fmt.Sprintf("command exited with non-zero exit code: %d", result.ExitCode)
	}

	return result
}

// normalizeExitCode maps the wait error to a numeric exit code. A child
// terminated by a signal gets the conventional 128+signal code so it never
// collides with the -1 sentinel reserved for launch and timeout failures.
func normalizeExitCode(waitErr error) int {
	if waitErr == nil {
		return 0
	}

	exitErr, ok := waitErr.(*exec.ExitError)
	if !ok {
		return 1
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
		if status.Signaled() {
			return 128 + int(status.Signal())
		}
		return status.ExitStatus()
	}

	return 1
}

func buildFullCommand(config *Config) string {
	if len(config.Args) == 0 {
		return config.Command
	}
	return config.Command + " " + strings.Join(config.Args, " ")
}

// mergeEnv overlays extra variables onto the inherited environment.
// Appending is sufficient: the OS uses the last occurrence of a key.
func mergeEnv(inherited []string, extra map[string]string) []string {
	merged := make([]string, 0, len(inherited)+len(extra))
	merged = append(merged, inherited...)
	for key, value := range extra {
		merged = append(merged, key+"="+value)
	}
	return merged
}
