// Package gateway exposes the development-tool operations (lint,
// typecheck, test, build, type generation, cargo check) behind a uniform
// response envelope. It is the single boundary where internal failures
// become external failures: nothing escapes Dispatch uncaught.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/openflow-dev/wrench/internal/runner"
)

// Response is the envelope returned for every operation. IsError is true
// exactly when the underlying command did not succeed or dispatch itself
// failed.
type Response struct {
	Content string `json:"content"`
	IsError bool   `json:"is_error"`
}

// Args carries the caller-supplied parameters an operation may consume.
type Args struct {
	Fix    bool   `json:"fix,omitempty"`    // lint: apply automatic fixes
	Filter string `json:"filter,omitempty"` // test: run matching tests only
}

// Commands abstracts the command catalog so tests can substitute canned
// results.
type Commands interface {
	RunScript(name string, extra ...string) *runner.Result
	RunCargo(args ...string) *runner.Result
}

// Notifier delivers a result payload to an external endpoint.
type Notifier interface {
	Send(ctx context.Context, payload interface{}) error
}

// Archiver stores the captured output of a run.
type Archiver interface {
	Archive(ctx context.Context, runID string, result *runner.Result) error
}

type Gateway struct {
	commands Commands
	log      *logrus.Logger
	notifier Notifier
	archiver Archiver
}

// Option configures optional gateway collaborators.
type Option func(*Gateway)

func WithNotifier(n Notifier) Option {
	return func(g *Gateway) { g.notifier = n }
}

func WithArchiver(a Archiver) Option {
	return func(g *Gateway) { g.archiver = a }
}

func New(commands Commands, log *logrus.Logger, opts ...Option) *Gateway {
	if log == nil {
		log = logrus.New()
	}
	g := &Gateway{commands: commands, log: log}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dispatch resolves and runs the named operation. Unknown names, bad
// arguments and panics all come back as IsError responses; Dispatch never
// panics or returns an error itself.
func (g *Gateway) Dispatch(name string, rawArgs json.RawMessage) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			g.log.WithField("operation", name).Errorf("dispatch panicked: %v", r)
			resp = errorResponse(fmt.Sprintf("internal failure in %s: %v", name, r))
		}
	}()

	op, ok := operations[name]
	if !ok {
		return errorResponse(fmt.Sprintf("unknown operation: %s", name))
	}

	var args Args
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			return errorResponse(fmt.Sprintf("invalid arguments for %s: %v", name, err))
		}
	}

	runID := uuid.NewString()
	result, metrics := op.run(g.commands, args)

	g.log.WithFields(logrus.Fields{
		"operation":   name,
		"run_id":      runID,
		"status":      result.Status,
		"exit_code":   result.ExitCode,
		"duration_ms": result.ExecutionTime,
	}).Info("operation finished")

	g.afterRun(name, runID, result, metrics)

	if !result.Success() {
		msg := result.Error
		if msg == "" {
			msg = "command failed"
		}
		return errorResponse(msg)
	}

	if metrics == nil {
		return Response{Content: fmt.Sprintf("%s completed successfully", name)}
	}

	rendered, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return errorResponse(fmt.Sprintf("failed to render %s result: %v", name, err))
	}
	return Response{Content: string(rendered)}
}

// afterRun delivers the result to the optional notifier and archiver.
// Delivery failures are logged, never surfaced: the response reflects the
// command alone.
func (g *Gateway) afterRun(name, runID string, result *runner.Result, metrics any) {
	ctx := context.Background()

	if g.notifier != nil {
		payload := notifyPayload(name, runID, result, metrics)
		if err := g.notifier.Send(ctx, payload); err != nil {
			g.log.WithField("run_id", runID).Warnf("webhook delivery failed: %v", err)
		}
	}

	if g.archiver != nil {
		if err := g.archiver.Archive(ctx, runID, result); err != nil {
			g.log.WithField("run_id", runID).Warnf("artifact upload failed: %v", err)
		}
	}
}

func errorResponse(msg string) Response {
	return Response{Content: "Error: " + msg, IsError: true}
}
