package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/openflow-dev/wrench/internal/runner"
)

// TranscriptArchiver stores each run's captured streams under its run
// ID: <run-id>/stdout.txt, <run-id>/stderr.txt and <run-id>/result.json.
type TranscriptArchiver struct {
	provider Provider
}

func NewTranscriptArchiver(provider Provider) *TranscriptArchiver {
	return &TranscriptArchiver{provider: provider}
}

// Archive uploads the run transcript. Empty streams are skipped;
// result.json is always written.
func (a *TranscriptArchiver) Archive(ctx context.Context, runID string, result *runner.Result) error {
	if result == nil {
		return fmt.Errorf("archive: nil result")
	}

	if result.Stdout != "" {
		if err := a.provider.Upload(ctx, strings.NewReader(result.Stdout), path.Join(runID, "stdout.txt")); err != nil {
			return fmt.Errorf("archive stdout: %w", err)
		}
	}
	if result.Stderr != "" {
		if err := a.provider.Upload(ctx, strings.NewReader(result.Stderr), path.Join(runID, "stderr.txt")); err != nil {
			return fmt.Errorf("archive stderr: %w", err)
		}
	}

	summary, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("archive result: %w", err)
	}
	if err := a.provider.Upload(ctx, bytes.NewReader(summary), path.Join(runID, "result.json")); err != nil {
		return fmt.Errorf("archive result: %w", err)
	}

	return nil
}
