package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/openflow-dev/wrench/internal/output"
	"github.com/openflow-dev/wrench/internal/runner"
	"github.com/openflow-dev/wrench/internal/upload"
)

var (
	runCwd        string
	runEnv        []string
	runVerbose    bool
	runTimeoutStr string
	runTimeout    time.Duration

	runWebhook webhookFlags
	runUpload  uploadFlags
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Execute a command and report a structured result",
	Long: `Execute a command while capturing stdout, stderr, exit code and timing.
The result is printed as JSON; a non-zero exit code is reported in the
result rather than failing the run.

The '--' separator is required to distinguish wrench flags from the
target command.`,
	Example: `  wrench run -- npm run lint
  wrench run --cwd src-tauri --timeout 2m -- cargo check
  wrench run --env CI=1 --webhook-url https://hooks.example.com/runs -- npm test`,
	RunE: runCommand,
}

func runCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command specified after '--'")
	}
	if cmd.ArgsLenAtDash() == -1 {
		return fmt.Errorf("command separator '--' is required")
	}

	env, err := parseEnvPairs(runEnv)
	if err != nil {
		return err
	}

	provider, err := buildUploadProvider(&runUpload)
	if err != nil {
		return err
	}

	client, err := buildWebhookClient(&runWebhook)
	if err != nil {
		return err
	}

	config := &runner.Config{
		Command: args[0],
		Args:    args[1:],
		Cwd:     runCwd,
		Env:     env,
		Timeout: runTimeout,
		Verbose: runVerbose,
	}

	result := runner.Execute(config)

	runID := uuid.NewString()
	var timeoutMs int64
	if runTimeout > 0 {
		timeoutMs = runTimeout.Milliseconds()
	}
	jsonResult := output.FromRunner(runID, "run", result, timeoutMs)

	if provider != nil {
		archiver := upload.NewTranscriptArchiver(provider)
		if err := archiver.Archive(context.Background(), runID, result); err != nil {
			return fmt.Errorf("failed to archive run transcript: %w", err)
		}
	}

	return deliverAndPrint(jsonResult, client, runVerbose)
}

func parseEnvPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid env pair %q, expected KEY=value", pair)
		}
		env[key] = value
	}
	return env, nil
}

func init() {
	runCmd.Flags().StringVar(&runCwd, "cwd", "", "Working directory for the command")
	runCmd.Flags().StringArrayVar(&runEnv, "env", nil, "Extra KEY=value environment pairs (can be used multiple times)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print execution details to stderr")
	runCmd.Flags().StringVarP(&runTimeoutStr, "timeout", "t", "", "Timeout duration (e.g., 30s, 2m, 500ms)")

	setupWebhookFlags(runCmd, &runWebhook)
	setupUploadFlags(runCmd, &runUpload)

	runCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if runTimeoutStr != "" {
			var err error
			runTimeout, err = time.ParseDuration(runTimeoutStr)
			if err != nil {
				return fmt.Errorf("invalid timeout duration: %w", err)
			}
			if runTimeout <= 0 {
				return fmt.Errorf("timeout must be positive")
			}
		}
		return nil
	}
}
