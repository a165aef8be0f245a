package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/openflow-dev/wrench/internal/config"
	"github.com/openflow-dev/wrench/internal/output"
	"github.com/openflow-dev/wrench/internal/upload"
	"github.com/openflow-dev/wrench/internal/webhook"
)

// webhookFlags collects the webhook command-line surface.
type webhookFlags struct {
	URL        string
	AuthType   string
	AuthToken  string
	Timeout    string
	Retries    int
	RetryDelay string
}

// uploadFlags collects the upload command-line surface.
type uploadFlags struct {
	Provider    string
	Options     string
	OptionsKV   []string
	OptionsFile string
}

func setupWebhookFlags(cmd *cobra.Command, flags *webhookFlags) {
	cmd.Flags().StringVar(&flags.URL, "webhook-url", "", "Webhook URL to send results to")
	cmd.Flags().StringVar(&flags.AuthType, "webhook-auth-type", "none", "Authentication type: none, bearer, api-key")
	cmd.Flags().StringVar(&flags.AuthToken, "webhook-auth-token", "", "Authentication token (use with --webhook-auth-type)")
	cmd.Flags().IntVar(&flags.Retries, "webhook-retries", 3, "Maximum webhook retry attempts (0 = no retries)")
	cmd.Flags().StringVar(&flags.RetryDelay, "webhook-retry-delay", "1s", "Initial delay between webhook retries")
	cmd.Flags().StringVar(&flags.Timeout, "webhook-timeout", "30s", "Total timeout for webhook including retries")
}

func setupUploadFlags(cmd *cobra.Command, flags *uploadFlags) {
	cmd.Flags().StringVar(&flags.Provider, "upload-provider", "", "Upload provider type (e.g., minio)")
	cmd.Flags().StringVar(&flags.Options, "upload-options", "", "Upload provider options as JSON string")
	cmd.Flags().StringArrayVar(&flags.OptionsKV, "upload-options-kv", nil, "Upload provider key=value pairs (can be used multiple times)")
	cmd.Flags().StringVar(&flags.OptionsFile, "upload-options-file", "", "Path to JSON file with upload provider options")
}

// buildWebhookClient returns nil when no webhook URL is configured.
func buildWebhookClient(flags *webhookFlags) (*webhook.Client, error) {
	return newWebhookClient(flags.URL, flags.AuthType, flags.AuthToken, flags.Timeout, flags.Retries, flags.RetryDelay)
}

func newWebhookClient(url, authType, authToken, timeout string, retries int, retryDelay string) (*webhook.Client, error) {
	if url == "" {
		return nil, nil
	}

	timeoutDur := 30 * time.Second
	if timeout != "" {
		var err error
		timeoutDur, err = time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid webhook timeout duration: %w", err)
		}
	}

	delay := 1 * time.Second
	if retryDelay != "" {
		var err error
		delay, err = time.ParseDuration(retryDelay)
		if err != nil {
			return nil, fmt.Errorf("invalid webhook retry delay: %w", err)
		}
	}

	return webhook.NewClient(
		&webhook.Config{
			URL:       url,
			Method:    "POST",
			Timeout:   timeoutDur,
			AuthType:  authType,
			AuthToken: authToken,
		},
		&webhook.RetryConfig{
			MaxRetries:   retries,
			InitialDelay: delay,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
		nil,
	), nil
}

// buildUploadProvider returns nil when no provider is configured.
// Options merge environment, file, JSON and KV sources in that order.
func buildUploadProvider(flags *uploadFlags) (upload.Provider, error) {
	if flags.Provider == "" {
		return nil, nil
	}

	options, err := config.BuildOptions(config.UploadEnvPrefix, flags.Options, flags.OptionsKV, flags.OptionsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload options: %w", err)
	}

	provider, err := upload.NewProvider(flags.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload provider: %w", err)
	}
	if err := provider.Configure(options); err != nil {
		return nil, fmt.Errorf("failed to configure upload provider: %w", err)
	}

	return provider, nil
}

// deliverAndPrint sends the result to the webhook when one is
// configured, records the delivery outcome, and prints the result as
// JSON on stdout. Delivery failures never fail the run.
func deliverAndPrint(result *output.Result, client *webhook.Client, verbose bool) error {
	if client != nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "[WEBHOOK] Sending result")
		}
		payload := *result
		payload.WebhookSent = false
		payload.WebhookError = ""

		if err := client.Send(context.Background(), &payload); err != nil {
			fmt.Fprintf(os.Stderr, "[WEBHOOK] Error: %v\n", err)
			result.WebhookSent = false
			result.WebhookError = err.Error()
		} else {
			result.WebhookSent = true
		}
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}

	fmt.Println(string(encoded))
	return nil
}
