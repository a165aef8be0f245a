package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openflow-dev/wrench/internal/catalog"
	"github.com/openflow-dev/wrench/internal/config"
	"github.com/openflow-dev/wrench/internal/gateway"
	"github.com/openflow-dev/wrench/internal/server"
	"github.com/openflow-dev/wrench/internal/upload"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve catalog operations over stdio JSON-RPC",
	Long: `Serve the tooling operations to an editor agent over stdin and
stdout using newline-delimited JSON-RPC 2.0. Logs go to stderr so the
protocol stream stays clean.

Webhook delivery and transcript archiving are enabled when configured
in wrench.toml.`,
	RunE: serveCommand,
}

func serveCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	var opts []gateway.Option

	if cfg.Webhook.URL != "" {
		client, err := newWebhookClient(
			cfg.Webhook.URL,
			cfg.Webhook.AuthType,
			cfg.Webhook.AuthToken,
			cfg.Webhook.Timeout,
			cfg.Webhook.Retries,
			cfg.Webhook.RetryDelay,
		)
		if err != nil {
			return err
		}
		opts = append(opts, gateway.WithNotifier(client))
		log.WithField("url", cfg.Webhook.URL).Info("webhook delivery enabled")
	}

	if cfg.Upload.Provider != "" {
		provider, err := buildUploadProvider(&uploadFlags{
			Provider:    cfg.Upload.Provider,
			OptionsFile: cfg.Upload.OptionsFile,
		})
		if err != nil {
			return err
		}
		opts = append(opts, gateway.WithArchiver(upload.NewTranscriptArchiver(provider)))
		log.WithField("provider", cfg.Upload.Provider).Info("transcript archiving enabled")
	}

	g := gateway.New(catalog.New(cfg), log, opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Signal-driven shutdown is a clean exit.
	if err := server.New(g, log).Serve(ctx, server.Stdio()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
