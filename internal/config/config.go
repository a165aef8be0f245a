// Package config loads the wrench.toml project configuration and provides
// helpers for building provider option maps from JSON strings, key=value
// pairs, files and prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is looked up in the project root when no explicit
// config path is given.
const DefaultFileName = "wrench.toml"

// Config is the persisted configuration file schema.
type Config struct {
	Root         string            `toml:"root"`
	ScriptRunner string            `toml:"script-runner"`
	Timeout      string            `toml:"timeout"`
	Env          map[string]string `toml:"env"`

	Cargo   CargoConfig   `toml:"cargo"`
	Log     LogConfig     `toml:"log"`
	Webhook WebhookConfig `toml:"webhook"`
	Upload  UploadConfig  `toml:"upload"`

	Source string `toml:"-"`
}

// CargoConfig locates the secondary toolchain workspace.
type CargoConfig struct {
	Dir string `toml:"dir"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// WebhookConfig configures optional result delivery.
type WebhookConfig struct {
	URL        string `toml:"url"`
	AuthType   string `toml:"auth-type"`
	AuthToken  string `toml:"auth-token"`
	Timeout    string `toml:"timeout"`
	Retries    int    `toml:"retries"`
	RetryDelay string `toml:"retry-delay"`
}

// UploadConfig configures optional artifact archiving. Provider-specific
// settings (endpoint, credentials, bucket) come from the WRENCH_UPLOAD
// environment prefix or the options file, not from wrench.toml, so
// credentials stay out of the checked-in config.
type UploadConfig struct {
	Provider    string `toml:"provider"`
	OptionsFile string `toml:"options-file"`
}

func Default() Config {
	return Config{
		Root:         ".",
		ScriptRunner: "npm",
		Timeout:      "5m",
		Cargo:        CargoConfig{Dir: "src-tauri"},
		Log:          LogConfig{Level: "info"},
		Webhook:      WebhookConfig{Retries: 3},
	}
}

// Load reads the configuration file at path, or Root/wrench.toml when path
// is empty. A missing file is not an error: defaults plus environment
// overrides apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFileName
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if env := strings.TrimSpace(os.Getenv("WRENCH_ROOT")); env != "" {
		cfg.Root = env
	}
	if env := strings.TrimSpace(os.Getenv("WRENCH_SCRIPT_RUNNER")); env != "" {
		cfg.ScriptRunner = env
	}
	if env := strings.TrimSpace(os.Getenv("WRENCH_TIMEOUT")); env != "" {
		cfg.Timeout = env
	}
}

// CommandTimeout parses the configured default timeout. An unset or
// unparseable value falls back to five minutes; an explicit "0" disables
// the timeout.
func (c Config) CommandTimeout() time.Duration {
	if c.Timeout == "" {
		return 5 * time.Minute
	}
	if c.Timeout == "0" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// AbsRoot resolves the project root to an absolute path.
func (c Config) AbsRoot() (string, error) {
	return filepath.Abs(c.Root)
}
