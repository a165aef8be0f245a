package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "wrench.toml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, "npm", cfg.ScriptRunner)
	assert.Equal(t, "src-tauri", cfg.Cargo.Dir)
	assert.Equal(t, 5*time.Minute, cfg.CommandTimeout())
}

func TestLoadFile(t *testing.T) {
	content := `
root = "/work/openflow"
script-runner = "pnpm"
timeout = "2m"

[env]
CI = "true"

[cargo]
dir = "backend"

[webhook]
url = "https://hooks.example.com/wrench"
auth-type = "bearer"
retries = 5
`
	path := filepath.Join(t.TempDir(), "wrench.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/work/openflow", cfg.Root)
	assert.Equal(t, "pnpm", cfg.ScriptRunner)
	assert.Equal(t, 2*time.Minute, cfg.CommandTimeout())
	assert.Equal(t, map[string]string{"CI": "true"}, cfg.Env)
	assert.Equal(t, "backend", cfg.Cargo.Dir)
	assert.Equal(t, "https://hooks.example.com/wrench", cfg.Webhook.URL)
	assert.Equal(t, "bearer", cfg.Webhook.AuthType)
	assert.Equal(t, 5, cfg.Webhook.Retries)
}

func TestLoadInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrench.toml")
	require.NoError(t, os.WriteFile(path, []byte("root = [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WRENCH_ROOT", "/from/env")
	t.Setenv("WRENCH_SCRIPT_RUNNER", "yarn")

	cfg, err := Load(filepath.Join(t.TempDir(), "wrench.toml"))
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Root)
	assert.Equal(t, "yarn", cfg.ScriptRunner)
}

func TestCommandTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		want    time.Duration
	}{
		{"default", "", 5 * time.Minute},
		{"explicit", "30s", 30 * time.Second},
		{"disabled", "0", 0},
		{"unparseable falls back", "soon", 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Timeout: tt.timeout}
			assert.Equal(t, tt.want, cfg.CommandTimeout())
		})
	}
}
