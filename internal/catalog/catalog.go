// Package catalog maps logical development operations onto supervised
// command invocations: package scripts run at the project root, cargo
// subcommands run inside the secondary toolchain directory.
package catalog

import (
	"path/filepath"
	"time"

	"github.com/openflow-dev/wrench/internal/config"
	"github.com/openflow-dev/wrench/internal/runner"
)

// Catalog resolves logical operations to concrete commands. It carries no
// state beyond its configuration; all failure handling lives in the
// runner.
type Catalog struct {
	Root         string
	ScriptRunner string
	CargoDir     string
	Timeout      time.Duration
	Env          map[string]string

	// execute is swapped out by tests
	execute func(*runner.Config) *runner.Result
}

// New builds a Catalog from the loaded project configuration.
func New(cfg config.Config) *Catalog {
	root, err := cfg.AbsRoot()
	if err != nil {
		root = cfg.Root
	}
	return &Catalog{
		Root:         root,
		ScriptRunner: cfg.ScriptRunner,
		CargoDir:     cfg.Cargo.Dir,
		Timeout:      cfg.CommandTimeout(),
		Env:          cfg.Env,
		execute:      runner.Execute,
	}
}

// RunScript runs a named package script at the project root. Extra
// arguments are passed through to the script after the "--" separator the
// script runner expects.
func (c *Catalog) RunScript(name string, extra ...string) *runner.Result {
	args := []string{"run", name}
	if len(extra) > 0 {
		args = append(args, "--")
		args = append(args, extra...)
	}

	return c.run(&runner.Config{
		Command: c.ScriptRunner,
		Args:    args,
		Cwd:     c.Root,
	})
}

// RunCargo runs a cargo subcommand inside the secondary toolchain
// directory.
func (c *Catalog) RunCargo(args ...string) *runner.Result {
	return c.run(&runner.Config{
		Command: "cargo",
		Args:    args,
		Cwd:     filepath.Join(c.Root, c.CargoDir),
	})
}

func (c *Catalog) run(cfg *runner.Config) *runner.Result {
	cfg.Timeout = c.Timeout
	cfg.Env = c.Env
	if c.execute == nil {
		c.execute = runner.Execute
	}
	return c.execute(cfg)
}
