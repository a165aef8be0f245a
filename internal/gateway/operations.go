package gateway

import (
	"sort"

	"github.com/openflow-dev/wrench/internal/output"
	"github.com/openflow-dev/wrench/internal/parse"
	"github.com/openflow-dev/wrench/internal/runner"
)

// operation binds a stable caller-visible name to a catalog invocation and
// an optional output parser. Output-insensitive operations return nil
// metrics and report a fixed completion message instead.
type operation struct {
	description string
	params      map[string]string // param name -> description
	run         func(c Commands, args Args) (*runner.Result, any)
}

var operations = map[string]operation{
	"lint": {
		description: "Run the linter over the project, optionally applying automatic fixes",
		params:      map[string]string{"fix": "apply automatic fixes (boolean)"},
		run: func(c Commands, args Args) (*runner.Result, any) {
			var extra []string
			if args.Fix {
				extra = append(extra, "--fix")
			}
			result := c.RunScript("lint", extra...)
			return result, parse.Lint(result.CombinedOutput())
		},
	},
	"typecheck": {
		description: "Type-check the project and report errors with affected files",
		run: func(c Commands, args Args) (*runner.Result, any) {
			result := c.RunScript("typecheck")
			return result, parse.Typecheck(result.CombinedOutput())
		},
	},
	"test": {
		description: "Run the test suite, optionally filtered by test name",
		params:      map[string]string{"filter": "run only tests matching this name (string)"},
		run: func(c Commands, args Args) (*runner.Result, any) {
			var extra []string
			if args.Filter != "" {
				extra = append(extra, "-t", args.Filter)
			}
			result := c.RunScript("test", extra...)
			return result, parse.Test(result.CombinedOutput())
		},
	},
	"build": {
		description: "Build the project",
		run: func(c Commands, args Args) (*runner.Result, any) {
			return c.RunScript("build"), nil
		},
	},
	"generate-types": {
		description: "Regenerate shared type definitions",
		run: func(c Commands, args Args) (*runner.Result, any) {
			return c.RunScript("generate-types"), nil
		},
	},
	"cargo-check": {
		description: "Run cargo check over the secondary toolchain workspace",
		run: func(c Commands, args Args) (*runner.Result, any) {
			result := c.RunCargo("check")
			return result, parse.Cargo(result.CombinedOutput())
		},
	},
}

// ToolInfo describes one operation for discovery.
type ToolInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Params      map[string]string `json:"params,omitempty"`
}

// List returns the operation descriptors sorted by name.
func List() []ToolInfo {
	infos := make([]ToolInfo, 0, len(operations))
	for name, op := range operations {
		infos = append(infos, ToolInfo{
			Name:        name,
			Description: op.description,
			Params:      op.params,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func notifyPayload(name, runID string, result *runner.Result, metrics any) *output.Result {
	payload := output.FromRunner(runID, name, result, 0)
	payload.Metrics = metrics
	return payload
}
