package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openflow-dev/wrench/internal/catalog"
	"github.com/openflow-dev/wrench/internal/config"
	"github.com/openflow-dev/wrench/internal/gateway"
)

var (
	checkFix    bool
	checkFilter string
)

var checkCmd = &cobra.Command{
	Use:   "check <operation>",
	Short: "Run a catalog operation and print its parsed result",
	Long: `Run one of the named tooling operations against the configured
project and print the parsed outcome. The command exits non-zero when
the underlying tool fails.

Run 'wrench check' with no arguments to list the available operations.`,
	Example: `  wrench check lint
  wrench check lint --fix
  wrench check test --filter "parser"
  wrench check cargo-check`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          checkCommand,
}

func checkCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, tool := range gateway.List() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", tool.Name, tool.Description)
		}
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	g := gateway.New(catalog.New(cfg), quiet)

	rawArgs, err := json.Marshal(gateway.Args{Fix: checkFix, Filter: checkFilter})
	if err != nil {
		return err
	}

	resp := g.Dispatch(args[0], rawArgs)
	fmt.Fprintln(cmd.OutOrStdout(), resp.Content)

	if resp.IsError {
		return fmt.Errorf("%s failed", args[0])
	}
	return nil
}

func init() {
	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "Apply automatic fixes where the operation supports them")
	checkCmd.Flags().StringVar(&checkFilter, "filter", "", "Restrict the operation to matching targets (test name pattern)")
}
