package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "wrench",
	Short: "Developer tooling runner with structured output",
	Long: `Wrench runs a project's lint, test, typecheck and build tooling,
captures the output, and reports structured results.

Commands can be executed directly, dispatched by name through the
command catalog, or served to editor agents over stdio JSON-RPC.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to wrench.toml (default: <root>/wrench.toml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
}
