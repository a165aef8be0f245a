package runner

import (
	"fmt"
	"os"
)

// PrintPreExecution prints command details before execution
func PrintPreExecution(config *Config) {
	fmt.Fprintln(os.Stderr, "========================================")
	fmt.Fprintln(os.Stderr, "Wrench Command Execution Details")
	fmt.Fprintln(os.Stderr, "========================================")
	fmt.Fprintf(os.Stderr, "Command: %s\n", buildFullCommand(config))
	if config.Cwd != "" {
		fmt.Fprintf(os.Stderr, "Cwd:     %s\n", config.Cwd)
	}
	if config.Timeout > 0 {
		fmt.Fprintf(os.Stderr, "Timeout: %s\n", config.Timeout)
	}
	if len(config.Env) > 0 {
		fmt.Fprintf(os.Stderr, "Env:     %d override(s)\n", len(config.Env))
	}
	fmt.Fprintln(os.Stderr, "----------------------------------------")
}

// PrintPostExecution prints execution results after command completion
func PrintPostExecution(result *Result) {
	fmt.Fprintln(os.Stderr, "----------------------------------------")
	fmt.Fprintln(os.Stderr, "Execution Results:")
	fmt.Fprintln(os.Stderr, "----------------------------------------")
	fmt.Fprintf(os.Stderr, "Status:         %s\n", result.Status)
	fmt.Fprintf(os.Stderr, "Exit Code:      %d\n", result.ExitCode)
	fmt.Fprintf(os.Stderr, "Execution Time: %d ms\n", result.ExecutionTime)
	if result.Error != "" {
		fmt.Fprintf(os.Stderr, "Error:          %s\n", result.Error)
	}
	fmt.Fprintln(os.Stderr, "========================================")
}
