package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vcd",
	Short: "OpenTraceVCD - Value Change Dump inspection tools",
	Long: `OpenTraceVCD (vcd) parses Value Change Dump waveform traces produced
by digital-logic simulators and inspects their contents.

Examples:
  vcd info trace.vcd                  # Show header and design hierarchy
  vcd info --format yaml trace.vcd    # Header as YAML
  vcd cat trace.vcd                   # Print every command in the body
  vcd stats trace.vcd                 # Per-signal change counts`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
