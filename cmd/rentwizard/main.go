// Rentwizard is a terminal wizard that calculates the indicative
// reference rent for a dwelling in the Brussels-Capital Region.
//
// It walks the tenant through a short questionnaire about the property,
// looks up the street's difficulty index, and produces the reference
// rent band from the regional rent grid. Sessions are saved as you type
// and can be resumed for 24 hours.
//
// Usage:
//
//	rentwizard [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'rentwizard --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loyerbxl/rentwizard/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rentwizard",
	Short: "Brussels Reference Rent Wizard",
	Long: `A terminal wizard for the Brussels indicative reference rent.

Answer a short questionnaire about a dwelling and get the reference
rent band for its address, straight from the regional rent grid.

If no command is specified, the interactive wizard will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runWizard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rentwizard %s (commit: %s)\n", version.Version, version.Commit)
	},
}
