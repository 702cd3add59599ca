// Package cli implements the Murim command-line interface using Cobra.
// Each subcommand maps to one game operation (task, revise, forge, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "murim",
	Short: "Murim — Gamified UPSC preparation engine",
	Long: `Murim turns UPSC preparation into a cultivation journey.
Tasks grant XP, streaks compound, essays summon bosses, and revision
check-ins pay out a lottery. All state lives locally in SQLite.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
