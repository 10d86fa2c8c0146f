// Package cli wires the awesomedocs commands: parse the awesome-list
// catalog, fetch per-project documentation, regenerate the homepage,
// build the search index and verify the generated site.
package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var debugMode bool

var rootCmd = &cobra.Command{
	Use:   "awesomedocs",
	Short: "Documentation pipeline for an awesome-list of LLM apps",
	Long: `awesomedocs turns an awesome-list README into a browsable
documentation site: it parses the catalog, fetches each project's README
from GitHub (falling back to source analysis), writes frontmattered pages
per category, regenerates the homepage card grid and builds the search
index.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func setupLogging() {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(handler))
}

func ensureStatsDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd exposes the root command for documentation generation.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
