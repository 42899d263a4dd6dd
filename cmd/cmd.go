// Package cmd provides CLI commands for careerscope.
//
// Commands:
//   - serve: HTTP API server over the loaded dataset
//   - ask: answer one question from the command line
//   - stats: print the dashboard summary
//   - version: show build information
//
// The serve command handles SIGINT/SIGTERM with graceful shutdown via
// context cancellation.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/careerscope/careerscope/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "careerscope",
	Short: "Statistics and Q&A over university career outcomes",
	Long: `careerscope loads a career-outcomes CSV dataset and answers
questions about it: structured statistics over an HTTP API, or
natural-language questions answered deterministically and optionally
enriched by a Gemini model.

Running careerscope with no command starts the server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute is the main entry point for the careerscope CLI.
func Execute() error {
	slog.SetDefault(newLogger())
	return rootCmd.Execute()
}

// newLogger builds the process logger. DEBUG enables debug level;
// LOG_JSON switches to JSON output for log collectors.
func newLogger() log.Logger {
	cfg := log.Config{Level: slog.LevelInfo}
	if os.Getenv("DEBUG") != "" {
		cfg.Level = slog.LevelDebug
	}
	if os.Getenv("LOG_JSON") != "" {
		cfg.JSON = true
	}
	return log.New(cfg)
}
