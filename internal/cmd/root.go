package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planforge/internal/log"
)

var (
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "planforge",
	Short: "Turn product requirements into GitHub milestones, issues and board items",
	Long: `planforge reads a natural-language requirements document, asks a
generative model to extract a structured development plan, and reconciles
that plan against GitHub: milestones and issues are created where missing
and skipped where an exact match already exists, so re-running the tool
against the same document is safe.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetDefault(log.New(log.Config{
			Level:  log.ParseLevel(logLevelFlag),
			Format: log.ParseFormat(logFormatFlag),
			Output: os.Stderr,
		}))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "text", "log format (text, json)")
}
