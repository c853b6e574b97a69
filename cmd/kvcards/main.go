// Package main provides the CLI entry point for kvcards.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/kvcards-go/internal/logging"
	"go.uber.org/zap"
)

var (
	verbose bool
	logJSON bool
	logger  = zap.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kvcards",
		Short: "Turn spreadsheet rows into label/value cards",
		Long: `kvcards reads a header row and a selection of columns from an Excel
sheet and outputs one card of label/value pairs per data row.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose, logJSON)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")

	rootCmd.AddCommand(
		newCardsCmd(),
		newInspectCmd(),
		newHeadersCmd(),
		newCompleteCmd(),
		newFormCmd(),
		newWatchCmd(),
	)
	return rootCmd
}
