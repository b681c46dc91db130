// Package main provides the CLI entry point for xlgrid.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlgrid/internal/config"
	"github.com/ukaji3/xlgrid/internal/logging"
)

var (
	cfg      *config.Config
	logLevel string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlgrid",
		Short: "Read and write spreadsheet records under multi-row headers",
		Long: `xlgrid streams the rows of xlsx sheets out as records and writes
JSON records into xlsx sheets beneath titled, merged headers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				loaded.Logging.Level = logLevel
			}
			cfg = loaded
			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
			slog.Debug("configuration loaded", "streaming", cfg.Write.Streaming)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from XLGRID_LOG_LEVEL)")

	rootCmd.AddCommand(newSheetsCmd(), newReadCmd(), newWriteCmd())
	return rootCmd
}
