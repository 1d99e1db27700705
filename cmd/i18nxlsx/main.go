// Package main provides the CLI entry point for i18nxlsx.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ukaji3/i18nxlsx-go/internal/config"
	"github.com/ukaji3/i18nxlsx-go/internal/logger"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/langdir"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/writer"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "i18nxlsx",
		Short: "Convert translation trees to Excel workbooks and back",
		Long: `i18nxlsx exports per-language translation trees to a workbook with one
sheet per top-level key, imports edited workbooks back into trees, and
merges edited trees into the current ones with a conflict log.

Directories default to the layout below and can be changed in
i18nxlsx.toml, through I18NXLSX_* environment variables or with flags:

  importLang/new     current trees (export, merge)
  importLang/old     previous trees, used to flag new keys (export)
  exportExcel        generated workbooks (export)
  importExcel        edited workbooks (import)
  exportLang         imported trees (import), edited trees (merge)
  importLang/merge   merged trees and merge-conflicts.log (merge)`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./"+config.DefaultFileName+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json")

	rootCmd.AddCommand(newExportCmd(), newImportCmd(), newMergeCmd(), newInitCmd())
	return rootCmd
}

// setup loads the configuration, applies global flags and builds the run logger.
func setup(cmd *cobra.Command) (*config.AppConfig, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	log, err := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.WithRun(log, cmd.Name()), nil
}

// stringFlag overrides *dst with the named flag when it was set.
func stringFlag(fs *pflag.FlagSet, name string, dst *string) {
	if fs.Changed(name) {
		*dst, _ = fs.GetString(name)
	}
}

func outputFormat(cfg *config.AppConfig, fs *pflag.FlagSet) (langdir.Format, error) {
	stringFlag(fs, "format", &cfg.Output.Format)
	return langdir.ParseFormat(cfg.Output.Format)
}

func workbookOptions(cfg *config.AppConfig) writer.Options {
	return writer.Options{
		SummarySheet:   cfg.Workbook.SummarySheet,
		NewFlag:        cfg.Workbook.NewFlagColumn,
		MaxColumnWidth: cfg.Workbook.MaxColumnWidth,
	}
}

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
