package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import edited workbooks back into translation trees",
		Args:  cobra.NoArgs,
		RunE:  runImport,
	}

	cmd.Flags().StringP("input", "i", "", "Directory scanned for .xlsx workbooks")
	cmd.Flags().StringP("output", "o", "", "Output translation root")
	cmd.Flags().String("format", "", "Output file format: json, yaml, toml")
	cmd.Flags().String("summary-sheet", "", "Name of the summary sheet to skip")
	cmd.Flags().IntP("jobs", "j", 0, "Workbooks parsed in parallel")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	stringFlag(fs, "input", &cfg.Paths.ImportExcel)
	stringFlag(fs, "output", &cfg.Paths.Export)
	stringFlag(fs, "summary-sheet", &cfg.Workbook.SummarySheet)
	if fs.Changed("jobs") {
		cfg.Import.Parallelism, _ = fs.GetInt("jobs")
	}
	format, err := outputFormat(cfg, fs)
	if err != nil {
		return err
	}

	res, err := i18nxlsx.Import(cmd.Context(), i18nxlsx.ImportOptions{
		InputDir:     cfg.Paths.ImportExcel,
		OutDir:       cfg.Paths.Export,
		Format:       format,
		SummarySheet: cfg.Workbook.SummarySheet,
		Parallelism:  cfg.Import.Parallelism,
		Logger:       log,
	})
	if err != nil {
		log.Error("import failed", "error", err)
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d workbook(s), %d failed\n", len(res.Processed), len(res.Failed))
	return nil
}
