package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export translation trees to a workbook",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}

	cmd.Flags().String("new", "", "Current translation root")
	cmd.Flags().String("old", "", "Previous translation root used to flag new keys")
	cmd.Flags().StringP("output", "o", "", "Output directory for the workbook")
	cmd.Flags().String("file", "", "Workbook file name (default: i18n_export_<timestamp>.xlsx)")
	cmd.Flags().String("summary-sheet", "", "Name of the summary sheet")
	cmd.Flags().Bool("no-flag", false, "Omit the isNew column")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	stringFlag(fs, "new", &cfg.Paths.New)
	stringFlag(fs, "old", &cfg.Paths.Old)
	stringFlag(fs, "output", &cfg.Paths.ExportExcel)
	stringFlag(fs, "summary-sheet", &cfg.Workbook.SummarySheet)
	if noFlag, _ := fs.GetBool("no-flag"); noFlag {
		cfg.Workbook.NewFlagColumn = false
	}
	fileName, _ := fs.GetString("file")

	res, err := i18nxlsx.Export(cmd.Context(), i18nxlsx.ExportOptions{
		NewDir:   cfg.Paths.New,
		OldDir:   cfg.Paths.Old,
		OutDir:   cfg.Paths.ExportExcel,
		FileName: fileName,
		Workbook: workbookOptions(cfg),
		Logger:   log,
	})
	if err != nil {
		log.Error("export failed", "error", err)
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Path)
	return nil
}
