package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx"
)

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge edited translation trees into the current ones",
		Args:  cobra.NoArgs,
		RunE:  runMerge,
	}

	cmd.Flags().String("new", "", "Current translation root")
	cmd.Flags().String("export", "", "Edited translation root")
	cmd.Flags().StringP("output", "o", "", "Merged translation root")
	cmd.Flags().String("format", "", "Output file format: json, yaml, toml")
	return cmd
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	stringFlag(fs, "new", &cfg.Paths.New)
	stringFlag(fs, "export", &cfg.Paths.Export)
	stringFlag(fs, "output", &cfg.Paths.Merge)
	format, err := outputFormat(cfg, fs)
	if err != nil {
		return err
	}

	res, err := i18nxlsx.Merge(cmd.Context(), i18nxlsx.MergeOptions{
		NewDir:    cfg.Paths.New,
		ExportDir: cfg.Paths.Export,
		MergeDir:  cfg.Paths.Merge,
		Format:    format,
		Logger:    log,
	})
	if err != nil {
		log.Error("merge failed", "error", err)
		return fmt.Errorf("merge failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "merged into %s, %d conflict(s) logged to %s\n", res.Dir, len(res.Conflicts), res.LogPath)
	return nil
}
