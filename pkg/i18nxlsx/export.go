package i18nxlsx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/langdir"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/reconcile"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/table"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/writer"
)

// ExportResult summarizes a completed export.
type ExportResult struct {
	// Path is the workbook written.
	Path string
	// Languages are the language columns, in directory order.
	Languages []string
	// Sheets is the number of detail sheets.
	Sheets int
	// Keys is the number of rows across detail sheets.
	Keys int
	// NewKeys is the number of rows flagged as new.
	NewKeys int
	// Skipped lists languages that failed to load.
	Skipped []string
}

// Export writes the translation tree under opts.NewDir to a workbook with one
// sheet per sheet group, flagging keys absent from opts.OldDir.
func Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	log := orNope(opts.Logger)

	if !langdir.Exists(opts.NewDir) {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, opts.NewDir)
	}
	scanned, err := langdir.Scan(opts.NewDir)
	if err != nil {
		return nil, err
	}
	if scanned.Len() == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLanguages, opts.NewDir)
	}
	log.Info("languages found", slog.Any("languages", scanned.Codes()))

	newSnap, failures := langdir.Load(opts.NewDir, scanned, log)
	res := &ExportResult{}
	for _, f := range failures {
		res.Skipped = append(res.Skipped, f.Language)
	}
	langs := loaded(scanned, newSnap)
	if langs.Len() == 0 {
		return nil, fmt.Errorf("%w: every language of %s failed to load", ErrNoLanguages, opts.NewDir)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	oldSnap, err := loadBaseline(opts.OldDir, log)
	if err != nil {
		return nil, err
	}
	index := reconcile.NewKeyIndex(oldSnap)
	log.Debug("baseline indexed", slog.Int("keys", index.Len()))

	sheets := table.Sheets(table.Group(newSnap, langs, index), langs)
	for _, s := range sheets {
		res.Keys += len(s.Rows)
		for _, r := range s.Rows {
			if r.IsNew {
				res.NewKeys++
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, err
	}
	name := opts.FileName
	if name == "" {
		name = "i18n_export_" + fileStamp(orNow(opts.Now)) + ".xlsx"
	}
	res.Path = filepath.Join(opts.OutDir, name)

	log.Info("writing workbook", slog.String("path", res.Path))
	if err := writer.Write(res.Path, sheets, langs, opts.Workbook); err != nil {
		return nil, err
	}

	res.Languages = langs.Codes()
	res.Sheets = len(sheets)
	log.Info("export complete",
		slog.Int("sheets", res.Sheets),
		slog.Int("keys", res.Keys),
		slog.Int("new_keys", res.NewKeys))
	return res, nil
}

// loaded keeps the languages of set that made it into snap.
// loadBaseline reads every language under dir. Keys known to any of them
// are not flagged as new, including languages absent from the new tree.
func loadBaseline(dir string, log *slog.Logger) (models.Snapshot, error) {
	if dir == "" || !langdir.Exists(dir) {
		log.Info("no old baseline, every key is new", slog.String("dir", dir))
		return nil, nil
	}
	langs, err := langdir.Scan(dir)
	if err != nil {
		return nil, fmt.Errorf("scan baseline: %w", err)
	}
	snap, _ := langdir.Load(dir, langs, log)
	return snap, nil
}

func loaded(set models.LanguageSet, snap models.Snapshot) models.LanguageSet {
	var out models.LanguageSet
	for _, lang := range set.Codes() {
		if _, ok := snap[lang]; ok {
			out.Add(lang)
		}
	}
	return out
}
