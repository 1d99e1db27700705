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
)

// MergeResult summarizes a completed merge.
type MergeResult struct {
	// Dir is the directory the merged trees were written to.
	Dir string
	// LogPath is the conflict log written.
	LogPath string
	// Languages are the merged languages.
	Languages []string
	// Conflicts lists every conflict, in log order.
	Conflicts []models.Conflict
	// Dropped lists export languages absent from the new tree.
	Dropped []string
}

// Merge overlays the edited trees of opts.ExportDir onto opts.NewDir and
// writes the result to opts.MergeDir together with a conflict log. Where
// both sides hold a key the export value wins and the difference is logged.
func Merge(ctx context.Context, opts MergeOptions) (*MergeResult, error) {
	log := orNope(opts.Logger)

	if !langdir.Exists(opts.NewDir) {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, opts.NewDir)
	}
	scanned, err := langdir.Scan(opts.NewDir)
	if err != nil {
		return nil, err
	}
	newSnap, _ := langdir.Load(opts.NewDir, scanned, log)
	langs := loaded(scanned, newSnap)
	if langs.Len() == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLanguages, opts.NewDir)
	}

	var exportSnap models.Snapshot
	if opts.ExportDir != "" && langdir.Exists(opts.ExportDir) {
		exportLangs, err := langdir.Scan(opts.ExportDir)
		if err != nil {
			return nil, err
		}
		exportSnap, _ = langdir.Load(opts.ExportDir, exportLangs, log)
	} else {
		log.Info("no export tree, merged output equals new", slog.String("dir", opts.ExportDir))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := reconcile.Merge(newSnap, exportSnap, langs, orNow(opts.Now))
	for _, lang := range res.DroppedLanguages {
		log.Warn("export language absent from new tree, not merged", slog.String("language", lang))
	}

	if err := os.MkdirAll(opts.MergeDir, 0755); err != nil {
		return nil, err
	}
	if err := langdir.Write(opts.MergeDir, res.Merged, orFormat(opts.Format)); err != nil {
		return nil, err
	}

	logPath := filepath.Join(opts.MergeDir, ConflictLogName)
	if err := writeConflictLog(logPath, res.Log); err != nil {
		return nil, err
	}

	for _, c := range res.Log.Records {
		log.Debug("conflict", slog.String("language", c.Language), slog.String("key", c.Path))
	}
	log.Info("merge complete",
		slog.String("dir", opts.MergeDir),
		slog.String("conflict_log", logPath),
		slog.Int("conflicts", len(res.Log.Records)))

	return &MergeResult{
		Dir:       opts.MergeDir,
		LogPath:   logPath,
		Languages: langs.Codes(),
		Conflicts: res.Log.Records,
		Dropped:   res.DroppedLanguages,
	}, nil
}

func writeConflictLog(path string, l reconcile.ConflictLog) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = l.WriteTo(f)
	return err
}
