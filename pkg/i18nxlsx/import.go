package i18nxlsx

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/keypath"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/langdir"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/parser"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/table"
)

// ImportResult summarizes a completed import.
type ImportResult struct {
	// Processed lists the workbooks written, in file-name order.
	Processed []string
	// Failed holds one error per workbook that could not be processed.
	Failed []*FileError
	// Languages are the languages written, in first-seen order.
	Languages []string
}

// parsedWorkbook is the import result of one workbook before writing.
type parsedWorkbook struct {
	langs models.LanguageSet
	trees models.Snapshot
}

// Import converts every workbook in opts.InputDir back into per-language
// translation trees under opts.OutDir. Workbooks are parsed concurrently
// and written in file-name order, so a later workbook overwrites groups
// written by an earlier one. A failing workbook is logged and skipped.
func Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	log := orNope(opts.Logger)
	res := &ImportResult{}

	if !langdir.Exists(opts.InputDir) {
		if err := os.MkdirAll(opts.InputDir, 0755); err != nil {
			return nil, err
		}
		log.Info("created input directory, put .xlsx files there", slog.String("dir", opts.InputDir))
		return res, nil
	}

	files, err := workbookFiles(opts.InputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Info("no workbooks found", slog.String("dir", opts.InputDir))
		return res, nil
	}

	parsed := make([]*parsedWorkbook, len(files))
	readErrs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Parallelism, 1))
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log.Info("processing workbook", slog.String("file", name))
			pw, err := parseWorkbook(filepath.Join(opts.InputDir, name), opts.SummarySheet, log.With(slog.String("file", name)))
			if err != nil {
				readErrs[i] = err
				return nil
			}
			parsed[i] = pw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, err
	}

	format := orFormat(opts.Format)
	var written models.LanguageSet
	for i, name := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if readErrs[i] != nil {
			res.fail(log, NewFileError(name, "read", readErrs[i]))
			continue
		}

		pw := parsed[i]
		var writeErr error
		for _, lang := range pw.langs.Codes() {
			tree, ok := pw.trees[lang]
			if !ok {
				log.Warn("language column has no values", slog.String("file", name), slog.String("language", lang))
				continue
			}
			out, err := langdir.WriteLanguage(filepath.Join(opts.OutDir, lang), tree, format)
			if err != nil {
				writeErr = err
				break
			}
			written.Add(lang)
			log.Info("language written",
				slog.String("file", name),
				slog.String("language", lang),
				slog.Int("files", len(out)))
		}
		if writeErr != nil {
			res.fail(log, NewFileError(name, "write", writeErr))
			continue
		}
		res.Processed = append(res.Processed, name)
	}

	res.Languages = written.Codes()
	log.Info("import complete",
		slog.Int("processed", len(res.Processed)),
		slog.Int("failed", len(res.Failed)))
	return res, nil
}

func (r *ImportResult) fail(log *slog.Logger, err *FileError) {
	log.Error("workbook failed", slog.String("file", err.File), slog.Any("error", err.Err))
	r.Failed = append(r.Failed, err)
}

// parseWorkbook reads a workbook and rebuilds one tree per language.
// Languages are collected from every header before any row is read.
func parseWorkbook(path, summarySheet string, log *slog.Logger) (*parsedWorkbook, error) {
	wb, err := parser.ReadWorkbook(path, summarySheet)
	if err != nil {
		return nil, err
	}

	langs := table.Languages(wb.Tables)
	flats := make(map[string]models.FlatMap, langs.Len())
	for _, t := range wb.Tables {
		for lang, flat := range table.FromRows(t, langs) {
			dst, ok := flats[lang]
			if !ok {
				dst = make(models.FlatMap, len(flat))
				flats[lang] = dst
			}
			for k, v := range flat {
				dst[k] = v
			}
		}
	}

	trees := make(models.Snapshot, len(flats))
	for lang, flat := range flats {
		for _, p := range keypath.Overlaps(flat) {
			log.Warn("key shadowed by nested keys", slog.String("language", lang), slog.String("key", p))
		}
		trees[lang] = keypath.Unflatten(flat)
	}

	return &parsedWorkbook{langs: langs, trees: trees}, nil
}

// workbookFiles lists the .xlsx files of dir, skipping Excel lock files.
func workbookFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}
