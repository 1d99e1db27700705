// Package i18nxlsx converts translation trees to Excel workbooks and back,
// and merges edited translations into the current tree.
package i18nxlsx

import (
	"log/slog"
	"strings"
	"time"

	"github.com/ukaji3/i18nxlsx-go/internal/logger"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/langdir"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/reconcile"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/writer"
)

// ExportOptions configures Export.
type ExportOptions struct {
	// NewDir is the translation root to export. Required.
	NewDir string
	// OldDir is the baseline root used to flag new keys. Optional.
	OldDir string
	// OutDir receives the workbook.
	OutDir string
	// FileName overrides the generated workbook name.
	FileName string
	// Workbook controls the workbook layout.
	Workbook writer.Options
	// Logger receives progress and warnings. Nil discards.
	Logger *slog.Logger
	// Now returns the run time. Nil means time.Now.
	Now func() time.Time
}

// ImportOptions configures Import.
type ImportOptions struct {
	// InputDir is scanned for .xlsx workbooks.
	InputDir string
	// OutDir receives one directory per language.
	OutDir string
	// Format is the translation file format written.
	Format langdir.Format
	// SummarySheet names the sheet skipped while reading.
	SummarySheet string
	// Parallelism bounds concurrent workbook parsing. Values below 1 mean 1.
	Parallelism int
	// Logger receives progress and warnings. Nil discards.
	Logger *slog.Logger
}

// MergeOptions configures Merge.
type MergeOptions struct {
	// NewDir is the authoritative translation root. Required.
	NewDir string
	// ExportDir holds the externally edited trees. Optional.
	ExportDir string
	// MergeDir receives merged trees and the conflict log.
	MergeDir string
	// Format is the translation file format written.
	Format langdir.Format
	// Logger receives progress and warnings. Nil discards.
	Logger *slog.Logger
	// Now returns the run time. Nil means time.Now.
	Now func() time.Time
}

// ConflictLogName is the file name of the merge conflict log.
const ConflictLogName = "merge-conflicts.log"

func orNope(l *slog.Logger) *slog.Logger {
	if l == nil {
		return logger.NewNope()
	}
	return l
}

func orNow(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}

func orFormat(f langdir.Format) langdir.Format {
	if f == "" {
		return langdir.FormatJSON
	}
	return f
}

// fileStamp renders t for use in a file name.
func fileStamp(t time.Time) string {
	s := t.UTC().Format(reconcile.TimestampLayout)
	return strings.NewReplacer(":", "-", ".", "-").Replace(s)
}
