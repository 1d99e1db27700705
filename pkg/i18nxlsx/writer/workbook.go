// Package writer renders translation sheets into an xlsx workbook.
package writer

import (
	"fmt"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/table"
	"github.com/xuri/excelize/v2"
)

// Options configures workbook rendering.
type Options struct {
	// SummarySheet is the name of the aggregate sheet written first.
	SummarySheet string
	// NewFlag adds the isNew column to detail sheets.
	NewFlag bool
	// MaxColumnWidth caps auto-sized detail columns.
	MaxColumnWidth float64
}

// DefaultOptions returns default rendering options.
func DefaultOptions() Options {
	return Options{
		SummarySheet:   "Summary",
		NewFlag:        true,
		MaxColumnWidth: 50,
	}
}

// detailSheet is a rendered detail sheet as referenced by the summary.
type detailSheet struct {
	name string
}

type styles struct {
	header   int
	newRow   int
	mismatch int
}

// Write renders sheets into a new workbook saved at path.
func Write(path string, sheets []models.Sheet, langs models.LanguageSet, opts Options) error {
	f, err := Build(sheets, langs, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Build renders sheets into an in-memory workbook. The summary sheet comes
// first, followed by one detail sheet per group in the given order.
func Build(sheets []models.Sheet, langs models.LanguageSet, opts Options) (*excelize.File, error) {
	if opts.SummarySheet == "" {
		opts.SummarySheet = DefaultOptions().SummarySheet
	}
	if opts.MaxColumnWidth <= 0 {
		opts.MaxColumnWidth = DefaultOptions().MaxColumnWidth
	}

	f := excelize.NewFile()
	ok := false
	defer func() {
		if !ok {
			f.Close()
		}
	}()

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	summary := SanitizeSheetName(opts.SummarySheet)
	if err := f.SetSheetName(f.GetSheetName(0), summary); err != nil {
		return nil, err
	}

	names := newNameAllocator(summary)
	details := make([]detailSheet, 0, len(sheets))
	for _, s := range sheets {
		name := names.allocate(s.Group)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", name, err)
		}
		tbl := table.Tabulate(s, langs, opts.NewFlag)
		if err := writeDetail(f, name, tbl, s.Rows, st, opts); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		details = append(details, detailSheet{name: name})
	}

	if err := writeSummary(f, summary, details, langs, st, opts); err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	f.SetActiveSheet(0)

	ok = true
	return f, nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		return st, err
	}

	st.newRow, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFF2CC"}, Pattern: 1},
	})
	if err != nil {
		return st, err
	}

	st.mismatch, err = f.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFC7CE"}, Pattern: 1},
	})
	return st, err
}

func writeDetail(f *excelize.File, sheet string, tbl models.Table, rows []models.Row, st styles, opts Options) error {
	if err := writeRow(f, sheet, 1, tbl.Header); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(tbl.Header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", st.header); err != nil {
		return err
	}

	for i, cells := range tbl.Rows {
		rowNum := i + 2
		if err := writeRow(f, sheet, rowNum, cells); err != nil {
			return err
		}
		if rows[i].IsNew {
			if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), st.newRow); err != nil {
				return err
			}
		}
	}

	for col, h := range tbl.Header {
		cells := make([]string, 0, len(tbl.Rows)+1)
		cells = append(cells, h)
		for _, r := range tbl.Rows {
			cells = append(cells, r[col])
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, columnWidth(cells, opts.MaxColumnWidth)); err != nil {
			return err
		}
	}

	return freezeHeader(f, sheet)
}

// writeRow writes the non-empty cells of a row. Empty cells are left unset
// so that COUNTA in the summary only counts real values.
func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	for col, v := range cells {
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func freezeHeader(f *excelize.File, sheet string) error {
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
