// Package parser reads translation workbooks.
package parser

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads every sheet of an xlsx file as a table.
// Sheets named in skip (e.g. the summary sheet) are left out.
func ReadWorkbook(path string, skip ...string) (*models.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := &models.Workbook{BookName: filepath.Base(path)}
	for _, sheetName := range f.GetSheetList() {
		if slices.Contains(skip, sheetName) {
			continue
		}
		t, err := ReadTable(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		wb.Tables = append(wb.Tables, t)
	}

	return wb, nil
}

// ReadTable extracts the table of a sheet. The first non-empty row is the
// header; columns left of the first non-empty column are dropped.
// An empty sheet yields a table with no header.
func ReadTable(f *excelize.File, sheetName string) (models.Table, error) {
	t := models.Table{Name: sheetName}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return t, err
	}

	b, ok := findDataBounds(rows)
	if !ok {
		return t, nil
	}

	width := b.maxCol - b.minCol + 1
	t.Header = sliceRow(rows[b.minRow], b.minCol, width)
	for _, row := range rows[b.minRow+1 : b.maxRow+1] {
		t.Rows = append(t.Rows, sliceRow(row, b.minCol, width))
	}

	return t, nil
}

// sliceRow returns width cells of row starting at from, padding short rows
// with empty strings.
func sliceRow(row []string, from, width int) []string {
	out := make([]string, width)
	for i := range out {
		if idx := from + i; idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}
