package writer

import (
	"fmt"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
	"github.com/xuri/excelize/v2"
)

// SummaryHeader returns the header of the summary sheet.
func SummaryHeader(langs models.LanguageSet) []string {
	header := []string{"Sheet"}
	for _, lang := range langs.Codes() {
		header = append(header, lang+" count")
	}
	return header
}

// detailColumn returns the detail-sheet column letter holding lang index i.
func detailColumn(i int, newFlag bool) (string, error) {
	col := 2 + i
	if newFlag {
		col++
	}
	return excelize.ColumnNumberToName(col)
}

// CountFormula returns the formula counting the values of one language
// column in a detail sheet, excluding its header.
func CountFormula(sheet, column string) string {
	return fmt.Sprintf("COUNTA(%s!%s:%s)-1", quoteSheet(sheet), column, column)
}

func writeSummary(f *excelize.File, sheet string, details []detailSheet, langs models.LanguageSet, st styles, opts Options) error {
	header := SummaryHeader(langs)
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", st.header); err != nil {
		return err
	}

	for i, d := range details {
		rowNum := i + 2
		if err := f.SetCellStr(sheet, fmt.Sprintf("A%d", rowNum), d.name); err != nil {
			return err
		}
		for j := range langs.Codes() {
			src, err := detailColumn(j, opts.NewFlag)
			if err != nil {
				return err
			}
			cell, err := excelize.CoordinatesToCellName(j+2, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellFormula(sheet, cell, CountFormula(d.name, src)); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}
	if langs.Len() > 0 {
		if err := f.SetColWidth(sheet, "B", lastCol, 15); err != nil {
			return err
		}
	}

	if len(details) > 0 && langs.Len() > 1 {
		if err := highlightMismatches(f, sheet, lastCol, len(details)+1, st.mismatch); err != nil {
			return err
		}
	}

	return freezeHeader(f, sheet)
}

// MismatchRule returns the conditional-format formula that is true when the
// language counts of row 2 differ.
func MismatchRule(lastCol string) string {
	rng := fmt.Sprintf("$B2:$%s2", lastCol)
	return fmt.Sprintf("MAX(%s)<>MIN(%s)", rng, rng)
}

func highlightMismatches(f *excelize.File, sheet, lastCol string, lastRow, style int) error {
	ref := fmt.Sprintf("B2:%s%d", lastCol, lastRow)
	return f.SetConditionalFormat(sheet, ref, []excelize.ConditionalFormatOptions{{
		Type:     "formula",
		Criteria: MismatchRule(lastCol),
		Format:   &style,
	}})
}
