package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func saveFixture(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	build(f)

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := saveFixture(t, func(f *excelize.File) {
		_, err := f.NewSheet("Summary")
		require.NoError(t, err)
		require.NoError(t, f.SetSheetName("Sheet1", "normal"))
		require.NoError(t, f.SetSheetRow("normal", "A1", &[]any{"key", "isNew", "en", "ja"}))
		require.NoError(t, f.SetSheetRow("normal", "A2", &[]any{"normal.title", "1", "Hi", "やあ"}))
		require.NoError(t, f.SetSheetRow("normal", "A3", &[]any{"normal.count", "", 3}))
	})

	wb, err := ReadWorkbook(path, "Summary")
	require.NoError(t, err)

	assert.Equal(t, "fixture.xlsx", wb.BookName)
	require.Len(t, wb.Tables, 1)
	tbl := wb.Tables[0]
	assert.Equal(t, "normal", tbl.Name)
	assert.Equal(t, []string{"key", "isNew", "en", "ja"}, tbl.Header)
	assert.Equal(t, [][]string{
		{"normal.title", "1", "Hi", "やあ"},
		{"normal.count", "", "3", ""},
	}, tbl.Rows)
}

func TestReadWorkbookMissingFile(t *testing.T) {
	_, err := ReadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
}

func TestReadTableOffset(t *testing.T) {
	path := saveFixture(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "B3", "key"))
		require.NoError(t, f.SetCellValue("Sheet1", "C3", "en"))
		require.NoError(t, f.SetCellValue("Sheet1", "B4", "a.b"))
		require.NoError(t, f.SetCellValue("Sheet1", "C5", "dangling"))
	})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	tbl, err := ReadTable(f, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"key", "en"}, tbl.Header)
	assert.Equal(t, [][]string{{"a.b", ""}, {"", "dangling"}}, tbl.Rows)
}

func TestReadTableEmpty(t *testing.T) {
	path := saveFixture(t, func(f *excelize.File) {})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	tbl, err := ReadTable(f, "Sheet1")
	require.NoError(t, err)
	assert.Empty(t, tbl.Header)
	assert.Empty(t, tbl.Rows)
}

func TestFindDataBounds(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want bounds
		ok   bool
	}{
		{"empty", nil, bounds{-1, -1, -1, -1}, false},
		{"blank cells", [][]string{{"", ""}}, bounds{-1, -1, -1, -1}, false},
		{"single", [][]string{{}, {"", "x"}}, bounds{1, 1, 1, 1}, true},
		{"ragged", [][]string{{"", "a"}, {"b", "", "c"}}, bounds{0, 1, 0, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findDataBounds(tt.rows)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
