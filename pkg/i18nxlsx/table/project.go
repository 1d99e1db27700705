// Package table projects flattened translations to worksheet rows and back.
package table

import (
	"slices"
	"sort"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/keypath"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/reconcile"
)

// FlagValue is written in the new-flag column for new keys.
const FlagValue = "1"

// Entry holds every translation of one key path.
type Entry struct {
	IsNew        bool
	Translations map[string]string
}

// Entries maps a full key path to its translations.
type Entries map[string]*Entry

// Group collects the translations of snap per sheet group. IsNew is
// decided against index when a path is first seen.
func Group(snap models.Snapshot, langs models.LanguageSet, index *reconcile.KeyIndex) map[string]Entries {
	grouped := make(map[string]Entries)

	for _, lang := range langs.Codes() {
		tree, ok := snap[lang]
		if !ok {
			continue
		}
		for _, group := range tree.Groups() {
			entries, ok := grouped[group]
			if !ok {
				entries = make(Entries)
				grouped[group] = entries
			}
			for path, value := range keypath.FlattenGroup(group, tree[group]) {
				e, ok := entries[path]
				if !ok {
					e = &Entry{
						IsNew:        index.IsNew(group, path),
						Translations: make(map[string]string),
					}
					entries[path] = e
				}
				e.Translations[lang] = value
			}
		}
	}

	return grouped
}

// ToRows returns one row per path, sorted by path. Languages outside langs
// are not copied.
func ToRows(entries Entries, langs models.LanguageSet) []models.Row {
	paths := make([]string, 0, len(entries))
	for p := range entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	rows := make([]models.Row, 0, len(paths))
	for _, p := range paths {
		e := entries[p]
		values := make(map[string]string, langs.Len())
		for _, lang := range langs.Codes() {
			if v, ok := e.Translations[lang]; ok {
				values[lang] = v
			}
		}
		rows = append(rows, models.Row{Key: p, IsNew: e.IsNew, Values: values})
	}
	return rows
}

// Sheets projects grouped entries into sheets ordered by group name.
func Sheets(grouped map[string]Entries, langs models.LanguageSet) []models.Sheet {
	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	sheets := make([]models.Sheet, 0, len(groups))
	for _, g := range groups {
		sheets = append(sheets, models.Sheet{Group: g, Rows: ToRows(grouped[g], langs)})
	}
	return sheets
}

// Header returns the column headers for a detail sheet.
func Header(langs models.LanguageSet, withFlag bool) []string {
	header := []string{models.KeyColumn}
	if withFlag {
		header = append(header, models.NewFlagColumn)
	}
	return append(header, langs.Codes()...)
}

// Tabulate renders rows as a table named after the sheet group.
func Tabulate(sheet models.Sheet, langs models.LanguageSet, withFlag bool) models.Table {
	t := models.Table{
		Name:   sheet.Group,
		Header: Header(langs, withFlag),
		Rows:   make([][]string, 0, len(sheet.Rows)),
	}
	for _, r := range sheet.Rows {
		cells := make([]string, 0, len(t.Header))
		cells = append(cells, r.Key)
		if withFlag {
			flag := ""
			if r.IsNew {
				flag = FlagValue
			}
			cells = append(cells, flag)
		}
		for _, lang := range langs.Codes() {
			cells = append(cells, r.Values[lang])
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// Languages collects the language columns of tables in first-seen order.
// Tables whose name is in skip are ignored.
func Languages(tables []models.Table, skip ...string) models.LanguageSet {
	var langs models.LanguageSet
	for _, t := range tables {
		if slices.Contains(skip, t.Name) {
			continue
		}
		for _, h := range t.Header {
			if isReserved(h) {
				continue
			}
			langs.Add(h)
		}
	}
	return langs
}

// FromRows parses a table back into one FlatMap per language.
// Rows without a key are skipped, as are empty cells and columns not
// named after a language in langs. When a language heads several columns,
// the rightmost non-empty cell wins.
func FromRows(t models.Table, langs models.LanguageSet) map[string]models.FlatMap {
	type column struct {
		index int
		lang  string
	}
	keyCol := 0
	for i, h := range t.Header {
		if h == models.KeyColumn {
			keyCol = i
			break
		}
	}
	var columns []column
	for i, h := range t.Header {
		if i != keyCol && h != models.KeyColumn && langs.Contains(h) {
			columns = append(columns, column{index: i, lang: h})
		}
	}

	result := make(map[string]models.FlatMap)
	for _, row := range t.Rows {
		if keyCol >= len(row) || row[keyCol] == "" {
			continue
		}
		key := row[keyCol]
		for _, c := range columns {
			if c.index >= len(row) || row[c.index] == "" {
				continue
			}
			flat, ok := result[c.lang]
			if !ok {
				flat = make(models.FlatMap)
				result[c.lang] = flat
			}
			flat[key] = row[c.index]
		}
	}
	return result
}

func isReserved(header string) bool {
	return header == "" || header == models.KeyColumn || header == models.NewFlagColumn
}
