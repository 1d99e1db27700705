package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/reconcile"
)

func TestGroup(t *testing.T) {
	t.Parallel()

	snap := models.Snapshot{
		"en": {"normal": models.Tree{"title": "Hi", "body": "Text"}, "menu": models.Tree{"open": "Open"}},
		"ja": {"normal": models.Tree{"title": "やあ"}},
	}
	old := models.Snapshot{"ja": {"normal": models.Tree{"title": "古い"}}}
	langs := models.NewLanguageSet("en", "ja")

	grouped := Group(snap, langs, reconcile.NewKeyIndex(old))

	require.Len(t, grouped, 2)
	title := grouped["normal"]["normal.title"]
	require.NotNil(t, title)
	assert.False(t, title.IsNew)
	assert.Equal(t, map[string]string{"en": "Hi", "ja": "やあ"}, title.Translations)
	assert.True(t, grouped["normal"]["normal.body"].IsNew)
	assert.True(t, grouped["menu"]["menu.open"].IsNew)
}

func TestToRowsAndTabulate(t *testing.T) {
	t.Parallel()

	langs := models.NewLanguageSet("en", "ja")
	entries := Entries{
		"normal.title": {IsNew: true, Translations: map[string]string{"en": "Hi", "ja": "やあ"}},
		"normal.body":  {Translations: map[string]string{"en": "Text", "fr": "Texte"}},
	}

	rows := ToRows(entries, langs)
	require.Len(t, rows, 2)
	assert.Equal(t, models.Row{Key: "normal.body", Values: map[string]string{"en": "Text"}}, rows[0])
	assert.Equal(t, "normal.title", rows[1].Key)
	assert.True(t, rows[1].IsNew)

	tbl := Tabulate(models.Sheet{Group: "normal", Rows: rows}, langs, true)
	assert.Equal(t, "normal", tbl.Name)
	assert.Equal(t, []string{"key", "isNew", "en", "ja"}, tbl.Header)
	assert.Equal(t, [][]string{
		{"normal.body", "", "Text", ""},
		{"normal.title", "1", "Hi", "やあ"},
	}, tbl.Rows)

	plain := Tabulate(models.Sheet{Group: "normal", Rows: rows}, langs, false)
	assert.Equal(t, []string{"key", "en", "ja"}, plain.Header)
	assert.Equal(t, []string{"normal.body", "Text", ""}, plain.Rows[0])
}

func TestSheets(t *testing.T) {
	t.Parallel()

	langs := models.NewLanguageSet("en")
	sheets := Sheets(map[string]Entries{
		"zeta":  {"zeta.a": {Translations: map[string]string{"en": "z"}}},
		"alpha": {"alpha.a": {Translations: map[string]string{"en": "a"}}},
	}, langs)
	require.Len(t, sheets, 2)
	assert.Equal(t, "alpha", sheets[0].Group)
	assert.Equal(t, "zeta", sheets[1].Group)
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	tables := []models.Table{
		{Name: "Summary", Header: []string{"Sheet", "xx count"}},
		{Name: "a", Header: []string{"key", "isNew", "zh-CN", "en"}},
		{Name: "b", Header: []string{"key", "en", "", "fr"}},
	}
	langs := Languages(tables, "Summary")
	assert.Equal(t, []string{"zh-CN", "en", "fr"}, langs.Codes())
}

func TestFromRows(t *testing.T) {
	t.Parallel()

	langs := models.NewLanguageSet("en", "ja")

	t.Run("skips empty keys, empty values and unknown columns", func(t *testing.T) {
		t.Parallel()
		tbl := models.Table{
			Name:   "normal",
			Header: []string{"key", "isNew", "en", "notes", "ja"},
			Rows: [][]string{
				{"normal.title", "1", "Hi", "ignored", "やあ"},
				{"", "", "Orphan", "", "孤児"},
				{"normal.body", "", "Text"},
				{"normal.empty", "", "", "", ""},
			},
		}
		got := FromRows(tbl, langs)
		assert.Equal(t, map[string]models.FlatMap{
			"en": {"normal.title": "Hi", "normal.body": "Text"},
			"ja": {"normal.title": "やあ"},
		}, got)
	})

	t.Run("key column defaults to the first column", func(t *testing.T) {
		t.Parallel()
		tbl := models.Table{
			Header: []string{"path", "en"},
			Rows:   [][]string{{"a.b", "v"}},
		}
		assert.Equal(t, map[string]models.FlatMap{"en": {"a.b": "v"}}, FromRows(tbl, langs))
	})

	t.Run("rightmost duplicate language column wins", func(t *testing.T) {
		t.Parallel()
		tbl := models.Table{
			Header: []string{"key", "en", "ja", "en"},
			Rows: [][]string{
				{"a", "first", "", "second"},
				{"b", "only", "", ""},
			},
		}
		for range 20 {
			assert.Equal(t, map[string]models.FlatMap{
				"en": {"a": "second", "b": "only"},
			}, FromRows(tbl, langs))
		}
	})
}

func TestProjectionRoundTrip(t *testing.T) {
	t.Parallel()

	langs := models.NewLanguageSet("en", "ja")
	entries := Entries{
		"normal.title":     {Translations: map[string]string{"en": "Hi", "ja": "やあ"}},
		"normal.menu.open": {IsNew: true, Translations: map[string]string{"en": "Open"}},
	}

	for _, withFlag := range []bool{true, false} {
		tbl := Tabulate(models.Sheet{Group: "normal", Rows: ToRows(entries, langs)}, langs, withFlag)
		got := FromRows(tbl, langs)

		want := map[string]models.FlatMap{}
		for path, e := range entries {
			for lang, v := range e.Translations {
				if want[lang] == nil {
					want[lang] = models.FlatMap{}
				}
				want[lang][path] = v
			}
		}
		assert.Equal(t, want, got)
	}
}
