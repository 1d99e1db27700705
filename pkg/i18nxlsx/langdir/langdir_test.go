package langdir

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/keypath"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
)

const fixtureRoot = "testdata/snapshot"

func TestScan(t *testing.T) {
	t.Parallel()

	langs, err := Scan(fixtureRoot)
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "en", "ja"}, langs.Codes())
}

func TestScanMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Scan(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	langs := models.NewLanguageSet("broken", "en", "ja", "fr")
	snap, failures := Load(fixtureRoot, langs, nil)

	require.Len(t, failures, 1)
	assert.Equal(t, "broken", failures[0].Language)
	assert.NotContains(t, snap, "broken")
	assert.NotContains(t, snap, "fr")

	en := snap["en"]
	require.NotNil(t, en)
	assert.Equal(t, "1", en["version"])
	assert.Equal(t, models.FlatMap{
		"normal.title":      "Hello",
		"normal.menu.open":  "Open",
		"normal.menu.close": "Close",
		"normal.count":      "3",
	}, keypath.FlattenGroup("normal", en["normal"]))
	assert.Equal(t, models.FlatMap{"errors.not_found": "Not found"},
		keypath.FlattenGroup("errors", en["errors"]))

	assert.Equal(t, models.FlatMap{
		"normal.title":     "こんにちは",
		"normal.menu.open": "開く",
	}, keypath.FlattenGroup("normal", snap["ja"]["normal"]))
}

func TestLoadLanguageNonStringKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "http:\n  404: Not found\n  500: Server error\ncodes:\n  - 1: one\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "errors.yaml"), []byte(content), 0644))

	tree, err := LoadLanguage(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, models.FlatMap{
		"errors.http.404": "Not found",
		"errors.http.500": "Server error",
		"errors.codes":    `{"1":"one"}`,
	}, keypath.Flatten(tree, ""))
}

func TestLoadErrorUnwrap(t *testing.T) {
	t.Parallel()

	_, failures := Load(fixtureRoot, models.NewLanguageSet("broken"), nil)
	require.Len(t, failures, 1)

	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, failures[0], &syntaxErr)
	assert.Contains(t, failures[0].Error(), `load language "broken"`)
}

func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()

	snap := models.Snapshot{
		"en": {
			"normal":  models.Tree{"title": "Hi & <bye>", "menu": models.Tree{"open": "Open"}},
			"version": "2",
			"a/b":     models.Tree{"k": "v"},
		},
		"ja": {"normal": models.Tree{"title": "やあ"}},
	}

	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			require.NoError(t, Write(root, snap, format))

			langs, err := Scan(root)
			require.NoError(t, err)
			assert.Equal(t, []string{"en", "ja"}, langs.Codes())

			got, failures := Load(root, langs, nil)
			require.Empty(t, failures)
			for lang, tree := range snap {
				assert.Equal(t, keypath.Flatten(tree, ""), keypath.Flatten(got[lang], ""), lang)
			}

			_, err = os.Stat(filepath.Join(root, "en", "normal"+format.Ext()))
			assert.NoError(t, err)
			_, err = os.Stat(filepath.Join(root, "en", IndexName+format.Ext()))
			assert.NoError(t, err)
		})
	}
}

func TestWriteJSONDoesNotEscapeHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	names, err := WriteLanguage(dir, models.Tree{"normal": models.Tree{"t": "<b>&</b>"}}, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"normal.json"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "normal.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"t\": \"<b>&</b>\"\n}\n", string(data))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"json", FormatJSON, true},
		{".yml", FormatYAML, true},
		{"YAML", FormatYAML, true},
		{"toml", FormatTOML, true},
		{"ts", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestSafeFileName(t *testing.T) {
	t.Parallel()

	assert.True(t, safeFileName("normal"))
	assert.False(t, safeFileName(""))
	assert.False(t, safeFileName("index"))
	assert.False(t, safeFileName(".hidden"))
	assert.False(t, safeFileName("a/b"))
}
