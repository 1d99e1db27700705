package langdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
)

// Write stores snap under root, one directory per language. Mapping groups
// with a usable file name get their own file; other groups are collected
// into the index file.
func Write(root string, snap models.Snapshot, format Format) error {
	langs := make([]string, 0, len(snap))
	for lang := range snap {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		if _, err := WriteLanguage(filepath.Join(root, lang), snap[lang], format); err != nil {
			return fmt.Errorf("write %s: %w", lang, err)
		}
	}
	return nil
}

// WriteLanguage writes one language tree into dir and returns the file
// names written.
func WriteLanguage(dir string, tree models.Tree, format Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var written []string
	index := make(models.Tree)
	for _, group := range tree.Groups() {
		value := tree[group]
		if !isMapping(value) || !safeFileName(group) {
			index[group] = value
			continue
		}
		name := group + format.Ext()
		if err := writeFile(filepath.Join(dir, name), format, value); err != nil {
			return written, err
		}
		written = append(written, name)
	}

	if len(index) > 0 {
		name := IndexName + format.Ext()
		if err := writeFile(filepath.Join(dir, name), format, index); err != nil {
			return written, err
		}
		written = append(written, name)
	}

	return written, nil
}

func writeFile(path string, format Format, v any) error {
	data, err := encode(format, v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, data, 0644)
}

func isMapping(v any) bool {
	switch v.(type) {
	case models.Tree, map[string]any:
		return true
	default:
		return false
	}
}

// safeFileName reports whether a group can be stored as its own file.
func safeFileName(group string) bool {
	if group == "" || group == IndexName || strings.HasPrefix(group, ".") {
		return false
	}
	return !strings.ContainsAny(group, `/\:*?"<>|`)
}
