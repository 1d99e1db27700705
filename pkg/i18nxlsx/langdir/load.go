package langdir

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ukaji3/i18nxlsx-go/internal/logger"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
)

// Scan lists the language directories under root in directory order.
// A language directory is any non-hidden directory holding at least one
// supported translation file.
func Scan(root string) (models.LanguageSet, error) {
	var langs models.LanguageSet

	entries, err := os.ReadDir(root)
	if err != nil {
		return langs, fmt.Errorf("scan %s: %w", root, err)
	}

	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files, err := translationFiles(filepath.Join(root, e.Name()))
		if err != nil {
			return langs, fmt.Errorf("scan %s: %w", e.Name(), err)
		}
		if len(files) > 0 {
			langs.Add(e.Name())
		}
	}

	return langs, nil
}

// Exists reports whether root is an existing directory.
func Exists(root string) bool {
	info, err := os.Stat(root)
	return err == nil && info.IsDir()
}

// Load reads the tree of every language in langs. A language whose files
// fail to load is skipped, logged, and reported in the returned errors.
// Languages without a directory under root are absent from the snapshot.
func Load(root string, langs models.LanguageSet, log *slog.Logger) (models.Snapshot, []*LoadError) {
	log = orDiscard(log)
	snap := make(models.Snapshot, langs.Len())
	var failures []*LoadError

	for _, lang := range langs.Codes() {
		dir := filepath.Join(root, lang)
		if !Exists(dir) {
			continue
		}
		tree, err := LoadLanguage(dir, log)
		if err != nil {
			le := &LoadError{Language: lang, Path: dir, Err: err}
			failures = append(failures, le)
			log.Warn("skipping language", slog.String("language", lang), slog.Any("error", le))
			continue
		}
		snap[lang] = tree
		log.Debug("language loaded",
			slog.String("language", lang),
			slog.String("dir", dir),
			slog.Int("groups", len(tree)))
	}

	return snap, failures
}

// LoadLanguage reads every translation file of one language directory.
// The index file is applied first so per-group files take precedence.
func LoadLanguage(dir string, log *slog.Logger) (models.Tree, error) {
	log = orDiscard(log)
	files, err := translationFiles(dir)
	if err != nil {
		return nil, err
	}

	tree := make(models.Tree)
	for _, name := range files {
		format, _ := formatOf(name)
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		content, err := decode(format, data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}

		group := strings.TrimSuffix(name, filepath.Ext(name))
		if group == IndexName {
			for k, v := range content {
				tree[k] = v
			}
			continue
		}
		if _, dup := tree[group]; dup {
			log.Warn("sheet group defined twice, later file wins",
				slog.String("dir", dir), slog.String("file", name))
		}
		tree[group] = content
	}

	return tree, nil
}

// translationFiles lists supported files of dir, index files first.
func translationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if _, ok := formatOf(e.Name()); ok {
			files = append(files, e.Name())
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		return isIndex(files[i]) && !isIndex(files[j])
	})
	return files, nil
}

func isIndex(name string) bool {
	return strings.TrimSuffix(name, filepath.Ext(name)) == IndexName
}

func orDiscard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return logger.NewNope()
	}
	return log
}
