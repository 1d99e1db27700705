// Package reconcile merges translation snapshots and tracks new keys.
package reconcile

import (
	"sort"
	"time"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/keypath"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
)

// Result is the outcome of merging two snapshots.
type Result struct {
	// Merged holds one merged tree per language of the new snapshot.
	Merged models.Snapshot
	// Log lists the conflicts found, in language then path order.
	Log ConflictLog
	// DroppedLanguages lists export languages absent from the new snapshot.
	// Their content is not carried into Merged.
	DroppedLanguages []string
}

// Merge reconciles newSnap with exportSnap for every language in langs.
// Languages are taken from the new side only; a language missing from
// exportSnap merges against an empty tree.
func Merge(newSnap, exportSnap models.Snapshot, langs models.LanguageSet, now time.Time) Result {
	res := Result{
		Merged: make(models.Snapshot, langs.Len()),
		Log:    ConflictLog{StartedAt: now},
	}

	for _, lang := range langs.Codes() {
		newTree, ok := newSnap[lang]
		if !ok {
			continue
		}
		merged, conflicts := MergeTree(lang, newTree, exportSnap[lang])
		res.Merged[lang] = merged
		res.Log.Records = append(res.Log.Records, conflicts...)
	}

	for _, lang := range sortedKeys(exportSnap) {
		if _, ok := res.Merged[lang]; !ok {
			res.DroppedLanguages = append(res.DroppedLanguages, lang)
		}
	}

	return res
}

// MergeTree merges one language. Every sheet group of newTree is flattened,
// overlaid with the same group from exportTree, and rebuilt. Export values
// always win; a differing value is recorded as a Conflict. Groups present
// only in exportTree are not carried over.
func MergeTree(lang string, newTree, exportTree models.Tree) (models.Tree, []models.Conflict) {
	merged := make(models.Tree, len(newTree))
	var conflicts []models.Conflict

	for _, group := range newTree.Groups() {
		base := keypath.FlattenGroup(group, newTree[group])
		var incoming models.FlatMap
		if v, ok := exportTree[group]; ok {
			incoming = keypath.FlattenGroup(group, v)
		}

		out, groupConflicts := mergeFlat(lang, group, base, incoming)
		conflicts = append(conflicts, groupConflicts...)

		rebuilt := keypath.Unflatten(out)
		if v, ok := rebuilt[group]; ok {
			merged[group] = v
		} else {
			merged[group] = models.Tree{}
		}
	}

	return merged, conflicts
}

func mergeFlat(lang, group string, base, incoming models.FlatMap) (models.FlatMap, []models.Conflict) {
	out := base.Clone()
	var conflicts []models.Conflict

	for _, path := range incoming.Paths() {
		value := incoming[path]
		if current, ok := out[path]; ok && current != value {
			conflicts = append(conflicts, models.Conflict{
				Language:    lang,
				Group:       group,
				Path:        path,
				NewValue:    current,
				ExportValue: value,
			})
		}
		out[path] = value
	}

	return out, conflicts
}

func sortedKeys(snap models.Snapshot) []string {
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
