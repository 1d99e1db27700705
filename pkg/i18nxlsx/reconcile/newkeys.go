package reconcile

import (
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/keypath"
	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
)

// KeyIndex records, per sheet group, the key paths of an old baseline.
// Paths are unioned across all languages: a path is known if any language had it.
type KeyIndex struct {
	groups map[string]map[string]struct{}
}

// NewKeyIndex builds the index from the old snapshot. A nil or empty
// snapshot yields an index under which every key is new.
func NewKeyIndex(old models.Snapshot) *KeyIndex {
	ix := &KeyIndex{groups: make(map[string]map[string]struct{})}
	for _, tree := range old {
		for group, value := range tree {
			paths, ok := ix.groups[group]
			if !ok {
				paths = make(map[string]struct{})
				ix.groups[group] = paths
			}
			for path := range keypath.FlattenGroup(group, value) {
				paths[path] = struct{}{}
			}
		}
	}
	return ix
}

// IsNew reports whether path is absent from the baseline for group.
func (ix *KeyIndex) IsNew(group, path string) bool {
	if ix == nil {
		return true
	}
	_, known := ix.groups[group][path]
	return !known
}

// Len returns the number of indexed paths across all groups.
func (ix *KeyIndex) Len() int {
	if ix == nil {
		return 0
	}
	n := 0
	for _, paths := range ix.groups {
		n += len(paths)
	}
	return n
}
