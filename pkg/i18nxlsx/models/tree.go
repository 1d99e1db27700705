// Package models defines data structures for translation trees and workbooks.
package models

import "sort"

// Tree is a nested translation tree for a single language.
// Values are strings, nested Trees (or map[string]any), or opaque leaves
// such as numbers, booleans and arrays. Top-level keys are sheet groups.
type Tree map[string]any

// Groups returns the top-level keys of the tree in sorted order.
func (t Tree) Groups() []string {
	groups := make([]string, 0, len(t))
	for g := range t {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// FlatMap maps a dot-joined key path (e.g. "normal.title") to its value.
type FlatMap map[string]string

// Paths returns the key paths in sorted order.
func (m FlatMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Clone returns a shallow copy of the map.
func (m FlatMap) Clone() FlatMap {
	out := make(FlatMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Snapshot maps a language code to its translation tree.
type Snapshot map[string]Tree
