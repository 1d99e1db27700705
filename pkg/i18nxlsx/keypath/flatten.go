// Package keypath converts nested translation trees to dot-path maps and back.
package keypath

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
)

// Separator joins the segments of a key path.
const Separator = "."

// Flatten converts a nested tree into a FlatMap.
// Nested mappings are descended into; every other value, arrays included,
// is stored as a leaf under its joined path.
func Flatten(tree models.Tree, prefix string) models.FlatMap {
	result := make(models.FlatMap)
	flattenInto(result, map[string]any(tree), prefix)
	return result
}

// FlattenGroup flattens one sheet group using the group name as prefix.
// A scalar group value yields a single entry keyed by the group.
func FlattenGroup(group string, value any) models.FlatMap {
	return Flatten(models.Tree{group: value}, "")
}

func flattenInto(dst models.FlatMap, node map[string]any, prefix string) {
	for key, value := range node {
		fullKey := Join(prefix, key)
		if nested, ok := asMapping(value); ok {
			flattenInto(dst, nested, fullKey)
			continue
		}
		dst[fullKey] = Stringify(value)
	}
}

// Join appends key to prefix with the path separator.
func Join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + Separator + key
}

// asMapping reports whether v is a nested mapping and returns it.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case models.Tree:
		return m, true
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	case map[any]any:
		// yaml.v3 decodes mappings with non-string keys (404: ...) this way.
		out := make(map[string]any, len(m))
		for k, el := range m {
			out[Stringify(k)] = el
		}
		return out, true
	default:
		return nil, false
	}
}

// Stringify renders a leaf value the way it appears in a workbook cell.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case json.Number:
		return x.String()
	case []any:
		parts := make([]string, len(x))
		for i, el := range x {
			parts[i] = stringifyElement(el)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(x, ",")
	default:
		return fmt.Sprintf("%v", x)
	}
}

func stringifyElement(v any) string {
	if m, ok := asMapping(v); ok {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Sprintf("%v", m)
		}
		return string(data)
	}
	return Stringify(v)
}

// Unflatten rebuilds a nested tree from a FlatMap.
//
// Paths are applied in sorted order. When a scalar and a nested mapping
// compete for the same node (both "a" and "a.b" present), the mapping wins
// and the scalar is dropped; Overlaps lists the dropped paths.
func Unflatten(flat models.FlatMap) models.Tree {
	root := make(models.Tree)
	for _, path := range flat.Paths() {
		set(root, strings.Split(path, Separator), flat[path])
	}
	return root
}

func set(node models.Tree, segments []string, value string) {
	for _, seg := range segments[:len(segments)-1] {
		child, ok := node[seg].(models.Tree)
		if !ok {
			child = make(models.Tree)
			node[seg] = child
		}
		node = child
	}
	last := segments[len(segments)-1]
	if _, isMap := node[last].(models.Tree); isMap {
		return
	}
	node[last] = value
}

// Overlaps returns, in sorted order, the paths whose scalar value would be
// shadowed by a deeper path during Unflatten.
func Overlaps(flat models.FlatMap) []string {
	prefixes := make(map[string]struct{})
	for path := range flat {
		for i := strings.LastIndex(path, Separator); i >= 0; i = strings.LastIndex(path[:i], Separator) {
			prefixes[path[:i]] = struct{}{}
		}
	}
	var shadowed []string
	for path := range flat {
		if _, ok := prefixes[path]; ok {
			shadowed = append(shadowed, path)
		}
	}
	sort.Strings(shadowed)
	return shadowed
}
