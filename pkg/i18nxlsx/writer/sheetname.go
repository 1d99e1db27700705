package writer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxSheetNameLength is the longest sheet name Excel accepts.
const MaxSheetNameLength = 31

var invalidSheetChars = strings.NewReplacer(
	`\`, "_", "*", "_", "?", "_", ":", "_", "/", "_", "[", "_", "]", "_",
)

// SanitizeSheetName maps a sheet group to a name Excel accepts.
func SanitizeSheetName(name string) string {
	name = truncate(invalidSheetChars.Replace(name), MaxSheetNameLength)
	if strings.HasPrefix(name, "'") {
		name = "_" + name[1:]
	}
	if strings.HasSuffix(name, "'") {
		name = name[:len(name)-1] + "_"
	}
	if name == "" {
		name = "Sheet"
	}
	return name
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// nameAllocator hands out sheet names that are unique ignoring case.
type nameAllocator struct {
	used map[string]struct{}
}

func newNameAllocator(reserved ...string) *nameAllocator {
	a := &nameAllocator{used: make(map[string]struct{})}
	for _, r := range reserved {
		a.used[strings.ToLower(r)] = struct{}{}
	}
	return a
}

func (a *nameAllocator) allocate(group string) string {
	base := SanitizeSheetName(group)
	name := base
	for i := 2; a.taken(name); i++ {
		suffix := "_" + strconv.Itoa(i)
		name = truncate(base, MaxSheetNameLength-len(suffix)) + suffix
	}
	a.used[strings.ToLower(name)] = struct{}{}
	return name
}

func (a *nameAllocator) taken(name string) bool {
	_, ok := a.used[strings.ToLower(name)]
	return ok
}

// quoteSheet quotes a sheet name for use in a formula reference.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
