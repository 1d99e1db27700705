package models

import "fmt"

// Conflict records a key whose value differs between the new and export snapshots.
type Conflict struct {
	// Language is the language code the conflict was found in.
	Language string `json:"language"`
	// Group is the sheet group (top-level key) holding the path.
	Group string `json:"group"`
	// Path is the full dot path, including the group.
	Path string `json:"path"`
	// NewValue is the value from the new snapshot.
	NewValue string `json:"new_value"`
	// ExportValue is the value from the export snapshot. It wins the merge.
	ExportValue string `json:"export_value"`
}

// String renders the conflict as a single log line.
func (c Conflict) String() string {
	return fmt.Sprintf("[%s] %s | new=%q -> export=%q", c.Language, c.Path, c.NewValue, c.ExportValue)
}
