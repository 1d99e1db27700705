package models

const (
	// KeyColumn is the header of the key-path column.
	KeyColumn = "key"
	// NewFlagColumn is the header of the optional new-key flag column.
	NewFlagColumn = "isNew"
)

// Row is one translation key with its value per language.
type Row struct {
	// Key is the full dot path of the translation key.
	Key string `json:"key"`
	// IsNew marks keys absent from the old baseline.
	IsNew bool `json:"is_new"`
	// Values maps language code to value. Missing languages are absent.
	Values map[string]string `json:"values"`
}

// Sheet is the ordered set of rows for one sheet group.
type Sheet struct {
	// Group is the sheet group the rows belong to.
	Group string `json:"group"`
	// Rows contains one row per key path.
	Rows []Row `json:"rows"`
}
