package models

// Table is the tabular content of one worksheet.
type Table struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Header is the header row.
	Header []string `json:"header"`
	// Rows contains the data rows below the header.
	Rows [][]string `json:"rows,omitempty"`
}

// Workbook represents workbook-level container with per-sheet tables.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Tables holds the sheets in workbook order.
	Tables []Table `json:"tables"`
}
