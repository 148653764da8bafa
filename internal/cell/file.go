package cell

// Sheet describes one worksheet of an ingested file.
// Used to prioritize cheaper sheets during retrieval.
type Sheet struct {
	// FileID identifies the owning file (ULID)
	FileID string `json:"file_id"`

	// Name is the worksheet name as it appeared in the source file
	Name string `json:"name"`

	// Index is the 0-based position of the sheet within the file
	Index int `json:"index"`

	// RowCount is the number of rows that contain at least one cell
	RowCount int `json:"row_count"`

	// ColumnCount is the widest row's column count
	ColumnCount int `json:"column_count"`

	// CellCount is the number of non-empty cells ingested for this sheet
	CellCount int `json:"cell_count"`
}

// File describes an ingested spreadsheet file. A File owns its cells;
// re-ingesting the same file_id replaces the descriptor and cells atomically.
type File struct {
	// ID is a ULID that uniquely identifies this file
	ID string `json:"file_id"`

	// DisplayName is the human-readable file name (e.g. the original filename)
	DisplayName string `json:"display_name"`

	// IngestedAt is the Unix timestamp when the file was ingested
	IngestedAt int64 `json:"ingested_at"`

	// Sheets lists the file's worksheets in source order
	Sheets []Sheet `json:"sheets"`
}

// SheetNames returns the sheet names in source order.
func (f *File) SheetNames() []string {
	names := make([]string, len(f.Sheets))
	for i, s := range f.Sheets {
		names[i] = s.Name
	}
	return names
}

// CellCount returns the total cell count across all sheets.
func (f *File) CellCount() int {
	total := 0
	for _, s := range f.Sheets {
		total += s.CellCount
	}
	return total
}
