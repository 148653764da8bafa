package cell

// Kind classifies a cell's content.
type Kind string

const (
	KindText    Kind = "text"
	KindNumeric Kind = "numeric"
	KindEmpty   Kind = "empty"
)

// Cell represents one ingested spreadsheet cell.
// Cells are immutable once created; Address is derived from (Row, Col).
type Cell struct {
	// FileID identifies the owning file (ULID)
	FileID string `json:"file_id"`

	// SheetName is the worksheet the cell belongs to
	SheetName string `json:"sheet_name"`

	// Row is the 1-based row number
	Row int `json:"row"`

	// Col is the 1-based column number
	Col int `json:"col"`

	// Address is the A1-style display label derived from (Row, Col)
	Address string `json:"address"`

	// RawText is the cell content exactly as ingested
	RawText string `json:"raw_text"`

	// NormText is the lowercased, whitespace-collapsed form used for matching
	NormText string `json:"normalized_text"`

	// Numeric is the parsed numeric value, present only for KindNumeric
	Numeric *float64 `json:"numeric_value,omitempty"`

	// Kind is the content classification: text, numeric, or empty
	Kind Kind `json:"kind"`
}

// New builds a Cell from raw content, deriving Address, NormText, Numeric,
// and Kind. This is the one constructor ingestion paths should use so the
// derived fields stay consistent.
func New(fileID, sheetName string, row, col int, rawText string) Cell {
	c := Cell{
		FileID:    fileID,
		SheetName: sheetName,
		Row:       row,
		Col:       col,
		Address:   Address(row, col),
		RawText:   rawText,
		NormText:  Normalize(rawText),
	}
	switch {
	case c.NormText == "":
		c.Kind = KindEmpty
	default:
		if v, ok := ParseNumber(c.NormText); ok {
			c.Numeric = &v
			c.Kind = KindNumeric
		} else {
			c.Kind = KindText
		}
	}
	return c
}
