package ops

import (
	"github.com/hpungsan/sift/internal/cell"
	"github.com/hpungsan/sift/internal/errors"
	"github.com/hpungsan/sift/internal/store"
)

// SheetsInput contains parameters for the Sheets operation.
type SheetsInput struct {
	FileID string // optional: empty lists sheets across all files
}

// SheetsOutput contains the result of the Sheets operation.
type SheetsOutput struct {
	Sheets []cell.Sheet `json:"sheets"`
	Total  int          `json:"total"`
}

// Sheets lists sheet descriptors, optionally scoped to one file.
func Sheets(st *store.Store, input SheetsInput) (*SheetsOutput, error) {
	if input.FileID != "" && !st.Has(input.FileID) {
		return nil, errors.NewNotFound(input.FileID)
	}
	sheets := st.Sheets(input.FileID)
	if sheets == nil {
		sheets = []cell.Sheet{}
	}
	return &SheetsOutput{Sheets: sheets, Total: len(sheets)}, nil
}
