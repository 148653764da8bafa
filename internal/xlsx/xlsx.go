// Package xlsx reads .xlsx workbooks into the cell model.
package xlsx

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hpungsan/sift/internal/cell"
)

// Parse opens a workbook and extracts every non-empty cell from every
// sheet. Coordinates are 1-based; empty cells are skipped rather than
// materialized. The returned file descriptor carries per-sheet row,
// column, and cell counts derived from the occupied bounding box.
func Parse(path, fileID string) (*cell.File, []cell.Cell, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	file := &cell.File{
		ID:          fileID,
		DisplayName: filepath.Base(path),
		IngestedAt:  time.Now().Unix(),
	}

	var cells []cell.Cell
	for idx, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}

		sh := cell.Sheet{FileID: fileID, Name: sheetName, Index: idx}
		for rowIdx, row := range rows {
			for colIdx, value := range row {
				if strings.TrimSpace(value) == "" {
					continue
				}
				c := cell.New(fileID, sheetName, rowIdx+1, colIdx+1, value)
				cells = append(cells, c)
				sh.CellCount++
				if rowIdx+1 > sh.RowCount {
					sh.RowCount = rowIdx + 1
				}
				if colIdx+1 > sh.ColumnCount {
					sh.ColumnCount = colIdx + 1
				}
			}
		}
		file.Sheets = append(file.Sheets, sh)
	}

	return file, cells, nil
}
