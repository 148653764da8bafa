package ops

import (
	"github.com/hpungsan/sift/internal/store"
)

// FileInfo is a listing entry for one ingested file.
type FileInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IngestedAt  int64  `json:"ingested_at"`
	SheetCount  int    `json:"sheet_count"`
	CellCount   int    `json:"cell_count"`
}

// FilesOutput contains the result of the Files operation.
type FilesOutput struct {
	Files []FileInfo `json:"files"`
	Total int        `json:"total"`
}

// Files lists every ingested file in ingestion order.
func Files(st *store.Store) *FilesOutput {
	out := &FilesOutput{Files: []FileInfo{}}
	for _, f := range st.Files() {
		out.Files = append(out.Files, FileInfo{
			ID:          f.ID,
			DisplayName: f.DisplayName,
			IngestedAt:  f.IngestedAt,
			SheetCount:  len(f.Sheets),
			CellCount:   f.CellCount(),
		})
	}
	out.Total = len(out.Files)
	return out
}
