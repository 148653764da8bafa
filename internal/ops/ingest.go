package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/db"
	"github.com/hpungsan/sift/internal/errors"
	"github.com/hpungsan/sift/internal/store"
	"github.com/hpungsan/sift/internal/xlsx"
)

// IngestMode controls collision behavior.
type IngestMode string

const (
	IngestModeError   IngestMode = "error"   // default: fail when the display name is already ingested
	IngestModeReplace IngestMode = "replace" // overwrite the existing file
)

// IngestInput contains parameters for the Ingest operation.
type IngestInput struct {
	Path string     // required: path to an .xlsx workbook
	Mode IngestMode // default: IngestModeError
}

// IngestOutput contains the result of the Ingest operation.
type IngestOutput struct {
	FileID      string `json:"file_id"`
	DisplayName string `json:"display_name"`
	SheetCount  int    `json:"sheet_count"`
	CellCount   int    `json:"cell_count"`
	Replaced    bool   `json:"replaced"`
}

// Ingest parses a workbook, persists it, and publishes it to the
// in-memory store. The database write happens first so a crash between
// the two steps loses nothing; the store swap is atomic either way.
func Ingest(ctx context.Context, database *sql.DB, st *store.Store, cfg *config.Config, input IngestInput) (*IngestOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = IngestModeError
	}
	if input.Mode != IngestModeError && input.Mode != IngestModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace")
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelled("ingest")
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	file, cells, err := xlsx.Parse(input.Path, id)
	if err != nil {
		return nil, errors.NewInvalidRequest("failed to parse workbook: " + err.Error())
	}

	if cfg.MaxIngestCells > 0 && len(cells) > cfg.MaxIngestCells {
		return nil, errors.NewFileTooLarge(cfg.MaxIngestCells, len(cells))
	}

	// Collision check by display name
	replaced := false
	var previousID string
	for _, existing := range st.Files() {
		if existing.DisplayName == file.DisplayName {
			if input.Mode == IngestModeError {
				return nil, errors.NewInvalidRequest("file " + file.DisplayName + " is already ingested (use mode:replace to overwrite)")
			}
			previousID = existing.ID
			replaced = true
			break
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelled("ingest")
	}

	if err := db.SaveFile(database, file, cells); err != nil {
		return nil, err
	}
	if err := st.Ingest(file, cells); err != nil {
		// Roll the durable copy back so disk and memory stay in step
		_, _ = db.DeleteFile(database, file.ID)
		return nil, err
	}

	if replaced && previousID != file.ID {
		if _, err := db.DeleteFile(database, previousID); err != nil {
			return nil, err
		}
		st.Remove(previousID)
	}

	return &IngestOutput{
		FileID:      file.ID,
		DisplayName: file.DisplayName,
		SheetCount:  len(file.Sheets),
		CellCount:   len(cells),
		Replaced:    replaced,
	}, nil
}
