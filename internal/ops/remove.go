package ops

import (
	"database/sql"

	"github.com/hpungsan/sift/internal/db"
	"github.com/hpungsan/sift/internal/errors"
	"github.com/hpungsan/sift/internal/store"
)

// RemoveInput contains parameters for the Remove operation.
type RemoveInput struct {
	FileID string // required
}

// RemoveOutput contains the result of the Remove operation.
type RemoveOutput struct {
	FileID  string `json:"file_id"`
	Removed bool   `json:"removed"`
}

// Remove deletes a file from both the database and the in-memory store.
func Remove(database *sql.DB, st *store.Store, input RemoveInput) (*RemoveOutput, error) {
	if input.FileID == "" {
		return nil, errors.NewInvalidRequest("file_id is required")
	}
	if !st.Has(input.FileID) {
		return nil, errors.NewNotFound(input.FileID)
	}
	if _, err := db.DeleteFile(database, input.FileID); err != nil {
		return nil, err
	}
	st.Remove(input.FileID)
	return &RemoveOutput{FileID: input.FileID, Removed: true}, nil
}
