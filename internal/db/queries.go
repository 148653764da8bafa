package db

import (
	"database/sql"

	"github.com/hpungsan/sift/internal/cell"
	"github.com/hpungsan/sift/internal/errors"
)

// SaveFile persists a file, its sheet descriptors, and its cells in a
// single transaction. Any existing rows for the same file ID are
// replaced, so re-ingesting a file is an atomic swap on disk just as it
// is in memory. Only the raw cell text is stored; normalized text, the
// numeric value, and the kind are re-derived on load.
func SaveFile(db *sql.DB, f *cell.File, cells []cell.Cell) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM cells WHERE file_id = ?",
		"DELETE FROM sheets WHERE file_id = ?",
		"DELETE FROM files WHERE id = ?",
	} {
		if _, err := tx.Exec(stmt, f.ID); err != nil {
			return errors.NewInternal(err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO files (id, display_name, ingested_at) VALUES (?, ?, ?)",
		f.ID, f.DisplayName, f.IngestedAt,
	); err != nil {
		return errors.NewInternal(err)
	}

	sheetStmt, err := tx.Prepare(`
		INSERT INTO sheets (file_id, name, sheet_index, row_count, column_count, cell_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer sheetStmt.Close()

	for _, sh := range f.Sheets {
		if _, err := sheetStmt.Exec(f.ID, sh.Name, sh.Index, sh.RowCount, sh.ColumnCount, sh.CellCount); err != nil {
			return errors.NewInternal(err)
		}
	}

	cellStmt, err := tx.Prepare(`
		INSERT INTO cells (file_id, sheet_name, row, col, raw_text)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer cellStmt.Close()

	for i := range cells {
		c := &cells[i]
		if _, err := cellStmt.Exec(f.ID, c.SheetName, c.Row, c.Col, c.RawText); err != nil {
			return errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// LoadedFile pairs a file descriptor with its cells for store seeding.
type LoadedFile struct {
	File  *cell.File
	Cells []cell.Cell
}

// LoadFiles reads every persisted file back into memory, ordered by
// ingestion time then ID so startup reconstructs a stable store order.
func LoadFiles(db *sql.DB) ([]LoadedFile, error) {
	rows, err := db.Query("SELECT id, display_name, ingested_at FROM files ORDER BY ingested_at, id")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var loaded []LoadedFile
	for rows.Next() {
		var f cell.File
		if err := rows.Scan(&f.ID, &f.DisplayName, &f.IngestedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		loaded = append(loaded, LoadedFile{File: &f})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	for i := range loaded {
		f := loaded[i].File
		if f.Sheets, err = loadSheets(db, f.ID); err != nil {
			return nil, err
		}
		if loaded[i].Cells, err = loadCells(db, f.ID); err != nil {
			return nil, err
		}
	}
	return loaded, nil
}

func loadSheets(db *sql.DB, fileID string) ([]cell.Sheet, error) {
	rows, err := db.Query(`
		SELECT name, sheet_index, row_count, column_count, cell_count
		FROM sheets WHERE file_id = ? ORDER BY sheet_index
	`, fileID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var sheets []cell.Sheet
	for rows.Next() {
		sh := cell.Sheet{FileID: fileID}
		if err := rows.Scan(&sh.Name, &sh.Index, &sh.RowCount, &sh.ColumnCount, &sh.CellCount); err != nil {
			return nil, errors.NewInternal(err)
		}
		sheets = append(sheets, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return sheets, nil
}

func loadCells(db *sql.DB, fileID string) ([]cell.Cell, error) {
	rows, err := db.Query(`
		SELECT sheet_name, row, col, raw_text
		FROM cells WHERE file_id = ? ORDER BY sheet_name, row, col
	`, fileID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var cells []cell.Cell
	for rows.Next() {
		var sheetName, rawText string
		var row, col int
		if err := rows.Scan(&sheetName, &row, &col, &rawText); err != nil {
			return nil, errors.NewInternal(err)
		}
		cells = append(cells, cell.New(fileID, sheetName, row, col, rawText))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return cells, nil
}

// DeleteFile removes a file and its sheets and cells. Returns true if a
// file row was deleted.
func DeleteFile(db *sql.DB, fileID string) (bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM cells WHERE file_id = ?",
		"DELETE FROM sheets WHERE file_id = ?",
	} {
		if _, err := tx.Exec(stmt, fileID); err != nil {
			return false, errors.NewInternal(err)
		}
	}
	res, err := tx.Exec("DELETE FROM files WHERE id = ?", fileID)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	if err := tx.Commit(); err != nil {
		return false, errors.NewInternal(err)
	}
	return n > 0, nil
}
