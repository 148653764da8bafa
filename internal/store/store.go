// Package store holds ingested cell records in memory, organized by file
// and sheet. Ingestion replaces a file's descriptor and cells in one atomic
// swap; queries run lock-free over immutable snapshots, so a concurrent
// query sees either the prior version of a file or the new one, never a mix.
package store

import (
	"iter"
	"sort"
	"sync"

	"github.com/hpungsan/sift/internal/cell"
	"github.com/hpungsan/sift/internal/errors"
)

// Store is the in-memory cell store.
type Store struct {
	mu    sync.RWMutex
	files map[string]*entry
	order []string // file IDs in ingestion order
}

// entry is one file's immutable snapshot: descriptor plus row-major sorted
// cells per sheet. Entries are never mutated after insertion; replacement
// swaps in a fresh entry.
type entry struct {
	file   *cell.File
	sheets map[string][]cell.Cell
}

// New creates an empty Store.
func New() *Store {
	return &Store{files: make(map[string]*entry)}
}

// Ingest adds or atomically replaces a file and its cells.
// Cells are sorted into the canonical row-major order per sheet.
// Returns ErrDuplicateCell if two cells share (sheet, row, column), or
// ErrInvalidDescriptor if a cell references a sheet the descriptor does
// not declare. The existing store contents are untouched on failure.
func (s *Store) Ingest(f *cell.File, cells []cell.Cell) error {
	declared := make(map[string]bool, len(f.Sheets))
	for _, sh := range f.Sheets {
		declared[sh.Name] = true
	}

	sheets := make(map[string][]cell.Cell, len(f.Sheets))
	seen := make(map[[3]any]bool, len(cells))
	for _, c := range cells {
		if !declared[c.SheetName] {
			return errors.NewInvalidDescriptor(
				"cell references undeclared sheet: " + c.SheetName)
		}
		key := [3]any{c.SheetName, c.Row, c.Col}
		if seen[key] {
			return errors.NewDuplicateCell(c.SheetName, c.Row, c.Col)
		}
		seen[key] = true
		c.FileID = f.ID
		sheets[c.SheetName] = append(sheets[c.SheetName], c)
	}

	for name := range sheets {
		rows := sheets[name]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Row != rows[j].Row {
				return rows[i].Row < rows[j].Row
			}
			return rows[i].Col < rows[j].Col
		})
	}

	e := &entry{file: f, sheets: sheets}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.files[f.ID]; !exists {
		s.order = append(s.order, f.ID)
	}
	s.files[f.ID] = e
	return nil
}

// Remove drops a file and its cells. Returns false if the file is unknown.
func (s *Store) Remove(fileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[fileID]; !ok {
		return false
	}
	delete(s.files, fileID)
	for i, id := range s.order {
		if id == fileID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether a file is present.
func (s *Store) Has(fileID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[fileID]
	return ok
}

// File returns a file's descriptor, or nil if unknown.
func (s *Store) File(fileID string) *cell.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.files[fileID]; ok {
		return e.file
	}
	return nil
}

// Files returns all file descriptors in ingestion order.
func (s *Store) Files() []*cell.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make([]*cell.File, 0, len(s.order))
	for _, id := range s.order {
		files = append(files, s.files[id].file)
	}
	return files
}

// Sheets returns sheet descriptors. With a fileID it returns that file's
// sheets in source order; with an empty fileID it returns every file's
// sheets in ingestion order. Unknown file IDs yield an empty result, not
// an error.
func (s *Store) Sheets(fileID string) []cell.Sheet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sheets []cell.Sheet
	if fileID != "" {
		if e, ok := s.files[fileID]; ok {
			sheets = append(sheets, e.file.Sheets...)
		}
		return sheets
	}
	for _, id := range s.order {
		sheets = append(sheets, s.files[id].file.Sheets...)
	}
	return sheets
}

// FindCells returns a lazy sequence of cells matching pred, in the store's
// canonical row-major order per sheet. An empty fileID spans all files in
// ingestion order; an empty sheetName spans all of a file's sheets in
// source order. Unknown names yield an empty sequence, never an error.
func (s *Store) FindCells(fileID, sheetName string, pred Predicate) iter.Seq[cell.Cell] {
	// Snapshot the immutable slices under the read lock; iteration then
	// proceeds without holding it.
	s.mu.RLock()
	var runs [][]cell.Cell
	appendEntry := func(e *entry) {
		if sheetName != "" {
			if cells, ok := e.sheets[sheetName]; ok {
				runs = append(runs, cells)
			}
			return
		}
		for _, sh := range e.file.Sheets {
			if cells, ok := e.sheets[sh.Name]; ok {
				runs = append(runs, cells)
			}
		}
	}
	if fileID != "" {
		if e, ok := s.files[fileID]; ok {
			appendEntry(e)
		}
	} else {
		for _, id := range s.order {
			appendEntry(s.files[id])
		}
	}
	s.mu.RUnlock()

	return func(yield func(cell.Cell) bool) {
		for _, run := range runs {
			for _, c := range run {
				if pred != nil && !pred(&c) {
					continue
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}
