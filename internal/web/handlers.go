package web

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/ops"
	"github.com/hpungsan/sift/internal/store"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	store    *store.Store
	cfg      *config.Config
	renderer *Renderer
}

// HandleFiles handles GET /files — list ingested files.
func (h *Handlers) HandleFiles(w http.ResponseWriter, r *http.Request) {
	result := ops.Files(h.store)

	h.renderer.renderPage(w, r, "files", FilesPageData{
		PageData: PageData{
			Title:   "Files",
			Version: h.renderer.version,
			Nav:     "files",
		},
		Files: result.Files,
		Total: result.Total,
	})
}

// HandleSheets handles GET /files/{id}/sheets — list one file's sheets.
func (h *Handlers) HandleSheets(w http.ResponseWriter, r *http.Request) {
	fileID := r.PathValue("id")

	result, err := ops.Sheets(h.store, ops.SheetsInput{FileID: fileID})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	rows := make([]SheetRow, 0, len(result.Sheets))
	for _, sh := range result.Sheets {
		rows = append(rows, SheetRow{
			Name:        sh.Name,
			RowCount:    sh.RowCount,
			ColumnCount: sh.ColumnCount,
			CellCount:   sh.CellCount,
		})
	}

	h.renderer.renderPage(w, r, "sheets", SheetsPageData{
		PageData: PageData{
			Title:   "Sheets",
			Version: h.renderer.version,
			Nav:     "files",
		},
		FileID: fileID,
		Sheets: rows,
	})
}

// HandleQuery handles GET /query — the query form and its results.
func (h *Handlers) HandleQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	fileID := r.URL.Query().Get("file_id")

	data := QueryPageData{
		PageData: PageData{
			Title:   "Query",
			Version: h.renderer.version,
			Nav:     "query",
		},
		Query:  query,
		FileID: fileID,
	}

	if query != "" {
		result, err := ops.Query(r.Context(), h.store, h.cfg, ops.QueryInput{
			QueryText: query,
			FileID:    fileID,
			MaxTokens: parseIntParam(r, "max_tokens", 0),
		})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		data.HasQuery = true
		data.Result = result
		data.RenderedHTML = renderMarkdown(result.Markdown)
	}

	h.renderer.renderPage(w, r, "query", data)
}

// HandleRemove handles DELETE /files/{id} — remove an ingested file.
func (h *Handlers) HandleRemove(w http.ResponseWriter, r *http.Request) {
	fileID := r.PathValue("id")

	result, err := ops.Remove(h.db, h.store, ops.RemoveInput{FileID: fileID})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// parseIntParam parses an integer query parameter with a default.
func parseIntParam(r *http.Request, name string, def int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return def
	}
	return v
}
