package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/db"
	"github.com/hpungsan/sift/internal/ops"
	"github.com/hpungsan/sift/internal/store"
)

// testServer builds a server over a temp database with one ingested file.
func testServer(t *testing.T) (*http.Server, *store.Store, string) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	st := store.New()
	cfg := config.DefaultConfig()

	fileID := ingestFixture(t, database, st, cfg)
	srv := NewServer(database, st, cfg, "test", "127.0.0.1", 0)
	return srv, st, fileID
}

func ingestFixture(t *testing.T, database *sql.DB, st *store.Store, cfg *config.Config) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "Suppliers"); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	for addr, v := range map[string]any{
		"A1": "Gamma Corporation",
		"A2": "Delta Sdn Bhd",
		"B1": 2500000,
	} {
		if err := f.SetCellValue("Suppliers", addr, v); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "suppliers.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	out, err := ops.Ingest(context.Background(), database, st, cfg, ops.IngestInput{Path: path})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	return out.FileID
}

func get(t *testing.T, srv *http.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleFiles(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := get(t, srv, "/files")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "suppliers.xlsx") {
		t.Errorf("body missing file name:\n%s", rec.Body.String())
	}
}

func TestRootRedirects(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := get(t, srv, "/")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/files" {
		t.Errorf("Location = %q, want /files", loc)
	}
}

func TestHandleSheets(t *testing.T) {
	srv, _, fileID := testServer(t)

	rec := get(t, srv, "/files/"+fileID+"/sheets")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Suppliers") {
		t.Errorf("body missing sheet name:\n%s", rec.Body.String())
	}
}

func TestHandleSheets_UnknownFile(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := get(t, srv, "/files/01NOSUCHFILEAAAAAAAAAAAAAA/sheets")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleSheets_UnknownFile_JSON(t *testing.T) {
	srv, _, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/files/01NOSUCHFILEAAAAAAAAAAAAAA/sheets", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if payload.Error.Code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", payload.Error.Code)
	}
}

func TestHandleQuery_Form(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := get(t, srv, "/query")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<form") {
		t.Error("body missing query form")
	}
}

func TestHandleQuery_Results(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := get(t, srv, "/query?q=list+the+suppliers")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "entity_search") {
		t.Errorf("body missing intent score:\n%s", body)
	}
	if !strings.Contains(body, "Gamma Corporation") {
		t.Errorf("body missing matched cell:\n%s", body)
	}
}

func TestHandleRemove(t *testing.T) {
	srv, st, fileID := testServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/files/"+fileID, nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if st.Has(fileID) {
		t.Error("file still in store after remove")
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := get(t, srv, "/files")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options header")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options header")
	}
}
