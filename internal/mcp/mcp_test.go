package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xuri/excelize/v2"

	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/db"
	"github.com/hpungsan/sift/internal/store"
)

// testSetup creates a temporary database, store, and config for testing.
func testSetup(t *testing.T) (*sql.DB, *store.Store, *config.Config) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database, store.New(), config.DefaultConfig()
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// writeWorkbook creates a one-sheet xlsx and returns its path.
func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Vendors"); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	for addr, v := range map[string]any{
		"A1": "Alpha Holdings Bhd",
		"A2": "Beta Construction Sdn Bhd",
		"B1": 1500000,
	} {
		if err := f.SetCellValue("Vendors", addr, v); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "vendors.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

// resultText extracts the text payload from a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func ingestWorkbook(t *testing.T, h *Handlers) string {
	t.Helper()
	res, err := h.HandleIngest(context.Background(), makeRequest(map[string]any{
		"path": writeWorkbook(t),
	}))
	if err != nil {
		t.Fatalf("HandleIngest() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("HandleIngest() tool error: %s", resultText(t, res))
	}
	var out struct {
		FileID string `json:"file_id"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("unmarshal ingest result: %v", err)
	}
	return out.FileID
}

func TestHandleIngest(t *testing.T) {
	database, st, cfg := testSetup(t)
	h := NewHandlers(database, st, cfg)

	fileID := ingestWorkbook(t, h)
	if !st.Has(fileID) {
		t.Error("ingested file not in store")
	}
}

func TestHandleIngest_MissingPath(t *testing.T) {
	database, st, cfg := testSetup(t)
	h := NewHandlers(database, st, cfg)

	res, err := h.HandleIngest(context.Background(), makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("HandleIngest() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("IsError = false, want true")
	}
	if !strings.Contains(resultText(t, res), "INVALID_REQUEST") {
		t.Errorf("result = %s, want INVALID_REQUEST", resultText(t, res))
	}
}

func TestHandleQuery(t *testing.T) {
	database, st, cfg := testSetup(t)
	h := NewHandlers(database, st, cfg)
	ingestWorkbook(t, h)

	res, err := h.HandleQuery(context.Background(), makeRequest(map[string]any{
		"query_text": "list the vendors",
	}))
	if err != nil {
		t.Fatalf("HandleQuery() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	text := resultText(t, res)
	if !strings.Contains(text, "entity_search") {
		t.Errorf("result missing intent scores: %s", text)
	}
	if !strings.Contains(text, "Alpha Holdings Bhd") {
		t.Errorf("result missing entity cell: %s", text)
	}
}

func TestHandleQuery_EmptyText(t *testing.T) {
	database, st, cfg := testSetup(t)
	h := NewHandlers(database, st, cfg)

	res, err := h.HandleQuery(context.Background(), makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("HandleQuery() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("IsError = false, want true")
	}
}

func TestHandleList(t *testing.T) {
	database, st, cfg := testSetup(t)
	h := NewHandlers(database, st, cfg)
	ingestWorkbook(t, h)

	res, err := h.HandleList(context.Background(), makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("HandleList() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), "Vendors") {
		t.Errorf("result missing sheet: %s", resultText(t, res))
	}
}

func TestHandleList_UnknownFile(t *testing.T) {
	database, st, cfg := testSetup(t)
	h := NewHandlers(database, st, cfg)

	res, err := h.HandleList(context.Background(), makeRequest(map[string]any{
		"file_id": "01NOSUCHFILEAAAAAAAAAAAAAA",
	}))
	if err != nil {
		t.Fatalf("HandleList() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("IsError = false, want true")
	}
	if !strings.Contains(resultText(t, res), "NOT_FOUND") {
		t.Errorf("result = %s, want NOT_FOUND", resultText(t, res))
	}
}

func TestHandleFiles(t *testing.T) {
	database, st, cfg := testSetup(t)
	h := NewHandlers(database, st, cfg)
	ingestWorkbook(t, h)

	res, err := h.HandleFiles(context.Background(), makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("HandleFiles() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), "vendors.xlsx") {
		t.Errorf("result missing file: %s", resultText(t, res))
	}
}

func TestHandleRemove(t *testing.T) {
	database, st, cfg := testSetup(t)
	h := NewHandlers(database, st, cfg)
	fileID := ingestWorkbook(t, h)

	res, err := h.HandleRemove(context.Background(), makeRequest(map[string]any{
		"file_id": fileID,
	}))
	if err != nil {
		t.Fatalf("HandleRemove() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if st.Has(fileID) {
		t.Error("file still in store after remove")
	}
}

func TestNewServer_DisabledTools(t *testing.T) {
	database, st, cfg := testSetup(t)
	cfg.DisabledTools = []string{"sheet_remove"}

	s := NewServer(database, st, cfg, "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"sheet_query", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("unknown = %v, want [bogus_tool]", unknown)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != 5 {
		t.Errorf("len(names) = %d, want 5", len(names))
	}
}
