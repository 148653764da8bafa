package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/errors"
	"github.com/hpungsan/sift/internal/ops"
	"github.com/hpungsan/sift/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db    *sql.DB
	store *store.Store
	cfg   *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, st *store.Store, cfg *config.Config) *Handlers {
	return &Handlers{db: db, store: st, cfg: cfg}
}

// Request types for each tool

// IngestRequest represents the arguments for sheet_ingest.
type IngestRequest struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
}

// QueryRequest represents the arguments for sheet_query.
type QueryRequest struct {
	QueryText string `json:"query_text"`
	FileID    string `json:"file_id,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

// ListRequest represents the arguments for sheet_list.
type ListRequest struct {
	FileID string `json:"file_id,omitempty"`
}

// RemoveRequest represents the arguments for sheet_remove.
type RemoveRequest struct {
	FileID string `json:"file_id"`
}

// HandleIngest handles the sheet_ingest tool.
func (h *Handlers) HandleIngest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IngestRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	mode := ops.IngestModeError
	if input.Mode == "replace" {
		mode = ops.IngestModeReplace
	}

	result, err := ops.Ingest(ctx, h.db, h.store, h.cfg, ops.IngestInput{
		Path: input.Path,
		Mode: mode,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleQuery handles the sheet_query tool.
func (h *Handlers) HandleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[QueryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Query(ctx, h.store, h.cfg, ops.QueryInput{
		QueryText: input.QueryText,
		FileID:    input.FileID,
		MaxTokens: input.MaxTokens,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleList handles the sheet_list tool.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Sheets(h.store, ops.SheetsInput{FileID: input.FileID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFiles handles the sheet_files tool.
func (h *Handlers) HandleFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.Files(h.store))
}

// HandleRemove handles the sheet_remove tool.
func (h *Handlers) HandleRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RemoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Remove(h.db, h.store, ops.RemoveInput{FileID: input.FileID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult creates an MCP error result from an error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if siftErr, ok := err.(*errors.SiftError); ok {
		errorObj := map[string]any{
			"code":    siftErr.Code,
			"message": siftErr.Message,
			"status":  siftErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if siftErr.Code != errors.ErrInternal && siftErr.Details != nil {
			errorObj["details"] = siftErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
