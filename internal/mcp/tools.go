package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var ingestToolDef = mcp.NewTool("sheet_ingest",
	mcp.WithDescription("Ingest an .xlsx workbook so its cells become queryable. Re-ingesting a file with the same name fails unless mode is 'replace'."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Filesystem path to the workbook"),
	),
	mcp.WithString("mode",
		mcp.Description("Collision behavior: 'error' (default) or 'replace'"),
		mcp.Enum("error", "replace"),
	),
)

var queryToolDef = mcp.NewTool("sheet_query",
	mcp.WithDescription("Answer a natural-language question about ingested spreadsheets with a token-budgeted context bundle of matching cells."),
	mcp.WithString("query_text",
		mcp.Required(),
		mcp.Description("The natural-language question"),
	),
	mcp.WithString("file_id",
		mcp.Description("Restrict retrieval to one ingested file"),
	),
	mcp.WithNumber("max_tokens",
		mcp.Description("Override the configured bundle token budget"),
	),
)

var listToolDef = mcp.NewTool("sheet_list",
	mcp.WithDescription("List sheet descriptors, optionally scoped to one file."),
	mcp.WithString("file_id",
		mcp.Description("Limit the listing to one ingested file"),
	),
)

var filesToolDef = mcp.NewTool("sheet_files",
	mcp.WithDescription("List every ingested file with sheet and cell counts."),
)

var removeToolDef = mcp.NewTool("sheet_remove",
	mcp.WithDescription("Remove an ingested file and all of its cells."),
	mcp.WithString("file_id",
		mcp.Required(),
		mcp.Description("ID of the file to remove"),
	),
)
