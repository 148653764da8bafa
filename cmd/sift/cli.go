package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/errors"
	"github.com/hpungsan/sift/internal/ops"
	"github.com/hpungsan/sift/internal/store"
	"github.com/hpungsan/sift/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, st *store.Store, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "sift",
		Usage:   "Local spreadsheet context engine",
		Version: Version,
		Commands: []*cli.Command{
			ingestCmd(db, st, cfg),
			queryCmd(st, cfg),
			filesCmd(st),
			sheetsCmd(st),
			removeCmd(db, st),
			webCmd(db, st, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// ingestCmd creates the ingest command.
func ingestCmd(db *sql.DB, st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "ingest",
		Usage:     "Ingest an .xlsx workbook",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Collision mode: error|replace"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("path argument is required"))
			}

			output, err := ops.Ingest(c.Context, db, st, cfg, ops.IngestInput{
				Path: c.Args().First(),
				Mode: ops.IngestMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// queryCmd creates the query command.
func queryCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Ask a natural-language question about ingested spreadsheets",
		ArgsUsage: "<question>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Restrict to one file ID"},
			&cli.IntFlag{Name: "max-tokens", Usage: "Override the bundle token budget"},
			&cli.BoolFlag{Name: "markdown", Usage: "Print the bundle as markdown instead of JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("question argument is required"))
			}

			output, err := ops.Query(c.Context, st, cfg, ops.QueryInput{
				QueryText: c.Args().First(),
				FileID:    c.String("file"),
				MaxTokens: c.Int("max-tokens"),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("markdown") {
				fmt.Println(output.Markdown)
				return nil
			}
			return outputJSON(output)
		},
	}
}

// filesCmd creates the files command.
func filesCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "files",
		Usage: "List ingested files",
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Files(st))
		},
	}
}

// sheetsCmd creates the sheets command.
func sheetsCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "sheets",
		Usage: "List sheet descriptors",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Restrict to one file ID"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Sheets(st, ops.SheetsInput{FileID: c.String("file")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// removeCmd creates the remove command.
func removeCmd(db *sql.DB, st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove an ingested file",
		ArgsUsage: "<file-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("file-id argument is required"))
			}

			output, err := ops.Remove(db, st, ops.RemoveInput{FileID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// webCmd creates the web command.
func webCmd(db *sql.DB, st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8137, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, st, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// outputJSON prints indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if siftErr, ok := err.(*errors.SiftError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", siftErr.Code, siftErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
