package ops

import (
	"context"

	"github.com/hpungsan/sift/internal/bundle"
	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/errors"
	"github.com/hpungsan/sift/internal/intent"
	"github.com/hpungsan/sift/internal/plan"
	"github.com/hpungsan/sift/internal/store"
)

// QueryInput contains parameters for the Query operation.
type QueryInput struct {
	QueryText string // empty text degrades to a general overview
	FileID    string // optional: restrict retrieval to one file
	MaxTokens int    // optional: override the configured bundle budget
}

// QueryOutput contains the result of the Query operation.
type QueryOutput struct {
	Scores   intent.Scores  `json:"intent_scores"`
	Filters  intent.Filters `json:"filters"`
	Bundle   bundle.Bundle  `json:"bundle"`
	Markdown string         `json:"markdown"`
}

// Query analyzes a natural-language question against the ingested
// workbooks and assembles a budgeted context bundle. Any query text
// succeeds, including empty text, which degrades to a general
// overview; a query that matches nothing returns an empty bundle.
func Query(ctx context.Context, st *store.Store, cfg *config.Config, input QueryInput) (*QueryOutput, error) {
	if input.FileID != "" && !st.Has(input.FileID) {
		return nil, errors.NewNotFound(input.FileID)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelled("query")
	}

	var knownSheets []string
	var filesConsidered []string
	if input.FileID != "" {
		filesConsidered = []string{input.FileID}
	} else {
		for _, f := range st.Files() {
			filesConsidered = append(filesConsidered, f.ID)
		}
	}
	for _, sh := range st.Sheets(input.FileID) {
		knownSheets = append(knownSheets, sh.Name)
	}

	scores, filters := intent.Analyze(input.QueryText, knownSheets)

	results := plan.Plan(scores, filters, st, plan.Params{
		FileID:              input.FileID,
		MaxItemsPerCategory: cfg.MaxItemsPerCategory,
	})

	budget := bundle.Budget{
		MaxTokens:     cfg.BundleTokenBudget,
		CharsPerToken: cfg.BundleCharsPerToken,
	}
	if input.MaxTokens > 0 {
		budget.MaxTokens = input.MaxTokens
	}

	b := bundle.Assemble(results, budget, filesConsidered)

	return &QueryOutput{
		Scores:   scores,
		Filters:  filters,
		Bundle:   b,
		Markdown: bundle.Markdown(b),
	}, nil
}
