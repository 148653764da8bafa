// Package bundle serializes planner output into an ordered, size-bounded
// context bundle for the downstream language-model collaborator. Sizing
// uses a characters-per-token estimator with a configurable ratio, and
// items are only ever included whole.
package bundle

import (
	"github.com/hpungsan/sift/internal/cell"
	"github.com/hpungsan/sift/internal/intent"
	"github.com/hpungsan/sift/internal/plan"
)

// Default sizing: a 1500-token context cap at 4 characters per token.
const (
	DefaultMaxTokens     = 1500
	DefaultCharsPerToken = 4
)

// Budget bounds an assembled bundle.
type Budget struct {
	// MaxTokens is the hard token budget for the whole bundle.
	MaxTokens int

	// CharsPerToken is the estimator ratio: tokens = ceil(chars / ratio).
	CharsPerToken int
}

// DefaultBudget returns the default bundle budget.
func DefaultBudget() Budget {
	return Budget{MaxTokens: DefaultMaxTokens, CharsPerToken: DefaultCharsPerToken}
}

// EstimateTokens estimates the token cost of text as ceil(runes / ratio).
func (b Budget) EstimateTokens(text string) int {
	ratio := b.CharsPerToken
	if ratio <= 0 {
		ratio = DefaultCharsPerToken
	}
	chars := cell.CountChars(text)
	return (chars + ratio - 1) / ratio
}

// Section is one category's packed items within the bundle.
type Section struct {
	Category intent.Label `json:"category"`
	Sheet    string       `json:"sheet_name,omitempty"`
	Items    []plan.Item  `json:"items"`
	Matched  int          `json:"matched_count"`
	Returned int          `json:"returned_count"`
}

// Bundle is the final context package handed to the language-model
// collaborator. Truncated is true whenever the matches available across
// all sections exceed what the bundle carries.
type Bundle struct {
	Sections        []Section `json:"sections"`
	EstimatedTokens int       `json:"estimated_token_count"`
	Truncated       bool      `json:"truncated"`
	FilesConsidered []string  `json:"files_considered"`
}

// Assemble packs planner results into a bundle, walking them in planner
// order (highest-scoring intents first) and including whole items until
// the budget is exhausted. It never fails: an empty result set produces a
// bundle with zero sections and Truncated false.
func Assemble(results []plan.Result, budget Budget, filesConsidered []string) Bundle {
	if budget.MaxTokens <= 0 {
		budget.MaxTokens = DefaultMaxTokens
	}

	bundle := Bundle{FilesConsidered: filesConsidered}

	totalMatched := 0
	for _, r := range results {
		totalMatched += r.Matched
	}

	remaining := budget.MaxTokens
	returned := 0
	for _, r := range results {
		if remaining <= 0 {
			break
		}

		headerCost := budget.EstimateTokens(sectionHeader(r.Category, r.Sheet))
		if headerCost > remaining {
			break
		}

		section := Section{
			Category: r.Category,
			Sheet:    r.Sheet,
			Matched:  r.Matched,
		}
		cost := headerCost
		for _, item := range r.Items {
			itemCost := budget.EstimateTokens(itemLine(r.Sheet, item))
			if cost+itemCost > remaining {
				break
			}
			cost += itemCost
			section.Items = append(section.Items, item)
		}
		if len(section.Items) == 0 && len(r.Items) > 0 {
			// Not even one whole item fits; the budget is exhausted.
			break
		}

		section.Returned = len(section.Items)
		remaining -= cost
		returned += section.Returned
		bundle.Sections = append(bundle.Sections, section)

		if section.Returned < len(r.Items) {
			// Partial section: stop including further sections.
			break
		}
	}

	bundle.EstimatedTokens = budget.MaxTokens - remaining
	bundle.Truncated = returned < totalMatched
	return bundle
}

// sectionHeader is the display heading charged against the budget for a
// section.
func sectionHeader(category intent.Label, sheet string) string {
	if sheet == "" {
		return string(category)
	}
	return string(category) + " — " + sheet
}

// itemLine is the serialized display line charged against the budget for
// an item: cell items carry their address, summary items a list marker.
func itemLine(sheet string, item plan.Item) string {
	if sheet == "" {
		return "- " + item.Display + "\n"
	}
	return item.Address + ": " + item.Display + "\n"
}
