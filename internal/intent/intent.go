// Package intent scores free-text queries against a fixed set of intent
// categories and extracts structured filters. It is a fast, explainable
// scoring mechanism over curated cue vocabularies, not a learned model:
// every score is earned by cues present in the query itself, and a query
// with no recognizable cues degrades to a single general_overview intent.
package intent

import "sort"

// Label identifies one intent category. The set is closed so consumers can
// handle every category exhaustively.
type Label string

const (
	EntitySearch      Label = "entity_search"
	FinancialAnalysis Label = "financial_analysis"
	SheetListing      Label = "sheet_listing"
	NumericFilter     Label = "numeric_filter"
	StructuralQuery   Label = "structural_query"

	// GeneralOverview is synthetic: it is emitted alone, at score 1.0,
	// when no other category earns a non-zero score.
	GeneralOverview Label = "general_overview"
)

// AllLabels returns every non-synthetic label in declaration order.
func AllLabels() []Label {
	return []Label{
		EntitySearch,
		FinancialAnalysis,
		SheetListing,
		NumericFilter,
		StructuralQuery,
	}
}

// Scores maps intent labels to activation scores in [0,1]. Categories are
// independent activations, not mutually exclusive alternatives; the map
// holds only non-zero entries.
type Scores map[Label]float64

// Ranked returns the active labels ordered by descending score, with ties
// broken by label name so identical inputs always rank identically.
func (s Scores) Ranked() []Label {
	labels := make([]Label, 0, len(s))
	for l := range s {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if s[labels[i]] != s[labels[j]] {
			return s[labels[i]] > s[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}

// Operator identifies a numeric comparison extracted from a query.
type Operator string

const (
	OpGT Operator = "gt"
	OpLT Operator = "lt"
	OpGE Operator = "ge"
	OpLE Operator = "le"
	OpEQ Operator = "eq"
)

// Compare applies the operator to (value, threshold).
func (op Operator) Compare(value, threshold float64) bool {
	switch op {
	case OpGT:
		return value > threshold
	case OpLT:
		return value < threshold
	case OpGE:
		return value >= threshold
	case OpLE:
		return value <= threshold
	case OpEQ:
		return value == threshold
	default:
		return false
	}
}

// Comparison is one numeric constraint from the query, e.g. "over 500000"
// → {gt, 500000}.
type Comparison struct {
	Op        Operator `json:"operator"`
	Threshold float64  `json:"threshold"`
}

// Filters holds the structured constraints extracted from a query.
type Filters struct {
	// MentionedSheets are known sheet names literally present in the query,
	// in the order the caller supplied the known names.
	MentionedSheets []string `json:"mentioned_sheets,omitempty"`

	// Comparisons are numeric constraints, in query order.
	Comparisons []Comparison `json:"numeric_comparisons,omitempty"`

	// Keywords are the remaining content terms once stopwords, sheet-name
	// tokens, and comparison phrasing are removed.
	Keywords []string `json:"keyword_terms,omitempty"`
}
