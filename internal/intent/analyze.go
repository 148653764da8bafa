package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hpungsan/sift/internal/cell"
)

// tokenRegex extracts content tokens. Hyphens and underscores stay inside
// tokens so sheet-style identifiers like "turn-cos-gp_rm" survive intact.
var tokenRegex = regexp.MustCompile(`[a-z0-9][a-z0-9_-]*`)

// comparisonRegex matches comparison phrasing followed by a number with an
// optional scale suffix. Longer phrases come first so "greater than or
// equal to" is not consumed as "greater than".
var comparisonRegex = regexp.MustCompile(
	`(greater than or equal to|less than or equal to|greater than|more than|higher than|no less than|at least|no more than|at most|less than|fewer than|lower than|exceeding|above|over|below|under|equal to|exactly)` +
		`\s+([0-9][0-9,]*(?:\.[0-9]+)?)\s*(billion|million|thousand|k|m|b)?\b`)

// comparisonOps normalizes phrase variants to the five operators.
var comparisonOps = map[string]Operator{
	"greater than or equal to": OpGE,
	"no less than":             OpGE,
	"at least":                 OpGE,
	"less than or equal to":    OpLE,
	"no more than":             OpLE,
	"at most":                  OpLE,
	"greater than":             OpGT,
	"more than":                OpGT,
	"higher than":              OpGT,
	"exceeding":                OpGT,
	"above":                    OpGT,
	"over":                     OpGT,
	"less than":                OpLT,
	"fewer than":               OpLT,
	"lower than":               OpLT,
	"below":                    OpLT,
	"under":                    OpLT,
	"equal to":                 OpEQ,
	"exactly":                  OpEQ,
}

// scaleMultipliers expands "1 million" style suffixes.
var scaleMultipliers = map[string]float64{
	"thousand": 1e3, "k": 1e3,
	"million": 1e6, "m": 1e6,
	"billion": 1e9, "b": 1e9,
}

// Analyze scores queryText against every intent category and extracts
// structured filters. It never fails: arbitrary text, including the empty
// string, produces a valid result, and a query with no recognizable cues
// yields the single general_overview intent at score 1.0.
//
// A category's score is min(1.0, 0.5 × matched-cue-count), so one cue
// activates at 0.5 and two or more saturate at 1.0. numeric_filter scores
// 1.0 exactly when at least one comparison was extracted.
func Analyze(queryText string, knownSheets []string) (Scores, Filters) {
	normalized := cell.Normalize(queryText)

	var filters Filters

	// Sheet mentions: any known sheet name appearing (case-insensitively)
	// inside the query, kept in the caller's known-sheet order.
	sheetTokens := make(map[string]bool)
	seenSheet := make(map[string]bool)
	for _, name := range knownSheets {
		lower := strings.ToLower(name)
		if lower == "" || seenSheet[name] || !strings.Contains(normalized, lower) {
			continue
		}
		seenSheet[name] = true
		filters.MentionedSheets = append(filters.MentionedSheets, name)
		for _, tok := range tokenRegex.FindAllString(lower, -1) {
			sheetTokens[tok] = true
		}
	}

	// Numeric comparisons. Unparseable numbers are dropped, never fatal.
	remainder := normalized
	for _, m := range comparisonRegex.FindAllStringSubmatch(normalized, -1) {
		threshold, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
		if err != nil {
			continue
		}
		if mult, ok := scaleMultipliers[m[3]]; ok {
			threshold *= mult
		}
		filters.Comparisons = append(filters.Comparisons, Comparison{
			Op:        comparisonOps[m[1]],
			Threshold: threshold,
		})
	}
	// Keyword extraction works on the query with comparison phrasing
	// removed, so "over 1 million" contributes no keyword terms.
	remainder = comparisonRegex.ReplaceAllString(remainder, " ")

	tokens := tokenRegex.FindAllString(remainder, -1)
	seenKw := make(map[string]bool)
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
		// Sheet-name fragments are dropped from keywords so they cannot
		// leak into cell matching, unless the token is also a cue word
		// (a sheet named "Vendors" must not swallow a vendors query).
		if stopwords[tok] || (sheetTokens[tok] && !isCue(tok)) || seenKw[tok] {
			continue
		}
		if _, isNumber := cell.ParseNumber(tok); isNumber {
			continue
		}
		seenKw[tok] = true
		filters.Keywords = append(filters.Keywords, tok)
	}

	scores := make(Scores)
	scoreCues := func(label Label, cues map[string]bool) {
		hits := 0
		for tok := range tokenSet {
			if cues[tok] {
				hits++
			}
		}
		if hits > 0 {
			scores[label] = min(1.0, 0.5*float64(hits))
		}
	}
	scoreCues(EntitySearch, entityCues)
	scoreCues(FinancialAnalysis, financialCues)
	scoreCues(SheetListing, sheetListingCues)
	scoreCues(StructuralQuery, structuralCues)
	if len(filters.Comparisons) > 0 {
		scores[NumericFilter] = 1.0
	}

	// No cues at all: fall back to a structural summary rather than
	// guessing content.
	if len(scores) == 0 {
		scores[GeneralOverview] = 1.0
	}

	return scores, filters
}
