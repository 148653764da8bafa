// Package plan converts intent scores and filters into concrete cell
// selections against the store. Retrieval runs highest-scoring intents
// first, restricts work to the sheets the query mentioned (or scans
// cheaper sheets first when it mentioned none), and caps every category's
// items while recording the true match count so truncation stays visible.
package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hpungsan/sift/internal/cell"
	"github.com/hpungsan/sift/internal/intent"
	"github.com/hpungsan/sift/internal/store"
)

// DefaultMaxItemsPerCategory bounds a category's returned items when the
// caller does not override it.
const DefaultMaxItemsPerCategory = 10

// Params configures a planning run.
type Params struct {
	// FileID restricts retrieval to one file; empty means all files.
	FileID string

	// MaxItemsPerCategory caps each category's returned items.
	// Zero or negative applies DefaultMaxItemsPerCategory.
	MaxItemsPerCategory int
}

// Item is one retrieved entry: a display label (cell address or sheet name)
// plus its text.
type Item struct {
	Address string `json:"address"`
	Display string `json:"display_text"`
}

// Result is one category's matches within one sheet. Matched is the true
// total before truncation; Returned counts the items actually included.
type Result struct {
	Category intent.Label `json:"category"`
	Sheet    string       `json:"sheet_name,omitempty"`
	Items    []Item       `json:"items"`
	Matched  int          `json:"matched_count"`
	Returned int          `json:"returned_count"`
}

// planner carries one run's working state. All of it is locally scoped and
// discarded with the run; nothing is shared across queries.
type planner struct {
	st       *store.Store
	filters  intent.Filters
	maxItems int

	sheets []cell.Sheet
	// seen marks cells already emitted by a higher-ranked category so the
	// same cell is not packaged twice in one bundle.
	seen map[string]bool
	// summarized marks that a sheet-summary category already ran; listing
	// and structural rules produce identical summaries, so only the
	// higher-ranked one emits.
	summarized bool

	results []Result
}

// Plan runs every active intent's retrieval rule in descending score order
// and returns the ranked result sections. Identical inputs over an
// unmodified store always produce identical output: sheet order, cell
// order, and intent order are all deterministic.
func Plan(scores intent.Scores, filters intent.Filters, st *store.Store, p Params) []Result {
	maxItems := p.MaxItemsPerCategory
	if maxItems <= 0 {
		maxItems = DefaultMaxItemsPerCategory
	}

	run := &planner{
		st:       st,
		filters:  filters,
		maxItems: maxItems,
		sheets:   candidateSheets(st, p.FileID, filters.MentionedSheets),
		seen:     make(map[string]bool),
	}

	for _, label := range scores.Ranked() {
		switch label {
		case intent.EntitySearch:
			run.entitySearch()
		case intent.FinancialAnalysis:
			run.numericRetrieval(label, true)
		case intent.NumericFilter:
			run.numericRetrieval(label, false)
		case intent.SheetListing, intent.StructuralQuery, intent.GeneralOverview:
			run.sheetSummaries(label)
		}
	}
	return run.results
}

// candidateSheets determines the sheet set for this run. Mentioned sheets
// restrict the scan; otherwise all sheets participate, ordered by ascending
// cell count so cheaper sheets are scanned first. Both orderings are stable,
// which makes them part of the tie-break contract.
func candidateSheets(st *store.Store, fileID string, mentioned []string) []cell.Sheet {
	all := st.Sheets(fileID)
	if len(mentioned) == 0 {
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].CellCount < all[j].CellCount
		})
		return all
	}

	wanted := make(map[string]bool, len(mentioned))
	for _, name := range mentioned {
		wanted[strings.ToLower(name)] = true
	}
	var out []cell.Sheet
	for _, sh := range all {
		if wanted[strings.ToLower(sh.Name)] {
			out = append(out, sh)
		}
	}
	return out
}

func cellKey(c *cell.Cell) string {
	return c.FileID + "\x00" + c.SheetName + "\x00" + c.Address
}

// entitySearch retrieves cells with an entity-like shape. Match terms come
// from the query's own keywords via intent.EntityTerms; a query without
// entity content retrieves nothing here.
func (p *planner) entitySearch() {
	terms := intent.EntityTerms(p.filters.Keywords)
	if len(terms) == 0 {
		return
	}

	pred := store.TextContainsAny(terms)
	remaining := p.maxItems
	for _, sh := range p.sheets {
		var items []Item
		matched := 0
		dedup := make(map[string]bool)
		for c := range p.st.FindCells(sh.FileID, sh.Name, pred) {
			if dedup[c.NormText] || p.seen[cellKey(&c)] {
				continue
			}
			dedup[c.NormText] = true
			matched++
			if remaining > 0 {
				p.seen[cellKey(&c)] = true
				items = append(items, Item{Address: c.Address, Display: c.RawText})
				remaining--
			}
		}
		p.appendResult(intent.EntitySearch, sh.Name, items, matched)
	}
}

// numericRetrieval serves both financial_analysis and numeric_filter.
// With comparisons present, only numeric cells satisfying every comparison
// match. The financial variant without comparisons falls back to numeric
// cells whose row context contains a keyword hit, or to all numeric cells
// when the query carried no keywords either.
func (p *planner) numericRetrieval(label intent.Label, useKeywordContext bool) {
	comparisons := p.filters.Comparisons
	if label == intent.NumericFilter && len(comparisons) == 0 {
		return
	}

	pred := store.And(store.Numeric(), store.NumericWhere(func(v float64) bool {
		for _, cmp := range comparisons {
			if !cmp.Op.Compare(v, cmp.Threshold) {
				return false
			}
		}
		return true
	}))

	byKeywordRow := useKeywordContext && len(comparisons) == 0 && len(p.filters.Keywords) > 0

	remaining := p.maxItems
	for _, sh := range p.sheets {
		var keywordRows map[int]bool
		if byKeywordRow {
			keywordRows = p.keywordRows(sh)
		}

		var items []Item
		matched := 0
		for c := range p.st.FindCells(sh.FileID, sh.Name, pred) {
			if byKeywordRow && !keywordRows[c.Row] {
				continue
			}
			if p.seen[cellKey(&c)] {
				continue
			}
			matched++
			if remaining > 0 {
				p.seen[cellKey(&c)] = true
				items = append(items, Item{Address: c.Address, Display: c.RawText})
				remaining--
			}
		}
		p.appendResult(label, sh.Name, items, matched)
	}
}

// keywordRows returns the rows of sh whose text cells contain any keyword
// term, giving numeric cells in those rows their surrounding label context.
func (p *planner) keywordRows(sh cell.Sheet) map[int]bool {
	rows := make(map[int]bool)
	pred := store.TextContainsAny(p.filters.Keywords)
	for c := range p.st.FindCells(sh.FileID, sh.Name, pred) {
		rows[c.Row] = true
	}
	return rows
}

// sheetSummaries returns descriptor summaries (name plus dimensions), not
// cell content. Listing, structural, and overview intents share this rule;
// only the highest-ranked of them emits.
func (p *planner) sheetSummaries(label intent.Label) {
	if p.summarized {
		return
	}
	p.summarized = true

	var items []Item
	for _, sh := range p.sheets {
		display := fmt.Sprintf("%s: %d rows × %d columns, %d cells",
			sh.Name, sh.RowCount, sh.ColumnCount, sh.CellCount)
		if f := p.st.File(sh.FileID); f != nil {
			display = f.DisplayName + " — " + display
		}
		items = append(items, Item{Address: sh.Name, Display: display})
	}

	if len(items) == 0 {
		return
	}
	matched := len(items)
	if len(items) > p.maxItems {
		items = items[:p.maxItems]
	}
	p.results = append(p.results, Result{
		Category: label,
		Items:    items,
		Matched:  matched,
		Returned: len(items),
	})
}

// appendResult records a per-sheet section, skipping empty ones.
func (p *planner) appendResult(label intent.Label, sheet string, items []Item, matched int) {
	if matched == 0 {
		return
	}
	p.results = append(p.results, Result{
		Category: label,
		Sheet:    sheet,
		Items:    items,
		Matched:  matched,
		Returned: len(items),
	})
}
