package plan

import (
	"fmt"
	"math/rand"
	"reflect"
	"strconv"
	"testing"

	"github.com/hpungsan/sift/internal/cell"
	"github.com/hpungsan/sift/internal/intent"
	"github.com/hpungsan/sift/internal/store"
)

// turnStore builds the store used by the retrieval scenarios: one file with
// a company sheet and a numbers sheet.
func turnStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()

	f := &cell.File{
		ID:          "f1",
		DisplayName: "holdings.xlsx",
		IngestedAt:  1700000000,
		Sheets: []cell.Sheet{
			{FileID: "f1", Name: "TURN-COS-GP_RM", Index: 0, RowCount: 3, ColumnCount: 1, CellCount: 3},
			{FileID: "f1", Name: "PNL", Index: 1, RowCount: 2, ColumnCount: 2, CellCount: 4},
		},
	}
	cells := []cell.Cell{
		cell.New("f1", "TURN-COS-GP_RM", 1, 1, "ABC CORPORATION BERHAD"),
		cell.New("f1", "TURN-COS-GP_RM", 2, 1, "123"),
		cell.New("f1", "TURN-COS-GP_RM", 3, 1, "Holdings Bhd"),
		cell.New("f1", "PNL", 1, 1, "Revenue"),
		cell.New("f1", "PNL", 1, 2, "750000000"),
		cell.New("f1", "PNL", 2, 1, "Expenses"),
		cell.New("f1", "PNL", 2, 2, "120000"),
	}
	if err := s.Ingest(f, cells); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	return s
}

func resultFor(results []Result, label intent.Label) *Result {
	for i := range results {
		if results[i].Category == label {
			return &results[i]
		}
	}
	return nil
}

func TestPlan_EntitySearchScenario(t *testing.T) {
	s := turnStore(t)
	scores, filters := intent.Analyze("what companies are in sheet TURN-COS-GP_RM", s.File("f1").SheetNames())

	results := Plan(scores, filters, s, Params{FileID: "f1"})

	r := resultFor(results, intent.EntitySearch)
	if r == nil {
		t.Fatal("no entity_search result")
	}
	if r.Sheet != "TURN-COS-GP_RM" {
		t.Errorf("Sheet = %q, want TURN-COS-GP_RM", r.Sheet)
	}

	got := make(map[string]bool)
	for _, item := range r.Items {
		got[item.Display] = true
	}
	if !got["ABC CORPORATION BERHAD"] || !got["Holdings Bhd"] {
		t.Errorf("items = %v, want the two organization-like cells", r.Items)
	}
	if got["123"] {
		t.Error("numeric cell 123 must be excluded from entity results")
	}
}

func TestPlan_NoEntityCuesNoEntityResults(t *testing.T) {
	s := turnStore(t)
	// "division names" has no entity cues; org-suffix cells exist in the
	// store but must not be retrieved on that basis alone.
	scores, filters := intent.Analyze("division names", s.File("f1").SheetNames())

	results := Plan(scores, filters, s, Params{FileID: "f1"})

	if r := resultFor(results, intent.EntitySearch); r != nil {
		t.Errorf("entity_search produced results without query cues: %v", r.Items)
	}
	// The overview fallback yields one summary row per sheet
	r := resultFor(results, intent.GeneralOverview)
	if r == nil {
		t.Fatal("no general_overview result")
	}
	if len(r.Items) != 2 {
		t.Errorf("overview items = %d, want one per sheet", len(r.Items))
	}
}

func TestPlan_NumericComparisonSatisfied(t *testing.T) {
	s := turnStore(t)
	scores, filters := intent.Analyze("revenue over 500000000", s.File("f1").SheetNames())

	results := Plan(scores, filters, s, Params{FileID: "f1"})

	var numericItems []Item
	for _, r := range results {
		if r.Category == intent.NumericFilter || r.Category == intent.FinancialAnalysis {
			numericItems = append(numericItems, r.Items...)
		}
	}
	if len(numericItems) == 0 {
		t.Fatal("no numeric results")
	}
	for _, item := range numericItems {
		if item.Display != "750000000" {
			t.Errorf("item %v violates threshold gt 500000000", item)
		}
	}
}

func TestPlan_FinancialKeywordContext(t *testing.T) {
	s := turnStore(t)
	// No comparison: financial retrieval uses row context from keywords.
	scores, filters := intent.Analyze("revenue figures", s.File("f1").SheetNames())

	results := Plan(scores, filters, s, Params{FileID: "f1"})

	r := resultFor(results, intent.FinancialAnalysis)
	if r == nil {
		t.Fatal("no financial_analysis result")
	}
	if len(r.Items) != 1 || r.Items[0].Display != "750000000" {
		t.Errorf("items = %v, want the Revenue-row figure only", r.Items)
	}
}

func TestPlan_TruncationHonesty(t *testing.T) {
	s := store.New()
	f := &cell.File{
		ID:          "f1",
		DisplayName: "big.xlsx",
		Sheets:      []cell.Sheet{{FileID: "f1", Name: "COS", Index: 0, RowCount: 20, ColumnCount: 1, CellCount: 20}},
	}
	var cells []cell.Cell
	for i := 1; i <= 20; i++ {
		cells = append(cells, cell.New("f1", "COS", i, 1, fmt.Sprintf("Vendor %d Sdn Bhd", i)))
	}
	if err := s.Ingest(f, cells); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	scores, filters := intent.Analyze("list companies", []string{"COS"})
	results := Plan(scores, filters, s, Params{FileID: "f1", MaxItemsPerCategory: 5})

	r := resultFor(results, intent.EntitySearch)
	if r == nil {
		t.Fatal("no entity_search result")
	}
	if r.Returned != 5 {
		t.Errorf("Returned = %d, want 5", r.Returned)
	}
	if r.Matched != 20 {
		t.Errorf("Matched = %d, want true total 20", r.Matched)
	}
	if r.Returned >= r.Matched {
		t.Error("truncation must be observable: Returned < Matched")
	}
}

func TestPlan_Deterministic(t *testing.T) {
	s := turnStore(t)
	scores, filters := intent.Analyze("revenue for companies above 1000", s.File("f1").SheetNames())

	first := Plan(scores, filters, s, Params{FileID: "f1"})
	second := Plan(scores, filters, s, Params{FileID: "f1"})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Plan is not deterministic:\n%v\n%v", first, second)
	}
}

func TestPlan_SheetOrderByCellCount(t *testing.T) {
	s := store.New()
	f := &cell.File{
		ID:          "f1",
		DisplayName: "f.xlsx",
		Sheets: []cell.Sheet{
			{FileID: "f1", Name: "Huge", Index: 0, CellCount: 500},
			{FileID: "f1", Name: "Tiny", Index: 1, CellCount: 2},
			{FileID: "f1", Name: "Mid", Index: 2, CellCount: 50},
		},
	}
	if err := s.Ingest(f, nil); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	// No sheet mention: summaries follow ascending cell count
	scores, filters := intent.Analyze("list all sheets", f.SheetNames())
	results := Plan(scores, filters, s, Params{FileID: "f1"})

	r := resultFor(results, intent.SheetListing)
	if r == nil {
		t.Fatal("no sheet_listing result")
	}
	var order []string
	for _, item := range r.Items {
		order = append(order, item.Address)
	}
	want := []string{"Tiny", "Mid", "Huge"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("sheet order = %v, want %v", order, want)
	}
}

func TestPlan_MentionedSheetRestrictsScan(t *testing.T) {
	s := turnStore(t)
	scores, filters := intent.Analyze("companies in TURN-COS-GP_RM", s.File("f1").SheetNames())

	results := Plan(scores, filters, s, Params{FileID: "f1"})

	for _, r := range results {
		if r.Sheet != "" && r.Sheet != "TURN-COS-GP_RM" {
			t.Errorf("result leaked from unmentioned sheet %q", r.Sheet)
		}
	}
}

func TestPlan_ResultsRankedByScore(t *testing.T) {
	s := turnStore(t)
	// numeric_filter scores 1.0; entity_search only 0.5
	scores, filters := intent.Analyze("companies with figures over 100000", s.File("f1").SheetNames())

	results := Plan(scores, filters, s, Params{FileID: "f1"})
	if len(results) < 2 {
		t.Fatalf("results = %v, want at least two sections", results)
	}
	if results[0].Category == intent.EntitySearch {
		t.Error("entity_search (0.5) should not outrank a 1.0 category")
	}
}

func TestPlan_ComparisonProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		s := store.New()
		f := &cell.File{
			ID:          "f1",
			DisplayName: "rand.xlsx",
			Sheets:      []cell.Sheet{{FileID: "f1", Name: "Data", Index: 0, CellCount: 40}},
		}
		var cells []cell.Cell
		values := make(map[string]float64)
		for i := 1; i <= 40; i++ {
			v := rng.Float64() * 1e7
			c := cell.New("f1", "Data", i, 1, strconv.FormatFloat(v, 'f', -1, 64))
			values[c.Address] = v
			cells = append(cells, c)
		}
		if err := s.Ingest(f, cells); err != nil {
			t.Fatalf("Ingest failed: %v", err)
		}

		ops := []intent.Operator{intent.OpGT, intent.OpLT, intent.OpGE, intent.OpLE}
		comparisons := []intent.Comparison{
			{Op: ops[rng.Intn(len(ops))], Threshold: rng.Float64() * 1e7},
			{Op: ops[rng.Intn(len(ops))], Threshold: rng.Float64() * 1e7},
		}
		scores := intent.Scores{intent.NumericFilter: 1.0}
		filters := intent.Filters{Comparisons: comparisons}

		results := Plan(scores, filters, s, Params{FileID: "f1", MaxItemsPerCategory: 40})
		for _, r := range results {
			for _, item := range r.Items {
				v := values[item.Address]
				for _, cmp := range comparisons {
					if !cmp.Op.Compare(v, cmp.Threshold) {
						t.Fatalf("trial %d: cell %s=%v violates %s %v",
							trial, item.Address, v, cmp.Op, cmp.Threshold)
					}
				}
			}
		}
	}
}

func TestPlan_EmptyStore(t *testing.T) {
	s := store.New()
	scores, filters := intent.Analyze("anything at all", nil)

	results := Plan(scores, filters, s, Params{})
	for _, r := range results {
		if r.Category != intent.GeneralOverview && len(r.Items) > 0 {
			t.Errorf("unexpected items from empty store: %v", r)
		}
	}
}
