package intent

// Curated cue vocabularies. Each category's score derives solely from these
// cues matching the query's own tokens; nothing here fires unconditionally.
// Note that "name"/"names" and "division" are NOT entity cues, so a query
// like "division names" does not activate entity_search.

var entityCues = map[string]bool{
	"company": true, "companies": true,
	"corporation": true, "corporations": true,
	"entity": true, "entities": true,
	"firm": true, "firms": true,
	"organization": true, "organizations": true,
	"organisation": true, "organisations": true,
	"vendor": true, "vendors": true,
	"supplier": true, "suppliers": true,
	"client": true, "clients": true,
	"customer": true, "customers": true,
	"subsidiary": true, "subsidiaries": true,
	"holdings": true, "berhad": true, "bhd": true,
}

var financialCues = map[string]bool{
	"revenue": true, "profit": true, "loss": true, "income": true,
	"expense": true, "expenses": true, "cost": true, "costs": true,
	"gross": true, "net": true, "margin": true, "margins": true,
	"assets": true, "liabilities": true, "equity": true,
	"cash": true, "debt": true, "balance": true,
	"turnover": true, "sales": true, "earnings": true,
	"financial": true, "money": true,
	"amount": true, "amounts": true, "figures": true,
}

var sheetListingCues = map[string]bool{
	"sheet": true, "sheets": true,
	"worksheet": true, "worksheets": true,
	"tab": true, "tabs": true,
	"workbook": true,
}

var structuralCues = map[string]bool{
	"structure": true, "layout": true, "dimensions": true,
	"row": true, "rows": true,
	"column": true, "columns": true,
	"cells": true, "headers": true, "format": true,
}

// orgShapeTerms are the organization-suffix fragments the entity retrieval
// rule matches cell text against. They are contributed only when the query
// itself contains an entity cue (see EntityTerms), never as a global default.
var orgShapeTerms = []string{
	"sdn bhd", "berhad", "bhd",
	"corporation", "corp",
	"company", "holdings", "construction",
	"incorporated", "inc",
	"limited", "ltd", "plc",
	"group", "enterprise",
}

// isCue reports whether tok belongs to any category's cue vocabulary.
func isCue(tok string) bool {
	return entityCues[tok] || financialCues[tok] || sheetListingCues[tok] || structuralCues[tok]
}

// EntityTerms derives the cell-match vocabulary for the entity_search rule
// from the query's own keyword terms: each keyword participates directly,
// and any keyword that is an entity cue additionally contributes the
// organization-suffix shapes. A "division" query therefore matches division
// cells, while a "company" query matches organization-suffix cells.
func EntityTerms(keywords []string) []string {
	seen := make(map[string]bool)
	var terms []string
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}

	for _, kw := range keywords {
		add(kw)
		if entityCues[kw] {
			for _, t := range orgShapeTerms {
				add(t)
			}
		}
	}
	return terms
}

// stopwords are tokens carrying no retrieval content.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"do": true, "does": true, "did": true,
	"have": true, "has": true, "had": true,
	"i": true, "me": true, "my": true, "we": true, "our": true,
	"you": true, "your": true, "it": true, "its": true,
	"this": true, "that": true, "these": true, "those": true,
	"what": true, "which": true, "who": true, "whose": true,
	"when": true, "where": true, "how": true, "why": true,
	"in": true, "on": true, "at": true, "of": true, "to": true,
	"for": true, "from": true, "with": true, "by": true, "as": true,
	"and": true, "or": true, "not": true, "no": true,
	"all": true, "any": true, "some": true, "each": true, "every": true,
	"there": true, "here": true,
	"show": true, "list": true, "find": true, "get": true, "give": true,
	"tell": true, "display": true,
	"can": true, "could": true, "would": true, "should": true, "will": true,
	"please": true, "about": true, "many": true, "much": true,
	"mentioned": true, "contain": true, "contains": true, "containing": true,
}
