package store

import (
	"strings"

	"github.com/hpungsan/sift/internal/cell"
)

// Predicate selects cells during FindCells. Predicates compose with And.
type Predicate func(*cell.Cell) bool

// Any matches every cell.
func Any() Predicate {
	return func(*cell.Cell) bool { return true }
}

// And matches cells satisfying all of the given predicates.
func And(preds ...Predicate) Predicate {
	return func(c *cell.Cell) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

// TextContainsAny matches text cells whose normalized text contains any of
// the given terms. Terms are expected in normalized (lowercase) form.
// An empty term set matches nothing.
func TextContainsAny(terms []string) Predicate {
	return func(c *cell.Cell) bool {
		if c.Kind != cell.KindText {
			return false
		}
		for _, term := range terms {
			if term != "" && strings.Contains(c.NormText, term) {
				return true
			}
		}
		return false
	}
}

// Numeric matches cells that parsed as numbers.
func Numeric() Predicate {
	return func(c *cell.Cell) bool {
		return c.Kind == cell.KindNumeric && c.Numeric != nil
	}
}

// NumericWhere matches numeric cells whose value satisfies fn.
func NumericWhere(fn func(float64) bool) Predicate {
	return func(c *cell.Cell) bool {
		return c.Kind == cell.KindNumeric && c.Numeric != nil && fn(*c.Numeric)
	}
}
