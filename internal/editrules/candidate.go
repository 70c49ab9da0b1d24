package editrules

import "github.com/dekarrin/sturgeon/internal/semgrammar"

// InsertionCandidate is a way a symbol can be synthesized without consuming
// any input token: a cost, the display text it would have contributed
// (possibly empty), the terminal symbols it stands in for, the semantic it
// would have contributed, and (for fixed-point composition) the
// person-number of its first branch.
type InsertionCandidate struct {
	Cost            float64
	Text            semgrammar.Text
	InsertedSyms    []semgrammar.InsertedSym
	Semantic        semgrammar.SemTree
	HasPersonNumber bool
	Person          semgrammar.PersonNumber
}

// candidateTable maps a symbol name to its insertion candidates, built up
// across passes A and B.
type candidateTable map[string][]InsertionCandidate

// addCandidate records a candidate for sym, deduplicating by display text
// and keeping the cheaper of the two when a duplicate is found. It reports
// whether the table changed, so the fixed-point loop keeps running while
// costs are still improving, not just while new texts appear.
func (ct candidateTable) addCandidate(sym string, cand InsertionCandidate) bool {
	existing := ct[sym]
	candText := cand.Text.String()
	for i, e := range existing {
		if e.Text.String() == candText {
			if cand.Cost < e.Cost {
				existing[i] = cand
				return true
			}
			return false
		}
	}
	ct[sym] = append(existing, cand)
	return true
}
