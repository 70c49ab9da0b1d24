package automaton

import "github.com/dekarrin/sturgeon/internal/semgrammar"

// RuleProps is the lean, non-default-only extraction of a rule's
// parser-relevant fields, attached to a reduce action. Cost is always
// materialized; every other field is present only when the source rule set
// it.
type RuleProps struct {
	Cost float64

	HasText bool
	Text    semgrammar.Text

	HasSemantic bool
	Semantic    semgrammar.SemTree

	IsInsertion    bool
	InsertionIdx   semgrammar.InsertionIdx
	HasInsertedSem bool
	InsertedSem    semgrammar.SemTree

	HasProps bool
	Props    semgrammar.GramProps

	HasIntBounds bool
	IntMin       int
	IntMax       int

	IsTransposed  bool
	SemanticIsRHS bool
}

// ExtractRuleProps materializes a rule's RuleProps.
func ExtractRuleProps(r *semgrammar.Rule) RuleProps {
	rp := RuleProps{Cost: r.Cost}
	if !r.Text.IsEmpty() {
		rp.HasText = true
		rp.Text = r.Text
	}
	if len(r.Semantic) > 0 {
		rp.HasSemantic = true
		rp.Semantic = r.Semantic
	}
	if r.IsInsertion {
		rp.IsInsertion = true
		rp.InsertionIdx = r.InsertionIdx
	}
	if r.HasInsertedSem {
		rp.HasInsertedSem = true
		rp.InsertedSem = r.InsertedSem
	}
	if !r.Props.IsZero() {
		rp.HasProps = true
		rp.Props = r.Props
	}
	if r.HasIntBounds {
		rp.HasIntBounds = true
		rp.IntMin = r.IntMin
		rp.IntMax = r.IntMax
	}
	rp.IsTransposed = r.IsTransposed
	rp.SemanticIsRHS = r.SemanticIsRHS
	return rp
}

// byCostAscending sorts a RuleProps slice by cost, cheapest first, so a
// merged insertion action's list keeps its cheapest variant at index 0.
func byCostAscending(list []RuleProps) {
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j-1].Cost > list[j].Cost; j-- {
			list[j-1], list[j] = list[j], list[j-1]
		}
	}
}
