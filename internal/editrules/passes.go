package editrules

import (
	"github.com/dekarrin/sturgeon/internal/semalg"
	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// Options bounds how much synthesized cost Generate will tolerate before
// discarding a candidate outright, per internal/config's edit_rules
// settings. Zero (the default) means unbounded.
type Options struct {
	InsertionCostCeiling     float64
	TranspositionCostCeiling float64
}

// Generate extends g in place with the synthesized edit rules, running
// passes A through D in order, and returns the final insertion
// candidate table (retained for diagnostics; the search layer only ever
// sees the resulting rules, not this table). It applies no cost ceilings;
// see GenerateWithOptions for a bounded variant.
func Generate(g *semgrammar.Grammar) (candidateTable, error) {
	return GenerateWithOptions(g, Options{})
}

// GenerateWithOptions is Generate with configurable cost ceilings: a Pass
// B candidate whose merged cost exceeds InsertionCostCeiling, or a Pass D
// transposition whose synthesized cost exceeds TranspositionCostCeiling,
// is dropped rather than added to the grammar, keeping a grammar rich in
// cheap literal rules from exploding into an unusably large edit-rule set.
func GenerateWithOptions(g *semgrammar.Grammar, opts Options) (candidateTable, error) {
	table := candidateTable{}

	passA(g, table)
	passB(g, table, opts.InsertionCostCeiling)
	if err := passC(g, table); err != nil {
		return nil, err
	}
	if err := passD(g, opts.TranspositionCostCeiling); err != nil {
		return nil, err
	}

	return table, nil
}

// passA records insertion candidates for empty-string and insertion-cost
// terminal rules, retiring the former from the grammar.
func passA(g *semgrammar.Grammar, table candidateTable) {
	for _, nt := range g.NonTerminals() {
		for _, r := range append([]*semgrammar.Rule(nil), g.Rules(nt)...) {
			if !r.IsTerminal || len(r.RHS) != 1 {
				continue
			}
			switch {
			case r.RHS[0] == semgrammar.EmptySymbolName || r.RHS[0] == "":
				text := semgrammar.Text(nil)
				if r.Cost == 0 && !r.Text.IsEmpty() {
					text = r.Text
				}
				table.addCandidate(nt, InsertionCandidate{
					Cost:         r.Cost,
					Text:         text,
					InsertedSyms: []semgrammar.InsertedSym{{Symbol: r.RHS[0]}},
					Semantic:     r.Semantic,
				})
				g.RemoveRule(nt, r)
			case r.HasInsertionCost:
				text := r.Text
				if text.IsEmpty() {
					text = semgrammar.NewText(r.RHS[0])
				}
				table.addCandidate(nt, InsertionCandidate{
					Cost:         r.Cost + r.InsertionCost,
					Text:         text,
					InsertedSyms: []semgrammar.InsertedSym{{Symbol: r.RHS[0]}},
					Semantic:     r.Semantic,
				})
			}
		}
	}
}

// passB runs the nonterminal-insertion fixed point (pass B):
// repeatedly forms the cartesian product of each eligible rule's RHS
// candidate lists until no pass adds anything new.
func passB(g *semgrammar.Grammar, table candidateTable, costCeiling float64) {
	for {
		added := false
		for _, nt := range g.NonTerminals() {
			for _, r := range g.Rules(nt) {
				if r.IsTerminal || r.HasTransposition || len(r.RHS) == 0 || len(r.RHS) > 2 {
					continue
				}
				if passBRule(nt, r, table, costCeiling) {
					added = true
				}
			}
		}
		if !added {
			return
		}
	}
}

func passBRule(nt string, r *semgrammar.Rule, table candidateTable, costCeiling float64) bool {
	lists := make([][]InsertionCandidate, len(r.RHS))
	for i, s := range r.RHS {
		lists[i] = table[s]
		if len(lists[i]) == 0 {
			return false
		}
	}

	changed := false
	if len(lists) == 1 {
		for _, a := range lists[0] {
			if emitPassBCandidate(nt, r, a, nil, table, costCeiling) {
				changed = true
			}
		}
	} else {
		for _, a := range lists[0] {
			for _, b := range lists[1] {
				if emitPassBCandidate(nt, r, a, &b, table, costCeiling) {
					changed = true
				}
			}
		}
	}
	return changed
}

func emitPassBCandidate(nt string, r *semgrammar.Rule, a InsertionCandidate, b *InsertionCandidate, table candidateTable, costCeiling float64) bool {
	merged := a
	if b != nil {
		sem, err := semalg.MergeRHS(a.Semantic, b.Semantic)
		if err != nil {
			return false
		}
		merged = InsertionCandidate{
			Cost:            a.Cost + b.Cost,
			Text:            a.Text.Concat(b.Text),
			Semantic:        sem,
			InsertedSyms:    append(append([]semgrammar.InsertedSym(nil), a.InsertedSyms...), b.InsertedSyms...),
			HasPersonNumber: a.HasPersonNumber,
			Person:          a.Person,
		}
	}

	conjugated := ConjugateText(merged.Text, r.Props)

	sem, err := insertSemantic(r.Semantic, merged.Semantic)
	if err != nil {
		return false
	}

	totalCost := r.Cost + merged.Cost
	if costCeiling > 0 && totalCost > costCeiling {
		return false
	}

	// the rule's own person-number survives onto the candidate so a table
	// left unresolved in its text can still conjugate higher up
	hasPerson, person := merged.HasPersonNumber, merged.Person
	if r.Props.HasPerson {
		hasPerson, person = true, r.Props.Person
	}

	return table.addCandidate(nt, InsertionCandidate{
		Cost:            totalCost,
		Text:            conjugated,
		Semantic:        sem,
		InsertedSyms:    merged.InsertedSyms,
		HasPersonNumber: hasPerson,
		Person:          person,
	})
}

// insertSemantic composes a rule's LHS semantic with an insertion
// candidate's already-merged RHS semantic. A LHS that is a single reducible
// function applies Reduce; an empty LHS simply passes the RHS through.
func insertSemantic(lhsSem, rhsSem semgrammar.SemTree) (semgrammar.SemTree, error) {
	if len(lhsSem) == 0 {
		return rhsSem, nil
	}
	if len(lhsSem) == 1 && lhsSem[0].Def.IsFunction && len(rhsSem) > 0 {
		return semalg.Reduce(lhsSem[0].Def, rhsSem)
	}
	return semalg.MergeRHS(lhsSem, rhsSem)
}

// passC emits the partial-insertion unary rules (pass C): for every binary
// rule, if one side has insertion candidates and the other side isn't the
// rule's own LHS (the anti-cycle guard), a new unary rule is added per
// candidate.
func passC(g *semgrammar.Grammar, table candidateTable) error {
	for _, nt := range g.NonTerminals() {
		for _, r := range append([]*semgrammar.Rule(nil), g.Rules(nt)...) {
			if r.IsTerminal || r.IsTransposed || len(r.RHS) != 2 {
				continue
			}
			left, right := r.RHS[0], r.RHS[1]

			if right != nt {
				for _, cand := range table[left] {
					if err := addPartialInsertionRule(g, nt, right, r, cand, semgrammar.InsertionLeft); err != nil {
						return err
					}
				}
			}
			if left != nt {
				for _, cand := range table[right] {
					if err := addPartialInsertionRule(g, nt, left, r, cand, semgrammar.InsertionRight); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func addPartialInsertionRule(g *semgrammar.Grammar, nt, remaining string, r *semgrammar.Rule, cand InsertionCandidate, idx semgrammar.InsertionIdx) error {
	text := ConjugateText(cand.Text, r.Props)
	hasInsertedSem := len(cand.Semantic) > 0

	opts := semgrammar.RuleOpts{
		RHS:            []string{remaining},
		Cost:           r.Cost + cand.Cost,
		Semantic:       r.Semantic,
		Props:          r.Props,
		IsInsertion:    true,
		InsertionIdx:   idx,
		InsertedSyms:   cand.InsertedSyms,
		InsertedSem:    cand.Semantic,
		HasInsertedSem: hasInsertedSem,
	}
	if !text.IsEmpty() {
		opts.Text = text
	}

	if existing := findDuplicateEditRule(g, nt, opts); existing != nil {
		if opts.Cost >= existing.Cost {
			return nil
		}
		g.RemoveRule(nt, existing)
	}

	_, err := g.AddSynthesizedRule(nt, opts, semgrammar.SourceLoc{})
	return err
}

// findDuplicateEditRule implements the Pass C duplicate-rule policy: a rule
// with identical RHS, textual outcome, inserted semantic, and parent
// semantic already present.
func findDuplicateEditRule(g *semgrammar.Grammar, nt string, opts semgrammar.RuleOpts) *semgrammar.Rule {
	for _, r := range g.Rules(nt) {
		if !r.IsInsertion || !r.SameRHS(opts.RHS) {
			continue
		}
		if !r.Text.Equal(opts.Text) {
			continue
		}
		if !r.InsertedSem.StructuralEqual(opts.InsertedSem) {
			continue
		}
		if !r.Semantic.StructuralEqual(opts.Semantic) {
			continue
		}
		return r
	}
	return nil
}

// hasTransposedSibling reports whether r's reversed-RHS sibling already
// exists, which keeps a second generator run from re-adding it.
func hasTransposedSibling(g *semgrammar.Grammar, nt string, r *semgrammar.Rule) bool {
	reversed := []string{r.RHS[1], r.RHS[0]}
	for _, other := range g.Rules(nt) {
		if other.IsTransposed && other.SameRHS(reversed) {
			return true
		}
	}
	return false
}

// passD emits the transposition sibling rules (pass D): for every binary
// rule declaring a transpositionCost, a reversed-RHS sibling is added,
// marked transposed; the original rule is retained.
func passD(g *semgrammar.Grammar, costCeiling float64) error {
	for _, nt := range g.NonTerminals() {
		for _, r := range append([]*semgrammar.Rule(nil), g.Rules(nt)...) {
			if !r.HasTransposition || len(r.RHS) != 2 {
				continue
			}
			totalCost := r.Cost + r.TranspositionCost
			if costCeiling > 0 && totalCost > costCeiling {
				continue
			}
			if hasTransposedSibling(g, nt, r) {
				continue
			}
			opts := semgrammar.RuleOpts{
				RHS:          []string{r.RHS[1], r.RHS[0]},
				Cost:         totalCost,
				Semantic:     r.Semantic,
				Text:         r.Text,
				Props:        r.Props,
				IsTransposed: true,
			}
			if _, err := g.AddSynthesizedRule(nt, opts, semgrammar.SourceLoc{}); err != nil {
				return err
			}
		}
	}
	return nil
}
