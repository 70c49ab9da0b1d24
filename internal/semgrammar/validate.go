package semgrammar

import "fmt"

// Validate runs the post-build sanity checks: every declared
// symbol/category/semantic must be used by some rule, and every rule lacking
// a RHS semantic that cannot produce one through any descent path (while
// dominated by a LHS semantic) is flagged. These are warnings, not fatal
// errors.
func (g *Grammar) Validate() []Warning {
	var warnings []Warning

	for _, name := range g.ntOrder {
		if name == g.Start {
			continue
		}
		if !g.usedSymbols[name] {
			warnings = append(warnings, Warning{Kind: "UnusedSymbol", Name: name, Msg: "nonterminal is never referenced by any rule"})
		}
	}
	for _, name := range g.entityOrder {
		if !g.usedEntities[name] {
			warnings = append(warnings, Warning{Kind: "UnusedEntityCategory", Name: name, Msg: "entity category is never referenced by any rule"})
		}
	}
	for _, name := range g.semOrder {
		if !g.semanticUsed(name) {
			warnings = append(warnings, Warning{Kind: "UnusedSemantic", Name: name, Msg: "semantic is never attached to any rule"})
		}
	}

	warnings = append(warnings, g.missingRHSWarnings()...)

	return warnings
}

func (g *Grammar) semanticUsed(name string) bool {
	for _, nt := range g.ntOrder {
		for _, r := range g.nonterminals[nt].Rules {
			if semTreeReferencesName(r.Semantic, name) || semTreeReferencesName(r.InsertedSem, name) {
				return true
			}
		}
	}
	return false
}

func semTreeReferencesName(t SemTree, name string) bool {
	for _, n := range t {
		if n.Def != nil && n.Def.Name == name {
			return true
		}
		if semTreeReferencesName(n.Children, name) {
			return true
		}
	}
	return false
}

// missingRHSWarnings detects, via a reachability analysis over the grammar
// with cycle avoidance through a seen-set, every rule that lacks a RHS
// semantic and cannot produce one through any descent path while having (or
// being dominated by) a LHS semantic.
func (g *Grammar) missingRHSWarnings() []Warning {
	var warnings []Warning

	canReachRHS := map[string]bool{}

	var reaches func(nt string, seen map[string]bool) bool
	reaches = func(nt string, seen map[string]bool) bool {
		if v, ok := canReachRHS[nt]; ok {
			return v
		}
		if seen[nt] {
			return false
		}
		seen[nt] = true

		sym, ok := g.nonterminals[nt]
		if !ok {
			return false
		}
		for _, r := range sym.Rules {
			// an already-reduced semantic on the rule itself is a RHS
			if len(r.Semantic) > 0 && r.Semantic.isReduced() {
				canReachRHS[nt] = true
				return true
			}
			if r.IsTerminal {
				// integer and entity placeholders mint a dynamic argument
				// at parse time, which serves as a RHS on its own
				if len(r.RHS) == 1 && isPlaceholderName(r.RHS[0]) {
					canReachRHS[nt] = true
					return true
				}
				continue
			}
			// a RHS accumulated from any one descent path is enough; the
			// other branch may contribute nothing but stop-words
			for _, rhsName := range r.RHS {
				if isNonTerminalName(rhsName) && reaches(rhsName, seen) {
					canReachRHS[nt] = true
					return true
				}
			}
		}
		return false
	}

	for _, nt := range g.ntOrder {
		sym := g.nonterminals[nt]
		hasLHSSemantic := false
		for _, r := range sym.Rules {
			if !r.IsTerminal && len(r.Semantic) > 0 && !r.Semantic.isReduced() {
				hasLHSSemantic = true
			}
		}
		if !hasLHSSemantic {
			continue
		}
		if !reaches(nt, map[string]bool{}) {
			warnings = append(warnings, Warning{
				Kind: "MissingNeededRHSSemantic",
				Name: nt,
				Msg:  fmt.Sprintf("nonterminal %s has a LHS semantic but no descent path produces a RHS semantic", nt),
			})
		}
	}

	return warnings
}

func isNonTerminalName(name string) bool {
	return len(name) > 1 && name[0] == '[' && name[len(name)-1] == ']'
}

func isPlaceholderName(name string) bool {
	if name == IntegerSymbolName {
		return true
	}
	return len(name) > 1 && name[0] == '{' && name[len(name)-1] == '}'
}
