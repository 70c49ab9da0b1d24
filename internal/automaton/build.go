package automaton

import (
	"fmt"
	"sort"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// ReduceAction is a completed reduction over (LHS, RHS): the grammar may
// have multiple rules sharing this exact RHS (insertion-rule variants),
// whose ruleProps are kept as a single cost-ascending list.
type ReduceAction struct {
	LHS  string
	RHS  []string
	Rule []RuleProps
}

// State is one state of the LALR(0)-style automaton: its LR(0) item set,
// its shift/GOTO transitions by symbol, its reduce actions, and whether it
// is an accepting (final) state.
type State struct {
	Index       int
	Items       []Item
	Transitions map[string]int
	Reductions  []ReduceAction
	IsFinal     bool
}

// StateTable is the complete automaton built over an augmented grammar.
type StateTable struct {
	Start   int
	States  []*State
	Symbols *SymbolTable
}

// Build constructs the LALR(0)-style state machine: starting from the
// start item {RHS: [start], dot: 0}, it repeatedly computes
// closures and GOTOs until no new states are produced, then attaches
// reduce actions and marks the accepting state.
func Build(g *semgrammar.Grammar) (*StateTable, error) {
	st := BuildSymbolTable(g)

	startItem := Item{LHS: StartItemLHS, RHS: []string{g.Start}, Dot: 0}
	startItems := closure(g, st, []Item{startItem})

	table := &StateTable{Start: 0, Symbols: st}
	index := map[string]int{}

	addState := func(items []Item) int {
		key := itemSetKey(items)
		if idx, ok := index[key]; ok {
			return idx
		}
		idx := len(table.States)
		index[key] = idx
		table.States = append(table.States, &State{
			Index:       idx,
			Items:       items,
			Transitions: map[string]int{},
		})
		return idx
	}

	addState(startItems)

	for i := 0; i < len(table.States); i++ {
		state := table.States[i]

		nextSymbols := map[string]bool{}
		for _, it := range state.Items {
			if sym, ok := it.NextSymbol(); ok {
				nextSymbols[sym] = true
			}
		}
		syms := make([]string, 0, len(nextSymbols))
		for s := range nextSymbols {
			syms = append(syms, s)
		}
		sort.Slice(syms, func(a, b int) bool { return st.Index(syms[a]) < st.Index(syms[b]) })

		for _, sym := range syms {
			succ := gotoItems(g, st, state.Items, sym)
			if len(succ) == 0 {
				continue
			}
			state.Transitions[sym] = addState(succ)
		}

		for _, it := range state.Items {
			if !it.AtEnd() {
				continue
			}
			if it.LHS == StartItemLHS {
				state.IsFinal = true
				continue
			}
			action, err := buildReduceAction(g, it)
			if err != nil {
				return nil, err
			}
			state.Reductions = append(state.Reductions, action)
		}
	}

	return table, nil
}

func closure(g *semgrammar.Grammar, st *SymbolTable, seed []Item) []Item {
	seen := map[string]Item{}
	queue := append([]Item(nil), seed...)

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		key := it.key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = it

		sym, ok := it.NextSymbol()
		if !ok || st.IsLiteral(sym) {
			continue
		}
		for _, r := range g.Rules(sym) {
			queue = append(queue, Item{LHS: sym, RHS: r.RHS, Dot: 0})
		}
	}

	out := make([]Item, 0, len(seen))
	for _, it := range seen {
		out = append(out, it)
	}
	sort.Slice(out, func(a, b int) bool { return itemLess(st, out[a], out[b]) })
	return out
}

func gotoItems(g *semgrammar.Grammar, st *SymbolTable, items []Item, symbol string) []Item {
	var advanced []Item
	for _, it := range items {
		if sym, ok := it.NextSymbol(); ok && sym == symbol {
			advanced = append(advanced, it.Advance())
		}
	}
	if len(advanced) == 0 {
		return nil
	}
	return closure(g, st, advanced)
}

func buildReduceAction(g *semgrammar.Grammar, it Item) (ReduceAction, error) {
	var props []RuleProps
	for _, r := range g.Rules(it.LHS) {
		if r.SameRHS(it.RHS) {
			props = append(props, ExtractRuleProps(r))
		}
	}
	if len(props) == 0 {
		return ReduceAction{}, fmt.Errorf("automaton: no rule found for completed item %s -> %v", it.LHS, it.RHS)
	}
	byCostAscending(props)
	return ReduceAction{LHS: it.LHS, RHS: it.RHS, Rule: props}, nil
}
