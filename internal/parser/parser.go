// Package parser runs the generalized-LR (Tomita-style) shift-reduce
// engine over the state table built by internal/automaton: a
// graph-structured stack of vertices explores every viable derivation in
// parallel, producing a shared-packed parse forest (internal/forest) or
// reporting that the input is unparsable.
package parser

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/sturgeon/internal/automaton"
	"github.com/dekarrin/sturgeon/internal/forest"
	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// edge is a backward link of the graph-structured stack: traversing it from
// "to" consumes the forest node it carries.
type edge struct {
	to   *vertex
	node *forest.Node
}

// vertex is one node of the graph-structured stack: a live automaton state
// at a given input position. Ambiguous derivations that reach the same
// (state, position) merge into one vertex with multiple backward edges.
type vertex struct {
	state int
	pos   int
	preds []edge

	shiftedEmpty bool
}

func vkey(pos, state int) string {
	return fmt.Sprintf("%d@%d", pos, state)
}

// Result is the outcome of a parse run.
type Result struct {
	Forest *forest.Forest
	Root   *forest.Node
}

// Parse runs the GLR engine over tokens (already lowercased) and returns the
// shared parse forest rooted at the grammar's start symbol, or an
// *UnparsableError if no vertex reaches an accepting state spanning every
// token.
func Parse(g *semgrammar.Grammar, table *automaton.StateTable, tokens []string) (*Result, error) {
	f := forest.New()
	dyn := map[string]*semgrammar.Semantic{}

	vertices := map[string]*vertex{}
	start := &vertex{state: table.Start, pos: 0}
	vertices[vkey(0, table.Start)] = start

	frontier := map[int][]*vertex{0: {start}}

	for pos := 0; pos <= len(tokens); pos++ {
		closeVertices(g, table, f, vertices, frontier, pos)

		if pos == len(tokens) {
			break
		}

		matches := matchTerminals(g, table.Symbols, tokens, pos)
		for _, v := range frontier[pos] {
			state := table.States[v.state]
			for _, m := range matches {
				succState, ok := state.Transitions[m.Symbol]
				if !ok {
					continue
				}
				node := f.Node(m.Symbol, pos, m.Size)
				attachLeafDetails(node, m, dyn)

				newPos := pos + m.Size
				key := vkey(newPos, succState)
				nv, exists := vertices[key]
				if !exists {
					nv = &vertex{state: succState, pos: newPos}
					vertices[key] = nv
					frontier[newPos] = append(frontier[newPos], nv)
				}
				if !hasEdge(nv, v, node) {
					nv.preds = append(nv.preds, edge{to: v, node: node})
				}
			}
		}
	}

	for _, v := range frontier[len(tokens)] {
		state := table.States[v.state]
		if !state.IsFinal {
			continue
		}
		root := f.FindNode(g.Start, 0, len(tokens))
		if root != nil {
			f.SetRoot(root)
			return &Result{Forest: f, Root: root}, nil
		}
	}

	return nil, errUnparsable(len(tokens), "no accepting vertex spans the whole query")
}

// attachLeafDetails records a matched terminal's literal surface form (used
// later by internal/search to assemble display text) and, for integer and
// entity-category placeholders, the dynamic semantic argument. Argument
// descriptors are interned once per parse in dyn, so the same entity id or
// integer matched at two positions yields identity-equal leaves and the
// duplicate checks downstream can see them as one.
func attachLeafDetails(node *forest.Node, m match, dyn map[string]*semgrammar.Semantic) {
	if node.Text == "" {
		node.Text = m.Text
	}
	if node.DynamicArg != nil {
		return
	}
	var name string
	switch {
	case m.Symbol == semgrammar.IntegerSymbolName:
		name = m.IntText
	case m.EntityID != "":
		name = m.EntityID
	default:
		return
	}
	def, ok := dyn[name]
	if !ok {
		def = &semgrammar.Semantic{Name: name}
		dyn[name] = def
	}
	node.DynamicArg = &semgrammar.SemNode{Def: def}
}

func hasEdge(v *vertex, to *vertex, node *forest.Node) bool {
	for _, e := range v.preds {
		if e.to == to && e.node == node {
			return true
		}
	}
	return false
}

// closeVertices drives epsilon shifts and reductions at pos to a fixpoint:
// neither consumes input, so both can enable further derivations at the
// same position.
func closeVertices(g *semgrammar.Grammar, table *automaton.StateTable, f *forest.Forest, vertices map[string]*vertex, frontier map[int][]*vertex, pos int) {
	for {
		progressed := false

		for _, v := range frontier[pos] {
			if shiftEmpty(table, f, vertices, frontier, v) {
				progressed = true
			}
		}

		for _, v := range frontier[pos] {
			state := table.States[v.state]
			for _, action := range state.Reductions {
				if applyReduction(g, table, f, vertices, frontier, v, action) {
					progressed = true
				}
			}
		}

		if !progressed {
			return
		}
	}
}

// shiftEmpty shifts the empty-symbol terminal into v exactly once: the
// resulting node and successor vertex are both pos-stable (size 0), so
// repeating it would be a no-op once the guard flag is set.
func shiftEmpty(table *automaton.StateTable, f *forest.Forest, vertices map[string]*vertex, frontier map[int][]*vertex, v *vertex) bool {
	if v.shiftedEmpty {
		return false
	}
	v.shiftedEmpty = true

	state := table.States[v.state]
	succState, ok := state.Transitions[semgrammar.EmptySymbolName]
	if !ok {
		return false
	}

	node := f.Node(semgrammar.EmptySymbolName, v.pos, 0)
	key := vkey(v.pos, succState)
	nv, exists := vertices[key]
	progressed := false
	if !exists {
		nv = &vertex{state: succState, pos: v.pos}
		vertices[key] = nv
		frontier[v.pos] = append(frontier[v.pos], nv)
		progressed = true
	}
	if !hasEdge(nv, v, node) {
		nv.preds = append(nv.preds, edge{to: v, node: node})
		progressed = true
	}
	return progressed
}

// applyReduction walks every path of len(action.RHS) edges backward from v,
// producing a forest sub for each and advancing to (or creating) the
// successor vertex via the ancestor's GOTO on action.LHS.
func applyReduction(g *semgrammar.Grammar, table *automaton.StateTable, f *forest.Forest, vertices map[string]*vertex, frontier map[int][]*vertex, v *vertex, action automaton.ReduceAction) bool {
	progressed := false

	switch len(action.RHS) {
	case 1:
		for _, e := range v.preds {
			if reduceAt(g, table, f, vertices, frontier, e.to, action, []*forest.Node{e.node}, v.pos) {
				progressed = true
			}
		}
	case 2:
		for _, e2 := range v.preds {
			mid := e2.to
			for _, e1 := range mid.preds {
				if reduceAt(g, table, f, vertices, frontier, e1.to, action, []*forest.Node{e1.node, e2.node}, v.pos) {
					progressed = true
				}
			}
		}
	}

	return progressed
}

func reduceAt(g *semgrammar.Grammar, table *automaton.StateTable, f *forest.Forest, vertices map[string]*vertex, frontier map[int][]*vertex, ancestor *vertex, action automaton.ReduceAction, children []*forest.Node, endPos int) bool {
	rules := filterRuleProps(action.Rule, children)
	if len(rules) == 0 {
		return false
	}

	succState, ok := table.States[ancestor.state].Transitions[action.LHS]
	if !ok {
		return false
	}

	var left, right *forest.Node
	left = children[0]
	if len(children) == 2 {
		right = children[1]
	}

	node := f.Node(action.LHS, ancestor.pos, endPos-ancestor.pos)
	for _, rp := range rules {
		// a transposed rule matched input in swapped order; the sub stores
		// its children in the original rule's orientation so semantics and
		// display text compose un-swapped
		if rp.IsTransposed && right != nil {
			node.AddSub(right, left, rp)
			continue
		}
		node.AddSub(left, right, rp)
	}

	key := vkey(endPos, succState)
	nv, exists := vertices[key]
	progressed := false
	if !exists {
		nv = &vertex{state: succState, pos: endPos}
		vertices[key] = nv
		frontier[endPos] = append(frontier[endPos], nv)
		progressed = true
	}
	if !hasEdge(nv, ancestor, node) {
		nv.preds = append(nv.preds, edge{to: ancestor, node: node})
		progressed = true
	}
	return progressed
}

// filterRuleProps drops integer-bounded variants that the matched integer
// child falls outside of, keeping the remaining variants in their
// already-cost-ascending order.
func filterRuleProps(rules []automaton.RuleProps, children []*forest.Node) []automaton.RuleProps {
	if len(children) != 1 || children[0].DynamicArg == nil || children[0].Symbol != semgrammar.IntegerSymbolName {
		return rules
	}
	value, err := strconv.Atoi(children[0].DynamicArg.Def.Name)
	if err != nil {
		return rules
	}
	out := make([]automaton.RuleProps, 0, len(rules))
	for _, rp := range rules {
		if intWithinBounds(rp, value) {
			out = append(out, rp)
		}
	}
	return out
}

// Terminals is a diagnostic helper (backing the `.stack`/`.forest` CLI
// commands) listing every terminal symbol recognized at
// position pos, sorted by symbol table index for deterministic output.
func Terminals(g *semgrammar.Grammar, st *automaton.SymbolTable, tokens []string, pos int) []string {
	matches := matchTerminals(g, st, tokens, pos)
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Symbol
	}
	st.SortSymbols(names)
	return names
}
