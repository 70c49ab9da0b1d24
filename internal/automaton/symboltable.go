// Package automaton builds the LALR(0)-style state table over an augmented
// grammar: symbol interning, LR(0) items, closure/GOTO construction, and
// per-reduction ruleProps extraction.
package automaton

import (
	"sort"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// StartItemLHS is the sentinel LHS of the synthetic augmented start item
// {RHS: [start], dot: 0}.
const StartItemLHS = ""

// SymbolTable interns every grammar symbol (nonterminal, terminal literal,
// placeholder, integer) by name and assigns it a stable index, used to
// total-order items.
type SymbolTable struct {
	index   map[string]int
	literal map[string]bool
	size    map[string]int // token count for multi-word terminals
	names   []string
}

// BuildSymbolTable interns every symbol reachable from g.
func BuildSymbolTable(g *semgrammar.Grammar) *SymbolTable {
	st := &SymbolTable{
		index:   map[string]int{},
		literal: map[string]bool{},
		size:    map[string]int{},
	}

	add := func(name string, literal bool, size int) {
		if _, ok := st.index[name]; ok {
			return
		}
		st.index[name] = len(st.names)
		st.names = append(st.names, name)
		st.literal[name] = literal
		st.size[name] = size
	}

	add(semgrammar.EmptySymbolName, true, 1)
	add(semgrammar.IntegerSymbolName, true, 1)

	for _, nt := range g.NonTerminals() {
		add(nt, false, 1)
	}
	for _, lit := range g.Terminals() {
		sym, _ := g.Symbol(lit)
		add(lit, true, sym.Size())
	}
	for _, cat := range g.EntityCategories() {
		add(semgrammar.EntityCategorySymbolName(cat), true, 1)
	}

	return st
}

// Index returns a symbol's interned index, or -1 if unknown.
func (st *SymbolTable) Index(name string) int {
	if i, ok := st.index[name]; ok {
		return i
	}
	return -1
}

// IsLiteral reports whether name is a terminal-like symbol.
func (st *SymbolTable) IsLiteral(name string) bool {
	return st.literal[name]
}

// Size returns a terminal's token count (1 for everything but multi-word
// literals).
func (st *SymbolTable) Size(name string) int {
	if n, ok := st.size[name]; ok {
		return n
	}
	return 1
}

// SortSymbols sorts names by their interned index, for deterministic
// iteration.
func (st *SymbolTable) SortSymbols(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return st.Index(names[i]) < st.Index(names[j])
	})
}
