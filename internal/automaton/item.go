package automaton

import (
	"fmt"
	"strings"
)

// Item is an LR(0) item: (LHS, RHS, dot position). The synthetic augmented
// start item uses StartItemLHS as its LHS.
type Item struct {
	LHS string
	RHS []string
	Dot int
}

// AtEnd reports whether the dot has reached the end of the RHS.
func (i Item) AtEnd() bool {
	return i.Dot >= len(i.RHS)
}

// NextSymbol returns the symbol immediately after the dot, if any.
func (i Item) NextSymbol() (string, bool) {
	if i.AtEnd() {
		return "", false
	}
	return i.RHS[i.Dot], true
}

// Advance returns a copy of the item with the dot moved one position right.
func (i Item) Advance() Item {
	return Item{LHS: i.LHS, RHS: i.RHS, Dot: i.Dot + 1}
}

func (i Item) key() string {
	return fmt.Sprintf("%s->%s@%d", i.LHS, strings.Join(i.RHS, " "), i.Dot)
}

// itemLess implements the item total order: lexicographic by (LHS index, dot,
// RHS symbol indices).
func itemLess(st *SymbolTable, a, b Item) bool {
	ai, bi := st.Index(a.LHS), st.Index(b.LHS)
	if ai != bi {
		return ai < bi
	}
	if a.Dot != b.Dot {
		return a.Dot < b.Dot
	}
	for k := 0; k < len(a.RHS) && k < len(b.RHS); k++ {
		ax, bx := st.Index(a.RHS[k]), st.Index(b.RHS[k])
		if ax != bx {
			return ax < bx
		}
	}
	return len(a.RHS) < len(b.RHS)
}

// itemSetKey produces a canonical string key for a (sorted, deduplicated)
// set of items, used to intern states.
func itemSetKey(items []Item) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(it.key())
		sb.WriteByte('|')
	}
	return sb.String()
}
