package parser

import (
	"strconv"
	"strings"

	"github.com/dekarrin/sturgeon/internal/automaton"
	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// match is one terminal symbol recognized at a token position: the interned
// symbol name, how many tokens it consumes, and (for the integer and
// entity-category placeholders) the per-occurrence dynamic value.
type match struct {
	Symbol   string
	Size     int
	IntValue int
	IntText  string
	EntityID string
	Text     string
}

// matchTerminals tries every n-gram starting at pos against the symbol
// table; placeholder symbols are skipped for direct literal comparison and
// handled by their own rule (integer, entity category).
func matchTerminals(g *semgrammar.Grammar, st *automaton.SymbolTable, tokens []string, pos int) []match {
	var out []match

	for _, lit := range g.Terminals() {
		size := st.Size(lit)
		if pos+size > len(tokens) {
			continue
		}
		if strings.Join(tokens[pos:pos+size], " ") == lit {
			out = append(out, match{Symbol: lit, Size: size, Text: lit})
		}
	}

	if pos < len(tokens) {
		if n, err := strconv.Atoi(tokens[pos]); err == nil {
			out = append(out, match{
				Symbol:   semgrammar.IntegerSymbolName,
				Size:     1,
				IntValue: n,
				IntText:  tokens[pos],
				Text:     tokens[pos],
			})
		}
	}

	for _, catName := range g.EntityCategories() {
		cat, ok := g.EntityCategory(catName)
		if !ok {
			continue
		}
		for _, inst := range cat.Instances() {
			words := strings.Fields(strings.ToLower(inst.Text))
			size := len(words)
			if size == 0 || pos+size > len(tokens) {
				continue
			}
			if sameWords(tokens[pos:pos+size], words) {
				out = append(out, match{
					Symbol:   semgrammar.EntityCategorySymbolName(catName),
					Size:     size,
					EntityID: inst.ID,
					Text:     inst.Text,
				})
			}
		}
	}

	return out
}

func sameWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// intWithinBounds checks a terminal rule's intMin/intMax against a matched
// integer value; rules with no bounds always pass.
func intWithinBounds(rp automaton.RuleProps, value int) bool {
	if !rp.HasIntBounds {
		return true
	}
	return value >= rp.IntMin && value <= rp.IntMax
}
