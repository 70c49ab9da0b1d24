// Package search performs the A*-style best-first search over a parse
// forest (internal/forest), yielding the K lowest-cost semantically- and
// textually-unique derivations, each carrying a reduced semantic tree and
// conjugated display text.
package search

import (
	"github.com/dekarrin/sturgeon/internal/forest"
	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// Tree is one accepted derivation: its reduced semantic tree, its
// canonical display text, its total cost, and the semantic strings of any
// later derivations that shared its display text.
type Tree struct {
	Semantic        semgrammar.SemTree
	Text            string
	Cost            float64
	Disambiguations []string
}

// Search enumerates root's derivations in ascending cost order and returns
// up to k accepted trees, applying the uniqueness filter: a
// derivation whose semantic string repeats an already-accepted tree's (or
// one of its disambiguations) is dropped; one whose text repeats an
// accepted tree's is dropped but its semantic string is recorded on that
// tree's disambiguation list; otherwise it is accepted.
func Search(root *forest.Node, k int) []Tree {
	return SearchWithPopBudget(root, k, 0)
}
