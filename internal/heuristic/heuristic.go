// Package heuristic computes the admissible minCost heuristic over a parse
// forest, guiding the A* forest search of internal/search.
package heuristic

import (
	"math"

	"github.com/dekarrin/sturgeon/internal/forest"
)

// NodeCost returns the minimum additional cost to fully derive n: the
// cheapest of its subs' costs, or 0 for a terminal leaf node (one with no
// subs at all).
func NodeCost(n *forest.Node) float64 {
	if len(n.Subs) == 0 {
		return 0
	}
	best := math.Inf(1)
	for _, s := range n.Subs {
		if c := SubCost(s); c < best {
			best = c
		}
	}
	return best
}

// SubCost returns sub's minCost: the cheapest variant in its cost-ascending
// ruleProps list (index 0, by the sort invariant maintained by
// internal/forest and internal/automaton) plus the minCost of each child
// node. The value is memoized on the sub itself, reused
// across every forest branch that shares it.
func SubCost(s *forest.Sub) float64 {
	if v, ok := s.MinCost(); ok {
		return v
	}

	cost := s.RuleProps[0].Cost
	if s.Left != nil {
		cost += NodeCost(s.Left)
	}
	if s.Right != nil {
		cost += NodeCost(s.Right)
	}

	s.SetMinCost(cost)
	v, _ := s.MinCost()
	return v
}

// Compute walks the entire forest, memoizing minCost on every sub reachable
// from root. Calling this once before search means every subsequent
// NodeCost/SubCost lookup during the A* search is a cache hit.
func Compute(root *forest.Node) {
	NodeCost(root)
}
