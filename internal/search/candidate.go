// Package search enumerates the K lowest-cost unique derivations of a
// parse forest, using the lazy k-best derivation algorithm of Huang &
// Chiang, "Better k-best Parsing": each forest node lazily produces its
// candidates in strictly ascending cost order via a local min-heap over
// (sub, variant, left-rank, right-rank) tuples. Heap priorities start as
// internal/heuristic minCost estimates and are corrected to exact cost on
// pop, so candidates still emerge in exact ascending order. Trees emerge
// in ascending total cost, filtered for semantic and textual uniqueness,
// until K are accepted or the forest is exhausted.
package search

import (
	"container/heap"

	"github.com/dekarrin/sturgeon/internal/automaton"
	"github.com/dekarrin/sturgeon/internal/forest"
	"github.com/dekarrin/sturgeon/internal/heuristic"
	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// candidate is one fully-resolved alternative derivation of a forest node:
// the rule variant chosen, the chosen child candidates, its total cost, and
// its composed (pre-conjugation) semantic tree.
type candidate struct {
	cost     float64
	rp       automaton.RuleProps
	left     *candidate
	right    *candidate
	semantic semgrammar.SemTree

	// leafText is set only for a terminal leaf candidate (one with no rule
	// variant at all): the literal surface form it matched, used as-is
	// since a bare terminal carries no inflection table of its own.
	leafText string
}

func leafCandidate(n *forest.Node) *candidate {
	var sem semgrammar.SemTree
	if n.DynamicArg != nil {
		sem = semgrammar.SemTree{*n.DynamicArg}
	}
	return &candidate{semantic: sem, leafText: n.Text}
}

type altKey struct {
	sub, variant, l, r int
}

type heapItem struct {
	cost               float64
	sub, variant, l, r int
	seq                int
}

type itemHeap []*heapItem

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x any)   { *h = append(*h, x.(*heapItem)) }
func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

type nodeState struct {
	list []*candidate
	h    itemHeap
	seen map[altKey]bool
	seq  int
}

// engine is the per-search memo of lazily-expanded node candidate lists.
type engine struct {
	nodes map[*forest.Node]*nodeState
}

func newEngine() *engine {
	return &engine{nodes: map[*forest.Node]*nodeState{}}
}

func (e *engine) state(n *forest.Node) *nodeState {
	s, ok := e.nodes[n]
	if ok {
		return s
	}
	s = &nodeState{seen: map[altKey]bool{}}
	e.nodes[n] = s
	e.seed(n, s)
	return s
}

// seed queues every (sub, variant) alternative at ranks (0, 0), priced by
// the admissible minCost heuristic rather than by materializing child
// candidates. The estimate never exceeds the alternative's exact cost, so
// popNext can correct it on pop without breaking ascending emission.
func (e *engine) seed(n *forest.Node, s *nodeState) {
	for si, sub := range n.Subs {
		for vi := range sub.RuleProps {
			key := altKey{si, vi, 0, 0}
			if s.seen[key] {
				continue
			}
			s.seen[key] = true

			est := sub.RuleProps[vi].Cost
			if sub.Left != nil {
				est += heuristic.NodeCost(sub.Left)
			}
			if sub.Right != nil {
				est += heuristic.NodeCost(sub.Right)
			}
			s.seq++
			heap.Push(&s.h, &heapItem{cost: est, sub: si, variant: vi, seq: s.seq})
		}
	}
}

// pushAlt queues a successor alternative at exact cost; its child candidates
// at the requested ranks are materialized (or the push is dropped if a child
// is exhausted below that rank).
func (e *engine) pushAlt(n *forest.Node, s *nodeState, sub *forest.Sub, si, vi, l, r int) {
	key := altKey{si, vi, l, r}
	if s.seen[key] {
		return
	}
	s.seen[key] = true

	cost, ok := e.altCost(sub, vi, l, r)
	if !ok {
		return
	}
	s.seq++
	heap.Push(&s.h, &heapItem{cost: cost, sub: si, variant: vi, l: l, r: r, seq: s.seq})
}

func (e *engine) altCost(sub *forest.Sub, vi, l, r int) (float64, bool) {
	cost := sub.RuleProps[vi].Cost
	if sub.Left != nil {
		lc, ok := e.Kth(sub.Left, l)
		if !ok {
			return 0, false
		}
		cost += lc.cost
	} else if l != 0 {
		return 0, false
	}
	if sub.Right != nil {
		rc, ok := e.Kth(sub.Right, r)
		if !ok {
			return 0, false
		}
		cost += rc.cost
	} else if r != 0 {
		return 0, false
	}
	return cost, true
}

// Kth returns the k-th (0-indexed) cheapest candidate derivation of n, in
// ascending cost order, or false once n is exhausted.
func (e *engine) Kth(n *forest.Node, k int) (*candidate, bool) {
	if len(n.Subs) == 0 {
		if k == 0 {
			return leafCandidate(n), true
		}
		return nil, false
	}

	s := e.state(n)
	for len(s.list) <= k {
		if !e.popNext(n, s) {
			return nil, false
		}
	}
	return s.list[k], true
}

func (e *engine) popNext(n *forest.Node, s *nodeState) bool {
	for s.h.Len() > 0 {
		it := heap.Pop(&s.h).(*heapItem)
		sub := n.Subs[it.sub]

		cand, ok := e.buildCandidate(sub, it)
		if ok && cand.cost > it.cost {
			// the heuristic estimate undershot (a cheaper child variant was
			// semantically rejected); requeue at exact cost so any cheaper
			// alternative still in the heap emerges first
			it.cost = cand.cost
			s.seq++
			it.seq = s.seq
			heap.Push(&s.h, it)
			continue
		}

		e.pushAlt(n, s, sub, it.sub, it.variant, it.l+1, it.r)
		e.pushAlt(n, s, sub, it.sub, it.variant, it.l, it.r+1)

		if !ok {
			continue
		}
		s.list = append(s.list, cand)
		return true
	}
	return false
}

func (e *engine) buildCandidate(sub *forest.Sub, it *heapItem) (*candidate, bool) {
	rp := sub.RuleProps[it.variant]

	cost := rp.Cost
	var left, right *candidate
	if sub.Left != nil {
		lc, ok := e.Kth(sub.Left, it.l)
		if !ok {
			return nil, false
		}
		left = lc
		cost += lc.cost
	}
	if sub.Right != nil {
		rc, ok := e.Kth(sub.Right, it.r)
		if !ok {
			return nil, false
		}
		right = rc
		cost += rc.cost
	}

	sem, err := composeSemantic(rp, left, right)
	if err != nil {
		return nil, false
	}

	return &candidate{cost: cost, rp: rp, left: left, right: right, semantic: sem}, true
}
