// Package forest implements the shared-packed parse forest shared by the
// GLR runtime parser and the A* forest search: nodes keyed by (symbol, size,
// start), subs deduplicated by child identity, insertion-rule variants
// merged into one sub's cost-ascending ruleProps list.
package forest

import (
	"fmt"
	"reflect"

	"github.com/dekarrin/sturgeon/internal/automaton"
	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// Node is a reduced occurrence of a grammar symbol over a span of the
// input: [symbol (start...start+size)]. A node is shared across every
// derivation that produces the same symbol over the same span.
type Node struct {
	Symbol string
	Start  int
	Size   int
	Subs   []*Sub

	// DynamicArg holds the per-occurrence semantic leaf for a matched
	// integer or entity-category terminal: the token text (integer) or the
	// interned entity id ("the token text itself becomes the
	// semantic argument name" / "the entity's id is interned once per parse
	// as a semantic argument"). Nil for every other node.
	DynamicArg *semgrammar.SemNode

	// Text is the literal surface form a terminal leaf node was matched
	// against (the literal's own spelling, the matched digits, or the
	// matched entity instance's canonical text). Empty for every
	// non-terminal node, whose display text instead comes from its subs'
	// ruleProps.
	Text string
}

func (n *Node) key() string {
	return fmt.Sprintf("%s@%d+%d", n.Symbol, n.Start, n.Size)
}

// Sub is one alternative derivation of a Node: either a terminal leaf (no
// children), a unary derivation (Left only), or a binary derivation (Left
// and Right). RuleProps is kept as a cost-ascending list because
// insertion-rule variants sharing identical children collapse into the
// same sub rather than producing separate subs.
type Sub struct {
	Left  *Node
	Right *Node

	RuleProps []automaton.RuleProps

	// minCost caches the admissible heuristic computed by the heuristic
	// calculator (internal/heuristic), memoized once per sub.
	minCost    float64
	hasMinCost bool
}

func (s *Sub) childKey() string {
	var l, r string
	if s.Left != nil {
		l = s.Left.key()
	}
	if s.Right != nil {
		r = s.Right.key()
	}
	return l + "|" + r
}

// MinCost returns the memoized heuristic value and whether it has been set.
func (s *Sub) MinCost() (float64, bool) {
	return s.minCost, s.hasMinCost
}

// SetMinCost memoizes the heuristic value for this sub. It is a no-op once
// already set, so the value is computed once per sub.
func (s *Sub) SetMinCost(cost float64) {
	if s.hasMinCost {
		return
	}
	s.minCost = cost
	s.hasMinCost = true
}

// Forest holds every node produced during a single parse, keyed by
// (symbol, size, start) so identical derivations across different vertices
// of the GLR graph-structured stack collapse into shared nodes.
type Forest struct {
	nodes map[string]*Node
	root  *Node
}

// New returns an empty forest, fresh for one parse run ("the
// parser creates fresh per-call structures").
func New() *Forest {
	return &Forest{nodes: make(map[string]*Node)}
}

// FindNode looks up an existing node by (symbol, start, size).
func (f *Forest) FindNode(symbol string, start, size int) *Node {
	return f.nodes[nodeKey(symbol, start, size)]
}

func nodeKey(symbol string, start, size int) string {
	return fmt.Sprintf("%s@%d+%d", symbol, start, size)
}

// Node returns the node for (symbol, start, size), creating it if absent.
func (f *Forest) Node(symbol string, start, size int) *Node {
	k := nodeKey(symbol, start, size)
	if n, ok := f.nodes[k]; ok {
		return n
	}
	n := &Node{Symbol: symbol, Start: start, Size: size}
	f.nodes[k] = n
	return n
}

// AddSub attaches a derivation to node, deduplicating by (children, size):
// if a sub already exists with the same Left/Right identity, the new
// rule's props are appended to that sub's ruleProps list (and re-sorted by
// cost) instead of a new sub being created. Props identical to ones the sub
// already holds are not appended again, so re-applying the same reduction
// leaves the sub unchanged.
func (n *Node) AddSub(left, right *Node, props automaton.RuleProps) *Sub {
	key := subChildKey(left, right)
	for _, s := range n.Subs {
		if s.childKey() == key {
			for _, existing := range s.RuleProps {
				if reflect.DeepEqual(existing, props) {
					return s
				}
			}
			s.RuleProps = append(s.RuleProps, props)
			sortByCost(s.RuleProps)
			return s
		}
	}
	s := &Sub{Left: left, Right: right, RuleProps: []automaton.RuleProps{props}}
	n.Subs = append(n.Subs, s)
	return s
}

func subChildKey(left, right *Node) string {
	var l, r string
	if left != nil {
		l = left.key()
	}
	if right != nil {
		r = right.key()
	}
	return l + "|" + r
}

// sortByCost is the same explicit insertion sort used for RuleProps lists
// in internal/automaton, kept local to avoid an import cycle back through
// automaton for a one-line helper.
func sortByCost(list []automaton.RuleProps) {
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j-1].Cost > list[j].Cost; j-- {
			list[j-1], list[j] = list[j], list[j-1]
		}
	}
}

// SetRoot records the node accepted as the root of a completed parse.
func (f *Forest) SetRoot(n *Node) {
	f.root = n
}

// Root returns the accepted root node, or nil if none has been set.
func (f *Forest) Root() *Node {
	return f.root
}

// Nodes returns every node currently in the forest, for diagnostics (the
// `.forest`/`.graph` CLI commands walk this).
func (f *Forest) Nodes() []*Node {
	out := make([]*Node, 0, len(f.nodes))
	for _, n := range f.nodes {
		out = append(out, n)
	}
	return out
}
