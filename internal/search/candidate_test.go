package search

import (
	"testing"

	"github.com/dekarrin/sturgeon/internal/automaton"
	"github.com/dekarrin/sturgeon/internal/forest"
	"github.com/dekarrin/sturgeon/internal/semgrammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Kth_SingleSubMatchesChildCosts(t *testing.T) {
	f := forest.New()
	left := f.Node("a", 0, 1)
	right := f.Node("b", 1, 1)
	parent := f.Node("[ab]", 0, 2)
	parent.AddSub(left, right, automaton.RuleProps{Cost: 0.5})

	e := newEngine()
	c, ok := e.Kth(parent, 0)
	require.True(t, ok)
	assert.Equal(t, 0.5, c.cost)

	_, ok = e.Kth(parent, 1)
	assert.False(t, ok)
}

func TestEngine_Kth_OrdersAmbiguousSubsAscending(t *testing.T) {
	f := forest.New()
	cheap := f.Node("cheap", 0, 1)
	costly := f.Node("costly", 0, 1)
	n := f.Node("[n]", 0, 1)
	n.AddSub(costly, nil, automaton.RuleProps{Cost: 2})
	n.AddSub(cheap, nil, automaton.RuleProps{Cost: 0.1})

	e := newEngine()
	first, ok := e.Kth(n, 0)
	require.True(t, ok)
	assert.Equal(t, 0.1, first.cost)

	second, ok := e.Kth(n, 1)
	require.True(t, ok)
	assert.Equal(t, 2.0, second.cost)
}

func TestEngine_Kth_CombinesLeftAndRightRanks(t *testing.T) {
	f := forest.New()
	left := f.Node("[l]", 0, 1)
	left.AddSub(f.Node("l0", 0, 1), nil, automaton.RuleProps{Cost: 0})
	left.AddSub(f.Node("l1", 0, 1), nil, automaton.RuleProps{Cost: 1})

	right := f.Node("[r]", 1, 1)
	right.AddSub(f.Node("r0", 1, 1), nil, automaton.RuleProps{Cost: 0})
	right.AddSub(f.Node("r1", 1, 1), nil, automaton.RuleProps{Cost: 5})

	parent := f.Node("[lr]", 0, 2)
	parent.AddSub(left, right, automaton.RuleProps{Cost: 0})

	e := newEngine()
	var costs []float64
	for i := 0; ; i++ {
		c, ok := e.Kth(parent, i)
		if !ok {
			break
		}
		costs = append(costs, c.cost)
	}

	require.Len(t, costs, 4)
	for i := 1; i < len(costs); i++ {
		assert.LessOrEqual(t, costs[i-1], costs[i])
	}
	assert.Equal(t, 0.0, costs[0])
}

func TestEngine_Kth_LeafHasSingleZeroCostCandidate(t *testing.T) {
	f := forest.New()
	leaf := f.Node("hello", 0, 1)

	e := newEngine()
	c, ok := e.Kth(leaf, 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, c.cost)

	_, ok = e.Kth(leaf, 1)
	assert.False(t, ok)
}

func TestEngine_Kth_CorrectsUndershotEstimateBeforeEmitting(t *testing.T) {
	needsArg := &semgrammar.Semantic{Name: "intersect", IsFunction: true, MinParams: 1, MaxParams: 2}

	f := forest.New()
	child := f.Node("[c]", 0, 1)
	child.AddSub(f.Node("c0", 0, 1), nil, automaton.RuleProps{
		Cost:        0,
		HasSemantic: true,
		Semantic:    semgrammar.SemTree{{Def: needsArg}},
	})
	child.AddSub(f.Node("c1", 0, 1), nil, automaton.RuleProps{Cost: 2})

	alt := f.Node("alt", 0, 1)
	parent := f.Node("[p]", 0, 1)
	parent.AddSub(child, nil, automaton.RuleProps{Cost: 0.5})
	parent.AddSub(alt, nil, automaton.RuleProps{Cost: 1})

	// the child's cheapest variant is semantically illegal (a function with
	// no arguments), so the 0.5-estimate alternative really costs 2.5 and
	// must yield to the exact-cost-1 alternative.
	e := newEngine()
	first, ok := e.Kth(parent, 0)
	require.True(t, ok)
	assert.Equal(t, 1.0, first.cost)

	second, ok := e.Kth(parent, 1)
	require.True(t, ok)
	assert.Equal(t, 2.5, second.cost)
}
