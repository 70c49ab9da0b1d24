package heuristic

import (
	"testing"

	"github.com/dekarrin/sturgeon/internal/automaton"
	"github.com/dekarrin/sturgeon/internal/forest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeCost_TerminalLeafIsZero(t *testing.T) {
	f := forest.New()
	leaf := f.Node("hello", 0, 1)
	assert.Equal(t, 0.0, NodeCost(leaf))
}

func TestSubCost_SumsChildrenAndOwnCost(t *testing.T) {
	f := forest.New()
	left := f.Node("a", 0, 1)
	right := f.Node("b", 1, 1)

	parent := f.Node("[a-b]", 0, 2)
	parent.AddSub(left, right, automaton.RuleProps{Cost: 0.25})

	require.Len(t, parent.Subs, 1)
	assert.Equal(t, 0.25, SubCost(parent.Subs[0]))
}

func TestSubCost_UsesCheapestInsertionVariant(t *testing.T) {
	f := forest.New()
	left := f.Node("a", 0, 1)

	parent := f.Node("[x]", 0, 1)
	parent.AddSub(left, nil, automaton.RuleProps{Cost: 0.5})
	parent.AddSub(left, nil, automaton.RuleProps{Cost: 0.1})

	require.Len(t, parent.Subs, 1)
	assert.Equal(t, 0.1, SubCost(parent.Subs[0]))
}

func TestNodeCost_PicksCheapestSub(t *testing.T) {
	f := forest.New()
	leafA := f.Node("a", 0, 1)
	leafB := f.Node("b", 0, 1)

	n := f.Node("[n]", 0, 1)
	n.AddSub(leafA, nil, automaton.RuleProps{Cost: 0.9})
	n.AddSub(leafB, nil, automaton.RuleProps{Cost: 0.2})

	assert.Equal(t, 0.2, NodeCost(n))
}

func TestSubCost_MemoizedOnce(t *testing.T) {
	f := forest.New()
	left := f.Node("a", 0, 1)
	parent := f.Node("[x]", 0, 1)
	sub := parent.AddSub(left, nil, automaton.RuleProps{Cost: 1})

	first := SubCost(sub)
	sub.RuleProps[0].Cost = 99
	second := SubCost(sub)
	assert.Equal(t, first, second)
}
