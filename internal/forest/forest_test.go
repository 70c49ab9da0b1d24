package forest

import (
	"testing"

	"github.com/dekarrin/sturgeon/internal/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForest_NodeIsSharedByKey(t *testing.T) {
	f := New()
	a := f.Node("NP", 0, 2)
	b := f.Node("NP", 0, 2)
	assert.Same(t, a, b)

	c := f.Node("NP", 1, 2)
	assert.NotSame(t, a, c)
}

func TestNode_AddSub_DedupesByChildren(t *testing.T) {
	f := New()
	n := f.Node("S", 0, 3)
	left := f.Node("VP", 0, 2)
	right := f.Node("NP", 2, 1)

	s1 := n.AddSub(left, right, automaton.RuleProps{Cost: 0.5})
	s2 := n.AddSub(left, right, automaton.RuleProps{Cost: 0.1, IsInsertion: true})

	require.Same(t, s1, s2)
	require.Len(t, s1.RuleProps, 2)
	assert.LessOrEqual(t, s1.RuleProps[0].Cost, s1.RuleProps[1].Cost)
	assert.Len(t, n.Subs, 1)
}

func TestNode_AddSub_SameKeyChildrenShareSub(t *testing.T) {
	f := New()
	n := f.Node("S", 0, 3)
	left := f.Node("VP", 0, 2)
	right := f.Node("NP", 2, 1)
	other := f.Node("NP", 2, 1)

	n.AddSub(left, right, automaton.RuleProps{Cost: 1})
	n.AddSub(left, other, automaton.RuleProps{Cost: 1})

	assert.Len(t, n.Subs, 1, "nodes with identical (symbol,start,size) are the same node")
}

func TestSub_MinCost_SetOnce(t *testing.T) {
	s := &Sub{}
	_, ok := s.MinCost()
	assert.False(t, ok)

	s.SetMinCost(1.5)
	v, ok := s.MinCost()
	require.True(t, ok)
	assert.Equal(t, 1.5, v)

	s.SetMinCost(9.9)
	v, _ = s.MinCost()
	assert.Equal(t, 1.5, v, "minCost is memoized once per sub")
}

func TestForest_RootRoundTrip(t *testing.T) {
	f := New()
	n := f.Node("start", 0, 4)
	assert.Nil(t, f.Root())
	f.SetRoot(n)
	assert.Same(t, n, f.Root())
}
