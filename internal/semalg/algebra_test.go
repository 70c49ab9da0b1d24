package semalg

import (
	"testing"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func argSem(name string, cost float64) *semgrammar.Semantic {
	return &semgrammar.Semantic{Name: name, Cost: cost}
}

func funcSem(name string, cost float64, min, max int, forbidsMultiple bool) *semgrammar.Semantic {
	return &semgrammar.Semantic{Name: name, Cost: cost, IsFunction: true, MinParams: min, MaxParams: max, ForbidsMultiple: forbidsMultiple}
}

func TestCompare_ArgumentBeforeFunction(t *testing.T) {
	arg := semgrammar.SemNode{Def: argSem("me", 0)}
	fn := semgrammar.SemNode{Def: funcSem("repos-liked", 0, 1, 1, false), Children: semgrammar.SemTree{arg}}
	assert.Equal(t, -1, Compare(arg, fn))
	assert.Equal(t, 1, Compare(fn, arg))
}

func TestCompare_FunctionsByName(t *testing.T) {
	a := semgrammar.SemNode{Def: funcSem("alpha", 0, 0, 1, false)}
	b := semgrammar.SemNode{Def: funcSem("beta", 0, 0, 1, false)}
	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 1, Compare(b, a))
	assert.Equal(t, 0, Compare(a, a))
}

func TestSumCosts(t *testing.T) {
	me := argSem("me", 0.5)
	reposLiked := funcSem("repos-liked", 0.25, 1, 1, false)
	tree := semgrammar.SemTree{{Def: reposLiked, Children: semgrammar.SemTree{{Def: me}}}}
	assert.InDelta(t, 0.75, SumCosts(tree), 1e-9)
}

func TestIsRHS(t *testing.T) {
	me := argSem("me", 0)
	reposLiked := funcSem("repos-liked", 0, 1, 1, false)
	complete := semgrammar.SemTree{{Def: reposLiked, Children: semgrammar.SemTree{{Def: me}}}}
	assert.True(t, IsRHS(complete))

	incomplete := semgrammar.SemTree{{Def: reposLiked}}
	assert.False(t, IsRHS(incomplete))
}

func TestMergeRHS_ForbiddenMultiple(t *testing.T) {
	me := argSem("me", 0)
	unique := funcSem("unique-owner", 0, 1, 1, true)
	a := semgrammar.SemTree{{Def: unique, Children: semgrammar.SemTree{{Def: me}}}}
	b := semgrammar.SemTree{{Def: unique, Children: semgrammar.SemTree{{Def: me}}}}

	_, err := MergeRHS(a, b)
	var dup *DuplicateSemanticInMergeError
	require.ErrorAs(t, err, &dup)
}

func TestMergeRHS_NegationConflict(t *testing.T) {
	x := argSem("closed", 0)
	not := funcSem("not", 0, 1, 1, false)
	a := semgrammar.SemTree{{Def: x}}
	b := semgrammar.SemTree{{Def: not, Children: semgrammar.SemTree{{Def: x}}}}

	_, err := MergeRHS(a, b)
	var dup *DuplicateSemanticInMergeError
	require.ErrorAs(t, err, &dup)
}

func TestMergeRHS_Success(t *testing.T) {
	me := argSem("me", 0)
	followers := argSem("followers", 0)
	a := semgrammar.SemTree{{Def: me}}
	b := semgrammar.SemTree{{Def: followers}}

	merged, err := MergeRHS(a, b)
	require.NoError(t, err)
	assert.Len(t, merged, 2)
}

func TestReduce_BadArity(t *testing.T) {
	reposLiked := funcSem("repos-liked", 0, 1, 1, false)
	_, err := Reduce(reposLiked, semgrammar.SemTree{})
	var bad *BadArityError
	require.ErrorAs(t, err, &bad)
}

func TestReduce_IntersectPassthrough(t *testing.T) {
	intersect := funcSem("intersect", 0, 1, 2, false)
	me := argSem("me", 0)
	rhs := semgrammar.SemTree{{Def: me}}

	out, err := Reduce(intersect, rhs)
	require.NoError(t, err)
	assert.True(t, out.StructuralEqual(rhs))
}

func TestReduce_MaxParamsOneCloning(t *testing.T) {
	reposLiked := funcSem("repos-liked", 1, 1, 1, false)
	me := argSem("me", 0)
	followers := argSem("followers", 0)
	rhs := semgrammar.SemTree{{Def: me}, {Def: followers}}

	out, err := Reduce(reposLiked, rhs)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, n := range out {
		assert.Equal(t, reposLiked, n.Def)
		assert.Len(t, n.Children, 1)
	}
}

func TestReduce_SingleFunctionNode(t *testing.T) {
	and := funcSem("and", 0, 2, 2, false)
	a := argSem("a", 0)
	b := argSem("b", 0)
	rhs := semgrammar.SemTree{{Def: b}, {Def: a}} // deliberately unsorted

	out, err := Reduce(and, rhs)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, and, out[0].Def)
	require.Len(t, out[0].Children, 2)
	assert.Equal(t, a, out[0].Children[0].Def)
	assert.Equal(t, b, out[0].Children[1].Def)
}

func TestSemanticToString(t *testing.T) {
	me := argSem("me", 0)
	reposLiked := funcSem("repos-liked", 0, 1, 1, false)
	tree := semgrammar.SemTree{{Def: reposLiked, Children: semgrammar.SemTree{{Def: me}}}}
	assert.Equal(t, "repos-liked(me)", SemanticToString(tree))
}
