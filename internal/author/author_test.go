package author

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

func TestAuthor_BuildsSimpleGrammar(t *testing.T) {
	a := New("fixture.grammar")

	greet, err := a.NewSemantic(semgrammar.SemanticOpts{Name: "greet", IsFunction: true, MinParams: 1, MaxParams: 1})
	require.NoError(t, err)

	hi, err := a.NewSymbol("Hi")
	require.NoError(t, err)
	_, err = a.AddRule(hi.Name, semgrammar.RuleOpts{RHS: []string{"hi"}})
	require.NoError(t, err)

	_, rule, err := a.NewBinaryRule(hi.Name, hi.Name, semgrammar.RuleOpts{
		Semantic: semgrammar.SemTree{{Def: greet}},
	})
	require.NoError(t, err)
	assert.Equal(t, "greet", rule.Semantic[0].Def.Name)
}

func TestAuthor_TagsErrorsWithSharedLoc(t *testing.T) {
	a := New("fixture.grammar")
	_, err := a.NewSymbol("Dup")
	require.NoError(t, err)
	_, err = a.NewSymbol("Dup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fixture.grammar")
}

func TestAuthor_AtTagsASpecificLine(t *testing.T) {
	a := New("fixture.grammar")
	b := a.At(42)
	assert.Equal(t, 0, a.Loc.Line)
	assert.Equal(t, 42, b.Loc.Line)
	assert.Equal(t, a.G, b.G)
}
