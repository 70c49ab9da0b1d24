package search

import (
	"testing"

	"github.com/dekarrin/sturgeon/internal/automaton"
	"github.com/dekarrin/sturgeon/internal/forest"
	"github.com/dekarrin/sturgeon/internal/parser"
	"github.com/dekarrin/sturgeon/internal/semgrammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_ReturnsTreesInAscendingCost(t *testing.T) {
	f := forest.New()
	cheap := f.Node("cheap", 0, 1)
	cheap.Text = "cheap"
	costly := f.Node("costly", 0, 1)
	costly.Text = "costly"
	root := f.Node("[root]", 0, 1)
	root.AddSub(costly, nil, automaton.RuleProps{
		Cost:        2,
		HasSemantic: true,
		Semantic:    semgrammar.SemTree{{Def: &semgrammar.Semantic{Name: "b"}}},
	})
	root.AddSub(cheap, nil, automaton.RuleProps{
		Cost:        0.1,
		HasSemantic: true,
		Semantic:    semgrammar.SemTree{{Def: &semgrammar.Semantic{Name: "a"}}},
	})

	trees := Search(root, 2)
	require.Len(t, trees, 2)
	assert.Equal(t, 0.1, trees[0].Cost)
	assert.Equal(t, 2.0, trees[1].Cost)
}

func TestSearch_DropsDuplicateSemantic(t *testing.T) {
	f := forest.New()
	argA := &semgrammar.Semantic{Name: "a"}
	left := f.Node("leaf-a", 0, 1)
	right := f.Node("leaf-b", 0, 1)

	root := f.Node("[root]", 0, 1)
	root.AddSub(left, nil, automaton.RuleProps{
		Cost: 0, HasSemantic: true, Semantic: semgrammar.SemTree{{Def: argA}},
	})
	root.AddSub(right, nil, automaton.RuleProps{
		Cost: 1, HasSemantic: true, Semantic: semgrammar.SemTree{{Def: argA}},
	})

	trees := Search(root, 5)
	assert.Len(t, trees, 1)
}

func TestSearch_DuplicateTextAttachesDisambiguation(t *testing.T) {
	f := forest.New()
	leaf := f.Node("same-words", 0, 1)
	leaf.Text = "my repos"

	semA := &semgrammar.Semantic{Name: "repos-liked"}
	semB := &semgrammar.Semantic{Name: "repos-owned"}

	root := f.Node("[root]", 0, 1)
	root.AddSub(leaf, nil, automaton.RuleProps{
		Cost: 0, HasSemantic: true, Semantic: semgrammar.SemTree{{Def: semA}},
	})
	root.AddSub(leaf, nil, automaton.RuleProps{
		Cost: 1, HasSemantic: true, Semantic: semgrammar.SemTree{{Def: semB}},
	})

	trees := Search(root, 5)
	require.Len(t, trees, 1)
	require.Len(t, trees[0].Disambiguations, 1)
	assert.Equal(t, "repos-owned", trees[0].Disambiguations[0])
}

func TestSearch_CollapsesVariantsSharingSemanticAndText(t *testing.T) {
	f := forest.New()
	root := f.Node("[root]", 0, 1)
	for i := 0; i < 5; i++ {
		leaf := f.Node("leaf", 0, 1)
		root.AddSub(leaf, nil, automaton.RuleProps{
			Cost: float64(i), HasSemantic: true,
			Semantic: semgrammar.SemTree{{Def: &semgrammar.Semantic{Name: "x"}}},
		})
	}
	trees := Search(root, 2)
	assert.Len(t, trees, 1, "all five variants share one semantic and one text, so only the cheapest is unique")
}

// buildGreetingGrammar constructs a tiny end-to-end grammar, "[greeting] ->
// [hi] [name]", with a semantic function composing the matched entity.
func buildGreetingGrammar(t *testing.T) *semgrammar.Grammar {
	t.Helper()
	g := semgrammar.New()

	// declared first so it becomes the grammar's start symbol
	greet, err := g.NewSymbol(semgrammar.SourceLoc{}, "Greeting")
	require.NoError(t, err)

	greetTo, err := g.NewSemantic(semgrammar.SemanticOpts{
		Name: "greet", IsFunction: true, MinParams: 1, MaxParams: 1,
	}, semgrammar.SourceLoc{})
	require.NoError(t, err)

	person, err := g.NewEntityCategory("person", nil, semgrammar.SourceLoc{})
	require.NoError(t, err)
	_, err = person.AddInstance("sam", "sam-1", semgrammar.SourceLoc{})
	require.NoError(t, err)

	name, err := g.NewSymbol(semgrammar.SourceLoc{}, "Name")
	require.NoError(t, err)
	_, err = g.AddRule(name.Name, semgrammar.RuleOpts{
		RHS: []string{semgrammar.EntityCategorySymbolName("person")},
	}, semgrammar.SourceLoc{})
	require.NoError(t, err)

	hi, err := g.NewSymbol(semgrammar.SourceLoc{}, "Hi")
	require.NoError(t, err)
	_, err = g.AddRule(hi.Name, semgrammar.RuleOpts{
		RHS: []string{"hi"},
	}, semgrammar.SourceLoc{})
	require.NoError(t, err)

	_, err = g.AddRule(greet.Name, semgrammar.RuleOpts{
		RHS:      []string{hi.Name, name.Name},
		Semantic: semgrammar.SemTree{{Def: greetTo}},
	}, semgrammar.SourceLoc{})
	require.NoError(t, err)

	return g
}

func TestSearch_EndToEndParseAndSearch(t *testing.T) {
	g := buildGreetingGrammar(t)
	table, err := automaton.Build(g)
	require.NoError(t, err)

	res, err := parser.Parse(g, table, []string{"hi", "sam"})
	require.NoError(t, err)

	trees := Search(res.Root, 3)
	require.Len(t, trees, 1)
	assert.Equal(t, "hi sam", trees[0].Text)
	require.Len(t, trees[0].Semantic, 1)
	assert.Equal(t, "greet", trees[0].Semantic[0].Def.Name)
	require.Len(t, trees[0].Semantic[0].Children, 1)
	assert.Equal(t, "sam-1", trees[0].Semantic[0].Children[0].Def.Name)
}
