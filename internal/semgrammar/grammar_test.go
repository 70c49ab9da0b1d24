package semgrammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkFunc(g *Grammar, name string, min, max int, forbidsMultiple bool) *Semantic {
	sem, err := g.NewSemantic(SemanticOpts{Name: name, IsFunction: true, MinParams: min, MaxParams: max, ForbidsMultiple: forbidsMultiple}, SourceLoc{})
	if err != nil {
		panic(err)
	}
	return sem
}

func mkArg(g *Grammar, name string) *Semantic {
	sem, err := g.NewSemantic(SemanticOpts{Name: name}, SourceLoc{})
	if err != nil {
		panic(err)
	}
	return sem
}

func TestGrammar_NewSymbol(t *testing.T) {
	g := New()

	sym, err := g.NewSymbol(SourceLoc{}, "Repos", "Liked")
	require.NoError(t, err)
	assert.Equal(t, "[repos-liked]", sym.Name)

	_, err = g.NewSymbol(SourceLoc{}, "Repos", "Liked")
	var dupSym *DuplicateSymbolError
	assert.ErrorAs(t, err, &dupSym)

	_, err = g.NewSymbol(SourceLoc{}, "bad[name")
	var illFormed *IllFormedSymbolError
	assert.ErrorAs(t, err, &illFormed)
}

func TestGrammar_AddRule_TerminalAndDuplicate(t *testing.T) {
	g := New()

	sym, err := g.NewSymbol(SourceLoc{}, "Me")
	require.NoError(t, err)

	_, err = g.AddRule(sym.Name, RuleOpts{RHS: []string{"i"}}, SourceLoc{})
	require.NoError(t, err)

	_, err = g.AddRule(sym.Name, RuleOpts{RHS: []string{"i"}}, SourceLoc{})
	var dup *DuplicateRuleError
	assert.ErrorAs(t, err, &dup)
}

func TestGrammar_AddRule_BinaryArity(t *testing.T) {
	g := New()
	a, err := g.NewSymbol(SourceLoc{}, "A")
	require.NoError(t, err)
	b, err := g.NewSymbol(SourceLoc{}, "B")
	require.NoError(t, err)
	c, err := g.NewSymbol(SourceLoc{}, "C")
	require.NoError(t, err)

	_, err = g.AddRule(c.Name, RuleOpts{RHS: []string{a.Name, b.Name, a.Name}}, SourceLoc{})
	var illFormed *IllFormedRuleError
	assert.ErrorAs(t, err, &illFormed)
}

func TestGrammar_AddRule_TranspositionRequiresBinary(t *testing.T) {
	g := New()
	a, err := g.NewSymbol(SourceLoc{}, "A")
	require.NoError(t, err)

	_, err = g.AddRule(a.Name, RuleOpts{RHS: []string{"x"}, HasTransposition: true}, SourceLoc{})
	var illFormed *IllFormedRuleError
	assert.ErrorAs(t, err, &illFormed)
}

func TestGrammar_NewBinaryRule(t *testing.T) {
	g := New()
	a, err := g.NewSymbol(SourceLoc{}, "A")
	require.NoError(t, err)
	b, err := g.NewSymbol(SourceLoc{}, "B")
	require.NoError(t, err)

	sym, rule, err := g.NewBinaryRule(a.Name, b.Name, RuleOpts{Cost: 1}, SourceLoc{})
	require.NoError(t, err)
	assert.Equal(t, "[a-b]", sym.Name)
	assert.Equal(t, []string{a.Name, b.Name}, rule.RHS)
}

func TestGrammar_NewSemantic_BadArity(t *testing.T) {
	g := New()
	_, err := g.NewSemantic(SemanticOpts{Name: "foo", IsFunction: true, MinParams: 3, MaxParams: 1}, SourceLoc{})
	var illFormed *IllFormedSemanticError
	assert.ErrorAs(t, err, &illFormed)
}

func TestGrammar_EntityCategory_DuplicateCaseInsensitive(t *testing.T) {
	g := New()
	cat, err := g.NewEntityCategory("repo", []string{"lemurlib"}, SourceLoc{})
	require.NoError(t, err)

	_, err = cat.AddInstance("LemurLib", "", SourceLoc{})
	var dup *DuplicateEntityError
	assert.ErrorAs(t, err, &dup)

	inst, ok := cat.Lookup("LEMURLIB")
	require.True(t, ok)
	assert.Equal(t, "lemurlib", inst.Text)
	assert.NotEmpty(t, inst.ID)
}

func TestGrammar_Validate_MissingRHSSemantic(t *testing.T) {
	g := New()
	reposLiked := mkFunc(g, "repos-liked", 1, 1, false)
	me := mkArg(g, "me")
	_ = me

	s, err := g.NewSymbol(SourceLoc{}, "S")
	require.NoError(t, err)
	child, err := g.NewSymbol(SourceLoc{}, "Child")
	require.NoError(t, err)

	// S has a LHS semantic but its only child production has no RHS semantic
	// anywhere in its descent, so this should trigger MissingNeededRHSSemantic.
	_, err = g.AddRule(child.Name, RuleOpts{RHS: []string{"repos"}}, SourceLoc{})
	require.NoError(t, err)
	_, err = g.AddRule(s.Name, RuleOpts{
		RHS:      []string{child.Name},
		Semantic: SemTree{{Def: reposLiked}},
	}, SourceLoc{})
	require.NoError(t, err)

	warnings := g.Validate()
	found := false
	for _, w := range warnings {
		if w.Kind == "MissingNeededRHSSemantic" && w.Name == s.Name {
			found = true
		}
	}
	assert.True(t, found, "expected MissingNeededRHSSemantic warning, got %v", warnings)
}

func TestGrammar_AddRule_TerminalSemantics(t *testing.T) {
	g := New()
	a, err := g.NewSymbol(SourceLoc{}, "A")
	require.NoError(t, err)
	me, err := g.NewSemantic(SemanticOpts{Name: "me"}, SourceLoc{})
	require.NoError(t, err)
	fn, err := g.NewSemantic(SemanticOpts{Name: "followers", IsFunction: true, MinParams: 1, MaxParams: 1}, SourceLoc{})
	require.NoError(t, err)

	// an already-reduced argument semantic is fine on a plain terminal
	_, err = g.AddRule(a.Name, RuleOpts{RHS: []string{"i"}, Semantic: SemTree{{Def: me}}}, SourceLoc{})
	assert.NoError(t, err)

	// a function still awaiting its argument is not
	_, err = g.AddRule(a.Name, RuleOpts{RHS: []string{"who"}, Semantic: SemTree{{Def: fn}}}, SourceLoc{})
	var illFormed *IllFormedRuleError
	assert.ErrorAs(t, err, &illFormed)
}
