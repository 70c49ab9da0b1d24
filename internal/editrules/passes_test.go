package editrules

import (
	"testing"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConjugateText_ResolvesByCase(t *testing.T) {
	table := semgrammar.InflectionTable{
		semgrammar.InflectNom: "I",
		semgrammar.InflectObj: "me",
	}
	text := semgrammar.Text{semgrammar.TableFragment(table)}

	out := ConjugateText(text, semgrammar.GramProps{HasCase: true, Case: semgrammar.CaseObj})
	assert.Equal(t, "me", out.String())
}

func TestConjugateText_CoalescesAdjacentPlain(t *testing.T) {
	table := semgrammar.InflectionTable{semgrammar.InflectNom: "liked"}
	text := semgrammar.Text{
		semgrammar.PlainFragment("repos"),
		semgrammar.TableFragment(table),
		semgrammar.PlainFragment("by"),
	}
	out := ConjugateText(text, semgrammar.GramProps{HasCase: true, Case: semgrammar.CaseNom})
	assert.Equal(t, "repos liked by", out.String())
}

func TestConjugateText_LeavesUnresolvedTable(t *testing.T) {
	table := semgrammar.InflectionTable{semgrammar.InflectObj: "me"}
	text := semgrammar.Text{semgrammar.TableFragment(table)}
	out := ConjugateText(text, semgrammar.GramProps{})
	require.Len(t, out, 1)
	assert.False(t, out[0].IsPlain)
}

func buildInsertionGrammar(t *testing.T) *semgrammar.Grammar {
	t.Helper()
	g := semgrammar.New()

	wanted, err := g.NewSymbol(semgrammar.SourceLoc{}, "Me")
	require.NoError(t, err)
	_, err = g.AddRule(wanted.Name, semgrammar.RuleOpts{
		RHS: []string{""},
	}, semgrammar.SourceLoc{})
	require.NoError(t, err)

	return g
}

func TestPassA_RetiresEmptySymbolRule(t *testing.T) {
	g := buildInsertionGrammar(t)
	table := candidateTable{}
	passA(g, table)

	cands, ok := table["[me]"]
	require.True(t, ok)
	require.Len(t, cands, 1)
	assert.Empty(t, cands[0].Semantic)

	rules := g.Rules("[me]")
	assert.Empty(t, rules, "empty-symbol rule should have been retired")
}

func TestPassA_InsertionCostTerminal(t *testing.T) {
	g := semgrammar.New()
	pls, err := g.NewSymbol(semgrammar.SourceLoc{}, "Please")
	require.NoError(t, err)
	_, err = g.AddRule(pls.Name, semgrammar.RuleOpts{
		RHS:              []string{"please"},
		Cost:             0.1,
		HasInsertionCost: true,
		InsertionCost:    0.5,
	}, semgrammar.SourceLoc{})
	require.NoError(t, err)

	table := candidateTable{}
	passA(g, table)

	cands := table["[please]"]
	require.Len(t, cands, 1)
	assert.InDelta(t, 0.6, cands[0].Cost, 1e-6)
	assert.Equal(t, "please", cands[0].Text.String())

	rules := g.Rules("[please]")
	require.Len(t, rules, 1, "insertion-cost rule is kept, not retired")
}

func TestPassC_PartialInsertionUnaryRule(t *testing.T) {
	g := buildInsertionGrammar(t) // [me] has an empty-symbol candidate

	by, err := g.NewSymbol(semgrammar.SourceLoc{}, "By")
	require.NoError(t, err)
	_, err = g.AddRule(by.Name, semgrammar.RuleOpts{RHS: []string{"by"}}, semgrammar.SourceLoc{})
	require.NoError(t, err)

	n, err := g.NewSymbol(semgrammar.SourceLoc{}, "ByMe")
	require.NoError(t, err)
	_, err = g.AddRule(n.Name, semgrammar.RuleOpts{RHS: []string{by.Name, "[me]"}}, semgrammar.SourceLoc{})
	require.NoError(t, err)

	table := candidateTable{}
	passA(g, table)
	passB(g, table, 0)
	err = passC(g, table)
	require.NoError(t, err)

	var found bool
	for _, r := range g.Rules(n.Name) {
		if r.IsInsertion && r.SameRHS([]string{by.Name}) {
			found = true
			assert.Equal(t, semgrammar.InsertionRight, r.InsertionIdx)
		}
	}
	assert.True(t, found, "expected a partial-insertion unary rule over [byme] -> [by]")
}

func TestPassD_TranspositionSibling(t *testing.T) {
	g := semgrammar.New()
	a, err := g.NewSymbol(semgrammar.SourceLoc{}, "A")
	require.NoError(t, err)
	b, err := g.NewSymbol(semgrammar.SourceLoc{}, "B")
	require.NoError(t, err)
	n, err := g.NewSymbol(semgrammar.SourceLoc{}, "N")
	require.NoError(t, err)
	_, err = g.AddRule(n.Name, semgrammar.RuleOpts{
		RHS:               []string{a.Name, b.Name},
		HasTransposition:  true,
		TranspositionCost: 0.2,
	}, semgrammar.SourceLoc{})
	require.NoError(t, err)

	require.NoError(t, passD(g, 0))

	var found bool
	for _, r := range g.Rules(n.Name) {
		if r.IsTransposed {
			found = true
			assert.Equal(t, []string{b.Name, a.Name}, r.RHS)
		}
	}
	assert.True(t, found, "expected a transposed sibling rule")
	assert.Len(t, g.Rules(n.Name), 2, "original rule is retained alongside the transposed sibling")
}

func TestGenerate_SecondRunIsFixedPoint(t *testing.T) {
	g := buildInsertionGrammar(t) // [me] has an empty-symbol rule

	by, err := g.NewSymbol(semgrammar.SourceLoc{}, "By")
	require.NoError(t, err)
	_, err = g.AddRule(by.Name, semgrammar.RuleOpts{RHS: []string{"by"}}, semgrammar.SourceLoc{})
	require.NoError(t, err)

	n, err := g.NewSymbol(semgrammar.SourceLoc{}, "ByMe")
	require.NoError(t, err)
	_, err = g.AddRule(n.Name, semgrammar.RuleOpts{
		RHS:               []string{by.Name, "[me]"},
		HasTransposition:  true,
		TranspositionCost: 0.3,
	}, semgrammar.SourceLoc{})
	require.NoError(t, err)

	_, err = Generate(g)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, nt := range g.NonTerminals() {
		counts[nt] = len(g.Rules(nt))
	}

	_, err = Generate(g)
	require.NoError(t, err)

	for _, nt := range g.NonTerminals() {
		assert.Equal(t, counts[nt], len(g.Rules(nt)), "rule count changed on second run for %s", nt)
	}
}
