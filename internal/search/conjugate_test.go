package search

import (
	"testing"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
	"github.com/stretchr/testify/assert"
)

func TestConjugateAgainstStack_MatchesMostRecentFirst(t *testing.T) {
	table := semgrammar.InflectionTable{
		semgrammar.InflectOne:     "am",
		semgrammar.InflectThreeSg: "is",
	}
	text := semgrammar.Text{semgrammar.TableFragment(table)}

	stack := []semgrammar.GramProps{
		{HasPerson: true, Person: semgrammar.PersonOne},
		{HasPerson: true, Person: semgrammar.PersonThreeSg},
	}

	out, rest := conjugateAgainstStack(text, stack)
	assert.Equal(t, "is", out.String())
	assert.Len(t, rest, 1)
	assert.Equal(t, semgrammar.PersonOne, rest[0].Person)
}

func TestConjugateAgainstStack_UnmatchedFragmentLeftAsTable(t *testing.T) {
	table := semgrammar.InflectionTable{semgrammar.InflectPast: "ran"}
	text := semgrammar.Text{semgrammar.TableFragment(table)}

	stack := []semgrammar.GramProps{{HasCase: true, Case: semgrammar.CaseObj}}

	out, rest := conjugateAgainstStack(text, stack)
	assert.Len(t, out, 1)
	assert.False(t, out[0].IsPlain)
	assert.Len(t, rest, 1)
}

func TestConjugateAgainstStack_PairedPersonAndCaseEntryStaysOnStack(t *testing.T) {
	table := semgrammar.InflectionTable{semgrammar.InflectOne: "me"}
	text := semgrammar.Text{semgrammar.TableFragment(table)}

	stack := []semgrammar.GramProps{{
		HasPerson: true, Person: semgrammar.PersonOne,
		HasCase: true, Case: semgrammar.CaseObj,
	}}

	out, rest := conjugateAgainstStack(text, stack)
	assert.Equal(t, "me", out.String())
	assert.Len(t, rest, 1, "a paired person+case entry must remain for the other branch")
}

func TestConjugateAgainstStack_CoalescesPlainFragments(t *testing.T) {
	text := semgrammar.Text{
		semgrammar.PlainFragment("the"),
		semgrammar.PlainFragment("cat"),
	}
	out, _ := conjugateAgainstStack(text, nil)
	assert.Equal(t, "the cat", out.String())
}
