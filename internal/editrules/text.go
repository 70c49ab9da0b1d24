// Package editrules implements the edit-rule generator: it extends a
// validated grammar with synthesized rules that let the parser recover from
// omitted words, swapped word order, and filler text.
package editrules

import (
	"strings"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// ConjugateText resolves every inflected fragment of t against the given
// grammatical properties, choosing the surface form from the first match
// of gramCase, then verbForm, then personNumber. Adjacent
// resolved/plain fragments coalesce with a single-space separator.
// Unresolvable fragments are left as inflection tables, to be resolved at
// search time.
func ConjugateText(t semgrammar.Text, props semgrammar.GramProps) semgrammar.Text {
	var out semgrammar.Text
	var pendingPlain []string

	flush := func() {
		if len(pendingPlain) > 0 {
			out = append(out, semgrammar.PlainFragment(strings.Join(pendingPlain, " ")))
			pendingPlain = nil
		}
	}

	keys := lookupKeys(props)

	for _, frag := range t {
		if frag.IsPlain {
			pendingPlain = append(pendingPlain, frag.Plain)
			continue
		}
		if _, form, ok := frag.Table.Lookup(keys...); ok {
			pendingPlain = append(pendingPlain, form)
			continue
		}
		flush()
		out = append(out, frag)
	}
	flush()
	return out
}

func lookupKeys(props semgrammar.GramProps) []semgrammar.InflectKey {
	var keys []semgrammar.InflectKey
	if props.HasCase {
		keys = append(keys, caseKey(props.Case))
	}
	if props.HasVerb {
		keys = append(keys, semgrammar.InflectPast)
	}
	if props.HasPerson {
		keys = append(keys, personKeys(props.Person)...)
	}
	return keys
}

func caseKey(c semgrammar.GramCase) semgrammar.InflectKey {
	if c == semgrammar.CaseObj {
		return semgrammar.InflectObj
	}
	return semgrammar.InflectNom
}

// personKeys returns the table keys a person-number can resolve through:
// first person and plural both fall back to the shared oneOrPl form.
func personKeys(p semgrammar.PersonNumber) []semgrammar.InflectKey {
	switch p {
	case semgrammar.PersonOne:
		return []semgrammar.InflectKey{semgrammar.InflectOne, semgrammar.InflectOneOrPl}
	case semgrammar.PersonThreeSg:
		return []semgrammar.InflectKey{semgrammar.InflectThreeSg}
	default:
		return []semgrammar.InflectKey{semgrammar.InflectPl, semgrammar.InflectOneOrPl}
	}
}
