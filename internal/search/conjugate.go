package search

import (
	"strings"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// conjugateAgainstStack resolves every inflected fragment of t against
// stack, scanning from most-recent to oldest for the first match among
// verbForm, personNumber, gramCase.
// The matched stack entry is consumed unless it also declares a
// personNumber paired with a gramCase, in which case it remains available
// for the sibling branch that still needs it. Returns the resolved text and
// the (possibly trimmed) stack to use from here on down this branch.
func conjugateAgainstStack(t semgrammar.Text, stack []semgrammar.GramProps) (semgrammar.Text, []semgrammar.GramProps) {
	var out semgrammar.Text
	var pendingPlain []string

	flush := func() {
		if len(pendingPlain) > 0 {
			out = append(out, semgrammar.PlainFragment(strings.Join(pendingPlain, " ")))
			pendingPlain = nil
		}
	}

	for _, frag := range t {
		if frag.IsPlain {
			pendingPlain = append(pendingPlain, frag.Plain)
			continue
		}
		form, newStack, ok := lookupInStack(frag.Table, stack)
		if ok {
			pendingPlain = append(pendingPlain, form)
			stack = newStack
			continue
		}
		flush()
		out = append(out, frag)
	}
	flush()
	return out, stack
}

// lookupInStack scans stack from the end (most recent) for the first entry
// whose verbForm, personNumber, or gramCase (in that priority order) has an
// entry in table.
func lookupInStack(table semgrammar.InflectionTable, stack []semgrammar.GramProps) (string, []semgrammar.GramProps, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		props := stack[i]
		var keys []semgrammar.InflectKey
		if props.HasVerb {
			keys = append(keys, semgrammar.InflectPast)
		}
		if props.HasPerson {
			keys = append(keys, personKeys(props.Person)...)
		}
		if props.HasCase {
			keys = append(keys, caseKey(props.Case))
		}
		if len(keys) == 0 {
			continue
		}
		_, form, ok := table.Lookup(keys...)
		if !ok {
			continue
		}
		if props.HasPerson && props.HasCase {
			return form, stack, true
		}
		rest := make([]semgrammar.GramProps, 0, len(stack)-1)
		rest = append(rest, stack[:i]...)
		rest = append(rest, stack[i+1:]...)
		return form, rest, true
	}
	return "", stack, false
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
