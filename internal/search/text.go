package search

import (
	"strings"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// assembleText walks a chosen candidate left-to-right, composing its final
// display text. A leaf candidate (matched directly off the token stream)
// contributes its own literal surface form as-is. An internal candidate
// pushes its rule's gramProps (if any) onto the conjugation stack, then
// places its own rule text relative to its child/children: before them for
// an ordinary rule or a left-side insertion, but after the surviving child
// when a partial-insertion rule's insertionIdx marks the right branch as
// inserted. In that deferred case the text is conjugated only once the
// first branch has been realized, so an inflection such as have/has picks
// up the person-number that branch established. The stack threads through
// the whole traversal: entries consumed by one branch are gone for its
// right siblings, and entries pushed deeper remain visible until consumed.
func assembleText(c *candidate, stack []semgrammar.GramProps) (string, []semgrammar.GramProps) {
	if c.left == nil && c.right == nil {
		return c.leafText, stack
	}

	if c.rp.HasProps {
		stack = append(append([]semgrammar.GramProps{}, stack...), c.rp.Props)
	}

	var ownText, leftText, rightText string
	if c.rp.IsInsertion && c.rp.InsertionIdx == semgrammar.InsertionRight {
		if c.left != nil {
			leftText, stack = assembleText(c.left, stack)
		}
		if c.rp.HasText {
			var conjugated semgrammar.Text
			conjugated, stack = conjugateAgainstStack(c.rp.Text, stack)
			ownText = conjugated.String()
		}
		return joinNonEmpty(leftText, ownText), stack
	}

	if c.rp.HasText {
		var conjugated semgrammar.Text
		conjugated, stack = conjugateAgainstStack(c.rp.Text, stack)
		ownText = conjugated.String()
	}
	if c.left != nil {
		leftText, stack = assembleText(c.left, stack)
	}
	if c.right != nil {
		rightText, stack = assembleText(c.right, stack)
	}
	return joinNonEmpty(ownText, leftText, rightText), stack
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
