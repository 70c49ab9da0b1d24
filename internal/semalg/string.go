package semalg

import (
	"strings"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// SemanticToString produces a canonical string projection of a reduced
// semantic tree, used by the search layer's uniqueness filter
// to detect two accepted parses with the same meaning. Siblings must
// already be sorted for this to be a true canonical form.
func SemanticToString(t semgrammar.SemTree) string {
	var sb strings.Builder
	writeTree(&sb, t)
	return sb.String()
}

func writeTree(sb *strings.Builder, t semgrammar.SemTree) {
	for i, n := range t {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeNode(sb, n)
	}
}

func writeNode(sb *strings.Builder, n semgrammar.SemNode) {
	sb.WriteString(n.Def.Name)
	if n.Def.IsFunction {
		sb.WriteByte('(')
		writeTree(sb, n.Children)
		sb.WriteByte(')')
	}
}
