package semalg

import "github.com/dekarrin/sturgeon/internal/semgrammar"

// Compare implements the total order on semantic nodes: an argument node
// sorts before any function node; functions compare by name ascending, with ties broken by a recursive,
// child-wise compare; arguments compare by identity equality first (equal
// descriptors are equal), then by name.
func Compare(a, b semgrammar.SemNode) int {
	aIsFunc := a.Def.IsFunction
	bIsFunc := b.Def.IsFunction

	if aIsFunc != bIsFunc {
		if !aIsFunc {
			return -1
		}
		return 1
	}

	if !aIsFunc {
		if a.Def == b.Def {
			return 0
		}
		return compareStrings(a.Def.Name, b.Def.Name)
	}

	if a.Def.Name != b.Def.Name {
		return compareStrings(a.Def.Name, b.Def.Name)
	}

	return CompareTrees(a.Children, b.Children)
}

// CompareTrees extends Compare to ordered sibling sequences, comparing
// pairwise and falling back to length when one is a prefix of the other.
func CompareTrees(a, b semgrammar.SemTree) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Sort sorts a semantic tree's top-level siblings in place by Compare,
// satisfying invariant P6 "sorted siblings".
func Sort(t semgrammar.SemTree) {
	// insertion sort: sibling counts are small (bounded by a function's
	// maxParams in practice) and this keeps the sort stable without an
	// allocation.
	for i := 1; i < len(t); i++ {
		for j := i; j > 0 && Compare(t[j-1], t[j]) > 0; j-- {
			t[j-1], t[j] = t[j], t[j-1]
		}
	}
}
