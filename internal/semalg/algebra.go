package semalg

import "github.com/dekarrin/sturgeon/internal/semgrammar"

// negationFuncName is the conventional name a grammar-authoring package
// gives its logical-negation semantic; the algebra only needs to recognize
// it by name since negation carries no special field on Semantic itself.
const negationFuncName = "not"

// SumCosts computes the post-order sum of every node's cost.
func SumCosts(t semgrammar.SemTree) float64 {
	var total float64
	for _, n := range t {
		total += n.Def.Cost
		total += SumCosts(n.Children)
	}
	return total
}

// IsRHS reports whether every function node in t has a non-empty,
// recursively-RHS children sequence.
func IsRHS(t semgrammar.SemTree) bool {
	for _, n := range t {
		if n.Def.IsFunction {
			if len(n.Children) == 0 {
				return false
			}
			if !IsRHS(n.Children) {
				return false
			}
		}
	}
	return true
}

// IsForbiddenMultiple is the fast pre-check ahead of a full merge: true if newLhs's
// semantic forbids multiple and an equal-identity function node already
// appears in rhs.
func IsForbiddenMultiple(rhs semgrammar.SemTree, newLhs semgrammar.SemNode) bool {
	if !newLhs.Def.ForbidsMultiple {
		return false
	}
	for _, n := range rhs {
		if n.Def == newLhs.Def {
			return true
		}
	}
	return false
}

func isNegationOf(negNode, plain semgrammar.SemNode) bool {
	if negNode.Def.Name != negationFuncName || !negNode.Def.IsFunction || len(negNode.Children) != 1 {
		return false
	}
	return negNode.Children[0].StructuralEqual(plain)
}

func hasNegationConflict(a, b semgrammar.SemTree) bool {
	for _, na := range a {
		for _, nb := range b {
			if isNegationOf(na, nb) || isNegationOf(nb, na) {
				return true
			}
		}
	}
	return false
}

// MergeRHS combines two already-reduced semantic trees that share a
// parent. It fails with DuplicateSemanticInMergeError if: (i)
// both contain a function with ForbidsMultiple set and equal identity, (ii)
// either contains not(X) and the other contains a structurally equal X, or
// (iii) any node of b is structurally equal to any node of a. On success it
// returns a ∥ b; sorting is deferred until LHS reduction.
func MergeRHS(a, b semgrammar.SemTree) (semgrammar.SemTree, error) {
	for _, na := range a {
		if !na.Def.ForbidsMultiple {
			continue
		}
		for _, nb := range b {
			if na.Def == nb.Def {
				return nil, &DuplicateSemanticInMergeError{Reason: "forbidsMultiple function " + na.Def.Name + " appears on both sides"}
			}
		}
	}
	if hasNegationConflict(a, b) {
		return nil, &DuplicateSemanticInMergeError{Reason: "negation conflict between merged trees"}
	}
	if a.ContainsAny(b) {
		return nil, &DuplicateSemanticInMergeError{Reason: "structurally duplicate node in both trees"}
	}

	merged := make(semgrammar.SemTree, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return merged, nil
}

// Reduce applies a one-function LHS semantic to an already-reduced RHS
// tree.
func Reduce(lhs *semgrammar.Semantic, rhs semgrammar.SemTree) (semgrammar.SemTree, error) {
	if len(rhs) < lhs.MinParams {
		return nil, &BadArityError{Semantic: lhs.Name, NumArgs: len(rhs), Min: lhs.MinParams, Max: lhs.MaxParams}
	}
	if len(rhs) > lhs.MaxParams && lhs.MaxParams > 1 && !lhs.ForbidsMultiple {
		return nil, &BadArityError{Semantic: lhs.Name, NumArgs: len(rhs), Min: lhs.MinParams, Max: lhs.MaxParams}
	}

	// special case (a): intersect with a single argument passes through
	// unchanged.
	if lhs.Name == "intersect" && len(rhs) == 1 {
		return rhs.Copy(), nil
	}

	// special case (b): over-arity against a maxParams==1 function clones
	// the function node once per child, e.g. "repos liked by me and my
	// followers" becomes two copies of repos-liked(.).
	if len(rhs) > lhs.MaxParams && lhs.MaxParams == 1 {
		clones := make(semgrammar.SemTree, len(rhs))
		for i, child := range rhs {
			clones[i] = semgrammar.SemNode{Def: lhs, Children: semgrammar.SemTree{child}}
		}
		Sort(clones)
		return clones, nil
	}

	children := rhs.Copy()
	Sort(children)
	return semgrammar.SemTree{{Def: lhs, Children: children}}, nil
}
