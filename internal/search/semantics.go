package search

import (
	"github.com/dekarrin/sturgeon/internal/automaton"
	"github.com/dekarrin/sturgeon/internal/semalg"
	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// composeSemantic builds the semantic tree a candidate alternative
// contributes upward: the children's own semantics are merged left-to-right,
// any inserted semantic from a partial-insertion rule is
// merged in, and finally the rule's own LHS semantic is applied: either as
// a reduce over the accumulated RHS, or (when semanticIsRHS is set, or the
// LHS carries no function to reduce with) merged alongside it. This mirrors
// internal/editrules's insertSemantic, duplicated here since that helper is
// unexported and editrules is a compile-time-only package this one must not
// depend on.
func composeSemantic(rp automaton.RuleProps, left, right *candidate) (semgrammar.SemTree, error) {
	var rhs semgrammar.SemTree
	var err error

	if left != nil && len(left.semantic) > 0 {
		rhs = left.semantic
	}
	if right != nil && len(right.semantic) > 0 {
		rhs, err = semalg.MergeRHS(rhs, right.semantic)
		if err != nil {
			return nil, err
		}
	}
	if rp.HasInsertedSem && len(rp.InsertedSem) > 0 {
		rhs, err = semalg.MergeRHS(rhs, rp.InsertedSem)
		if err != nil {
			return nil, err
		}
	}

	if !rp.HasSemantic || len(rp.Semantic) == 0 {
		return rhs, nil
	}
	if rp.SemanticIsRHS {
		return semalg.MergeRHS(rhs, rp.Semantic)
	}
	if len(rp.Semantic) == 1 && rp.Semantic[0].Def.IsFunction {
		// an empty rhs still goes through Reduce so a function needing
		// arguments (intersect included) rejects the derivation
		return semalg.Reduce(rp.Semantic[0].Def, rhs)
	}
	return semalg.MergeRHS(rhs, rp.Semantic)
}
