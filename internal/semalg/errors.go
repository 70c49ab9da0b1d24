// Package semalg implements the pure functions over semantic trees defined
// by the grammar model: cost summation, RHS-merge, LHS-reduce, the RHS-ness
// predicate, sibling ordering, and string projection.
package semalg

import "fmt"

// DuplicateSemanticInMergeError is returned by MergeRHS when two RHS trees
// cannot be combined under the same parent (a forbidden-multiple collision,
// a negation conflict, or a structural duplicate). Callers at the search
// layer convert this into "reject this successor" rather than treating it
// as fatal.
type DuplicateSemanticInMergeError struct {
	Reason string
}

func (e *DuplicateSemanticInMergeError) Error() string {
	return fmt.Sprintf("cannot merge semantic trees: %s", e.Reason)
}

// BadArityError is returned by Reduce when a RHS tree's size doesn't satisfy
// the LHS function's min/max parameter bounds.
type BadArityError struct {
	Semantic string
	NumArgs  int
	Min, Max int
}

func (e *BadArityError) Error() string {
	return fmt.Sprintf("semantic %q got %d args, want between %d and %d", e.Semantic, e.NumArgs, e.Min, e.Max)
}
