package parser

import "fmt"

// UnparsableError is returned when no vertex reaches an accepting state
// spanning the whole token sequence.
type UnparsableError struct {
	TokenCount int
	reason     string
}

func (e *UnparsableError) Error() string {
	return fmt.Sprintf("parser: unparsable: %s (%d tokens)", e.reason, e.TokenCount)
}

func errUnparsable(tokenCount int, reason string) *UnparsableError {
	return &UnparsableError{TokenCount: tokenCount, reason: reason}
}
