package semgrammar

import "strings"

// reservedChars are forbidden in any symbol or terminal-rule text.
const reservedChars = "[]{}<>()"

func hasReservedChar(s string) bool {
	return strings.ContainsAny(s, reservedChars)
}

// SymbolKind distinguishes the four symbol flavors.
type SymbolKind int

const (
	// KindNonTerminal is a bracketed nonterminal, owning an ordered sequence
	// of rules.
	KindNonTerminal SymbolKind = iota

	// KindTerminal is a lowercase plain token or multi-token phrase.
	KindTerminal

	// KindInteger is the placeholder integer terminal; never matched by
	// literal input text.
	KindInteger

	// KindEntityCategory is a placeholder terminal backed by an entity
	// category; never matched by literal input text.
	KindEntityCategory

	// KindEmpty matches the empty string.
	KindEmpty
)

func (k SymbolKind) String() string {
	switch k {
	case KindNonTerminal:
		return "nonterminal"
	case KindTerminal:
		return "terminal"
	case KindInteger:
		return "integer"
	case KindEntityCategory:
		return "entity-category"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Symbol is a grammar symbol. Nonterminals are identified by their
// bracketed canonical name; terminals by their literal text (which may be a
// multi-token phrase); the integer and empty symbols are singletons per
// Grammar; entity-category placeholders are one per declared category.
type Symbol struct {
	Name string
	Kind SymbolKind

	// Category is set only when Kind == KindEntityCategory; it names the
	// entity category this placeholder stands for.
	Category string

	// Rules is the ordered sequence of rules owned by a nonterminal. Empty
	// for terminal/placeholder/empty symbols.
	Rules []*Rule

	// DefSite records where this symbol was declared, for diagnostics.
	DefSite SourceLoc
}

// IsPlaceholder reports whether the symbol is never matched by literal input
// text (the integer symbol or an entity category).
func (s *Symbol) IsPlaceholder() bool {
	return s.Kind == KindInteger || s.Kind == KindEntityCategory
}

// IsTerminal reports whether the symbol is any of the terminal-like kinds:
// plain terminal, integer placeholder, entity-category placeholder, or
// empty.
func (s *Symbol) IsTerminal() bool {
	return s.Kind != KindNonTerminal
}

// Size is the terminal's token count; multi-word terminals (e.g. "pull
// request") have size > 1. Nonterminals, the integer symbol, entity
// categories, and the empty symbol all report size 1, since size is only
// meaningful for literal-text matching.
func (s *Symbol) Size() int {
	if s.Kind != KindTerminal {
		return 1
	}
	return len(strings.Fields(s.Name))
}

// symbolName canonicalizes a nonterminal name: hyphen-joined lowercase of the
// given parts, wrapped in brackets.
func symbolName(parts ...string) string {
	lowered := make([]string, len(parts))
	for i, p := range parts {
		lowered[i] = strings.ToLower(p)
	}
	return "[" + strings.Join(lowered, "-") + "]"
}
