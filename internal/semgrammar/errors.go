// Package semgrammar is the in-memory model of a declarative grammar:
// nonterminal symbols and their rules, terminal symbols, semantic
// functions/arguments, entity categories, and inflection tables. It owns the
// validation invariants that a grammar must satisfy before the edit-rule
// generator and state-table builder run over it.
package semgrammar

import "fmt"

// SourceLoc is the location of the call that produced a grammar-construction
// error, used purely for diagnostics when a grammar is authored programmatically
// far from where the resulting error is reported.
type SourceLoc struct {
	File string
	Line int
}

func (loc SourceLoc) String() string {
	if loc.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", loc.File, loc.Line)
}

// buildError is the common shape of every fatal grammar-construction error:
// a kind tag, the offending name, the option payload that was rejected, and
// the caller's source location.
type buildError struct {
	kind    string
	name    string
	payload any
	loc     SourceLoc
	human   string
	wrapped error
}

func (e *buildError) Error() string {
	if e.loc.File != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.kind, e.human, e.loc)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.human)
}

func (e *buildError) Unwrap() error { return e.wrapped }

// Name is the offending symbol/rule/semantic/entity name.
func (e *buildError) Name() string { return e.name }

// Payload is the option struct that was rejected, for programmatic inspection.
func (e *buildError) Payload() any { return e.payload }

func newBuildError(kind, name, human string, payload any, loc SourceLoc) *buildError {
	return &buildError{kind: kind, name: name, payload: payload, loc: loc, human: human}
}

// DuplicateSymbolError is returned by NewSymbol when the symbol name is
// already defined.
type DuplicateSymbolError struct{ *buildError }

// DuplicateRuleError is returned by AddRule when a structurally identical
// rule (same RHS symbol sequence) already exists for the symbol.
type DuplicateRuleError struct{ *buildError }

// DuplicateSemanticError is returned by NewSemantic when the semantic name
// is already defined.
type DuplicateSemanticError struct{ *buildError }

// DuplicateEntityError is returned by NewEntityCategory/AddInstance when an
// instance with the same (case-insensitive) text already exists in the
// category.
type DuplicateEntityError struct{ *buildError }

// IllFormedSymbolError is returned by NewSymbol for a name containing a
// reserved character.
type IllFormedSymbolError struct{ *buildError }

// IllFormedRuleError is returned by AddRule for any of the structural
// problems its validation rejects.
type IllFormedRuleError struct{ *buildError }

// IllFormedSemanticError is returned by NewSemantic, e.g. minParams > maxParams.
type IllFormedSemanticError struct{ *buildError }

// IllFormedEntityCategoryError is returned by NewEntityCategory for a
// malformed category name or instance.
type IllFormedEntityCategoryError struct{ *buildError }

func errDuplicateSymbol(name string, loc SourceLoc) error {
	return &DuplicateSymbolError{newBuildError("DuplicateSymbol", name,
		fmt.Sprintf("symbol %q already defined", name), nil, loc)}
}

func errDuplicateRule(sym string, rhs []string, loc SourceLoc) error {
	return &DuplicateRuleError{newBuildError("DuplicateRule", sym,
		fmt.Sprintf("rule %s -> %v already defined", sym, rhs), rhs, loc)}
}

func errDuplicateSemantic(name string, loc SourceLoc) error {
	return &DuplicateSemanticError{newBuildError("DuplicateSemantic", name,
		fmt.Sprintf("semantic %q already defined", name), nil, loc)}
}

func errDuplicateEntity(category, text string, loc SourceLoc) error {
	return &DuplicateEntityError{newBuildError("DuplicateEntity", category,
		fmt.Sprintf("entity %q already defined in category %q", text, category), text, loc)}
}

func errIllFormedSymbol(name, reason string, loc SourceLoc) error {
	return &IllFormedSymbolError{newBuildError("IllFormedSymbol", name, reason, nil, loc)}
}

func errIllFormedRule(sym, reason string, payload any, loc SourceLoc) error {
	return &IllFormedRuleError{newBuildError("IllFormedRule", sym, reason, payload, loc)}
}

func errIllFormedSemantic(name, reason string, loc SourceLoc) error {
	return &IllFormedSemanticError{newBuildError("IllFormedSemantic", name, reason, nil, loc)}
}

func errIllFormedEntityCategory(name, reason string, loc SourceLoc) error {
	return &IllFormedEntityCategoryError{newBuildError("IllFormedEntityCategory", name, reason, nil, loc)}
}

// Warning is a non-fatal validation finding.
type Warning struct {
	Kind string
	Name string
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Name, w.Msg)
}
