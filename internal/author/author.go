// Package author is a thin grammar-authoring surface over
// internal/semgrammar's validated mutators. It exists so the CLI, the
// worked example grammar, and tests have something convenient to build
// grammars with; it adds no validation of its own, it only tags every
// call with a shared SourceLoc so construction errors point back at the
// authoring source (a Go source file, or a grammar-definition file
// loaded by the CLI) instead of an anonymous zero-value location.
package author

import "github.com/dekarrin/sturgeon/internal/semgrammar"

// Author wraps a Grammar and a fixed SourceLoc tag applied to every call.
type Author struct {
	G   *semgrammar.Grammar
	Loc semgrammar.SourceLoc
}

// New returns an Author over a fresh Grammar, tagging every construction
// call with the given source name.
func New(source string) *Author {
	return &Author{
		G:   semgrammar.New(),
		Loc: semgrammar.SourceLoc{File: source},
	}
}

// At returns a copy of the Author tagged to a specific line within the same
// source, for callers that track their own position (e.g. a line-oriented
// grammar-definition file reader).
func (a *Author) At(line int) *Author {
	return &Author{G: a.G, Loc: semgrammar.SourceLoc{File: a.Loc.File, Line: line}}
}

// NewSymbol declares a nonterminal. See Grammar.NewSymbol.
func (a *Author) NewSymbol(parts ...string) (*semgrammar.Symbol, error) {
	return a.G.NewSymbol(a.Loc, parts...)
}

// AddRule appends a rule to a nonterminal. See Grammar.AddRule.
func (a *Author) AddRule(nonterminal string, opts semgrammar.RuleOpts) (*semgrammar.Rule, error) {
	return a.G.AddRule(nonterminal, opts, a.Loc)
}

// NewBinaryRule synthesizes a combined nonterminal and its rule. See
// Grammar.NewBinaryRule.
func (a *Author) NewBinaryRule(left, right string, opts semgrammar.RuleOpts) (*semgrammar.Symbol, *semgrammar.Rule, error) {
	return a.G.NewBinaryRule(left, right, opts, a.Loc)
}

// NewSemantic declares a semantic function or argument. See
// Grammar.NewSemantic.
func (a *Author) NewSemantic(opts semgrammar.SemanticOpts) (*semgrammar.Semantic, error) {
	return a.G.NewSemantic(opts, a.Loc)
}

// NewEntityCategory declares an entity category and its initial instances.
// See Grammar.NewEntityCategory.
func (a *Author) NewEntityCategory(name string, instanceTexts []string) (*semgrammar.EntityCategory, error) {
	return a.G.NewEntityCategory(name, instanceTexts, a.Loc)
}

// AddInstance adds an entity instance to an existing category, keeping the
// same authoring tag. See EntityCategory.AddInstance.
func (a *Author) AddInstance(cat *semgrammar.EntityCategory, text, id string) (*semgrammar.EntityInstance, error) {
	return cat.AddInstance(text, id, a.Loc)
}
