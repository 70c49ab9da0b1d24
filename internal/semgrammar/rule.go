package semgrammar

// GramCase is the grammatical case property of a rule.
type GramCase string

const (
	CaseNom GramCase = "nom"
	CaseObj GramCase = "obj"
)

// VerbForm is the grammatical verb-form property.
type VerbForm string

const (
	VerbPast VerbForm = "past"
)

// PersonNumber is the grammatical person-number property.
type PersonNumber string

const (
	PersonOne     PersonNumber = "one"
	PersonThreeSg PersonNumber = "threeSg"
	PersonPl      PersonNumber = "pl"
)

// GramProps are the optional grammatical properties a rule may carry.
type GramProps struct {
	HasCase   bool
	Case      GramCase
	HasVerb   bool
	Verb      VerbForm
	HasPerson bool
	Person    PersonNumber
}

// Equal compares two GramProps for exact equality, including "is set" flags.
func (g GramProps) Equal(o GramProps) bool {
	return g.HasCase == o.HasCase && g.Case == o.Case &&
		g.HasVerb == o.HasVerb && g.Verb == o.Verb &&
		g.HasPerson == o.HasPerson && g.Person == o.Person
}

// IsZero reports whether no grammatical property is set.
func (g GramProps) IsZero() bool {
	return !g.HasCase && !g.HasVerb && !g.HasPerson
}

// InsertionIdx identifies which branch of a binary partial-insertion rule
// was synthesized from an insertion candidate: the left branch (0) or the
// right branch (1). A rule that isn't a partial-insertion rule has neither
// set.
type InsertionIdx int

const (
	NoInsertionIdx InsertionIdx = -1
	InsertionLeft  InsertionIdx = 0
	InsertionRight InsertionIdx = 1
)

// Rule is a production rule of a nonterminal symbol. A rule is either
// terminal (RHS is a single terminal-like symbol) or nonterminal (RHS is 1
// or 2 nonterminal symbols).
type Rule struct {
	// LHS is the owning nonterminal symbol's name.
	LHS string

	// RHS is the ordered sequence of symbol names making up the production.
	// Length 1 for terminal rules and unary nonterminal rules; length 2 for
	// binary nonterminal rules. Never more than 2.
	RHS []string

	// IsTerminal is true when RHS is a single terminal-like symbol (plain
	// terminal, integer, entity category, or empty).
	IsTerminal bool

	// Cost is rules.length*1e-7 + the declared cost + semanticCost,
	// computed at AddRule time;
	// the per-declaration increment makes earlier rules marginally cheaper.
	Cost float64

	Semantic SemTree
	Text     Text
	Props    GramProps

	// InsertionCost is set only for terminal rules that may be inserted at a
	// cost.
	HasInsertionCost bool
	InsertionCost    float64

	// IntMin/IntMax bound the integer symbol; valid only when RHS is the
	// integer symbol.
	HasIntBounds bool
	IntMin       int
	IntMax       int

	// TranspositionCost is set only for binary rules.
	HasTransposition  bool
	TranspositionCost float64

	// edit-rule-generation bookkeeping, set only on synthesized rules:
	IsInsertion    bool
	InsertedSyms   []InsertedSym
	InsertedSem    SemTree
	HasInsertedSem bool
	InsertionIdx   InsertionIdx

	IsTransposed  bool
	SemanticIsRHS bool

	// DefSite records where this rule was declared, for diagnostics.
	DefSite SourceLoc
}

// InsertedSym records one symbol consumed by an insertion candidate.
type InsertedSym struct {
	Symbol string
}

// SameRHS reports whether two rules have the identical RHS symbol sequence
// in order, used for the DuplicateRule check.
func (r *Rule) SameRHS(rhs []string) bool {
	if len(r.RHS) != len(rhs) {
		return false
	}
	for i := range rhs {
		if r.RHS[i] != rhs[i] {
			return false
		}
	}
	return true
}

// IsBinary reports whether the rule's RHS has exactly 2 symbols.
func (r *Rule) IsBinary() bool {
	return len(r.RHS) == 2
}

// IsUnary reports whether the rule's RHS has exactly 1 symbol.
func (r *Rule) IsUnary() bool {
	return len(r.RHS) == 1
}
