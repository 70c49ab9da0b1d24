package semgrammar

import (
	"fmt"
	"strings"
)

// IntegerSymbolName and EmptySymbolName are the canonical names of the two
// grammar-wide placeholder singletons.
const (
	IntegerSymbolName = "#int"
	EmptySymbolName   = "#empty"
)

// Grammar is the in-memory, validated model of a declarative grammar. It
// owns nonterminal symbols (each with its ordered rules), terminal symbols
// (interned by literal text), the integer and empty singleton placeholders,
// semantics, and entity categories.
type Grammar struct {
	Start string

	nonterminals map[string]*Symbol
	ntOrder      []string

	terminals map[string]*Symbol // keyed by literal text

	entities    map[string]*EntityCategory
	entityOrder []string

	semantics map[string]*Semantic
	semOrder  []string

	intSymbol   *Symbol
	emptySymbol *Symbol

	// usage tracking for post-validation warnings
	usedSymbols   map[string]bool
	usedEntities  map[string]bool
	usedSemantics map[string]bool
}

// New returns an empty Grammar with its integer and empty placeholder
// singletons already interned.
func New() *Grammar {
	g := &Grammar{
		nonterminals:  map[string]*Symbol{},
		terminals:     map[string]*Symbol{},
		entities:      map[string]*EntityCategory{},
		semantics:     map[string]*Semantic{},
		usedSymbols:   map[string]bool{},
		usedEntities:  map[string]bool{},
		usedSemantics: map[string]bool{},
	}
	g.intSymbol = &Symbol{Name: IntegerSymbolName, Kind: KindInteger}
	g.emptySymbol = &Symbol{Name: EmptySymbolName, Kind: KindEmpty}
	return g
}

// IntSymbol returns the grammar-wide integer placeholder symbol.
func (g *Grammar) IntSymbol() *Symbol { return g.intSymbol }

// EmptySymbol returns the grammar-wide empty-string placeholder symbol.
func (g *Grammar) EmptySymbol() *Symbol { return g.emptySymbol }

// NewSymbol creates a nonterminal. Its name is the hyphen-joined lowercase of
// the given name parts, wrapped in brackets. Fails with
// DuplicateSymbol if a symbol of that name already exists, or IllFormedSymbol
// if any reserved character appears.
func (g *Grammar) NewSymbol(loc SourceLoc, parts ...string) (*Symbol, error) {
	if len(parts) == 0 {
		return nil, errIllFormedSymbol("", "symbol requires at least one name part", loc)
	}
	name := symbolName(parts...)
	for _, p := range parts {
		if hasReservedChar(p) {
			return nil, errIllFormedSymbol(name, fmt.Sprintf("name part %q contains a reserved character", p), loc)
		}
	}
	if _, exists := g.nonterminals[name]; exists {
		return nil, errDuplicateSymbol(name, loc)
	}
	sym := &Symbol{Name: name, Kind: KindNonTerminal, DefSite: loc}
	g.nonterminals[name] = sym
	g.ntOrder = append(g.ntOrder, name)
	if g.Start == "" {
		g.Start = name
	}
	return sym, nil
}

// Symbol looks up any symbol (nonterminal or interned terminal) by name.
func (g *Grammar) Symbol(name string) (*Symbol, bool) {
	if name == IntegerSymbolName {
		return g.intSymbol, true
	}
	if name == EmptySymbolName {
		return g.emptySymbol, true
	}
	if sym, ok := g.nonterminals[name]; ok {
		return sym, true
	}
	if sym, ok := g.terminals[name]; ok {
		return sym, true
	}
	for _, cat := range g.entities {
		if "{"+cat.Name+"}" == name {
			return &Symbol{Name: name, Kind: KindEntityCategory, Category: cat.Name}, true
		}
	}
	return nil, false
}

// NonTerminals returns all nonterminal names in declaration order.
func (g *Grammar) NonTerminals() []string {
	out := make([]string, len(g.ntOrder))
	copy(out, g.ntOrder)
	return out
}

// Rules returns the ordered rule sequence owned by a nonterminal, or nil if
// it is not defined.
func (g *Grammar) Rules(nonterminal string) []*Rule {
	sym, ok := g.nonterminals[nonterminal]
	if !ok {
		return nil
	}
	return sym.Rules
}

func (g *Grammar) internTerminal(literal string) *Symbol {
	if sym, ok := g.terminals[literal]; ok {
		return sym
	}
	sym := &Symbol{Name: literal, Kind: KindTerminal}
	g.terminals[literal] = sym
	return sym
}

// Terminals returns all interned literal-terminal names.
func (g *Grammar) Terminals() []string {
	out := make([]string, 0, len(g.terminals))
	for k := range g.terminals {
		out = append(out, k)
	}
	return out
}

// RuleOpts are the options accepted by AddRule, one field per rule property. RHS
// is required and must have length 1 or 2.
type RuleOpts struct {
	RHS               []string
	Cost              float64
	Semantic          SemTree
	Text              Text
	Props             GramProps
	HasInsertionCost  bool
	InsertionCost     float64
	HasIntBounds      bool
	IntMin, IntMax    int
	HasTransposition  bool
	TranspositionCost float64

	// The following are set only by the edit-rule generator when
	// synthesizing rules; ordinary grammar authoring leaves
	// them at their zero values.
	IsInsertion    bool
	InsertedSyms   []InsertedSym
	InsertedSem    SemTree
	HasInsertedSem bool
	InsertionIdx   InsertionIdx
	IsTransposed   bool
	SemanticIsRHS  bool
}

// AddRule appends a rule to the named nonterminal, validating its shape and
// rejecting structural duplicates.
func (g *Grammar) AddRule(nonterminal string, opts RuleOpts, loc SourceLoc) (*Rule, error) {
	return g.addRule(nonterminal, opts, loc, false)
}

// AddSynthesizedRule is AddRule without the structural-duplicate-RHS check,
// for use by the edit-rule generator, which intentionally
// produces multiple rules sharing a RHS (e.g. several partial-insertion
// candidates for the same nonterminal) and applies its own duplicate
// policy (cost-based, over a richer key than RHS alone) before calling
// this.
func (g *Grammar) AddSynthesizedRule(nonterminal string, opts RuleOpts, loc SourceLoc) (*Rule, error) {
	return g.addRule(nonterminal, opts, loc, true)
}

func (g *Grammar) addRule(nonterminal string, opts RuleOpts, loc SourceLoc, skipDuplicateCheck bool) (*Rule, error) {
	owner, ok := g.nonterminals[nonterminal]
	if !ok {
		return nil, errIllFormedRule(nonterminal, "no such nonterminal; call NewSymbol first", opts, loc)
	}

	if len(opts.RHS) < 1 {
		return nil, errIllFormedRule(nonterminal, "rule must have a non-empty RHS", opts, loc)
	}

	rhsIsTerminalLike := false
	var soleSymbol *Symbol
	if len(opts.RHS) == 1 {
		rhsName := opts.RHS[0]
		switch {
		case rhsName == "" || rhsName == EmptySymbolName:
			rhsIsTerminalLike = true
			soleSymbol = g.emptySymbol
		case rhsName == IntegerSymbolName:
			rhsIsTerminalLike = true
			soleSymbol = g.intSymbol
		case strings.HasPrefix(rhsName, "{") && strings.HasSuffix(rhsName, "}"):
			catName := rhsName[1 : len(rhsName)-1]
			if _, ok := g.entities[catName]; !ok {
				return nil, errIllFormedRule(nonterminal, fmt.Sprintf("entity category %q is not declared", catName), opts, loc)
			}
			rhsIsTerminalLike = true
			soleSymbol = &Symbol{Name: rhsName, Kind: KindEntityCategory, Category: catName}
		case strings.HasPrefix(rhsName, "[") && strings.HasSuffix(rhsName, "]"):
			// an existing nonterminal; fall through to the nonterminal
			// validation branch below.
		default:
			rhsIsTerminalLike = true
			soleSymbol = g.internTerminal(rhsName)
		}
	}

	if !rhsIsTerminalLike {
		// nonterminal rule: RHS must be 1 or 2 nonterminal symbols
		if len(opts.RHS) > 2 {
			return nil, errIllFormedRule(nonterminal, "nonterminal RHS must be size 1 or 2, never more", opts, loc)
		}
		for _, name := range opts.RHS {
			sym, ok := g.Symbol(name)
			if !ok || sym.Kind != KindNonTerminal {
				return nil, errIllFormedRule(nonterminal, fmt.Sprintf("RHS symbol %q is not a declared nonterminal", name), opts, loc)
			}
		}
		if opts.HasTransposition && len(opts.RHS) != 2 {
			return nil, errIllFormedRule(nonterminal, "transpositionCost is only valid on a binary rule", opts, loc)
		}
	} else {
		if len(opts.RHS) != 1 {
			return nil, errIllFormedRule(nonterminal, "a terminal rule's RHS must be a single terminal-like symbol", opts, loc)
		}
		if opts.HasTransposition {
			return nil, errIllFormedRule(nonterminal, "transpositionCost is only valid on a binary nonterminal rule", opts, loc)
		}
		if opts.HasIntBounds && soleSymbol.Kind != KindInteger {
			return nil, errIllFormedRule(nonterminal, "intMin/intMax only valid when RHS is the integer symbol", opts, loc)
		}
		if !opts.Text.IsEmpty() && (soleSymbol.Kind == KindEmpty || soleSymbol.Kind == KindInteger || soleSymbol.Kind == KindEntityCategory) {
			return nil, errIllFormedRule(nonterminal, "predefined text is not allowed on empty/integer/entity terminal rules", opts, loc)
		}
		if len(opts.Semantic) > 0 && !opts.Semantic.isReduced() {
			if soleSymbol.Kind != KindInteger && soleSymbol.Kind != KindEntityCategory {
				return nil, errIllFormedRule(nonterminal, "a terminal rule with a non-RHS semantic must have RHS be the integer symbol or an entity category", opts, loc)
			}
		}
		if soleSymbol.Kind == KindTerminal {
			if hasReservedChar(soleSymbol.Name) || strings.Contains(soleSymbol.Name, "  ") {
				return nil, errIllFormedRule(nonterminal, fmt.Sprintf("terminal text %q contains a reserved character or consecutive spaces", soleSymbol.Name), opts, loc)
			}
		}
	}

	if !skipDuplicateCheck {
		for _, existing := range owner.Rules {
			if existing.SameRHS(opts.RHS) {
				return nil, errDuplicateRule(nonterminal, opts.RHS, loc)
			}
		}
	}

	semCost := sumSemCost(opts.Semantic)
	insertionIdx := NoInsertionIdx
	if opts.IsInsertion {
		insertionIdx = opts.InsertionIdx
	}
	rule := &Rule{
		LHS:               nonterminal,
		RHS:               append([]string(nil), opts.RHS...),
		IsTerminal:        rhsIsTerminalLike,
		Cost:              float64(len(owner.Rules))*1e-7 + opts.Cost + semCost,
		Semantic:          opts.Semantic,
		Text:              opts.Text,
		Props:             opts.Props,
		HasInsertionCost:  opts.HasInsertionCost,
		InsertionCost:     opts.InsertionCost,
		HasIntBounds:      opts.HasIntBounds,
		IntMin:            opts.IntMin,
		IntMax:            opts.IntMax,
		HasTransposition:  opts.HasTransposition,
		TranspositionCost: opts.TranspositionCost,
		IsInsertion:       opts.IsInsertion,
		InsertedSyms:      opts.InsertedSyms,
		InsertedSem:       opts.InsertedSem,
		HasInsertedSem:    opts.HasInsertedSem,
		InsertionIdx:      insertionIdx,
		IsTransposed:      opts.IsTransposed,
		SemanticIsRHS:     opts.SemanticIsRHS,
		DefSite:           loc,
	}

	owner.Rules = append(owner.Rules, rule)

	if rhsIsTerminalLike && soleSymbol.Kind == KindTerminal {
		g.internTerminal(soleSymbol.Name)
	}
	g.markUsed(opts.RHS...)
	return rule, nil
}

// RemoveRule deletes a rule from its owning nonterminal's rule list, by
// identity. Used by the edit-rule generator's Pass A to retire empty-symbol
// terminal rules once their insertion candidate has been recorded.
func (g *Grammar) RemoveRule(nonterminal string, rule *Rule) {
	owner, ok := g.nonterminals[nonterminal]
	if !ok {
		return
	}
	for i, r := range owner.Rules {
		if r == rule {
			owner.Rules = append(owner.Rules[:i], owner.Rules[i+1:]...)
			return
		}
	}
}

func sumSemCost(t SemTree) float64 {
	var total float64
	for _, n := range t {
		total += n.Def.Cost
		total += sumSemCost(n.Children)
	}
	return total
}

func (g *Grammar) markUsed(names ...string) {
	for _, n := range names {
		g.usedSymbols[n] = true
		if strings.HasPrefix(n, "{") && strings.HasSuffix(n, "}") {
			g.usedEntities[n[1:len(n)-1]] = true
		}
	}
}

// NewBinaryRule synthesizes a fresh nonterminal whose name is the
// concatenation of the two RHS symbol names, carrying a single rule with the
// given RHS and options. Nested string-slice RHS elements would recursively
// synthesize binary rules in an authoring DSL; here RHS is always exactly two
// resolved symbol names.
func (g *Grammar) NewBinaryRule(left, right string, opts RuleOpts, loc SourceLoc) (*Symbol, *Rule, error) {
	leftSym, ok := g.Symbol(left)
	if !ok {
		return nil, nil, errIllFormedRule("", fmt.Sprintf("unknown RHS symbol %q", left), opts, loc)
	}
	rightSym, ok := g.Symbol(right)
	if !ok {
		return nil, nil, errIllFormedRule("", fmt.Sprintf("unknown RHS symbol %q", right), opts, loc)
	}
	name := symbolName(strings.Trim(leftSym.Name, "[]"), strings.Trim(rightSym.Name, "[]"))
	if _, exists := g.nonterminals[name]; exists {
		return nil, nil, errDuplicateSymbol(name, loc)
	}
	sym := &Symbol{Name: name, Kind: KindNonTerminal, DefSite: loc}
	g.nonterminals[name] = sym
	g.ntOrder = append(g.ntOrder, name)

	o := opts
	o.RHS = []string{left, right}
	rule, err := g.AddRule(name, o, loc)
	if err != nil {
		delete(g.nonterminals, name)
		g.ntOrder = g.ntOrder[:len(g.ntOrder)-1]
		return nil, nil, err
	}
	return sym, rule, nil
}

// SemanticOpts are the options accepted by NewSemantic.
type SemanticOpts struct {
	Name            string
	Cost            float64
	IsFunction      bool
	MinParams       int
	MaxParams       int
	ForbidsMultiple bool
}

// NewSemantic creates a semantic function or argument descriptor. Fails with
// DuplicateSemantic if the name is taken, or IllFormedSemantic if
// minParams > maxParams for a function.
func (g *Grammar) NewSemantic(opts SemanticOpts, loc SourceLoc) (*Semantic, error) {
	if opts.Name == "" {
		return nil, errIllFormedSemantic("", "semantic name must not be empty", loc)
	}
	if _, exists := g.semantics[opts.Name]; exists {
		return nil, errDuplicateSemantic(opts.Name, loc)
	}
	if opts.IsFunction && opts.MinParams > opts.MaxParams {
		return nil, errIllFormedSemantic(opts.Name, fmt.Sprintf("minParams (%d) > maxParams (%d)", opts.MinParams, opts.MaxParams), loc)
	}
	sem := &Semantic{
		Name:            opts.Name,
		Cost:            opts.Cost,
		IsFunction:      opts.IsFunction,
		MinParams:       opts.MinParams,
		MaxParams:       opts.MaxParams,
		ForbidsMultiple: opts.ForbidsMultiple,
	}
	g.semantics[opts.Name] = sem
	g.semOrder = append(g.semOrder, opts.Name)
	return sem, nil
}

// Semantic looks up a semantic descriptor by name.
func (g *Grammar) Semantic(name string) (*Semantic, bool) {
	s, ok := g.semantics[name]
	return s, ok
}

// Semantics returns all declared semantic names in declaration order.
func (g *Grammar) Semantics() []string {
	out := make([]string, len(g.semOrder))
	copy(out, g.semOrder)
	return out
}

// NewEntityCategory creates a category, interning an entity-category
// placeholder terminal for it, and adds the given instances (case-insensitive
// unique). IDs are assigned via EntityCategory.AddInstance.
func (g *Grammar) NewEntityCategory(name string, instanceTexts []string, loc SourceLoc) (*EntityCategory, error) {
	if name == "" || hasReservedChar(name) {
		return nil, errIllFormedEntityCategory(name, "category name must be non-empty and free of reserved characters", loc)
	}
	if _, exists := g.entities[name]; exists {
		return nil, errDuplicateSymbol("{"+name+"}", loc)
	}
	cat := &EntityCategory{Name: name, DefSite: loc}
	g.entities[name] = cat
	g.entityOrder = append(g.entityOrder, name)

	for _, text := range instanceTexts {
		if _, err := cat.AddInstance(text, "", loc); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// EntityCategory looks up a declared category by name.
func (g *Grammar) EntityCategory(name string) (*EntityCategory, bool) {
	c, ok := g.entities[name]
	return c, ok
}

// EntityCategories returns all declared category names in declaration order.
func (g *Grammar) EntityCategories() []string {
	out := make([]string, len(g.entityOrder))
	copy(out, g.entityOrder)
	return out
}

// EntityCategorySymbolName returns the placeholder symbol name for a
// category, e.g. "{repo}".
func EntityCategorySymbolName(category string) string {
	return "{" + category + "}"
}
