// Package serialize implements the compiled-grammar JSON wire format in
// both directions: encoding an augmented Grammar for storage, and decoding
// it back into a Grammar whose rebuilt state table is equivalent to the
// original's.
package serialize

// document is the top-level shape of a compiled-grammar file.
type document struct {
	StartSymbol string                 `json:"startSymbol"`
	IntSymbol   string                 `json:"intSymbol"`
	EmptySymbol string                 `json:"emptySymbol"`
	Grammar     map[string][]ruleDoc   `json:"grammar"`
	Semantics   map[string]semDoc      `json:"semantics"`
	Entities    map[string][]entityDoc `json:"entities"`
}

// ruleDoc mirrors one rule's wire shape.
type ruleDoc struct {
	RHS               []string      `json:"RHS"`
	Terminal          bool          `json:"terminal,omitempty"`
	Cost              float64       `json:"cost"`
	Text              interface{}   `json:"text,omitempty"`
	Semantic          []semNodeDoc  `json:"semantic,omitempty"`
	InsertedSemantic  []semNodeDoc  `json:"insertedSemantic,omitempty"`
	SemanticIsRHS     bool          `json:"semanticIsRHS,omitempty"`
	InsertionIdx      *int          `json:"insertionIdx,omitempty"`
	Transposition     bool          `json:"transposition,omitempty"`
	TranspositionCost *float64      `json:"transpositionCost,omitempty"`
	IsPlaceholder     bool          `json:"isPlaceholder,omitempty"`
	IntMin            *int          `json:"intMin,omitempty"`
	IntMax            *int          `json:"intMax,omitempty"`
	InsertionCost     *float64      `json:"insertionCost,omitempty"`
	GramProps         *gramPropsDoc `json:"gramProps,omitempty"`
}

type gramPropsDoc struct {
	VerbForm     string `json:"verbForm,omitempty"`
	PersonNumber string `json:"personNumber,omitempty"`
	GramCase     string `json:"gramCase,omitempty"`
}

// semDoc is a semantic function/argument descriptor.
type semDoc struct {
	Cost            float64 `json:"cost"`
	IsFunction      bool    `json:"isFunction,omitempty"`
	MinParams       int     `json:"minParams,omitempty"`
	MaxParams       int     `json:"maxParams,omitempty"`
	ForbidsMultiple bool    `json:"forbidsMultiple,omitempty"`
}

// semNodeDoc is one node of a serialized semantic tree: `{ semantic:
// {name}, children?: SemanticTree }`, with argument nodes carrying no
// children.
type semNodeDoc struct {
	Semantic struct {
		Name string `json:"name"`
	} `json:"semantic"`
	Children []semNodeDoc `json:"children,omitempty"`
}

// entityDoc is one entry of the entities-by-text index.
type entityDoc struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	ID       string `json:"id"`
}
