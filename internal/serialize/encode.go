package serialize

import (
	"encoding/json"
	"strings"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// Encode renders g as the compiled-grammar JSON document.
func Encode(g *semgrammar.Grammar) ([]byte, error) {
	doc := document{
		StartSymbol: g.Start,
		IntSymbol:   semgrammar.IntegerSymbolName,
		EmptySymbol: semgrammar.EmptySymbolName,
		Grammar:     map[string][]ruleDoc{},
		Semantics:   map[string]semDoc{},
		Entities:    map[string][]entityDoc{},
	}

	for _, nt := range g.NonTerminals() {
		rules := g.Rules(nt)
		out := make([]ruleDoc, len(rules))
		for i, r := range rules {
			out[i] = encodeRule(r)
		}
		doc.Grammar[nt] = out
	}

	for _, name := range g.Semantics() {
		sem, _ := g.Semantic(name)
		doc.Semantics[name] = semDoc{
			Cost:            sem.Cost,
			IsFunction:      sem.IsFunction,
			MinParams:       sem.MinParams,
			MaxParams:       sem.MaxParams,
			ForbidsMultiple: sem.ForbidsMultiple,
		}
	}

	for _, catName := range g.EntityCategories() {
		cat, ok := g.EntityCategory(catName)
		if !ok {
			continue
		}
		for _, inst := range cat.Instances() {
			key := strings.ToLower(inst.Text)
			doc.Entities[key] = append(doc.Entities[key], entityDoc{
				Text:     inst.Text,
				Category: inst.Category,
				ID:       inst.ID,
			})
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}

func encodeRule(r *semgrammar.Rule) ruleDoc {
	rd := ruleDoc{
		RHS:           append([]string(nil), r.RHS...),
		Terminal:      r.IsTerminal,
		Cost:          r.Cost,
		Text:          encodeText(r.Text),
		Semantic:      encodeSemTree(r.Semantic),
		SemanticIsRHS: r.SemanticIsRHS,
		Transposition: r.IsTransposed,
		IsPlaceholder: r.IsTerminal && isPlaceholderRHS(r.RHS),
	}

	if r.HasInsertedSem {
		rd.InsertedSemantic = encodeSemTree(r.InsertedSem)
	}
	if r.IsInsertion {
		idx := int(r.InsertionIdx)
		rd.InsertionIdx = &idx
	}
	if r.HasIntBounds {
		min, max := r.IntMin, r.IntMax
		rd.IntMin = &min
		rd.IntMax = &max
	}
	if r.HasInsertionCost {
		cost := r.InsertionCost
		rd.InsertionCost = &cost
	}
	if r.HasTransposition {
		cost := r.TranspositionCost
		rd.TranspositionCost = &cost
	}
	if !r.Props.IsZero() {
		rd.GramProps = encodeGramProps(r.Props)
	}

	return rd
}

func isPlaceholderRHS(rhs []string) bool {
	if len(rhs) != 1 {
		return false
	}
	if rhs[0] == semgrammar.IntegerSymbolName || rhs[0] == semgrammar.EmptySymbolName || rhs[0] == "" {
		return true
	}
	return strings.HasPrefix(rhs[0], "{") && strings.HasSuffix(rhs[0], "}")
}

func encodeGramProps(p semgrammar.GramProps) *gramPropsDoc {
	d := &gramPropsDoc{}
	if p.HasVerb {
		d.VerbForm = string(p.Verb)
	}
	if p.HasPerson {
		d.PersonNumber = string(p.Person)
	}
	if p.HasCase {
		d.GramCase = string(p.Case)
	}
	return d
}
