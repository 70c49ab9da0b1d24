package serialize

import (
	"encoding/json"
	"fmt"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// Decode parses a compiled-grammar document and rebuilds an equivalent
// Grammar. Reconstruction is two-pass: every nonterminal symbol is declared
// before any rule is added, since addRule
// requires a binary rule's RHS nonterminals to already exist and JSON
// object key order is not guaranteed.
func Decode(data []byte) (*semgrammar.Grammar, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}

	g := semgrammar.New()
	var loc semgrammar.SourceLoc

	for name := range doc.Semantics {
		sd := doc.Semantics[name]
		if _, err := g.NewSemantic(semgrammar.SemanticOpts{
			Name:            name,
			Cost:            sd.Cost,
			IsFunction:      sd.IsFunction,
			MinParams:       sd.MinParams,
			MaxParams:       sd.MaxParams,
			ForbidsMultiple: sd.ForbidsMultiple,
		}, loc); err != nil {
			return nil, fmt.Errorf("serialize: semantic %q: %w", name, err)
		}
	}

	categories := map[string]*semgrammar.EntityCategory{}
	for _, key := range sortedKeys(doc.Entities) {
		for _, ed := range doc.Entities[key] {
			cat, ok := categories[ed.Category]
			if !ok {
				var err error
				cat, err = g.NewEntityCategory(ed.Category, nil, loc)
				if err != nil {
					return nil, fmt.Errorf("serialize: entity category %q: %w", ed.Category, err)
				}
				categories[ed.Category] = cat
			}
			if _, err := cat.AddInstance(ed.Text, ed.ID, loc); err != nil {
				return nil, fmt.Errorf("serialize: entity %q: %w", ed.Text, err)
			}
		}
	}

	for _, name := range sortedKeys(doc.Grammar) {
		if _, err := g.NewSymbol(loc, stripBrackets(name)); err != nil {
			return nil, fmt.Errorf("serialize: symbol %q: %w", name, err)
		}
	}
	if len(doc.Grammar) > 0 {
		g.Start = doc.StartSymbol
	}

	for _, name := range sortedKeys(doc.Grammar) {
		for i, rd := range doc.Grammar[name] {
			opts, err := decodeRuleOpts(rd, g, i)
			if err != nil {
				return nil, fmt.Errorf("serialize: rule in %q: %w", name, err)
			}
			if rd.Transposition || rd.InsertionIdx != nil {
				if _, err := g.AddSynthesizedRule(name, opts, loc); err != nil {
					return nil, fmt.Errorf("serialize: rule in %q: %w", name, err)
				}
				continue
			}
			if _, err := g.AddRule(name, opts, loc); err != nil {
				return nil, fmt.Errorf("serialize: rule in %q: %w", name, err)
			}
		}
	}

	return g, nil
}

// decodeRuleOpts reconstructs RuleOpts for the rule at position idx within
// its owning nonterminal's rule list. AddRule/AddSynthesizedRule fold
// idx*1e-7 plus the semantic tree's own cost into the stored rule's final
// Cost, so the authored cost handed back to them here must have both
// backed out of the encoded total, or a round trip would double-count them.
func decodeRuleOpts(rd ruleDoc, g *semgrammar.Grammar, idx int) (semgrammar.RuleOpts, error) {
	text, err := decodeText(rd.Text)
	if err != nil {
		return semgrammar.RuleOpts{}, err
	}
	sem, err := decodeSemTree(rd.Semantic, g)
	if err != nil {
		return semgrammar.RuleOpts{}, err
	}
	insertedSem, err := decodeSemTree(rd.InsertedSemantic, g)
	if err != nil {
		return semgrammar.RuleOpts{}, err
	}

	authoredCost := rd.Cost - float64(idx)*1e-7 - semTreeCost(sem)

	opts := semgrammar.RuleOpts{
		RHS:           append([]string(nil), rd.RHS...),
		Cost:          authoredCost,
		Semantic:      sem,
		Text:          text,
		SemanticIsRHS: rd.SemanticIsRHS,
		IsTransposed:  rd.Transposition,
	}

	if rd.GramProps != nil {
		opts.Props = decodeGramProps(rd.GramProps)
	}
	if rd.IntMin != nil && rd.IntMax != nil {
		opts.HasIntBounds = true
		opts.IntMin = *rd.IntMin
		opts.IntMax = *rd.IntMax
	}
	if rd.InsertionCost != nil {
		opts.HasInsertionCost = true
		opts.InsertionCost = *rd.InsertionCost
	}
	if rd.InsertionIdx != nil {
		opts.IsInsertion = true
		opts.InsertionIdx = semgrammar.InsertionIdx(*rd.InsertionIdx)
	}
	if len(insertedSem) > 0 {
		opts.HasInsertedSem = true
		opts.InsertedSem = insertedSem
	}
	if rd.TranspositionCost != nil {
		opts.HasTransposition = true
		opts.TranspositionCost = *rd.TranspositionCost
	}

	return opts, nil
}

func decodeGramProps(d *gramPropsDoc) semgrammar.GramProps {
	var p semgrammar.GramProps
	if d.VerbForm != "" {
		p.HasVerb = true
		p.Verb = semgrammar.VerbForm(d.VerbForm)
	}
	if d.PersonNumber != "" {
		p.HasPerson = true
		p.Person = semgrammar.PersonNumber(d.PersonNumber)
	}
	if d.GramCase != "" {
		p.HasCase = true
		p.Case = semgrammar.GramCase(d.GramCase)
	}
	return p
}

// stripBrackets strips the "[" "]" a nonterminal's wire name carries so it
// can be re-passed through NewSymbol, which re-adds them via symbolName.
func stripBrackets(name string) string {
	if len(name) >= 2 && name[0] == '[' && name[len(name)-1] == ']' {
		return name[1 : len(name)-1]
	}
	return name
}

func semTreeCost(t semgrammar.SemTree) float64 {
	var total float64
	for _, n := range t {
		total += n.Def.Cost
		total += semTreeCost(n.Children)
	}
	return total
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
