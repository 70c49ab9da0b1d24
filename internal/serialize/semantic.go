package serialize

import (
	"fmt"

	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

func encodeSemTree(t semgrammar.SemTree) []semNodeDoc {
	if len(t) == 0 {
		return nil
	}
	out := make([]semNodeDoc, len(t))
	for i, n := range t {
		out[i] = encodeSemNode(n)
	}
	return out
}

func encodeSemNode(n semgrammar.SemNode) semNodeDoc {
	var doc semNodeDoc
	doc.Semantic.Name = n.Def.Name
	doc.Children = encodeSemTree(n.Children)
	return doc
}

func decodeSemTree(docs []semNodeDoc, g *semgrammar.Grammar) (semgrammar.SemTree, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make(semgrammar.SemTree, len(docs))
	for i, d := range docs {
		n, err := decodeSemNode(d, g)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func decodeSemNode(d semNodeDoc, g *semgrammar.Grammar) (semgrammar.SemNode, error) {
	sem, ok := g.Semantic(d.Semantic.Name)
	if !ok {
		return semgrammar.SemNode{}, fmt.Errorf("serialize: semantic %q is not declared", d.Semantic.Name)
	}
	children, err := decodeSemTree(d.Children, g)
	if err != nil {
		return semgrammar.SemNode{}, err
	}
	return semgrammar.SemNode{Def: sem, Children: children}, nil
}
