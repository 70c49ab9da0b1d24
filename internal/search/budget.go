package search

import (
	"strings"

	"github.com/dekarrin/sturgeon/internal/forest"
	"github.com/dekarrin/sturgeon/internal/semalg"
)

// SearchWithPopBudget is Search bounded by maxPops, the total number of
// candidate derivations considered across every attempt before the search
// gives up and returns whatever it has accepted. A maxPops of 0 behaves
// exactly like Search: unbounded, stopping only at K acceptances or forest
// exhaustion.
func SearchWithPopBudget(root *forest.Node, k, maxPops int) []Tree {
	if root == nil || k <= 0 {
		return nil
	}

	e := newEngine()
	var accepted []Tree
	bySemantic := map[string]int{}
	byText := map[string]int{}

	for i := 0; len(accepted) < k; i++ {
		if maxPops > 0 && i >= maxPops {
			break
		}
		cand, ok := e.Kth(root, i)
		if !ok {
			break
		}
		semStr := semalg.SemanticToString(cand.semantic)
		rendered, _ := assembleText(cand, nil)
		text := strings.TrimSpace(rendered)

		if _, dup := bySemantic[semStr]; dup {
			continue
		}

		if idx, dup := byText[text]; dup {
			accepted[idx].Disambiguations = append(accepted[idx].Disambiguations, semStr)
			bySemantic[semStr] = idx
			continue
		}

		accepted = append(accepted, Tree{Semantic: cand.semantic, Text: text, Cost: cand.cost})
		idx := len(accepted) - 1
		bySemantic[semStr] = idx
		byText[text] = idx
	}

	return accepted
}
