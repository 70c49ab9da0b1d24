package exampledomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/sturgeon/internal/automaton"
	"github.com/dekarrin/sturgeon/internal/parser"
	"github.com/dekarrin/sturgeon/internal/search"
	"github.com/dekarrin/sturgeon/internal/semalg"
)

func TestBuild_ProducesAStartSymbol(t *testing.T) {
	g, err := Build()
	require.NoError(t, err)
	assert.Equal(t, "[query]", g.Start)
}

func parseAndSearch(t *testing.T, tokens []string) []search.Tree {
	t.Helper()
	g, err := Build()
	require.NoError(t, err)

	table, err := automaton.Build(g)
	require.NoError(t, err)

	res, err := parser.Parse(g, table, tokens)
	require.NoError(t, err)
	require.NotNil(t, res.Root)

	return search.Search(res.Root, 5)
}

func TestBuild_ReposLiked(t *testing.T) {
	trees := parseAndSearch(t, []string{"repos", "i", "have", "liked"})
	require.NotEmpty(t, trees)
	assert.Equal(t, "repos-liked(me)", semalg.SemanticToString(trees[0].Semantic))
}

func TestBuild_MyRepos(t *testing.T) {
	trees := parseAndSearch(t, []string{"my", "repos"})
	require.NotEmpty(t, trees)
	assert.Equal(t, "repos-created(me)", semalg.SemanticToString(trees[0].Semantic))
}

func TestBuild_IssuesCommentCount(t *testing.T) {
	trees := parseAndSearch(t, []string{"issues", "with", "22", "comments"})
	require.NotEmpty(t, trees)
	assert.Equal(t, "issues-comment-count(22)", semalg.SemanticToString(trees[0].Semantic))
}

func TestBuild_RepoCreatedByUser(t *testing.T) {
	trees := parseAndSearch(t, []string{"repos", "created", "by", "alice"})
	require.NotEmpty(t, trees)
	assert.Equal(t, "repos-created(alice)", semalg.SemanticToString(trees[0].Semantic))
}

func TestBuild_FollowersIntersectIFollow(t *testing.T) {
	trees := parseAndSearch(t, []string{"my", "followers", "and", "i", "follow"})
	require.NotEmpty(t, trees)
	assert.Equal(t, "intersect(followers(me),users-followed(me))", semalg.SemanticToString(trees[0].Semantic))
}
