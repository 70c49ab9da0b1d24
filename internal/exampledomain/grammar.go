// Package exampledomain builds a small but real grammar over a bounded
// English domain: a user ("me"), that user's repositories, followers, and
// issues. It exercises
// entity categories, integer arguments, and semantic composition (argument
// reduction, RHS merging, and an intersect reduce) end to end, and backs the
// CLI's default `.rebuild` target and the integration tests in this package.
// None of its rules carries gramProps, and none of its reductions clones an
// over-arity function.
package exampledomain

import (
	"github.com/dekarrin/sturgeon/internal/author"
	"github.com/dekarrin/sturgeon/internal/semgrammar"
)

// semantics holds every semantic descriptor the grammar declares.
type semantics struct {
	me                 *semgrammar.Semantic
	followers          *semgrammar.Semantic
	usersFollowed      *semgrammar.Semantic
	reposLiked         *semgrammar.Semantic
	reposCreated       *semgrammar.Semantic
	issuesCommentCount *semgrammar.Semantic
	intersect          *semgrammar.Semantic
}

func declareSemantics(a *author.Author) (*semantics, error) {
	var s semantics
	var err error
	if s.me, err = a.NewSemantic(semgrammar.SemanticOpts{Name: "me"}); err != nil {
		return nil, err
	}
	if s.followers, err = a.NewSemantic(semgrammar.SemanticOpts{Name: "followers", IsFunction: true, MinParams: 1, MaxParams: 1}); err != nil {
		return nil, err
	}
	if s.usersFollowed, err = a.NewSemantic(semgrammar.SemanticOpts{Name: "users-followed", IsFunction: true, MinParams: 1, MaxParams: 1}); err != nil {
		return nil, err
	}
	if s.reposLiked, err = a.NewSemantic(semgrammar.SemanticOpts{Name: "repos-liked", IsFunction: true, MinParams: 1, MaxParams: 1}); err != nil {
		return nil, err
	}
	if s.reposCreated, err = a.NewSemantic(semgrammar.SemanticOpts{Name: "repos-created", IsFunction: true, MinParams: 1, MaxParams: 1}); err != nil {
		return nil, err
	}
	if s.issuesCommentCount, err = a.NewSemantic(semgrammar.SemanticOpts{Name: "issues-comment-count", IsFunction: true, MinParams: 1, MaxParams: 1}); err != nil {
		return nil, err
	}
	if s.intersect, err = a.NewSemantic(semgrammar.SemanticOpts{Name: "intersect", IsFunction: true, MinParams: 2, MaxParams: 8}); err != nil {
		return nil, err
	}
	return &s, nil
}

// words holds the leaf and low-level composite nonterminals every query
// form is assembled from.
type words struct {
	subject *semgrammar.Symbol // "i"
	myWord  *semgrammar.Symbol // "my"

	haveLiked  *semgrammar.Symbol // "have liked"
	reposWord  *semgrammar.Symbol // "repos"
	followersW *semgrammar.Symbol // "followers"
	followW    *semgrammar.Symbol // "follow"
	andWord    *semgrammar.Symbol // "and"
	issuesWord *semgrammar.Symbol // "issues with"
	intWord    *semgrammar.Symbol // #int
	commentsW  *semgrammar.Symbol // "comments"
	createdByW *semgrammar.Symbol // "created by"
	userEntity *semgrammar.Symbol // {user}
}

func declareWords(a *author.Author) (*words, error) {
	var w words
	mk := func(sym **semgrammar.Symbol, part, literal string) error {
		s, err := a.NewSymbol(part)
		if err != nil {
			return err
		}
		if _, err := a.AddRule(s.Name, semgrammar.RuleOpts{RHS: []string{literal}}); err != nil {
			return err
		}
		*sym = s
		return nil
	}

	for _, spec := range []struct {
		sym     **semgrammar.Symbol
		part    string
		literal string
	}{
		{&w.subject, "I", "i"},
		{&w.myWord, "My", "my"},
		{&w.haveLiked, "HaveLiked", "have liked"},
		{&w.reposWord, "Repos", "repos"},
		{&w.followersW, "Followers", "followers"},
		{&w.followW, "Follow", "follow"},
		{&w.andWord, "And", "and"},
		{&w.issuesWord, "IssuesWith", "issues with"},
		{&w.commentsW, "Comments", "comments"},
		{&w.createdByW, "CreatedBy", "created by"},
	} {
		if err := mk(spec.sym, spec.part, spec.literal); err != nil {
			return nil, err
		}
	}

	intWord, err := a.NewSymbol("IntCount")
	if err != nil {
		return nil, err
	}
	if _, err := a.AddRule(intWord.Name, semgrammar.RuleOpts{RHS: []string{semgrammar.IntegerSymbolName}}); err != nil {
		return nil, err
	}
	w.intWord = intWord

	userEntity, err := a.NewSymbol("UserEntity")
	if err != nil {
		return nil, err
	}
	if _, err := a.AddRule(userEntity.Name, semgrammar.RuleOpts{RHS: []string{semgrammar.EntityCategorySymbolName("user")}}); err != nil {
		return nil, err
	}
	w.userEntity = userEntity

	return &w, nil
}

// meArgument wraps a leaf word (e.g. "i", "my") in a nonterminal rule that
// attaches the constant `me` semantic argument, so the same word symbol can
// be reused elsewhere with a different meaning.
func meArgument(a *author.Author, sym *semgrammar.Symbol, part string, me *semgrammar.Semantic) (*semgrammar.Symbol, error) {
	wrapper, err := a.NewSymbol(part)
	if err != nil {
		return nil, err
	}
	if _, err := a.AddRule(wrapper.Name, semgrammar.RuleOpts{
		RHS:      []string{sym.Name},
		Semantic: semgrammar.SemTree{{Def: me}},
	}); err != nil {
		return nil, err
	}
	return wrapper, nil
}

// buildReposLiked assembles "repos I have liked" -> repos-liked(me).
func buildReposLiked(a *author.Author, w *words, s *semantics) (*semgrammar.Rule, error) {
	subjArg, err := meArgument(a, w.subject, "SubjectArg", s.me)
	if err != nil {
		return nil, err
	}
	_, subjHaveLiked, err := a.NewBinaryRule(subjArg.Name, w.haveLiked.Name, semgrammar.RuleOpts{})
	if err != nil {
		return nil, err
	}
	_, reposLiked, err := a.NewBinaryRule(w.reposWord.Name, subjHaveLiked.LHS, semgrammar.RuleOpts{
		Semantic: semgrammar.SemTree{{Def: s.reposLiked}},
	})
	if err != nil {
		return nil, err
	}
	return reposLiked, nil
}

// buildMyRepos assembles "my repos" -> repos-created(me).
func buildMyRepos(a *author.Author, w *words, s *semantics) (*semgrammar.Rule, error) {
	myArg, err := meArgument(a, w.myWord, "MyArgRepos", s.me)
	if err != nil {
		return nil, err
	}
	_, rule, err := a.NewBinaryRule(myArg.Name, w.reposWord.Name, semgrammar.RuleOpts{
		Semantic: semgrammar.SemTree{{Def: s.reposCreated}},
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// buildIssuesCommentCount assembles "issues with 22 comments" ->
// issues-comment-count(22).
func buildIssuesCommentCount(a *author.Author, w *words, s *semantics) (*semgrammar.Rule, error) {
	_, intComments, err := a.NewBinaryRule(w.intWord.Name, w.commentsW.Name, semgrammar.RuleOpts{})
	if err != nil {
		return nil, err
	}
	_, rule, err := a.NewBinaryRule(w.issuesWord.Name, intComments.LHS, semgrammar.RuleOpts{
		Semantic: semgrammar.SemTree{{Def: s.issuesCommentCount}},
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// buildRepoCreatedByUser assembles "repos created by alice" ->
// repos-created(<alice's entity id>).
func buildRepoCreatedByUser(a *author.Author, w *words, s *semantics) (*semgrammar.Rule, error) {
	_, createdByUser, err := a.NewBinaryRule(w.createdByW.Name, w.userEntity.Name, semgrammar.RuleOpts{})
	if err != nil {
		return nil, err
	}
	_, rule, err := a.NewBinaryRule(w.reposWord.Name, createdByUser.LHS, semgrammar.RuleOpts{
		Semantic: semgrammar.SemTree{{Def: s.reposCreated}},
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// buildFollowersIntersectIFollow assembles "my followers and i follow" ->
// intersect(followers(me),users-followed(me)), demonstrating mergeRHS
// composition and intersect's reduce.
func buildFollowersIntersectIFollow(a *author.Author, w *words, s *semantics) (*semgrammar.Rule, error) {
	myArg, err := meArgument(a, w.myWord, "MyArgFollowers", s.me)
	if err != nil {
		return nil, err
	}
	_, followers, err := a.NewBinaryRule(myArg.Name, w.followersW.Name, semgrammar.RuleOpts{
		Semantic: semgrammar.SemTree{{Def: s.followers}},
	})
	if err != nil {
		return nil, err
	}

	subjArg, err := meArgument(a, w.subject, "SubjectArgFollow", s.me)
	if err != nil {
		return nil, err
	}
	_, iFollow, err := a.NewBinaryRule(subjArg.Name, w.followW.Name, semgrammar.RuleOpts{})
	if err != nil {
		return nil, err
	}
	usersFollowedSym, err := a.NewSymbol("UsersFollowedPhrase")
	if err != nil {
		return nil, err
	}
	if _, err := a.AddRule(usersFollowedSym.Name, semgrammar.RuleOpts{
		RHS:      []string{iFollow.LHS},
		Semantic: semgrammar.SemTree{{Def: s.usersFollowed}},
	}); err != nil {
		return nil, err
	}

	_, andIFollow, err := a.NewBinaryRule(w.andWord.Name, usersFollowedSym.Name, semgrammar.RuleOpts{})
	if err != nil {
		return nil, err
	}
	_, followersAndIFollow, err := a.NewBinaryRule(followers.LHS, andIFollow.LHS, semgrammar.RuleOpts{})
	if err != nil {
		return nil, err
	}

	querySym, err := a.NewSymbol("FollowersIntersectIFollow")
	if err != nil {
		return nil, err
	}
	rule, err := a.AddRule(querySym.Name, semgrammar.RuleOpts{
		RHS:      []string{followersAndIFollow.LHS},
		Semantic: semgrammar.SemTree{{Def: s.intersect}},
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// Build constructs the example grammar from scratch. It is not itself
// augmented with edit-rule-generated insertion/transposition variants;
// callers that want those should run the result through
// internal/editrules.Generate before compiling a state table.
func Build() (*semgrammar.Grammar, error) {
	a := author.New("exampledomain")

	query, err := a.NewSymbol("Query")
	if err != nil {
		return nil, err
	}

	s, err := declareSemantics(a)
	if err != nil {
		return nil, err
	}

	userCat, err := a.NewEntityCategory("user", nil)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"alice", "bob"} {
		if _, err := a.AddInstance(userCat, name, name); err != nil {
			return nil, err
		}
	}

	w, err := declareWords(a)
	if err != nil {
		return nil, err
	}

	subRules := make([]*semgrammar.Rule, 0, 5)
	for _, build := range []func(*author.Author, *words, *semantics) (*semgrammar.Rule, error){
		buildReposLiked,
		buildMyRepos,
		buildIssuesCommentCount,
		buildRepoCreatedByUser,
		buildFollowersIntersectIFollow,
	} {
		rule, err := build(a, w, s)
		if err != nil {
			return nil, err
		}
		subRules = append(subRules, rule)
	}

	for _, sub := range subRules {
		if _, err := a.AddRule(query.Name, semgrammar.RuleOpts{RHS: []string{sub.LHS}}); err != nil {
			return nil, err
		}
	}

	return a.G, nil
}
