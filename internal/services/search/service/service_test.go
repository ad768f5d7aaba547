package service

import (
	"context"
	"testing"

	"codescout/internal/adapters/forge"
	perr "codescout/internal/platform/errors"
	"codescout/internal/platform/testkit"
	"codescout/internal/services/search/domain"
)

// fakeForge lets each test script per-scope behavior; unset funcs return
// empty pages
type fakeForge struct {
	repos   func(ctx context.Context, ws string, q forge.Query) (forge.RepoPage, error)
	prs     func(ctx context.Context, ws, repo string, q forge.Query) (forge.PullRequestPage, error)
	commits func(ctx context.Context, ws, repo string, q forge.Query) (forge.CommitPage, error)
	code    func(ctx context.Context, ws string, q forge.CodeQuery) (forge.CodePage, error)
}

func (f *fakeForge) SearchRepositories(ctx context.Context, ws string, q forge.Query) (forge.RepoPage, error) {
	if f.repos == nil {
		return forge.RepoPage{}, nil
	}
	return f.repos(ctx, ws, q)
}

func (f *fakeForge) SearchPullRequests(ctx context.Context, ws, repo string, q forge.Query) (forge.PullRequestPage, error) {
	if f.prs == nil {
		return forge.PullRequestPage{}, nil
	}
	return f.prs(ctx, ws, repo, q)
}

func (f *fakeForge) SearchCommits(ctx context.Context, ws, repo string, q forge.Query) (forge.CommitPage, error) {
	if f.commits == nil {
		return forge.CommitPage{}, nil
	}
	return f.commits(ctx, ws, repo, q)
}

func (f *fakeForge) SearchCode(ctx context.Context, ws string, q forge.CodeQuery) (forge.CodePage, error) {
	if f.code == nil {
		return forge.CodePage{}, nil
	}
	return f.code(ctx, ws, q)
}

func (f *fakeForge) Ping(context.Context) error { return nil }

func newSvc(f *fakeForge) *Svc { return New(f, DefaultConfig()) }

func repoPage(page, pagelen int, size int, names ...string) forge.RepoPage {
	out := forge.RepoPage{}
	out.Page = page
	out.PageLen = pagelen
	if size >= 0 {
		out.Size = &size
	}
	for _, n := range names {
		out.Values = append(out.Values, forge.Repository{FullName: n, Slug: n})
	}
	return out
}

func TestNew_PanicsWithoutForge(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil, DefaultConfig()) })
}

func TestSearch_RequiresWorkspace(t *testing.T) {
	s := newSvc(&fakeForge{})
	_, err := s.Search(context.Background(), domain.SearchInput{Workspace: "  "})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("code = %v, want validation", perr.CodeOf(err))
	}
	if e, ok := perr.As(err); !ok || e.Field() != "workspace" {
		t.Fatalf("field = %v", err)
	}
}

func TestSearch_RejectsUnknownScope(t *testing.T) {
	s := newSvc(&fakeForge{})
	_, err := s.Search(context.Background(), domain.SearchInput{Workspace: "acme", Scope: "wikis"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("code = %v, want validation", perr.CodeOf(err))
	}
}

func TestSearch_RejectsCursorWithoutScope(t *testing.T) {
	s := newSvc(&fakeForge{})
	_, err := s.Search(context.Background(), domain.SearchInput{Workspace: "acme", Cursor: "2"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("code = %v, want validation", perr.CodeOf(err))
	}
	if e, _ := perr.As(err); e.Field() != "cursor" {
		t.Fatalf("field = %q", e.Field())
	}
}

func TestSearch_RejectsLimitOutOfRange(t *testing.T) {
	s := newSvc(&fakeForge{})
	for _, limit := range []int{-1, 500} {
		_, err := s.Search(context.Background(), domain.SearchInput{Workspace: "acme", Limit: limit})
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("limit %d: code = %v, want validation", limit, perr.CodeOf(err))
		}
		testkit.MustContain(t, err.Error(), "0 uses the default")
	}
}

func TestSearch_ZeroLimitUsesScopeDefault(t *testing.T) {
	var gotLen int
	f := &fakeForge{
		repos: func(_ context.Context, _ string, q forge.Query) (forge.RepoPage, error) {
			gotLen = q.PageLen
			return forge.RepoPage{}, nil
		},
	}
	s := newSvc(f)

	if _, err := s.Search(context.Background(), domain.SearchInput{
		Workspace: "acme", Query: "x", Scope: domain.ScopeRepositories,
	}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotLen != DefaultConfig().RepoCap {
		t.Fatalf("pagelen = %d, want default %d", gotLen, DefaultConfig().RepoCap)
	}
}

func TestSearch_SingleScopeRepositories(t *testing.T) {
	f := &fakeForge{
		repos: func(_ context.Context, ws string, q forge.Query) (forge.RepoPage, error) {
			if ws != "acme" {
				t.Errorf("workspace = %q", ws)
			}
			if q.Term != "widget" {
				t.Errorf("term = %q", q.Term)
			}
			return repoPage(1, 10, 2, "acme/widget-api", "acme/widget-web"), nil
		},
	}
	s := newSvc(f)

	got, err := s.Search(context.Background(), domain.SearchInput{
		Workspace: "acme", Query: "widget", Scope: domain.ScopeRepositories,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got.SearchID == "" {
		t.Fatal("search id missing")
	}
	if len(got.Sections) != 1 || got.Sections[0].Scope != domain.ScopeRepositories {
		t.Fatalf("sections = %+v", got.Sections)
	}
	if got.Sections[0].Count != 2 {
		t.Fatalf("count = %d", got.Sections[0].Count)
	}
	testkit.MustContain(t, got.Summary, "2 repositories")
	testkit.MustContain(t, got.Sections[0].Body, "acme/widget-api")
	if got.Page.HasMore {
		t.Fatal("has_more = true for a complete page")
	}
}

func TestSearch_SingleScopePagination(t *testing.T) {
	f := &fakeForge{
		repos: func(_ context.Context, _ string, q forge.Query) (forge.RepoPage, error) {
			if q.Page != 2 {
				t.Errorf("page = %d, want 2", q.Page)
			}
			return repoPage(2, 2, 5, "acme/a", "acme/b"), nil
		},
	}
	s := newSvc(f)

	got, err := s.Search(context.Background(), domain.SearchInput{
		Workspace: "acme", Query: "a", Scope: domain.ScopeRepositories, Limit: 2, Cursor: "2",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !got.Page.HasMore || got.Page.NextToken != "3" {
		t.Fatalf("page = %+v, want more with token 3", got.Page)
	}
	if got.Page.Total == nil || *got.Page.Total != 5 {
		t.Fatalf("total = %v, want 5", got.Page.Total)
	}
}

func TestSearch_SingleScopeBadCursor(t *testing.T) {
	s := newSvc(&fakeForge{})
	_, err := s.Search(context.Background(), domain.SearchInput{
		Workspace: "acme", Scope: domain.ScopeRepositories, Cursor: "not-a-page",
	})
	if !perr.IsCode(err, perr.ErrorCodeInvalidCursor) {
		t.Fatalf("code = %v, want invalid cursor", perr.CodeOf(err))
	}
}

func TestSearch_SingleScopeUpstreamErrorPropagates(t *testing.T) {
	f := &fakeForge{
		repos: func(context.Context, string, forge.Query) (forge.RepoPage, error) {
			return forge.RepoPage{}, perr.NotFoundf("workspace gone")
		},
	}
	s := newSvc(f)
	_, err := s.Search(context.Background(), domain.SearchInput{Workspace: "gone", Scope: domain.ScopeRepositories})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("code = %v, want not found", perr.CodeOf(err))
	}
}

func TestSearch_PullRequestsWithoutRepoIsInstructional(t *testing.T) {
	s := newSvc(&fakeForge{
		prs: func(context.Context, string, string, forge.Query) (forge.PullRequestPage, error) {
			t.Fatal("upstream should not be called without a repo")
			return forge.PullRequestPage{}, nil
		},
	})

	got, err := s.Search(context.Background(), domain.SearchInput{
		Workspace: "acme", Query: "fix", Scope: domain.ScopePullRequests,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got.Sections) != 1 || got.Sections[0].Count != 0 {
		t.Fatalf("sections = %+v", got.Sections)
	}
	testkit.MustContain(t, got.Sections[0].Body, "needs a repository")
	testkit.MustContain(t, got.Summary, "No matches")
}

func TestSearch_CodeWithoutQueryIsInstructional(t *testing.T) {
	s := newSvc(&fakeForge{
		code: func(context.Context, string, forge.CodeQuery) (forge.CodePage, error) {
			t.Fatal("upstream should not be called without a query")
			return forge.CodePage{}, nil
		},
	})

	got, err := s.Search(context.Background(), domain.SearchInput{
		Workspace: "acme", Scope: domain.ScopeCode,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	testkit.MustContain(t, got.Sections[0].Body, "needs a query term")
}

func TestSearch_CodeLanguageFilter(t *testing.T) {
	total := 40
	f := &fakeForge{
		code: func(_ context.Context, _ string, q forge.CodeQuery) (forge.CodePage, error) {
			return forge.CodePage{
				Size: &total,
				Next: "tok-2",
				Values: []forge.CodeMatch{
					{File: forge.CodeFile{Path: "a.go"}, Repository: forge.RepositoryRef{FullName: "acme/a", Language: "Go"}},
					{File: forge.CodeFile{Path: "b.py"}, Repository: forge.RepositoryRef{FullName: "acme/b", Language: "Python"}},
					{File: forge.CodeFile{Path: "c.go"}, Repository: forge.RepositoryRef{FullName: "acme/c", Language: "go"}},
					{File: forge.CodeFile{Path: "d.rs"}, Repository: forge.RepositoryRef{FullName: "acme/d", Language: "Rust"}},
				},
			}, nil
		},
	}
	s := newSvc(f)

	got, err := s.Search(context.Background(), domain.SearchInput{
		Workspace: "acme", Query: "session", Scope: domain.ScopeCode, Language: "GO",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	sec := got.Sections[0]
	if sec.Count != 2 {
		t.Fatalf("count = %d, want 2 after filter", sec.Count)
	}
	testkit.MustContain(t, sec.Body, "a.go")
	testkit.MustContain(t, sec.Body, "c.go")
	testkit.MustNotContain(t, sec.Body, "b.py")
	// 40 total * 2 kept / 4 returned
	if sec.Page.Total == nil || *sec.Page.Total != 20 {
		t.Fatalf("estimated total = %v, want 20", sec.Page.Total)
	}
	testkit.MustContain(t, sec.Body, "totals are estimates")
	if !sec.Page.HasMore || sec.Page.NextToken != "tok-2" {
		t.Fatalf("page = %+v", sec.Page)
	}
}

func TestSearch_CodeExtensionAppendsToTerm(t *testing.T) {
	var gotTerm string
	f := &fakeForge{
		code: func(_ context.Context, _ string, q forge.CodeQuery) (forge.CodePage, error) {
			gotTerm = q.Term
			return forge.CodePage{}, nil
		},
	}
	s := newSvc(f)
	if _, err := s.Search(context.Background(), domain.SearchInput{
		Workspace: "acme", Query: "session", Scope: domain.ScopeCode, Extension: "go",
	}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotTerm != "session ext:go" {
		t.Fatalf("term = %q", gotTerm)
	}
}

func TestSearch_TruncationDisclosure(t *testing.T) {
	names := make([]string, 25)
	for i := range names {
		names[i] = "acme/repo"
	}
	f := &fakeForge{
		repos: func(_ context.Context, _ string, q forge.Query) (forge.RepoPage, error) {
			return repoPage(1, 25, 60, names...), nil
		},
	}
	s := newSvc(f)

	got, err := s.Search(context.Background(), domain.SearchInput{
		Workspace: "acme", Query: "repo", Scope: domain.ScopeRepositories, Limit: 25,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	testkit.MustContain(t, got.Sections[0].Body, "Showing 25 of 60 matches.")
}
