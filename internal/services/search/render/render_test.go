package render

import (
	"strings"
	"testing"
	"time"

	"codescout/internal/adapters/forge"
	"codescout/internal/core/paging"
	"codescout/internal/platform/testkit"
	"codescout/internal/services/search/domain"
)

func TestRepositories(t *testing.T) {
	got := Repositories([]forge.Repository{
		{
			FullName:    "acme/widget-api",
			Description: "widget ingestion service",
			Language:    "Go",
			IsPrivate:   true,
			Links:       forge.Links{HTML: forge.Link{Href: "https://forge.example/acme/widget-api"}},
		},
		{FullName: "acme/widget-web"},
	})
	testkit.MustContain(t, got, "**acme/widget-api** (Go, private)")
	testkit.MustContain(t, got, "widget ingestion service")
	testkit.MustContain(t, got, "https://forge.example/acme/widget-api")
	testkit.MustContain(t, got, "**acme/widget-web**")
	testkit.MustNotContain(t, got, "()")
}

func TestPullRequests(t *testing.T) {
	pr := forge.PullRequest{
		ID:        42,
		Title:     "fix session leak",
		State:     "open",
		Author:    forge.Account{DisplayName: "Dana"},
		UpdatedOn: time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}
	pr.Source.Branch.Name = "fix/leak"
	pr.Destination.Branch.Name = "main"

	got := PullRequests([]forge.PullRequest{pr})
	testkit.MustContain(t, got, "#42 fix session leak [OPEN] by Dana (fix/leak -> main) updated 2026-07-01")
}

func TestCommits(t *testing.T) {
	c := forge.Commit{
		Hash:    "a1b2c3d4e5f6",
		Message: "fix leak\n\nlong body here",
		Date:    time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
	}
	c.Author.Raw = "Dana <dana@example.com>"

	got := Commits([]forge.Commit{c})
	testkit.MustContain(t, got, "- a1b2c3d fix leak (Dana <dana@example.com>, 2026-06-02)")
	testkit.MustNotContain(t, got, "long body")
}

func TestCodeMatches(t *testing.T) {
	m := forge.CodeMatch{
		MatchCount: 3,
		File:       forge.CodeFile{Path: "pkg/auth/session.go"},
		Repository: forge.RepositoryRef{FullName: "acme/auth", Language: "Go"},
	}
	m.ContentMatches = []forge.ContentMatch{{
		Lines: []forge.ContentLine{
			{Line: 10, Segments: []forge.SegmentMatch{{Text: "\tctx := context.Background()"}}},
			{Line: 11, Segments: []forge.SegmentMatch{
				{Text: "\ts := "},
				{Text: "session", Match: true},
				{Text: ".New(ctx)"},
			}},
		},
	}}

	got := CodeMatches([]forge.CodeMatch{m})
	testkit.MustContain(t, got, "`pkg/auth/session.go` in acme/auth (go), 3 matches")
	testkit.MustContain(t, got, "> s := session.New(ctx)")
}

func TestTruncationNote(t *testing.T) {
	total := 35
	if got := TruncationNote(10, paging.Page{Count: 10, Total: &total}); got != "Showing 10 of 35 matches." {
		t.Fatalf("with total = %q", got)
	}
	if got := TruncationNote(10, paging.Page{Count: 10, HasMore: true}); got != "Showing first 10 matches; more are available." {
		t.Fatalf("without total = %q", got)
	}
	if got := TruncationNote(5, paging.Page{Count: 5}); got != "" {
		t.Fatalf("nothing held back = %q", got)
	}
}

func TestSummary(t *testing.T) {
	got := Summary([]ScopeCount{
		{Scope: domain.ScopeRepositories, Count: 12},
		{Scope: domain.ScopePullRequests, Count: 1},
		{Scope: domain.ScopeCode, Count: 5},
	}, "auth", "acme")
	want := `Found 12 repositories, 1 pull request, and 5 code matches for "auth" in acme.`
	if got != want {
		t.Fatalf("Summary = %q, want %q", got, want)
	}
}

func TestSummary_NoMatches(t *testing.T) {
	got := Summary([]ScopeCount{{Scope: domain.ScopeRepositories, Count: 0}}, "zzz", "acme")
	testkit.MustContain(t, got, `No matches for "zzz" in acme.`)
	testkit.MustContain(t, got, "Try a broader query")
}

func TestInstructional(t *testing.T) {
	testkit.MustContain(t, NeedRepo(domain.ScopePullRequests), "Pull request search needs a repository")
	testkit.MustContain(t, NeedRepo(domain.ScopeCommits), "Commit search needs a repository")
	testkit.MustContain(t, NeedQuery(), "Code search needs a query term")
}

func TestTitle(t *testing.T) {
	for scope, want := range map[domain.Scope]string{
		domain.ScopeRepositories: "Repositories",
		domain.ScopePullRequests: "Pull Requests",
		domain.ScopeCommits:      "Commits",
		domain.ScopeCode:         "Code",
	} {
		if got := Title(scope); got != want {
			t.Fatalf("Title(%s) = %q, want %q", scope, got, want)
		}
	}
}

func TestJoinNatural(t *testing.T) {
	if got := joinNatural([]string{"a"}); got != "a" {
		t.Fatalf("one = %q", got)
	}
	if got := joinNatural([]string{"a", "b"}); got != "a and b" {
		t.Fatalf("two = %q", got)
	}
	if got := joinNatural([]string{"a", "b", "c"}); !strings.HasSuffix(got, ", and c") {
		t.Fatalf("three = %q", got)
	}
}
