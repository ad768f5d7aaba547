package service

import (
	"context"

	"codescout/internal/adapters/forge"
	"codescout/internal/core/paging"
	"codescout/internal/core/textfold"
	perr "codescout/internal/platform/errors"
	"codescout/internal/platform/logger"
	"codescout/internal/services/search/domain"
	"codescout/internal/services/search/render"
)

// Scope handlers never panic and never return a bare error, every outcome is
// a ScopeResult so the aggregator can treat them uniformly. A request shape
// that cannot match anything (pull requests without a repo, code without a
// query) yields an instructional OK result rather than a failure.

func (s *Svc) searchRepositories(ctx context.Context, in domain.SearchInput, limit int) domain.ScopeResult {
	res := domain.ScopeResult{Scope: domain.ScopeRepositories, Title: render.Title(domain.ScopeRepositories)}

	q := forge.Query{Term: in.Query, PageLen: limit}
	var ok bool
	if q.Page, ok = pageFromCursor(in.Cursor); !ok {
		res.Err = perr.WithField(perr.InvalidCursorf("cursor %q is not a page token", in.Cursor), "cursor")
		return res
	}

	out, err := s.forge.SearchRepositories(ctx, in.Workspace, q)
	if err != nil {
		res.Err = err
		return res
	}

	res.OK = true
	res.Page = paging.Normalize(rawPage(out.PageInfo, len(out.Values)), paging.StylePage)
	res.Count = res.Page.Count

	items := capItems(out.Values, limit)
	if len(items) == 0 {
		return res
	}
	res.Body = withNote(render.Repositories(items), render.TruncationNote(len(items), res.Page))
	return res
}

func (s *Svc) searchPullRequests(ctx context.Context, in domain.SearchInput, limit int) domain.ScopeResult {
	res := domain.ScopeResult{Scope: domain.ScopePullRequests, Title: render.Title(domain.ScopePullRequests)}

	if in.Repo == "" {
		res.OK = true
		res.Body = render.NeedRepo(domain.ScopePullRequests)
		return res
	}

	q := forge.Query{Term: in.Query, PageLen: limit}
	var ok bool
	if q.Page, ok = pageFromCursor(in.Cursor); !ok {
		res.Err = perr.WithField(perr.InvalidCursorf("cursor %q is not a page token", in.Cursor), "cursor")
		return res
	}

	out, err := s.forge.SearchPullRequests(ctx, in.Workspace, in.Repo, q)
	if err != nil {
		res.Err = err
		return res
	}

	res.OK = true
	res.Page = paging.Normalize(rawPage(out.PageInfo, len(out.Values)), paging.StylePage)
	res.Count = res.Page.Count

	items := capItems(out.Values, limit)
	if len(items) == 0 {
		return res
	}
	res.Body = withNote(render.PullRequests(items), render.TruncationNote(len(items), res.Page))
	return res
}

func (s *Svc) searchCommits(ctx context.Context, in domain.SearchInput, limit int) domain.ScopeResult {
	res := domain.ScopeResult{Scope: domain.ScopeCommits, Title: render.Title(domain.ScopeCommits)}

	if in.Repo == "" {
		res.OK = true
		res.Body = render.NeedRepo(domain.ScopeCommits)
		return res
	}

	q := forge.Query{Term: in.Query, PageLen: limit}
	var ok bool
	if q.Page, ok = pageFromCursor(in.Cursor); !ok {
		res.Err = perr.WithField(perr.InvalidCursorf("cursor %q is not a page token", in.Cursor), "cursor")
		return res
	}

	out, err := s.forge.SearchCommits(ctx, in.Workspace, in.Repo, q)
	if err != nil {
		res.Err = err
		return res
	}

	res.OK = true
	res.Page = paging.Normalize(rawPage(out.PageInfo, len(out.Values)), paging.StylePage)
	res.Count = res.Page.Count

	items := capItems(out.Values, limit)
	if len(items) == 0 {
		return res
	}
	res.Body = withNote(render.Commits(items), render.TruncationNote(len(items), res.Page))
	return res
}

func (s *Svc) searchCode(ctx context.Context, in domain.SearchInput, limit int) domain.ScopeResult {
	res := domain.ScopeResult{Scope: domain.ScopeCode, Title: render.Title(domain.ScopeCode)}

	if in.Query == "" {
		res.OK = true
		res.Body = render.NeedQuery()
		return res
	}

	term := in.Query
	if in.Extension != "" {
		term += " ext:" + in.Extension
	}

	out, err := s.forge.SearchCode(ctx, in.Workspace, forge.CodeQuery{
		Term:    term,
		Cursor:  in.Cursor,
		PageLen: limit,
	})
	if err != nil {
		res.Err = err
		return res
	}

	res.OK = true
	res.Page = paging.Normalize(rawCursor(out, len(out.Values)), paging.StyleCursor)

	items := out.Values
	estimated := false
	if in.Language != "" {
		var kept []forge.CodeMatch
		for _, it := range items {
			if textfold.Equal(it.Repository.Language, in.Language) {
				kept = append(kept, it)
			}
		}
		// the upstream cannot filter by language here, so totals after the
		// local filter are extrapolated from this page's keep ratio
		if res.Page.Total != nil && len(items) > 0 {
			est := *res.Page.Total * len(kept) / len(items)
			res.Page.Total = &est
			estimated = true
		}
		logger.C(ctx).Debug().
			Int("before", len(items)).
			Int("after", len(kept)).
			Str("language", in.Language).
			Msg("code results filtered by language")
		res.Page.Count = len(kept)
		items = kept
	}
	res.Count = res.Page.Count

	items = capItems(items, limit)
	if len(items) == 0 {
		return res
	}
	body := withNote(render.CodeMatches(items), render.TruncationNote(len(items), res.Page))
	if estimated {
		body = withNote(body, render.EstimateNote())
	}
	res.Body = body
	return res
}

// pageFromCursor maps an optional page-style cursor to a page number
// empty means first page, anything non-numeric is rejected
func pageFromCursor(cursor string) (int, bool) {
	if cursor == "" {
		return 0, true
	}
	return paging.ParsePageToken(cursor)
}

// rawPage lifts a page-numbered envelope into the normalizer's input shape
func rawPage(pi forge.PageInfo, returned int) paging.Raw {
	raw := paging.Raw{Page: pi.Page, PageLen: pi.PageLen, Returned: returned, Total: -1}
	if raw.Page == 0 {
		raw.Page = 1
	}
	if raw.PageLen == 0 {
		raw.PageLen = returned
	}
	if pi.Size != nil {
		raw.Total = *pi.Size
	}
	return raw
}

// rawCursor lifts a cursor envelope into the normalizer's input shape
func rawCursor(out forge.CodePage, returned int) paging.Raw {
	raw := paging.Raw{Returned: returned, Total: -1, Next: out.Next}
	if out.Size != nil {
		raw.Total = *out.Size
	}
	return raw
}

func capItems[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func withNote(body, note string) string {
	if note == "" {
		return body
	}
	return body + "\n" + note + "\n"
}
