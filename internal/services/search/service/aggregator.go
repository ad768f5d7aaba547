package service

import (
	"context"
	"sync"

	"codescout/internal/core/paging"
	perr "codescout/internal/platform/errors"
	"codescout/internal/platform/logger"
	"codescout/internal/services/search/domain"
	"codescout/internal/services/search/render"
)

// aggregate fans the request out across every applicable scope concurrently
// and folds the results into one response
//
// repositories and code always run; pull requests and commits only run when
// a repo is named since they are repo-scoped upstream. Every handler-level
// failure is recoverable here: failed scopes are logged and dropped from the
// output, and even all scopes failing yields a no-results response rather
// than an error. The only fatal path is the dispatcher's precondition check
func (s *Svc) aggregate(ctx context.Context, in domain.SearchInput) domain.Response {
	type launch struct {
		scope domain.Scope
		limit int
	}
	launches := []launch{{domain.ScopeRepositories, s.cfg.RepoCap}}
	if in.Repo != "" {
		launches = append(launches,
			launch{domain.ScopePullRequests, s.cfg.PRCap},
			launch{domain.ScopeCommits, s.cfg.CommitCap},
		)
	}
	launches = append(launches, launch{domain.ScopeCode, s.cfg.CodeCap})

	results := make([]domain.ScopeResult, len(launches))
	var wg sync.WaitGroup
	for i, l := range launches {
		wg.Add(1)
		go func(i int, l launch) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.C(ctx).Error().
						Str("scope", string(l.scope)).
						Interface("panic", r).
						Msg("scope handler panicked")
					results[i] = domain.ScopeResult{
						Scope: l.scope,
						Err:   perr.PanicErrf("scope %s panicked: %v", l.scope, r),
					}
				}
			}()
			results[i] = s.runScope(ctx, l.scope, in, l.limit)
		}(i, l)
	}
	wg.Wait()

	ordered := orderByPriority(results)

	log := logger.C(ctx)
	var (
		counts   []render.ScopeCount
		sections []domain.Section
		pages    []paging.Page
		okCount  int
	)
	for _, res := range ordered {
		if !res.OK {
			log.Warn().
				Str("scope", string(res.Scope)).
				Err(res.Err).
				Msg("scope failed during aggregation")
			continue
		}
		okCount++
		counts = append(counts, render.ScopeCount{Scope: res.Scope, Count: res.Count})
		pages = append(pages, res.Page)
		// zero-count scopes (empty or instructional) stay in the summary tally
		// but never surface as aggregated sections
		if res.Count > 0 && res.Body != "" {
			sections = append(sections, domain.Section{
				Scope: res.Scope,
				Title: res.Title,
				Count: res.Count,
				Body:  res.Body,
				Page:  res.Page,
			})
		}
	}

	// even a fully failed fan-out produces a response, not an error
	if okCount == 0 {
		return domain.Response{Summary: render.NoMatches(in.Query, in.Workspace)}
	}

	return domain.Response{
		Summary:  render.Summary(counts, in.Query, in.Workspace),
		Sections: sections,
		Page:     paging.Merge(pages...),
	}
}

// orderByPriority reorders scope results into the fixed presentation order
func orderByPriority(results []domain.ScopeResult) []domain.ScopeResult {
	out := make([]domain.ScopeResult, 0, len(results))
	for _, scope := range domain.ScopePriority {
		for _, res := range results {
			if res.Scope == scope {
				out = append(out, res)
			}
		}
	}
	// anything with an unlisted scope goes last rather than vanishing
	for _, res := range results {
		known := false
		for _, scope := range domain.ScopePriority {
			if res.Scope == scope {
				known = true
				break
			}
		}
		if !known {
			out = append(out, res)
		}
	}
	return out
}
