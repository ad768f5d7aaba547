// Package service implements federated search across forge scopes
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"codescout/internal/adapters/forge"
	"codescout/internal/platform/config"
	perr "codescout/internal/platform/errors"
	"codescout/internal/platform/logger"
	"codescout/internal/services/search/domain"
	"codescout/internal/services/search/render"
)

// Config carries the per-scope result caps applied to aggregated responses
// single-scope requests use the caller's limit and fall back to these
type Config struct {
	RepoCap   int
	PRCap     int
	CommitCap int
	CodeCap   int
}

// DefaultConfig returns the stock aggregation caps
func DefaultConfig() Config {
	return Config{RepoCap: 10, PRCap: 10, CommitCap: 10, CodeCap: 15}
}

// FromConfig reads caps from a CORE_SEARCH_ prefixed config view
func FromConfig(cfg config.Conf) Config {
	d := DefaultConfig()
	return Config{
		RepoCap:   cfg.MayInt("REPO_CAP", d.RepoCap),
		PRCap:     cfg.MayInt("PR_CAP", d.PRCap),
		CommitCap: cfg.MayInt("COMMIT_CAP", d.CommitCap),
		CodeCap:   cfg.MayInt("CODE_CAP", d.CodeCap),
	}
}

// Service defines the service contract for search
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	forge forge.Querier
	cfg   Config
}

// New creates a search service over the given forge querier
func New(q forge.Querier, cfg Config) *Svc {
	if q == nil {
		panic("search.Service requires a non nil forge querier")
	}
	d := DefaultConfig()
	if cfg.RepoCap < 1 {
		cfg.RepoCap = d.RepoCap
	}
	if cfg.PRCap < 1 {
		cfg.PRCap = d.PRCap
	}
	if cfg.CommitCap < 1 {
		cfg.CommitCap = d.CommitCap
	}
	if cfg.CodeCap < 1 {
		cfg.CodeCap = d.CodeCap
	}
	return &Svc{forge: q, cfg: cfg}
}

// Search validates the request, assigns a search id, and dispatches to a
// single scope handler or the fan-out aggregator
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.Response, error) {
	in.Workspace = strings.TrimSpace(in.Workspace)
	in.Repo = strings.TrimSpace(in.Repo)
	in.Query = strings.TrimSpace(in.Query)

	if in.Workspace == "" {
		return domain.Response{}, perr.WithField(perr.Validationf("workspace is required"), "workspace")
	}
	if in.Scope == "" {
		in.Scope = domain.ScopeAll
	}
	switch in.Scope {
	case domain.ScopeRepositories, domain.ScopePullRequests, domain.ScopeCommits, domain.ScopeCode, domain.ScopeAll:
	default:
		return domain.Response{}, perr.WithField(perr.Validationf("unknown scope %q", in.Scope), "scope")
	}
	if in.Limit < 0 || in.Limit > 100 {
		return domain.Response{}, perr.WithField(perr.Validationf("limit must be between 0 and 100 (0 uses the default)"), "limit")
	}

	searchID := uuid.NewString()
	ctx = logger.WithSearch(logger.WithRequest(ctx, "", in.Workspace), searchID)

	if in.Scope != domain.ScopeAll {
		res := s.runScope(ctx, in.Scope, in, s.limitFor(in.Scope, in.Limit))
		if !res.OK {
			return domain.Response{}, res.Err
		}
		return domain.Response{
			SearchID: searchID,
			Summary:  render.Summary([]render.ScopeCount{{Scope: res.Scope, Count: res.Count}}, in.Query, in.Workspace),
			Sections: sectionsOf(res),
			Page:     res.Page,
		}, nil
	}

	// fan-out mode always starts from the first page of every scope, a token
	// from one scope is meaningless to the others
	if in.Cursor != "" {
		return domain.Response{}, perr.WithField(
			perr.Validationf("cursor requires an explicit scope"), "cursor")
	}

	resp := s.aggregate(ctx, in)
	resp.SearchID = searchID
	return resp, nil
}

// runScope dispatches to the handler for one scope
func (s *Svc) runScope(ctx context.Context, scope domain.Scope, in domain.SearchInput, limit int) domain.ScopeResult {
	switch scope {
	case domain.ScopeRepositories:
		return s.searchRepositories(ctx, in, limit)
	case domain.ScopePullRequests:
		return s.searchPullRequests(ctx, in, limit)
	case domain.ScopeCommits:
		return s.searchCommits(ctx, in, limit)
	case domain.ScopeCode:
		return s.searchCode(ctx, in, limit)
	default:
		return domain.ScopeResult{Scope: scope, Err: perr.Internalf("no handler for scope %q", scope)}
	}
}

// limitFor resolves the effective page size for a single-scope request
func (s *Svc) limitFor(scope domain.Scope, requested int) int {
	if requested > 0 {
		return requested
	}
	switch scope {
	case domain.ScopePullRequests:
		return s.cfg.PRCap
	case domain.ScopeCommits:
		return s.cfg.CommitCap
	case domain.ScopeCode:
		return s.cfg.CodeCap
	default:
		return s.cfg.RepoCap
	}
}

// sectionsOf wraps a single result, skipping the section when there is
// nothing to show
func sectionsOf(res domain.ScopeResult) []domain.Section {
	if res.Body == "" {
		return nil
	}
	return []domain.Section{{
		Scope: res.Scope,
		Title: res.Title,
		Count: res.Count,
		Body:  res.Body,
		Page:  res.Page,
	}}
}
