// Package http provides http transport for search
package http

import (
	stdhttp "net/http"
	"strconv"

	"codescout/internal/modkit/httpkit"
	perr "codescout/internal/platform/errors"
	"codescout/internal/services/search/domain"
	svc "codescout/internal/services/search/service"
)

// Register mounts search endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.SearchInput](r, "/", h.search)

	// scope-pinned GET conveniences, same semantics as POST with scope set
	httpkit.Get(r, "/repositories", h.scoped(domain.ScopeRepositories))
	httpkit.Get(r, "/pullrequests", h.scoped(domain.ScopePullRequests))
	httpkit.Get(r, "/commits", h.scoped(domain.ScopeCommits))
	httpkit.Get(r, "/code", h.scoped(domain.ScopeCode))
}

type handlers struct{ svc svc.Service }

// swagger:route POST /search Search searchFederated
// @Summary Federated search across repositories, pull requests, commits, and code
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Search request"
// @Success 200 {object} domain.Response "ok"
// @Router /search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}

// swagger:route GET /search/repositories Search searchScoped
// @Summary Single-scope search via query params
// @Tags Search
// @Produce json
// @Param workspace query string true "Workspace slug"
// @Param q query string false "Query term"
// @Param repo query string false "Repository slug"
// @Param limit query int false "Page size"
// @Param cursor query string false "Continuation token"
// @Success 200 {object} domain.Response "ok"
// @Router /search/repositories [get]
func (h *handlers) scoped(scope domain.Scope) func(*stdhttp.Request) (any, error) {
	return func(r *stdhttp.Request) (any, error) {
		in, err := inputFromQuery(r)
		if err != nil {
			return nil, err
		}
		in.Scope = scope
		return h.svc.Search(r.Context(), in)
	}
}

// inputFromQuery maps URL query params onto the POST body shape
func inputFromQuery(r *stdhttp.Request) (domain.SearchInput, error) {
	q := r.URL.Query()
	in := domain.SearchInput{
		Workspace: q.Get("workspace"),
		Repo:      q.Get("repo"),
		Query:     q.Get("q"),
		Cursor:    q.Get("cursor"),
		Language:  q.Get("language"),
		Extension: q.Get("extension"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, perr.WithField(perr.Validationf("limit must be an integer"), "limit")
		}
		in.Limit = n
	}
	return in, nil
}
