// Package domain holds the search service types and ports
package domain

import (
	"codescout/internal/core/paging"
)

// Scope names one searchable result category
type Scope string

// Searchable scopes; ScopeAll fans out across every applicable scope
const (
	ScopeRepositories Scope = "repositories"
	ScopePullRequests Scope = "pullrequests"
	ScopeCommits      Scope = "commits"
	ScopeCode         Scope = "code"
	ScopeAll          Scope = "all"
)

// ScopePriority fixes the presentation order of aggregated sections
var ScopePriority = []Scope{ScopeRepositories, ScopePullRequests, ScopeCommits, ScopeCode}

// SearchInput is the federated search request
// Repo is required for pull request and commit scopes, Cursor only makes
// sense with an explicit single scope
type SearchInput struct {
	Workspace string `json:"workspace" validate:"required"`
	Repo      string `json:"repo,omitempty"`
	Query     string `json:"query,omitempty"`
	Scope     Scope  `json:"scope,omitempty"     validate:"omitempty,oneof=repositories pullrequests commits code all"`
	Limit     int    `json:"limit,omitempty"     validate:"omitempty,min=1,max=100"`
	Cursor    string `json:"cursor,omitempty"`
	Language  string `json:"language,omitempty"`
	Extension string `json:"extension,omitempty"`
}

// Section is one rendered scope block in a response
type Section struct {
	Scope Scope       `json:"scope"`
	Title string      `json:"title"`
	Count int         `json:"count"`
	Body  string      `json:"body"`
	Page  paging.Page `json:"pagination"`
}

// Response is the aggregated search response
// Page covers the response as a whole, per-scope pagination lives on sections
type Response struct {
	SearchID string      `json:"search_id"`
	Summary  string      `json:"summary"`
	Sections []Section   `json:"sections"`
	Page     paging.Page `json:"pagination"`
}

// ScopeResult is the internal outcome of one scope handler
// OK with Count 0 and a non-empty Body is an instructional result, the scope
// ran fine but the request shape kept it from matching anything
type ScopeResult struct {
	Scope Scope
	Title string
	Count int
	Body  string
	Page  paging.Page
	OK    bool
	Err   error
}
