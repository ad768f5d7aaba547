// Package forge provides a REST client for the upstream code-hosting API
package forge

import (
	"context"
	"time"
)

// Querier is the read surface the search service consumes
// implemented by *Client and by test fakes
type Querier interface {
	SearchRepositories(ctx context.Context, workspace string, q Query) (RepoPage, error)
	SearchPullRequests(ctx context.Context, workspace, repo string, q Query) (PullRequestPage, error)
	SearchCommits(ctx context.Context, workspace, repo string, q Query) (CommitPage, error)
	SearchCode(ctx context.Context, workspace string, q CodeQuery) (CodePage, error)
	Ping(ctx context.Context) error
}

// Query carries the parameters shared by the page-numbered search endpoints
type Query struct {
	Term    string
	Page    int // 1-based, 0 means first page
	PageLen int // 0 means upstream default
}

// CodeQuery carries the parameters for cursor-paginated code search
type CodeQuery struct {
	Term    string
	Cursor  string // opaque continuation token from a previous page
	PageLen int
}

// Link is a single href in a links block
type Link struct {
	Href string `json:"href"`
}

// Links is the subset of the upstream links block we surface
type Links struct {
	HTML Link `json:"html"`
}

// Account identifies a user on the forge
type Account struct {
	DisplayName string `json:"display_name"`
	Nickname    string `json:"nickname"`
}

// Repository is a repository summary as returned by repository search
type Repository struct {
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	IsPrivate   bool      `json:"is_private"`
	UpdatedOn   time.Time `json:"updated_on"`
	Links       Links     `json:"links"`
}

// PullRequestEndpoint is one side of a pull request
type PullRequestEndpoint struct {
	Branch struct {
		Name string `json:"name"`
	} `json:"branch"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// PullRequest is a pull request summary as returned by pull request search
type PullRequest struct {
	ID           int                 `json:"id"`
	Title        string              `json:"title"`
	State        string              `json:"state"`
	Author       Account             `json:"author"`
	Source       PullRequestEndpoint `json:"source"`
	Destination  PullRequestEndpoint `json:"destination"`
	CommentCount int                 `json:"comment_count"`
	UpdatedOn    time.Time           `json:"updated_on"`
	Links        Links               `json:"links"`
}

// Commit is a commit summary as returned by commit search
type Commit struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Author  struct {
		Raw  string  `json:"raw"`
		User Account `json:"user"`
	} `json:"author"`
	Links Links `json:"links"`
}

// RepositoryRef is the abbreviated repository block attached to code matches
type RepositoryRef struct {
	FullName string `json:"full_name"`
	Language string `json:"language"`
}

// CodeFile locates the matched file
type CodeFile struct {
	Path  string `json:"path"`
	Links Links  `json:"links"`
}

// SegmentMatch is a run of characters in a matched line, flagged when it is
// part of the hit itself
type SegmentMatch struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// ContentLine is one line of a content match excerpt
type ContentLine struct {
	Line     int            `json:"line"`
	Segments []SegmentMatch `json:"segments"`
}

// ContentMatch is a contiguous excerpt around one or more hits
type ContentMatch struct {
	Lines []ContentLine `json:"lines"`
}

// CodeMatch is one file-level result from code search
type CodeMatch struct {
	MatchCount     int            `json:"content_match_count"`
	ContentMatches []ContentMatch `json:"content_matches"`
	File           CodeFile       `json:"file"`
	Repository     RepositoryRef  `json:"repository"`
}

// PageInfo is the page-numbered envelope metadata
// Size is the exact total when the upstream reported one, nil otherwise
type PageInfo struct {
	Page    int  `json:"page"`
	PageLen int  `json:"pagelen"`
	Size    *int `json:"size"`
}

// RepoPage is one page of repository search results
type RepoPage struct {
	PageInfo
	Values []Repository `json:"values"`
}

// PullRequestPage is one page of pull request search results
type PullRequestPage struct {
	PageInfo
	Values []PullRequest `json:"values"`
}

// CommitPage is one page of commit search results
type CommitPage struct {
	PageInfo
	Values []Commit `json:"values"`
}

// CodePage is one cursor-paginated page of code search results
// Next is the opaque token for the following page, empty on the final page
type CodePage struct {
	Size   *int        `json:"size"`
	Next   string      `json:"next"`
	Values []CodeMatch `json:"values"`
}
