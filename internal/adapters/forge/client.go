package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"codescout/internal/platform/config"
	perr "codescout/internal/platform/errors"
	"codescout/internal/platform/logger"
)

const (
	defaultTimeout = 10 * time.Second
	defaultUA      = "codescout"
	defaultPageLen = 10
	maxPageLen     = 100
	maxBodyBytes   = 2 << 20
)

// Options configures the Client
type Options struct {
	BaseURL     string
	Username    string
	AppPassword string
	UserAgent   string
	Timeout     time.Duration

	// Transport overrides the default transport, nil means http.DefaultTransport
	Transport http.RoundTripper
}

// Client is a single-attempt forge REST client
// each call is one upstream request; callers decide whether a failure is
// worth retrying, the client never sleeps
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = "https://api.bitbucket.org"
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout, Transport: o.Transport},
		opts: o,
		log:  *logger.Named("forge"),
	}
}

// FromConfig builds Options from a FORGE_ prefixed config view
func FromConfig(cfg config.Conf) Options {
	return Options{
		BaseURL:     cfg.MayString("BASE_URL", "https://api.bitbucket.org"),
		Username:    cfg.MayString("USERNAME", ""),
		AppPassword: cfg.MayString("APP_PASSWORD", ""),
		UserAgent:   cfg.MayString("USER_AGENT", defaultUA),
		Timeout:     cfg.MayDuration("TIMEOUT", defaultTimeout),
	}
}

// SearchRepositories queries repository search in a workspace
// results come back sorted by most recently updated
func (c *Client) SearchRepositories(ctx context.Context, workspace string, q Query) (RepoPage, error) {
	v := url.Values{}
	v.Set("q", fmt.Sprintf(`name~"%s"`, escapeTerm(q.Term)))
	v.Set("sort", "-updated_on")
	setPageParams(v, q)

	var out RepoPage
	path := "/2.0/repositories/" + url.PathEscape(workspace)
	if err := c.get(ctx, path, v, &out); err != nil {
		return RepoPage{}, err
	}
	return out, nil
}

// SearchPullRequests queries pull request search in a repository
func (c *Client) SearchPullRequests(ctx context.Context, workspace, repo string, q Query) (PullRequestPage, error) {
	v := url.Values{}
	v.Set("q", fmt.Sprintf(`title~"%s"`, escapeTerm(q.Term)))
	v.Set("sort", "-updated_on")
	setPageParams(v, q)

	var out PullRequestPage
	path := "/2.0/repositories/" + url.PathEscape(workspace) + "/" + url.PathEscape(repo) + "/pullrequests"
	if err := c.get(ctx, path, v, &out); err != nil {
		return PullRequestPage{}, err
	}
	return out, nil
}

// SearchCommits queries commit search in a repository
func (c *Client) SearchCommits(ctx context.Context, workspace, repo string, q Query) (CommitPage, error) {
	v := url.Values{}
	v.Set("q", fmt.Sprintf(`message~"%s"`, escapeTerm(q.Term)))
	setPageParams(v, q)

	var out CommitPage
	path := "/2.0/repositories/" + url.PathEscape(workspace) + "/" + url.PathEscape(repo) + "/commits"
	if err := c.get(ctx, path, v, &out); err != nil {
		return CommitPage{}, err
	}
	return out, nil
}

// SearchCode queries workspace-wide code search
// pagination is an opaque cursor rather than page numbers
func (c *Client) SearchCode(ctx context.Context, workspace string, q CodeQuery) (CodePage, error) {
	v := url.Values{}
	v.Set("search_query", q.Term)
	if q.Cursor != "" {
		v.Set("cursor", q.Cursor)
	}
	v.Set("pagelen", strconv.Itoa(clampPageLen(q.PageLen)))

	var out CodePage
	path := "/2.0/workspaces/" + url.PathEscape(workspace) + "/search/code"
	if err := c.get(ctx, path, v, &out); err != nil {
		return CodePage{}, err
	}
	return out, nil
}

// Ping verifies the upstream is reachable and the credentials are accepted
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, "/2.0/user", nil, nil)
}

// get issues one GET and decodes a 200 body into out (skipped when out is nil)
// non-200s are classified into coded errors, transport failures map to network
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.opts.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "forge new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.opts.Username != "" {
		req.SetBasicAuth(c.opts.Username, c.opts.AppPassword)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	lat := time.Since(start)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeNetwork, "forge transport failure on %s", path)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("forge close body failed")
		}
	}()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("forge http response")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return classifyStatus(resp.StatusCode, body, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeNetwork, "forge read body failed on %s", path)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "forge decode failed on %s", path)
	}
	return nil
}

// setPageParams applies page-numbered pagination params with clamping
func setPageParams(v url.Values, q Query) {
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	v.Set("pagelen", strconv.Itoa(clampPageLen(q.PageLen)))
}

func clampPageLen(n int) int {
	if n < 1 {
		return defaultPageLen
	}
	if n > maxPageLen {
		return maxPageLen
	}
	return n
}

// escapeTerm keeps user input from breaking out of the quoted query literal
func escapeTerm(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
