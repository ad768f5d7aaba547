// Package render turns forge search results into the markdown bodies and
// summary lines the API returns
package render

import (
	"fmt"
	"strings"

	"codescout/internal/adapters/forge"
	"codescout/internal/core/paging"
	str "codescout/internal/platform/strings"
	"codescout/internal/services/search/domain"
)

const (
	maxCommitSubject = 80
	maxExcerptRunes  = 120
)

// Repositories renders repository cards, one bullet per repo
func Repositories(items []forge.Repository) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("- **")
		b.WriteString(it.FullName)
		b.WriteString("**")
		if tags := repoTags(it); tags != "" {
			b.WriteString(" (")
			b.WriteString(tags)
			b.WriteString(")")
		}
		b.WriteString("\n")
		if d := strings.TrimSpace(it.Description); d != "" {
			b.WriteString("  ")
			b.WriteString(str.Truncate(d, maxExcerptRunes))
			b.WriteString("\n")
		}
		if href := it.Links.HTML.Href; href != "" {
			b.WriteString("  ")
			b.WriteString(href)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func repoTags(it forge.Repository) string {
	var tags []string
	if it.Language != "" {
		tags = append(tags, it.Language)
	}
	if it.IsPrivate {
		tags = append(tags, "private")
	}
	return strings.Join(tags, ", ")
}

// PullRequests renders pull request cards
func PullRequests(items []forge.PullRequest) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- #%d %s [%s]", it.ID, it.Title, strings.ToUpper(it.State))
		if it.Author.DisplayName != "" {
			fmt.Fprintf(&b, " by %s", it.Author.DisplayName)
		}
		if src, dst := it.Source.Branch.Name, it.Destination.Branch.Name; src != "" && dst != "" {
			fmt.Fprintf(&b, " (%s -> %s)", src, dst)
		}
		if !it.UpdatedOn.IsZero() {
			fmt.Fprintf(&b, " updated %s", it.UpdatedOn.UTC().Format("2006-01-02"))
		}
		b.WriteString("\n")
		if href := it.Links.HTML.Href; href != "" {
			b.WriteString("  ")
			b.WriteString(href)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Commits renders commit cards using the subject line of each message
func Commits(items []forge.Commit) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- %s %s", shortHash(it.Hash), str.Truncate(subjectLine(it.Message), maxCommitSubject))
		if who := commitAuthor(it); who != "" {
			fmt.Fprintf(&b, " (%s", who)
			if !it.Date.IsZero() {
				fmt.Fprintf(&b, ", %s", it.Date.UTC().Format("2006-01-02"))
			}
			b.WriteString(")")
		} else if !it.Date.IsZero() {
			fmt.Fprintf(&b, " (%s)", it.Date.UTC().Format("2006-01-02"))
		}
		b.WriteString("\n")
		if href := it.Links.HTML.Href; href != "" {
			b.WriteString("  ")
			b.WriteString(href)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

func subjectLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}

func commitAuthor(it forge.Commit) string {
	if it.Author.User.DisplayName != "" {
		return it.Author.User.DisplayName
	}
	return it.Author.Raw
}

// CodeMatches renders code search cards with the first matched line as excerpt
func CodeMatches(items []forge.CodeMatch) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("- `")
		b.WriteString(it.File.Path)
		b.WriteString("`")
		if it.Repository.FullName != "" {
			fmt.Fprintf(&b, " in %s", it.Repository.FullName)
		}
		if it.Repository.Language != "" {
			fmt.Fprintf(&b, " (%s)", strings.ToLower(it.Repository.Language))
		}
		if it.MatchCount > 0 {
			fmt.Fprintf(&b, ", %s", plural(it.MatchCount, "match", "matches"))
		}
		b.WriteString("\n")
		if ex := excerpt(it); ex != "" {
			b.WriteString("  > ")
			b.WriteString(str.Truncate(ex, maxExcerptRunes))
			b.WriteString("\n")
		}
		if href := it.File.Links.HTML.Href; href != "" {
			b.WriteString("  ")
			b.WriteString(href)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// excerpt returns the first line of the first content match that contains a hit
func excerpt(it forge.CodeMatch) string {
	for _, cm := range it.ContentMatches {
		for _, ln := range cm.Lines {
			hit := false
			var sb strings.Builder
			for _, seg := range ln.Segments {
				sb.WriteString(seg.Text)
				if seg.Match {
					hit = true
				}
			}
			if hit {
				return strings.TrimSpace(sb.String())
			}
		}
	}
	return ""
}

// TruncationNote explains a capped section, empty when nothing was held back
func TruncationNote(shown int, page paging.Page) string {
	if page.Total != nil && *page.Total > shown {
		return fmt.Sprintf("Showing %d of %d matches.", shown, *page.Total)
	}
	if page.HasMore || page.Count > shown {
		return fmt.Sprintf("Showing first %d matches; more are available.", shown)
	}
	return ""
}

// EstimateNote flags that totals were extrapolated after local filtering
func EstimateNote() string {
	return "Language filter applied locally; match totals are estimates."
}

// NeedRepo is the instructional body for repo-scoped searches without a repo
func NeedRepo(scope domain.Scope) string {
	noun := "This search"
	switch scope {
	case domain.ScopePullRequests:
		noun = "Pull request search"
	case domain.ScopeCommits:
		noun = "Commit search"
	}
	return noun + ` needs a repository. Set "repo" to a repository slug in the workspace and retry.`
}

// NeedQuery is the instructional body for code search without a query term
func NeedQuery() string {
	return `Code search needs a query term. Set "query" and retry.`
}

// ScopeCount pairs a scope with its match count for the summary line
type ScopeCount struct {
	Scope domain.Scope
	Count int
}

// Summary builds the one-line summary for an aggregated response
func Summary(counts []ScopeCount, query, workspace string) string {
	var parts []string
	total := 0
	for _, c := range counts {
		total += c.Count
		parts = append(parts, countPhrase(c))
	}
	if total == 0 {
		return NoMatches(query, workspace)
	}

	var b strings.Builder
	b.WriteString("Found ")
	b.WriteString(joinNatural(parts))
	if q := strings.TrimSpace(query); q != "" {
		fmt.Fprintf(&b, " for %q", q)
	}
	fmt.Fprintf(&b, " in %s.", workspace)
	return b.String()
}

// NoMatches is the summary when every scope came back empty
func NoMatches(query, workspace string) string {
	var b strings.Builder
	if q := strings.TrimSpace(query); q != "" {
		fmt.Fprintf(&b, "No matches for %q in %s.", q, workspace)
	} else {
		fmt.Fprintf(&b, "No matches in %s.", workspace)
	}
	b.WriteString(" Try a broader query, check the workspace slug, or search a single scope.")
	return b.String()
}

func countPhrase(c ScopeCount) string {
	switch c.Scope {
	case domain.ScopeRepositories:
		return plural(c.Count, "repository", "repositories")
	case domain.ScopePullRequests:
		return plural(c.Count, "pull request", "pull requests")
	case domain.ScopeCommits:
		return plural(c.Count, "commit", "commits")
	case domain.ScopeCode:
		return plural(c.Count, "code match", "code matches")
	default:
		return plural(c.Count, "match", "matches")
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// joinNatural joins phrases as "a", "a and b", or "a, b, and c"
func joinNatural(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}

// Title maps a scope to its section heading
func Title(scope domain.Scope) string {
	switch scope {
	case domain.ScopeRepositories:
		return "Repositories"
	case domain.ScopePullRequests:
		return "Pull Requests"
	case domain.ScopeCommits:
		return "Commits"
	case domain.ScopeCode:
		return "Code"
	default:
		return "Results"
	}
}
