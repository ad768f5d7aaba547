// Package paging normalizes the pagination envelopes the upstream forge
// returns into a single shape callers can rely on.
//
// The forge API is inconsistent: listing endpoints paginate with numeric
// page/pagelen envelopes, while code search paginates with an opaque cursor.
// Some envelopes carry an exact total, some omit it entirely. Everything in
// this package is pure; malformed input degrades to an empty page rather
// than erroring or panicking.
package paging

import "strconv"

// Style names the pagination scheme of an upstream envelope.
type Style string

const (
	// StylePage is the numeric page/pagelen envelope used by listing endpoints.
	StylePage Style = "page"
	// StyleCursor is the opaque-token envelope used by code search.
	StyleCursor Style = "cursor"
)

// Page is the normalized pagination block attached to every result set.
type Page struct {
	// Count is the number of items present on this page.
	Count int `json:"count"`
	// HasMore reports whether another page exists (or likely exists when the
	// upstream omits totals).
	HasMore bool `json:"has_more"`
	// NextToken fetches the next page when HasMore is true. For page-numbered
	// envelopes it is the next page number in decimal; for cursor envelopes
	// it is the upstream token verbatim.
	NextToken string `json:"next_token,omitempty"`
	// Total is the exact number of matches when the upstream reported one,
	// nil otherwise.
	Total *int `json:"total,omitempty"`
}

// Raw is the superset of pagination fields an upstream envelope may carry.
// Callers populate the fields their style uses and leave the rest zero.
type Raw struct {
	// Page is the 1-based page number (page style).
	Page int
	// PageLen is the requested page size (page style).
	PageLen int
	// Returned is the number of items actually present in the envelope.
	Returned int
	// Total is the upstream-reported total, <0 when not reported.
	Total int
	// Next is the opaque continuation token (cursor style).
	Next string
}

// Normalize converts a raw upstream envelope into a Page.
//
// For StylePage, HasMore is computed from page*pagelen < total when a total
// is available; when the upstream omits the total, a full page is treated as
// "probably more" and a short page as the end. For StyleCursor, the presence
// of a next token is the sole signal and the token passes through untouched.
func Normalize(raw Raw, style Style) Page {
	switch style {
	case StylePage:
		return normalizePage(raw)
	case StyleCursor:
		return normalizeCursor(raw)
	default:
		return Page{}
	}
}

func normalizePage(raw Raw) Page {
	if raw.Page < 1 || raw.PageLen < 1 || raw.Returned < 0 {
		return Page{}
	}

	// Upstreams have been seen returning more items than pagelen on buggy
	// envelopes; clamp so count never overstates the page.
	count := raw.Returned
	if count > raw.PageLen {
		count = raw.PageLen
	}

	p := Page{Count: count}
	if raw.Total >= 0 {
		total := raw.Total
		p.Total = &total
		p.HasMore = raw.Page*raw.PageLen < total
	} else {
		// No total reported: a completely full page suggests more follow.
		p.HasMore = count == raw.PageLen && count > 0
	}

	if p.HasMore {
		p.NextToken = strconv.Itoa(raw.Page + 1)
	}
	return p
}

func normalizeCursor(raw Raw) Page {
	if raw.Returned < 0 {
		return Page{}
	}
	p := Page{
		Count:   raw.Returned,
		HasMore: raw.Next != "",
	}
	if p.HasMore {
		p.NextToken = raw.Next
	}
	if raw.Total >= 0 {
		total := raw.Total
		p.Total = &total
	}
	return p
}

// ParsePageToken converts a page-style NextToken back into a page number.
// It returns ok=false for anything that is not a positive decimal integer.
func ParsePageToken(token string) (page int, ok bool) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Merge combines the pages of several normalized result sets into the
// top-level page for an aggregated response: counts sum, HasMore is true if
// any input has more, and the token of the first input with more carries
// through so a follow-up request can resume the dominant scope.
func Merge(pages ...Page) Page {
	var out Page
	for _, p := range pages {
		out.Count += p.Count
		if p.HasMore && !out.HasMore {
			out.HasMore = true
			out.NextToken = p.NextToken
		}
	}
	return out
}
