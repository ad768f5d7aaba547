package paging

import "testing"

func intPtr(n int) *int { return &n }

func TestNormalize_PageStyle(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want Page
	}{
		{
			name: "middle page with total",
			raw:  Raw{Page: 2, PageLen: 10, Returned: 10, Total: 35},
			want: Page{Count: 10, HasMore: true, NextToken: "3", Total: intPtr(35)},
		},
		{
			name: "last page with total",
			raw:  Raw{Page: 4, PageLen: 10, Returned: 5, Total: 35},
			want: Page{Count: 5, HasMore: false, Total: intPtr(35)},
		},
		{
			name: "exact boundary total",
			raw:  Raw{Page: 2, PageLen: 10, Returned: 10, Total: 20},
			want: Page{Count: 10, HasMore: false, Total: intPtr(20)},
		},
		{
			name: "no total full page assumes more",
			raw:  Raw{Page: 1, PageLen: 10, Returned: 10, Total: -1},
			want: Page{Count: 10, HasMore: true, NextToken: "2"},
		},
		{
			name: "no total short page is final",
			raw:  Raw{Page: 3, PageLen: 10, Returned: 4, Total: -1},
			want: Page{Count: 4, HasMore: false},
		},
		{
			name: "empty first page",
			raw:  Raw{Page: 1, PageLen: 10, Returned: 0, Total: 0},
			want: Page{Count: 0, HasMore: false, Total: intPtr(0)},
		},
		{
			name: "returned overstates pagelen is clamped",
			raw:  Raw{Page: 1, PageLen: 10, Returned: 12, Total: -1},
			want: Page{Count: 10, HasMore: true, NextToken: "2"},
		},
		{
			name: "malformed zero page",
			raw:  Raw{Page: 0, PageLen: 10, Returned: 10, Total: 100},
			want: Page{},
		},
		{
			name: "malformed negative returned",
			raw:  Raw{Page: 1, PageLen: 10, Returned: -3, Total: 100},
			want: Page{},
		},
		{
			name: "malformed zero pagelen",
			raw:  Raw{Page: 1, PageLen: 0, Returned: 0, Total: 0},
			want: Page{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw, StylePage)
			assertPage(t, got, tc.want)
		})
	}
}

func TestNormalize_CursorStyle(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want Page
	}{
		{
			name: "token present means more",
			raw:  Raw{Returned: 15, Total: -1, Next: "abc123"},
			want: Page{Count: 15, HasMore: true, NextToken: "abc123"},
		},
		{
			name: "no token means final page",
			raw:  Raw{Returned: 7, Total: -1},
			want: Page{Count: 7, HasMore: false},
		},
		{
			name: "total passes through when present",
			raw:  Raw{Returned: 15, Total: 120, Next: "tok"},
			want: Page{Count: 15, HasMore: true, NextToken: "tok", Total: intPtr(120)},
		},
		{
			name: "empty result no token",
			raw:  Raw{Returned: 0, Total: 0},
			want: Page{Count: 0, HasMore: false, Total: intPtr(0)},
		},
		{
			name: "malformed negative returned",
			raw:  Raw{Returned: -1, Next: "tok"},
			want: Page{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw, StyleCursor)
			assertPage(t, got, tc.want)
		})
	}
}

func TestNormalize_UnknownStyle(t *testing.T) {
	got := Normalize(Raw{Page: 1, PageLen: 10, Returned: 10, Total: 100}, Style("bogus"))
	assertPage(t, got, Page{})
}

func TestParsePageToken(t *testing.T) {
	if n, ok := ParsePageToken("3"); !ok || n != 3 {
		t.Fatalf("ParsePageToken(3) = %d, %v", n, ok)
	}
	for _, bad := range []string{"", "0", "-1", "abc", "2.5", "99999999999999999999"} {
		if _, ok := ParsePageToken(bad); ok {
			t.Fatalf("ParsePageToken(%q) accepted, want reject", bad)
		}
	}
}

func TestMerge(t *testing.T) {
	a := Page{Count: 10, HasMore: false}
	b := Page{Count: 15, HasMore: true, NextToken: "tok-b"}
	c := Page{Count: 5, HasMore: true, NextToken: "tok-c"}

	got := Merge(a, b, c)
	if got.Count != 30 {
		t.Fatalf("Merge count = %d, want 30", got.Count)
	}
	if !got.HasMore {
		t.Fatal("Merge HasMore = false, want true")
	}
	// first page with more wins the token
	if got.NextToken != "tok-b" {
		t.Fatalf("Merge NextToken = %q, want tok-b", got.NextToken)
	}

	none := Merge(Page{Count: 2}, Page{Count: 3})
	if none.HasMore || none.NextToken != "" {
		t.Fatalf("Merge of final pages = %+v, want no more", none)
	}
}

func assertPage(t *testing.T, got, want Page) {
	t.Helper()
	if got.Count != want.Count {
		t.Fatalf("Count = %d, want %d", got.Count, want.Count)
	}
	if got.HasMore != want.HasMore {
		t.Fatalf("HasMore = %v, want %v", got.HasMore, want.HasMore)
	}
	if got.NextToken != want.NextToken {
		t.Fatalf("NextToken = %q, want %q", got.NextToken, want.NextToken)
	}
	switch {
	case got.Total == nil && want.Total == nil:
	case got.Total == nil || want.Total == nil:
		t.Fatalf("Total = %v, want %v", got.Total, want.Total)
	case *got.Total != *want.Total:
		t.Fatalf("Total = %d, want %d", *got.Total, *want.Total)
	}
}
