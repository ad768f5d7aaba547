package strings

import (
	"testing"

	kit "codescout/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"a"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "a" {
		t.Fatalf("IfEmpty(nil) = %v", got)
	}
	in := []string{"b", "c"}
	if got := IfEmpty(in, def); len(got) != 2 {
		t.Fatalf("IfEmpty(in) = %v", got)
	}
}

func TestMustString(t *testing.T) {
	if MustString("ok", "name") != "ok" {
		t.Fatalf("MustString passthrough failed")
	}
	kit.MustPanic(t, func() { MustString("   ", "name") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"search":    "/search",
		"/search":   "/search",
		" /search/": "/search",
		"meta":      "/meta",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { MustPrefix("  ") })
	kit.MustPanic(t, func() { MustPrefix("/") })
}

func TestPtrDeref(t *testing.T) {
	if Ptr("") != nil {
		t.Fatalf("Ptr(\"\") should be nil")
	}
	p := Ptr("x")
	if Deref(p) != "x" || Deref(nil) != "" {
		t.Fatalf("Deref roundtrip failed")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 8); got != "hello..." {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("hi", 8); got != "hi" {
		t.Fatalf("short string should pass through, got %q", got)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("n<=0 should yield empty, got %q", got)
	}
	if got := Truncate("abcdef", 2); got != "ab" {
		t.Fatalf("tiny budget should hard cut, got %q", got)
	}
}
