package config

import (
	"testing"
	"time"

	kit "codescout/internal/platform/testkit"
)

func TestPrefix_Composition(t *testing.T) {
	t.Setenv("CORE_API_PORT", "4000")
	c := New().Prefix("CORE_").Prefix("API_")
	if got := c.MayString("PORT", ""); got != "4000" {
		t.Fatalf("MayString = %q", got)
	}
}

func TestMustString_PanicsWhenMissing(t *testing.T) {
	c := New().Prefix("CODESCOUT_TEST_MISSING_")
	kit.MustPanic(t, func() { c.MustString("NOPE") })
}

func TestMustPort(t *testing.T) {
	t.Setenv("CODESCOUT_TEST_PORT", "4100")
	c := New().Prefix("CODESCOUT_TEST_")
	if got := c.MustPort("PORT"); got != ":4100" {
		t.Fatalf("MustPort = %q", got)
	}
	t.Setenv("CODESCOUT_TEST_PORT", "99999")
	kit.MustPanic(t, func() { c.MustPort("PORT") })
}

func TestMustURL(t *testing.T) {
	t.Setenv("CODESCOUT_TEST_URL", "https://api.bitbucket.org/2.0")
	c := New().Prefix("CODESCOUT_TEST_")
	if u := c.MustURL("URL"); u.Host != "api.bitbucket.org" {
		t.Fatalf("MustURL host = %q", u.Host)
	}
	t.Setenv("CODESCOUT_TEST_URL", "not a url")
	kit.MustPanic(t, func() { c.MustURL("URL") })
}

func TestMay_Defaults(t *testing.T) {
	c := New().Prefix("CODESCOUT_TEST_MAY_")
	if got := c.MayInt("LIMIT", 25); got != 25 {
		t.Fatalf("MayInt default = %d", got)
	}
	if got := c.MayBool("SWAGGER", true); !got {
		t.Fatalf("MayBool default = %v", got)
	}
	if got := c.MayDuration("TIMEOUT", 10*time.Second); got != 10*time.Second {
		t.Fatalf("MayDuration default = %v", got)
	}

	t.Setenv("CODESCOUT_TEST_MAY_LIMIT", "bogus")
	if got := c.MayInt("LIMIT", 25); got != 25 {
		t.Fatalf("MayInt invalid should fall back, got %d", got)
	}
	t.Setenv("CODESCOUT_TEST_MAY_TIMEOUT", "15s")
	if got := c.MayDuration("TIMEOUT", 10*time.Second); got != 15*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
}

func TestRequire(t *testing.T) {
	t.Setenv("CODESCOUT_TEST_REQ_A", "x")
	c := New().Prefix("CODESCOUT_TEST_REQ_")
	kit.MustNotPanic(t, func() { c.Require("A") })
	kit.MustPanic(t, func() { c.Require("A", "B") })
}
