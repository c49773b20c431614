package scip_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fathom-search/fathom/internal/scip"
)

func Test_ResolveQuery_Suffixes(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"com.example.Main.greet", "com/example/Main#greet()."},
		{"com.example.util.StringHelper.capitalize", "com/example/util/StringHelper#capitalize()."},
		{"Main.greet", "/Main#greet()."},
	}
	for _, c := range cases {
		got, err := scip.ResolveQuery(c.query)
		if err != nil {
			t.Fatalf("ResolveQuery(%q) error: %v", c.query, err)
		}
		if got != c.want {
			t.Fatalf("ResolveQuery(%q) = %q, want %q", c.query, got, c.want)
		}
	}
}

func Test_ResolveQuery_TypeNameAnchored(t *testing.T) {
	suffix, err := scip.ResolveQuery("Main.greet")
	if err != nil {
		t.Fatalf("ResolveQuery error: %v", err)
	}
	// the leading separator keeps a bare type query from matching nested
	// classes or longer type names sharing the tail
	for _, symbol := range []string{
		"semanticdb maven . . demo/Outer#Main#greet().",
		"semanticdb maven . . demo/MyMain#greet().",
	} {
		if strings.HasSuffix(symbol, suffix) {
			t.Fatalf("suffix %q must not match %q", suffix, symbol)
		}
	}
	if !strings.HasSuffix("semanticdb maven . . demo/Main#greet().", suffix) {
		t.Fatalf("suffix %q should match a package-qualified symbol", suffix)
	}
}

func Test_ResolveQuery_TooShort(t *testing.T) {
	for _, q := range []string{"greet", ""} {
		_, err := scip.ResolveQuery(q)
		if !errors.Is(err, scip.ErrQueryTooShort) {
			t.Fatalf("ResolveQuery(%q) = %v, want ErrQueryTooShort", q, err)
		}
	}
}
