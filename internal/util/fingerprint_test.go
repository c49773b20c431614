package util_test

import (
	"testing"

	"github.com/fathom-search/fathom/internal/util"
)

func Test_Fingerprint(t *testing.T) {
	a := util.Fingerprint("Main.java", "Main", "greet", 5)
	b := util.Fingerprint("Main.java", "Main", "greet", 5)
	if a != b {
		t.Fatalf("fingerprint not deterministic")
	}
	if len(a) != 64 {
		t.Fatalf("expected sha256 hex, got %d chars", len(a))
	}

	// any location field change produces a new identity
	variants := []string{
		util.Fingerprint("Other.java", "Main", "greet", 5),
		util.Fingerprint("Main.java", "Other", "greet", 5),
		util.Fingerprint("Main.java", "Main", "other", 5),
		util.Fingerprint("Main.java", "Main", "greet", 6),
	}
	for i, v := range variants {
		if v == a {
			t.Fatalf("variant %d collided with base fingerprint", i)
		}
	}
}
