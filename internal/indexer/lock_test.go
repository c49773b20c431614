package indexer_test

import (
	"testing"

	"github.com/fathom-search/fathom/internal/indexer"
)

func Test_ProjectLocks(t *testing.T) {
	locks := indexer.NewProjectLocks()

	if !locks.TryAcquire("proj") {
		t.Fatalf("first acquire should succeed")
	}
	if locks.TryAcquire("proj") {
		t.Fatalf("second acquire of the same project should fail")
	}
	// independent projects do not contend
	if !locks.TryAcquire("other") {
		t.Fatalf("acquire of a different project should succeed")
	}

	locks.Release("proj")
	if !locks.TryAcquire("proj") {
		t.Fatalf("acquire after release should succeed")
	}
}
