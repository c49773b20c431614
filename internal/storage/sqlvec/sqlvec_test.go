package sqlvec_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/fathom-search/fathom/internal/models"
	"github.com/fathom-search/fathom/internal/storage"
	"github.com/fathom-search/fathom/internal/storage/sqlvec"
)

func newStore(t *testing.T) *sqlvec.Store {
	t.Helper()
	s, err := sqlvec.New(filepath.Join(t.TempDir(), "vectors.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func snippet(fingerprint, method string) models.Snippet {
	return models.Snippet{
		Fingerprint: fingerprint,
		File:        "/repo/Main.java",
		ClassName:   "Main",
		MethodName:  method,
		StartLine:   1,
		EndLine:     3,
		Body:        "{ return; }",
	}
}

func Test_SqlVec_UpsertAndQuery(t *testing.T) {
	s := newStore(t)
	coll, err := s.GetOrCreateCollection("proj")
	if err != nil {
		t.Fatalf("get collection: %v", err)
	}

	snippets := []models.Snippet{snippet("fp1", "greet"), snippet("fp2", "count")}
	embeddings := [][]float32{{1, 0, 0, 0}, {0, 1, 0, 0}}
	if err := coll.Upsert(snippets, embeddings); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	hits, err := s.Query("proj", []float32{1, 0, 0, 0}, 2)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	// nearest first
	if hits[0].Snippet.MethodName != "greet" {
		t.Fatalf("expected greet first, got %s", hits[0].Snippet.MethodName)
	}
	if hits[0].Distance > hits[1].Distance {
		t.Fatalf("hits not ordered by distance")
	}
}

func Test_SqlVec_UpsertOverwritesFingerprint(t *testing.T) {
	s := newStore(t)
	coll, err := s.GetOrCreateCollection("proj")
	if err != nil {
		t.Fatalf("get collection: %v", err)
	}

	sn := snippet("fp1", "greet")
	if err := coll.Upsert([]models.Snippet{sn}, [][]float32{{1, 0, 0, 0}}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	sn.Body = "{ return 42; }"
	if err := coll.Upsert([]models.Snippet{sn}, [][]float32{{0, 1, 0, 0}}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	hits, err := s.Query("proj", []float32{0, 1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit after overwrite, got %d", len(hits))
	}
	if hits[0].Snippet.Body != "{ return 42; }" {
		t.Fatalf("body not overwritten: %q", hits[0].Snippet.Body)
	}
}

func Test_SqlVec_QueryUnindexedProject(t *testing.T) {
	s := newStore(t)
	_, err := s.Query("never-indexed", []float32{1, 0, 0, 0}, 5)
	if !errors.Is(err, storage.ErrCollectionNotFound) {
		t.Fatalf("expected ErrCollectionNotFound, got %v", err)
	}
}

func Test_SqlVec_DropClearsCollection(t *testing.T) {
	s := newStore(t)
	coll, err := s.GetOrCreateCollection("proj")
	if err != nil {
		t.Fatalf("get collection: %v", err)
	}
	if err := coll.Upsert(
		[]models.Snippet{snippet("fp1", "greet")},
		[][]float32{{1, 0, 0, 0}},
	); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := coll.Drop(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	_, err = s.Query("proj", []float32{1, 0, 0, 0}, 5)
	if !errors.Is(err, storage.ErrCollectionNotFound) {
		t.Fatalf("expected ErrCollectionNotFound after drop, got %v", err)
	}
}

func Test_SqlVec_CollectionsAreIsolated(t *testing.T) {
	s := newStore(t)
	a, err := s.GetOrCreateCollection("proj-a")
	if err != nil {
		t.Fatalf("get collection: %v", err)
	}
	if err := a.Upsert(
		[]models.Snippet{snippet("fp1", "greet")},
		[][]float32{{1, 0, 0, 0}},
	); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := s.GetOrCreateCollection("proj-b"); err != nil {
		t.Fatalf("get collection: %v", err)
	}

	// proj-b was created but never upserted, so it has no vector table
	_, err = s.Query("proj-b", []float32{1, 0, 0, 0}, 5)
	if !errors.Is(err, storage.ErrCollectionNotFound) {
		t.Fatalf("expected ErrCollectionNotFound for proj-b, got %v", err)
	}
}
