package storage

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/fathom-search/fathom/internal/models"
)

// ErrCollectionNotFound is returned by Query when the project has never been
// indexed. Distinct from an indexed collection with no matches, which is an
// empty result.
var ErrCollectionNotFound = errors.New("storage: collection not found")

// Collection is a handle on one project's vector collection.
type Collection interface {
	// Upsert writes snippets keyed by fingerprint; an existing fingerprint's
	// entry is overwritten.
	Upsert(snippets []models.Snippet, embeddings [][]float32) error
	// Drop deletes the collection's contents so a rebuild starts clean.
	Drop() error
}

// VectorStore manages per-project embedding collections.
type VectorStore interface {
	GetOrCreateCollection(projectKey string) (Collection, error)
	// Query runs a KNN search against projectKey's collection, ascending by
	// distance.
	Query(projectKey string, embedding []float32, topK int) ([]models.SemanticHit, error)
}

// CollectionName maps a project key to a deterministic identifier safe for
// SQL table names. The digest tail keeps distinct keys distinct after
// sanitization.
func CollectionName(projectKey string) string {
	h := sha1.Sum([]byte(projectKey))
	return "c_" + sanitize(projectKey) + "_" + hex.EncodeToString(h[:4])
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	const maxLen = 40
	out := b.String()
	if len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}
