package models_test

import (
	"testing"

	"github.com/fathom-search/fathom/internal/models"
)

func Test_ParseModality(t *testing.T) {
	for _, s := range []string{"semantic", "literal", "structural"} {
		m, ok := models.ParseModality(s)
		if !ok || string(m) != s {
			t.Fatalf("ParseModality(%q) = %q, %v", s, m, ok)
		}
	}
	if _, ok := models.ParseModality("fuzzy"); ok {
		t.Fatalf("expected rejection of unknown modality")
	}
	if _, ok := models.ParseModality("Semantic"); ok {
		t.Fatalf("modalities are case-sensitive")
	}
}

func Test_SearchResult_Len(t *testing.T) {
	r := models.SearchResult{
		Modality: models.ModalityLiteral,
		Literal:  []models.LiteralMatch{{File: "a"}, {File: "b"}},
		Semantic: []models.SemanticMatch{{File: "ignored"}},
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}
