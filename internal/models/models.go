package models

import "time"

// Modality selects the search backend.
type Modality string

const (
	ModalitySemantic   Modality = "semantic"
	ModalityLiteral    Modality = "literal"
	ModalityStructural Modality = "structural"
)

// ParseModality maps a wire string to a Modality.
func ParseModality(s string) (Modality, bool) {
	switch Modality(s) {
	case ModalitySemantic, ModalityLiteral, ModalityStructural:
		return Modality(s), true
	}
	return "", false
}

// Project is a registered source tree. Name is the external identity; Path is
// stored canonical (absolute, symlinks resolved) so lookups compare byte-for-byte.
type Project struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Path          string     `json:"path"`
	LastIndexedAt *time.Time `json:"last_indexed_at"`
}

// Snippet is one method-like declaration extracted from a source file.
// Fingerprint is its stable identity for vector-store upserts; it is derived
// from location fields, not from the body.
type Snippet struct {
	Fingerprint string
	File        string
	ClassName   string
	MethodName  string
	Parameters  string
	ReturnType  string
	StartLine   int32
	EndLine     int32
	Body        string
}

// SemanticHit is one vector-store match, best (smallest distance) first.
type SemanticHit struct {
	Snippet  Snippet
	Distance float32
}

// SemanticMatch is the router-level shape of a semantic hit.
type SemanticMatch struct {
	Document string  `json:"document"`
	File     string  `json:"file_path"`
	Class    string  `json:"class_name,omitempty"`
	Method   string  `json:"method_name"`
	Distance float32 `json:"distance"`
}

// LiteralMatch is one ripgrep match line.
type LiteralMatch struct {
	File           string          `json:"file_path"`
	LineNumber     int             `json:"line_number"`
	Text           string          `json:"match_text"`
	AbsoluteOffset int64           `json:"absolute_offset"`
	Submatches     []LiteralExtent `json:"submatches"`
}

// LiteralExtent is the byte extent of one submatch within a matched line.
type LiteralExtent struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"match"`
}

// StructuralMatch is one definition occurrence from the structural index.
// Positions are 1-based.
type StructuralMatch struct {
	Symbol    string `json:"symbol"`
	File      string `json:"file_path"`
	StartLine int32  `json:"start_line"`
	StartChar int32  `json:"start_character"`
	EndLine   int32  `json:"end_line"`
	EndChar   int32  `json:"end_character"`
}

// SearchResult is the normalized router response. Exactly one of the match
// slices is populated, selected by Modality.
type SearchResult struct {
	Modality   Modality          `json:"search_type"`
	Semantic   []SemanticMatch   `json:"semantic,omitempty"`
	Literal    []LiteralMatch    `json:"literal,omitempty"`
	Structural []StructuralMatch `json:"structural,omitempty"`
	Message    string            `json:"message"`
}

// Len reports the populated match count regardless of modality.
func (r SearchResult) Len() int {
	switch r.Modality {
	case ModalitySemantic:
		return len(r.Semantic)
	case ModalityLiteral:
		return len(r.Literal)
	case ModalityStructural:
		return len(r.Structural)
	}
	return 0
}
