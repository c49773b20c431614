package extractor

import (
	"context"

	"github.com/fathom-search/fathom/internal/models"
)

// Extractor turns source files into indexable snippets.
type Extractor interface {
	// ExtractFile parses one source file and returns its method snippets.
	ExtractFile(path string) ([]models.Snippet, error)
	// ListSourceFiles enumerates the source files under root that
	// ExtractFile understands.
	ListSourceFiles(ctx context.Context, root string) ([]string, error)
}
