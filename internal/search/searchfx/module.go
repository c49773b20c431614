package searchfx

import (
	"github.com/fathom-search/fathom/internal/config/configfx"
	"github.com/fathom-search/fathom/internal/embeddings"
	"github.com/fathom-search/fathom/internal/grep"
	"github.com/fathom-search/fathom/internal/registry"
	"github.com/fathom-search/fathom/internal/scip"
	"github.com/fathom-search/fathom/internal/search"
	"github.com/fathom-search/fathom/internal/storage"
	"go.uber.org/fx"
)

// Params represents dependencies for search service
type Params struct {
	fx.In

	Config   *configfx.Config
	Registry registry.Store
	Embedder embeddings.Embedder
	VecStore storage.VectorStore
}

// NewSearchService creates a new search service instance
func NewSearchService(params Params) *search.Service {
	return search.NewService(
		params.Registry,
		params.Embedder,
		params.VecStore,
		grep.NewClient(),
		scip.NewEngine(),
		params.Config.ScipDir,
	)
}

// Module provides search components
var Module = fx.Module("search",
	fx.Provide(NewSearchService),
)
