package indexerfx

import (
	"github.com/fathom-search/fathom/internal/embeddings"
	"github.com/fathom-search/fathom/internal/extractor"
	"github.com/fathom-search/fathom/internal/indexer"
	"github.com/fathom-search/fathom/internal/indexer/pipeline"
	"github.com/fathom-search/fathom/internal/registry"
	"github.com/fathom-search/fathom/internal/storage"
	"go.uber.org/fx"
)

// Params represents dependencies for indexer components
type Params struct {
	fx.In

	Registry  registry.Store
	Extractor extractor.Extractor
	Embedder  embeddings.Embedder
	VecStore  storage.VectorStore
}

// NewIndexer creates a new indexer instance
func NewIndexer(params Params) indexer.Indexer {
	return pipeline.New(
		params.Registry,
		params.Extractor,
		params.Embedder,
		params.VecStore,
		pipeline.Options{},
	)
}

// Module provides indexer components
var Module = fx.Module("indexer",
	fx.Provide(NewIndexer),
)
