package factory

import (
	"fmt"

	"github.com/fathom-search/fathom/internal/embeddings"
	"github.com/fathom-search/fathom/internal/extractor"
	"github.com/fathom-search/fathom/internal/extractor/javaparser"
	"github.com/fathom-search/fathom/internal/grep"
	"github.com/fathom-search/fathom/internal/indexer/pipeline"
	"github.com/fathom-search/fathom/internal/registry"
	regsqlite "github.com/fathom-search/fathom/internal/registry/sqlite"
	"github.com/fathom-search/fathom/internal/scip"
	"github.com/fathom-search/fathom/internal/search"
	"github.com/fathom-search/fathom/internal/storage"
	"github.com/fathom-search/fathom/internal/storage/sqlvec"
)

// ComponentConfig holds configuration for creating components
type ComponentConfig struct {
	RegistryDB string
	VectorDB   string
	EmbedURL   string
	EmbedModel string
	ScipDir    string
}

// Components holds all the main components
type Components struct {
	Registry  registry.Store
	Extractor extractor.Extractor
	Embedder  embeddings.Embedder
	VecStore  storage.VectorStore
	Searcher  *search.Service
}

// ComponentFactory creates and manages component instances
type ComponentFactory struct {
	config ComponentConfig
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(config ComponentConfig) *ComponentFactory {
	return &ComponentFactory{config: config}
}

// CreateComponents creates all components with the given configuration
func (f *ComponentFactory) CreateComponents() (*Components, error) {
	if f.config.RegistryDB == "" {
		return nil, fmt.Errorf("registry database path must be specified")
	}
	if f.config.VectorDB == "" {
		return nil, fmt.Errorf("vector database path must be specified")
	}

	reg, err := regsqlite.New(f.config.RegistryDB)
	if err != nil {
		return nil, fmt.Errorf("create registry failed: %w", err)
	}

	vecStore, err := sqlvec.New(f.config.VectorDB)
	if err != nil {
		return nil, fmt.Errorf("create vector store failed: %w", err)
	}

	embedder := embeddings.NewApi(f.config.EmbedURL, f.config.EmbedModel)
	searcher := search.NewService(
		reg,
		embedder,
		vecStore,
		grep.NewClient(),
		scip.NewEngine(),
		f.config.ScipDir,
	)

	return &Components{
		Registry:  reg,
		Extractor: javaparser.New(),
		Embedder:  embedder,
		VecStore:  vecStore,
		Searcher:  searcher,
	}, nil
}

// CreateIndexer creates an indexer instance with the given components
func (f *ComponentFactory) CreateIndexer(components *Components) *pipeline.Pipeline {
	return pipeline.New(
		components.Registry,
		components.Extractor,
		components.Embedder,
		components.VecStore,
		pipeline.Options{},
	)
}

// CreateScipBuilder creates the structural index builder
func (f *ComponentFactory) CreateScipBuilder() *scip.Builder {
	return scip.NewBuilder(f.config.ScipDir)
}

// Cleanup releases resources held by components
func (c *Components) Cleanup() error {
	if c.VecStore != nil {
		if closer, ok := c.VecStore.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				return fmt.Errorf("close vector store failed: %w", err)
			}
		}
	}
	if c.Registry != nil {
		if closer, ok := c.Registry.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				return fmt.Errorf("close registry failed: %w", err)
			}
		}
	}
	return nil
}
