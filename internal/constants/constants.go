package constants

const (
	// DefaultEmbedURL is the embedding API endpoint used when none is configured.
	DefaultEmbedURL = "http://localhost:8000/embed"

	// DefaultRegistryDBName is the SQLite file holding the project registry.
	DefaultRegistryDBName = "fathom_registry.db"

	// DefaultVectorDBName is the SQLite file holding vector collections.
	DefaultVectorDBName = "fathom_vectors.db"

	// DefaultScipDir is the directory where structural index files are written,
	// one <project>.scip per project.
	DefaultScipDir = ".fathom_indexes/scip"

	// DefaultTopK is the result count for semantic search when unspecified.
	DefaultTopK = 5
)
