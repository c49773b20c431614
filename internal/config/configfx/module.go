package configfx

import (
	"github.com/fathom-search/fathom/internal/constants"
	"go.uber.org/fx"
)

// Config holds the application configuration. It is constructed once at
// process start and passed into each component's constructor; no component
// reads configuration from global state.
type Config struct {
	RegistryDB string // SQLite file for the project registry
	VectorDB   string // SQLite file for vector collections
	EmbedURL   string // embedding API endpoint
	EmbedModel string // embedding model identifier forwarded to the API
	ScipDir    string // directory holding <project>.scip index files
}

// Params represents the parameters needed to create configuration
type Params struct {
	fx.In

	RegistryDB string `name:"registryDB" optional:"true"`
	VectorDB   string `name:"vectorDB"   optional:"true"`
	EmbedURL   string `name:"embedURL"   optional:"true"`
	EmbedModel string `name:"embedModel" optional:"true"`
	ScipDir    string `name:"scipDir"    optional:"true"`
}

// NewConfig creates a new configuration with defaults
func NewConfig(params Params) *Config {
	config := &Config{
		RegistryDB: params.RegistryDB,
		VectorDB:   params.VectorDB,
		EmbedURL:   params.EmbedURL,
		EmbedModel: params.EmbedModel,
		ScipDir:    params.ScipDir,
	}

	if config.RegistryDB == "" {
		config.RegistryDB = constants.DefaultRegistryDBName
	}
	if config.VectorDB == "" {
		config.VectorDB = constants.DefaultVectorDBName
	}
	if config.EmbedURL == "" {
		config.EmbedURL = constants.DefaultEmbedURL
	}
	if config.ScipDir == "" {
		config.ScipDir = constants.DefaultScipDir
	}

	return config
}

// Module provides configuration for the application
var Module = fx.Module("config",
	fx.Provide(NewConfig),
)
