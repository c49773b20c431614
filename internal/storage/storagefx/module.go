package storagefx

import (
	"fmt"

	"github.com/fathom-search/fathom/internal/config/configfx"
	"github.com/fathom-search/fathom/internal/storage"
	"github.com/fathom-search/fathom/internal/storage/sqlvec"
	"go.uber.org/fx"
)

// Params represents dependencies for storage components
type Params struct {
	fx.In

	Config *configfx.Config
}

// NewVectorStore creates a new vector store instance
func NewVectorStore(params Params) (storage.VectorStore, error) {
	if params.Config.VectorDB == "" {
		return nil, fmt.Errorf("vector database path must be specified")
	}
	return sqlvec.New(params.Config.VectorDB)
}

// Module provides storage components
var Module = fx.Module("storage",
	fx.Provide(NewVectorStore),
)
