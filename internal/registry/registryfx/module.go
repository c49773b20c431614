package registryfx

import (
	"fmt"

	"github.com/fathom-search/fathom/internal/config/configfx"
	"github.com/fathom-search/fathom/internal/registry"
	"github.com/fathom-search/fathom/internal/registry/sqlite"
	"go.uber.org/fx"
)

// Params represents dependencies for the registry store
type Params struct {
	fx.In

	Config *configfx.Config
}

// NewStore creates the SQLite-backed project registry
func NewStore(params Params) (registry.Store, error) {
	if params.Config.RegistryDB == "" {
		return nil, fmt.Errorf("registry database path must be specified")
	}
	return sqlite.New(params.Config.RegistryDB)
}

// Module provides the project registry
var Module = fx.Module("registry",
	fx.Provide(NewStore),
)
