package appfx

import (
	"github.com/fathom-search/fathom/cmd/cmdsfx"
	"github.com/fathom-search/fathom/internal/config/configfx"
	"github.com/fathom-search/fathom/internal/embeddings/embeddingsfx"
	"github.com/fathom-search/fathom/internal/extractor/extractorfx"
	"github.com/fathom-search/fathom/internal/indexer/indexerfx"
	"github.com/fathom-search/fathom/internal/mcp/mcpfx"
	"github.com/fathom-search/fathom/internal/registry/registryfx"
	"github.com/fathom-search/fathom/internal/search/searchfx"
	"github.com/fathom-search/fathom/internal/storage/storagefx"
	"go.uber.org/fx"
)

// Module combines all application modules
var Module = fx.Options(
	configfx.Module,
	registryfx.Module,
	extractorfx.Module,
	embeddingsfx.Module,
	storagefx.Module,
	searchfx.Module,
	indexerfx.Module,
	mcpfx.Module,
	cmdsfx.Module,
)

// NewAppWithConfig creates an Fx app with the given configuration values
func NewAppWithConfig(registryDB, vectorDB, embedURL, embedModel, scipDir string) *fx.App {
	return fx.New(
		Module,
		SupplyConfig(registryDB, vectorDB, embedURL, embedModel, scipDir),
		fx.Invoke(func(lc fx.Lifecycle, mcpLifecycle *mcpfx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: mcpLifecycle.Start,
				OnStop:  mcpLifecycle.Stop,
			})
		}),
	)
}

// SupplyConfig turns raw configuration values into the named fx inputs the
// config module consumes.
func SupplyConfig(registryDB, vectorDB, embedURL, embedModel, scipDir string) fx.Option {
	return fx.Supply(
		fx.Annotate(registryDB, fx.ResultTags(`name:"registryDB"`)),
		fx.Annotate(vectorDB, fx.ResultTags(`name:"vectorDB"`)),
		fx.Annotate(embedURL, fx.ResultTags(`name:"embedURL"`)),
		fx.Annotate(embedModel, fx.ResultTags(`name:"embedModel"`)),
		fx.Annotate(scipDir, fx.ResultTags(`name:"scipDir"`)),
	)
}

// NewApp creates an Fx app with default configuration
func NewApp() *fx.App {
	return fx.New(Module)
}
