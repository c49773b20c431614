package commands

import (
	"context"
	"fmt"

	"github.com/fathom-search/fathom/cmd/cmdsfx"
	"github.com/fathom-search/fathom/internal/app/appfx"
	"github.com/fathom-search/fathom/internal/constants"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// storeFlags are the configuration flags shared by every command.
type storeFlags struct {
	registryDB string
	vectorDB   string
	embedURL   string
	embedModel string
	scipDir    string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.registryDB, "registry-db",
		constants.DefaultRegistryDBName, "SQLite path for the project registry")
	cmd.Flags().StringVar(&f.vectorDB, "vector-db",
		constants.DefaultVectorDBName, "SQLite path for vector collections")
	cmd.Flags().StringVar(&f.embedURL, "embed-url",
		constants.DefaultEmbedURL, "Embedding API URL")
	cmd.Flags().StringVar(&f.embedModel, "embed-model",
		"", "Embedding model identifier forwarded to the API")
	cmd.Flags().StringVar(&f.scipDir, "scip-dir",
		constants.DefaultScipDir, "Directory holding <project>.scip index files")
}

// runWithRunner builds the fx app from the flags, runs fn against the
// command runner, and tears the app down.
func runWithRunner(
	ctx context.Context,
	flags *storeFlags,
	fn func(context.Context, *cmdsfx.CommandRunner) error,
) error {
	var runErr error
	app := fx.New(
		appfx.Module,
		appfx.SupplyConfig(
			flags.registryDB,
			flags.vectorDB,
			flags.embedURL,
			flags.embedModel,
			flags.scipDir,
		),
		fx.NopLogger,
		fx.Invoke(func(runner *cmdsfx.CommandRunner) {
			runErr = fn(ctx, runner)
		}),
	)

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop application: %w", err)
	}
	return runErr
}
