package appfx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fathom-search/fathom/cmd/cmdsfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestAppModule(t *testing.T) {
	// Test that all modules can be loaded together
	tmpDir := t.TempDir()

	var runner *cmdsfx.CommandRunner

	app := fx.New(
		Module,
		SupplyConfig(
			filepath.Join(tmpDir, "registry.db"),
			filepath.Join(tmpDir, "vectors.db"),
			"http://localhost:8000/embed",
			"",
			filepath.Join(tmpDir, "scip"),
		),
		fx.Populate(&runner),
	)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	defer func() {
		require.NoError(t, app.Stop(ctx))
	}()

	assert.NotNil(t, runner)
}

func TestNewAppWithConfig(t *testing.T) {
	tmpDir := t.TempDir()

	app := NewAppWithConfig(
		filepath.Join(tmpDir, "registry.db"),
		filepath.Join(tmpDir, "vectors.db"),
		"http://localhost:8000/embed",
		"",
		filepath.Join(tmpDir, "scip"),
	)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	defer func() {
		require.NoError(t, app.Stop(ctx))
	}()
}
