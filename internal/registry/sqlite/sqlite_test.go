package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/fathom-search/fathom/internal/registry"
	"github.com/fathom-search/fathom/internal/registry/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRegisterAndResolve(t *testing.T) {
	s := newStore(t)
	dir := t.TempDir()

	id, err := s.Register("proj", dir)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	path, err := s.Resolve("proj")
	require.NoError(t, err)
	// stored path is canonical
	want, err := registry.CanonicalPath(dir)
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestDuplicateNameLeavesOriginal(t *testing.T) {
	s := newStore(t)
	first := t.TempDir()
	second := t.TempDir()

	_, err := s.Register("proj", first)
	require.NoError(t, err)

	_, err = s.Register("proj", second)
	require.ErrorIs(t, err, registry.ErrDuplicateName)

	path, err := s.Resolve("proj")
	require.NoError(t, err)
	want, err := registry.CanonicalPath(first)
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestResolveUnknown(t *testing.T) {
	s := newStore(t)
	_, err := s.Resolve("nope")
	require.ErrorIs(t, err, registry.ErrProjectNotFound)
}

func TestRemove(t *testing.T) {
	s := newStore(t)
	_, err := s.Register("proj", t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Remove("proj"))
	_, err = s.Resolve("proj")
	require.ErrorIs(t, err, registry.ErrProjectNotFound)

	// removing an absent name is a no-op
	require.NoError(t, s.Remove("proj"))
}

func TestListOrderAndTouch(t *testing.T) {
	s := newStore(t)
	_, err := s.Register("zeta", t.TempDir())
	require.NoError(t, err)
	_, err = s.Register("alpha", t.TempDir())
	require.NoError(t, err)

	projects, err := s.List()
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "alpha", projects[0].Name)
	assert.Equal(t, "zeta", projects[1].Name)
	assert.Nil(t, projects[0].LastIndexedAt)

	require.NoError(t, s.Touch("alpha"))
	projects, err = s.List()
	require.NoError(t, err)
	assert.NotNil(t, projects[0].LastIndexedAt)
	assert.Nil(t, projects[1].LastIndexedAt)
}
