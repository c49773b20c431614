package registry

import (
	"errors"
	"path/filepath"

	"github.com/fathom-search/fathom/internal/models"
)

var (
	// ErrDuplicateName is returned by Register when the name is already taken.
	// The existing entry is left untouched.
	ErrDuplicateName = errors.New("registry: project name already exists")

	// ErrProjectNotFound is returned by Resolve for unknown project names.
	ErrProjectNotFound = errors.New("registry: project not found")
)

// Store is the persistent project registry. Each operation is atomic for a
// single entry; no multi-entry transactions are needed.
type Store interface {
	// Register adds a project under a unique name, canonicalizing the path
	// before storing it. Returns ErrDuplicateName without mutation if the
	// name is taken.
	Register(name, path string) (int64, error)
	// Resolve returns the canonical path for a name, or ErrProjectNotFound.
	Resolve(name string) (string, error)
	// List returns all projects ordered by name.
	List() ([]models.Project, error)
	// Touch sets last_indexed_at to the current time.
	Touch(name string) error
	// Remove deletes a project. Removing an absent name is a no-op.
	Remove(name string) error
}

// CanonicalPath resolves a path to its canonical form: absolute, cleaned, and
// with symlinks resolved where possible, so repeated registrations of the
// same directory store identical bytes.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
