package scip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrBuilderMissing is returned when the scip-java binary is not on PATH.
var ErrBuilderMissing = errors.New("scip: scip-java not found on PATH")

// BuildError reports a scip-java run that exited non-zero.
type BuildError struct {
	Code   int
	Stderr string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("scip: scip-java exited with code %d: %s", e.Code, strings.TrimSpace(e.Stderr))
}

// Builder produces a project's structural index by invoking the external
// scip-java indexer.
type Builder struct {
	executable string
	scipDir    string
}

func NewBuilder(scipDir string) *Builder {
	return &Builder{executable: "scip-java", scipDir: scipDir}
}

// Build runs scip-java inside projectRoot and writes the index to the fixed
// per-project location. Returns the path of the written index file.
func (b *Builder) Build(ctx context.Context, projectRoot, projectName string) (string, error) {
	outDir, err := filepath.Abs(b.scipDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	outFile := IndexPath(outDir, projectName)

	// scip-java resolves the build relative to its working directory
	cmd := exec.CommandContext(ctx, b.executable, "index", "--output", outFile)
	cmd.Dir = projectRoot
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return "", ErrBuilderMissing
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("scip: index build cancelled: %w", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &BuildError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return "", err
	}
	return outFile, nil
}
