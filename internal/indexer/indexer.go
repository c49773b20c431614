package indexer

import (
	"context"
	"errors"
)

var (
	// ErrNoSourceFiles is returned when a project contains no indexable
	// source files. The registry timestamp is left untouched.
	ErrNoSourceFiles = errors.New("indexer: no source files found")

	// ErrIndexInProgress is returned when another index run holds the
	// project's lock. Concurrent runs against the same collection would
	// interleave upserts non-deterministically.
	ErrIndexInProgress = errors.New("indexer: index already in progress for project")
)

// Report summarizes one index run.
type Report struct {
	SnippetsIndexed int `json:"snippets_indexed"`
	FilesProcessed  int `json:"files_processed"`
	FilesSkipped    int `json:"files_skipped"`
}

// Indexer refreshes a project's semantic index.
type Indexer interface {
	// RunIndex extracts, embeds and upserts every snippet in the project,
	// then touches the registry timestamp. With rebuild set, the project's
	// collection is dropped first so entries orphaned by moved or renamed
	// declarations are cleared.
	RunIndex(ctx context.Context, projectName string, rebuild bool) (Report, error)
}
