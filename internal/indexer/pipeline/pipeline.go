package pipeline

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/fathom-search/fathom/internal/embeddings"
	"github.com/fathom-search/fathom/internal/extractor"
	"github.com/fathom-search/fathom/internal/indexer"
	"github.com/fathom-search/fathom/internal/models"
	"github.com/fathom-search/fathom/internal/registry"
	"github.com/fathom-search/fathom/internal/storage"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	ParseWorkers int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for per-file skip reports.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// Pipeline composes extraction, embedding and the vector store into a batch
// job refreshing one project's semantic index.
type Pipeline struct {
	reg    registry.Store
	ext    extractor.Extractor
	emb    embeddings.Embedder
	vec    storage.VectorStore
	locks  *indexer.ProjectLocks
	opt    Options
	logger *slog.Logger
}

func New(
	reg registry.Store,
	ext extractor.Extractor,
	emb embeddings.Embedder,
	vec storage.VectorStore,
	opt Options,
	opts ...Option,
) *Pipeline {
	if opt.ParseWorkers <= 0 {
		opt.ParseWorkers = runtime.NumCPU()
	}
	p := &Pipeline{
		reg:    reg,
		ext:    ext,
		emb:    emb,
		vec:    vec,
		locks:  indexer.NewProjectLocks(),
		opt:    opt,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

type fileResult struct {
	file     string
	snippets []models.Snippet
	err      error
}

func (p *Pipeline) RunIndex(
	ctx context.Context,
	projectName string,
	rebuild bool,
) (indexer.Report, error) {
	var report indexer.Report

	if !p.locks.TryAcquire(projectName) {
		return report, indexer.ErrIndexInProgress
	}
	defer p.locks.Release(projectName)

	root, err := p.reg.Resolve(projectName)
	if err != nil {
		return report, err
	}

	files, err := p.ext.ListSourceFiles(ctx, root)
	if err != nil {
		return report, err
	}
	if len(files) == 0 {
		return report, indexer.ErrNoSourceFiles
	}

	coll, err := p.vec.GetOrCreateCollection(projectName)
	if err != nil {
		return report, err
	}
	if rebuild {
		if err := coll.Drop(); err != nil {
			return report, err
		}
	}

	// Stage 1: parse files concurrently. A single malformed file must not
	// block the rest of the project, so extraction errors travel with the
	// result instead of cancelling the group.
	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opt.ParseWorkers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snippets, err := p.ext.ExtractFile(f)
			results[i] = fileResult{file: f, snippets: snippets, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	// Stage 2: embed and upsert, all snippets of a file together.
	for _, r := range results {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if r.err != nil {
			p.logger.Warn("skipping file", "file", r.file, "error", r.err)
			report.FilesSkipped++
			continue
		}
		report.FilesProcessed++
		if len(r.snippets) == 0 {
			continue
		}
		texts := make([]string, len(r.snippets))
		for i, sn := range r.snippets {
			texts[i] = sn.Body
		}
		vecs, err := p.emb.EmbedTexts(ctx, texts)
		if err != nil {
			return report, err
		}
		if err := coll.Upsert(r.snippets, vecs); err != nil {
			return report, err
		}
		report.SnippetsIndexed += len(r.snippets)
	}

	// timestamp reflects "as of" time, set once after all files were attempted
	if err := p.reg.Touch(projectName); err != nil {
		return report, err
	}
	return report, nil
}

var _ indexer.Indexer = (*Pipeline)(nil)
