package search

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fathom-search/fathom/internal/embeddings"
	"github.com/fathom-search/fathom/internal/grep"
	"github.com/fathom-search/fathom/internal/models"
	"github.com/fathom-search/fathom/internal/registry"
	"github.com/fathom-search/fathom/internal/scip"
	"github.com/fathom-search/fathom/internal/storage"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for query routing. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// Service is the single search entry point. It resolves the project once,
// dispatches to the backend matching the requested modality and normalizes
// every backend's output into one response shape. Queries are read-only and
// safe to run concurrently.
type Service struct {
	Registry registry.Store
	Embedder embeddings.Embedder
	Vector   storage.VectorStore
	Grep     *grep.Client
	Scip     *scip.Engine
	ScipDir  string

	logger *slog.Logger
}

func NewService(
	reg registry.Store,
	emb embeddings.Embedder,
	vec storage.VectorStore,
	grepClient *grep.Client,
	scipEngine *scip.Engine,
	scipDir string,
	opts ...Option,
) *Service {
	s := &Service{
		Registry: reg,
		Embedder: emb,
		Vector:   vec,
		Grep:     grepClient,
		Scip:     scipEngine,
		ScipDir:  scipDir,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search routes one query. Unknown projects surface as
// registry.ErrProjectNotFound; every backend failure is converted to a
// *BackendError carrying the diagnostic.
func (s *Service) Search(
	ctx context.Context,
	projectName string,
	modality models.Modality,
	query string,
	topK int,
) (models.SearchResult, error) {
	result := models.SearchResult{Modality: modality, Message: "Success"}

	projectRoot, err := s.Registry.Resolve(projectName)
	if err != nil {
		return result, err
	}
	s.logger.Info("routing search",
		"project", projectName, "type", string(modality), "query", query)

	switch modality {
	case models.ModalitySemantic:
		return s.semantic(ctx, result, projectName, query, topK)
	case models.ModalityLiteral:
		return s.literal(ctx, result, projectRoot, query)
	case models.ModalityStructural:
		return s.structural(result, projectName, projectRoot, query)
	default:
		return result, ErrUnknownModality
	}
}

func (s *Service) semantic(
	ctx context.Context,
	result models.SearchResult,
	projectName, query string,
	topK int,
) (models.SearchResult, error) {
	qvec, err := s.Embedder.EmbedQuery(ctx, query)
	if err != nil {
		return result, s.backendErr(models.ModalitySemantic, err)
	}
	hits, err := s.Vector.Query(projectName, qvec, topK)
	if err != nil {
		if errors.Is(err, storage.ErrCollectionNotFound) {
			result.Message = "project has not been semantically indexed"
			return result, s.backendErr(models.ModalitySemantic, err)
		}
		return result, s.backendErr(models.ModalitySemantic, err)
	}
	for _, h := range hits {
		result.Semantic = append(result.Semantic, models.SemanticMatch{
			Document: h.Snippet.Body,
			File:     h.Snippet.File,
			Class:    h.Snippet.ClassName,
			Method:   h.Snippet.MethodName,
			Distance: h.Distance,
		})
	}
	return result, nil
}

func (s *Service) literal(
	ctx context.Context,
	result models.SearchResult,
	projectRoot, query string,
) (models.SearchResult, error) {
	matches, err := s.Grep.Search(ctx, projectRoot, query)
	if err != nil {
		return result, s.backendErr(models.ModalityLiteral, err)
	}
	result.Literal = matches
	return result, nil
}

func (s *Service) structural(
	result models.SearchResult,
	projectName, projectRoot, query string,
) (models.SearchResult, error) {
	indexPath := scip.IndexPath(s.ScipDir, projectName)
	matches, err := s.Scip.Search(indexPath, projectRoot, query)
	if err != nil {
		if errors.Is(err, scip.ErrQueryTooShort) {
			// heuristic floor, not a backend fault: empty result, logged warning
			s.logger.Warn("structural query too short", "query", query)
			result.Message = "query too short: use at least Package.Type.method"
			return result, nil
		}
		return result, s.backendErr(models.ModalityStructural, err)
	}
	result.Structural = matches
	return result, nil
}

func (s *Service) backendErr(modality models.Modality, err error) *BackendError {
	s.logger.Error("backend failure", "type", string(modality), "error", err)
	return &BackendError{Modality: modality, Message: err.Error()}
}
