package scip

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fathom-search/fathom/internal/models"
	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"
)

// ErrIndexNotFound is returned when the project has no structural index file.
var ErrIndexNotFound = errors.New("scip: index file not found")

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for skipped malformed records.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// Engine answers definition queries against a project's SCIP index. The index
// is parsed once per Search call; callers needing repeated queries can cache
// the parsed index externally.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// IndexPath is the fixed naming convention locating a project's structural
// index under the configured output directory.
func IndexPath(scipDir, projectName string) string {
	return filepath.Join(scipDir, projectName+".scip")
}

// Search resolves dottedQuery into a descriptor suffix and scans every
// Definition-role occurrence in the index for symbols ending with it.
// Overloaded methods share a descriptor suffix; all their definitions are
// returned, unranked.
func (e *Engine) Search(
	indexPath, projectRoot, dottedQuery string,
) ([]models.StructuralMatch, error) {
	suffix, err := ResolveQuery(dottedQuery)
	if err != nil {
		return nil, err
	}

	index, err := e.load(indexPath)
	if err != nil {
		return nil, err
	}

	var results []models.StructuralMatch
	for _, doc := range index.Documents {
		for _, occ := range doc.Occurrences {
			if occ.SymbolRoles&int32(scippb.SymbolRole_Definition) == 0 {
				continue
			}
			if !strings.HasSuffix(occ.Symbol, suffix) {
				continue
			}
			span, ok := decodeRange(occ.Range)
			if !ok {
				e.logger.Warn("skipping occurrence with malformed range",
					"symbol", occ.Symbol, "len", len(occ.Range))
				continue
			}
			results = append(results, models.StructuralMatch{
				Symbol:    occ.Symbol,
				File:      filepath.Join(projectRoot, doc.RelativePath),
				StartLine: span.startLine + 1,
				StartChar: span.startChar + 1,
				EndLine:   span.endLine + 1,
				EndChar:   span.endChar + 1,
			})
		}
	}
	return results, nil
}

func (e *Engine) load(indexPath string) (*scippb.Index, error) {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, indexPath)
		}
		return nil, err
	}
	var index scippb.Index
	if err := proto.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("scip: parse index %s: %w", indexPath, err)
	}
	return &index, nil
}

type span struct {
	startLine, startChar, endLine, endChar int32
}

// decodeRange handles the two SCIP range encodings: [startLine, startChar,
// endLine, endChar] and the single-line shorthand [startLine, startChar,
// endChar]. Anything else is malformed.
func decodeRange(r []int32) (span, bool) {
	switch len(r) {
	case 4:
		return span{startLine: r[0], startChar: r[1], endLine: r[2], endChar: r[3]}, true
	case 3:
		return span{startLine: r[0], startChar: r[1], endLine: r[0], endChar: r[2]}, true
	default:
		return span{}, false
	}
}
