package extractorfx

import (
	"github.com/fathom-search/fathom/internal/extractor"
	"github.com/fathom-search/fathom/internal/extractor/javaparser"
	"go.uber.org/fx"
)

// NewExtractor creates the Java source extractor
func NewExtractor() extractor.Extractor {
	return javaparser.New()
}

// Module provides source extraction components
var Module = fx.Module("extractor",
	fx.Provide(NewExtractor),
)
