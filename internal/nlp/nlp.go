// Package nlp implements the text analyzer: entity extraction, sentiment
// and emotion scoring, semantic analysis against the domain knowledge base,
// and text quality metrics. Everything here is lexical pattern matching;
// malformed or empty input yields neutral results, never an error.
package nlp

import (
	"github.com/veracity-tools/veracity/internal/knowledge"
)

// Analyzer runs the lexical analyses. Stateless apart from the knowledge
// base, safe for concurrent use.
type Analyzer struct {
	base *knowledge.Base
}

func New(base *knowledge.Base) *Analyzer {
	return &Analyzer{base: base}
}
