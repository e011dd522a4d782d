package preprocess

import (
	"strings"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
)

// Pipeline applies its stages left to right.
type Pipeline struct {
	stages []ports.Preprocessor
}

// Chain composes preprocessors. Nil stages are skipped; an empty chain behaves like NoOp.
func Chain(stages ...ports.Preprocessor) *Pipeline {
	kept := make([]ports.Preprocessor, 0, len(stages))
	for _, s := range stages {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Pipeline{stages: kept}
}

// Preprocess runs every stage in order.
func (p *Pipeline) Preprocess(text string) string {
	for _, s := range p.stages {
		text = s.Preprocess(text)
	}
	return text
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

func (p *Pipeline) String() string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = Describe(s)
	}
	return strings.Join(names, "+")
}
