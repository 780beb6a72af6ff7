package validator

import (
	"github.com/rs/zerolog/log"

	"slidetext/internal/domain"
)

// Engine runs every registered rule against an upload and concatenates the
// rejection reasons. Rules never short-circuit, so the caller sees all
// violations at once. An empty result means the upload is accepted.
type Engine struct {
	registry *Registry
}

// NewEngine creates an Engine over the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Validate returns every rejection reason for the upload.
func (e *Engine) Validate(upload *domain.Upload) []string {
	var reasons []string
	for _, rule := range e.registry.All() {
		violations := rule.Check(upload)
		if len(violations) > 0 {
			log.Debug().
				Str("rule", rule.Name()).
				Strs("reasons", violations).
				Msg("validator.Engine: rule rejected upload")
		}
		reasons = append(reasons, violations...)
	}
	return reasons
}
