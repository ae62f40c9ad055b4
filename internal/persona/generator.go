package persona

import (
	"context"

	"github.com/qepting91/persona-lens/internal/domain"
)

// Generation settings: a tight token budget and low temperature keep the
// output focused and mostly deterministic.
const (
	maxTokens   = 4000
	temperature = 0.3
)

// Generator produces a personality profile from collected content.
type Generator struct {
	provider Provider
	model    domain.Model
}

// NewGenerator builds a Generator for the given model. Fails if the API
// key is absent, before any content is fetched.
func NewGenerator(apiKey string, model domain.Model) (*Generator, error) {
	provider, err := NewProvider(apiKey, model)
	if err != nil {
		return nil, err
	}
	return &Generator{provider: provider, model: model}, nil
}

// Model reports which model this generator calls.
func (g *Generator) Model() domain.Model { return g.model }

// Generate sends the collected content through the prompt template and
// returns the model's response verbatim. Single attempt, no retry:
// auth, quota, and rate-limit failures surface to the caller as-is.
func (g *Generator) Generate(ctx context.Context, content domain.UserContent) (string, error) {
	userPrompt := BuildUserPrompt(content)
	return g.provider.Complete(ctx, systemPrompt, userPrompt, maxTokens, temperature)
}
