package noop

import (
	"context"
	"fmt"

	"github.com/azizdeniz890/multi-agent-finance/internal/logger"
	"github.com/azizdeniz890/multi-agent-finance/internal/persona"
)

// Generator is a fallback used when no LLM provider is configured. It returns
// a canned neutral opinion so the rest of the pipeline stays exercisable.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(ctx context.Context, p persona.Persona, _ string) (string, error) {
	logger.Debug(ctx, "Noop generator called", "persona", p.Key)
	return fmt.Sprintf("%s has no view without a configured analysis backend. Stance: neutral.", p.Name), nil
}
