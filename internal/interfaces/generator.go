package interfaces

import (
	"context"

	"github.com/azizdeniz890/multi-agent-finance/internal/persona"
)

// Generator dispatches an assembled prompt to a text-generation backend
// conditioned on a persona's system instruction and returns the single
// generated response.
type Generator interface {
	Generate(ctx context.Context, p persona.Persona, prompt string) (string, error)
}
