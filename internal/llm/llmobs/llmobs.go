package llmobs

import (
	"context"

	"github.com/azizdeniz890/multi-agent-finance/internal/interfaces"
	"github.com/azizdeniz890/multi-agent-finance/internal/logger"
	"github.com/azizdeniz890/multi-agent-finance/internal/persona"
	"github.com/azizdeniz890/multi-agent-finance/internal/trace"
)

// observableGenerator wraps a Generator with logging and tracing
type observableGenerator struct {
	gen interfaces.Generator
}

// Compile-time interface check
var _ interfaces.Generator = (*observableGenerator)(nil)

// Wrap wraps a generator with observability middleware
func Wrap(gen interfaces.Generator) interfaces.Generator {
	return &observableGenerator{gen: gen}
}

func (og *observableGenerator) Generate(ctx context.Context, p persona.Persona, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting persona opinion",
		"persona", p.Key,
		"prompt_chars", len(prompt),
	)

	text, err := og.gen.Generate(ctx, p, prompt)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to generate persona opinion", err,
			"persona", p.Key,
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Persona opinion received",
		"persona", p.Key,
		"response_chars", len(text),
	)
	return text, nil
}
