package interfaces

import (
	"context"

	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

// Analyzer runs the full pipeline for one ticker: data aggregation, persona
// opinions, verdict classification.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*types.Report, error)
}
