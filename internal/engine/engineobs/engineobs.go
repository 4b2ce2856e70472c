package engineobs

import (
	"context"

	"github.com/azizdeniz890/multi-agent-finance/internal/interfaces"
	"github.com/azizdeniz890/multi-agent-finance/internal/logger"
	"github.com/azizdeniz890/multi-agent-finance/internal/trace"
	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

// observableAnalyzer wraps an Analyzer with logging and tracing
type observableAnalyzer struct {
	analyzer interfaces.Analyzer
}

// Compile-time interface check
var _ interfaces.Analyzer = (*observableAnalyzer)(nil)

// Wrap wraps an analyzer with observability middleware
func Wrap(analyzer interfaces.Analyzer) interfaces.Analyzer {
	return &observableAnalyzer{analyzer: analyzer}
}

func (oa *observableAnalyzer) Analyze(ctx context.Context, symbol string) (*types.Report, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Analyze")
	defer span.End()

	report, err := oa.analyzer.Analyze(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Analysis aborted", err, "symbol", symbol)
		return report, err
	}

	failed := 0
	for _, o := range report.Opinions {
		if o.Err != "" {
			failed++
		}
	}
	logger.InfoSkip(ctx, 1, "Analysis completed",
		"symbol", symbol,
		"metrics", len(report.Financials.Metrics),
		"news", len(report.News),
		"opinions", len(report.Opinions),
		"failed_opinions", failed,
	)
	return report, nil
}
