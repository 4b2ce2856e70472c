// Package fundamentals merges company fundamentals with the technical
// indicator snapshot into one ordered metric list per ticker.
package fundamentals

import (
	"context"

	"github.com/azizdeniz890/multi-agent-finance/internal/interfaces"
	"github.com/azizdeniz890/multi-agent-finance/internal/logger"
	"github.com/azizdeniz890/multi-agent-finance/internal/store"
	"github.com/azizdeniz890/multi-agent-finance/internal/technical"
	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

type Service struct {
	prices interfaces.PriceFetcher
	source interfaces.FundamentalsSource
	tech   *technical.Engine
	cfg    *store.Config
}

func NewService(cfg *store.Config, prices interfaces.PriceFetcher, source interfaces.FundamentalsSource) *Service {
	return &Service{
		prices: prices,
		source: source,
		tech:   technical.New(cfg),
		cfg:    cfg,
	}
}

// Snapshot fetches fundamentals and technicals for symbol and merges them,
// fundamentals first, preserving each part's order. Upstream failures degrade
// to an empty section, logged at error level; the call itself never fails.
func (s *Service) Snapshot(ctx context.Context, symbol string) types.Snapshot {
	op := logger.StartOperation(ctx, "fundamentals-snapshot", "symbol", symbol)
	ctx = op.GetContext()

	metrics, err := s.source.Fundamentals(ctx, symbol)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch fundamentals", err, "symbol", symbol)
		metrics = nil
	}

	metrics = append(metrics, s.technicals(ctx, symbol)...)

	op.End("metrics", len(metrics))
	return types.Snapshot{Symbol: symbol, Metrics: metrics}
}

// technicals computes the indicator metrics from the configured lookback of
// daily bars. Any failure yields an empty list, not an error.
func (s *Service) technicals(ctx context.Context, symbol string) []types.Metric {
	op := logger.StartOperation(ctx, "technical-snapshot", "symbol", symbol)
	ctx = op.GetContext()

	bars, err := s.prices.DailyBars(ctx, symbol, s.cfg.LookbackDays)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch price history", err, "symbol", symbol)
		op.EndWithError(err)
		return nil
	}

	metrics, err := s.tech.Snapshot(bars)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to compute technicals", err, "symbol", symbol, "bars", len(bars))
		op.EndWithError(err)
		return nil
	}

	op.End("bars", len(bars))
	return metrics
}
