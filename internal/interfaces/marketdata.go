package interfaces

import (
	"context"

	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

// PriceFetcher retrieves daily OHLCV history for a ticker.
type PriceFetcher interface {
	// DailyBars returns up to days daily bars in chronological order.
	DailyBars(ctx context.Context, symbol string, days int) ([]types.PriceBar, error)
}

// FundamentalsSource retrieves point-in-time company fundamentals as an
// ordered metric list. Fields missing upstream come back as nil-valued
// metrics, never errors.
type FundamentalsSource interface {
	Fundamentals(ctx context.Context, symbol string) ([]types.Metric, error)
}
