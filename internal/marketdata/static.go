package marketdata

import (
	"context"
	"time"

	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

// StaticFetcher returns deterministic data for offline runs and tests.
// Bars and Metrics, when set, are returned as-is; otherwise a gently
// trending series around Price is generated.
type StaticFetcher struct {
	Price   float64
	Bars    []types.PriceBar
	Metrics []types.Metric
}

func NewStaticFetcher() *StaticFetcher {
	return &StaticFetcher{Price: 100}
}

func (f *StaticFetcher) DailyBars(_ context.Context, _ string, days int) ([]types.PriceBar, error) {
	if f.Bars != nil {
		return f.Bars, nil
	}
	return GenerateBars(f.Price, days), nil
}

func (f *StaticFetcher) Fundamentals(_ context.Context, _ string) ([]types.Metric, error) {
	if f.Metrics != nil {
		return f.Metrics, nil
	}
	return []types.Metric{
		types.Int("Market Cap", 2.5e12),
		types.Num("Trailing P/E", 28.4, 2),
		types.Num("PEG Ratio", 2.1, 2),
		types.Pct("Gross Margin", 0.43),
		types.Num("Current Ratio", 1.1, 2),
		types.Num("Debt/Equity", 1.45, 2),
		types.Pct("Return on Equity", 0.27),
		types.Pct("Dividend Yield", 0.0055),
	}, nil
}

// GenerateBars builds count daily bars drifting upward around basePrice,
// one per calendar day ending today.
func GenerateBars(basePrice float64, count int) []types.PriceBar {
	bars := make([]types.PriceBar, count)
	now := time.Now()
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = types.PriceBar{
			Ts:    now.AddDate(0, 0, -(count - i)).Unix(),
			Open:  p * 0.999,
			High:  p * 1.005,
			Low:   p * 0.995,
			Close: p,
			Vol:   1000000,
		}
	}
	return bars
}
