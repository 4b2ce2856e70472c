// Package technical computes the point-in-time indicator snapshot from a
// daily price series.
package technical

import (
	"errors"
	"fmt"
	"math"

	"github.com/azizdeniz890/multi-agent-finance/internal/store"
	"github.com/azizdeniz890/multi-agent-finance/internal/ta"
	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

// ErrInsufficientHistory is returned when the series is too short for any
// indicator to be computed.
var ErrInsufficientHistory = errors.New("price series has fewer than 2 bars")

type Engine struct {
	cfg *store.Config
}

func New(cfg *store.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Snapshot computes the technical metric list from bars, in presentation
// order. Indicators whose window exceeds the available history come back
// nil-valued rather than failing the whole snapshot; a series shorter than
// two bars fails outright.
func (e *Engine) Snapshot(bars []types.PriceBar) ([]types.Metric, error) {
	if len(bars) < 2 {
		return nil, ErrInsufficientHistory
	}

	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Vol
	}

	ind := e.cfg.Indicators

	lastClose := closes[len(closes)-1]
	prevClose := closes[len(closes)-2]
	dailyChange := (lastClose - prevClose) / prevClose * 100

	rsi := ta.RSI(closes, ind.RSIPeriod)
	macd := ta.MACD(closes, ind.MACDFast, ind.MACDSlow)

	returns := ta.Returns(closes)
	vol := ta.StdDev(returns, ind.VolWindow) * math.Sqrt(252)

	avgVol := ta.SMA(volumes, ind.VolumeWindow)

	metrics := []types.Metric{
		types.Num("Last Close", lastClose, 2),
		types.Num("Daily Change %", dailyChange, 2),
		numOrMissing(fmt.Sprintf("RSI (%d)", ind.RSIPeriod), rsi, 2),
		numOrMissing(fmt.Sprintf("MACD (%d,%d)", ind.MACDFast, ind.MACDSlow), macd, 4),
	}
	for _, w := range ind.SMAWindows {
		metrics = append(metrics, numOrMissing(fmt.Sprintf("SMA (%d)", w), ta.SMA(closes, w), 2))
	}
	metrics = append(metrics,
		pctOrMissing(fmt.Sprintf("Volatility (%dd)", ind.VolWindow), vol),
		intOrMissing(fmt.Sprintf("Avg Volume (%dd)", ind.VolumeWindow), avgVol),
	)
	return metrics, nil
}

func numOrMissing(label string, v float64, decimals int) types.Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return types.Missing(label)
	}
	return types.Num(label, v, decimals)
}

func pctOrMissing(label string, v float64) types.Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return types.Missing(label)
	}
	return types.Pct(label, v)
}

func intOrMissing(label string, v float64) types.Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return types.Missing(label)
	}
	return types.Int(label, v)
}
