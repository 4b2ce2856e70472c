package fundamentals

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/azizdeniz890/multi-agent-finance/internal/marketdata"
	"github.com/azizdeniz890/multi-agent-finance/internal/store"
	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

type stubPrices struct {
	bars []types.PriceBar
	err  error
}

func (s *stubPrices) DailyBars(_ context.Context, _ string, _ int) ([]types.PriceBar, error) {
	return s.bars, s.err
}

type stubFundamentals struct {
	metrics []types.Metric
	err     error
}

func (s *stubFundamentals) Fundamentals(_ context.Context, _ string) ([]types.Metric, error) {
	return s.metrics, s.err
}

func TestSnapshotMergeOrder(t *testing.T) {
	cfg := store.DefaultConfig()
	prices := &stubPrices{bars: marketdata.GenerateBars(100, 250)}
	funds := &stubFundamentals{metrics: []types.Metric{
		types.Num("Trailing P/E", 28.4, 2),
		types.Missing("PEG Ratio"),
	}}

	svc := NewService(cfg, prices, funds)
	snap := svc.Snapshot(context.Background(), "AAPL")

	if snap.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", snap.Symbol)
	}
	if len(snap.Metrics) != 2+8 {
		t.Fatalf("metric count = %d, want 10", len(snap.Metrics))
	}

	// Fundamentals come first, in source order, then the technicals.
	if snap.Metrics[0].Label != "Trailing P/E" || snap.Metrics[1].Label != "PEG Ratio" {
		t.Errorf("fundamental order wrong: %q, %q", snap.Metrics[0].Label, snap.Metrics[1].Label)
	}
	if snap.Metrics[2].Label != "Last Close" {
		t.Errorf("first technical = %q, want Last Close", snap.Metrics[2].Label)
	}

	if snap.Metrics[1].Value != nil || snap.Metrics[1].Text != "N/A" {
		t.Error("missing upstream field should stay nil-valued with N/A text")
	}
}

func TestSnapshotFundamentalsFailure(t *testing.T) {
	cfg := store.DefaultConfig()
	prices := &stubPrices{bars: marketdata.GenerateBars(100, 250)}
	funds := &stubFundamentals{err: errors.New("upstream down")}

	svc := NewService(cfg, prices, funds)
	snap := svc.Snapshot(context.Background(), "AAPL")

	// Fundamentals degrade to empty; technicals still present.
	if len(snap.Metrics) != 8 {
		t.Fatalf("metric count = %d, want 8 technicals", len(snap.Metrics))
	}
	if snap.Metrics[0].Label != "Last Close" {
		t.Errorf("first metric = %q, want Last Close", snap.Metrics[0].Label)
	}
}

func TestSnapshotPriceFailure(t *testing.T) {
	cfg := store.DefaultConfig()
	prices := &stubPrices{err: errors.New("no price data")}
	funds := &stubFundamentals{metrics: []types.Metric{types.Num("Market Cap", 1e12, 2)}}

	svc := NewService(cfg, prices, funds)
	snap := svc.Snapshot(context.Background(), "AAPL")

	if len(snap.Metrics) != 1 {
		t.Fatalf("metric count = %d, want 1 fundamental", len(snap.Metrics))
	}
	if snap.Metrics[0].Label != "Market Cap" {
		t.Errorf("metric = %q, want Market Cap", snap.Metrics[0].Label)
	}
}

func TestSnapshotEmptySeries(t *testing.T) {
	cfg := store.DefaultConfig()
	svc := NewService(cfg, &stubPrices{}, &stubFundamentals{err: errors.New("down")})

	snap := svc.Snapshot(context.Background(), "AAPL")
	if len(snap.Metrics) != 0 {
		t.Errorf("metric count = %d, want 0 when both sources fail", len(snap.Metrics))
	}
}

func TestSnapshotIdempotent(t *testing.T) {
	cfg := store.DefaultConfig()
	bars := marketdata.GenerateBars(100, 250)
	prices := &stubPrices{bars: bars}
	funds := &stubFundamentals{metrics: []types.Metric{types.Num("Trailing P/E", 28.4, 2)}}

	svc := NewService(cfg, prices, funds)
	first := svc.Snapshot(context.Background(), "AAPL")
	second := svc.Snapshot(context.Background(), "AAPL")

	if !reflect.DeepEqual(first, second) {
		t.Error("Snapshot is not idempotent for fixed inputs")
	}
}
