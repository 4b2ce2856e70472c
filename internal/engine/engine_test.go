package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/azizdeniz890/multi-agent-finance/internal/fundamentals"
	"github.com/azizdeniz890/multi-agent-finance/internal/marketdata"
	"github.com/azizdeniz890/multi-agent-finance/internal/persona"
	"github.com/azizdeniz890/multi-agent-finance/internal/store"
	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

type stubNews struct {
	items []types.NewsItem
	err   error
}

func (s *stubNews) RecentNews(_ context.Context, _ string, _ int) ([]types.NewsItem, error) {
	return s.items, s.err
}

// stubGenerator answers from a per-persona script; failUntil[key] makes the
// first N calls for that persona fail.
type stubGenerator struct {
	replies   map[string]string
	failUntil map[string]int
	calls     map[string]int
	prompts   []string
}

func (s *stubGenerator) Generate(_ context.Context, p persona.Persona, prompt string) (string, error) {
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[p.Key]++
	s.prompts = append(s.prompts, prompt)
	if s.calls[p.Key] <= s.failUntil[p.Key] {
		return "", fmt.Errorf("model unavailable for %s", p.Key)
	}
	return s.replies[p.Key], nil
}

func testConfig() *store.Config {
	cfg := store.DefaultConfig()
	cfg.LLM.MaxRetries = 1
	cfg.LLM.RetryBackoffMS = 1
	return cfg
}

func testEngine(cfg *store.Config, news *stubNews, gen *stubGenerator) *Engine {
	static := marketdata.NewStaticFetcher()
	fins := fundamentals.NewService(cfg, static, static)
	return New(cfg, fins, news, gen)
}

func TestAnalyzeAllPersonas(t *testing.T) {
	cfg := testConfig()
	gen := &stubGenerator{replies: map[string]string{
		"buffett": "A wonderful business. Stance: bullish.",
		"graham":  "No margin of safety here. I am bearish.",
		"lynch":   "I would hold steady and watch earnings.",
	}}
	news := &stubNews{items: []types.NewsItem{{Title: "Apple beats estimates", Summary: "Strong quarter", Source: "Reuters"}}}

	report, err := testEngine(cfg, news, gen).Analyze(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.Symbol != "AAPL" {
		t.Errorf("Symbol = %q", report.Symbol)
	}
	if len(report.Opinions) != 3 {
		t.Fatalf("opinion count = %d, want 3", len(report.Opinions))
	}

	wantPersonas := []string{"Warren Buffett", "Benjamin Graham", "Peter Lynch"}
	wantVerdicts := []types.Verdict{types.VerdictBullish, types.VerdictBearish, types.VerdictNeutral}
	for i, op := range report.Opinions {
		if op.Persona != wantPersonas[i] {
			t.Errorf("opinion[%d].Persona = %q, want %q", i, op.Persona, wantPersonas[i])
		}
		if op.Verdict != wantVerdicts[i] {
			t.Errorf("opinion[%d].Verdict = %q, want %q", i, op.Verdict, wantVerdicts[i])
		}
		if op.Err != "" {
			t.Errorf("opinion[%d] unexpectedly failed: %s", i, op.Err)
		}
	}

	for _, prompt := range gen.prompts {
		if !strings.Contains(prompt, "Apple beats estimates. Strong quarter") {
			t.Errorf("prompt missing news line:\n%s", prompt)
		}
		if !strings.Contains(prompt, "Financials:") {
			t.Errorf("prompt missing financials section:\n%s", prompt)
		}
	}
}

func TestAnalyzePartialFailure(t *testing.T) {
	cfg := testConfig()
	gen := &stubGenerator{
		replies: map[string]string{
			"buffett": "Stance: bullish.",
			"lynch":   "Stance: bearish.",
		},
		failUntil: map[string]int{"graham": 10},
	}

	report, err := testEngine(cfg, &stubNews{}, gen).Analyze(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.Opinions) != 3 {
		t.Fatalf("opinion count = %d, want 3", len(report.Opinions))
	}

	graham := report.Opinions[1]
	if graham.Persona != "Benjamin Graham" || graham.Err == "" {
		t.Errorf("expected failed opinion for Graham, got %+v", graham)
	}
	if report.Opinions[0].Verdict != types.VerdictBullish {
		t.Errorf("Buffett verdict = %q", report.Opinions[0].Verdict)
	}
	if report.Opinions[2].Verdict != types.VerdictBearish {
		t.Errorf("Lynch verdict = %q", report.Opinions[2].Verdict)
	}

	// MaxRetries=1 means two attempts before giving up.
	if gen.calls["graham"] != 2 {
		t.Errorf("graham attempts = %d, want 2", gen.calls["graham"])
	}
}

func TestAnalyzeRetrySucceeds(t *testing.T) {
	cfg := testConfig()
	gen := &stubGenerator{
		replies: map[string]string{
			"buffett": "Stance: bullish.",
			"graham":  "Stance: neutral.",
			"lynch":   "Stance: neutral.",
		},
		failUntil: map[string]int{"buffett": 1},
	}

	report, err := testEngine(cfg, &stubNews{}, gen).Analyze(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.Opinions[0].Err != "" {
		t.Errorf("retry should have recovered: %s", report.Opinions[0].Err)
	}
	if report.Opinions[0].Verdict != types.VerdictBullish {
		t.Errorf("verdict = %q after retry", report.Opinions[0].Verdict)
	}
	if gen.calls["buffett"] != 2 {
		t.Errorf("buffett attempts = %d, want 2", gen.calls["buffett"])
	}
}

func TestAnalyzeNewsFailureDegrades(t *testing.T) {
	cfg := testConfig()
	gen := &stubGenerator{replies: map[string]string{
		"buffett": "bullish", "graham": "bullish", "lynch": "bullish",
	}}
	news := &stubNews{err: errors.New("feed down")}

	report, err := testEngine(cfg, news, gen).Analyze(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.News) != 0 {
		t.Errorf("news = %d items, want 0 on feed failure", len(report.News))
	}
	if len(report.Opinions) != 3 {
		t.Errorf("opinion count = %d, personas should still run", len(report.Opinions))
	}
}

func TestAnalyzeCancelledContext(t *testing.T) {
	cfg := testConfig()
	gen := &stubGenerator{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := testEngine(cfg, &stubNews{}, gen).Analyze(ctx, "AAPL")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if report == nil {
		t.Fatal("partial report should still be returned")
	}
	if len(report.Opinions) != 0 {
		t.Errorf("opinion count = %d, want 0 after cancellation", len(report.Opinions))
	}
}
