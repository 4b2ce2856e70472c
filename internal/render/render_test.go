package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

func TestReport(t *testing.T) {
	color.NoColor = true

	rep := &types.Report{
		Symbol: "AAPL",
		Financials: types.Snapshot{
			Symbol: "AAPL",
			Metrics: []types.Metric{
				types.Num("Last Close", 250.5, 2),
				types.Missing("PEG Ratio"),
			},
		},
		News: []types.NewsItem{
			{Title: "Apple beats estimates", Source: "Reuters"},
		},
		Opinions: []types.Opinion{
			{Persona: "Warren Buffett", Text: "A wonderful business.", Verdict: types.VerdictBullish},
			{Persona: "Benjamin Graham", Err: "model unavailable"},
		},
	}

	var buf bytes.Buffer
	New(&buf).Report(rep)
	out := buf.String()

	for _, want := range []string{
		"Metrics for AAPL",
		"Last Close",
		"250.5",
		"PEG Ratio",
		"N/A",
		"Top News",
		"Reuters",
		"Apple beats estimates",
		"Warren Buffett Analysis",
		"[BULLISH]",
		"  A wonderful business.",
		"Benjamin Graham Analysis",
		"analysis failed: model unavailable",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, out)
		}
	}
}

func TestReportEmptySections(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	New(&buf).Report(&types.Report{Symbol: "AAPL"})
	out := buf.String()

	if !strings.Contains(out, "(no data)") {
		t.Errorf("missing empty-metrics placeholder:\n%s", out)
	}
	if !strings.Contains(out, "(no trusted articles found)") {
		t.Errorf("missing empty-news placeholder:\n%s", out)
	}
}

func TestReportTruncatesLongTitles(t *testing.T) {
	color.NoColor = true

	long := strings.Repeat("a", 90)
	var buf bytes.Buffer
	New(&buf).Report(&types.Report{
		Symbol: "AAPL",
		News:   []types.NewsItem{{Title: long, Source: "Reuters"}},
	})

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("title was not truncated")
	}
	if !strings.Contains(out, strings.Repeat("a", 20)) {
		t.Error("truncated title missing from output")
	}
}
