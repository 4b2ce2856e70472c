// Package engine orchestrates one ticker analysis: aggregate fundamentals
// and news, then ask each persona in order and classify the answers.
package engine

import (
	"context"
	"time"

	"github.com/azizdeniz890/multi-agent-finance/internal/fundamentals"
	"github.com/azizdeniz890/multi-agent-finance/internal/interfaces"
	"github.com/azizdeniz890/multi-agent-finance/internal/logger"
	"github.com/azizdeniz890/multi-agent-finance/internal/persona"
	"github.com/azizdeniz890/multi-agent-finance/internal/store"
	"github.com/azizdeniz890/multi-agent-finance/internal/trace"
	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

type Engine struct {
	cfg      *store.Config
	fins     *fundamentals.Service
	news     interfaces.NewsFetcher
	gen      interfaces.Generator
	personas []persona.Persona
}

func New(cfg *store.Config, fins *fundamentals.Service, news interfaces.NewsFetcher, gen interfaces.Generator) *Engine {
	return &Engine{
		cfg:      cfg,
		fins:     fins,
		news:     news,
		gen:      gen,
		personas: persona.All(),
	}
}

// Analyze runs the pipeline for one ticker. Data fetch failures degrade to
// empty sections; a persona whose generation fails after retries yields a
// failed opinion entry while the others still report. Personas run
// sequentially in fixed order. The only hard failure is context
// cancellation.
func (e *Engine) Analyze(ctx context.Context, symbol string) (*types.Report, error) {
	ctx, span := trace.StartSpan(ctx, "analyze-ticker")
	defer span.End()

	logger.Info(ctx, "Starting analysis", "symbol", symbol)

	fin := e.fins.Snapshot(ctx, symbol)

	newsItems, err := e.news.RecentNews(ctx, symbol, e.cfg.News.MaxArticles)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch news", err, "symbol", symbol)
		newsItems = []types.NewsItem{}
	}

	report := &types.Report{
		Symbol:     symbol,
		Financials: fin,
		News:       newsItems,
	}

	for _, p := range e.personas {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		prompt := persona.BuildPrompt(p, fin, newsItems)
		text, err := e.generateWithRetry(ctx, p, prompt)
		if err != nil {
			logger.ErrorWithErr(ctx, "Persona analysis failed", err, "symbol", symbol, "persona", p.Key)
			report.Opinions = append(report.Opinions, types.Opinion{
				Persona: p.Name,
				Err:     err.Error(),
			})
			continue
		}

		verdict := persona.Classify(text)
		logger.VerdictEvent(ctx, symbol, p.Key, string(verdict))
		report.Opinions = append(report.Opinions, types.Opinion{
			Persona: p.Name,
			Text:    text,
			Verdict: verdict,
		})
	}

	return report, nil
}

// generateWithRetry calls the generator with bounded retry and doubling
// backoff. Context cancellation aborts immediately.
func (e *Engine) generateWithRetry(ctx context.Context, p persona.Persona, prompt string) (string, error) {
	op := logger.StartOperation(ctx, "persona-analysis", "persona", p.Key)
	ctx = op.GetContext()

	backoff := time.Duration(e.cfg.LLM.RetryBackoffMS) * time.Millisecond
	attempts := e.cfg.LLM.MaxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := e.gen.Generate(ctx, p, prompt)
		if err == nil {
			op.End("attempts", attempt)
			return text, nil
		}
		lastErr = err

		if attempt < attempts {
			logger.Warn(ctx, "Generation failed, retrying",
				"persona", p.Key, "attempt", attempt, "backoff", backoff.String(), "error", err)
			select {
			case <-time.After(backoff):
				backoff *= 2
			case <-ctx.Done():
				op.EndWithError(ctx.Err())
				return "", ctx.Err()
			}
		}
	}

	op.EndWithError(lastErr)
	return "", lastErr
}
