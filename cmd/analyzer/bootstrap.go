package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/azizdeniz890/multi-agent-finance/internal/engine"
	"github.com/azizdeniz890/multi-agent-finance/internal/engine/engineobs"
	"github.com/azizdeniz890/multi-agent-finance/internal/fundamentals"
	"github.com/azizdeniz890/multi-agent-finance/internal/interfaces"
	"github.com/azizdeniz890/multi-agent-finance/internal/llm/claude"
	"github.com/azizdeniz890/multi-agent-finance/internal/llm/llmobs"
	"github.com/azizdeniz890/multi-agent-finance/internal/llm/noop"
	"github.com/azizdeniz890/multi-agent-finance/internal/llm/openai"
	"github.com/azizdeniz890/multi-agent-finance/internal/logger"
	"github.com/azizdeniz890/multi-agent-finance/internal/marketdata"
	"github.com/azizdeniz890/multi-agent-finance/internal/news"
	"github.com/azizdeniz890/multi-agent-finance/internal/store"
	"github.com/azizdeniz890/multi-agent-finance/internal/trace"
)

// analyzerIface keeps main decoupled from the concrete engine.
type analyzerIface = interfaces.Analyzer

// initializeSystem loads the environment and brings up logging and tracing.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads the config file, falling back to defaults when the file
// does not exist.
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn(ctx, "Config file not found, using defaults", "path", path)
			return store.DefaultConfig(), nil
		}
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// buildAnalyzer wires the pipeline: market data source, news aggregator,
// generator, orchestration engine, observability wrappers.
func buildAnalyzer(ctx context.Context, cfg *store.Config) interfaces.Analyzer {
	var (
		prices interfaces.PriceFetcher
		funds  interfaces.FundamentalsSource
	)
	if cfg.DataSource == "STATIC" {
		logger.Info(ctx, "Using STATIC mock market data")
		static := marketdata.NewStaticFetcher()
		prices, funds = static, static
	} else {
		logger.Info(ctx, "Using LIVE market data from Yahoo Finance")
		yahoo := marketdata.NewYahooClient(30 * time.Second)
		prices, funds = yahoo, yahoo
	}

	finService := fundamentals.NewService(cfg, prices, funds)
	aggregator := news.NewAggregator(cfg)
	generator := initializeGenerator(ctx, cfg)

	return engineobs.Wrap(engine.New(cfg, finService, aggregator, generator))
}

// initializeGenerator picks the text-generation backend with observability.
func initializeGenerator(ctx context.Context, cfg *store.Config) interfaces.Generator {
	var gen interfaces.Generator

	switch cfg.LLM.Provider {
	case "OPENAI":
		gen = openai.NewGenerator(cfg)
	case "CLAUDE":
		gen = claude.NewGenerator(cfg)
	default:
		gen = noop.NewGenerator()
		logger.Warn(ctx, "No LLM provider configured - using Noop generator (always neutral)")
	}

	return llmobs.Wrap(gen)
}
