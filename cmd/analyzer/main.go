package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/azizdeniz890/multi-agent-finance/internal/logger"
	"github.com/azizdeniz890/multi-agent-finance/internal/render"
	"github.com/azizdeniz890/multi-agent-finance/internal/trace"
)

var (
	cfgFile string
	format  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "analyzer [ticker...]",
		Short: "Multi-persona stock analysis",
		Long: `Analyzer fetches price history, fundamentals and recent news for a ticker,
then asks three persona agents (Warren Buffett, Benjamin Graham, Peter Lynch)
for an investment opinion and classifies each as bullish, bearish or neutral.

Examples:
  analyzer AAPL
  analyzer --format json TSLA MSFT
  analyzer            (interactive: enter tickers, 'q' to quit)`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, args []string) error {
	if err := initializeSystem(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer func() {
		if err := trace.Shutdown(context.Background()); err != nil {
			logger.Warn(context.Background(), "Tracer shutdown failed", "error", err)
		}
	}()

	cfg, err := loadConfig(ctx, cfgFile)
	if err != nil {
		return err
	}

	analyzer := buildAnalyzer(ctx, cfg)

	if len(args) > 0 {
		for _, arg := range args {
			if err := analyzeOne(ctx, analyzer, strings.ToUpper(arg)); err != nil {
				return err
			}
		}
		return nil
	}

	return interactiveLoop(ctx, analyzer)
}

func interactiveLoop(ctx context.Context, analyzer analyzerIface) error {
	fmt.Println("Buffett, Graham & Lynch Finance Agent")
	fmt.Println("Enter a stock ticker (e.g. TSLA, AAPL), or 'q' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Ticker: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		ticker := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if ticker == "" {
			continue
		}
		if ticker == "Q" {
			return nil
		}
		if err := analyzeOne(ctx, analyzer, ticker); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func analyzeOne(ctx context.Context, analyzer analyzerIface, ticker string) error {
	report, err := analyzer.Analyze(ctx, ticker)
	if err != nil {
		return err
	}

	if format == "json" {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	render.New(os.Stdout).Report(report)
	return nil
}
