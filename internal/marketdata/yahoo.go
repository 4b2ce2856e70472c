package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/azizdeniz890/multi-agent-finance/internal/trace"
	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

// YahooClient fetches price history and fundamentals from the Yahoo Finance
// public API. Both calls are best-effort: callers degrade to empty results on
// error.
type YahooClient struct {
	client  *http.Client
	baseURL string
}

// NewYahooClient creates a client against the public Yahoo endpoints.
func NewYahooClient(timeout time.Duration) *YahooClient {
	return &YahooClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: "https://query1.finance.yahoo.com",
	}
}

// NewYahooClientWithBaseURL is used by tests to point at a stub server.
func NewYahooClientWithBaseURL(baseURL string, timeout time.Duration) *YahooClient {
	return &YahooClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// yahooChart is the response structure of the v8 chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// DailyBars returns up to days daily OHLCV bars in chronological order.
// Null bars (holidays) are dropped.
func (c *YahooClient) DailyBars(ctx context.Context, symbol string, days int) ([]types.PriceBar, error) {
	ctx, span := trace.StartSpan(ctx, "yahoo-daily-bars")
	defer span.End()

	rng := "2y"
	switch {
	case days <= 30:
		rng = "1mo"
	case days <= 90:
		rng = "3mo"
	case days <= 180:
		rng = "6mo"
	case days <= 365:
		rng = "1y"
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		c.baseURL, url.PathEscape(symbol), rng)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo chart decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data for %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	bars := make([]types.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h, l, cl := deref(quote.Open[i]), deref(quote.High[i]), deref(quote.Low[i]), deref(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue
		}
		bars = append(bars, types.PriceBar{
			Ts:    ts,
			Open:  o,
			High:  h,
			Low:   l,
			Close: cl,
			Vol:   deref(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Ts < bars[j].Ts })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// yahooValue is Yahoo's {raw, fmt} number wrapper.
type yahooValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				MarketCap     yahooValue `json:"marketCap"`
				TrailingPE    yahooValue `json:"trailingPE"`
				ForwardPE     yahooValue `json:"forwardPE"`
				DividendYield yahooValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			FinancialData struct {
				TotalRevenue     yahooValue `json:"totalRevenue"`
				GrossProfits     yahooValue `json:"grossProfits"`
				GrossMargins     yahooValue `json:"grossMargins"`
				OperatingMargins yahooValue `json:"operatingMargins"`
				ProfitMargins    yahooValue `json:"profitMargins"`
				CurrentRatio     yahooValue `json:"currentRatio"`
				QuickRatio       yahooValue `json:"quickRatio"`
				TotalDebt        yahooValue `json:"totalDebt"`
				DebtToEquity     yahooValue `json:"debtToEquity"`
				TotalCash        yahooValue `json:"totalCash"`
				ReturnOnAssets   yahooValue `json:"returnOnAssets"`
				ReturnOnEquity   yahooValue `json:"returnOnEquity"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				EnterpriseValue   yahooValue `json:"enterpriseValue"`
				PegRatio          yahooValue `json:"pegRatio"`
				PriceToBook       yahooValue `json:"priceToBook"`
				SharesOutstanding yahooValue `json:"sharesOutstanding"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// metricKind selects the display formatting for a fundamental field.
type metricKind int

const (
	kindWhole metricKind = iota // large absolute amounts, whole numbers
	kindRatio                   // ratios, 2 decimals
	kindPct                     // fractions rendered as percentages
)

func fundamental(label string, v yahooValue, kind metricKind) types.Metric {
	if v.Raw == nil {
		return types.Missing(label)
	}
	switch kind {
	case kindWhole:
		return types.Int(label, *v.Raw)
	case kindPct:
		return types.Pct(label, *v.Raw)
	default:
		return types.Num(label, *v.Raw, 2)
	}
}

// Fundamentals returns point-in-time company fundamentals in a fixed order:
// valuation, profitability, liquidity and debt, returns, shares and
// dividends. Fields Yahoo has no data for come back nil-valued.
func (c *YahooClient) Fundamentals(ctx context.Context, symbol string) ([]types.Metric, error) {
	ctx, span := trace.StartSpan(ctx, "yahoo-fundamentals")
	defer span.End()

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryDetail,financialData,defaultKeyStatistics",
		c.baseURL, url.PathEscape(symbol))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var qs quoteSummary
	if err := json.Unmarshal(body, &qs); err != nil {
		return nil, fmt.Errorf("yahoo quoteSummary decode: %w", err)
	}
	if qs.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", qs.QuoteSummary.Error.Description)
	}
	if len(qs.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no fundamentals for %s", symbol)
	}

	r := qs.QuoteSummary.Result[0]
	return []types.Metric{
		// Valuation
		fundamental("Market Cap", r.SummaryDetail.MarketCap, kindWhole),
		fundamental("Enterprise Value", r.DefaultKeyStatistics.EnterpriseValue, kindWhole),
		fundamental("Trailing P/E", r.SummaryDetail.TrailingPE, kindRatio),
		fundamental("Forward P/E", r.SummaryDetail.ForwardPE, kindRatio),
		fundamental("PEG Ratio", r.DefaultKeyStatistics.PegRatio, kindRatio),
		fundamental("Price/Book", r.DefaultKeyStatistics.PriceToBook, kindRatio),
		// Profitability
		fundamental("Total Revenue", r.FinancialData.TotalRevenue, kindWhole),
		fundamental("Gross Profit", r.FinancialData.GrossProfits, kindWhole),
		fundamental("Gross Margin", r.FinancialData.GrossMargins, kindPct),
		fundamental("Operating Margin", r.FinancialData.OperatingMargins, kindPct),
		fundamental("Net Margin", r.FinancialData.ProfitMargins, kindPct),
		// Liquidity & Debt
		fundamental("Current Ratio", r.FinancialData.CurrentRatio, kindRatio),
		fundamental("Quick Ratio", r.FinancialData.QuickRatio, kindRatio),
		fundamental("Total Debt", r.FinancialData.TotalDebt, kindWhole),
		fundamental("Debt/Equity", r.FinancialData.DebtToEquity, kindRatio),
		fundamental("Cash & Equivalents", r.FinancialData.TotalCash, kindWhole),
		// Returns
		fundamental("Return on Assets", r.FinancialData.ReturnOnAssets, kindPct),
		fundamental("Return on Equity", r.FinancialData.ReturnOnEquity, kindPct),
		// Shares & Dividends
		fundamental("Shares Outstanding", r.DefaultKeyStatistics.SharesOutstanding, kindWhole),
		fundamental("Dividend Yield", r.SummaryDetail.DividendYield, kindPct),
	}, nil
}

func (c *YahooClient) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
