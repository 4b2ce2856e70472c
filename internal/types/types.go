package types

import "strconv"

// PriceBar is one daily OHLCV bar. Bars are chronological, one per trading day.
type PriceBar struct {
	Ts                          int64
	Open, High, Low, Close, Vol float64
}

// Metric is a single display-labeled value in a snapshot. Value is nil when
// the upstream source had no data for the field; Text is the display form
// ("N/A" when Value is nil).
type Metric struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
	Text  string   `json:"text"`
}

// Snapshot is an ordered list of metrics for one symbol. Order is the
// presentation order and must be preserved through merging.
type Snapshot struct {
	Symbol  string   `json:"symbol"`
	Metrics []Metric `json:"metrics"`
}

// Lookup returns the metric with the given label, if present.
func (s Snapshot) Lookup(label string) (Metric, bool) {
	for _, m := range s.Metrics {
		if m.Label == label {
			return m, true
		}
	}
	return Metric{}, false
}

// Num builds a metric from a value rounded for display with the given number
// of decimals. Trailing zeros are dropped ("250.5", not "250.50").
func Num(label string, v float64, decimals int) Metric {
	r := roundTo(v, decimals)
	return Metric{Label: label, Value: &r, Text: strconv.FormatFloat(r, 'f', -1, 64)}
}

// Pct builds a percent-formatted metric: 0.2341 renders as "23.41%".
func Pct(label string, v float64) Metric {
	r := roundTo(v*100, 2)
	return Metric{Label: label, Value: &v, Text: strconv.FormatFloat(r, 'f', 2, 64) + "%"}
}

// Int builds a metric displayed as a whole number.
func Int(label string, v float64) Metric {
	t := float64(int64(v))
	return Metric{Label: label, Value: &t, Text: strconv.FormatInt(int64(v), 10)}
}

// Missing builds a metric whose upstream field was absent.
func Missing(label string) Metric {
	return Metric{Label: label, Text: "N/A"}
}

func roundTo(v float64, decimals int) float64 {
	p := 1.0
	for i := 0; i < decimals; i++ {
		p *= 10
	}
	if v < 0 {
		return float64(int64(v*p-0.5)) / p
	}
	return float64(int64(v*p+0.5)) / p
}

// NewsItem is one filtered news entry, in feed order.
type NewsItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
	Source  string `json:"source"`
}

// Verdict classifies a persona opinion.
type Verdict string

const (
	VerdictBullish Verdict = "BULLISH"
	VerdictBearish Verdict = "BEARISH"
	VerdictNeutral Verdict = "NEUTRAL"
)

// Opinion is one persona's generated analysis. Err is set when generation
// failed after retries; Text and Verdict are then empty.
type Opinion struct {
	Persona string  `json:"persona"`
	Text    string  `json:"text,omitempty"`
	Verdict Verdict `json:"verdict,omitempty"`
	Err     string  `json:"error,omitempty"`
}

// Report is the full result of analyzing one ticker. Opinions preserve
// persona order.
type Report struct {
	Symbol     string     `json:"symbol"`
	Financials Snapshot   `json:"financials"`
	News       []NewsItem `json:"news"`
	Opinions   []Opinion  `json:"opinions"`
}
