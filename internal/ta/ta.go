package ta

import "math"

func SMA(vals []float64, n int) float64 {
	if len(vals) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(vals) - n; i < len(vals); i++ {
		sum += vals[i]
	}
	return sum / float64(n)
}

// EWMA computes the exponentially weighted mean of vals with smoothing
// alpha = 2/(span+1), evaluated at the last element. Weights are normalized
// over the full history (adjusted form), so early values are not biased
// toward the seed.
func EWMA(vals []float64, span int) float64 {
	if len(vals) == 0 || span <= 0 {
		return math.NaN()
	}
	alpha := 2.0 / (float64(span) + 1.0)
	num, den := 0.0, 0.0
	for _, v := range vals {
		num = v + (1-alpha)*num
		den = 1 + (1-alpha)*den
	}
	return num / den
}

// RSI computes the relative strength index over closes using exponentially
// weighted average gains and losses with the given span. Returns 100 when the
// average loss is zero (pure uptrend) and NaN when there are fewer than two
// closes.
func RSI(closes []float64, span int) float64 {
	if len(closes) < 2 || span <= 0 {
		return math.NaN()
	}
	gains := make([]float64, 0, len(closes)-1)
	losses := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d >= 0 {
			gains = append(gains, d)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -d)
		}
	}
	avgGain := EWMA(gains, span)
	avgLoss := EWMA(losses, span)
	if avgLoss == 0 {
		return 100.0
	}
	return 100.0 - 100.0/(1.0+avgGain/avgLoss)
}

// MACD is the difference between the fast and slow EWMA of closes at the
// last bar.
func MACD(closes []float64, fast, slow int) float64 {
	if len(closes) == 0 {
		return math.NaN()
	}
	return EWMA(closes, fast) - EWMA(closes, slow)
}

// Returns converts closes into day-over-day fractional changes.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out = append(out, (closes[i]-closes[i-1])/closes[i-1])
	}
	return out
}

// StdDev is the sample standard deviation (n-1 denominator) of the last n
// values.
func StdDev(vals []float64, n int) float64 {
	if len(vals) < n || n <= 1 {
		return math.NaN()
	}
	m := SMA(vals, n)
	s := 0.0
	for i := len(vals) - n; i < len(vals); i++ {
		d := vals[i] - m
		s += d * d
	}
	return math.Sqrt(s / float64(n-1))
}
