package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
)

// SMA returns the simple moving average series of values.
// The first period-1 entries are NaN. Returns nil when there is not enough data.
func SMA(values []float64, period int) []float64 {
	if period < 2 || len(values) < period {
		return nil
	}
	out := talib.Sma(values, period)
	markWarmup(out, period-1)
	return out
}

// EMA returns the exponential moving average series of values.
// The first period-1 entries are NaN. Returns nil when there is not enough data.
func EMA(values []float64, period int) []float64 {
	if period < 2 || len(values) < period {
		return nil
	}
	out := talib.Ema(values, period)
	markWarmup(out, period-1)
	return out
}

// RSI returns the relative strength index series (0 to 100).
// The first period entries are NaN. Returns nil when there is not enough data.
func RSI(values []float64, period int) []float64 {
	if period < 2 || len(values) <= period {
		return nil
	}
	out := talib.Rsi(values, period)
	markWarmup(out, period)
	return out
}

// Bands holds Bollinger band series aligned with the input
type Bands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// BollingerBands returns SMA-based bands k standard deviations wide.
// Returns nil when there is not enough data.
func BollingerBands(values []float64, period int, k float64) *Bands {
	if period < 2 || len(values) < period {
		return nil
	}
	upper, middle, lower := talib.BBands(values, period, k, k, talib.SMA)
	for _, series := range [][]float64{upper, middle, lower} {
		markWarmup(series, period-1)
	}
	return &Bands{Upper: upper, Middle: middle, Lower: lower}
}

// talib leaves the lookback window zeroed
func markWarmup(series []float64, lookback int) {
	for i := 0; i < lookback && i < len(series); i++ {
		series[i] = math.NaN()
	}
}

// Last returns the final non-NaN value of a series
func Last(series []float64) (float64, bool) {
	for i := len(series) - 1; i >= 0; i-- {
		if !math.IsNaN(series[i]) {
			return series[i], true
		}
	}
	return 0, false
}
