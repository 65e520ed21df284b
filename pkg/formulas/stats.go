// Package formulas holds the return and risk statistics behind backtest and risk panels.
// Returns are decimals (0.01 = 1%).
package formulas

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is used to annualize daily statistics
const TradingDaysPerYear = 252

// Mean calculates the arithmetic mean of data
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of data
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Returns converts prices to simple period returns.
// Returns[i] = (Price[i+1] - Price[i]) / Price[i]; zero prices yield a zero return.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
		}
	}
	return returns
}

// TotalReturn is the growth from the first to the last value
func TotalReturn(equity []float64) float64 {
	if len(equity) < 2 || equity[0] == 0 {
		return 0
	}
	return equity[len(equity)-1]/equity[0] - 1
}

// AnnualizedVolatility scales the standard deviation of daily returns by sqrt(252)
func AnnualizedVolatility(dailyReturns []float64) float64 {
	return StdDev(dailyReturns) * math.Sqrt(TradingDaysPerYear)
}

// SharpeRatio is the annualized mean excess return over its standard deviation.
// riskFree is the annual rate. Zero when volatility is zero.
func SharpeRatio(dailyReturns []float64, riskFree float64) float64 {
	if len(dailyReturns) < 2 {
		return 0
	}
	daily := riskFree / TradingDaysPerYear
	excess := make([]float64, len(dailyReturns))
	for i, r := range dailyReturns {
		excess[i] = r - daily
	}

	sd := StdDev(excess)
	if sd == 0 {
		return 0
	}
	return Mean(excess) / sd * math.Sqrt(TradingDaysPerYear)
}

// MaxDrawdown is the largest peak-to-trough decline of equity as a positive fraction
func MaxDrawdown(equity []float64) float64 {
	var peak, worst float64
	for i, v := range equity {
		if i == 0 || v > peak {
			peak = v
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - v) / peak; dd > worst {
			worst = dd
		}
	}
	return worst
}

// WinRate is the share of strictly positive returns
func WinRate(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	wins := 0
	for _, r := range returns {
		if r > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(returns))
}

// HistoricalVaR is the loss not exceeded with the given confidence (e.g. 0.95),
// read from the empirical return distribution and reported as a positive fraction
func HistoricalVaR(returns []float64, confidence float64) float64 {
	if len(returns) == 0 || confidence <= 0 || confidence >= 1 {
		return 0
	}
	sorted := sortedCopy(returns)
	q := stat.Quantile(tailFraction(confidence), stat.Empirical, sorted, nil)
	return math.Max(0, -q)
}

// ExpectedShortfall is the mean loss of the worst (1-confidence) tail of returns,
// reported as a positive fraction
func ExpectedShortfall(returns []float64, confidence float64) float64 {
	if len(returns) == 0 || confidence <= 0 || confidence >= 1 {
		return 0
	}
	sorted := sortedCopy(returns)

	tail := int(math.Ceil(float64(len(sorted)) * tailFraction(confidence)))
	if tail < 1 {
		tail = 1
	}
	if tail > len(sorted) {
		tail = len(sorted)
	}
	return math.Max(0, -Mean(sorted[:tail]))
}

// Beta of asset returns against benchmark returns
func Beta(asset, benchmark []float64) float64 {
	if len(asset) < 2 || len(asset) != len(benchmark) {
		return 0
	}
	v := stat.Variance(benchmark, nil)
	if v == 0 {
		return 0
	}
	return stat.Covariance(asset, benchmark, nil) / v
}

// 1-0.95 is 0.05000000000000004 in float64; trim it so the tail boundary
// lands on whole samples
func tailFraction(confidence float64) float64 {
	return math.Max(0, 1-confidence-1e-9)
}

func sortedCopy(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	sort.Float64s(out)
	return out
}
