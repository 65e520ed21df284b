package mockdata

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aristath/workbench/internal/domain"
	"github.com/aristath/workbench/pkg/formulas"
)

// GenerateEquityCurve produces a deterministic daily equity curve: a geometric random
// walk whose daily returns are normal with mean drift and standard deviation vol.
// The same seed always yields the same curve.
func GenerateEquityCurve(seed int64, points int, start time.Time, initial, drift, vol float64) []domain.EquityPoint {
	if points <= 0 {
		return []domain.EquityPoint{}
	}

	returns := distuv.Normal{
		Mu:    drift,
		Sigma: math.Max(vol, 1e-12),
		Src:   rand.NewPCG(uint64(seed), 0x5eed),
	}

	curve := make([]domain.EquityPoint, points)
	equity := initial
	for i := 0; i < points; i++ {
		if i > 0 {
			// equity never goes negative
			equity *= math.Max(0, 1+returns.Rand())
		}
		curve[i] = domain.EquityPoint{
			Time:   start.AddDate(0, 0, i),
			Equity: math.Round(equity*100) / 100,
		}
	}
	return curve
}

// Equities extracts the equity values of a curve
func Equities(curve []domain.EquityPoint) []float64 {
	out := make([]float64, len(curve))
	for i, p := range curve {
		out[i] = p.Equity
	}
	return out
}

// BuildBacktest generates the curve for spec and derives its summary metrics.
// Percent fields are in percent units.
func BuildBacktest(spec BacktestSpec) domain.BacktestResult {
	curve := GenerateEquityCurve(spec.Seed, spec.Days, spec.Start, spec.InitialCapital, spec.Drift, spec.Volatility)
	equity := Equities(curve)
	returns := formulas.Returns(equity)

	result := domain.BacktestResult{
		ID:             spec.ID,
		Strategy:       spec.Strategy,
		Symbol:         spec.Symbol,
		Start:          spec.Start,
		InitialCapital: spec.InitialCapital,
		TotalReturnPct: formulas.TotalReturn(equity) * 100,
		VolatilityPct:  formulas.AnnualizedVolatility(returns) * 100,
		SharpeRatio:    formulas.SharpeRatio(returns, 0),
		MaxDrawdownPct: formulas.MaxDrawdown(equity) * 100,
		WinRatePct:     formulas.WinRate(returns) * 100,
		Trades:         countTrades(returns),
		EquityCurve:    curve,
	}
	if len(curve) > 0 {
		result.End = curve[len(curve)-1].Time
		result.FinalEquity = curve[len(curve)-1].Equity
	}
	return result
}

// countTrades treats every sign change of the daily return as a round trip
func countTrades(returns []float64) int {
	trades := 0
	prev := 0.0
	for _, r := range returns {
		if r == 0 {
			continue
		}
		if prev == 0 || (r > 0) != (prev > 0) {
			trades++
		}
		prev = r
	}
	return trades
}
