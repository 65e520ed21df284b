package market

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/mockdata"
	"github.com/aristath/workbench/pkg/formulas"
)

// BarsQuery selects bars and optional overlays. Zero periods disable an overlay.
type BarsQuery struct {
	Symbol    string
	Timeframe string
	Limit     int
	SMA       int
	EMA       int
	RSI       int
	Bollinger int
}

// BarsResult is a bar series with overlay series aligned to it.
// Overlay entries inside an indicator's warm-up window are nil.
type BarsResult struct {
	Symbol    string                `json:"symbol"`
	Timeframe string                `json:"timeframe"`
	Bars      []Bar                 `json:"bars"`
	Overlays  map[string][]*float64 `json:"overlays,omitempty"`
}

// Service answers market-data queries
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a market service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "market").Logger(),
	}
}

// Normalize fills defaults and validates q
func (q BarsQuery) Normalize() (BarsQuery, error) {
	symbol, err := NormalizeSymbol(q.Symbol)
	if err != nil {
		return q, err
	}
	q.Symbol = symbol

	if q.Timeframe == "" {
		q.Timeframe = DailyTimeframe
	}
	if !ValidTimeframe(q.Timeframe) {
		return q, fmt.Errorf("%w: unsupported timeframe %q", ErrInvalidQuery, q.Timeframe)
	}

	switch {
	case q.Limit == 0:
		q.Limit = DefaultLimit
	case q.Limit < 0:
		return q, fmt.Errorf("%w: limit must be positive", ErrInvalidQuery)
	case q.Limit > MaxLimit:
		q.Limit = MaxLimit
	}

	for name, period := range map[string]int{"sma": q.SMA, "ema": q.EMA, "rsi": q.RSI, "bb": q.Bollinger} {
		if period != 0 && (period < 2 || period > 500) {
			return q, fmt.Errorf("%w: %s period must be between 2 and 500", ErrInvalidQuery, name)
		}
	}
	return q, nil
}

// Bars loads bars and computes the requested overlays
func (s *Service) Bars(ctx context.Context, q BarsQuery) (BarsResult, error) {
	q, err := q.Normalize()
	if err != nil {
		return BarsResult{Symbol: q.Symbol, Timeframe: q.Timeframe, Bars: []Bar{}}, err
	}

	result := BarsResult{Symbol: q.Symbol, Timeframe: q.Timeframe, Bars: []Bar{}}
	bars, err := s.repo.GetBars(ctx, q.Symbol, q.Timeframe, q.Limit)
	if err != nil {
		return result, err
	}
	result.Bars = bars
	result.Overlays = Overlays(bars, q)
	return result, nil
}

// Snapshot returns the last and previous daily close of symbol
func (s *Service) Snapshot(ctx context.Context, symbol string) (Snapshot, error) {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return Snapshot{Symbol: symbol}, err
	}
	snap, err := s.repo.GetSnapshot(ctx, normalized)
	if err != nil {
		return Snapshot{Symbol: normalized}, err
	}
	return snap, nil
}

// Overlays computes the indicator series requested by q over the bar closes.
// Indicators without enough bars are left out.
func Overlays(bars []Bar, q BarsQuery) map[string][]*float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	out := make(map[string][]*float64)
	add := func(name string, series []float64) {
		if series != nil {
			out[name] = nullable(series)
		}
	}

	if q.SMA > 0 {
		add(fmt.Sprintf("sma_%d", q.SMA), formulas.SMA(closes, q.SMA))
	}
	if q.EMA > 0 {
		add(fmt.Sprintf("ema_%d", q.EMA), formulas.EMA(closes, q.EMA))
	}
	if q.RSI > 0 {
		add(fmt.Sprintf("rsi_%d", q.RSI), formulas.RSI(closes, q.RSI))
	}
	if q.Bollinger > 0 {
		if bands := formulas.BollingerBands(closes, q.Bollinger, 2); bands != nil {
			add(fmt.Sprintf("bb_%d_upper", q.Bollinger), bands.Upper)
			add(fmt.Sprintf("bb_%d_middle", q.Bollinger), bands.Middle)
			add(fmt.Sprintf("bb_%d_lower", q.Bollinger), bands.Lower)
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// nullable turns NaN entries into nil so they encode as JSON null
func nullable(series []float64) []*float64 {
	out := make([]*float64, len(series))
	for i := range series {
		if !math.IsNaN(series[i]) {
			v := series[i]
			out[i] = &v
		}
	}
	return out
}

// GenerateBars builds deterministic daily bars around a random-walk close series.
// Weekends are skipped.
func GenerateBars(seed int64, days int, start time.Time, firstClose, drift, vol float64) []Bar {
	if days <= 0 {
		return []Bar{}
	}

	curve := mockdata.GenerateEquityCurve(seed, days, start, firstClose, drift, vol)
	bars := make([]Bar, 0, days)
	day := start.Truncate(24 * time.Hour)
	prevClose := firstClose

	for i, p := range curve {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}

		open := prevClose
		closePrice := p.Equity
		// intraday range scales with the move and the volatility, always covering open and close
		span := math.Abs(closePrice-open) + open*vol*0.5
		wobble := 0.3 + 0.4*math.Abs(math.Sin(float64(seed)+float64(i)))
		high := math.Max(open, closePrice) + span*wobble
		low := math.Min(open, closePrice) - span*(1-wobble)

		bars = append(bars, Bar{
			Time:   day,
			Open:   round(open),
			High:   round(high),
			Low:    round(math.Max(low, 0)),
			Close:  round(closePrice),
			Volume: math.Round(1e6 * (1 + 0.5*math.Abs(math.Cos(float64(seed)*0.7+float64(i))))),
		})

		prevClose = closePrice
		day = day.AddDate(0, 0, 1)
	}
	return bars
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
