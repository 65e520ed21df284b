// Package insights derives backtest and risk read-outs from the loaded dataset.
package insights

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/domain"
	"github.com/aristath/workbench/internal/mockdata"
	"github.com/aristath/workbench/pkg/formatters"
	"github.com/aristath/workbench/pkg/formulas"
)

// ErrBacktestNotFound is returned for unknown backtest ids
var ErrBacktestNotFound = errors.New("backtest not found")

// VaRConfidence is the confidence level of the reported VaR and expected shortfall
const VaRConfidence = 0.95

// RiskReport is the insights risk panel
type RiskReport struct {
	domain.RiskIntelligence
	AsOf          time.Time            `json:"as_of"`
	Metrics       []domain.Metric      `json:"metrics"`
	EquityHistory []domain.EquityPoint `json:"equity_history"`
}

// BacktestSummary is a backtest without its equity curve, plus rendered metrics
type BacktestSummary struct {
	domain.BacktestResult
	BetaToPortfolio float64         `json:"beta_to_portfolio"`
	Metrics         []domain.Metric `json:"metrics"`
}

// Service holds the backtests and portfolio curve generated from a dataset
type Service struct {
	mu        sync.RWMutex
	risk      domain.RiskIntelligence
	curve     []domain.EquityPoint
	backtests []domain.BacktestResult
	now       func() time.Time
	log       zerolog.Logger
}

// NewService creates the insights service and generates its curves from ds
func NewService(ds *mockdata.Dataset, log zerolog.Logger) *Service {
	s := &Service{
		now: time.Now,
		log: log.With().Str("service", "insights").Logger(),
	}
	s.Load(ds)
	return s
}

// Load regenerates every curve from ds
func (s *Service) Load(ds *mockdata.Dataset) {
	now := s.now().UTC()
	curve := ds.PortfolioCurve(now)
	backtests := ds.BacktestResults()

	s.mu.Lock()
	s.risk = ds.Risk
	s.curve = curve
	s.backtests = backtests
	s.mu.Unlock()

	s.log.Debug().
		Int("backtests", len(backtests)).
		Int("history_days", len(curve)).
		Msg("Insights loaded")
}

// Backtests returns every backtest without its equity curve
func (s *Service) Backtests() []BacktestSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]BacktestSummary, 0, len(s.backtests))
	for _, b := range s.backtests {
		summary := s.summarize(b)
		summary.EquityCurve = nil
		out = append(out, summary)
	}
	return out
}

// Backtest returns one backtest including its equity curve
func (s *Service) Backtest(id string) (BacktestSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.backtests {
		if b.ID == id {
			return s.summarize(b), nil
		}
	}
	return BacktestSummary{}, fmt.Errorf("%w: %q", ErrBacktestNotFound, id)
}

// Risk returns the risk panel. VaR and expected shortfall are measured on the
// daily returns of the portfolio equity history; regime, beta and narrative come
// from the dataset.
func (s *Service) Risk() RiskReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	risk := s.risk
	risk.Drivers = append([]string{}, s.risk.Drivers...)

	returns := formulas.Returns(mockdata.Equities(s.curve))
	if len(returns) > 0 {
		risk.VaR95Pct = formulas.HistoricalVaR(returns, VaRConfidence) * 100
		risk.ExpectedShortfallPct = formulas.ExpectedShortfall(returns, VaRConfidence) * 100
	}

	report := RiskReport{
		RiskIntelligence: risk,
		AsOf:             s.now().UTC(),
		EquityHistory:    append([]domain.EquityPoint{}, s.curve...),
	}
	report.Metrics = renderMetrics([]domain.Metric{
		domain.NumberMetric("VaR (95%, 1d)", risk.VaR95Pct, domain.FormatPercent),
		domain.NumberMetric("Expected Shortfall", risk.ExpectedShortfallPct, domain.FormatPercent),
		domain.NumberMetric("Beta", risk.Beta, domain.FormatRatio),
		domain.NumberMetric("Regime Confidence", risk.RegimeConfidence*100, domain.FormatPercent),
		domain.NumberMetric("Annualized Volatility", formulas.AnnualizedVolatility(returns)*100, domain.FormatPercent),
		domain.TextMetric("Regime", string(risk.Regime)),
	})
	return report
}

func (s *Service) summarize(b domain.BacktestResult) BacktestSummary {
	return BacktestSummary{
		BacktestResult:  b,
		BetaToPortfolio: betaToPortfolio(b.EquityCurve, s.curve),
		Metrics:         BacktestMetrics(b),
	}
}

// betaToPortfolio measures a backtest's beta against the portfolio history over the
// days both curves cover, most recent days aligned
func betaToPortfolio(backtest, portfolio []domain.EquityPoint) float64 {
	asset := formulas.Returns(mockdata.Equities(backtest))
	bench := formulas.Returns(mockdata.Equities(portfolio))
	n := len(asset)
	if len(bench) < n {
		n = len(bench)
	}
	return formulas.Beta(asset[len(asset)-n:], bench[len(bench)-n:])
}

// BacktestMetrics renders the summary metrics of a backtest
func BacktestMetrics(b domain.BacktestResult) []domain.Metric {
	return renderMetrics([]domain.Metric{
		domain.NumberMetric("Final Equity", b.FinalEquity, domain.FormatCurrency),
		domain.NumberMetric("Total Return", b.TotalReturnPct, domain.FormatPercent),
		domain.NumberMetric("Volatility", b.VolatilityPct, domain.FormatPercent),
		domain.NumberMetric("Sharpe", b.SharpeRatio, domain.FormatRatio),
		domain.NumberMetric("Max Drawdown", b.MaxDrawdownPct, domain.FormatPercent),
		domain.NumberMetric("Win Rate", b.WinRatePct, domain.FormatPercent),
		domain.NumberMetric("Trades", float64(b.Trades), domain.FormatNumber),
	})
}

func renderMetrics(metrics []domain.Metric) []domain.Metric {
	for i := range metrics {
		metrics[i].Formatted = formatters.Metric(metrics[i].Value, metrics[i].Format)
	}
	return metrics
}
