// Package domain provides the shared shapes of the workbench: portfolio snapshots,
// action cues, deployments, positions, backtests and risk intelligence.
package domain

import "time"

// PortfolioSnapshot is the aggregate account state
type PortfolioSnapshot struct {
	Equity            float64 `json:"equity" yaml:"equity"`
	Cash              float64 `json:"cash" yaml:"cash"`
	DayPnL            float64 `json:"day_pnl" yaml:"day_pnl"`
	DayPnLPct         float64 `json:"day_pnl_pct" yaml:"day_pnl_pct"`
	UnrealizedPnL     float64 `json:"unrealized_pnl" yaml:"unrealized_pnl"`
	ActiveDeployments int     `json:"active_deployments" yaml:"active_deployments"`
}

// SnapshotPatch carries the fields to overwrite on a PortfolioSnapshot.
// Nil fields are left untouched.
type SnapshotPatch struct {
	Equity            *float64 `json:"equity,omitempty"`
	Cash              *float64 `json:"cash,omitempty"`
	DayPnL            *float64 `json:"day_pnl,omitempty"`
	DayPnLPct         *float64 `json:"day_pnl_pct,omitempty"`
	UnrealizedPnL     *float64 `json:"unrealized_pnl,omitempty"`
	ActiveDeployments *int     `json:"active_deployments,omitempty"`
}

// Apply returns a copy of s with the patch applied
func (p SnapshotPatch) Apply(s PortfolioSnapshot) PortfolioSnapshot {
	if p.Equity != nil {
		s.Equity = *p.Equity
	}
	if p.Cash != nil {
		s.Cash = *p.Cash
	}
	if p.DayPnL != nil {
		s.DayPnL = *p.DayPnL
	}
	if p.DayPnLPct != nil {
		s.DayPnLPct = *p.DayPnLPct
	}
	if p.UnrealizedPnL != nil {
		s.UnrealizedPnL = *p.UnrealizedPnL
	}
	if p.ActiveDeployments != nil {
		s.ActiveDeployments = *p.ActiveDeployments
	}
	return s
}

// IsEmpty reports whether the patch changes nothing
func (p SnapshotPatch) IsEmpty() bool {
	return p.Equity == nil && p.Cash == nil && p.DayPnL == nil &&
		p.DayPnLPct == nil && p.UnrealizedPnL == nil && p.ActiveDeployments == nil
}

// ActionCue is a dismissible, severity-tagged alert
type ActionCue struct {
	ID                string   `json:"id" yaml:"id"`
	Severity          Severity `json:"severity" yaml:"severity"`
	Message           string   `json:"message" yaml:"message"`
	HistoricalContext *string  `json:"historical_context,omitempty" yaml:"historical_context,omitempty"`
	Occurrences       int      `json:"occurrences" yaml:"occurrences"`
	AvgRecoveryDays   float64  `json:"avg_recovery_days" yaml:"avg_recovery_days"`
	SuggestedAction   *string  `json:"suggested_action,omitempty" yaml:"suggested_action,omitempty"`
}

// Deployment is a trading bot instance with allocated capital
type Deployment struct {
	ID               string           `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	Strategy         string           `json:"strategy" yaml:"strategy"`
	Status           DeploymentStatus `json:"status" yaml:"status"`
	CapitalAllocated float64          `json:"capital_allocated" yaml:"capital_allocated"`
	TotalPnL         float64          `json:"total_pnl" yaml:"total_pnl"`
	TotalPnLPct      float64          `json:"total_pnl_pct" yaml:"total_pnl_pct"`
	DayPnL           float64          `json:"day_pnl" yaml:"day_pnl"`
	DayPnLPct        float64          `json:"day_pnl_pct" yaml:"day_pnl_pct"`
	Narrative        string           `json:"narrative" yaml:"narrative"`
	IsPaper          bool             `json:"is_paper" yaml:"is_paper"`
	DaysSinceStart   int              `json:"days_since_start" yaml:"days_since_start"`
}

// Position is an open trade owned by a deployment
type Position struct {
	ID            string        `json:"id" yaml:"id"`
	DeploymentID  string        `json:"deployment_id" yaml:"deployment_id"`
	Symbol        string        `json:"symbol" yaml:"symbol"`
	Side          Side          `json:"side" yaml:"side"`
	Quantity      float64       `json:"quantity" yaml:"quantity"`
	EntryPrice    float64       `json:"entry_price" yaml:"entry_price"`
	CurrentPrice  float64       `json:"current_price" yaml:"current_price"`
	UnrealizedPnL float64       `json:"unrealized_pnl" yaml:"unrealized_pnl"`
	BarsHeld      int           `json:"bars_held" yaml:"bars_held"`
	State         PositionState `json:"state" yaml:"state"`
}

// MarketValue returns the position value at the current price
func (p Position) MarketValue() float64 {
	return p.Quantity * p.CurrentPrice
}

// EquityPoint is one sample of an equity curve
type EquityPoint struct {
	Time   time.Time `json:"time"`
	Equity float64   `json:"equity"`
}

// BacktestResult summarizes a strategy backtest
type BacktestResult struct {
	ID             string        `json:"id"`
	Strategy       string        `json:"strategy"`
	Symbol         string        `json:"symbol"`
	Start          time.Time     `json:"start"`
	End            time.Time     `json:"end"`
	InitialCapital float64       `json:"initial_capital"`
	FinalEquity    float64       `json:"final_equity"`
	TotalReturnPct float64       `json:"total_return_pct"`
	VolatilityPct  float64       `json:"volatility_pct"`
	SharpeRatio    float64       `json:"sharpe_ratio"`
	MaxDrawdownPct float64       `json:"max_drawdown_pct"`
	WinRatePct     float64       `json:"win_rate_pct"`
	Trades         int           `json:"trades"`
	EquityCurve    []EquityPoint `json:"equity_curve,omitempty"`
}

// RiskIntelligence is the portfolio-level risk read-out
type RiskIntelligence struct {
	Regime               Regime   `json:"regime" yaml:"regime"`
	RegimeConfidence     float64  `json:"regime_confidence" yaml:"regime_confidence"`
	VaR95Pct             float64  `json:"var_95_pct" yaml:"var_95_pct"`
	ExpectedShortfallPct float64  `json:"expected_shortfall_pct" yaml:"expected_shortfall_pct"`
	Beta                 float64  `json:"beta" yaml:"beta"`
	Narrative            string   `json:"narrative" yaml:"narrative"`
	Drivers              []string `json:"drivers" yaml:"drivers"`
}

// Metric is a labelled value with a display format.
// Value holds a float64 or, for pre-rendered values, a string.
type Metric struct {
	Label     string       `json:"label"`
	Value     interface{}  `json:"value"`
	Format    MetricFormat `json:"format"`
	Formatted string       `json:"formatted,omitempty"`
}

// NumberMetric builds a numeric Metric
func NumberMetric(label string, value float64, format MetricFormat) Metric {
	return Metric{Label: label, Value: value, Format: format}
}

// TextMetric builds a Metric whose value is rendered verbatim
func TextMetric(label, value string) Metric {
	return Metric{Label: label, Value: value, Format: FormatNumber}
}
