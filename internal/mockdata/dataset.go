// Package mockdata supplies the demo datasets that stand in for a real backend.
package mockdata

import (
	"errors"
	"fmt"
	"time"

	"github.com/aristath/workbench/internal/domain"
)

// ErrInvalidDataset is returned when a dataset fails validation
var ErrInvalidDataset = errors.New("invalid dataset")

// Dataset is everything the workbench is seeded with
type Dataset struct {
	Snapshot      domain.PortfolioSnapshot `yaml:"snapshot"`
	Cues          []domain.ActionCue       `yaml:"cues"`
	Deployments   []domain.Deployment      `yaml:"deployments"`
	Positions     []domain.Position        `yaml:"positions"`
	Risk          domain.RiskIntelligence  `yaml:"risk"`
	EquityHistory CurveSpec                `yaml:"equity_history"`
	Backtests     []BacktestSpec           `yaml:"backtests"`
}

// CurveSpec parameterizes a generated equity curve.
// Drift and Volatility are per-day return mean and standard deviation.
type CurveSpec struct {
	Seed       int64   `yaml:"seed"`
	Days       int     `yaml:"days"`
	Initial    float64 `yaml:"initial"`
	Drift      float64 `yaml:"drift"`
	Volatility float64 `yaml:"volatility"`
}

// BacktestSpec describes a backtest whose equity curve is generated
type BacktestSpec struct {
	ID             string    `yaml:"id"`
	Strategy       string    `yaml:"strategy"`
	Symbol         string    `yaml:"symbol"`
	Start          time.Time `yaml:"start"`
	Days           int       `yaml:"days"`
	InitialCapital float64   `yaml:"initial_capital"`
	Drift          float64   `yaml:"drift"`
	Volatility     float64   `yaml:"volatility"`
	Seed           int64     `yaml:"seed"`
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidDataset, fmt.Sprintf(format, args...))
}

// Validate checks enum membership, id uniqueness and position ownership.
// Cue ids may be empty here; the provider assigns them.
func (d *Dataset) Validate() error {
	cueIDs := make(map[string]bool, len(d.Cues))
	for i, c := range d.Cues {
		if _, err := domain.ParseSeverity(string(c.Severity)); err != nil {
			return fmt.Errorf("%w: cue %d: %w", ErrInvalidDataset, i, err)
		}
		if c.ID == "" {
			continue
		}
		if cueIDs[c.ID] {
			return invalid("duplicate cue id %q", c.ID)
		}
		cueIDs[c.ID] = true
	}

	deploymentIDs := make(map[string]bool, len(d.Deployments))
	for i, dep := range d.Deployments {
		if dep.ID == "" {
			return invalid("deployment %d has no id", i)
		}
		if deploymentIDs[dep.ID] {
			return invalid("duplicate deployment id %q", dep.ID)
		}
		if _, err := domain.ParseDeploymentStatus(string(dep.Status)); err != nil {
			return fmt.Errorf("%w: deployment %q: %w", ErrInvalidDataset, dep.ID, err)
		}
		deploymentIDs[dep.ID] = true
	}

	positionIDs := make(map[string]bool, len(d.Positions))
	for i, p := range d.Positions {
		if p.ID == "" {
			return invalid("position %d has no id", i)
		}
		if positionIDs[p.ID] {
			return invalid("duplicate position id %q", p.ID)
		}
		positionIDs[p.ID] = true
		if !deploymentIDs[p.DeploymentID] {
			return invalid("position %q references unknown deployment %q", p.ID, p.DeploymentID)
		}
		if _, err := domain.ParseSide(string(p.Side)); err != nil {
			return fmt.Errorf("%w: position %q: %w", ErrInvalidDataset, p.ID, err)
		}
		if _, err := domain.ParsePositionState(string(p.State)); err != nil {
			return fmt.Errorf("%w: position %q: %w", ErrInvalidDataset, p.ID, err)
		}
	}

	if d.Risk.Regime != "" {
		if _, err := domain.ParseRegime(string(d.Risk.Regime)); err != nil {
			return fmt.Errorf("%w: risk: %w", ErrInvalidDataset, err)
		}
	}

	backtestIDs := make(map[string]bool, len(d.Backtests))
	for i, b := range d.Backtests {
		if b.ID == "" {
			return invalid("backtest %d has no id", i)
		}
		if backtestIDs[b.ID] {
			return invalid("duplicate backtest id %q", b.ID)
		}
		backtestIDs[b.ID] = true
		if b.Days < 2 {
			return invalid("backtest %q needs at least 2 days", b.ID)
		}
		if b.InitialCapital <= 0 {
			return invalid("backtest %q needs positive initial capital", b.ID)
		}
	}

	return nil
}

// BacktestResults generates each backtest's equity curve and derives its metrics
func (d *Dataset) BacktestResults() []domain.BacktestResult {
	out := make([]domain.BacktestResult, 0, len(d.Backtests))
	for _, spec := range d.Backtests {
		out = append(out, BuildBacktest(spec))
	}
	return out
}

// PortfolioCurve generates the aggregate equity history, one point per day ending today
func (d *Dataset) PortfolioCurve(now time.Time) []domain.EquityPoint {
	spec := d.EquityHistory
	if spec.Days < 2 || spec.Initial <= 0 {
		return []domain.EquityPoint{}
	}
	start := now.Truncate(24*time.Hour).AddDate(0, 0, -(spec.Days - 1))
	return GenerateEquityCurve(spec.Seed, spec.Days, start, spec.Initial, spec.Drift, spec.Volatility)
}
