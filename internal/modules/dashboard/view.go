// Package dashboard builds the formatted operations view from the store state.
package dashboard

import (
	"github.com/aristath/workbench/internal/domain"
	"github.com/aristath/workbench/internal/store"
	"github.com/aristath/workbench/pkg/formatters"
)

// View is the operations page, ready to render
type View struct {
	Seq         uint64           `json:"seq"`
	Cards       []domain.Metric  `json:"cards"`
	Deployments []DeploymentRow  `json:"deployments"`
	Selected    *SelectionDetail `json:"selected"`
	Cues        []CueRow         `json:"cues"`
	UI          store.UIState    `json:"ui"`
}

// DeploymentRow is one line of the deployment table
type DeploymentRow struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Strategy      string                  `json:"strategy"`
	Status        domain.DeploymentStatus `json:"status"`
	IsPaper       bool                    `json:"is_paper"`
	Capital       string                  `json:"capital"`
	TotalPnL      string                  `json:"total_pnl"`
	TotalPnLPct   string                  `json:"total_pnl_pct"`
	DayPnL        string                  `json:"day_pnl"`
	DayPnLPct     string                  `json:"day_pnl_pct"`
	Runtime       string                  `json:"runtime"`
	PositionCount int                     `json:"position_count"`
}

// SelectionDetail is the detail panel of the selected deployment.
// Found is false when the selected id matches no deployment; Positions is then empty.
type SelectionDetail struct {
	ID         string         `json:"id"`
	Found      bool           `json:"found"`
	Deployment *DeploymentRow `json:"deployment"`
	Narrative  string         `json:"narrative,omitempty"`
	Positions  []PositionRow  `json:"positions"`
}

// PositionRow is one line of the position table
type PositionRow struct {
	ID            string               `json:"id"`
	Symbol        string               `json:"symbol"`
	Side          domain.Side          `json:"side"`
	State         domain.PositionState `json:"state"`
	Quantity      string               `json:"quantity"`
	EntryPrice    string               `json:"entry_price"`
	CurrentPrice  string               `json:"current_price"`
	MarketValue   string               `json:"market_value"`
	UnrealizedPnL string               `json:"unrealized_pnl"`
	BarsHeld      int                  `json:"bars_held"`
}

// CueRow is a cue with its numbers rendered
type CueRow struct {
	ID                string          `json:"id"`
	Severity          domain.Severity `json:"severity"`
	Message           string          `json:"message"`
	HistoricalContext string          `json:"historical_context,omitempty"`
	Occurrences       int             `json:"occurrences"`
	AvgRecovery       string          `json:"avg_recovery"`
	SuggestedAction   string          `json:"suggested_action,omitempty"`
}

const minutesPerDay = 24 * 60

// Build renders the operations view. It only reads state.
func Build(state store.State) View {
	deps := state.Deployments

	view := View{
		Seq:         state.Seq,
		Cards:       Cards(state.Portfolio.Snapshot),
		Deployments: make([]DeploymentRow, 0, len(deps.Deployments)),
		Cues:        make([]CueRow, 0, len(state.Portfolio.Cues)),
		UI:          state.UI,
	}

	for _, d := range deps.Deployments {
		view.Deployments = append(view.Deployments, deploymentRow(d, len(deps.PositionsFor(d.ID))))
	}

	if deps.SelectedID != nil {
		detail := &SelectionDetail{
			ID:        *deps.SelectedID,
			Positions: []PositionRow{},
		}
		if d, ok := deps.SelectedDeployment(); ok {
			positions := deps.SelectedPositions()
			row := deploymentRow(d, len(positions))
			detail.Found = true
			detail.Deployment = &row
			detail.Narrative = d.Narrative
			for _, p := range positions {
				detail.Positions = append(detail.Positions, positionRow(p))
			}
		}
		view.Selected = detail
	}

	for _, c := range state.Portfolio.Cues {
		view.Cues = append(view.Cues, cueRow(c))
	}

	return view
}

// Cards returns the headline metrics of a snapshot, formatted
func Cards(s domain.PortfolioSnapshot) []domain.Metric {
	cards := []domain.Metric{
		domain.NumberMetric("Equity", s.Equity, domain.FormatCurrency),
		domain.NumberMetric("Cash", s.Cash, domain.FormatCurrency),
		domain.TextMetric("Day P&L", formatters.SignedCurrency(s.DayPnL)+" ("+formatters.Percent(s.DayPnLPct, true)+")"),
		domain.NumberMetric("Unrealized P&L", s.UnrealizedPnL, domain.FormatCurrency),
		domain.NumberMetric("Active Deployments", float64(s.ActiveDeployments), domain.FormatNumber),
	}
	for i := range cards {
		cards[i].Formatted = formatters.Metric(cards[i].Value, cards[i].Format)
	}
	return cards
}

func deploymentRow(d domain.Deployment, positions int) DeploymentRow {
	return DeploymentRow{
		ID:            d.ID,
		Name:          d.Name,
		Strategy:      d.Strategy,
		Status:        d.Status,
		IsPaper:       d.IsPaper,
		Capital:       formatters.CompactCurrency(d.CapitalAllocated),
		TotalPnL:      formatters.SignedCurrency(d.TotalPnL),
		TotalPnLPct:   formatters.Percent(d.TotalPnLPct, true),
		DayPnL:        formatters.SignedCurrency(d.DayPnL),
		DayPnLPct:     formatters.Percent(d.DayPnLPct, true),
		Runtime:       formatters.Duration(float64(d.DaysSinceStart) * minutesPerDay),
		PositionCount: positions,
	}
}

func positionRow(p domain.Position) PositionRow {
	return PositionRow{
		ID:            p.ID,
		Symbol:        p.Symbol,
		Side:          p.Side,
		State:         p.State,
		Quantity:      formatters.Quantity(p.Quantity),
		EntryPrice:    formatters.Currency(p.EntryPrice),
		CurrentPrice:  formatters.Currency(p.CurrentPrice),
		MarketValue:   formatters.Currency(p.MarketValue()),
		UnrealizedPnL: formatters.SignedCurrency(p.UnrealizedPnL),
		BarsHeld:      p.BarsHeld,
	}
}

func cueRow(c domain.ActionCue) CueRow {
	row := CueRow{
		ID:          c.ID,
		Severity:    c.Severity,
		Message:     c.Message,
		Occurrences: c.Occurrences,
		AvgRecovery: formatters.Duration(c.AvgRecoveryDays * minutesPerDay),
	}
	if c.HistoricalContext != nil {
		row.HistoricalContext = *c.HistoricalContext
	}
	if c.SuggestedAction != nil {
		row.SuggestedAction = *c.SuggestedAction
	}
	return row
}
