package dashboard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/workbench/internal/domain"
	"github.com/aristath/workbench/internal/store"
	testingpkg "github.com/aristath/workbench/internal/testing"
	"github.com/aristath/workbench/pkg/formatters"
)

func TestBuild_Rows(t *testing.T) {
	view := Build(testingpkg.NewTestStore().State())

	assert.Equal(t, uint64(4), view.Seq)
	require.Len(t, view.Deployments, 4)
	assert.Nil(t, view.Selected)

	momentum := view.Deployments[0]
	assert.Equal(t, "dep-momentum", momentum.ID)
	assert.Equal(t, "$50.0K", momentum.Capital)
	assert.Equal(t, "+$4,250.50", momentum.TotalPnL)
	assert.Equal(t, "+8.50%", momentum.TotalPnLPct)
	assert.Equal(t, "42d 0h", momentum.Runtime)
	assert.Equal(t, 2, momentum.PositionCount)

	meanrev := view.Deployments[1]
	assert.Equal(t, "-$820.00", meanrev.TotalPnL)
	assert.Equal(t, "-3.28%", meanrev.TotalPnLPct)
	assert.Equal(t, "$0.00", meanrev.DayPnL)

	breakout := view.Deployments[2]
	assert.Equal(t, "0m", breakout.Runtime)
	assert.Equal(t, 0, breakout.PositionCount)
}

func TestBuild_Cards(t *testing.T) {
	cards := Cards(testingpkg.NewSnapshotFixture())
	require.Len(t, cards, 5)

	byLabel := map[string]string{}
	for _, c := range cards {
		byLabel[c.Label] = c.Formatted
	}
	assert.Equal(t, "$154,630.50", byLabel["Equity"])
	assert.Equal(t, "+$312.25 (+0.20%)", byLabel["Day P&L"])
	assert.Equal(t, "1", byLabel["Active Deployments"])
}

func TestBuild_CardsNonFinite(t *testing.T) {
	cards := Cards(domain.PortfolioSnapshot{Equity: math.NaN()})
	assert.Equal(t, formatters.Placeholder, cards[0].Formatted)
}

func TestBuild_Selection(t *testing.T) {
	s := testingpkg.NewTestStore()
	s.Dispatch(store.SelectDeployment{ID: "dep-momentum"})

	view := Build(s.State())
	require.NotNil(t, view.Selected)
	assert.True(t, view.Selected.Found)
	require.NotNil(t, view.Selected.Deployment)
	assert.Equal(t, "Momentum Alpha", view.Selected.Deployment.Name)
	assert.Equal(t, "Riding semiconductor strength", view.Selected.Narrative)
	require.Len(t, view.Selected.Positions, 2)

	nvda := view.Selected.Positions[0]
	assert.Equal(t, "NVDA", nvda.Symbol)
	assert.Equal(t, "40", nvda.Quantity)
	assert.Equal(t, "$5,076.00", nvda.MarketValue)
	assert.Equal(t, "+$348.00", nvda.UnrealizedPnL)
}

func TestPositionRow_FractionalQuantity(t *testing.T) {
	row := positionRow(domain.Position{ID: "pos-btc", Symbol: "BTC", Quantity: 0.5, CurrentPrice: 60000})
	assert.Equal(t, "0.5", row.Quantity)
	assert.Equal(t, "$30,000.00", row.MarketValue)

	row = positionRow(domain.Position{Symbol: "SPY", Quantity: 1200})
	assert.Equal(t, "1,200", row.Quantity)
}

func TestBuild_SelectionOfUnknownID(t *testing.T) {
	s := testingpkg.NewTestStore()
	s.Dispatch(store.SelectDeployment{ID: "ghost"})

	view := Build(s.State())
	require.NotNil(t, view.Selected)
	assert.Equal(t, "ghost", view.Selected.ID)
	assert.False(t, view.Selected.Found)
	assert.Nil(t, view.Selected.Deployment)
	assert.NotNil(t, view.Selected.Positions)
	assert.Empty(t, view.Selected.Positions)
	assert.Len(t, view.Deployments, 4)
}

func TestBuild_Cues(t *testing.T) {
	view := Build(testingpkg.NewTestStore().State())
	require.Len(t, view.Cues, 3)

	assert.Equal(t, domain.SeverityCritical, view.Cues[0].Severity)
	assert.Equal(t, "6d 4h", view.Cues[0].AvgRecovery)
	assert.Equal(t, "Reduce exposure", view.Cues[0].SuggestedAction)
	assert.Equal(t, "3d 0h", view.Cues[1].AvgRecovery)
	assert.Empty(t, view.Cues[1].HistoricalContext)
	assert.Equal(t, "0m", view.Cues[2].AvgRecovery)
}

func TestBuild_Empty(t *testing.T) {
	view := Build(store.NewState())
	assert.NotNil(t, view.Deployments)
	assert.NotNil(t, view.Cues)
	assert.Equal(t, domain.ColorModeDark, view.UI.ColorMode)
}
