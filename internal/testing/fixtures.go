package testing

import "github.com/aristath/workbench/internal/domain"

// NewDeploymentFixtures returns one deployment in each lifecycle status
func NewDeploymentFixtures() []domain.Deployment {
	return []domain.Deployment{
		{
			ID:               "dep-momentum",
			Name:             "Momentum Alpha",
			Strategy:         "momentum",
			Status:           domain.StatusActive,
			CapitalAllocated: 50000,
			TotalPnL:         4250.5,
			TotalPnLPct:      8.5,
			DayPnL:           312.25,
			DayPnLPct:        0.58,
			Narrative:        "Riding semiconductor strength",
			DaysSinceStart:   42,
		},
		{
			ID:               "dep-meanrev",
			Name:             "Mean Reversion",
			Strategy:         "mean_reversion",
			Status:           domain.StatusPaused,
			CapitalAllocated: 25000,
			TotalPnL:         -820,
			TotalPnLPct:      -3.28,
			DayPnL:           0,
			Narrative:        "Paused after volatility spike",
			IsPaper:          true,
			DaysSinceStart:   17,
		},
		{
			ID:               "dep-breakout",
			Name:             "Breakout Scout",
			Strategy:         "breakout",
			Status:           domain.StatusIdle,
			CapitalAllocated: 10000,
			IsPaper:          true,
		},
		{
			ID:               "dep-legacy",
			Name:             "Legacy Carry",
			Strategy:         "carry",
			Status:           domain.StatusStopped,
			CapitalAllocated: 0,
			TotalPnL:         1200,
			TotalPnLPct:      2.4,
			DaysSinceStart:   210,
		},
	}
}

// NewPositionFixtures returns open positions for the fixture deployments
func NewPositionFixtures() []domain.Position {
	return []domain.Position{
		{
			ID: "pos-nvda", DeploymentID: "dep-momentum", Symbol: "NVDA", Side: domain.SideLong,
			Quantity: 40, EntryPrice: 118.2, CurrentPrice: 126.9, UnrealizedPnL: 348,
			BarsHeld: 12, State: domain.PositionHolding,
		},
		{
			ID: "pos-amd", DeploymentID: "dep-momentum", Symbol: "AMD", Side: domain.SideLong,
			Quantity: 60, EntryPrice: 152.1, CurrentPrice: 150.4, UnrealizedPnL: -102,
			BarsHeld: 3, State: domain.PositionEntry,
		},
		{
			ID: "pos-tlt", DeploymentID: "dep-meanrev", Symbol: "TLT", Side: domain.SideShort,
			Quantity: 100, EntryPrice: 94.5, CurrentPrice: 93.1, UnrealizedPnL: 140,
			BarsHeld: 8, State: domain.PositionTrailing,
		},
	}
}

// NewCueFixtures returns one cue per severity
func NewCueFixtures() []domain.ActionCue {
	context := "Similar drawdowns recovered within a week in 4 of 5 cases"
	action := "Reduce exposure"
	return []domain.ActionCue{
		{
			ID: "cue-drawdown", Severity: domain.SeverityCritical, Message: "Momentum Alpha drawdown at 80% of limit",
			HistoricalContext: &context, Occurrences: 5, AvgRecoveryDays: 6.2, SuggestedAction: &action,
		},
		{ID: "cue-corr", Severity: domain.SeverityWarning, Message: "Correlation between deployments rising", Occurrences: 2, AvgRecoveryDays: 3},
		{ID: "cue-window", Severity: domain.SeverityInfo, Message: "Rebalance window opens tomorrow"},
	}
}

// NewSnapshotFixture returns a snapshot consistent with the deployment fixtures
func NewSnapshotFixture() domain.PortfolioSnapshot {
	return domain.PortfolioSnapshot{
		Equity:            154630.5,
		Cash:              69630.5,
		DayPnL:            312.25,
		DayPnLPct:         0.2,
		UnrealizedPnL:     386,
		ActiveDeployments: 1,
	}
}
