// Package di provides dependency injection type definitions.
//
// Container holds every long-lived dependency of the workbench and is the single
// source of truth handed to the server and the CLI.
package di

import (
	"github.com/aristath/workbench/internal/config"
	"github.com/aristath/workbench/internal/database"
	"github.com/aristath/workbench/internal/events"
	"github.com/aristath/workbench/internal/mockdata"
	"github.com/aristath/workbench/internal/modules/insights"
	"github.com/aristath/workbench/internal/modules/market"
	"github.com/aristath/workbench/internal/reliability"
	"github.com/aristath/workbench/internal/scheduler"
	"github.com/aristath/workbench/internal/store"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config

	// Databases
	MarketDB *database.DB

	// State
	EventBus *events.Bus
	Store    *store.Store
	Provider *mockdata.FixtureProvider
	Dataset  *mockdata.Dataset

	// Services
	InsightsService *insights.Service
	MarketRepo      *market.Repository
	MarketService   *market.Service

	// Archiving (nil when R2 is not configured)
	R2Client         *reliability.R2Client
	SnapshotArchiver *reliability.SnapshotArchiver

	Scheduler *scheduler.Scheduler

	unsubscribeStore func()
}

// JobInstances holds the registered jobs for manual triggering.
// Archive is nil when archiving is disabled.
type JobInstances struct {
	ReloadCues  *scheduler.ReloadCuesJob
	Archive     *scheduler.ArchiveSnapshotJob
	Maintenance *reliability.MaintenanceJob
}
