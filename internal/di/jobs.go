package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/reliability"
	"github.com/aristath/workbench/internal/scheduler"
)

// RegisterJobs creates the scheduler and registers every enabled job.
// Returns JobInstances for manual triggering.
func RegisterJobs(container *Container, log zerolog.Logger) (*JobInstances, error) {
	if container == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	cfg := container.Config
	container.Scheduler = scheduler.New(container.EventBus, log)
	instances := &JobInstances{
		ReloadCues:  scheduler.NewReloadCuesJob(container.Store, container.Provider, container.EventBus, log),
		Maintenance: reliability.NewMaintenanceJob(container.MarketDB, log),
	}

	if err := container.Scheduler.AddJob(cfg.Schedules.CueReload, instances.ReloadCues); err != nil {
		return nil, err
	}
	if err := container.Scheduler.AddJob(cfg.Schedules.Maintenance, instances.Maintenance); err != nil {
		return nil, err
	}

	if container.SnapshotArchiver != nil {
		instances.Archive = scheduler.NewArchiveSnapshotJob(container.SnapshotArchiver, cfg.R2.RetentionDays, log)
		if err := container.Scheduler.AddJob(cfg.Schedules.Archive, instances.Archive); err != nil {
			return nil, err
		}
	}

	return instances, nil
}
