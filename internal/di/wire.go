package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/config"
)

// Wire initializes all dependencies and returns a fully configured container.
// Order of operations:
// 1. Initialize databases
// 2. Initialize services (store, provider, insights, market, archiving)
// 3. Register jobs
// The scheduler is returned stopped; the caller starts it.
func Wire(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, *JobInstances, error) {
	container, err := InitializeDatabases(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	if err := InitializeServices(ctx, container, log); err != nil {
		container.Close()
		return nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	jobs, err := RegisterJobs(container, log)
	if err != nil {
		container.Close()
		return nil, nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")
	return container, jobs, nil
}

// Close releases the container's resources. It does not stop the scheduler.
func (c *Container) Close() error {
	if c.unsubscribeStore != nil {
		c.unsubscribeStore()
	}
	if c.MarketDB != nil {
		return c.MarketDB.Close()
	}
	return nil
}
