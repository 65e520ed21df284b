package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/events"
	"github.com/aristath/workbench/internal/mockdata"
	"github.com/aristath/workbench/internal/modules/insights"
	"github.com/aristath/workbench/internal/modules/market"
	"github.com/aristath/workbench/internal/reliability"
	"github.com/aristath/workbench/internal/store"
)

// InitializeServices builds the store, seeds it from the fixture provider and
// creates the services behind the HTTP modules
func InitializeServices(ctx context.Context, container *Container, log zerolog.Logger) error {
	cfg := container.Config

	container.EventBus = events.NewBus(log)

	container.Provider = mockdata.NewFixtureProvider(cfg.MockDataPath, log)
	ds, err := container.Provider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	container.Dataset = ds

	container.Store = store.New(store.NewState(), log)
	mockdata.Seed(container.Store, ds)

	// Every applied dispatch after seeding is announced on the bus
	bus := container.EventBus
	container.unsubscribeStore = container.Store.Subscribe(func(change store.Change, _ store.State) {
		bus.Emit("store", &events.StateChangedData{
			Seq:    change.Seq,
			Slice:  string(change.Slice),
			Action: change.Action,
		})
	})

	log.Info().
		Str("source", container.Provider.Source()).
		Int("deployments", len(ds.Deployments)).
		Int("cues", len(ds.Cues)).
		Uint64("seq", container.Store.Seq()).
		Msg("Store seeded")

	container.InsightsService = insights.NewService(ds, log)
	container.MarketRepo = market.NewRepository(container.MarketDB, log)
	container.MarketService = market.NewService(container.MarketRepo, log)

	if cfg.R2.Enabled() {
		r2Client, err := reliability.NewR2Client(cfg.R2.AccountID, cfg.R2.AccessKeyID, cfg.R2.SecretAccessKey, cfg.R2.BucketName, log)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize R2 client - snapshot archiving disabled")
		} else {
			container.R2Client = r2Client
			container.SnapshotArchiver = reliability.NewSnapshotArchiver(r2Client, container.Store, bus, log)
			log.Info().Str("bucket", cfg.R2.BucketName).Msg("Snapshot archiving enabled")
		}
	} else {
		log.Debug().Msg("R2 credentials not configured - snapshot archiving disabled")
	}

	return nil
}
