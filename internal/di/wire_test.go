package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/workbench/internal/config"
	"github.com/aristath/workbench/internal/database"
	"github.com/aristath/workbench/internal/events"
	"github.com/aristath/workbench/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir: t.TempDir(),
		Port:    8080,
		Market:  config.MarketDBConfig{Driver: "sqlite"},
		Schedules: config.ScheduleConfig{
			CueReload:   "0 */15 * * * *",
			Archive:     "0 0 * * * *",
			Maintenance: "0 0 3 * * *",
		},
	}
}

func TestWire(t *testing.T) {
	cfg := testConfig(t)

	container, jobs, err := Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	assert.NotNil(t, container.MarketDB)
	assert.Equal(t, database.DriverSQLite, container.MarketDB.Driver())
	assert.FileExists(t, filepath.Join(cfg.DataDir, "market.db"))
	assert.NotNil(t, container.InsightsService)
	assert.NotNil(t, container.MarketService)

	state := container.Store.State()
	assert.Equal(t, uint64(4), state.Seq, "one dispatch per seeded collection")
	assert.Len(t, state.Deployments.Deployments, 5)

	assert.Nil(t, container.SnapshotArchiver, "archiving needs R2 credentials")
	assert.Nil(t, jobs.Archive)
	assert.NotNil(t, jobs.ReloadCues)
	assert.NotNil(t, jobs.Maintenance)
	assert.Len(t, container.Scheduler.Entries(), 2)
}

func TestWire_StoreChangesReachTheBus(t *testing.T) {
	container, _, err := Wire(context.Background(), testConfig(t), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	var got []*events.StateChangedData
	container.EventBus.Subscribe(func(e *events.Event) {
		got = append(got, e.Data.(*events.StateChangedData))
	}, events.StateChanged)

	container.Store.Dispatch(store.ToggleSidebar{})
	container.Store.Dispatch(store.SetOperationsTab{Index: 0}) // no-op

	require.Len(t, got, 1)
	assert.Equal(t, uint64(5), got[0].Seq)
	assert.Equal(t, "ui", got[0].Slice)

	container.Close()
	container.Store.Dispatch(store.ToggleSidebar{})
	assert.Len(t, got, 1, "closing the container detaches the bridge")
}

func TestWire_WithR2(t *testing.T) {
	cfg := testConfig(t)
	cfg.R2 = config.R2Config{
		AccountID:       "acct",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "snapshots",
		RetentionDays:   30,
	}

	container, jobs, err := Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	assert.NotNil(t, container.R2Client)
	assert.NotNil(t, container.SnapshotArchiver)
	assert.NotNil(t, jobs.Archive)
	assert.Len(t, container.Scheduler.Entries(), 3)
}

func TestWire_InvalidFixture(t *testing.T) {
	cfg := testConfig(t)
	cfg.MockDataPath = filepath.Join(cfg.DataDir, "broken.yaml")
	require.NoError(t, os.WriteFile(cfg.MockDataPath, []byte("unknown_field: 1\n"), 0o644))

	_, _, err := Wire(context.Background(), cfg, zerolog.Nop())
	assert.ErrorContains(t, err, "failed to initialize services")
}

func TestWire_DisabledSchedules(t *testing.T) {
	cfg := testConfig(t)
	cfg.Schedules = config.ScheduleConfig{}

	container, _, err := Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	assert.Empty(t, container.Scheduler.Entries())
}
