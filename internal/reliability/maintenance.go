package reliability

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/database"
	"github.com/aristath/workbench/internal/utils"
)

// MaintenanceJob keeps the market database healthy: a ping for every driver,
// and for SQLite a WAL checkpoint followed by VACUUM
type MaintenanceJob struct {
	db  *database.DB
	log zerolog.Logger
}

// NewMaintenanceJob creates a maintenance job for db
func NewMaintenanceJob(db *database.DB, log zerolog.Logger) *MaintenanceJob {
	return &MaintenanceJob{
		db:  db,
		log: log.With().Str("job", "db_maintenance").Logger(),
	}
}

// Name returns the job name for scheduler
func (j *MaintenanceJob) Name() string {
	return "db_maintenance"
}

// Run executes the maintenance job
func (j *MaintenanceJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	stop := utils.OperationTimer("db_maintenance", j.log)
	if err := j.db.HealthCheck(ctx); err != nil {
		return err
	}

	if j.db.Driver() == database.DriverSQLite {
		if _, err := j.db.Conn().ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			// not critical, VACUUM still runs
			j.log.Warn().Err(err).Msg("WAL checkpoint failed")
		}
		if err := j.vacuum(ctx); err != nil {
			return err
		}
	}

	j.log.Info().
		Str("database", j.db.Name()).
		Dur("duration_ms", stop()).
		Msg("Database maintenance completed")
	return nil
}

func (j *MaintenanceJob) vacuum(ctx context.Context) error {
	before, err := j.sizeMB(ctx)
	if err != nil {
		return err
	}

	if _, err := j.db.Conn().ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("VACUUM failed: %w", err)
	}

	after, err := j.sizeMB(ctx)
	if err != nil {
		return err
	}

	j.log.Info().
		Str("database", j.db.Name()).
		Float64("size_before_mb", before).
		Float64("size_after_mb", after).
		Float64("space_reclaimed_mb", before-after).
		Msg("VACUUM completed")
	return nil
}

func (j *MaintenanceJob) sizeMB(ctx context.Context) (float64, error) {
	var pageCount, pageSize int64
	if err := j.db.Conn().QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0, fmt.Errorf("failed to read page_count: %w", err)
	}
	if err := j.db.Conn().QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0, fmt.Errorf("failed to read page_size: %w", err)
	}
	return float64(pageCount*pageSize) / 1024 / 1024, nil
}
