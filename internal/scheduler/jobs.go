package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/events"
	"github.com/aristath/workbench/internal/mockdata"
	"github.com/aristath/workbench/internal/reliability"
	"github.com/aristath/workbench/internal/store"
)

const jobTimeout = 2 * time.Minute

// ReloadCuesJob replaces the store's cues with a fresh provider load
type ReloadCuesJob struct {
	store    *store.Store
	provider mockdata.Provider
	bus      *events.Bus
	log      zerolog.Logger
}

// NewReloadCuesJob creates a cue reload job. bus may be nil.
func NewReloadCuesJob(s *store.Store, provider mockdata.Provider, bus *events.Bus, log zerolog.Logger) *ReloadCuesJob {
	return &ReloadCuesJob{
		store:    s,
		provider: provider,
		bus:      bus,
		log:      log.With().Str("job", "reload_cues").Logger(),
	}
}

// Name returns the job name
func (j *ReloadCuesJob) Name() string {
	return "reload_cues"
}

// Run executes the job
func (j *ReloadCuesJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	count, err := mockdata.ReloadCues(ctx, j.store, j.provider)
	if err != nil {
		return err
	}

	j.log.Info().Int("cues", count).Msg("Cues reloaded")
	if j.bus != nil {
		j.bus.Emit("scheduler", &events.CuesReloadedData{Count: count})
	}
	return nil
}

// SnapshotArchiver is implemented by reliability.SnapshotArchiver
type SnapshotArchiver interface {
	Archive(ctx context.Context) (reliability.ArchiveInfo, error)
	RotateOldArchives(ctx context.Context, retentionDays int) (int, error)
}

// ArchiveSnapshotJob uploads the current state and rotates old archives
type ArchiveSnapshotJob struct {
	archiver      SnapshotArchiver
	retentionDays int
	log           zerolog.Logger
}

// NewArchiveSnapshotJob creates an archive job. Zero retention keeps every archive.
func NewArchiveSnapshotJob(archiver SnapshotArchiver, retentionDays int, log zerolog.Logger) *ArchiveSnapshotJob {
	return &ArchiveSnapshotJob{
		archiver:      archiver,
		retentionDays: retentionDays,
		log:           log.With().Str("job", "archive_snapshot").Logger(),
	}
}

// Name returns the job name
func (j *ArchiveSnapshotJob) Name() string {
	return "archive_snapshot"
}

// Run executes the job. A failed rotation is logged but does not fail the job.
func (j *ArchiveSnapshotJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	info, err := j.archiver.Archive(ctx)
	if err != nil {
		return fmt.Errorf("archive snapshot: %w", err)
	}

	deleted, err := j.archiver.RotateOldArchives(ctx, j.retentionDays)
	if err != nil {
		j.log.Warn().Err(err).Msg("Archive rotation failed")
	}

	j.log.Info().
		Str("key", info.Key).
		Int("rotated", deleted).
		Msg("Snapshot archive job finished")
	return nil
}
