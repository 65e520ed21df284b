package reliability

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/events"
	"github.com/aristath/workbench/internal/store"
)

const (
	archivePrefix     = "workbench-snapshot-"
	archiveSuffix     = ".msgpack"
	archiveTimeLayout = "2006-01-02-150405"

	// MinArchivesToKeep survive rotation regardless of age
	MinArchivesToKeep = 3
)

// ArchiveInfo describes one archived snapshot in the bucket
type ArchiveInfo struct {
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
	SizeBytes int64     `json:"size_bytes"`
	AgeHours  int64     `json:"age_hours"`
}

// SnapshotArchiver uploads msgpack-encoded store state to object storage
type SnapshotArchiver struct {
	objects ObjectStore
	store   *store.Store
	bus     *events.Bus
	now     func() time.Time
	log     zerolog.Logger
}

// NewSnapshotArchiver creates an archiver. bus may be nil.
func NewSnapshotArchiver(objects ObjectStore, s *store.Store, bus *events.Bus, log zerolog.Logger) *SnapshotArchiver {
	return &SnapshotArchiver{
		objects: objects,
		store:   s,
		bus:     bus,
		now:     time.Now,
		log:     log.With().Str("service", "snapshot_archive").Logger(),
	}
}

// ArchiveKey returns the object key for a snapshot taken at t
func ArchiveKey(t time.Time) string {
	return archivePrefix + t.UTC().Format(archiveTimeLayout) + archiveSuffix
}

// Archive encodes the current state and uploads it
func (a *SnapshotArchiver) Archive(ctx context.Context) (ArchiveInfo, error) {
	state := a.store.State()
	raw, err := store.MarshalMsgpack(state)
	if err != nil {
		return ArchiveInfo{}, fmt.Errorf("failed to encode state: %w", err)
	}

	taken := a.now().UTC().Truncate(time.Second)
	key := ArchiveKey(taken)
	if err := a.objects.Upload(ctx, key, bytes.NewReader(raw), int64(len(raw))); err != nil {
		return ArchiveInfo{}, err
	}

	a.log.Info().
		Str("key", key).
		Int("bytes", len(raw)).
		Uint64("seq", state.Seq).
		Msg("Snapshot archived")

	if a.bus != nil {
		a.bus.Emit("reliability", &events.SnapshotArchivedData{Key: key, Bytes: len(raw), Seq: state.Seq})
	}

	return ArchiveInfo{Key: key, Timestamp: taken, SizeBytes: int64(len(raw))}, nil
}

// ListArchives returns archived snapshots, newest first.
// Keys that do not parse as archive names are skipped.
func (a *SnapshotArchiver) ListArchives(ctx context.Context) ([]ArchiveInfo, error) {
	objects, err := a.objects.List(ctx, archivePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}

	now := a.now()
	archives := make([]ArchiveInfo, 0, len(objects))
	for _, obj := range objects {
		if obj.Key == nil {
			continue
		}
		key := *obj.Key
		if !strings.HasPrefix(key, archivePrefix) || !strings.HasSuffix(key, archiveSuffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(key, archivePrefix), archiveSuffix)
		timestamp, err := time.Parse(archiveTimeLayout, stamp)
		if err != nil {
			a.log.Warn().Str("key", key).Msg("Failed to parse timestamp from archive key")
			continue
		}

		var size int64
		if obj.Size != nil {
			size = *obj.Size
		}

		archives = append(archives, ArchiveInfo{
			Key:       key,
			Timestamp: timestamp,
			SizeBytes: size,
			AgeHours:  int64(now.Sub(timestamp).Hours()),
		})
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].Timestamp.After(archives[j].Timestamp)
	})
	return archives, nil
}

// RotateOldArchives deletes archives older than retentionDays and returns how
// many were removed. The newest MinArchivesToKeep are always kept; zero
// retention keeps everything.
func (a *SnapshotArchiver) RotateOldArchives(ctx context.Context, retentionDays int) (int, error) {
	archives, err := a.ListArchives(ctx)
	if err != nil {
		return 0, err
	}
	if retentionDays <= 0 || len(archives) <= MinArchivesToKeep {
		return 0, nil
	}

	cutoff := a.now().AddDate(0, 0, -retentionDays)
	deleted := 0
	for _, archive := range archives[MinArchivesToKeep:] {
		if !archive.Timestamp.Before(cutoff) {
			continue
		}
		if err := a.objects.Delete(ctx, archive.Key); err != nil {
			a.log.Error().Err(err).Str("key", archive.Key).Msg("Failed to delete old archive")
			continue
		}
		deleted++
	}

	a.log.Info().
		Int("deleted", deleted).
		Int("remaining", len(archives)-deleted).
		Msg("Archive rotation completed")
	return deleted, nil
}
