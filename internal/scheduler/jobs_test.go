package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/workbench/internal/events"
	"github.com/aristath/workbench/internal/mockdata"
	"github.com/aristath/workbench/internal/reliability"
	"github.com/aristath/workbench/internal/store"
	testingpkg "github.com/aristath/workbench/internal/testing"
)

func TestReloadCuesJob(t *testing.T) {
	s := testingpkg.NewTestStore()
	s.Dispatch(store.DismissCue{ID: "cue-drawdown"})

	bus, rec := newRecordingBus()
	job := NewReloadCuesJob(s, mockdata.NewFixtureProvider("", zerolog.Nop()), bus, zerolog.Nop())
	assert.Equal(t, "reload_cues", job.Name())

	require.NoError(t, New(nil, zerolog.Nop()).RunNow(job))

	cues := s.State().Portfolio.Cues
	assert.Len(t, cues, 4, "cues come from the demo dataset")

	got := rec.all()
	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.Equal(t, events.CuesReloaded, last.Type)
	assert.Equal(t, 4, last.Data.(*events.CuesReloadedData).Count)
}

func TestReloadCuesJob_ProviderFailure(t *testing.T) {
	s := testingpkg.NewTestStore()
	before := s.State()

	job := NewReloadCuesJob(s, mockdata.NewFixtureProvider("/does/not/exist.yaml", zerolog.Nop()), nil, zerolog.Nop())
	assert.Error(t, job.Run())
	assert.Equal(t, before, s.State())
}

type fakeArchiver struct {
	archiveErr error
	rotateErr  error
	archived   int
	rotatedFor int
}

func (f *fakeArchiver) Archive(context.Context) (reliability.ArchiveInfo, error) {
	if f.archiveErr != nil {
		return reliability.ArchiveInfo{}, f.archiveErr
	}
	f.archived++
	return reliability.ArchiveInfo{Key: "workbench-snapshot-2024-03-01-000000.msgpack"}, nil
}

func (f *fakeArchiver) RotateOldArchives(_ context.Context, retentionDays int) (int, error) {
	f.rotatedFor = retentionDays
	return 0, f.rotateErr
}

func TestArchiveSnapshotJob(t *testing.T) {
	t.Run("archives and rotates", func(t *testing.T) {
		archiver := &fakeArchiver{}
		job := NewArchiveSnapshotJob(archiver, 14, zerolog.Nop())
		assert.Equal(t, "archive_snapshot", job.Name())

		require.NoError(t, job.Run())
		assert.Equal(t, 1, archiver.archived)
		assert.Equal(t, 14, archiver.rotatedFor)
	})

	t.Run("upload failure fails the job", func(t *testing.T) {
		archiver := &fakeArchiver{archiveErr: errors.New("bucket unavailable")}
		err := NewArchiveSnapshotJob(archiver, 14, zerolog.Nop()).Run()
		assert.ErrorIs(t, err, archiver.archiveErr)
		assert.Zero(t, archiver.rotatedFor)
	})

	t.Run("rotation failure is tolerated", func(t *testing.T) {
		archiver := &fakeArchiver{rotateErr: errors.New("list denied")}
		assert.NoError(t, NewArchiveSnapshotJob(archiver, 14, zerolog.Nop()).Run())
		assert.Equal(t, 1, archiver.archived)
	})
}
