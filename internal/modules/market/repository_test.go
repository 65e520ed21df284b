package market

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testingpkg "github.com/aristath/workbench/internal/testing"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	db, cleanup := testingpkg.NewTestDB(t, "market")
	t.Cleanup(cleanup)
	return NewRepository(db, zerolog.Nop())
}

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestRepository_InsertAndGetBars(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	bars := []Bar{
		{Time: day(0), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
		{Time: day(1), Open: 10.5, High: 12, Low: 10, Close: 11.5, Volume: 120},
		{Time: day(2), Open: 11.5, High: 12, Low: 11, Close: 11.8, Volume: 90},
	}
	require.NoError(t, repo.InsertBars(ctx, "AAPL", "1d", bars))
	require.NoError(t, repo.InsertBars(ctx, "MSFT", "1d", bars[:1]))

	got, err := repo.GetBars(ctx, "AAPL", "1d", 10)
	require.NoError(t, err)
	assert.Equal(t, bars, got, "oldest first")

	latest, err := repo.GetBars(ctx, "AAPL", "1d", 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, day(1), latest[0].Time)
	assert.Equal(t, day(2), latest[1].Time)

	none, err := repo.GetBars(ctx, "AAPL", "1h", 10)
	require.NoError(t, err)
	assert.Empty(t, none)

	symbols, err := repo.Symbols(ctx, "1d")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)
}

func TestRepository_InsertBarsUpserts(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.InsertBars(ctx, "SPY", "1d", []Bar{{Time: day(0), Open: 1, High: 1, Low: 1, Close: 1}}))
	require.NoError(t, repo.InsertBars(ctx, "SPY", "1d", []Bar{{Time: day(0), Open: 2, High: 2, Low: 2, Close: 2}}))

	got, err := repo.GetBars(ctx, "SPY", "1d", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2.0, got[0].Close)

	assert.NoError(t, repo.InsertBars(ctx, "SPY", "1d", nil))
}

func TestRepository_GetSnapshot(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetSnapshot(ctx, "QQQ")
	assert.ErrorIs(t, err, ErrNoData)

	require.NoError(t, repo.InsertBars(ctx, "QQQ", "1d", []Bar{{Time: day(0), Close: 400}}))
	snap, err := repo.GetSnapshot(ctx, "QQQ")
	require.NoError(t, err)
	assert.Equal(t, 400.0, snap.LastClose)
	assert.Equal(t, 400.0, snap.PrevClose)
	assert.Equal(t, 0.0, snap.ChangePct)

	require.NoError(t, repo.InsertBars(ctx, "QQQ", "1d", []Bar{
		{Time: day(1), Close: 410},
		{Time: day(2), Close: 389.5},
	}))
	require.NoError(t, repo.InsertBars(ctx, "QQQ", "1h", []Bar{{Time: day(3), Close: 1}}))

	snap, err = repo.GetSnapshot(ctx, "QQQ")
	require.NoError(t, err)
	assert.Equal(t, "QQQ", snap.Symbol)
	assert.Equal(t, 389.5, snap.LastClose)
	assert.Equal(t, 410.0, snap.PrevClose)
	assert.InDelta(t, -20.5, snap.Change, 1e-9)
	assert.InDelta(t, -5.0, snap.ChangePct, 1e-9)
	assert.Equal(t, day(2), snap.AsOf)
}
