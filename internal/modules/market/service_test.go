package market

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarsQuery_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		query   BarsQuery
		want    BarsQuery
		wantErr bool
	}{
		{
			name:  "defaults",
			query: BarsQuery{Symbol: " aapl "},
			want:  BarsQuery{Symbol: "AAPL", Timeframe: "1d", Limit: DefaultLimit},
		},
		{
			name:  "limit capped",
			query: BarsQuery{Symbol: "SPY", Timeframe: "1h", Limit: 1e6},
			want:  BarsQuery{Symbol: "SPY", Timeframe: "1h", Limit: MaxLimit},
		},
		{name: "missing symbol", query: BarsQuery{}, wantErr: true},
		{name: "bad timeframe", query: BarsQuery{Symbol: "SPY", Timeframe: "2d"}, wantErr: true},
		{name: "negative limit", query: BarsQuery{Symbol: "SPY", Limit: -1}, wantErr: true},
		{name: "sma period too small", query: BarsQuery{Symbol: "SPY", SMA: 1}, wantErr: true},
		{name: "rsi period too large", query: BarsQuery{Symbol: "SPY", RSI: 501}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query.Normalize()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlays(t *testing.T) {
	bars := make([]Bar, 6)
	for i := range bars {
		bars[i] = Bar{Close: float64(i + 1)}
	}

	overlays := Overlays(bars, BarsQuery{SMA: 3, EMA: 3, RSI: 3, Bollinger: 3})
	require.Contains(t, overlays, "sma_3")
	require.Contains(t, overlays, "ema_3")
	require.Contains(t, overlays, "rsi_3")
	require.Contains(t, overlays, "bb_3_upper")
	require.Contains(t, overlays, "bb_3_middle")
	require.Contains(t, overlays, "bb_3_lower")

	sma := overlays["sma_3"]
	require.Len(t, sma, 6)
	assert.Nil(t, sma[0])
	assert.Nil(t, sma[1])
	require.NotNil(t, sma[2])
	assert.InDelta(t, 2.0, *sma[2], 1e-9)
	assert.InDelta(t, 5.0, *sma[5], 1e-9)

	assert.Nil(t, Overlays(bars, BarsQuery{}))
	assert.Nil(t, Overlays(bars[:2], BarsQuery{SMA: 3}), "not enough bars")
}

func TestGenerateBars(t *testing.T) {
	start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC) // Friday
	bars := GenerateBars(9, 30, start, 100, 0.001, 0.02)
	require.Len(t, bars, 30)

	assert.Equal(t, start, bars[0].Time)
	assert.Equal(t, time.Monday, bars[1].Time.Weekday())
	assert.Equal(t, 100.0, bars[0].Open)

	for i, b := range bars {
		assert.NotEqual(t, time.Saturday, b.Time.Weekday())
		assert.NotEqual(t, time.Sunday, b.Time.Weekday())
		assert.GreaterOrEqual(t, b.High, b.Open, "bar %d", i)
		assert.GreaterOrEqual(t, b.High, b.Close, "bar %d", i)
		assert.LessOrEqual(t, b.Low, b.Open, "bar %d", i)
		assert.LessOrEqual(t, b.Low, b.Close, "bar %d", i)
		assert.Greater(t, b.Volume, 0.0)
		if i > 0 {
			assert.True(t, b.Time.After(bars[i-1].Time))
			assert.Equal(t, bars[i-1].Close, b.Open, "bars open at the previous close")
		}
	}

	assert.Equal(t, bars, GenerateBars(9, 30, start, 100, 0.001, 0.02))
	assert.Empty(t, GenerateBars(9, 0, start, 100, 0.001, 0.02))
}

func TestService_BarsAndSnapshot(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertBars(ctx, "SPY", "1d", GenerateBars(1, 40, start, 470, 0.0005, 0.01)))

	service := NewService(repo, zerolog.Nop())

	result, err := service.Bars(ctx, BarsQuery{Symbol: "spy", Limit: 25, SMA: 5})
	require.NoError(t, err)
	assert.Equal(t, "SPY", result.Symbol)
	assert.Equal(t, "1d", result.Timeframe)
	assert.Len(t, result.Bars, 25)
	assert.Len(t, result.Overlays["sma_5"], 25)

	snap, err := service.Snapshot(ctx, "spy")
	require.NoError(t, err)
	assert.Equal(t, result.Bars[24].Close, snap.LastClose)
	assert.Equal(t, result.Bars[23].Close, snap.PrevClose)

	_, err = service.Snapshot(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	empty, err := service.Bars(ctx, BarsQuery{Symbol: "NONE"})
	require.NoError(t, err)
	assert.NotNil(t, empty.Bars)
	assert.Empty(t, empty.Bars)
}
