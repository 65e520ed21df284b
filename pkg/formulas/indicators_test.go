package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	series := SMA([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, series, 5)

	assert.True(t, math.IsNaN(series[0]))
	assert.True(t, math.IsNaN(series[1]))
	assert.InDelta(t, 2.0, series[2], 1e-9)
	assert.InDelta(t, 3.0, series[3], 1e-9)
	assert.InDelta(t, 4.0, series[4], 1e-9)
}

func TestSMA_NotEnoughData(t *testing.T) {
	assert.Nil(t, SMA([]float64{1, 2}, 3))
	assert.Nil(t, SMA([]float64{1, 2, 3}, 1))
}

func TestEMA(t *testing.T) {
	values := []float64{10, 10, 10, 10, 10, 10}
	series := EMA(values, 3)
	require.Len(t, series, len(values))

	assert.True(t, math.IsNaN(series[1]))
	last, ok := Last(series)
	require.True(t, ok)
	assert.InDelta(t, 10.0, last, 1e-9)

	assert.Nil(t, EMA(values, 10))
}

func TestLast(t *testing.T) {
	_, ok := Last([]float64{math.NaN(), math.NaN()})
	assert.False(t, ok)

	v, ok := Last([]float64{math.NaN(), 4, math.NaN()})
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)
}

func TestRSI(t *testing.T) {
	rising := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	series := RSI(rising, 3)
	require.Len(t, series, len(rising))

	for i := 0; i < 3; i++ {
		assert.True(t, math.IsNaN(series[i]))
	}
	last, ok := Last(series)
	require.True(t, ok)
	assert.InDelta(t, 100.0, last, 1e-9, "only gains")

	assert.Nil(t, RSI(rising[:3], 3))
}

func TestBollingerBands(t *testing.T) {
	flat := []float64{5, 5, 5, 5, 5}
	bands := BollingerBands(flat, 3, 2)
	require.NotNil(t, bands)

	assert.True(t, math.IsNaN(bands.Upper[1]))
	assert.InDelta(t, 5.0, bands.Middle[4], 1e-9)
	assert.InDelta(t, 5.0, bands.Upper[4], 1e-6)
	assert.InDelta(t, 5.0, bands.Lower[4], 1e-6)

	wide := BollingerBands([]float64{1, 3, 1, 3}, 2, 1)
	require.NotNil(t, wide)
	assert.InDelta(t, 2.0, wide.Middle[3], 1e-9)
	assert.InDelta(t, 3.0, wide.Upper[3], 1e-9)
	assert.InDelta(t, 1.0, wide.Lower[3], 1e-9)

	assert.Nil(t, BollingerBands(flat, 10, 2))
}
