package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestOperationTimer(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	stop := OperationTimer("vacuum", log)
	elapsed := stop()

	assert.GreaterOrEqual(t, int64(elapsed), int64(0))
	assert.Contains(t, buf.String(), `"operation":"vacuum"`)
	assert.NotContains(t, buf.String(), "Slow operation")
}

func TestMeasureDBQuery(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	MeasureDBQuery("get_bars", log)(42)

	assert.Contains(t, buf.String(), `"query":"get_bars"`)
	assert.Contains(t, buf.String(), `"rows":42`)
}
