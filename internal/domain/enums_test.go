package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeploymentStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    DeploymentStatus
		wantErr bool
	}{
		{"idle", StatusIdle, false},
		{"active", StatusActive, false},
		{"paused", StatusPaused, false},
		{"stopped", StatusStopped, false},
		{"running", "", true},
		{"", "", true},
		{"Active", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDeploymentStatus(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidEnum))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeploymentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from DeploymentStatus
		to   DeploymentStatus
		want bool
	}{
		{StatusIdle, StatusActive, true},
		{StatusIdle, StatusPaused, false},
		{StatusIdle, StatusStopped, true},
		{StatusActive, StatusPaused, true},
		{StatusActive, StatusStopped, true},
		{StatusActive, StatusActive, false},
		{StatusPaused, StatusActive, true},
		{StatusPaused, StatusStopped, true},
		{StatusPaused, StatusPaused, false},
		{StatusStopped, StatusActive, false},
		{StatusStopped, StatusPaused, false},
		{StatusStopped, StatusIdle, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, StatusStopped.IsTerminal())
	assert.False(t, StatusPaused.IsTerminal())
}

func TestEnums_UnmarshalJSONRejectsUnknown(t *testing.T) {
	var cue ActionCue
	err := json.Unmarshal([]byte(`{"id":"c1","severity":"urgent","message":"x"}`), &cue)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEnum))

	var pos Position
	err = json.Unmarshal([]byte(`{"id":"p1","side":"flat","state":"holding"}`), &pos)
	require.Error(t, err)

	err = json.Unmarshal([]byte(`{"id":"p1","side":"short","state":"holding"}`), &pos)
	require.NoError(t, err)
	assert.Equal(t, SideShort, pos.Side)
	assert.Equal(t, PositionHolding, pos.State)
}

func TestColorMode_Opposite(t *testing.T) {
	assert.Equal(t, ColorModeLight, ColorModeDark.Opposite())
	assert.Equal(t, ColorModeDark, ColorModeLight.Opposite())
	assert.Equal(t, ColorModeDark, ColorModeDark.Opposite().Opposite())
}

func TestSeverity_Rank(t *testing.T) {
	assert.Less(t, SeverityCritical.Rank(), SeverityWarning.Rank())
	assert.Less(t, SeverityWarning.Rank(), SeverityInfo.Rank())
}

func TestParseRegimeAndFormat(t *testing.T) {
	r, err := ParseRegime("crisis")
	require.NoError(t, err)
	assert.Equal(t, RegimeCrisis, r)

	_, err = ParseRegime("bubble")
	assert.Error(t, err)

	f, err := ParseMetricFormat("ratio")
	require.NoError(t, err)
	assert.Equal(t, FormatRatio, f)

	_, err = ParseMetricFormat("bps")
	assert.Error(t, err)
}
