package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestMarshalMsgpack_UsesJSONFieldNames(t *testing.T) {
	s := newTestStore()
	s.Dispatch(ToggleSidebar{})

	raw, err := MarshalMsgpack(s.State())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, msgpack.Unmarshal(raw, &decoded))

	assert.EqualValues(t, 1, decoded["seq"])
	require.Contains(t, decoded, "portfolio")
	require.Contains(t, decoded, "deployments")

	ui, ok := decoded["ui"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, ui["sidebar_collapsed"])
}
