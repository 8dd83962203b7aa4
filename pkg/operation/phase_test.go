package operation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhase_DecodesViewPhase(t *testing.T) {
	var v View
	require.NoError(t, json.Unmarshal([]byte(`{"form":"sign","phase":"Succeeded","disabled":true}`), &v))
	require.Equal(t, PhaseSucceeded, v.Phase)
	require.True(t, v.Phase.Disables())

	err := json.Unmarshal([]byte(`{"phase":"done"}`), &v)
	require.ErrorContains(t, err, `unknown phase "done"`)
}
