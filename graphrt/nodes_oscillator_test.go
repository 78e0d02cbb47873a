package graphrt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/value"
)

func TestEvalOscillator_SinAtQuarterPeriod(t *testing.T) {
	n := nodeSlot{spec: NodeSpec{Kind: KindOscSin, Params: map[string]value.Value{"frequency": value.Float32(1)}}}
	out, _, err := evalOscillator(&n, 0.25)
	require.NoError(t, err)
	require.InDelta(t, 1.0, out["out"].Float, 1e-5)
}

func TestEvalOscillator_SquareSwitchesAtHalfPeriod(t *testing.T) {
	n := nodeSlot{spec: NodeSpec{Kind: KindOscSquare, Params: map[string]value.Value{"frequency": value.Float32(1)}}}
	out, _, err := evalOscillator(&n, 0.1)
	require.NoError(t, err)
	require.Equal(t, float32(1), out["out"].Float)

	out, _, err = evalOscillator(&n, 0.6)
	require.NoError(t, err)
	require.Equal(t, float32(-1), out["out"].Float)
}

func TestEvalOscillator_AmplitudeAndOffset(t *testing.T) {
	n := nodeSlot{spec: NodeSpec{Kind: KindOscSaw, Params: map[string]value.Value{
		"frequency": value.Float32(1), "amplitude": value.Float32(2), "offset": value.Float32(1),
	}}}
	out, _, err := evalOscillator(&n, 0)
	require.NoError(t, err)
	require.InDelta(t, -1, out["out"].Float, 1e-6)
}
