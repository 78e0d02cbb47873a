package graphrt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/value"
)

func TestEvalSpring_ZeroDtLeavesStateUnchanged(t *testing.T) {
	n := NodeSpec{Kind: KindSpring, Params: map[string]value.Value{
		"dt": value.Float32(0), "stiffness": value.Float32(100), "damping": value.Float32(10),
	}}
	st := &NodeState{}
	out, _, err := evalNode(&GraphRuntime{}, &nodeSlot{spec: n}, map[string]value.Value{"target": value.Float32(5)}, st)
	require.NoError(t, err)
	require.Equal(t, float32(0), out["out"].Float)
	require.Equal(t, float32(0), st.Velocity.Float)
}

func TestEvalSpring_StepsTowardTarget(t *testing.T) {
	n := NodeSpec{Kind: KindSpring, Params: map[string]value.Value{
		"dt": value.Float32(0.01), "stiffness": value.Float32(100), "damping": value.Float32(10),
	}}
	st := &NodeState{}
	var last float32
	for i := 0; i < 200; i++ {
		out, _, err := evalNode(&GraphRuntime{}, &nodeSlot{spec: n}, map[string]value.Value{"target": value.Float32(1)}, st)
		require.NoError(t, err)
		last = out["out"].Float
	}
	require.InDelta(t, 1.0, last, 0.05)
}

func TestEvalDamp_ConvergesTowardTarget(t *testing.T) {
	n := NodeSpec{Kind: KindDamp, Params: map[string]value.Value{"half_life": value.Float32(0.1), "dt": value.Float32(0.1)}}
	st := &NodeState{}
	var last float32
	for i := 0; i < 50; i++ {
		out, _, err := evalNode(&GraphRuntime{}, &nodeSlot{spec: n}, map[string]value.Value{"target": value.Float32(10)}, st)
		require.NoError(t, err)
		last = out["out"].Float
	}
	require.InDelta(t, 10.0, last, 0.5)
}

func TestEvalSlew_RateLimited(t *testing.T) {
	n := NodeSpec{Kind: KindSlew, Params: map[string]value.Value{"max_rate": value.Float32(1), "dt": value.Float32(0.1)}}
	st := &NodeState{}
	out, _, err := evalNode(&GraphRuntime{}, &nodeSlot{spec: n}, map[string]value.Value{"target": value.Float32(100)}, st)
	require.NoError(t, err)
	require.InDelta(t, 0.1, out["out"].Float, 1e-6)
}

func TestEvalSlew_ChainedConsecutiveStepsStayWithinRate(t *testing.T) {
	n := NodeSpec{Kind: KindSlew, Params: map[string]value.Value{"max_rate": value.Float32(1), "dt": value.Float32(0.05)}}
	st := &NodeState{}
	targets := []float32{-1, -1, 0, 0, 1, 1, 1}
	var prev float32
	for i, target := range targets {
		out, _, err := evalNode(&GraphRuntime{}, &nodeSlot{spec: n}, map[string]value.Value{"target": value.Float32(target)}, st)
		require.NoError(t, err)
		next := out["out"].Float
		if i > 0 {
			diff := next - prev
			if diff < 0 {
				diff = -diff
			}
			require.LessOrEqual(t, float64(diff), 1*0.05+1e-6)
		}
		prev = next
	}
}
