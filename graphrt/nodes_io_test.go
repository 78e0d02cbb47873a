package graphrt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/config"
	"github.com/vizij-ai/vizij-go/value"
)

func TestEvalConstant_ReturnsParamValue(t *testing.T) {
	out := evalOneShot(t, NodeSpec{Kind: KindConstant, Params: map[string]value.Value{"value": value.Float32(42)}}, nil)
	require.Equal(t, float32(42), out.Float)
}

func TestEvalOutput_PassthroughAndSinkWrite(t *testing.T) {
	r := New(config.New())
	p := mustPath(t, "ns/a.value")
	slot := &nodeSlot{spec: NodeSpec{Kind: KindOutput, Params: map[string]value.Value{"path": value.TextValue(p.String())}}}
	out, write, err := evalNode(r, slot, map[string]value.Value{"in": value.Float32(3)}, &NodeState{})
	require.NoError(t, err)
	require.Equal(t, float32(3), out["out"].Float)
	require.NotNil(t, write)
	require.True(t, write.Path.Equal(p))
}

func TestEvalOutput_NoPathIsPassthroughNoOpNotError(t *testing.T) {
	r := New(config.New())
	slot := &nodeSlot{spec: NodeSpec{Kind: KindOutput}}
	out, write, err := evalNode(r, slot, map[string]value.Value{"in": value.Float32(3)}, &NodeState{})
	require.NoError(t, err)
	require.Equal(t, float32(3), out["out"].Float)
	require.Nil(t, write)
}

func TestEvalInput_MissingNonNumericDeclaredShapeErrors(t *testing.T) {
	r := New(config.New())
	p := mustPath(t, "ns/missing.value")
	slot := &nodeSlot{spec: NodeSpec{
		Kind:         KindInput,
		Params:       map[string]value.Value{"path": value.TextValue(p.String())},
		OutputShapes: map[string]value.Shape{"out": value.Simple(value.KindText)},
	}}
	_, _, err := evalNode(r, slot, nil, &NodeState{})
	require.Error(t, err)
}
