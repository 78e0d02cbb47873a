package graphrt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/value"
)

func TestEvalCompose_SplitExplodesRecordFields(t *testing.T) {
	rec := value.RecordFromValue(value.NewRecord(
		value.RecordField{Name: "x", Value: value.Float32(1)},
		value.RecordField{Name: "y", Value: value.Float32(2)},
	))
	out, _, err := evalNode(&GraphRuntime{}, &nodeSlot{spec: NodeSpec{Kind: KindSplit}}, map[string]value.Value{"in": rec}, &NodeState{})
	require.NoError(t, err)
	require.Equal(t, float32(1), out["x"].Float)
	require.Equal(t, float32(2), out["y"].Float)
}

func TestEvalCompose_JoinOrdersByDeclaredFields(t *testing.T) {
	n := NodeSpec{Kind: KindJoin, Params: map[string]value.Value{
		"fields": value.TupleValue([]value.Value{value.TextValue("x"), value.TextValue("y")}),
	}}
	out, _, err := evalNode(&GraphRuntime{}, &nodeSlot{spec: n}, map[string]value.Value{
		"x": value.Float32(1), "y": value.Float32(2),
	}, &NodeState{})
	require.NoError(t, err)
	rec := out["out"]
	require.Equal(t, value.KindRecord, rec.Kind)
	require.Equal(t, "x", rec.Record.Fields[0].Name)
	require.Equal(t, "y", rec.Record.Fields[1].Name)
}

func TestEvalCompose_SplitRequiresRecord(t *testing.T) {
	_, _, err := evalNode(&GraphRuntime{}, &nodeSlot{spec: NodeSpec{Kind: KindSplit}}, map[string]value.Value{"in": value.Float32(1)}, &NodeState{})
	require.Error(t, err)
}
