package graphrt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/config"
	"github.com/vizij-ai/vizij-go/value"
)

func constNode(id NodeId, v float32) NodeSpec {
	return NodeSpec{Id: id, Kind: KindConstant, Params: map[string]value.Value{"value": value.Float32(v)}}
}

func TestLoadGraph_TopologicalOrderRespectsDependencies(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		constNode("c", 2),
		{
			Id:     "a",
			Kind:   KindAdd,
			Inputs: map[string]InputConnection{"a": {Node: "c", Port: "out"}, "b": {Node: "c", Port: "out"}},
		},
	}}
	r := New(config.New())
	require.NoError(t, r.LoadGraph(spec, Flags{}))

	cHandle, aHandle := r.idToHandle["c"], r.idToHandle["a"]
	var cPos, aPos int
	for i, h := range r.order {
		if h == cHandle {
			cPos = i
		}
		if h == aHandle {
			aPos = i
		}
	}
	require.Less(t, cPos, aPos)
}

func TestLoadGraph_CycleDetected(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{Id: "x", Kind: KindAdd, Inputs: map[string]InputConnection{"a": {Node: "y", Port: "out"}}},
		{Id: "y", Kind: KindAdd, Inputs: map[string]InputConnection{"a": {Node: "x", Port: "out"}}},
	}}
	r := New(config.New())
	err := r.LoadGraph(spec, Flags{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "cycle detected")
}

func TestLoadGraph_UnknownUpstreamNodeErrors(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{Id: "a", Kind: KindAdd, Inputs: map[string]InputConnection{"a": {Node: "missing", Port: "out"}}},
	}}
	r := New(config.New())
	err := r.LoadGraph(spec, Flags{})
	require.Error(t, err)
}

func TestLoadGraph_DuplicateNodeIdErrors(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{constNode("c", 1), constNode("c", 2)}}
	r := New(config.New())
	err := r.LoadGraph(spec, Flags{})
	require.Error(t, err)
}
