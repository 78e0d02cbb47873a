package specbuilder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/config"
	"github.com/vizij-ai/vizij-go/graphrt"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
)

func TestBuildGraph_InputOutputLoadsAndEvaluates(t *testing.T) {
	spec, err := BuildGraph(InputOutput("in", "out", "in/a", "out/b"))
	require.NoError(t, err)
	require.Len(t, spec.Nodes, 2)

	rt := graphrt.New(config.New())
	require.NoError(t, rt.LoadGraph(spec, graphrt.Flags{}))

	p, err := path.Parse("in/a")
	require.NoError(t, err)
	rt.SetInput(p, value.Float32(4), nil)
	rt.AdvanceEpoch()

	res, err := rt.EvalAll()
	require.NoError(t, err)
	require.Equal(t, 1, res.Writes.Len())
	require.Equal(t, float32(4), res.Writes.At(0).Value.Float)
}

func TestBuildGraph_NilConstructorErrors(t *testing.T) {
	_, err := BuildGraph(nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNilConstructor)
}

func TestBuildGraph_BinaryOpComposesWithConstants(t *testing.T) {
	spec, err := BuildGraph(
		ConstantNode("c1", value.Float32(2)),
		ConstantNode("c2", value.Float32(3)),
		BinaryOp("sum", graphrt.KindAdd, "c1", "out", "c2", "out"),
		Node(graphrt.NodeSpec{
			Id:     "out",
			Kind:   graphrt.KindOutput,
			Inputs: map[string]graphrt.InputConnection{"in": {Node: "sum", Port: "out"}},
			Params: map[string]value.Value{"path": value.TextValue("sum/result")},
		}),
	)
	require.NoError(t, err)

	rt := graphrt.New(config.New())
	require.NoError(t, rt.LoadGraph(spec, graphrt.Flags{}))
	res, err := rt.EvalAll()
	require.NoError(t, err)
	require.Equal(t, 1, res.Writes.Len())
	require.Equal(t, float32(5), res.Writes.At(0).Value.Float)
}

func TestBuildAnimation_LinearRampProducesTwoKeypointTrack(t *testing.T) {
	target, err := path.Parse("ns/a.x")
	require.NoError(t, err)

	a, err := BuildAnimation("ramp", 1000, LinearRamp("t0", target, value.Float32(0), value.Float32(1)))
	require.NoError(t, err)
	require.Len(t, a.Tracks, 1)
	require.Len(t, a.Tracks[0].Points, 2)
	require.Equal(t, float32(0), a.Tracks[0].Points[0].Value.Float)
	require.Equal(t, float32(1), a.Tracks[0].Points[1].Value.Float)
}

func TestBuildAnimation_NilConstructorErrors(t *testing.T) {
	_, err := BuildAnimation("x", 1000, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNilConstructor)
}
