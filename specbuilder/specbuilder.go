// Package specbuilder provides deterministic, functional-option fixture
// constructors for graphrt.GraphSpec and anim.StoredAnimation, used by
// tests.
//
// It is not part of the core engine surface — it mirrors the teacher's
// builder package (Constructor/BuildGraph) for this module's own domain:
// a GraphConstructor/BuildGraph pair assembles a GraphSpec node by node,
// an AnimConstructor/BuildAnimation pair assembles a StoredAnimation
// track by track, and both apply their constructors in call order so the
// same constructor list always produces the same fixture.
package specbuilder

import (
	"fmt"

	"github.com/vizij-ai/vizij-go/anim"
	"github.com/vizij-ai/vizij-go/graphrt"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
)

// ErrNilConstructor is wrapped into any error returned when a nil
// GraphConstructor or AnimConstructor is passed to a Build call.
var ErrNilConstructor = fmt.Errorf("specbuilder: nil constructor")

// GraphConstructor appends one or more nodes to spec. Constructors must
// not remove or reorder nodes already present, so callers may freely
// compose several in one BuildGraph call.
type GraphConstructor func(spec *graphrt.GraphSpec) error

// BuildGraph assembles a GraphSpec by applying every constructor in
// order, starting from an empty node list. Any constructor error is
// wrapped with the call's index and returned immediately.
func BuildGraph(cons ...GraphConstructor) (graphrt.GraphSpec, error) {
	spec := graphrt.GraphSpec{}
	for i, fn := range cons {
		if fn == nil {
			return graphrt.GraphSpec{}, fmt.Errorf("BuildGraph: constructor %d: %w", i, ErrNilConstructor)
		}
		if err := fn(&spec); err != nil {
			return graphrt.GraphSpec{}, fmt.Errorf("BuildGraph: constructor %d: %w", i, err)
		}
	}
	return spec, nil
}

// Node appends one fully-specified node verbatim. Every other factory in
// this file is a thin convenience wrapper around Node.
func Node(n graphrt.NodeSpec) GraphConstructor {
	return func(spec *graphrt.GraphSpec) error {
		spec.Nodes = append(spec.Nodes, n)
		return nil
	}
}

// InputOutput builds the two-node Input(inPath) -> Output(outPath)
// passthrough pipeline.
func InputOutput(inID, outID graphrt.NodeId, inPath, outPath string) GraphConstructor {
	return func(spec *graphrt.GraphSpec) error {
		spec.Nodes = append(spec.Nodes,
			graphrt.NodeSpec{Id: inID, Kind: graphrt.KindInput, Params: map[string]value.Value{"path": value.TextValue(inPath)}},
			graphrt.NodeSpec{Id: outID, Kind: graphrt.KindOutput,
				Inputs: map[string]graphrt.InputConnection{"in": {Node: inID, Port: "out"}},
				Params: map[string]value.Value{"path": value.TextValue(outPath)}},
		)
		return nil
	}
}

// BinaryOp appends a two-input arithmetic/comparison/logic node of kind
// that reads its "a"/"b" ports from (lhs, lhsPort) and (rhs, rhsPort).
func BinaryOp(id graphrt.NodeId, kind graphrt.NodeKind, lhs graphrt.NodeId, lhsPort string, rhs graphrt.NodeId, rhsPort string) GraphConstructor {
	return func(spec *graphrt.GraphSpec) error {
		spec.Nodes = append(spec.Nodes, graphrt.NodeSpec{
			Id:   id,
			Kind: kind,
			Inputs: map[string]graphrt.InputConnection{
				"a": {Node: lhs, Port: lhsPort},
				"b": {Node: rhs, Port: rhsPort},
			},
		})
		return nil
	}
}

// ConstantNode appends a Constant node producing v on its "out" port.
func ConstantNode(id graphrt.NodeId, v value.Value) GraphConstructor {
	return Node(graphrt.NodeSpec{Id: id, Kind: graphrt.KindConstant, Params: map[string]value.Value{"value": v}})
}

// AnimConstructor appends a track (or otherwise mutates) to a
// StoredAnimation under construction.
type AnimConstructor func(a *anim.StoredAnimation) error

// BuildAnimation assembles a StoredAnimation named name with the given
// duration by applying every constructor in order.
func BuildAnimation(name string, durationMs float64, cons ...AnimConstructor) (anim.StoredAnimation, error) {
	a := anim.StoredAnimation{Name: name, DurationMs: durationMs}
	for i, fn := range cons {
		if fn == nil {
			return anim.StoredAnimation{}, fmt.Errorf("BuildAnimation: constructor %d: %w", i, ErrNilConstructor)
		}
		if err := fn(&a); err != nil {
			return anim.StoredAnimation{}, fmt.Errorf("BuildAnimation: constructor %d: %w", i, err)
		}
	}
	return a, nil
}

// LinearRamp appends a two-keypoint track on target going from 'from' at
// stamp 0 to 'to' at stamp 1, the minimal fixture for exercising
// interpolation/crossing/derivative logic.
func LinearRamp(trackID string, target path.TypedPath, from, to value.Value) AnimConstructor {
	return func(a *anim.StoredAnimation) error {
		a.Tracks = append(a.Tracks, anim.StoredTrack{
			ID:           trackID,
			AnimatableID: target,
			Points: []anim.StoredKeypoint{
				{ID: trackID + "-k0", Stamp: 0, Value: from},
				{ID: trackID + "-k1", Stamp: 1, Value: to},
			},
		})
		return nil
	}
}

// Keyframes appends a track with exactly the given (stamp, value) pairs,
// for fixtures that need more than a two-point ramp (e.g. a keypoint
// crossing mid-track).
func Keyframes(trackID string, target path.TypedPath, points ...anim.StoredKeypoint) AnimConstructor {
	return func(a *anim.StoredAnimation) error {
		a.Tracks = append(a.Tracks, anim.StoredTrack{ID: trackID, AnimatableID: target, Points: points})
		return nil
	}
}
