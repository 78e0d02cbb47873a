package graphrt

import (
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// evalCompare implements GreaterThan/LessThan/Equal over "a"/"b": a vector
// operand reduces to a single Bool, true only when every component
// satisfies the comparison (specification §4.2's "all-true" reduction).
func evalCompare(slot *nodeSlot, in map[string]value.Value) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	a := inputOr(in, "a", value.Float32(0))
	b := inputOr(in, "b", value.Float32(0))

	if !value.CanBroadcastTogether(a, b) {
		return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: operands of kind %s and %s cannot be compared", slot.spec.Id, a.Kind, b.Kind)
	}
	if a.Kind == value.KindFloat && b.Kind != value.KindFloat {
		a = value.Broadcast(a, b)
	} else if b.Kind == value.KindFloat && a.Kind != value.KindFloat {
		b = value.Broadcast(b, a)
	}

	var cmp func(x, y float32) bool
	switch slot.spec.Kind {
	case KindGreaterThan:
		cmp = func(x, y float32) bool { return x > y }
	case KindLessThan:
		cmp = func(x, y float32) bool { return x < y }
	case KindEqual:
		cmp = func(x, y float32) bool { return x == y }
	}

	xs, ys, err := componentPairs(a, b)
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindShapeError, op, err)
	}
	result := true
	for i := range xs {
		if !cmp(xs[i], ys[i]) {
			result = false
			break
		}
	}
	return map[string]value.Value{"out": value.BoolValue(result)}, nil, nil
}

// componentPairs flattens two same-shape numeric Values into parallel
// component slices for a reduction over all components.
func componentPairs(a, b value.Value) ([]float32, []float32, error) {
	switch a.Kind {
	case value.KindFloat:
		return []float32{a.Float}, []float32{b.Float}, nil
	case value.KindVec2:
		return a.Vec2[:], b.Vec2[:], nil
	case value.KindVec3:
		return a.Vec3[:], b.Vec3[:], nil
	case value.KindVec4:
		return a.Vec4[:], b.Vec4[:], nil
	case value.KindColorRgba:
		return a.Color[:], b.Color[:], nil
	case value.KindVector:
		if len(a.Vector) != len(b.Vector) {
			return nil, nil, errShapeMismatch
		}
		return a.Vector, b.Vector, nil
	default:
		return nil, nil, errShapeMismatch
	}
}
