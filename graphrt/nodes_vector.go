package graphrt

import (
	"math"

	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// evalVectorOp implements VectorIndex/VectorLength/VectorDot/VectorCross/
// VectorNormalize (specification §4.2). It accepts Vec2/Vec3/Vec4/Vector
// operands interchangeably by flattening to a component slice.
func evalVectorOp(slot *nodeSlot, in map[string]value.Value) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	a := inputOr(in, "a", value.Float32(0))

	switch slot.spec.Kind {
	case KindVectorIndex:
		xs, ok := components(a)
		if !ok {
			return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: input is not vector-like", slot.spec.Id)
		}
		i := int(paramOr(slot, "index", value.Float32(0)).Float)
		if i < 0 || i >= len(xs) {
			return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: index %d out of bounds for length %d", slot.spec.Id, i, len(xs))
		}
		return map[string]value.Value{"out": value.Float32(xs[i])}, nil, nil

	case KindVectorLength:
		xs, ok := components(a)
		if !ok {
			return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: input is not vector-like", slot.spec.Id)
		}
		var sum float64
		for _, x := range xs {
			sum += float64(x) * float64(x)
		}
		return map[string]value.Value{"out": value.Float32(float32(math.Sqrt(sum)))}, nil, nil

	case KindVectorDot:
		b := inputOr(in, "b", a)
		xs, ok1 := components(a)
		ys, ok2 := components(b)
		if !ok1 || !ok2 || len(xs) != len(ys) {
			return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: operands are not same-length vectors", slot.spec.Id)
		}
		var sum float64
		for i := range xs {
			sum += float64(xs[i]) * float64(ys[i])
		}
		return map[string]value.Value{"out": value.Float32(float32(sum))}, nil, nil

	case KindVectorCross:
		b := inputOr(in, "b", a)
		if a.Kind != value.KindVec3 || b.Kind != value.KindVec3 {
			return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: cross product requires vec3 operands", slot.spec.Id)
		}
		cx := a.Vec3[1]*b.Vec3[2] - a.Vec3[2]*b.Vec3[1]
		cy := a.Vec3[2]*b.Vec3[0] - a.Vec3[0]*b.Vec3[2]
		cz := a.Vec3[0]*b.Vec3[1] - a.Vec3[1]*b.Vec3[0]
		return map[string]value.Value{"out": value.Vec3Value(cx, cy, cz)}, nil, nil

	case KindVectorNormalize:
		xs, ok := components(a)
		if !ok {
			return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: input is not vector-like", slot.spec.Id)
		}
		var sum float64
		for _, x := range xs {
			sum += float64(x) * float64(x)
		}
		length := math.Sqrt(sum)
		if length == 0 {
			return map[string]value.Value{"out": a}, nil, nil
		}
		return map[string]value.Value{"out": mapUnaryValue(a, func(x float32) float32 { return float32(float64(x) / length) })}, nil, nil

	default:
		return nil, nil, vzerr.Newf(vzerr.KindUnknownNodeKind, op, "node %q: unexpected vector kind", slot.spec.Id)
	}
}

// components flattens a vector-like Value to its raw float32 components.
func components(v value.Value) ([]float32, bool) {
	switch v.Kind {
	case value.KindVec2:
		return v.Vec2[:], true
	case value.KindVec3:
		return v.Vec3[:], true
	case value.KindVec4:
		return v.Vec4[:], true
	case value.KindQuat:
		return v.Quat[:], true
	case value.KindColorRgba:
		return v.Color[:], true
	case value.KindVector:
		return v.Vector, true
	default:
		return nil, false
	}
}
