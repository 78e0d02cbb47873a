package graphrt

import (
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// evalArith implements Add/Sub/Multiply/Divide over two "a"/"b" inputs, a
// bare Float scalar broadcast against the other operand's shape
// (value.Broadcast, specification §4.2's arithmetic node family).
func evalArith(slot *nodeSlot, in map[string]value.Value) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	a := inputOr(in, "a", value.Float32(0))
	b := inputOr(in, "b", value.Float32(0))

	if !value.CanBroadcastTogether(a, b) {
		return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: operands of kind %s and %s cannot be combined", slot.spec.Id, a.Kind, b.Kind)
	}
	if a.Kind == value.KindFloat && b.Kind != value.KindFloat {
		a = value.Broadcast(a, b)
	} else if b.Kind == value.KindFloat && a.Kind != value.KindFloat {
		b = value.Broadcast(b, a)
	}

	var fn func(x, y float32) float32
	switch slot.spec.Kind {
	case KindAdd:
		fn = func(x, y float32) float32 { return x + y }
	case KindSub:
		fn = func(x, y float32) float32 { return x - y }
	case KindMultiply:
		fn = func(x, y float32) float32 { return x * y }
	case KindDivide:
		fn = func(x, y float32) float32 { return x / y }
	}

	out, err := elementwise2(a, b, fn)
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindShapeError, op, err)
	}
	return map[string]value.Value{"out": out}, nil, nil
}

func inputOr(in map[string]value.Value, key string, fallback value.Value) value.Value {
	if v, ok := in[key]; ok {
		return v
	}
	return fallback
}

// elementwise2 applies fn componentwise to two same-shape numeric Values.
func elementwise2(a, b value.Value, fn func(x, y float32) float32) (value.Value, error) {
	switch a.Kind {
	case value.KindFloat:
		return value.Float32(fn(a.Float, b.Float)), nil
	case value.KindVec2:
		return value.Vec2Value(fn(a.Vec2[0], b.Vec2[0]), fn(a.Vec2[1], b.Vec2[1])), nil
	case value.KindVec3:
		return value.Vec3Value(fn(a.Vec3[0], b.Vec3[0]), fn(a.Vec3[1], b.Vec3[1]), fn(a.Vec3[2], b.Vec3[2])), nil
	case value.KindVec4:
		return value.Vec4Value(fn(a.Vec4[0], b.Vec4[0]), fn(a.Vec4[1], b.Vec4[1]), fn(a.Vec4[2], b.Vec4[2]), fn(a.Vec4[3], b.Vec4[3])), nil
	case value.KindColorRgba:
		return value.ColorValue(fn(a.Color[0], b.Color[0]), fn(a.Color[1], b.Color[1]), fn(a.Color[2], b.Color[2]), fn(a.Color[3], b.Color[3])), nil
	case value.KindVector:
		if len(a.Vector) != len(b.Vector) {
			return value.Value{}, errShapeMismatch
		}
		xs := make([]float32, len(a.Vector))
		for i := range xs {
			xs[i] = fn(a.Vector[i], b.Vector[i])
		}
		return value.VectorValue(xs), nil
	default:
		return value.Value{}, errShapeMismatch
	}
}
