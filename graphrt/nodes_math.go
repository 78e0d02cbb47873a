package graphrt

import (
	"math"

	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// evalMath implements the unary trig/Abs family and the binary Clamp/Min/Max
// family, elementwise over vector-like operands with scalar broadcast
// (specification §4.2).
func evalMath(slot *nodeSlot, in map[string]value.Value) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	a := inputOr(in, "a", value.Float32(0))

	switch slot.spec.Kind {
	case KindSin:
		return mapUnary(a, func(x float32) float32 { return float32(math.Sin(float64(x))) }), nil, nil
	case KindCos:
		return mapUnary(a, func(x float32) float32 { return float32(math.Cos(float64(x))) }), nil, nil
	case KindTan:
		return mapUnary(a, func(x float32) float32 { return float32(math.Tan(float64(x))) }), nil, nil
	case KindAbs:
		return mapUnary(a, func(x float32) float32 {
			if x < 0 {
				return -x
			}
			return x
		}), nil, nil
	case KindClamp:
		lo := paramOr(slot, "min", value.Float32(0)).Float
		hi := paramOr(slot, "max", value.Float32(1)).Float
		return mapUnary(a, func(x float32) float32 {
			if x < lo {
				return lo
			}
			if x > hi {
				return hi
			}
			return x
		}), nil, nil
	case KindMin, KindMax:
		b := inputOr(in, "b", a)
		if !value.CanBroadcastTogether(a, b) {
			return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: operands of kind %s and %s cannot be combined", slot.spec.Id, a.Kind, b.Kind)
		}
		if a.Kind == value.KindFloat && b.Kind != value.KindFloat {
			a = value.Broadcast(a, b)
		} else if b.Kind == value.KindFloat && a.Kind != value.KindFloat {
			b = value.Broadcast(b, a)
		}
		fn := minFn
		if slot.spec.Kind == KindMax {
			fn = maxFn
		}
		out, err := elementwise2(a, b, fn)
		if err != nil {
			return nil, nil, vzerr.New(vzerr.KindShapeError, op, err)
		}
		return map[string]value.Value{"out": out}, nil, nil
	default:
		return nil, nil, vzerr.Newf(vzerr.KindUnknownNodeKind, op, "node %q: unexpected math kind", slot.spec.Id)
	}
}

func minFn(x, y float32) float32 {
	if x < y {
		return x
	}
	return y
}

func maxFn(x, y float32) float32 {
	if x > y {
		return x
	}
	return y
}

func mapUnary(v value.Value, fn func(float32) float32) map[string]value.Value {
	var out value.Value
	switch v.Kind {
	case value.KindFloat:
		out = value.Float32(fn(v.Float))
	case value.KindVec2:
		out = value.Vec2Value(fn(v.Vec2[0]), fn(v.Vec2[1]))
	case value.KindVec3:
		out = value.Vec3Value(fn(v.Vec3[0]), fn(v.Vec3[1]), fn(v.Vec3[2]))
	case value.KindVec4:
		out = value.Vec4Value(fn(v.Vec4[0]), fn(v.Vec4[1]), fn(v.Vec4[2]), fn(v.Vec4[3]))
	case value.KindColorRgba:
		out = value.ColorValue(fn(v.Color[0]), fn(v.Color[1]), fn(v.Color[2]), fn(v.Color[3]))
	case value.KindVector:
		xs := make([]float32, len(v.Vector))
		for i, x := range v.Vector {
			xs[i] = fn(x)
		}
		out = value.VectorValue(xs)
	default:
		out = v
	}
	return map[string]value.Value{"out": out}
}
