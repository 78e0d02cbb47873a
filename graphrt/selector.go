package graphrt

import (
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// applySelector projects v through segs in order (specification §4.2
// step 2a): Field(name) requires a Record, a Transform (fields
// "translation"/"rotation"/"scale"), or an Enum's inner value; Index(i)
// requires a Vec2/3/4, Quat, ColorRgba, Vector, Array, List, or Tuple and
// i in bounds. selectorNaNFallback controls what happens when the
// selector cannot apply to v: false returns a SelectorError (the default,
// specification §9's closed behavior); true substitutes a NaN-of-shape
// value of fallbackShape instead, provided fallbackShape is numeric-like
// (a non-numeric fallbackShape still yields a SelectorError). The flag is
// set at LoadGraph from graphrt.Flags.SelectorNaNFallback or
// config.Features.SelectorNaNFallback.
func applySelector(v value.Value, segs []SelectorSegment, selectorNaNFallback bool, fallbackShape value.Shape) (value.Value, error) {
	const op = "graphrt.EvalAll"
	cur := v
	for _, seg := range segs {
		next, ok := applySegment(cur, seg)
		if !ok {
			if selectorNaNFallback && fallbackShape.ID.Kind.IsNumericLike() {
				return value.NaNOfShape(fallbackShape), nil
			}
			return value.Value{}, vzerr.Newf(vzerr.KindSelectorError, op, "selector segment %+v does not apply to kind %s", seg, cur.Kind)
		}
		cur = next
	}
	return cur, nil
}

func applySegment(v value.Value, seg SelectorSegment) (value.Value, bool) {
	switch seg.Kind {
	case SegField:
		return applyFieldSegment(v, seg.Field)
	case SegIndex:
		return applyIndexSegment(v, seg.Index)
	default:
		return value.Value{}, false
	}
}

func applyFieldSegment(v value.Value, field string) (value.Value, bool) {
	switch v.Kind {
	case value.KindRecord:
		return v.Record.Get(field)
	case value.KindTransform:
		if v.Transform == nil {
			return value.Value{}, false
		}
		switch field {
		case "translation":
			t := v.Transform.Translation
			return value.Vec3Value(t[0], t[1], t[2]), true
		case "rotation":
			r := v.Transform.Rotation
			return value.QuatValue(r[0], r[1], r[2], r[3]), true
		case "scale":
			s := v.Transform.Scale
			return value.Vec3Value(s[0], s[1], s[2]), true
		default:
			return value.Value{}, false
		}
	case value.KindEnum:
		if v.Enum == nil || field != v.Enum.Tag {
			return value.Value{}, false
		}
		return v.Enum.Inner, true
	default:
		return value.Value{}, false
	}
}

func applyIndexSegment(v value.Value, i int) (value.Value, bool) {
	if i < 0 {
		return value.Value{}, false
	}
	switch v.Kind {
	case value.KindVec2:
		if i >= 2 {
			return value.Value{}, false
		}
		return value.Float32(v.Vec2[i]), true
	case value.KindVec3:
		if i >= 3 {
			return value.Value{}, false
		}
		return value.Float32(v.Vec3[i]), true
	case value.KindVec4:
		if i >= 4 {
			return value.Value{}, false
		}
		return value.Float32(v.Vec4[i]), true
	case value.KindQuat:
		if i >= 4 {
			return value.Value{}, false
		}
		return value.Float32(v.Quat[i]), true
	case value.KindColorRgba:
		if i >= 4 {
			return value.Value{}, false
		}
		return value.Float32(v.Color[i]), true
	case value.KindVector:
		if i >= len(v.Vector) {
			return value.Value{}, false
		}
		return value.Float32(v.Vector[i]), true
	case value.KindArray:
		if i >= len(v.Array) {
			return value.Value{}, false
		}
		return v.Array[i], true
	case value.KindList:
		if i >= len(v.List) {
			return value.Value{}, false
		}
		return v.List[i], true
	case value.KindTuple:
		if i >= len(v.Tuple) {
			return value.Value{}, false
		}
		return v.Tuple[i], true
	default:
		return value.Value{}, false
	}
}
