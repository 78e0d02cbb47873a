package value

// NaNOfShape builds the "missing numeric" placeholder for s: every finite
// component of the natural zero value is replaced with NaN, so a consumer
// that forgets to check for it gets conspicuously wrong numbers instead of
// silently-plausible zeros. Non-numeric kinds (Text, Bool, Record, ...)
// have no NaN representation and fall back to their zero value; the graph
// selector fallback does not call this function for such shapes (it
// returns a SelectorError instead).
func NaNOfShape(s Shape) Value {
	switch s.ID.Kind {
	case KindFloat:
		return Float32(NaNFloat32)
	case KindVec2:
		return Vec2Value(NaNFloat32, NaNFloat32)
	case KindVec3:
		return Vec3Value(NaNFloat32, NaNFloat32, NaNFloat32)
	case KindVec4:
		return Vec4Value(NaNFloat32, NaNFloat32, NaNFloat32, NaNFloat32)
	case KindQuat:
		return QuatValue(NaNFloat32, NaNFloat32, NaNFloat32, NaNFloat32)
	case KindColorRgba:
		return ColorValue(NaNFloat32, NaNFloat32, NaNFloat32, NaNFloat32)
	case KindVector:
		n := 0
		if s.ID.VectorLength != nil {
			n = *s.ID.VectorLength
		}
		xs := make([]float32, n)
		for i := range xs {
			xs[i] = NaNFloat32
		}
		return VectorValue(xs)
	case KindTransform:
		nan3 := [3]float32{NaNFloat32, NaNFloat32, NaNFloat32}
		nan4 := [4]float32{NaNFloat32, NaNFloat32, NaNFloat32, NaNFloat32}
		return TransformFromParts(nan3, nan4, nan3)
	case KindRecord:
		if s.ID.Fields == nil {
			return RecordFromValue(NewRecord())
		}
		fields := make([]RecordField, 0, len(s.ID.Fields))
		for name, fieldShape := range s.ID.Fields {
			fields = append(fields, RecordField{Name: name, Value: NaNOfShape(fieldShape)})
		}
		return RecordFromValue(NewRecord(fields...))
	case KindArray, KindTuple:
		n := 0
		if s.ID.ArrayLength != nil {
			n = *s.ID.ArrayLength
		}
		elems := make([]Value, n)
		for i := range elems {
			if s.ID.Element != nil {
				elems[i] = NaNOfShape(*s.ID.Element)
			}
		}
		if s.ID.Kind == KindTuple {
			return TupleValue(elems)
		}
		return ArrayValue(elems)
	case KindList:
		return ListValue(nil)
	default:
		return Value{Kind: s.ID.Kind}
	}
}

// Broadcast widens a scalar Float into the shape of like so arithmetic and
// comparison nodes can mix a bare scalar with a vector-like operand
// (specification §4.2's arithmetic node family). Non-Float scalars and
// shape mismatches are returned unchanged — callers are expected to have
// already rejected those combinations as a StrictParamError.
func Broadcast(scalar Value, like Value) Value {
	if scalar.Kind != KindFloat {
		return scalar
	}
	f := scalar.Float
	switch like.Kind {
	case KindVec2:
		return Vec2Value(f, f)
	case KindVec3:
		return Vec3Value(f, f, f)
	case KindVec4:
		return Vec4Value(f, f, f, f)
	case KindColorRgba:
		return ColorValue(f, f, f, f)
	case KindVector:
		xs := make([]float32, len(like.Vector))
		for i := range xs {
			xs[i] = f
		}
		return VectorValue(xs)
	default:
		return scalar
	}
}

// CanBroadcastTogether reports whether a and b can be combined by an
// elementwise arithmetic/comparison node once scalar broadcast is applied:
// same kind, or exactly one side is a bare Float.
func CanBroadcastTogether(a, b Value) bool {
	if a.Kind == b.Kind {
		if a.Kind == KindVector {
			return len(a.Vector) == len(b.Vector)
		}
		return true
	}
	return a.Kind == KindFloat || b.Kind == KindFloat
}
