package value

import (
	"fmt"
	"math"
)

// TransformValue is the payload of a KindTransform Value: translation,
// rotation (as a raw quaternion, x/y/z/w), and scale.
type TransformValue struct {
	Translation [3]float32
	Rotation    [4]float32
	Scale       [3]float32
}

// RecordField is one insertion-ordered (name, value) pair of a RecordValue.
type RecordField struct {
	Name  string
	Value Value
}

// RecordValue is an insertion-ordered mapping of field name to Value.
// Keys are unique; Get is O(1) via the companion index.
type RecordValue struct {
	Fields []RecordField
	index  map[string]int
}

// NewRecord builds a RecordValue from fields in the given order. Panics on
// duplicate names, mirroring the "keys unique" invariant of specification
// §3 — callers construct records from trusted code, not raw host input;
// raw JSON goes through UnmarshalJSON, which returns an error instead.
func NewRecord(fields ...RecordField) *RecordValue {
	r := &RecordValue{Fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		if _, dup := r.index[f.Name]; dup {
			panic(fmt.Sprintf("value: duplicate record field %q", f.Name))
		}
		r.index[f.Name] = i
	}
	return r
}

// Get returns the value stored under name and whether it was present.
func (r *RecordValue) Get(name string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	if r.index == nil {
		r.reindex()
	}
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.Fields[i].Value, true
}

func (r *RecordValue) reindex() {
	r.index = make(map[string]int, len(r.Fields))
	for i, f := range r.Fields {
		r.index[f.Name] = i
	}
}

// Clone returns a deep-enough copy of the record (field values are copied
// by value; nested Records/Arrays share the same cloning rules as Value).
func (r *RecordValue) Clone() *RecordValue {
	if r == nil {
		return nil
	}
	fields := make([]RecordField, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = RecordField{Name: f.Name, Value: f.Value.Clone()}
	}
	return NewRecord(fields...)
}

// EnumValue is a named tag carrying one inner Value.
type EnumValue struct {
	Tag   string
	Inner Value
}

// Value is the closed sum type shared by every subsystem. Exactly one
// field group is meaningful at a time, selected by Kind.
type Value struct {
	Kind Kind

	Float float32
	Bool  bool
	Text  string

	Vec2 [2]float32
	Vec3 [3]float32
	Vec4 [4]float32
	Quat [4]float32 // x, y, z, w
	Color [4]float32 // r, g, b, a

	Vector []float32

	Transform *TransformValue
	Record    *RecordValue
	Enum      *EnumValue

	Array []Value
	List  []Value
	Tuple []Value
}

// Float32 constructs a scalar Float value.
func Float32(f float32) Value { return Value{Kind: KindFloat, Float: f} }

// BoolValue constructs a Bool value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// TextValue constructs a Text value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// Vec2Value constructs a Vec2 value.
func Vec2Value(x, y float32) Value { return Value{Kind: KindVec2, Vec2: [2]float32{x, y}} }

// Vec3Value constructs a Vec3 value.
func Vec3Value(x, y, z float32) Value { return Value{Kind: KindVec3, Vec3: [3]float32{x, y, z}} }

// Vec4Value constructs a Vec4 value.
func Vec4Value(x, y, z, w float32) Value {
	return Value{Kind: KindVec4, Vec4: [4]float32{x, y, z, w}}
}

// QuatValue constructs a Quat value from raw (x, y, z, w) components. No
// renormalization is performed: the engine stores raw quaternions per
// specification §3 ("consumers MAY re-normalize; engine stores raw").
func QuatValue(x, y, z, w float32) Value { return Value{Kind: KindQuat, Quat: [4]float32{x, y, z, w}} }

// ColorValue constructs a ColorRgba value.
func ColorValue(r, g, b, a float32) Value {
	return Value{Kind: KindColorRgba, Color: [4]float32{r, g, b, a}}
}

// VectorValue constructs a Vector value, copying data so the caller's
// slice may be reused.
func VectorValue(data []float32) Value {
	cp := make([]float32, len(data))
	copy(cp, data)
	return Value{Kind: KindVector, Vector: cp}
}

// TransformFromParts constructs a Transform value.
func TransformFromParts(translation [3]float32, rotation [4]float32, scale [3]float32) Value {
	return Value{Kind: KindTransform, Transform: &TransformValue{
		Translation: translation, Rotation: rotation, Scale: scale,
	}}
}

// RecordFromValue wraps an existing *RecordValue.
func RecordFromValue(r *RecordValue) Value { return Value{Kind: KindRecord, Record: r} }

// EnumFromValue wraps an existing *EnumValue.
func EnumFromValue(e *EnumValue) Value { return Value{Kind: KindEnum, Enum: e} }

// ArrayValue constructs a fixed-length Array value.
func ArrayValue(elems []Value) Value { return Value{Kind: KindArray, Array: append([]Value(nil), elems...)} }

// ListValue constructs a variable-length List value.
func ListValue(elems []Value) Value { return Value{Kind: KindList, List: append([]Value(nil), elems...)} }

// TupleValue constructs a fixed-length heterogeneous Tuple value.
func TupleValue(elems []Value) Value { return Value{Kind: KindTuple, Tuple: append([]Value(nil), elems...)} }

// NaNFloat32 is the sentinel "missing numeric" placeholder used by
// NaNOfShape and by callers constructing explicit NaN-of-shape values.
var NaNFloat32 = float32(math.NaN())

// IsFinite reports whether every numeric component of v is finite, per the
// Float/Vec*/Vector invariant of specification §3. NaN-of-shape
// placeholders are an explicit, documented exception: IsFinite reports
// false for them, by design — callers that need to distinguish "invalid"
// from "deliberate fallback" check shape/context, not this predicate.
func (v Value) IsFinite() bool {
	switch v.Kind {
	case KindFloat:
		return !math.IsNaN(float64(v.Float)) && !math.IsInf(float64(v.Float), 0)
	case KindVec2:
		return finiteAll(v.Vec2[:])
	case KindVec3:
		return finiteAll(v.Vec3[:])
	case KindVec4, KindQuat, KindColorRgba:
		return finiteAll(v.arr4())
	case KindVector:
		return finiteAll(v.Vector)
	case KindTransform:
		if v.Transform == nil {
			return false
		}
		return finiteAll(v.Transform.Translation[:]) &&
			finiteAll(v.Transform.Rotation[:]) &&
			finiteAll(v.Transform.Scale[:])
	default:
		return true
	}
}

func (v Value) arr4() []float32 {
	switch v.Kind {
	case KindVec4:
		return v.Vec4[:]
	case KindQuat:
		return v.Quat[:]
	case KindColorRgba:
		return v.Color[:]
	default:
		return nil
	}
}

func finiteAll(xs []float32) bool {
	for _, x := range xs {
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return false
		}
	}
	return true
}

// Clone returns a value with the same contents but no shared mutable
// storage (Vector/Array/List/Tuple slices, Record/Transform/Enum
// pointers) with its caller.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindVector:
		out := v
		out.Vector = append([]float32(nil), v.Vector...)
		return out
	case KindTransform:
		out := v
		if v.Transform != nil {
			t := *v.Transform
			out.Transform = &t
		}
		return out
	case KindRecord:
		out := v
		out.Record = v.Record.Clone()
		return out
	case KindEnum:
		out := v
		if v.Enum != nil {
			out.Enum = &EnumValue{Tag: v.Enum.Tag, Inner: v.Enum.Inner.Clone()}
		}
		return out
	case KindArray:
		return cloneSlice(v, v.Array, func(o Value, s []Value) Value { o.Array = s; return o })
	case KindList:
		return cloneSlice(v, v.List, func(o Value, s []Value) Value { o.List = s; return o })
	case KindTuple:
		return cloneSlice(v, v.Tuple, func(o Value, s []Value) Value { o.Tuple = s; return o })
	default:
		return v
	}
}

func cloneSlice(v Value, src []Value, assign func(Value, []Value) Value) Value {
	cp := make([]Value, len(src))
	for i, e := range src {
		cp[i] = e.Clone()
	}
	return assign(v, cp)
}

// Equal reports structural equality. NaN floats compare unequal to
// themselves, matching IEEE-754 semantics (and the JSON round-trip test
// in specification §8 excludes NaN-of-shape placeholders accordingly).
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindFloat:
		return v.Float == o.Float
	case KindBool:
		return v.Bool == o.Bool
	case KindText:
		return v.Text == o.Text
	case KindVec2:
		return v.Vec2 == o.Vec2
	case KindVec3:
		return v.Vec3 == o.Vec3
	case KindVec4:
		return v.Vec4 == o.Vec4
	case KindQuat:
		return v.Quat == o.Quat
	case KindColorRgba:
		return v.Color == o.Color
	case KindVector:
		return equalFloatSlices(v.Vector, o.Vector)
	case KindTransform:
		return equalTransform(v.Transform, o.Transform)
	case KindRecord:
		return equalRecord(v.Record, o.Record)
	case KindEnum:
		return equalEnum(v.Enum, o.Enum)
	case KindArray:
		return equalValueSlices(v.Array, o.Array)
	case KindList:
		return equalValueSlices(v.List, o.List)
	case KindTuple:
		return equalValueSlices(v.Tuple, o.Tuple)
	default:
		return false
	}
}

func equalFloatSlices(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalValueSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func equalTransform(a, b *TransformValue) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Translation == b.Translation && a.Rotation == b.Rotation && a.Scale == b.Scale
}

func equalRecord(a, b *RecordValue) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name || !a.Fields[i].Value.Equal(b.Fields[i].Value) {
			return false
		}
	}
	return true
}

func equalEnum(a, b *EnumValue) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Tag == b.Tag && a.Inner.Equal(b.Inner)
}
