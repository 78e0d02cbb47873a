package value

// Shape carries structural metadata describing a Value's kind and, where
// applicable, the extra detail needed to validate a write or a node's
// declared output (specification §3): a length hint for Vector, a field
// schema for Record, an element shape for Array/List/Tuple.
type Shape struct {
	ID   ShapeId
	Meta map[string]string
}

// ShapeId mirrors the Value Kind space with id-specific fields attached.
type ShapeId struct {
	Kind Kind

	// VectorLength is a length hint for KindVector shapes. Nil means
	// "any length".
	VectorLength *int

	// Fields describes a KindRecord shape's expected field set, by name.
	// A nil map means "unconstrained" (any fields accepted).
	Fields map[string]Shape

	// Element describes the element shape of KindArray/KindList/KindTuple.
	// Nil means "unconstrained".
	Element *Shape

	// ArrayLength is a length hint for KindArray/KindTuple shapes.
	ArrayLength *int
}

// Simple returns a Shape with no extra metadata for a scalar-like kind
// (anything other than Vector/Record/Array/List/Tuple).
func Simple(k Kind) Shape {
	return Shape{ID: ShapeId{Kind: k}}
}

// VectorShape returns a Shape for KindVector with an optional length hint
// (pass -1 for "any length").
func VectorShape(length int) Shape {
	id := ShapeId{Kind: KindVector}
	if length >= 0 {
		l := length
		id.VectorLength = &l
	}
	return Shape{ID: id}
}

// RecordShape returns a Shape for KindRecord with the given field schema.
func RecordShape(fields map[string]Shape) Shape {
	return Shape{ID: ShapeId{Kind: KindRecord, Fields: fields}}
}

// ArrayShape returns a Shape for KindArray with a fixed length and
// element shape.
func ArrayShape(length int, element Shape) Shape {
	l := length
	return Shape{ID: ShapeId{Kind: KindArray, ArrayLength: &l, Element: &element}}
}

// Matches reports whether v's runtime shape is compatible with s. A nil
// length/field/element constraint matches anything of the right Kind —
// this is used both for node output-shape validation (ShapeError on
// mismatch, specification §4.2) and for WriteOp shape inference.
func (s Shape) Matches(v Value) bool {
	if s.ID.Kind != v.Kind {
		return false
	}
	switch v.Kind {
	case KindVector:
		return s.ID.VectorLength == nil || *s.ID.VectorLength == len(v.Vector)
	case KindRecord:
		if s.ID.Fields == nil {
			return true
		}
		if v.Record == nil {
			return false
		}
		for name, fieldShape := range s.ID.Fields {
			fv, ok := v.Record.Get(name)
			if !ok || !fieldShape.Matches(fv) {
				return false
			}
		}
		return true
	case KindArray, KindList, KindTuple:
		elems := sliceOf(v)
		if s.ID.ArrayLength != nil && *s.ID.ArrayLength != len(elems) {
			return false
		}
		if s.ID.Element == nil {
			return true
		}
		for _, e := range elems {
			if !s.ID.Element.Matches(e) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func sliceOf(v Value) []Value {
	switch v.Kind {
	case KindArray:
		return v.Array
	case KindList:
		return v.List
	case KindTuple:
		return v.Tuple
	default:
		return nil
	}
}

// ShapeOf infers the natural Shape of v (the shape a producer would
// declare if it didn't declare one explicitly). Used when a WriteOp omits
// its Shape.
func ShapeOf(v Value) Shape {
	switch v.Kind {
	case KindVector:
		return VectorShape(len(v.Vector))
	case KindRecord:
		if v.Record == nil {
			return RecordShape(nil)
		}
		fields := make(map[string]Shape, len(v.Record.Fields))
		for _, f := range v.Record.Fields {
			fields[f.Name] = ShapeOf(f.Value)
		}
		return RecordShape(fields)
	case KindArray, KindList, KindTuple:
		elems := sliceOf(v)
		var elemShape Shape
		if len(elems) > 0 {
			elemShape = ShapeOf(elems[0])
		}
		id := ShapeId{Kind: v.Kind, Element: &elemShape}
		if v.Kind != KindList {
			n := len(elems)
			id.ArrayLength = &n
		}
		return Shape{ID: id}
	default:
		return Simple(v.Kind)
	}
}
