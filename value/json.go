package value

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the canonical wire shape every Value serializes to:
// {"type": "<kind>", "data": <payload>}.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON writes v in the canonical envelope form.
func (v Value) MarshalJSON() ([]byte, error) {
	data, err := v.marshalData()
	if err != nil {
		return nil, fmt.Errorf("value: marshal %s: %w", v.Kind, err)
	}
	return json.Marshal(envelope{Type: v.Kind.String(), Data: data})
}

func (v Value) marshalData() (json.RawMessage, error) {
	switch v.Kind {
	case KindFloat:
		return json.Marshal(v.Float)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindText:
		return json.Marshal(v.Text)
	case KindVec2:
		return json.Marshal(v.Vec2)
	case KindVec3:
		return json.Marshal(v.Vec3)
	case KindVec4:
		return json.Marshal(v.Vec4)
	case KindQuat:
		return json.Marshal(v.Quat)
	case KindColorRgba:
		return json.Marshal(v.Color)
	case KindVector:
		if v.Vector == nil {
			return json.Marshal([]float32{})
		}
		return json.Marshal(v.Vector)
	case KindTransform:
		return marshalTransform(v.Transform)
	case KindRecord:
		return marshalRecord(v.Record)
	case KindEnum:
		return marshalEnum(v.Enum)
	case KindArray:
		return marshalValueSlice(v.Array)
	case KindList:
		return marshalValueSlice(v.List)
	case KindTuple:
		return marshalValueSlice(v.Tuple)
	default:
		return nil, fmt.Errorf("unknown kind %d", v.Kind)
	}
}

func marshalTransform(t *TransformValue) (json.RawMessage, error) {
	if t == nil {
		t = &TransformValue{}
	}
	return json.Marshal(struct {
		Translation [3]float32 `json:"translation"`
		Rotation    [4]float32 `json:"rotation"`
		Scale       [3]float32 `json:"scale"`
	}{t.Translation, t.Rotation, t.Scale})
}

// marshalRecord writes fields as a JSON object in insertion order.
// encoding/json would otherwise alphabetize map keys, which would violate
// the "insertion order preserved" invariant of specification §3 — so the
// object is assembled by hand, one field at a time.
func marshalRecord(r *RecordValue) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r != nil {
		for i, f := range r.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(f.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			fv, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(fv)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalEnum(e *EnumValue) (json.RawMessage, error) {
	if e == nil {
		return json.Marshal(struct {
			Tag   string `json:"tag"`
			Inner Value  `json:"inner"`
		}{})
	}
	return json.Marshal(struct {
		Tag   string `json:"tag"`
		Inner Value  `json:"inner"`
	}{e.Tag, e.Inner})
}

func marshalValueSlice(vs []Value) (json.RawMessage, error) {
	if vs == nil {
		return json.Marshal([]Value{})
	}
	return json.Marshal(vs)
}

// UnmarshalJSON parses the canonical envelope form. Callers that may
// receive legacy shorthand forms should run Normalize first.
func (v *Value) UnmarshalJSON(b []byte) error {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	kind, ok := ParseKind(env.Type)
	if !ok {
		return fmt.Errorf("value: unknown type %q", env.Type)
	}
	out, err := unmarshalData(kind, env.Data)
	if err != nil {
		return fmt.Errorf("value: %s: %w", env.Type, err)
	}
	*v = out
	return nil
}

func unmarshalData(kind Kind, data json.RawMessage) (Value, error) {
	switch kind {
	case KindFloat:
		var f float32
		if err := json.Unmarshal(data, &f); err != nil {
			return Value{}, err
		}
		return Float32(f), nil
	case KindBool:
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil
	case KindText:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return Value{}, err
		}
		return TextValue(s), nil
	case KindVec2:
		var a [2]float32
		if err := unmarshalFixed(data, a[:]); err != nil {
			return Value{}, err
		}
		return Vec2Value(a[0], a[1]), nil
	case KindVec3:
		var a [3]float32
		if err := unmarshalFixed(data, a[:]); err != nil {
			return Value{}, err
		}
		return Vec3Value(a[0], a[1], a[2]), nil
	case KindVec4:
		var a [4]float32
		if err := unmarshalFixed(data, a[:]); err != nil {
			return Value{}, err
		}
		return Vec4Value(a[0], a[1], a[2], a[3]), nil
	case KindQuat:
		var a [4]float32
		if err := unmarshalFixed(data, a[:]); err != nil {
			return Value{}, err
		}
		return QuatValue(a[0], a[1], a[2], a[3]), nil
	case KindColorRgba:
		var a [4]float32
		if err := unmarshalFixed(data, a[:]); err != nil {
			return Value{}, err
		}
		return ColorValue(a[0], a[1], a[2], a[3]), nil
	case KindVector:
		var xs []float32
		if err := json.Unmarshal(data, &xs); err != nil {
			return Value{}, err
		}
		return VectorValue(xs), nil
	case KindTransform:
		return unmarshalTransform(data)
	case KindRecord:
		return unmarshalRecord(data)
	case KindEnum:
		return unmarshalEnum(data)
	case KindArray:
		elems, err := unmarshalValueSlice(data)
		if err != nil {
			return Value{}, err
		}
		return ArrayValue(elems), nil
	case KindList:
		elems, err := unmarshalValueSlice(data)
		if err != nil {
			return Value{}, err
		}
		return ListValue(elems), nil
	case KindTuple:
		elems, err := unmarshalValueSlice(data)
		if err != nil {
			return Value{}, err
		}
		return TupleValue(elems), nil
	default:
		return Value{}, fmt.Errorf("unsupported kind %d", kind)
	}
}

func unmarshalFixed(data json.RawMessage, dst []float32) error {
	var xs []float32
	if err := json.Unmarshal(data, &xs); err != nil {
		return err
	}
	if len(xs) != len(dst) {
		return fmt.Errorf("expected %d components, got %d", len(dst), len(xs))
	}
	copy(dst, xs)
	return nil
}

func unmarshalTransform(data json.RawMessage) (Value, error) {
	var raw struct {
		Translation [3]float32 `json:"translation"`
		Rotation    [4]float32 `json:"rotation"`
		Scale       [3]float32 `json:"scale"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, err
	}
	return TransformFromParts(raw.Translation, raw.Rotation, raw.Scale), nil
}

// unmarshalRecord reads an object's keys in stream order via json.Decoder
// token scanning, since encoding/json gives no order guarantee once values
// land in a map[string]any.
func unmarshalRecord(data json.RawMessage) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Value{}, fmt.Errorf("expected object, got %v", tok)
	}

	var fields []RecordField
	seen := make(map[string]bool)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected string key, got %v", keyTok)
		}
		if seen[key] {
			return Value{}, fmt.Errorf("duplicate record field %q", key)
		}
		seen[key] = true

		var fv Value
		if err := dec.Decode(&fv); err != nil {
			return Value{}, fmt.Errorf("field %q: %w", key, err)
		}
		fields = append(fields, RecordField{Name: key, Value: fv})
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return Value{}, err
	}
	return RecordFromValue(NewRecord(fields...)), nil
}

func unmarshalEnum(data json.RawMessage) (Value, error) {
	var raw struct {
		Tag   string `json:"tag"`
		Inner Value  `json:"inner"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, err
	}
	return EnumFromValue(&EnumValue{Tag: raw.Tag, Inner: raw.Inner}), nil
}

func unmarshalValueSlice(data json.RawMessage) ([]Value, error) {
	var elems []Value
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, err
	}
	return elems, nil
}

// --- Shape JSON ---

type shapeEnvelope struct {
	ID   string            `json:"id"`
	Meta map[string]string `json:"meta,omitempty"`

	VectorLength *int              `json:"length,omitempty"`
	Fields       map[string]Shape  `json:"fields,omitempty"`
	Element      *Shape            `json:"element,omitempty"`
	ArrayLength  *int              `json:"array_length,omitempty"`
}

// MarshalJSON writes s as {"id": <ShapeIdName>, "meta"?: ..., <id-specific fields>}.
func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(shapeEnvelope{
		ID:           s.ID.Kind.String(),
		Meta:         s.Meta,
		VectorLength: s.ID.VectorLength,
		Fields:       s.ID.Fields,
		Element:      s.ID.Element,
		ArrayLength:  s.ID.ArrayLength,
	})
}

// UnmarshalJSON parses the Shape envelope form.
func (s *Shape) UnmarshalJSON(b []byte) error {
	var env shapeEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("shape: %w", err)
	}
	kind, ok := ParseKind(env.ID)
	if !ok {
		return fmt.Errorf("shape: unknown id %q", env.ID)
	}
	*s = Shape{
		ID: ShapeId{
			Kind:         kind,
			VectorLength: env.VectorLength,
			Fields:       env.Fields,
			Element:      env.Element,
			ArrayLength:  env.ArrayLength,
		},
		Meta: env.Meta,
	}
	return nil
}
