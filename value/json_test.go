package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var out Value
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestValueJSONRoundTrip(t *testing.T) {
	cases := []Value{
		Float32(1.5),
		BoolValue(true),
		TextValue("hello"),
		Vec2Value(1, 2),
		Vec3Value(1, 2, 3),
		Vec4Value(1, 2, 3, 4),
		QuatValue(0, 0, 0, 1),
		ColorValue(0.1, 0.2, 0.3, 1),
		VectorValue([]float32{1, 2, 3, 4, 5}),
		TransformFromParts([3]float32{1, 2, 3}, [4]float32{0, 0, 0, 1}, [3]float32{1, 1, 1}),
		ArrayValue([]Value{Float32(1), Float32(2)}),
		ListValue([]Value{TextValue("a"), TextValue("b")}),
		TupleValue([]Value{Float32(1), TextValue("a")}),
		EnumFromValue(&EnumValue{Tag: "On", Inner: BoolValue(true)}),
	}
	for _, v := range cases {
		out := roundTrip(t, v)
		require.True(t, v.Equal(out), "round trip mismatch for kind %s", v.Kind)
	}
}

func TestValueJSONEnvelopeShape(t *testing.T) {
	b, err := json.Marshal(Float32(2.5))
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(b, &generic))
	require.Equal(t, "float", generic["type"])
	require.Equal(t, 2.5, generic["data"])
}

func TestRecordJSONPreservesFieldOrder(t *testing.T) {
	r := RecordFromValue(NewRecord(
		RecordField{Name: "z", Value: Float32(1)},
		RecordField{Name: "a", Value: Float32(2)},
		RecordField{Name: "m", Value: Float32(3)},
	))
	_, err := json.Marshal(r)
	require.NoError(t, err)

	out := roundTrip(t, r)
	require.Equal(t, "z", out.Record.Fields[0].Name)
	require.Equal(t, "a", out.Record.Fields[1].Name)
	require.Equal(t, "m", out.Record.Fields[2].Name)
}

func TestRecordJSONRejectsDuplicateKeys(t *testing.T) {
	raw := []byte(`{"type":"record","data":{"a":{"type":"float","data":1},"a":{"type":"float","data":2}}}`)
	var v Value
	err := json.Unmarshal(raw, &v)
	require.Error(t, err)
}

func TestShapeJSONRoundTrip(t *testing.T) {
	s := ArrayShape(2, Simple(KindFloat))
	b, err := json.Marshal(s)
	require.NoError(t, err)
	var out Shape
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, s.ID.Kind, out.ID.Kind)
	require.Equal(t, *s.ID.ArrayLength, *out.ID.ArrayLength)
}

func TestValueJSONUnknownTypeErrors(t *testing.T) {
	var v Value
	err := json.Unmarshal([]byte(`{"type":"bogus","data":1}`), &v)
	require.Error(t, err)
}
