package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShapeMatchesVectorLength(t *testing.T) {
	s := VectorShape(3)
	require.True(t, s.Matches(VectorValue([]float32{1, 2, 3})))
	require.False(t, s.Matches(VectorValue([]float32{1, 2})))

	any := VectorShape(-1)
	require.True(t, any.Matches(VectorValue([]float32{1, 2, 3, 4, 5})))
}

func TestShapeMatchesRecordFields(t *testing.T) {
	s := RecordShape(map[string]Shape{
		"x": Simple(KindFloat),
		"y": Simple(KindFloat),
	})
	ok := RecordFromValue(NewRecord(
		RecordField{Name: "x", Value: Float32(1)},
		RecordField{Name: "y", Value: Float32(2)},
	))
	require.True(t, s.Matches(ok))

	missingField := RecordFromValue(NewRecord(RecordField{Name: "x", Value: Float32(1)}))
	require.False(t, s.Matches(missingField))

	wrongKind := RecordFromValue(NewRecord(
		RecordField{Name: "x", Value: TextValue("nope")},
		RecordField{Name: "y", Value: Float32(2)},
	))
	require.False(t, s.Matches(wrongKind))
}

func TestShapeMatchesArrayLengthAndElement(t *testing.T) {
	elem := Simple(KindFloat)
	s := ArrayShape(2, elem)
	require.True(t, s.Matches(ArrayValue([]Value{Float32(1), Float32(2)})))
	require.False(t, s.Matches(ArrayValue([]Value{Float32(1)})))
	require.False(t, s.Matches(ArrayValue([]Value{Float32(1), TextValue("x")})))
}

func TestShapeOfInfersNaturalShape(t *testing.T) {
	v := VectorValue([]float32{1, 2, 3})
	s := ShapeOf(v)
	require.True(t, s.Matches(v))
	require.Equal(t, 3, *s.ID.VectorLength)

	r := RecordFromValue(NewRecord(RecordField{Name: "a", Value: Float32(1)}))
	rs := ShapeOf(r)
	require.True(t, rs.Matches(r))
}
