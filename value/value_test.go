package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstructorsRoundTripKind(t *testing.T) {
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
		TransformFromParts([3]float32{1, 0, 0}, [4]float32{0, 0, 0, 1}, [3]float32{1, 1, 1}),
		RecordFromValue(NewRecord(RecordField{Name: "x", Value: Float32(1)})),
		EnumFromValue(&EnumValue{Tag: "On", Inner: BoolValue(true)}),
		ArrayValue([]Value{Float32(1), Float32(2)}),
		ListValue([]Value{TextValue("a")}),
		TupleValue([]Value{Float32(1), TextValue("a")}),
	}
	for _, v := range cases {
		parsed, ok := ParseKind(v.Kind.String())
		require.True(t, ok)
		require.Equal(t, v.Kind, parsed)
	}
}

func TestVectorValueCopiesInput(t *testing.T) {
	src := []float32{1, 2, 3}
	v := VectorValue(src)
	src[0] = 99
	require.Equal(t, float32(1), v.Vector[0], "VectorValue must copy, not alias, its input")
}

func TestRecordGetPreservesOrderAndLookup(t *testing.T) {
	r := NewRecord(
		RecordField{Name: "b", Value: Float32(2)},
		RecordField{Name: "a", Value: Float32(1)},
	)
	require.Equal(t, "b", r.Fields[0].Name)
	require.Equal(t, "a", r.Fields[1].Name)

	v, ok := r.Get("a")
	require.True(t, ok)
	require.Equal(t, float32(1), v.Float)

	_, ok = r.Get("missing")
	require.False(t, ok)
}

func TestNewRecordPanicsOnDuplicateField(t *testing.T) {
	require.Panics(t, func() {
		NewRecord(
			RecordField{Name: "a", Value: Float32(1)},
			RecordField{Name: "a", Value: Float32(2)},
		)
	})
}

func TestIsFiniteRejectsNaNAndInf(t *testing.T) {
	require.True(t, Float32(1).IsFinite())
	require.False(t, Float32(NaNFloat32).IsFinite())
	require.False(t, Float32(float32(math.Inf(1))).IsFinite())
	require.False(t, Vec3Value(1, NaNFloat32, 3).IsFinite())
	require.True(t, TextValue("anything").IsFinite())
}

func TestCloneDoesNotShareStorage(t *testing.T) {
	v := VectorValue([]float32{1, 2, 3})
	c := v.Clone()
	c.Vector[0] = 42
	require.Equal(t, float32(1), v.Vector[0])

	rv := RecordFromValue(NewRecord(RecordField{Name: "n", Value: Float32(1)}))
	rc := rv.Clone()
	rc.Record.Fields[0].Value = Float32(99)
	orig, _ := rv.Record.Get("n")
	require.Equal(t, float32(1), orig.Float)
}

func TestEqualStructural(t *testing.T) {
	require.True(t, Vec3Value(1, 2, 3).Equal(Vec3Value(1, 2, 3)))
	require.False(t, Vec3Value(1, 2, 3).Equal(Vec3Value(1, 2, 4)))
	require.False(t, Float32(1).Equal(BoolValue(true)))

	a := RecordFromValue(NewRecord(RecordField{Name: "x", Value: Float32(1)}))
	b := RecordFromValue(NewRecord(RecordField{Name: "x", Value: Float32(1)}))
	require.True(t, a.Equal(b))

	c := RecordFromValue(NewRecord(RecordField{Name: "y", Value: Float32(1)}))
	require.False(t, a.Equal(c))
}

func TestEqualNaNIsUnequalToItself(t *testing.T) {
	a := Float32(NaNFloat32)
	require.False(t, a.Equal(a))
}
