package graphrt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/value"
)

func TestApplySelector_FieldOnRecord(t *testing.T) {
	rec := value.RecordFromValue(value.NewRecord(value.RecordField{Name: "x", Value: value.Float32(5)}))
	out, err := applySelector(rec, []SelectorSegment{{Kind: SegField, Field: "x"}}, false, value.Shape{})
	require.NoError(t, err)
	require.Equal(t, float32(5), out.Float)
}

func TestApplySelector_IndexOnVec3(t *testing.T) {
	v := value.Vec3Value(1, 2, 3)
	out, err := applySelector(v, []SelectorSegment{{Kind: SegIndex, Index: 2}}, false, value.Shape{})
	require.NoError(t, err)
	require.Equal(t, float32(3), out.Float)
}

func TestApplySelector_TransformFieldsProjectToVec3AndQuat(t *testing.T) {
	tv := value.TransformFromParts([3]float32{1, 2, 3}, [4]float32{0, 0, 0, 1}, [3]float32{1, 1, 1})
	out, err := applySelector(tv, []SelectorSegment{{Kind: SegField, Field: "translation"}}, false, value.Shape{})
	require.NoError(t, err)
	require.Equal(t, value.KindVec3, out.Kind)
	require.Equal(t, [3]float32{1, 2, 3}, out.Vec3)
}

func TestApplySelector_OutOfBoundsIndexErrors(t *testing.T) {
	v := value.Vec2Value(1, 2)
	_, err := applySelector(v, []SelectorSegment{{Kind: SegIndex, Index: 5}}, false, value.Shape{})
	require.Error(t, err)
}

func TestApplySelector_NaNFallbackWhenEnabled(t *testing.T) {
	v := value.Vec2Value(1, 2)
	shape := value.Simple(value.KindFloat)
	out, err := applySelector(v, []SelectorSegment{{Kind: SegIndex, Index: 5}}, true, shape)
	require.NoError(t, err)
	require.True(t, out.Kind == value.KindFloat)
}

func TestApplySelector_EnumInnerByTag(t *testing.T) {
	e := value.Value{Kind: value.KindEnum, Enum: &value.EnumValue{Tag: "On", Inner: value.BoolValue(true)}}
	out, err := applySelector(e, []SelectorSegment{{Kind: SegField, Field: "On"}}, false, value.Shape{})
	require.NoError(t, err)
	require.True(t, out.Bool)
}
