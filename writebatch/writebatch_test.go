package writebatch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
)

func TestAppendPreservesOrder(t *testing.T) {
	b := New(4)
	b.Append(WriteOp{Path: path.MustParse("a/x"), Value: value.Float32(1)})
	b.Append(WriteOp{Path: path.MustParse("a/y"), Value: value.Float32(2)})
	b.Append(WriteOp{Path: path.MustParse("a/z"), Value: value.Float32(3)})

	require.Equal(t, 3, b.Len())
	require.Equal(t, "a/x", b.At(0).Path.String())
	require.Equal(t, "a/z", b.At(2).Path.String())

	var seen []string
	b.Iter(func(_ int, op WriteOp) bool {
		seen = append(seen, op.Path.String())
		return true
	})
	require.Equal(t, []string{"a/x", "a/y", "a/z"}, seen)
}

func TestIterStopsEarly(t *testing.T) {
	b := New(4)
	b.Append(WriteOp{Path: path.MustParse("a/x"), Value: value.Float32(1)})
	b.Append(WriteOp{Path: path.MustParse("a/y"), Value: value.Float32(2)})

	var count int
	b.Iter(func(_ int, _ WriteOp) bool {
		count++
		return false
	})
	require.Equal(t, 1, count)
}

func TestResetRetainsCapacity(t *testing.T) {
	b := New(2)
	b.Append(WriteOp{Path: path.MustParse("a/x"), Value: value.Float32(1)})
	b.Append(WriteOp{Path: path.MustParse("a/y"), Value: value.Float32(2)})
	require.Equal(t, 2, b.Len())

	b.Reset()
	require.Equal(t, 0, b.Len())
	require.Equal(t, 2, cap(b.ops))

	b.Append(WriteOp{Path: path.MustParse("a/z"), Value: value.Float32(3)})
	require.Equal(t, 1, b.Len())
	require.Equal(t, "a/z", b.At(0).Path.String())
}

func TestEffectiveShapeInfersWhenAbsent(t *testing.T) {
	op := WriteOp{Path: path.MustParse("a/x"), Value: value.VectorValue([]float32{1, 2, 3})}
	s := op.EffectiveShape()
	require.True(t, s.Matches(op.Value))
}

func TestEffectiveShapeUsesDeclared(t *testing.T) {
	declared := value.VectorShape(5)
	op := WriteOp{Path: path.MustParse("a/x"), Value: value.VectorValue([]float32{1, 2, 3}), Shape: &declared}
	require.Equal(t, 5, *op.EffectiveShape().ID.VectorLength)
}

func TestJSONRoundTripPreservesOrder(t *testing.T) {
	b := New(4)
	b.Append(WriteOp{Path: path.MustParse("a/x"), Value: value.Float32(1)})
	b.Append(WriteOp{Path: path.MustParse("a/y"), Value: value.TextValue("hi")})

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	out := New(0)
	require.NoError(t, json.Unmarshal(raw, out))
	require.Equal(t, 2, out.Len())
	require.Equal(t, "a/x", out.At(0).Path.String())
	require.Equal(t, "a/y", out.At(1).Path.String())
	require.True(t, out.At(1).Value.Equal(value.TextValue("hi")))
}
