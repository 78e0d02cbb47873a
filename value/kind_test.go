package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKindRoundTripsAllNames(t *testing.T) {
	for k := KindFloat; k <= KindTuple; k++ {
		name := k.String()
		parsed, ok := ParseKind(name)
		require.True(t, ok, "ParseKind should recognize %q", name)
		require.Equal(t, k, parsed)
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	_, ok := ParseKind("nonsense")
	require.False(t, ok)
}

func TestIsNumericLike(t *testing.T) {
	require.True(t, KindFloat.IsNumericLike())
	require.True(t, KindVec3.IsNumericLike())
	require.True(t, KindTransform.IsNumericLike())
	require.False(t, KindText.IsNumericLike())
	require.False(t, KindRecord.IsNumericLike())
	require.False(t, KindBool.IsNumericLike())
}
