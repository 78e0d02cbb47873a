package path

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFormatRoundTrip(t *testing.T) {
	cases := []string{
		"anim",
		"anim/player/1",
		"robot/arm.joint",
		"robot/arm/shoulder.rotation.x",
		"a/b/c/d.e.f.g",
	}
	for _, raw := range cases {
		p, err := Parse(raw)
		require.NoError(t, err, raw)
		require.Equal(t, raw, p.String())
	}
}

func TestParseComponents(t *testing.T) {
	p, err := Parse("robot/arm/shoulder.rotation.x")
	require.NoError(t, err)
	require.Equal(t, "robot", p.Namespace())
	require.Equal(t, []string{"arm", "shoulder"}, p.Segments())
	require.Equal(t, []string{"rotation", "x"}, p.Fields())
}

func TestParseNamespaceOnly(t *testing.T) {
	p, err := Parse("anim")
	require.NoError(t, err)
	require.Equal(t, "anim", p.Namespace())
	require.Empty(t, p.Segments())
	require.Empty(t, p.Fields())
}

func TestParseEmptyPathRejected(t *testing.T) {
	_, err := Parse("")
	require.True(t, errors.Is(err, ErrEmptyPath))
}

func TestParseInvalidSegmentsRejected(t *testing.T) {
	cases := []string{"a//b", "a/", "/a", "a.", ".a", "a..b"}
	for _, raw := range cases {
		_, err := Parse(raw)
		require.Error(t, err, raw)
		require.True(t, errors.Is(err, ErrInvalidSegment), raw)
	}
}

func TestEqualIsStructural(t *testing.T) {
	a := MustParse("robot/arm.x")
	b := MustParse("robot/arm.x")
	c := MustParse("robot/arm.y")
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.True(t, a == b) // comparable, usable as a map key
}

func TestTypedPathAsMapKey(t *testing.T) {
	m := map[TypedPath]int{}
	m[MustParse("a/b.c")] = 1
	m[MustParse("a/b.d")] = 2
	require.Equal(t, 1, m[MustParse("a/b.c")])
	require.Equal(t, 2, m[MustParse("a/b.d")])
}

func TestJSONRoundTrip(t *testing.T) {
	p := MustParse("robot/arm/shoulder.rotation.x")
	b, err := json.Marshal(p)
	require.NoError(t, err)
	require.Equal(t, `"robot/arm/shoulder.rotation.x"`, string(b))

	var out TypedPath
	require.NoError(t, json.Unmarshal(b, &out))
	require.True(t, p.Equal(out))
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	require.Panics(t, func() { MustParse("") })
}
