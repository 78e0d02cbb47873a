package anim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/config"
	"github.com/vizij-ai/vizij-go/value"
)

func TestBakeAnimation_ProducesFrameAlignedStamps(t *testing.T) {
	e := New(config.New())
	animID := loadSimpleAnim(t, e, 1000)

	baked, err := e.BakeAnimation(animID, BakingConfig{FrameRate: 10, StartTime: 0, EndTime: 1000})
	require.NoError(t, err)
	require.Len(t, baked.Tracks, 1)
	require.Len(t, baked.Tracks[0].Values, 11) // 0, 100, ..., 1000ms at 10fps
	require.InDelta(t, 0, baked.Tracks[0].Values[0].Float, 1e-6)
	require.InDelta(t, 1, baked.Tracks[0].Values[10].Float, 1e-6)
}

func TestBakeAnimation_RejectsMissingAnimation(t *testing.T) {
	e := New(config.New())
	_, err := e.BakeAnimation("nope", BakingConfig{FrameRate: 10, EndTime: 100})
	require.Error(t, err)
}

func TestBakeAnimation_RejectsNonPositiveFrameRate(t *testing.T) {
	e := New(config.New())
	animID := loadSimpleAnim(t, e, 1000)
	_, err := e.BakeAnimation(animID, BakingConfig{FrameRate: 0, EndTime: 1000})
	require.Error(t, err)
}

func TestBakeAnimationWithDerivatives_FillsDerivativeSlice(t *testing.T) {
	e := New(config.New())
	animID := loadSimpleAnim(t, e, 1000)

	baked, err := e.BakeAnimationWithDerivatives(animID, BakingConfig{FrameRate: 10, StartTime: 0, EndTime: 1000})
	require.NoError(t, err)
	require.Len(t, baked.Tracks[0].Derivatives, len(baked.Tracks[0].Values))
	// A linearly ramping 0→1 track over 1s has a roughly constant positive
	// slope away from the clamped edges.
	mid := len(baked.Tracks[0].Derivatives) / 2
	require.Greater(t, baked.Tracks[0].Derivatives[mid].Float, float32(0))
}

func TestBakeAnimation_LoopWrapsDerivativeAtEdges(t *testing.T) {
	e := New(config.New())
	animID := loadSimpleAnim(t, e, 1000)

	baked, err := e.BakeAnimationWithDerivatives(animID, BakingConfig{FrameRate: 10, StartTime: 0, EndTime: 1000, Loop: true})
	require.NoError(t, err)
	// With Loop, the first frame's derivative comes from samples on both
	// sides of the window edge and keeps the track's Float kind.
	first := baked.Tracks[0].Derivatives[0]
	require.Equal(t, value.KindFloat, first.Kind)
}
