package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAppliesDefaults(t *testing.T) {
	c := New()
	require.Greater(t, c.ScratchSamples, 0)
	require.Greater(t, c.MaxEventsPerTick, 0)
	require.False(t, c.Features.SelectorNaNFallback)
}

func TestOptionsOverrideDefaults(t *testing.T) {
	c := New(
		WithScratchSamples(10),
		WithScratchValuesScalar(5),
		WithScratchValuesVec(6),
		WithScratchValuesQuat(7),
		WithMaxEventsPerTick(3),
		WithSelectorNaNFallback(true),
	)
	require.Equal(t, 10, c.ScratchSamples)
	require.Equal(t, 5, c.ScratchValuesScalar)
	require.Equal(t, 6, c.ScratchValuesVec)
	require.Equal(t, 7, c.ScratchValuesQuat)
	require.Equal(t, 3, c.MaxEventsPerTick)
	require.True(t, c.Features.SelectorNaNFallback)
}

func TestOptionsApplyInOrder(t *testing.T) {
	c := New(WithScratchSamples(10), WithScratchSamples(20))
	require.Equal(t, 20, c.ScratchSamples)
}
