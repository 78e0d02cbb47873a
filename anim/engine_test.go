package anim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/config"
	"github.com/vizij-ai/vizij-go/ids"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
)

func loadSimpleAnim(t *testing.T, e *Engine, durationMs float64) ids.AnimId {
	id, err := e.LoadAnimation(StoredAnimation{
		DurationMs: durationMs,
		Tracks: []StoredTrack{{
			AnimatableID: samplePath(t, "ns/a.x"),
			Points: []StoredKeypoint{
				{ID: "k0", Stamp: 0, Value: value.Float32(0)},
				{ID: "k1", Stamp: 1, Value: value.Float32(1)},
			},
		}},
	})
	require.NoError(t, err)
	return id
}

func TestEngine_CreatePlayerAndAddInstance(t *testing.T) {
	e := New(config.New())
	animID := loadSimpleAnim(t, e, 1000)

	playerID := e.CreatePlayer("p")
	require.NotEqual(t, PlayerId(0), playerID)

	instID, err := e.AddInstance(playerID, animID, InstanceConfig{Weight: 1, Enabled: true})
	require.NoError(t, err)
	require.Contains(t, e.players[playerID].InstanceIDs, instID)
}

func TestEngine_AddInstance_MissingPlayer(t *testing.T) {
	e := New(config.New())
	animID := loadSimpleAnim(t, e, 1000)
	_, err := e.AddInstance(999, animID, InstanceConfig{})
	require.Error(t, err)
}

func TestEngine_AddInstance_MissingAnimation(t *testing.T) {
	e := New(config.New())
	playerID := e.CreatePlayer("p")
	_, err := e.AddInstance(playerID, ids.AnimId("nope"), InstanceConfig{})
	require.Error(t, err)
}

func TestEngine_RemovePlayer_RemovesInstances(t *testing.T) {
	e := New(config.New())
	animID := loadSimpleAnim(t, e, 1000)
	playerID := e.CreatePlayer("p")
	instID, err := e.AddInstance(playerID, animID, InstanceConfig{Weight: 1, Enabled: true})
	require.NoError(t, err)

	e.RemovePlayer(playerID)
	_, stillThere := e.instances[instID]
	require.False(t, stillThere)
	_, playerStillThere := e.players[playerID]
	require.False(t, playerStillThere)
}

func TestEngine_RemoveInstance_DetachesFromPlayer(t *testing.T) {
	e := New(config.New())
	animID := loadSimpleAnim(t, e, 1000)
	playerID := e.CreatePlayer("p")
	instID, err := e.AddInstance(playerID, animID, InstanceConfig{Weight: 1, Enabled: true})
	require.NoError(t, err)

	e.RemoveInstance(instID)
	require.NotContains(t, e.players[playerID].InstanceIDs, instID)
	_, ok := e.instances[instID]
	require.False(t, ok)
}

func TestEngine_UpdateInstance_AppliesDelta(t *testing.T) {
	e := New(config.New())
	animID := loadSimpleAnim(t, e, 1000)
	playerID := e.CreatePlayer("p")
	instID, err := e.AddInstance(playerID, animID, InstanceConfig{Weight: 1, TimeScale: 1, Enabled: true})
	require.NoError(t, err)

	newWeight := 0.5
	err = e.UpdateInstance(instID, InstanceUpdate{Weight: &newWeight})
	require.NoError(t, err)
	require.Equal(t, 0.5, e.instances[instID].Weight)
}

func TestEngine_UpdateInstance_MissingTarget(t *testing.T) {
	e := New(config.New())
	err := e.UpdateInstance(999, InstanceUpdate{})
	require.Error(t, err)
}

func TestEngine_Prebind_ResolvesKnownPaths(t *testing.T) {
	e := New(config.New())
	loadSimpleAnim(t, e, 1000)

	target := samplePath(t, "ns/a.x")
	e.Prebind(func(p path.TypedPath) (OpaqueKey, bool) {
		if p == target {
			return 42, true
		}
		return 0, false
	})
	require.Equal(t, OpaqueKey(42), e.bindings[target])
}

func TestEngine_Prebind_LeavesUnresolvedPathsUnbound(t *testing.T) {
	e := New(config.New())
	loadSimpleAnim(t, e, 1000)

	e.Prebind(func(path.TypedPath) (OpaqueKey, bool) { return 0, false })
	require.Empty(t, e.bindings)
}
