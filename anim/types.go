// Package anim implements the Animation Engine: a time-driven sampler
// that advances players, evaluates keypoint-based tracks with cubic-bezier
// easing, blends weighted instance contributions, and emits typed writes
// (specification §4.1).
//
// Public surface: LoadAnimation, CreatePlayer/RemovePlayer,
// AddInstance/RemoveInstance/UpdateInstance, Prebind, UpdateValues,
// UpdateValuesAndDerivatives, BakeAnimation/BakeAnimationWithDerivatives —
// split across engine.go (player/instance/binding lifecycle),
// commands.go (player_cmds application), bake.go (dense resampling),
// bezier.go (easing solve), player.go (playback state machine), and
// accumulate.go (weighted instance blending).
package anim

import (
	"github.com/vizij-ai/vizij-go/ids"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
)

// BezierHandle is one control-point offset of a Keypoint's easing curve.
// X must lie in [0, 1]; Y is unconstrained.
type BezierHandle struct {
	X, Y float64
}

// DefaultOutHandle and DefaultInHandle are the handles a Keypoint gets
// when its transitions are omitted (specification §3).
var (
	DefaultOutHandle = BezierHandle{X: 0.42, Y: 0}
	DefaultInHandle  = BezierHandle{X: 0.58, Y: 1}
)

// Transitions carries the outgoing handle of the left keypoint and the
// incoming handle of the right keypoint bounding a segment.
type Transitions struct {
	Out BezierHandle
	In  BezierHandle
}

// Keypoint is one sample of a Track: a normalized stamp in [0,1], the
// Value at that stamp, and the bezier handles shaping the curve into and
// out of it.
type Keypoint struct {
	ID          string
	Stamp       float64
	Value       value.Value
	Transitions Transitions
}

// TrackSettings holds per-track playback tuning. It has no fields:
// specification §3 leaves Track.settings open for
// implementation-defined knobs; none are required to reproduce §4.1's
// algorithm.
type TrackSettings struct{}

// Track is one animatable channel: a target path and its ordered
// keypoints. LoadAnimation sorts keypoints by Stamp (keypoints sharing a
// stamp keep their stored order) and rejects duplicate keypoint ids
// within a track.
type Track struct {
	ID           string
	AnimatableID path.TypedPath
	Points       []Keypoint
	Settings     TrackSettings
}

// Animation is immutable after LoadAnimation returns. DurationMs is
// strictly positive; Tracks is non-empty.
type Animation struct {
	ID         ids.AnimId
	Name       string
	DurationMs float64
	Tracks     []Track
	Groups     []string
}

// PlaybackMode selects how a Player folds time back into its window once
// it reaches an edge.
type PlaybackMode uint8

const (
	// ModeOnce clamps at the end and stops advancing.
	ModeOnce PlaybackMode = iota
	// ModeLoop wraps modulo the window length.
	ModeLoop
	// ModePingPong reflects off each edge, flipping direction.
	ModePingPong
)

// PlayState is a Player's coarse run/pause/stop state.
type PlayState uint8

const (
	StatePlaying PlayState = iota
	StatePaused
	StateStopped
)

// Window is a player's playable time range, in nanoseconds. End is nil
// for "play to the animation's own duration".
type Window struct {
	StartNs int64
	EndNs   *int64
}

// PlayerId names a live Player within one Engine.
type PlayerId = ids.Handle

// InstanceId names a live Instance within one Engine.
type InstanceId = ids.Handle

// Player is a live, addressable playback head: independent of any single
// Animation until an Instance attaches one.
type Player struct {
	ID         PlayerId
	Name       string
	State      PlayState
	Speed      float64
	Mode       PlaybackMode
	TimeNs     int64
	Window     Window
	InstanceIDs []InstanceId

	// direction is +1 or -1; only meaningful under ModePingPong, toggled
	// at window edges.
	direction int8
}

// Instance attaches one Animation to one Player with its own weight,
// time-scaling, and offset, so several animations can blend onto the same
// targets through the same player.
type Instance struct {
	ID          InstanceId
	Player      PlayerId
	Animation   ids.AnimId
	Weight      float64
	TimeScale   float64
	StartOffset float64
	Enabled     bool

	// disabledForTick is set when a per-frame error isolates this
	// instance (specification §7's "per-frame errors in the animation
	// engine are instance-scoped"); cleared at the start of the next tick.
	disabledForTick bool

	// prevStamp is the normalized stamp sampled on the prior tick, used
	// by accumulatePlayer to detect keypoint crossings. It is only read
	// once hasPrevStamp is set, so the very first tick never reports a
	// spurious crossing.
	prevStamp float64
	hasPrevStamp bool
}

// OpaqueKey is a host-supplied, any-free integer handle a TypedPath
// resolves to during Prebind.
type OpaqueKey = ids.Handle

// BindingTable maps a TypedPath to the host-opaque key it resolves to.
// Populated once by Prebind, then read-only in the hot loop.
type BindingTable map[path.TypedPath]OpaqueKey

// Change is one resolved, accumulated write target produced by a tick.
type Change struct {
	PlayerID PlayerId
	Key      path.TypedPath
	Value    value.Value
}

// EventKind classifies an Event.
type EventKind uint8

const (
	EventPlaybackEnded EventKind = iota
	EventDirectionFlip
	EventWarning
	EventError
	EventPerformanceWarning
	// EventKeypointCrossed fires when an instance's normalized stamp
	// crosses a keypoint's Stamp between two consecutive ticks.
	EventKeypointCrossed
)

// Event is one non-fatal, tick-scoped notification: a playback
// transition, a keypoint crossing, an unresolved binding, an isolated
// instance failure, or an event-queue overflow.
type Event struct {
	Kind     EventKind
	PlayerID PlayerId
	InstID   InstanceId
	Path     path.TypedPath
	Message  string
}

// PlayerCommandKind names a player_cmds entry (specification §4.1 step 1).
type PlayerCommandKind uint8

const (
	CmdPlay PlayerCommandKind = iota
	CmdPause
	CmdStop
	CmdSeek
	CmdSetSpeed
	CmdSetLoopMode
	CmdSetWindow
)

// PlayerCommand is one entry of player_cmds, applied in order at the start
// of a tick.
type PlayerCommand struct {
	Kind     PlayerCommandKind
	PlayerID PlayerId

	SeekNs    int64        // CmdSeek
	Speed     float64      // CmdSetSpeed
	Mode      PlaybackMode // CmdSetLoopMode
	Window    Window       // CmdSetWindow
}

// InstanceUpdate is one instance_updates entry (UpdateInstance's delta_cfg
// applied inline within a tick, rather than between ticks).
type InstanceUpdate struct {
	InstanceID  InstanceId
	Weight      *float64
	TimeScale   *float64
	StartOffset *float64
	Enabled     *bool
}

// TickInputs bundles the two ordered command streams UpdateValues applies
// before sampling.
type TickInputs struct {
	PlayerCmds      []PlayerCommand
	InstanceUpdates []InstanceUpdate
}

// Outputs is the result of one UpdateValues call. Derivatives is populated
// only by UpdateValuesAndDerivatives, one entry per Change in the same
// order, holding d(value)/dt estimated by symmetric finite difference.
type Outputs struct {
	Changes     []Change
	Events      []Event
	Derivatives []Change
}
