// Package orchestrator implements the Orchestrator: a scheduler that ticks
// one or more Animation Engine and Node-Graph Engine controllers per host
// frame, merging their writes into a shared blackboard under one of three
// scheduling disciplines (specification §4.3).
package orchestrator

import (
	"github.com/vizij-ai/vizij-go/anim"
	"github.com/vizij-ai/vizij-go/graphrt"
	"github.com/vizij-ai/vizij-go/ids"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
)

// ControllerId names one registered graph or animation controller.
type ControllerId = ids.ControllerId

// Schedule selects how Step fans out across registered controllers
// (specification §4.3's three scheduling disciplines).
type Schedule uint8

const (
	// SinglePass runs every controller once per tick in registration
	// order, merging each one's writes into the blackboard immediately so
	// later controllers in the same tick observe earlier ones' output.
	SinglePass Schedule = iota
	// TwoPass runs every animation controller first against the pre-tick
	// blackboard, merges their writes into a staging buffer, then runs
	// every graph controller against the merged staging buffer.
	TwoPass
	// RateDecoupled runs a controller only when simulated time crosses a
	// multiple of its own TickPeriod; between ticks its most recent
	// outputs remain live on the blackboard.
	RateDecoupled
)

// BlackboardEntry is one path's current value together with the metadata
// needed to detect and log a same-tick conflicting write.
type BlackboardEntry struct {
	Value  value.Value
	Shape  *value.Shape
	Epoch  uint64
	Source ControllerId
}

// ConflictLog records one same-tick last-writer-wins resolution
// (specification §4.3's merge semantics).
type ConflictLog struct {
	Path             path.TypedPath
	PreviousValue    value.Value
	PreviousShape    *value.Shape
	PreviousEpoch    uint64
	PreviousSource   ControllerId
	NewValue         value.Value
	NewShape         *value.Shape
	NewEpoch         uint64
	NewSource        ControllerId
}

// Timings carries the per-phase wall-clock-independent cost breakdown of
// one Step call. The orchestrator core performs no I/O and has no wall
// clock of its own (specification §5: "no operation suspends or blocks on
// I/O"), so Step does not measure these and leaves them zero.
type Timings struct {
	AnimationsMs float64
	GraphsMs     float64
	TotalMs      float64
}

// ControllerEvent is one controller-scoped event surfaced in an
// OrchestratorFrame: either an anim.Event, a graphrt error translated to
// an event, or an orchestrator-level notice (e.g. a malformed animation
// command value).
type ControllerEvent struct {
	Controller ControllerId
	Message    string
}

// OrchestratorFrame is Step's return value (specification §4.3).
type OrchestratorFrame struct {
	Epoch        uint64
	Dt           float64
	MergedWrites *writebatch.WriteBatch
	Conflicts    []ConflictLog
	Timings      Timings
	Events       []ControllerEvent
}

// ControllerKind distinguishes a registered controller's engine type.
type ControllerKind uint8

const (
	KindGraphController ControllerKind = iota
	KindAnimationController
)

// ControllerInfo is ListControllers' per-entry summary.
type ControllerInfo struct {
	ID         ControllerId
	Kind       ControllerKind
	TickPeriod float64
}

// PlayerSetup describes one player to create inside a newly registered
// animation controller, with the instances attached to it.
type PlayerSetup struct {
	Name      string
	Instances []InstanceSetup
}

// InstanceSetup attaches one already-registered animation (by index into
// AnimationSetup.Animations) to the enclosing PlayerSetup's player.
type InstanceSetup struct {
	AnimationIndex int
	Config         anim.InstanceConfig
}

// AnimationSetup is RegisterAnimation's argument: the stored animations to
// load and the players/instances to wire onto them, all evaluated against
// one fresh anim.Engine.
type AnimationSetup struct {
	Animations []anim.StoredAnimation
	Players    []PlayerSetup
}

// graphController wraps one registered graph controller with its
// scheduling metadata.
type graphController struct {
	id         ControllerId
	runtime    *graphrt.GraphRuntime
	tickPeriod float64
	elapsed    float64
}

// animController wraps one registered animation controller with its
// scheduling metadata. playerIDs are retained so command-path translation
// can look up each player's anim/player/<id>/cmd paths by its PlayerId.
type animController struct {
	id         ControllerId
	engine     *anim.Engine
	playerIDs  []anim.PlayerId
	tickPeriod float64
	elapsed    float64
}

// controllerRef is one entry of Orchestrator.order: a registration-order
// slot holding exactly one of a graph or an animation controller.
type controllerRef struct {
	graph *graphController
	anim  *animController
}

func (r controllerRef) id() ControllerId {
	if r.graph != nil {
		return r.graph.id
	}
	return r.anim.id
}
