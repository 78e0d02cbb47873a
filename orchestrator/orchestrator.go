package orchestrator

import (
	"github.com/vizij-ai/vizij-go/anim"
	"github.com/vizij-ai/vizij-go/config"
	"github.com/vizij-ai/vizij-go/graphrt"
	"github.com/vizij-ai/vizij-go/ids"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// Orchestrator owns every registered graph/animation controller and the
// shared blackboard they read from and write to. It exclusively owns its
// state — no global mutable state is shared across Orchestrator instances
// (specification §5).
type Orchestrator struct {
	cfg      config.Config
	schedule Schedule

	graphs []*graphController
	anims  []*animController

	// order records every controller's registration sequence, spanning
	// both kinds, for SinglePass's "registration order" requirement.
	order []controllerRef

	// blackboard is the committed, cross-tick state: host-seeded inputs
	// plus every controller's last successful write.
	blackboard map[path.TypedPath]BlackboardEntry

	// appliedCmdEpoch tracks, per reserved command path, the blackboard
	// epoch last consumed by translateAnimCommands, so a command value
	// left sitting on the blackboard is not re-issued every tick.
	appliedCmdEpoch map[path.TypedPath]uint64

	resolver anim.Resolver

	epoch uint64
}

// Option configures an Orchestrator before construction, mirroring
// config.Option's functional-option shape.
type Option func(o *Orchestrator)

// WithSchedule selects the scheduling discipline (default SinglePass).
func WithSchedule(s Schedule) Option {
	return func(o *Orchestrator) { o.schedule = s }
}

// New constructs an empty Orchestrator from cfg and opts.
func New(cfg config.Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:             cfg,
		schedule:        SinglePass,
		blackboard:      make(map[path.TypedPath]BlackboardEntry),
		appliedCmdEpoch: make(map[path.TypedPath]uint64),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RegisterGraph loads spec into a fresh graphrt.GraphRuntime under a new
// controller. If id is non-nil it is used verbatim (re-registration after
// a host-side reload); otherwise a fresh ControllerId is minted.
func (o *Orchestrator) RegisterGraph(spec graphrt.GraphSpec, flags graphrt.Flags, id *ControllerId) (ControllerId, error) {
	const op = "orchestrator.RegisterGraph"
	rt := graphrt.New(o.cfg)
	if err := rt.LoadGraph(spec, flags); err != nil {
		return "", vzerr.New(vzerr.KindParseError, op, err)
	}
	cid := resolveID(id)
	gc := &graphController{id: cid, runtime: rt}
	o.graphs = append(o.graphs, gc)
	o.order = append(o.order, controllerRef{graph: gc})
	return cid, nil
}

// RegisterAnimation builds a fresh anim.Engine, loads every animation in
// setup, creates each declared player, and attaches its instances. The
// orchestrator's most recently stored Prebind resolver is replayed
// immediately so every controller shares one binding strategy
// (specification §4.3's "Prebind resolver" contract).
func (o *Orchestrator) RegisterAnimation(setup AnimationSetup, id *ControllerId) (ControllerId, error) {
	const op = "orchestrator.RegisterAnimation"
	e := anim.New(o.cfg)

	animIDs := make([]ids.AnimId, len(setup.Animations))
	for i, stored := range setup.Animations {
		aid, err := e.LoadAnimation(stored)
		if err != nil {
			return "", vzerr.New(vzerr.KindParseError, op, err)
		}
		animIDs[i] = aid
	}

	var playerIDs []anim.PlayerId
	for _, ps := range setup.Players {
		pid := e.CreatePlayer(ps.Name)
		playerIDs = append(playerIDs, pid)
		for _, is := range ps.Instances {
			if is.AnimationIndex < 0 || is.AnimationIndex >= len(animIDs) {
				return "", vzerr.Newf(vzerr.KindParseError, op, "instance references animation index %d out of range", is.AnimationIndex)
			}
			if _, err := e.AddInstance(pid, animIDs[is.AnimationIndex], is.Config); err != nil {
				return "", vzerr.New(vzerr.KindParseError, op, err)
			}
		}
	}

	if o.resolver != nil {
		e.Prebind(o.resolver)
	}

	cid := resolveID(id)
	ac := &animController{id: cid, engine: e, playerIDs: playerIDs}
	o.anims = append(o.anims, ac)
	o.order = append(o.order, controllerRef{anim: ac})
	return cid, nil
}

func resolveID(id *ControllerId) ControllerId {
	if id != nil {
		return *id
	}
	return ids.NewControllerId()
}

// Prebind stores resolver and replays it against every already-registered
// animation controller (specification §4.3).
func (o *Orchestrator) Prebind(resolver anim.Resolver) {
	o.resolver = resolver
	for _, ctrl := range o.anims {
		ctrl.engine.Prebind(resolver)
	}
}

// SetInput writes value into the input blackboard under p, visible to
// every controller from the next Step call onward.
func (o *Orchestrator) SetInput(p path.TypedPath, v value.Value, shape *value.Shape) {
	o.blackboard[p] = BlackboardEntry{Value: v, Shape: shape, Epoch: o.epoch}
}

// RemoveInput clears any blackboard value at p.
func (o *Orchestrator) RemoveInput(p path.TypedPath) {
	delete(o.blackboard, p)
}

// ListControllers returns every registered controller's id, kind, and
// configured tick period (0 for the "every tick" default).
func (o *Orchestrator) ListControllers() []ControllerInfo {
	infos := make([]ControllerInfo, 0, len(o.graphs)+len(o.anims))
	for _, g := range o.graphs {
		infos = append(infos, ControllerInfo{ID: g.id, Kind: KindGraphController, TickPeriod: g.tickPeriod})
	}
	for _, a := range o.anims {
		infos = append(infos, ControllerInfo{ID: a.id, Kind: KindAnimationController, TickPeriod: a.tickPeriod})
	}
	return infos
}

// RemoveGraph deregisters the graph controller with id, if any.
func (o *Orchestrator) RemoveGraph(id ControllerId) {
	for i, g := range o.graphs {
		if g.id == id {
			o.graphs = append(o.graphs[:i], o.graphs[i+1:]...)
			break
		}
	}
	o.removeFromOrder(id)
}

// RemoveAnimation deregisters the animation controller with id, if any.
func (o *Orchestrator) RemoveAnimation(id ControllerId) {
	for i, a := range o.anims {
		if a.id == id {
			o.anims = append(o.anims[:i], o.anims[i+1:]...)
			break
		}
	}
	o.removeFromOrder(id)
}

func (o *Orchestrator) removeFromOrder(id ControllerId) {
	for i, ref := range o.order {
		if ref.id() == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			return
		}
	}
}

// SetGraphTickPeriod sets the RateDecoupled period (in simulated seconds)
// for the graph controller id; 0 means "every tick".
func (o *Orchestrator) SetGraphTickPeriod(id ControllerId, period float64) {
	for _, g := range o.graphs {
		if g.id == id {
			g.tickPeriod = period
			return
		}
	}
}

// SetAnimationTickPeriod is SetGraphTickPeriod for an animation controller.
func (o *Orchestrator) SetAnimationTickPeriod(id ControllerId, period float64) {
	for _, a := range o.anims {
		if a.id == id {
			a.tickPeriod = period
			return
		}
	}
}
