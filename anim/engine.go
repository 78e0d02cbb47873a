package anim

import (
	"github.com/vizij-ai/vizij-go/config"
	"github.com/vizij-ai/vizij-go/ids"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// Engine owns the Animation → Player → Instance hierarchy for one
// controller. It exclusively owns all of its state — no global mutable
// state is shared across Engine instances (specification §5).
type Engine struct {
	cfg config.Config

	animations map[ids.AnimId]*Animation
	players    map[PlayerId]*Player
	instances  map[InstanceId]*Instance

	playerSeq ids.Sequence
	instSeq   ids.Sequence

	bindings    BindingTable
	priorValues map[path.TypedPath]value.Value
	warnedOnce  map[path.TypedPath]bool

	writes *writebatch.WriteBatch
}

// New constructs an empty Engine sized from cfg.
func New(cfg config.Config) *Engine {
	return &Engine{
		cfg:         cfg,
		animations:  make(map[ids.AnimId]*Animation),
		players:     make(map[PlayerId]*Player),
		instances:   make(map[InstanceId]*Instance),
		bindings:    make(BindingTable),
		priorValues: make(map[path.TypedPath]value.Value),
		warnedOnce:  make(map[path.TypedPath]bool),
		writes:      writebatch.New(cfg.ScratchValuesVec),
	}
}

// CreatePlayer adds a new, stopped player named name and returns its id.
func (e *Engine) CreatePlayer(name string) PlayerId {
	id := e.playerSeq.Next()
	e.players[id] = &Player{
		ID:        id,
		Name:      name,
		State:     StateStopped,
		Speed:     1,
		Mode:      ModeOnce,
		direction: 1,
	}
	return id
}

// RemovePlayer deletes player id and every instance attached to it.
func (e *Engine) RemovePlayer(id PlayerId) {
	p, ok := e.players[id]
	if !ok {
		return
	}
	for _, instID := range p.InstanceIDs {
		delete(e.instances, instID)
	}
	delete(e.players, id)
}

// InstanceConfig is the cfg argument to AddInstance.
type InstanceConfig struct {
	Weight      float64
	TimeScale   float64
	StartOffset float64
	Enabled     bool
}

// AddInstance attaches animID to player under a fresh InstanceId, per
// cfg. Returns vzerr.KindCommandTargetMissing if player does not exist.
func (e *Engine) AddInstance(player PlayerId, animID ids.AnimId, cfg InstanceConfig) (InstanceId, error) {
	const op = "anim.AddInstance"
	p, ok := e.players[player]
	if !ok {
		return 0, vzerr.Newf(vzerr.KindCommandTargetMissing, op, "player %d not found", player)
	}
	if _, ok := e.animations[animID]; !ok {
		return 0, vzerr.Newf(vzerr.KindCommandTargetMissing, op, "animation %q not found", animID)
	}
	timeScale := cfg.TimeScale
	if timeScale == 0 {
		timeScale = 1
	}
	id := e.instSeq.Next()
	e.instances[id] = &Instance{
		ID:          id,
		Player:      player,
		Animation:   animID,
		Weight:      cfg.Weight,
		TimeScale:   timeScale,
		StartOffset: cfg.StartOffset,
		Enabled:     cfg.Enabled,
	}
	p.InstanceIDs = append(p.InstanceIDs, id)
	return id, nil
}

// RemoveInstance detaches and deletes inst.
func (e *Engine) RemoveInstance(inst InstanceId) {
	i, ok := e.instances[inst]
	if !ok {
		return
	}
	if p, ok := e.players[i.Player]; ok {
		for idx, id := range p.InstanceIDs {
			if id == inst {
				p.InstanceIDs = append(p.InstanceIDs[:idx], p.InstanceIDs[idx+1:]...)
				break
			}
		}
	}
	delete(e.instances, inst)
}

// UpdateInstance applies delta onto inst's fields between ticks (distinct
// from an in-tick InstanceUpdate passed to UpdateValues).
func (e *Engine) UpdateInstance(inst InstanceId, delta InstanceUpdate) error {
	const op = "anim.UpdateInstance"
	i, ok := e.instances[inst]
	if !ok {
		return vzerr.Newf(vzerr.KindCommandTargetMissing, op, "instance %d not found", inst)
	}
	applyInstanceUpdate(i, delta)
	return nil
}

// Resolver maps a TypedPath to the host-opaque key it should bind to.
type Resolver func(path.TypedPath) (OpaqueKey, bool)

// Prebind rebuilds the binding table by calling resolver for every target
// path referenced by a loaded animation's tracks. Paths resolver cannot
// resolve remain unbound; the first UpdateValues tick that would write to
// one emits a Warning event instead of failing (specification §4.1).
func (e *Engine) Prebind(resolver Resolver) {
	e.bindings = make(BindingTable)
	e.warnedOnce = make(map[path.TypedPath]bool)
	for _, anim := range e.animations {
		for _, track := range anim.Tracks {
			if _, already := e.bindings[track.AnimatableID]; already {
				continue
			}
			if key, ok := resolver(track.AnimatableID); ok {
				e.bindings[track.AnimatableID] = key
			}
		}
	}
}

func (e *Engine) animationFor(inst Instance) *Animation {
	return e.animations[inst.Animation]
}

// longestInstanceDurationNs returns the longest DurationMs, in
// nanoseconds, among player's attached instances' animations — used as
// the implicit window end when a player declares none.
func (e *Engine) longestInstanceDurationNs(p *Player) int64 {
	var longest int64
	for _, id := range p.InstanceIDs {
		inst, ok := e.instances[id]
		if !ok {
			continue
		}
		anim := e.animationFor(*inst)
		if anim == nil {
			continue
		}
		durNs := int64(anim.DurationMs * 1e6)
		if durNs > longest {
			longest = durNs
		}
	}
	return longest
}
