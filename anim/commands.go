package anim

import (
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
)

// applyInstanceUpdate overlays the non-nil fields of delta onto inst.
func applyInstanceUpdate(inst *Instance, delta InstanceUpdate) {
	if delta.Weight != nil {
		inst.Weight = *delta.Weight
	}
	if delta.TimeScale != nil {
		inst.TimeScale = *delta.TimeScale
	}
	if delta.StartOffset != nil {
		inst.StartOffset = *delta.StartOffset
	}
	if delta.Enabled != nil {
		inst.Enabled = *delta.Enabled
	}
}

// applyPlayerCommands runs cmds in order against e's players
// (specification §4.1 step 1). A command targeting a nonexistent player
// emits an Error event and changes no state; every other command is
// applied to the live Player directly.
func (e *Engine) applyPlayerCommands(cmds []PlayerCommand) []Event {
	var events []Event
	for _, cmd := range cmds {
		p, ok := e.players[cmd.PlayerID]
		if !ok {
			events = append(events, Event{
				Kind:     EventError,
				PlayerID: cmd.PlayerID,
				Message:  "command target missing",
			})
			continue
		}
		switch cmd.Kind {
		case CmdPlay:
			p.State = StatePlaying
		case CmdPause:
			p.State = StatePaused
		case CmdStop:
			p.State = StateStopped
			p.TimeNs = p.Window.StartNs
		case CmdSeek:
			seekPlayer(p, cmd.SeekNs, e.longestInstanceDurationNs(p))
		case CmdSetSpeed:
			p.Speed = cmd.Speed
		case CmdSetLoopMode:
			p.Mode = cmd.Mode
		case CmdSetWindow:
			p.Window = cmd.Window
		}
	}
	return events
}

// UpdateValues runs one animation tick (specification §4.1 steps 1–7):
// applies player_cmds and instance_updates, advances every player whose
// state is StatePlaying, samples and blends every contributing instance,
// and appends the resulting writes to the engine's WriteBatch. Players
// that are paused or stopped still accumulate (so their held time
// continues to drive their targets) but do not advance.
func (e *Engine) UpdateValues(dtSeconds float64, inputs TickInputs) Outputs {
	e.writes.Reset()
	for _, inst := range e.instances {
		inst.disabledForTick = false
	}

	events := e.applyPlayerCommands(inputs.PlayerCmds)
	for _, upd := range inputs.InstanceUpdates {
		if inst, ok := e.instances[upd.InstanceID]; ok {
			applyInstanceUpdate(inst, upd)
		} else {
			events = append(events, Event{Kind: EventError, Message: "instance update target missing"})
		}
	}

	var changes []Change
	for _, p := range e.players {
		durationNs := e.longestInstanceDurationNs(p)
		if p.State == StatePlaying {
			events = append(events, advancePlayer(p, dtSeconds, durationNs)...)
		}

		playerChanges, playerEvents := accumulatePlayer(p, e.instances, e.animationFor, e.priorValues, true)
		events = append(events, playerEvents...)
		changes = append(changes, playerChanges...)
	}

	for _, ch := range changes {
		key, ok := e.bindings[ch.Key]
		if !ok {
			if !e.warnedOnce[ch.Key] {
				e.warnedOnce[ch.Key] = true
				events = append(events, Event{Kind: EventWarning, PlayerID: ch.PlayerID, Path: ch.Key, Message: "unresolved binding"})
			}
			continue
		}
		_ = key
		e.writes.Append(writebatch.WriteOp{Path: ch.Key, Value: ch.Value})
	}

	if e.cfg.MaxEventsPerTick > 0 && len(events) > e.cfg.MaxEventsPerTick {
		events = events[len(events)-e.cfg.MaxEventsPerTick:]
		events = append(events, Event{Kind: EventPerformanceWarning, Message: "event queue overflow"})
	}

	return Outputs{Changes: changes, Events: events}
}

// UpdateValuesAndDerivatives runs UpdateValues, then estimates
// d(value)/dt for every resulting Change by symmetric finite difference:
// it resamples each player's instances at time ± epsilon around the
// post-advance TimeNs (without perturbing engine state) and divides the
// difference by 2*epsilon (specification §4.1's update_values_and_
// derivatives). Non-numeric Changes (Bool/Text/Record/...) get a
// zero-valued derivative entry, since step-held kinds have no slope.
func (e *Engine) UpdateValuesAndDerivatives(dtSeconds float64, inputs TickInputs, epsilon float64) Outputs {
	out := e.UpdateValues(dtSeconds, inputs)
	if epsilon <= 0 {
		epsilon = 1e-3
	}
	out.Derivatives = make([]Change, len(out.Changes))

	plusByPlayer := make(map[PlayerId]map[path.TypedPath]value.Value)
	minusByPlayer := make(map[PlayerId]map[path.TypedPath]value.Value)
	for _, p := range e.players {
		durationNs := e.longestInstanceDurationNs(p)
		plus := offsetPlayerCopy(p, epsilon, durationNs)
		minus := offsetPlayerCopy(p, -epsilon, durationNs)
		scratch := make(map[path.TypedPath]value.Value)
		plusChanges, _ := accumulatePlayer(&plus, e.instances, e.animationFor, scratch, false)
		plusByPlayer[p.ID] = changesToMap(plusChanges)
		scratch = make(map[path.TypedPath]value.Value)
		minusChanges, _ := accumulatePlayer(&minus, e.instances, e.animationFor, scratch, false)
		minusByPlayer[p.ID] = changesToMap(minusChanges)
	}

	for i, ch := range out.Changes {
		var d value.Value
		pv, okP := plusByPlayer[ch.PlayerID][ch.Key]
		mv, okM := minusByPlayer[ch.PlayerID][ch.Key]
		if okP && okM && isAccumulatable(pv.Kind) && pv.Kind == mv.Kind {
			diff := value.WeightedAccumulate(pv, mv, -1)
			d = value.Scale(diff, float32(1/(2*epsilon)))
		} else {
			d = value.ZeroLike(ch.Value)
		}
		out.Derivatives[i] = Change{PlayerID: ch.PlayerID, Key: ch.Key, Value: d}
	}
	return out
}

// offsetPlayerCopy returns a value copy of p with TimeNs shifted by
// offsetSeconds, folded back into the window the same way advancePlayer
// would (reusing advancePlayer with dt=offsetSeconds and speed=1 on the
// copy only — p itself is never mutated).
func offsetPlayerCopy(p *Player, offsetSeconds float64, durationNs int64) Player {
	cp := *p
	cp.InstanceIDs = append([]InstanceId(nil), p.InstanceIDs...)
	cp.Speed = 1
	cp.State = StatePlaying
	advancePlayer(&cp, offsetSeconds, durationNs)
	return cp
}

func changesToMap(changes []Change) map[path.TypedPath]value.Value {
	m := make(map[path.TypedPath]value.Value, len(changes))
	for _, c := range changes {
		m[c.Key] = c.Value
	}
	return m
}
