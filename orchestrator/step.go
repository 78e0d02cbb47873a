package orchestrator

import (
	"fmt"

	"github.com/vizij-ai/vizij-go/anim"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/writebatch"
)

// Step advances every registered controller by dt according to the
// configured Schedule, returning the merged frame (specification §4.3).
func (o *Orchestrator) Step(dt float64) OrchestratorFrame {
	switch o.schedule {
	case TwoPass:
		return o.stepTwoPass(dt)
	case RateDecoupled:
		return o.stepRateDecoupled(dt)
	default:
		return o.stepSinglePass(dt)
	}
}

// stepSinglePass runs every controller once, in registration order,
// merging each one's writes into the live blackboard immediately so later
// controllers in the same tick observe earlier ones' output.
func (o *Orchestrator) stepSinglePass(dt float64) OrchestratorFrame {
	merged := writebatch.New(16)
	var conflicts []ConflictLog
	var events []ControllerEvent
	frameWrites := make(map[path.TypedPath]BlackboardEntry)

	for _, ref := range o.order {
		if ref.graph != nil {
			writes, evs := o.tickGraph(ref.graph, o.blackboard, dt, frameWrites, &conflicts)
			appendWriteBatch(merged, writes)
			events = append(events, evs...)
		} else {
			writes, evs := o.tickAnim(ref.anim, o.blackboard, dt, frameWrites, &conflicts)
			appendWriteBatch(merged, writes)
			events = append(events, evs...)
		}
	}

	return OrchestratorFrame{Epoch: o.epoch, Dt: dt, MergedWrites: merged, Conflicts: conflicts, Events: events}
}

// stepTwoPass runs every animation controller against the pre-tick
// blackboard, merges their writes into a staging view, then runs every
// graph controller against that staging view. mergeWrites also writes
// each controller's output into the blackboard as that controller
// completes.
func (o *Orchestrator) stepTwoPass(dt float64) OrchestratorFrame {
	merged := writebatch.New(16)
	var conflicts []ConflictLog
	var events []ControllerEvent

	preTick := make(map[path.TypedPath]BlackboardEntry, len(o.blackboard))
	for p, e := range o.blackboard {
		preTick[p] = e
	}
	staging := make(map[path.TypedPath]BlackboardEntry, len(o.blackboard))
	for p, e := range o.blackboard {
		staging[p] = e
	}

	for _, ac := range o.anims {
		writes, evs := o.tickAnim(ac, preTick, dt, staging, &conflicts)
		appendWriteBatch(merged, writes)
		events = append(events, evs...)
	}

	for _, gc := range o.graphs {
		writes, evs := o.tickGraph(gc, staging, dt, staging, &conflicts)
		appendWriteBatch(merged, writes)
		events = append(events, evs...)
	}

	return OrchestratorFrame{Epoch: o.epoch, Dt: dt, MergedWrites: merged, Conflicts: conflicts, Events: events}
}

// stepRateDecoupled runs each controller only when simulated time has
// crossed a multiple of its own TickPeriod (0 meaning "every tick");
// skipped controllers leave their most recent blackboard writes live.
func (o *Orchestrator) stepRateDecoupled(dt float64) OrchestratorFrame {
	merged := writebatch.New(16)
	var conflicts []ConflictLog
	var events []ControllerEvent
	frameWrites := make(map[path.TypedPath]BlackboardEntry)

	for _, ref := range o.order {
		if ref.graph != nil {
			g := ref.graph
			g.elapsed += dt
			if g.tickPeriod > 0 && g.elapsed < g.tickPeriod {
				continue
			}
			runDt := dt
			if g.tickPeriod > 0 {
				runDt = g.tickPeriod
				g.elapsed -= g.tickPeriod
			}
			writes, evs := o.tickGraph(g, o.blackboard, runDt, frameWrites, &conflicts)
			appendWriteBatch(merged, writes)
			events = append(events, evs...)
		} else {
			a := ref.anim
			a.elapsed += dt
			if a.tickPeriod > 0 && a.elapsed < a.tickPeriod {
				continue
			}
			runDt := dt
			if a.tickPeriod > 0 {
				runDt = a.tickPeriod
				a.elapsed -= a.tickPeriod
			}
			writes, evs := o.tickAnim(a, o.blackboard, runDt, frameWrites, &conflicts)
			appendWriteBatch(merged, writes)
			events = append(events, evs...)
		}
	}

	return OrchestratorFrame{Epoch: o.epoch, Dt: dt, MergedWrites: merged, Conflicts: conflicts, Events: events}
}

func (o *Orchestrator) tickGraph(gc *graphController, readFrom map[path.TypedPath]BlackboardEntry, dt float64, frameWrites map[path.TypedPath]BlackboardEntry, conflicts *[]ConflictLog) (*writebatch.WriteBatch, []ControllerEvent) {
	seedGraphInputsFromBlackboard(gc.runtime, readFrom)
	gc.runtime.Step(dt)
	o.epoch++
	res, err := gc.runtime.EvalAll()
	if err != nil {
		return nil, []ControllerEvent{{Controller: gc.id, Message: err.Error()}}
	}
	mergeWrites(o, res.Writes, gc.id, frameWrites, conflicts)
	return res.Writes, nil
}

func (o *Orchestrator) tickAnim(ac *animController, readFrom map[path.TypedPath]BlackboardEntry, dt float64, frameWrites map[path.TypedPath]BlackboardEntry, conflicts *[]ConflictLog) (*writebatch.WriteBatch, []ControllerEvent) {
	cmds, cmdEvents := translateAnimCommands(ac, readFrom, o.appliedCmdEpoch)
	o.epoch++
	outputs := ac.engine.UpdateValues(dt, anim.TickInputs{PlayerCmds: cmds})

	writes := writebatch.New(len(outputs.Changes))
	for _, ch := range outputs.Changes {
		writes.Append(writebatch.WriteOp{Path: ch.Key, Value: ch.Value})
	}
	mergeWrites(o, writes, ac.id, frameWrites, conflicts)

	events := cmdEvents
	for _, e := range outputs.Events {
		events = append(events, ControllerEvent{Controller: ac.id, Message: formatAnimEvent(e)})
	}
	return writes, events
}

func formatAnimEvent(e anim.Event) string {
	if e.Message != "" {
		return fmt.Sprintf("player %d instance %d: %s (%s)", e.PlayerID, e.InstID, e.Message, e.Path.String())
	}
	return fmt.Sprintf("player %d instance %d: event kind %d on %s", e.PlayerID, e.InstID, e.Kind, e.Path.String())
}
