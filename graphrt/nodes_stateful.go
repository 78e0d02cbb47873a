package graphrt

import (
	"math"

	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// evalStateful implements the Spring/Damp/Slew filter family, each keyed by
// the node's NodeState entry (specification §4.2's "state machines", keyed
// by node id and preserved across a LoadGraph reload for surviving ids).
// dt is a per-node param, not the runtime clock, so a filter chain can run
// at a rate independent of the oscillator/time-consuming nodes.
func evalStateful(slot *nodeSlot, in map[string]value.Value, st *NodeState) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	target := inputOr(in, "target", value.Float32(0))
	dt := paramOr(slot, "dt", value.Float32(0)).Float

	switch slot.spec.Kind {
	case KindSpring:
		return evalSpring(slot, target, dt, st)
	case KindDamp:
		return evalDamp(slot, target, dt, st)
	case KindSlew:
		return evalSlew(slot, target, dt, st)
	default:
		return nil, nil, vzerr.Newf(vzerr.KindUnknownNodeKind, op, "node %q: unexpected stateful kind", slot.spec.Id)
	}
}

// evalSpring integrates a semi-implicit-Euler damped harmonic oscillator
// toward target: acceleration = stiffness*(target-position) -
// damping*velocity; velocity += acceleration*dt; position += velocity*dt.
// At dt=0 both terms vanish and the state returns unchanged, matching the
// zero-integration-step edge case.
func evalSpring(slot *nodeSlot, target value.Value, dt float32, st *NodeState) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	stiffness := paramOr(slot, "stiffness", value.Float32(100)).Float
	damping := paramOr(slot, "damping", value.Float32(10)).Float

	if !st.hasState {
		st.Position = value.ZeroLike(target)
		st.Velocity = value.ZeroLike(target)
		st.hasState = true
	}
	if !value.CanBroadcastTogether(st.Position, target) {
		return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: target shape changed under a live spring", slot.spec.Id)
	}

	displacement, err := elementwise2(target, st.Position, func(t, p float32) float32 { return t - p })
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindShapeError, op, err)
	}
	accel, err := elementwise2(scaleComponents(displacement, stiffness), scaleComponents(st.Velocity, damping), func(a, b float32) float32 { return a - b })
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindShapeError, op, err)
	}
	newVelocity, err := elementwise2(st.Velocity, scaleComponents(accel, dt), func(v, a float32) float32 { return v + a })
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindShapeError, op, err)
	}
	newPosition, err := elementwise2(st.Position, scaleComponents(newVelocity, dt), func(p, v float32) float32 { return p + v })
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindShapeError, op, err)
	}

	st.Velocity = newVelocity
	st.Position = newPosition
	return map[string]value.Value{"out": st.Position}, nil, nil
}

// evalDamp implements the critically-damped filter: alpha derived from
// half_life, state += alpha*(target-state).
func evalDamp(slot *nodeSlot, target value.Value, dt float32, st *NodeState) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	halfLife := paramOr(slot, "half_life", value.Float32(0.1)).Float

	if !st.hasState {
		st.State = value.ZeroLike(target)
		st.hasState = true
	}
	if !value.CanBroadcastTogether(st.State, target) {
		return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: target shape changed under a live damp", slot.spec.Id)
	}

	var alpha float32
	if halfLife > 0 {
		alpha = 1 - float32(math.Exp(-math.Ln2*float64(dt)/float64(halfLife)))
	}

	diff, err := elementwise2(target, st.State, func(t, s float32) float32 { return t - s })
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindShapeError, op, err)
	}
	newState, err := elementwise2(st.State, scaleComponents(diff, alpha), func(s, d float32) float32 { return s + d })
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindShapeError, op, err)
	}
	st.State = newState
	return map[string]value.Value{"out": st.State}, nil, nil
}

// evalSlew implements the rate-limited follower: delta is target-state
// clamped componentwise to +/- max_rate*dt before being applied.
func evalSlew(slot *nodeSlot, target value.Value, dt float32, st *NodeState) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	maxRate := paramOr(slot, "max_rate", value.Float32(1)).Float
	limit := maxRate * dt

	if !st.hasState {
		st.State = value.ZeroLike(target)
		st.hasState = true
	}
	if !value.CanBroadcastTogether(st.State, target) {
		return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: target shape changed under a live slew", slot.spec.Id)
	}

	diff, err := elementwise2(target, st.State, func(t, s float32) float32 { return t - s })
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindShapeError, op, err)
	}
	clamped := mapUnaryValue(diff, func(x float32) float32 {
		if x > limit {
			return limit
		}
		if x < -limit {
			return -limit
		}
		return x
	})
	newState, err := elementwise2(st.State, clamped, func(s, d float32) float32 { return s + d })
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindShapeError, op, err)
	}
	st.State = newState
	return map[string]value.Value{"out": st.State}, nil, nil
}

// scaleComponents multiplies every numeric component of v by factor.
func scaleComponents(v value.Value, factor float32) value.Value {
	return mapUnaryValue(v, func(x float32) float32 { return x * factor })
}

// mapUnaryValue is mapUnary's result unwrapped to a bare Value, for callers
// that feed it straight into another elementwise step.
func mapUnaryValue(v value.Value, fn func(float32) float32) value.Value {
	return mapUnary(v, fn)["out"]
}
