package graphrt

import (
	"errors"

	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// errShapeMismatch is the shared cause wrapped into a ShapeError by any
// node-family elementwise helper that receives incompatible operand shapes.
var errShapeMismatch = errors.New("graphrt: operand shapes do not match")

// evalNode dispatches slot's operation over its resolved inputs
// (specification §4.2 step 2b), returning the node's output ports and,
// for a sink (Output) node, the WriteOp to append to this frame's batch.
func evalNode(r *GraphRuntime, slot *nodeSlot, in map[string]value.Value, st *NodeState) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	switch slot.spec.Kind {
	case KindConstant:
		return evalConstant(slot)
	case KindInput:
		return evalInput(r, slot)
	case KindOutput:
		return evalOutput(slot, in)
	case KindAdd, KindSub, KindMultiply, KindDivide:
		return evalArith(slot, in)
	case KindGreaterThan, KindLessThan, KindEqual:
		return evalCompare(slot, in)
	case KindAnd, KindOr, KindNot, KindIf:
		return evalLogic(slot, in)
	case KindSin, KindCos, KindTan, KindClamp, KindAbs, KindMin, KindMax:
		return evalMath(slot, in)
	case KindSpring, KindDamp, KindSlew:
		return evalStateful(slot, in, st)
	case KindOscSin, KindOscTriangle, KindOscSquare, KindOscSaw:
		return evalOscillator(slot, r.timeS)
	case KindVectorIndex, KindVectorLength, KindVectorDot, KindVectorCross, KindVectorNormalize:
		return evalVectorOp(slot, in)
	case KindSplit, KindJoin:
		return evalCompose(slot, in)
	default:
		return nil, nil, vzerr.Newf(vzerr.KindUnknownNodeKind, op, "node %q: unknown kind %d", slot.spec.Id, slot.spec.Kind)
	}
}

// paramOr returns slot's param named key, or fallback if absent.
func paramOr(slot *nodeSlot, key string, fallback value.Value) value.Value {
	if slot.spec.Params == nil {
		return fallback
	}
	if v, ok := slot.spec.Params[key]; ok {
		return v
	}
	return fallback
}
