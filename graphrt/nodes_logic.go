package graphrt

import (
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// evalLogic implements And/Or/Not/If over Bool inputs. If selects "a" or
// "b" by the Bool "cond" input (specification §4.2).
func evalLogic(slot *nodeSlot, in map[string]value.Value) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"

	switch slot.spec.Kind {
	case KindAnd:
		a, b, err := boolPair(slot, in)
		if err != nil {
			return nil, nil, err
		}
		return map[string]value.Value{"out": value.BoolValue(a && b)}, nil, nil
	case KindOr:
		a, b, err := boolPair(slot, in)
		if err != nil {
			return nil, nil, err
		}
		return map[string]value.Value{"out": value.BoolValue(a || b)}, nil, nil
	case KindNot:
		a, ok := boolOf(inputOr(in, "a", value.BoolValue(false)))
		if !ok {
			return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: input %q is not a bool", slot.spec.Id, "a")
		}
		return map[string]value.Value{"out": value.BoolValue(!a)}, nil, nil
	case KindIf:
		cond, ok := boolOf(inputOr(in, "cond", value.BoolValue(false)))
		if !ok {
			return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: input %q is not a bool", slot.spec.Id, "cond")
		}
		if cond {
			return map[string]value.Value{"out": inputOr(in, "a", value.Float32(0))}, nil, nil
		}
		return map[string]value.Value{"out": inputOr(in, "b", value.Float32(0))}, nil, nil
	default:
		return nil, nil, vzerr.Newf(vzerr.KindUnknownNodeKind, op, "node %q: unexpected logic kind", slot.spec.Id)
	}
}

func boolPair(slot *nodeSlot, in map[string]value.Value) (bool, bool, error) {
	const op = "graphrt.EvalAll"
	a, aok := boolOf(inputOr(in, "a", value.BoolValue(false)))
	b, bok := boolOf(inputOr(in, "b", value.BoolValue(false)))
	if !aok || !bok {
		return false, false, vzerr.Newf(vzerr.KindShapeError, op, "node %q: inputs must be bool", slot.spec.Id)
	}
	return a, b, nil
}

func boolOf(v value.Value) (bool, bool) {
	if v.Kind != value.KindBool {
		return false, false
	}
	return v.Bool, true
}
