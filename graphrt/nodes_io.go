package graphrt

import (
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// evalConstant returns params.value verbatim on port "out".
func evalConstant(slot *nodeSlot) (map[string]value.Value, *writebatch.WriteOp, error) {
	v := paramOr(slot, "value", value.Float32(0))
	return map[string]value.Value{"out": v}, nil, nil
}

// evalInput returns the staged input for params.path in the current
// visible epoch. A missing input with a numeric declared output shape
// falls back to NaN-of-shape, deterministically; a missing input with a
// declared non-numeric shape is a StrictParamError (specification §4.2).
func evalInput(r *GraphRuntime, slot *nodeSlot) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	pathVal := paramOr(slot, "path", value.TextValue(""))
	p, err := path.Parse(pathVal.Text)
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindParseError, op, err)
	}

	staged, ok := r.visible[p]
	if ok {
		return map[string]value.Value{"out": staged.value}, nil, nil
	}

	declared, hasDeclared := slot.spec.OutputShapes["out"]
	if hasDeclared && isNumericKind(declared.ID.Kind) {
		return map[string]value.Value{"out": value.NaNOfShape(declared)}, nil, nil
	}
	if hasDeclared {
		return nil, nil, vzerr.Newf(vzerr.KindStrictParamError, op, "node %q: input %q missing and declared shape %s is not numeric", slot.spec.Id, p, declared.ID.Kind)
	}
	return map[string]value.Value{"out": value.Float32(0)}, nil, nil
}

// evalOutput passes its single "in" input through to "out" and emits the
// sink WriteOp to params.path. An Output node with no configured path is a
// valid no-op sink: it still forwards its input on port "out" but produces
// no WriteOp and no error.
func evalOutput(slot *nodeSlot, in map[string]value.Value) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	v, ok := in["in"]
	if !ok {
		v = value.Float32(0)
	}
	pathVal := paramOr(slot, "path", value.TextValue(""))
	if pathVal.Text == "" {
		return map[string]value.Value{"out": v}, nil, nil
	}
	p, err := path.Parse(pathVal.Text)
	if err != nil {
		return nil, nil, vzerr.New(vzerr.KindParseError, op, err)
	}
	write := writebatch.WriteOp{Path: p, Value: v}
	return map[string]value.Value{"out": v}, &write, nil
}
