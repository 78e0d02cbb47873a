package graphrt

import (
	"sort"

	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// evalCompose implements the optional Split/Join mechanical record
// constructors/destructors (specification §4.2: "selectors are edge-level;
// Split and Join optional ... mechanical record/tuple constructors").
// Split explodes a Record's "in" input into one output port per field
// name. Join assembles its named inputs into a single Record output,
// ordered by params.fields if given, else by sorted input port name.
func evalCompose(slot *nodeSlot, in map[string]value.Value) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	switch slot.spec.Kind {
	case KindSplit:
		src := inputOr(in, "in", value.Value{})
		if src.Kind != value.KindRecord || src.Record == nil {
			return nil, nil, vzerr.Newf(vzerr.KindShapeError, op, "node %q: Split requires a Record input", slot.spec.Id)
		}
		out := make(map[string]value.Value, len(src.Record.Fields))
		for _, f := range src.Record.Fields {
			out[f.Name] = f.Value
		}
		return out, nil, nil

	case KindJoin:
		names := fieldOrder(slot, in)
		fields := make([]value.RecordField, 0, len(names))
		for _, name := range names {
			fields = append(fields, value.RecordField{Name: name, Value: in[name]})
		}
		return map[string]value.Value{"out": value.RecordFromValue(value.NewRecord(fields...))}, nil, nil

	default:
		return nil, nil, vzerr.Newf(vzerr.KindUnknownNodeKind, op, "node %q: unexpected compose kind", slot.spec.Id)
	}
}

// fieldOrder returns Join's field order: params.fields (a Tuple/Array/List
// of Text) if declared, else the input port names sorted for determinism.
func fieldOrder(slot *nodeSlot, in map[string]value.Value) []string {
	if declared, ok := slot.spec.Params["fields"]; ok {
		var elems []value.Value
		switch declared.Kind {
		case value.KindTuple:
			elems = declared.Tuple
		case value.KindArray:
			elems = declared.Array
		case value.KindList:
			elems = declared.List
		}
		if len(elems) > 0 {
			names := make([]string, 0, len(elems))
			for _, e := range elems {
				if e.Kind == value.KindText {
					names = append(names, e.Text)
				}
			}
			if len(names) > 0 {
				return names
			}
		}
	}
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
