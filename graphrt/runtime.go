package graphrt

import (
	"github.com/vizij-ai/vizij-go/config"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// nodeSlot is one arena entry: the node's static spec plus its resolved
// handle-based input wiring (computed once at LoadGraph so EvalAll never
// does a NodeId map lookup in the hot loop).
type nodeSlot struct {
	spec   NodeSpec
	inputs map[string]resolvedInput
}

// resolvedInput is an InputConnection with its source node pre-resolved
// to a NodeHandle.
type resolvedInput struct {
	source   NodeHandle
	port     string
	selector []SelectorSegment
}

// GraphRuntime owns one loaded GraphSpec's arena, topological order,
// staged/visible inputs, per-node stateful-filter state, and scratch
// WriteBatch (specification §4.2). Exclusively owned — no state is shared
// across GraphRuntime instances (specification §5).
type GraphRuntime struct {
	cfg config.Config

	nodes      []nodeSlot
	idToHandle map[NodeId]NodeHandle
	order      []NodeHandle

	selectorNaNFallback bool

	outputs []map[string]PortSnapshot

	state map[NodeId]*NodeState

	timeS float64

	staging  map[path.TypedPath]stagedInput
	visible  map[path.TypedPath]stagedInput
	epoch    uint64

	writes *writebatch.WriteBatch
}

// Flags carries graph-level evaluation toggles (specification §9's Open
// Question, deferred and gated off by default).
type Flags struct {
	SelectorNaNFallback bool
}

// New constructs an empty GraphRuntime sized from cfg. Call LoadGraph to
// populate it.
func New(cfg config.Config) *GraphRuntime {
	return &GraphRuntime{
		cfg:     cfg,
		staging: make(map[path.TypedPath]stagedInput),
		visible: make(map[path.TypedPath]stagedInput),
		state:   make(map[NodeId]*NodeState),
		writes:  writebatch.New(cfg.ScratchValuesVec),
	}
}

// LoadGraph normalizes and validates spec: every InputConnection must name
// a node present in spec, the resulting dependency graph must be acyclic,
// and the topological order is computed once up front. per_node_state
// entries whose NodeId is no longer present in spec are dropped; entries
// for surviving ids are preserved (specification §4.2's reload contract).
func (r *GraphRuntime) LoadGraph(spec GraphSpec, flags Flags) error {
	const op = "graphrt.LoadGraph"

	idToHandle := make(map[NodeId]NodeHandle, len(spec.Nodes))
	for i, n := range spec.Nodes {
		if _, dup := idToHandle[n.Id]; dup {
			return vzerr.Newf(vzerr.KindParseError, op, "duplicate node id %q", n.Id)
		}
		idToHandle[n.Id] = NodeHandle(i)
	}

	nodes := make([]nodeSlot, len(spec.Nodes))
	for i, n := range spec.Nodes {
		resolved := make(map[string]resolvedInput, len(n.Inputs))
		for port, conn := range n.Inputs {
			src, ok := idToHandle[conn.Node]
			if !ok {
				return vzerr.Newf(vzerr.KindParseError, op, "node %q: input %q references unknown node %q", n.Id, port, conn.Node)
			}
			resolved[port] = resolvedInput{source: src, port: conn.Port, selector: conn.Selector}
		}
		nodes[i] = nodeSlot{spec: n, inputs: resolved}
	}

	order, err := topoSort(nodes, idToHandle)
	if err != nil {
		return err
	}

	survivingState := make(map[NodeId]*NodeState, len(idToHandle))
	for id := range idToHandle {
		if st, ok := r.state[id]; ok {
			survivingState[id] = st
		}
	}

	r.nodes = nodes
	r.idToHandle = idToHandle
	r.order = order
	r.state = survivingState
	r.selectorNaNFallback = flags.SelectorNaNFallback || r.cfg.Features.SelectorNaNFallback
	r.outputs = make([]map[string]PortSnapshot, len(nodes))
	for i := range r.outputs {
		r.outputs[i] = make(map[string]PortSnapshot)
	}
	return nil
}

// SetTime sets the runtime clock oscillator/time-consuming nodes read.
func (r *GraphRuntime) SetTime(t float64) { r.timeS = t }

// Step advances the runtime clock by dt — a convenience identical to
// SetTime(current + dt), for hosts that drive the graph by delta rather
// than absolute time.
func (r *GraphRuntime) Step(dt float64) { r.timeS += dt }

// SetInput stages value under path for the next committed epoch
// (specification §4.2: "stores under current epoch"). declaredShape may
// be nil to infer from value.
func (r *GraphRuntime) SetInput(p path.TypedPath, v value.Value, declaredShape *value.Shape) {
	r.staging[p] = stagedInput{value: v, declaredShape: declaredShape, epoch: r.epoch}
}

// RemoveInput clears any staged or committed value for p.
func (r *GraphRuntime) RemoveInput(p path.TypedPath) {
	delete(r.staging, p)
	delete(r.visible, p)
}

// AdvanceEpoch commits staged inputs into the visible set read by Input
// nodes and bumps the epoch counter, so inputs staged after this call
// remain invisible until the next AdvanceEpoch (specification §4.2 step
// 3 and the standalone advance_epoch op).
func (r *GraphRuntime) AdvanceEpoch() {
	for p, in := range r.staging {
		r.visible[p] = in
	}
	r.epoch++
}

// SetParam overwrites one of nodeID's params, strictly typed: a numeric
// existing param rejects a non-numeric replacement (specification §4.2).
func (r *GraphRuntime) SetParam(nodeID NodeId, key string, v value.Value) error {
	const op = "graphrt.SetParam"
	h, ok := r.idToHandle[nodeID]
	if !ok {
		return vzerr.Newf(vzerr.KindCommandTargetMissing, op, "node %q not found", nodeID)
	}
	slot := &r.nodes[h]
	if slot.spec.Params == nil {
		slot.spec.Params = make(map[string]value.Value)
	}
	if existing, had := slot.spec.Params[key]; had && isNumericKind(existing.Kind) && !isNumericKind(v.Kind) {
		return vzerr.Newf(vzerr.KindStrictParamError, op, "param %q on node %q is numeric, got %s", key, nodeID, v.Kind)
	}
	slot.spec.Params[key] = v
	return nil
}

func isNumericKind(k value.Kind) bool {
	switch k {
	case value.KindFloat, value.KindVec2, value.KindVec3, value.KindVec4,
		value.KindQuat, value.KindColorRgba, value.KindVector:
		return true
	default:
		return false
	}
}

// EvalResult is the return value of EvalAll: a snapshot of every node's
// output ports, plus the WriteBatch its sink nodes produced.
type EvalResult struct {
	Nodes  map[NodeId]map[string]PortSnapshot
	Writes *writebatch.WriteBatch
}

// EvalAll runs one full evaluation pass over the precomputed topological
// order (specification §4.2's per-call algorithm). On any frame-level
// error (SelectorError, ShapeError, StrictParamError, UnknownNodeKind),
// outputs/writes are left untouched from the prior successful call and
// the error is returned — no partial writes are ever visible.
func (r *GraphRuntime) EvalAll() (EvalResult, error) {
	const op = "graphrt.EvalAll"

	scratchOutputs := make([]map[string]PortSnapshot, len(r.nodes))
	for i := range scratchOutputs {
		scratchOutputs[i] = make(map[string]PortSnapshot)
	}
	scratchWrites := writebatch.New(r.writes.Len())

	for _, h := range r.order {
		slot := &r.nodes[h]

		resolvedIn := make(map[string]value.Value, len(slot.inputs))
		for port, conn := range slot.inputs {
			upstream, ok := scratchOutputs[conn.source][conn.port]
			if !ok {
				continue
			}
			v := upstream.Value
			if len(conn.selector) > 0 {
				fallbackShape := value.Shape{}
				if s, ok := slot.spec.OutputShapes[port]; ok {
					fallbackShape = s
				}
				projected, err := applySelector(v, conn.selector, r.selectorNaNFallback, fallbackShape)
				if err != nil {
					return EvalResult{}, err
				}
				v = projected
			}
			resolvedIn[port] = v
		}

		st := r.state[slot.spec.Id]
		if st == nil {
			st = &NodeState{}
			r.state[slot.spec.Id] = st
		}

		outPorts, sinkWrite, err := evalNode(r, slot, resolvedIn, st)
		if err != nil {
			return EvalResult{}, err
		}

		for port, v := range outPorts {
			declared, hasDeclared := slot.spec.OutputShapes[port]
			shape := value.ShapeOf(v)
			if hasDeclared {
				if !declared.Matches(v) {
					return EvalResult{}, vzerr.Newf(vzerr.KindShapeError, op, "node %q port %q: value does not match declared shape", slot.spec.Id, port)
				}
				shape = declared
			}
			scratchOutputs[h][port] = PortSnapshot{Value: v, Shape: shape}
		}

		if sinkWrite != nil {
			scratchWrites.Append(*sinkWrite)
		}
	}

	r.outputs = scratchOutputs
	r.writes = scratchWrites

	nodesOut := make(map[NodeId]map[string]PortSnapshot, len(r.nodes))
	for i, slot := range r.nodes {
		nodesOut[slot.spec.Id] = r.outputs[i]
	}

	r.AdvanceEpoch()

	return EvalResult{Nodes: nodesOut, Writes: r.writes}, nil
}
