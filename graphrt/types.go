// Package graphrt implements the Node-Graph Engine: a DAG of typed nodes
// evaluated in topological order once per eval_all call, with selector
// projection on edges and state preserved across reload for stateful
// filter nodes (specification §4.2).
package graphrt

import (
	"github.com/vizij-ai/vizij-go/value"
)

// NodeId names a node within one GraphSpec. Stable across reload: a node
// whose id survives keeps its per_node_state.
type NodeId string

// NodeHandle is the compact arena index GraphRuntime stores nodes under,
// resolved once at LoadGraph time — the same index-over-pointer discipline
// the teacher's core.Graph applies to its adjacency list.
type NodeHandle uint32

// SelectorKind discriminates one segment of an edge selector.
type SelectorKind uint8

const (
	SegField SelectorKind = iota
	SegIndex
)

// SelectorSegment is one step of an edge's projection chain: either a
// named Record/Transform/Enum-inner field, or a numeric Index into a
// Vec*/Quat/ColorRgba/Vector/Array/List/Tuple.
type SelectorSegment struct {
	Kind  SelectorKind
	Field string
	Index int
}

// InputConnection names one upstream node+port an input edge reads from,
// plus an optional selector chain projecting into its value.
type InputConnection struct {
	Node     NodeId
	Port     string
	Selector []SelectorSegment
}

// NodeKind identifies a node's operation (specification §4.2's catalog).
type NodeKind uint8

const (
	KindConstant NodeKind = iota
	KindInput
	KindOutput
	KindAdd
	KindSub
	KindMultiply
	KindDivide
	KindGreaterThan
	KindLessThan
	KindEqual
	KindAnd
	KindOr
	KindNot
	KindIf
	KindSin
	KindCos
	KindTan
	KindClamp
	KindAbs
	KindMin
	KindMax
	KindSpring
	KindDamp
	KindSlew
	KindOscSin
	KindOscTriangle
	KindOscSquare
	KindOscSaw
	KindVectorIndex
	KindVectorLength
	KindVectorDot
	KindVectorCross
	KindVectorNormalize
	KindSplit
	KindJoin
)

// NodeSpec is one node's declaration within a GraphSpec.
type NodeSpec struct {
	Id           NodeId
	Kind         NodeKind
	Inputs       map[string]InputConnection
	Params       map[string]value.Value
	OutputShapes map[string]value.Shape
}

// GraphSpec is the full, load-time description of a node graph
// (specification §6: `{ "nodes": [NodeSpec] }`).
type GraphSpec struct {
	Nodes []NodeSpec
}

// PortSnapshot is one node port's value as of the last eval_all, paired
// with the shape it was validated/inferred against.
type PortSnapshot struct {
	Value value.Value
	Shape value.Shape
}

// stagedInput is one set_input call's payload, tagged with the epoch it
// was staged under.
type stagedInput struct {
	value         value.Value
	declaredShape *value.Shape
	epoch         uint64
}

// NodeState is the mutable per-node state Spring/Damp/Slew nodes carry
// across ticks, keyed by NodeId so it survives a reload that keeps the
// node's id (specification §4.2's "state machines").
type NodeState struct {
	// Position/Velocity back Spring; State backs Damp and Slew.
	Position value.Value
	Velocity value.Value
	State    value.Value
	hasState bool
}
