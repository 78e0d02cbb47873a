package graphrt

import (
	"github.com/vizij-ai/vizij-go/vzerr"
)

// visitState mirrors the teacher's three-color DFS (White/Gray/Black)
// from dfs/topological.go, generalized from vertex ids to NodeHandles.
type visitState uint8

const (
	white visitState = iota
	gray
	black
)

// topoSort computes a topological order over nodes such that every
// upstream dependency (an Inputs entry) appears before the node that
// reads it. It runs the teacher's three-color DFS (dfs/topological.go)
// but over the reverse edges (a node's Inputs point at its dependencies,
// the opposite direction TopologicalSort's Neighbors walks): recursing
// into dependencies before marking a node Black means the natural
// post-order already lists dependencies first, so — unlike the teacher's
// forward-edge version — no reversal step is needed here. On a cycle, it
// additionally enumerates the offending node ids via the live DFS stack —
// a richer diagnostic than the bare CycleDetected the specification
// requires, in the teacher's idiom of maximal actionable error context.
func topoSort(nodes []nodeSlot, idToHandle map[NodeId]NodeHandle) ([]NodeHandle, error) {
	const op = "graphrt.LoadGraph"
	state := make([]visitState, len(nodes))
	order := make([]NodeHandle, 0, len(nodes))
	var stack []NodeHandle

	var visit func(h NodeHandle) error
	visit = func(h NodeHandle) error {
		switch state[h] {
		case gray:
			cyc := cycleFrom(nodes, stack, h)
			return vzerr.Newf(vzerr.KindCycleDetected, op, "cycle detected among nodes %v", cyc)
		case black:
			return nil
		}
		state[h] = gray
		stack = append(stack, h)

		for _, conn := range nodes[h].spec.Inputs {
			upstream, ok := idToHandle[conn.Node]
			if !ok {
				continue
			}
			if err := visit(upstream); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		state[h] = black
		order = append(order, h)
		return nil
	}

	for h := range nodes {
		if state[h] == white {
			if err := visit(NodeHandle(h)); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}

// cycleFrom extracts the cycle (as node ids) from the live DFS stack: the
// sub-slice starting at the first occurrence of the node that closed the
// cycle back-edge.
func cycleFrom(nodes []nodeSlot, stack []NodeHandle, closing NodeHandle) []NodeId {
	start := 0
	for i, h := range stack {
		if h == closing {
			start = i
			break
		}
	}
	ids := make([]NodeId, 0, len(stack)-start+1)
	for _, h := range stack[start:] {
		ids = append(ids, nodes[h].spec.Id)
	}
	ids = append(ids, nodes[closing].spec.Id)
	return ids
}
