package orchestrator

import (
	"github.com/vizij-ai/vizij-go/graphrt"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/writebatch"
)

// mergeWrites applies source's writes into both the persistent blackboard
// and frameWrites (this tick's running view), appending a ConflictLog
// whenever frameWrites already holds a same-tick write to the same path
// from a different controller (specification §4.3's merge semantics:
// last-writer-wins, but every such collision is recorded).
func mergeWrites(o *Orchestrator, writes *writebatch.WriteBatch, source ControllerId, frameWrites map[path.TypedPath]BlackboardEntry, conflicts *[]ConflictLog) {
	if writes == nil {
		return
	}
	for i := 0; i < writes.Len(); i++ {
		op := writes.At(i)
		entry := BlackboardEntry{Value: op.Value, Shape: op.Shape, Epoch: o.epoch, Source: source}
		if prev, had := frameWrites[op.Path]; had && prev.Source != source {
			*conflicts = append(*conflicts, ConflictLog{
				Path:           op.Path,
				PreviousValue:  prev.Value,
				PreviousShape:  prev.Shape,
				PreviousEpoch:  prev.Epoch,
				PreviousSource: prev.Source,
				NewValue:       entry.Value,
				NewShape:       entry.Shape,
				NewEpoch:       entry.Epoch,
				NewSource:      source,
			})
		}
		frameWrites[op.Path] = entry
		o.blackboard[op.Path] = entry
	}
}

// appendWriteBatch copies every op in src into dst, preserving emission
// order (specification §5: "Within a tick, WriteBatch order matches
// emission order").
func appendWriteBatch(dst *writebatch.WriteBatch, src *writebatch.WriteBatch) {
	if src == nil {
		return
	}
	for i := 0; i < src.Len(); i++ {
		dst.Append(src.At(i))
	}
}

// seedGraphInputsFromBlackboard stages every blackboard path into rt as a
// graph input and advances its epoch, so this tick's Input nodes observe
// the current merged state.
func seedGraphInputsFromBlackboard(rt *graphrt.GraphRuntime, bb map[path.TypedPath]BlackboardEntry) {
	for p, entry := range bb {
		rt.SetInput(p, entry.Value, entry.Shape)
	}
	rt.AdvanceEpoch()
}
