// Package writebatch implements the append-only, order-preserving buffer
// of writes a tick produces: WriteOp and WriteBatch (specification §3.3).
//
// A WriteBatch is reused across ticks (Reset, not reallocated) so steady
// state produces no per-tick heap allocation beyond what individual
// Values themselves need — the same discipline the teacher's BFS/DFS
// walkers apply to their queue/stack slices (grown once, reused via
// re-slicing, never re-allocated mid-traversal).
package writebatch

import (
	"encoding/json"

	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
)

// WriteOp is one write: a target path, the value written to it, and an
// optional declared shape (nil means "infer from the value via
// value.ShapeOf").
type WriteOp struct {
	Path  path.TypedPath
	Value value.Value
	Shape *value.Shape
}

// EffectiveShape returns Shape if set, otherwise the natural shape of
// Value.
func (op WriteOp) EffectiveShape() value.Shape {
	if op.Shape != nil {
		return *op.Shape
	}
	return value.ShapeOf(op.Value)
}

// WriteBatch is an ordered, append-only sequence of WriteOps. Insertion
// order is the producer's emission order and is preserved through
// iteration and JSON serialization.
type WriteBatch struct {
	ops []WriteOp
}

// New returns an empty WriteBatch with capacity preallocated for cap
// entries (anim.Engine and graphrt.GraphRuntime pass
// Config.ScratchValuesVec).
func New(capacity int) *WriteBatch {
	return &WriteBatch{ops: make([]WriteOp, 0, capacity)}
}

// Append adds op to the end of the batch.
func (b *WriteBatch) Append(op WriteOp) {
	b.ops = append(b.ops, op)
}

// Len returns the number of writes currently in the batch.
func (b *WriteBatch) Len() int { return len(b.ops) }

// At returns the i-th write, in emission order.
func (b *WriteBatch) At(i int) WriteOp { return b.ops[i] }

// Iter calls fn for every write in emission order. Iteration stops early
// if fn returns false.
func (b *WriteBatch) Iter(fn func(int, WriteOp) bool) {
	for i, op := range b.ops {
		if !fn(i, op) {
			return
		}
	}
}

// Reset empties the batch while retaining its backing array, so the next
// tick's writes reuse the same storage.
func (b *WriteBatch) Reset() {
	b.ops = b.ops[:0]
}

// jsonWriteOp mirrors WriteOp for serialization: Shape is omitted (not
// null) when absent, matching the Option<Shape> the specification
// describes.
type jsonWriteOp struct {
	Path  path.TypedPath `json:"path"`
	Value value.Value    `json:"value"`
	Shape *value.Shape   `json:"shape,omitempty"`
}

// MarshalJSON writes b as a JSON array of WriteOps in emission order.
func (b *WriteBatch) MarshalJSON() ([]byte, error) {
	out := make([]jsonWriteOp, len(b.ops))
	for i, op := range b.ops {
		out[i] = jsonWriteOp{Path: op.Path, Value: op.Value, Shape: op.Shape}
	}
	return json.Marshal(out)
}

// UnmarshalJSON replaces b's contents with the array raw describes, in
// order.
func (b *WriteBatch) UnmarshalJSON(raw []byte) error {
	var in []jsonWriteOp
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	ops := make([]WriteOp, len(in))
	for i, op := range in {
		ops[i] = WriteOp{Path: op.Path, Value: op.Value, Shape: op.Shape}
	}
	b.ops = ops
	return nil
}
