package graphrt

import (
	"math"

	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/writebatch"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// evalOscillator implements the Sin/Triangle/Square/Saw waveform family as
// a pure function of the runtime clock timeS and the node's frequency,
// phase, amplitude, and offset params (specification §4.2).
func evalOscillator(slot *nodeSlot, timeS float64) (map[string]value.Value, *writebatch.WriteOp, error) {
	const op = "graphrt.EvalAll"
	frequency := paramOr(slot, "frequency", value.Float32(1)).Float
	phase := paramOr(slot, "phase", value.Float32(0)).Float
	amplitude := paramOr(slot, "amplitude", value.Float32(1)).Float
	offset := paramOr(slot, "offset", value.Float32(0)).Float

	cyclePos := float64(frequency)*timeS + float64(phase)
	frac := cyclePos - math.Floor(cyclePos)

	var wave float32
	switch slot.spec.Kind {
	case KindOscSin:
		wave = float32(math.Sin(2 * math.Pi * cyclePos))
	case KindOscTriangle:
		wave = float32(4*math.Abs(frac-0.5) - 1)
	case KindOscSquare:
		if frac < 0.5 {
			wave = 1
		} else {
			wave = -1
		}
	case KindOscSaw:
		wave = float32(2*frac - 1)
	default:
		return nil, nil, vzerr.Newf(vzerr.KindUnknownNodeKind, op, "node %q: unexpected oscillator kind", slot.spec.Id)
	}

	return map[string]value.Value{"out": value.Float32(wave*amplitude + offset)}, nil, nil
}
