package anim

import (
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
)

// sampleTrack evaluates track at normalized stamp, returning its blended
// value per specification §4.1 step 4. ok is false only for a track with
// no keypoints (rejected at load, but defended against here too).
func sampleTrack(track Track, stamp float64) (value.Value, bool) {
	pts := track.Points
	if len(pts) == 0 {
		return value.Value{}, false
	}
	if len(pts) == 1 || stamp <= pts[0].Stamp {
		return pts[0].Value, true
	}
	last := pts[len(pts)-1]
	if stamp >= last.Stamp {
		return last.Value, true
	}

	for i := 0; i < len(pts)-1; i++ {
		left, right := pts[i], pts[i+1]
		if stamp >= left.Stamp && stamp <= right.Stamp {
			span := right.Stamp - left.Stamp
			if span <= 0 {
				return left.Value, true
			}
			progress := (stamp - left.Stamp) / span
			weight := easingWeight(progress, left.Transitions.Out, right.Transitions.In)
			return value.Lerp(left.Value, right.Value, float32(weight)), true
		}
	}
	return last.Value, true
}

// accEntry accumulates weighted contributions toward one binding target
// (specification §4.1 step 5) across the instances attached to a player.
type accEntry struct {
	sum         value.Value
	totalWeight float64
	numeric     bool

	// overrideValue/overrideWeight track the highest-weight contribution
	// seen so far, for non-numeric kinds (Bool/Text/Record/...) where a
	// weighted sum has no natural meaning: the highest-weight instance's
	// value wins, which is this engine's documented convention for
	// blending discrete tracks (see DESIGN.md).
	overrideValue  value.Value
	overrideWeight float64
}

// accumulatePlayer samples every enabled instance of player and folds the
// results into one Change per distinct target path. prior supplies the
// held-over value for a target when this tick's total weight is zero.
// recordStamps gates the instance's prevStamp bookkeeping used to detect
// keypoint crossings: UpdateValues passes true for the real tick, while
// UpdateValuesAndDerivatives's off-center probe samples pass false so a
// derivative evaluation never perturbs real crossing-detection state.
func accumulatePlayer(
	player *Player,
	instances map[InstanceId]*Instance,
	animIndex func(inst Instance) *Animation,
	prior map[path.TypedPath]value.Value,
	recordStamps bool,
) ([]Change, []Event) {
	entries := make(map[path.TypedPath]*accEntry)
	order := make([]path.TypedPath, 0)
	var events []Event

	for _, instID := range player.InstanceIDs {
		inst, ok := instances[instID]
		if !ok || !inst.Enabled || inst.disabledForTick {
			continue
		}
		anim := animIndex(*inst)
		if anim == nil {
			continue
		}
		localNs := instanceLocalTimeNs(player, inst)
		durationNs := int64(anim.DurationMs * 1e6)
		stamp := normalizedStamp(localNs, durationNs)

		if recordStamps {
			if inst.hasPrevStamp {
				events = append(events, keypointCrossingEvents(player.ID, inst.ID, anim, inst.prevStamp, stamp)...)
			}
			inst.prevStamp = stamp
			inst.hasPrevStamp = true
		}

		for _, track := range anim.Tracks {
			v, ok := sampleTrack(track, stamp)
			if !ok {
				continue
			}
			key := track.AnimatableID
			e, exists := entries[key]
			if !exists {
				e = &accEntry{numeric: isAccumulatable(v.Kind)}
				entries[key] = e
				order = append(order, key)
			}
			if e.numeric {
				if e.totalWeight == 0 {
					e.sum = value.ZeroLike(v)
				}
				e.sum = value.WeightedAccumulate(e.sum, v, float32(inst.Weight))
				e.totalWeight += inst.Weight
			} else if inst.Weight >= e.overrideWeight {
				e.overrideValue = v
				e.overrideWeight = inst.Weight
			}
		}
	}

	changes := make([]Change, 0, len(order))
	for _, key := range order {
		e := entries[key]
		var final value.Value
		if e.numeric {
			if e.totalWeight > 0 {
				final = value.Scale(e.sum, float32(1/e.totalWeight))
				if final.Kind == value.KindQuat {
					x, y, z, w := value.NormalizeQuat(final.Quat[0], final.Quat[1], final.Quat[2], final.Quat[3])
					final = value.QuatValue(x, y, z, w)
				}
			} else if held, ok := prior[key]; ok {
				final = held
			} else {
				continue
			}
		} else {
			final = e.overrideValue
		}
		changes = append(changes, Change{PlayerID: player.ID, Key: key, Value: final})
		prior[key] = final
	}

	return changes, events
}

// keypointCrossingEvents reports every keypoint of anim's tracks whose
// Stamp lies in the half-open range (lo, hi], where lo and hi are the
// smaller and larger of prevStamp and stamp (in either playback
// direction) — specification §4.1 step 6's "exact keypoint crossings,
// compare prior and new stamp within segment boundaries".
func keypointCrossingEvents(playerID PlayerId, instID InstanceId, anim *Animation, prevStamp, stamp float64) []Event {
	if prevStamp == stamp {
		return nil
	}
	lo, hi := prevStamp, stamp
	if lo > hi {
		lo, hi = hi, lo
	}
	var events []Event
	for _, track := range anim.Tracks {
		for _, kp := range track.Points {
			if kp.Stamp > lo && kp.Stamp <= hi {
				events = append(events, Event{
					Kind:     EventKeypointCrossed,
					PlayerID: playerID,
					InstID:   instID,
					Path:     track.AnimatableID,
					Message:  kp.ID,
				})
			}
		}
	}
	return events
}

func isAccumulatable(k value.Kind) bool {
	switch k {
	case value.KindFloat, value.KindVec2, value.KindVec3, value.KindVec4,
		value.KindQuat, value.KindColorRgba, value.KindVector:
		return true
	default:
		return false
	}
}
