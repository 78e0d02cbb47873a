package anim

import (
	"github.com/vizij-ai/vizij-go/ids"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// StoredKeypoint is the load-time form of Keypoint: Transitions is
// optional, defaulting per specification §3 when omitted.
type StoredKeypoint struct {
	ID          string
	Stamp       float64
	Value       value.Value
	Transitions *Transitions
}

// StoredTrack is the load-time form of Track.
type StoredTrack struct {
	ID           string
	AnimatableID path.TypedPath
	Points       []StoredKeypoint
	Settings     TrackSettings
}

// StoredAnimation is the wire/host form LoadAnimation accepts: `{ id?,
// name?, duration: ms, tracks: [Track], groups }` (specification §6).
type StoredAnimation struct {
	ID         string
	Name       string
	DurationMs float64
	Tracks     []StoredTrack
	Groups     []string
}

// LoadAnimation parses and interns stored, rejecting a non-positive
// duration, an out-of-[0,1] bezier handle X, or a duplicate keypoint id
// within one track (specification §4.1's load_animation contract).
// Nothing is mutated on error.
func (e *Engine) LoadAnimation(stored StoredAnimation) (ids.AnimId, error) {
	const op = "anim.LoadAnimation"
	if stored.DurationMs <= 0 {
		return "", vzerr.Newf(vzerr.KindParseError, op, "duration must be positive, got %v", stored.DurationMs)
	}
	if len(stored.Tracks) == 0 {
		return "", vzerr.Newf(vzerr.KindParseError, op, "animation has no tracks")
	}

	tracks := make([]Track, len(stored.Tracks))
	for ti, st := range stored.Tracks {
		if len(st.Points) == 0 {
			return "", vzerr.Newf(vzerr.KindParseError, op, "track %q has no keypoints", st.ID)
		}
		seen := make(map[string]bool, len(st.Points))
		points := make([]Keypoint, len(st.Points))
		for pi, sp := range st.Points {
			if seen[sp.ID] {
				return "", vzerr.Newf(vzerr.KindParseError, op, "track %q: duplicate keypoint id %q", st.ID, sp.ID)
			}
			seen[sp.ID] = true

			trans := Transitions{Out: DefaultOutHandle, In: DefaultInHandle}
			if sp.Transitions != nil {
				trans = *sp.Transitions
			}
			if trans.Out.X < 0 || trans.Out.X > 1 {
				return "", vzerr.Newf(vzerr.KindParseError, op, "keypoint %q: out-handle X %v out of [0,1]", sp.ID, trans.Out.X)
			}
			if trans.In.X < 0 || trans.In.X > 1 {
				return "", vzerr.Newf(vzerr.KindParseError, op, "keypoint %q: in-handle X %v out of [0,1]", sp.ID, trans.In.X)
			}
			stamp := sp.Stamp
			if stamp < 0 {
				stamp = 0
			} else if stamp > 1 {
				stamp = 1
			}
			points[pi] = Keypoint{ID: sp.ID, Stamp: stamp, Value: sp.Value, Transitions: trans}
		}
		sortKeypointsByStamp(points)
		tracks[ti] = Track{ID: st.ID, AnimatableID: st.AnimatableID, Points: points, Settings: st.Settings}
	}

	animID := ids.AnimId(stored.ID)
	if animID == "" {
		animID = ids.NewAnimId()
	}
	if _, dup := e.animations[animID]; dup {
		return "", vzerr.Newf(vzerr.KindParseError, op, "duplicate animation id %q", animID)
	}

	e.animations[animID] = &Animation{
		ID:         animID,
		Name:       stored.Name,
		DurationMs: stored.DurationMs,
		Tracks:     tracks,
		Groups:     append([]string(nil), stored.Groups...),
	}
	return animID, nil
}

// sortKeypointsByStamp orders points ascending by Stamp using a simple
// insertion sort: tracks carry at most a few dozen keypoints in practice,
// so the O(n^2) worst case never matters, and insertion sort keeps points
// with equal stamps in their original (authoring) order.
func sortKeypointsByStamp(points []Keypoint) {
	for i := 1; i < len(points); i++ {
		for j := i; j > 0 && points[j].Stamp < points[j-1].Stamp; j-- {
			points[j], points[j-1] = points[j-1], points[j]
		}
	}
}

