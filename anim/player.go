package anim

// windowEndNs returns the player's effective end-of-window time, in
// nanoseconds, falling back to durationNs (the active animation's
// duration) when the window specifies no explicit end.
func windowEndNs(w Window, durationNs int64) int64 {
	if w.EndNs != nil {
		return *w.EndNs
	}
	return durationNs
}

// advancePlayer moves p.TimeNs forward by dtSeconds * speed * direction,
// then folds the result back into [StartNs, end] per p.Mode
// (specification §4.1 step 2). durationNs is the longest duration among
// the player's attached instances' animations — the natural "window end"
// when the player declares none itself.
//
// Returns the events produced by this step (PlaybackEnded / direction
// flips), if any.
func advancePlayer(p *Player, dtSeconds float64, durationNs int64) []Event {
	if p.direction == 0 {
		p.direction = 1
	}
	if p.State != StatePlaying {
		return nil
	}

	start := p.Window.StartNs
	end := windowEndNs(p.Window, durationNs)
	if end <= start {
		return nil
	}
	length := end - start

	deltaNs := int64(dtSeconds * p.Speed * float64(p.direction) * 1e9)
	p.TimeNs += deltaNs

	var events []Event

	switch p.Mode {
	case ModeOnce:
		if p.TimeNs >= end {
			p.TimeNs = end
			p.State = StateStopped
			events = append(events, Event{Kind: EventPlaybackEnded, PlayerID: p.ID})
		} else if p.TimeNs < start {
			p.TimeNs = start
		}
	case ModeLoop:
		if length > 0 {
			offset := (p.TimeNs - start) % length
			if offset < 0 {
				offset += length
			}
			p.TimeNs = start + offset
		}
	case ModePingPong:
		if length > 0 {
			offset := p.TimeNs - start
			period := 2 * length
			offset %= period
			if offset < 0 {
				offset += period
			}
			if offset > length {
				offset = period - offset
				p.direction = -p.direction
				events = append(events, Event{Kind: EventDirectionFlip, PlayerID: p.ID})
			} else if p.direction == -1 && offset == 0 {
				p.direction = 1
				events = append(events, Event{Kind: EventDirectionFlip, PlayerID: p.ID})
			} else if p.direction == -1 && offset == length {
				// reflecting exactly at the far edge; direction stays -1
				// until TimeNs crosses back past it on a later tick.
			}
			p.TimeNs = start + offset
		}
	}

	return events
}

// seekPlayer clamps t into the player's window and sets TimeNs directly
// (specification §8: "Seek clamped to window endpoints").
func seekPlayer(p *Player, t int64, durationNs int64) {
	start := p.Window.StartNs
	end := windowEndNs(p.Window, durationNs)
	if t < start {
		t = start
	} else if t > end {
		t = end
	}
	p.TimeNs = t
}

// instanceLocalTimeNs computes an instance's local sample time in
// nanoseconds (specification §4.1 step 3): the player's time scaled and
// offset per-instance; normalizedStamp then divides it by the
// animation's duration.
func instanceLocalTimeNs(p *Player, inst *Instance) float64 {
	return float64(p.TimeNs)*inst.TimeScale + inst.StartOffset*1e9
}

// normalizedStamp maps a local time (ns) into [0,1] against durationNs,
// clamping outside the range (an instance sampled past its own
// animation's duration holds at the nearest edge, consistent with Once
// mode's own clamp-and-hold behavior).
func normalizedStamp(localNs float64, durationNs int64) float64 {
	if durationNs <= 0 {
		return 0
	}
	s := localNs / float64(durationNs)
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
