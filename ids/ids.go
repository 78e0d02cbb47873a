// Package ids centralizes identifier generation for the module.
//
// Coarse, infrequent entities (animations, controllers) get a UUID-backed
// identifier at creation time — that call happens at load/register time,
// never in the per-tick hot path, so the allocation and randomness cost of
// github.com/google/uuid is immaterial. Hot-path entities (players,
// instances, graph nodes) are instead addressed by compact sequence
// handles minted from a per-engine counter: cheap to compare, cheap to use
// as a map key, and stable across a tick.
package ids

import "github.com/google/uuid"

// AnimId identifies a loaded Animation. Stable for the lifetime of the
// owning Engine.
type AnimId string

// ControllerId identifies a registered controller (animation or graph)
// within an Orchestrator.
type ControllerId string

// NewAnimId mints a fresh AnimId.
func NewAnimId() AnimId { return AnimId(uuid.NewString()) }

// NewControllerId mints a fresh ControllerId.
func NewControllerId() ControllerId { return ControllerId(uuid.NewString()) }

// Handle is a compact, monotonically increasing hot-path identifier used
// for players, instances, and graph node slots. The zero Handle is never
// issued by Sequence and may be used as a sentinel "unset" value.
type Handle uint32

// Sequence mints increasing Handle values starting at 1. It is not
// safe for concurrent use without external synchronization, matching the
// single-writer contract of the engines that own it.
type Sequence struct {
	next uint32
}

// Next returns the next Handle in the sequence.
func (s *Sequence) Next() Handle {
	s.next++
	return Handle(s.next)
}

// Reset rewinds the sequence back to its initial state. Engines call this
// only between ticks (e.g. on full teardown), never mid-tick.
func (s *Sequence) Reset() { s.next = 0 }
