// Package vzerr defines the shared error-kind taxonomy used by the anim,
// graphrt, and orchestrator packages.
//
// Errors built here satisfy errors.Is against one of the Kind sentinels
// below, so a host can branch on failure category without parsing error
// strings. The value, path, writebatch, and specbuilder packages return
// their own plain errors instead.
package vzerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the categories named in the
// propagation-policy section of the specification. Kind values are stable
// and safe to compare and log.
type Kind string

// Error kinds. Names are indicative of cause, not of severity: a
// PrebindUnresolved or Overflow kind is reported as a non-fatal Event by
// the engines, never as a returned error — see anim.Event.
const (
	KindParseError           Kind = "parse_error"
	KindShapeError           Kind = "shape_error"
	KindSelectorError        Kind = "selector_error"
	KindStrictParamError     Kind = "strict_param_error"
	KindCycleDetected        Kind = "cycle_detected"
	KindUnknownNodeKind      Kind = "unknown_node_kind"
	KindCommandTargetMissing Kind = "command_target_missing"
	KindPrebindUnresolved    Kind = "prebind_unresolved"
	KindAbiMismatch          Kind = "abi_mismatch"
	KindOverflow             Kind = "overflow"
)

// Sentinel base errors, one per Kind. Use errors.Is(err, vzerr.ErrShapeError)
// to test category regardless of which package or Op produced err.
var (
	ErrParseError           = errors.New("vzerr: parse error")
	ErrShapeError           = errors.New("vzerr: shape error")
	ErrSelectorError        = errors.New("vzerr: selector error")
	ErrStrictParamError     = errors.New("vzerr: strict param error")
	ErrCycleDetected        = errors.New("vzerr: cycle detected")
	ErrUnknownNodeKind      = errors.New("vzerr: unknown node kind")
	ErrCommandTargetMissing = errors.New("vzerr: command target missing")
	ErrPrebindUnresolved    = errors.New("vzerr: prebind unresolved")
	ErrAbiMismatch          = errors.New("vzerr: abi mismatch")
	ErrOverflow             = errors.New("vzerr: overflow")
)

var sentinels = map[Kind]error{
	KindParseError:           ErrParseError,
	KindShapeError:           ErrShapeError,
	KindSelectorError:        ErrSelectorError,
	KindStrictParamError:     ErrStrictParamError,
	KindCycleDetected:        ErrCycleDetected,
	KindUnknownNodeKind:      ErrUnknownNodeKind,
	KindCommandTargetMissing: ErrCommandTargetMissing,
	KindPrebindUnresolved:    ErrPrebindUnresolved,
	KindAbiMismatch:          ErrAbiMismatch,
	KindOverflow:             ErrOverflow,
}

// Error is a Kind-tagged error carrying the operation name and an optional
// wrapped cause. Op should be "package.Func" (e.g. "graphrt.EvalAll").
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap exposes the wrapped cause to errors.Unwrap/errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the Kind sentinel matching e.Kind, so
// errors.Is(err, vzerr.ErrShapeError) works for any *Error of that Kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && target == sentinel
}

// New builds an *Error for kind, tagged with op and wrapping cause (which
// may be nil for a bare categorical error).
func New(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// Newf is New with a formatted cause message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return New(kind, op, fmt.Errorf(format, args...))
}
