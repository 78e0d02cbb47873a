// Package path implements TypedPath, the canonical addressable-target
// identifier shared by the animation engine, node-graph engine, and
// orchestrator: a namespace, zero or more slash-separated segments, and
// zero or more dot-separated fields.
//
// TypedPath is a small, single-purpose, heavily-commented type in the style
// of the teacher corpus's traversal packages (bfs, dijkstra): one file,
// sentinel errors, no hidden state.
package path

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPath is returned when parsing an empty string.
var ErrEmptyPath = errors.New("path: empty path")

// ErrInvalidSegment is returned when a segment or field component is empty
// (e.g. a doubled separator like "a//b" or a trailing ".").
var ErrInvalidSegment = errors.New("path: invalid empty segment or field")

// TypedPath is a parsed `namespace(/segment)*(.field)*` identifier. The
// grammar has no synonyms — two different strings never describe the same
// path — so TypedPath stores only its canonical string form. That keeps it
// comparable (usable directly as a map key, in a BindingTable or
// Blackboard, with ==/Equal agreeing) without the slice fields a
// Namespace/Segments/Fields struct would need.
type TypedPath struct {
	raw string
}

// Parse splits raw into namespace, slash-separated segments, and
// dot-separated fields, validating as it goes, and stores the canonical
// form. The namespace and every segment/field component must be
// non-empty: an empty raw string, or one with the shape "a//b" or "a." or
// ".a", is rejected.
func Parse(raw string) (TypedPath, error) {
	if raw == "" {
		return TypedPath{}, ErrEmptyPath
	}

	dotIdx := strings.IndexByte(raw, '.')
	pathPart := raw
	fieldPart := ""
	if dotIdx >= 0 {
		pathPart = raw[:dotIdx]
		fieldPart = raw[dotIdx+1:]
	}

	for _, s := range strings.Split(pathPart, "/") {
		if s == "" {
			return TypedPath{}, fmt.Errorf("%w: %q", ErrInvalidSegment, raw)
		}
	}
	if dotIdx >= 0 {
		for _, f := range strings.Split(fieldPart, ".") {
			if f == "" {
				return TypedPath{}, fmt.Errorf("%w: %q", ErrInvalidSegment, raw)
			}
		}
	}

	return TypedPath{raw: raw}, nil
}

// MustParse is Parse, panicking on error. Intended for fixtures and tests,
// not for parsing host-supplied input.
func MustParse(raw string) TypedPath {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders p back into its canonical form. Parse(s).String() == s
// holds for every s Parse accepts.
func (p TypedPath) String() string { return p.raw }

// Equal reports structural equality.
func (p TypedPath) Equal(o TypedPath) bool { return p.raw == o.raw }

// IsZero reports whether p is the zero value (never produced by Parse,
// since Parse rejects the empty string).
func (p TypedPath) IsZero() bool { return p.raw == "" }

// Namespace returns the leading component, before any "/" or ".".
func (p TypedPath) Namespace() string {
	ns, _, _ := p.split()
	return ns
}

// Segments returns the slash-separated components after the namespace,
// not including any dot-separated fields.
func (p TypedPath) Segments() []string {
	_, segs, _ := p.split()
	return segs
}

// Fields returns the dot-separated trailing components, or nil if p has
// none.
func (p TypedPath) Fields() []string {
	_, _, fields := p.split()
	return fields
}

func (p TypedPath) split() (namespace string, segments []string, fields []string) {
	if p.raw == "" {
		return "", nil, nil
	}
	pathPart := p.raw
	dotIdx := strings.IndexByte(p.raw, '.')
	if dotIdx >= 0 {
		pathPart = p.raw[:dotIdx]
		fields = strings.Split(p.raw[dotIdx+1:], ".")
	}
	parts := strings.Split(pathPart, "/")
	return parts[0], parts[1:], fields
}

// MarshalJSON renders p as its string form, per specification §3's
// "TypedPath: serialized as its string form".
func (p TypedPath) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.raw)
}

// UnmarshalJSON parses p from its string form.
func (p *TypedPath) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("path: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
