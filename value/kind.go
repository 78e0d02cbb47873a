// Package value implements the closed Value/Shape sum types shared by the
// animation engine, node-graph engine, and orchestrator (specification §3).
//
// Value is a tagged union, not an interface: every variant is a field on a
// single struct, switched on Kind. This mirrors the teacher corpus's own
// closed types (core.Vertex, core.Edge are plain structs, never dispatched
// through an interface) and sidesteps the allocation and indirection a
// virtual-dispatch Value would cost on every blend in the hot loop.
package value

import "fmt"

// Kind identifies which variant of Value (or ShapeId) is populated.
type Kind uint8

// Value kinds, in the order specification §3 lists them.
const (
	KindFloat Kind = iota
	KindBool
	KindText
	KindVec2
	KindVec3
	KindVec4
	KindQuat
	KindColorRgba
	KindVector
	KindTransform
	KindRecord
	KindEnum
	KindArray
	KindList
	KindTuple
)

var kindNames = [...]string{
	KindFloat:     "float",
	KindBool:      "bool",
	KindText:      "text",
	KindVec2:      "vec2",
	KindVec3:      "vec3",
	KindVec4:      "vec4",
	KindQuat:      "quat",
	KindColorRgba: "colorrgba",
	KindVector:    "vector",
	KindTransform: "transform",
	KindRecord:    "record",
	KindEnum:      "enum",
	KindArray:     "array",
	KindList:      "list",
	KindTuple:     "tuple",
}

// String renders the canonical lowercase wire name for the kind, used as
// the JSON envelope's "type" field.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		if name := kindNames[k]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// ParseKind looks up a Kind by its wire name. ok is false for unknown names.
func ParseKind(name string) (k Kind, ok bool) {
	k, ok = kindsByName[name]
	return k, ok
}

// IsNumericLike reports whether a value of this kind is composed entirely
// of finite-real components, so it can stand in for a NaN-of-shape
// fallback (specification §4.2, Input node / selector-fallback behavior).
func (k Kind) IsNumericLike() bool {
	switch k {
	case KindFloat, KindVec2, KindVec3, KindVec4, KindQuat, KindColorRgba, KindVector, KindTransform:
		return true
	default:
		return false
	}
}
