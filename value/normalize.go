package value

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Normalize accepts either the canonical {"type":..,"data":..} envelope or
// one of the legacy shorthand forms specification §3/§6 lists — a bare
// number/boolean/string, a single-key object like {"vec3":[x,y,z]} or
// {"float": 1.5}, or a bare numeric array (rewritten to a Vector) — and
// rewrites it into the canonical envelope, recursively, so nested Values
// (Record fields, Array/List/Tuple elements, Enum inner) may themselves
// use shorthand.
//
// Record field order is significant (specification §3) and is preserved
// throughout: Normalize never decodes a JSON object into a Go map, which
// would lose key order: object traversal is done by token-scanning
// (decodeOrderedObject), the same approach json.go's unmarshalRecord uses.
func Normalize(raw []byte) ([]byte, error) {
	out, err := normalizeRaw(json.RawMessage(raw))
	if err != nil {
		return nil, err
	}
	return out, nil
}

var shorthandAliases = map[string]string{
	"color": "colorrgba",
}

func shorthandKey(key string) string {
	if alias, ok := shorthandAliases[key]; ok {
		return alias
	}
	return key
}

type envelopeRaw struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func wrapEnvelope(kind string, data json.RawMessage) (json.RawMessage, error) {
	return json.Marshal(envelopeRaw{Type: kind, Data: data})
}

func normalizeRaw(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("value: normalize: empty input")
	}
	switch trimmed[0] {
	case '{':
		return normalizeObject(trimmed)
	case '[':
		return normalizeArray(trimmed)
	case '"':
		return wrapEnvelope("text", trimmed)
	case 't', 'f':
		return wrapEnvelope("bool", trimmed)
	case 'n':
		return nil, fmt.Errorf("value: normalize: null is not representable as a Value")
	default:
		return wrapEnvelope("float", trimmed)
	}
}

func normalizeArray(raw json.RawMessage) (json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("value: normalize: %w", err)
	}
	if len(elems) == 0 {
		return wrapEnvelope("vector", raw)
	}
	for _, e := range elems {
		if !looksNumeric(e) {
			return nil, fmt.Errorf("value: normalize: bare non-numeric array requires an explicit {\"type\":...} envelope")
		}
	}
	return wrapEnvelope("vector", raw)
}

func looksNumeric(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return false
	}
	c := t[0]
	return c == '-' || c == '+' || (c >= '0' && c <= '9')
}

func normalizeObject(raw json.RawMessage) (json.RawMessage, error) {
	keys, vals, err := decodeOrderedObject(raw)
	if err != nil {
		return nil, err
	}

	if idx := indexOf(keys, "type"); idx >= 0 {
		var typeName string
		if err := json.Unmarshal(vals[idx], &typeName); err != nil {
			return nil, fmt.Errorf("value: normalize: \"type\" must be a string: %w", err)
		}
		kind, ok := ParseKind(typeName)
		if !ok {
			return nil, fmt.Errorf("value: normalize: unknown type %q", typeName)
		}
		dataRaw := json.RawMessage("null")
		if di := indexOf(keys, "data"); di >= 0 {
			dataRaw = vals[di]
		}
		normData, err := normalizeEnvelopeData(kind, dataRaw)
		if err != nil {
			return nil, err
		}
		return json.Marshal(envelopeRaw{Type: typeName, Data: normData})
	}

	if len(keys) == 1 {
		key := shorthandKey(keys[0])
		if kind, ok := ParseKind(key); ok {
			normData, err := normalizeEnvelopeData(kind, vals[0])
			if err != nil {
				return nil, err
			}
			return json.Marshal(envelopeRaw{Type: kind.String(), Data: normData})
		}
	}

	return nil, fmt.Errorf("value: normalize: cannot infer a Value type from object keys %v", keys)
}

// normalizeEnvelopeData recursively normalizes the nested Values inside a
// composite kind's data payload. Leaf kinds (scalars, fixed tuples,
// Vector, Transform) carry plain numeric payloads with nothing further to
// normalize.
func normalizeEnvelopeData(kind Kind, data json.RawMessage) (json.RawMessage, error) {
	switch kind {
	case KindRecord:
		return normalizeRecordData(data)
	case KindArray, KindList, KindTuple:
		return normalizeElementsData(data)
	case KindEnum:
		return normalizeEnumData(data)
	default:
		return data, nil
	}
}

func normalizeRecordData(data json.RawMessage) (json.RawMessage, error) {
	keys, vals, err := decodeOrderedObject(data)
	if err != nil {
		return nil, fmt.Errorf("value: normalize: record: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		normVal, err := normalizeRaw(vals[i])
		if err != nil {
			return nil, fmt.Errorf("value: normalize: record field %q: %w", k, err)
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(normVal)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func normalizeElementsData(data json.RawMessage) (json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("value: normalize: %w", err)
	}
	out := make([]json.RawMessage, len(elems))
	for i, e := range elems {
		normVal, err := normalizeRaw(e)
		if err != nil {
			return nil, fmt.Errorf("value: normalize: element %d: %w", i, err)
		}
		out[i] = normVal
	}
	return json.Marshal(out)
}

func normalizeEnumData(data json.RawMessage) (json.RawMessage, error) {
	keys, vals, err := decodeOrderedObject(data)
	if err != nil {
		return nil, fmt.Errorf("value: normalize: enum: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, _ := json.Marshal(k)
		buf.Write(keyJSON)
		buf.WriteByte(':')
		if k == "inner" {
			normVal, err := normalizeRaw(vals[i])
			if err != nil {
				return nil, fmt.Errorf("value: normalize: enum inner: %w", err)
			}
			buf.Write(normVal)
		} else {
			buf.Write(vals[i])
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func indexOf(keys []string, name string) int {
	for i, k := range keys {
		if k == name {
			return i
		}
	}
	return -1
}

// decodeOrderedObject scans a JSON object's top-level keys in the order
// they appear on the wire, returning each value as an untouched
// json.RawMessage for further, type-specific processing.
func decodeOrderedObject(raw json.RawMessage) ([]string, []json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var keys []string
	var vals []json.RawMessage
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected string key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}
		keys = append(keys, key)
		vals = append(vals, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, vals, nil
}
