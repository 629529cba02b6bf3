package extract

import (
	"encoding/json"
)

// Kind discriminates the shapes an attribute value can take after JSON
// decoding.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

// Value is a tagged representation of a decoded attribute value. Building
// every value into this form keeps the deep comparison total: every pair of
// shapes has a defined answer, and a kind mismatch is simply "different".
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	list    []Value
	entries map[string]Value
}

// Kind reports the shape tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// FromAny converts a decoded JSON value (or a plain Go literal of the
// equivalent shape) into its tagged form. Unrecognized types collapse to
// their string representation via JSON re-encoding so conversion never fails.
func FromAny(raw any) Value {
	switch value := raw.(type) {
	case nil:
		return Value{kind: KindNull}
	case bool:
		return Value{kind: KindBool, boolean: value}
	case float64:
		return Value{kind: KindNumber, number: value}
	case int:
		return Value{kind: KindNumber, number: float64(value)}
	case int64:
		return Value{kind: KindNumber, number: float64(value)}
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return Value{kind: KindString, str: value.String()}
		}
		return Value{kind: KindNumber, number: parsed}
	case string:
		return Value{kind: KindString, str: value}
	case []any:
		list := make([]Value, len(value))
		for i, element := range value {
			list[i] = FromAny(element)
		}
		return Value{kind: KindList, list: list}
	case []string:
		list := make([]Value, len(value))
		for i, element := range value {
			list[i] = Value{kind: KindString, str: element}
		}
		return Value{kind: KindList, list: list}
	case map[string]any:
		entries := make(map[string]Value, len(value))
		for key, element := range value {
			entries[key] = FromAny(element)
		}
		return Value{kind: KindMap, entries: entries}
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return Value{kind: KindNull}
		}
		return Value{kind: KindString, str: string(encoded)}
	}
}

// Equal reports deep structural equality: exact match for scalars,
// element-wise in-order comparison for lists, and key-set plus per-key
// comparison for maps. Values of different kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber:
		return v.number == other.number
	case KindString:
		return v.str == other.str
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for key, element := range v.entries {
			counterpart, ok := other.entries[key]
			if !ok {
				return false
			}
			if !element.Equal(counterpart) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
