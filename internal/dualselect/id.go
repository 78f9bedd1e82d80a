package dualselect

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies an option. Hosts may hand over strings or numbers; two IDs
// refer to the same option when their keys match, so 1 and "1" are equal.
// The original value is kept so results go back in the host's own form.
type ID struct {
	value any
	key   string
}

// NewID wraps a host-supplied identifier. Strings, integers, unsigned
// integers, floats and fmt.Stringer values are accepted; anything else is
// keyed with fmt's %v verb.
func NewID(v any) ID {
	if id, ok := v.(ID); ok {
		return id
	}
	return ID{value: v, key: idKey(v)}
}

// StringID is shorthand for NewID(s).
func StringID(s string) ID {
	return ID{value: s, key: s}
}

// IntID is shorthand for NewID(n).
func IntID(n int64) ID {
	return ID{value: n, key: strconv.FormatInt(n, 10)}
}

// IDs wraps every value in vs.
func IDs[T any](vs ...T) []ID {
	out := make([]ID, 0, len(vs))
	for _, v := range vs {
		out = append(out, NewID(v))
	}
	return out
}

// idKey normalizes an identifier to its string form.
func idKey(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if f, err := x.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Key returns the normalized string form used for every comparison.
func (id ID) Key() string {
	return id.key
}

// Value returns the identifier exactly as the host supplied it.
func (id ID) Value() any {
	return id.value
}

// Equal reports whether both IDs name the same option.
func (id ID) Equal(other ID) bool {
	return id.key == other.key
}

// IsZero reports whether the ID was never set.
func (id ID) IsZero() bool {
	return id.value == nil && id.key == ""
}

func (id ID) String() string {
	return id.key
}

// MarshalJSON writes numbers as numbers and everything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	switch id.value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return []byte(id.key), nil
	default:
		return json.Marshal(id.key)
	}
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("dualselect: id must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = IntID(i)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("dualselect: invalid numeric id %q: %w", n, err)
	}
	*id = NewID(f)
	return nil
}

// MarshalYAML emits the original value.
func (id ID) MarshalYAML() (interface{}, error) {
	return id.value, nil
}
