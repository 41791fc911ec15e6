package ops

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Dict is a map-backed reference container implementing the mapping-ish
// protocol hooks. Iteration order is sorted by key for determinism.
type Dict map[string]any

// NewDict builds an empty Dict.
func NewDict() Dict {
	return make(Dict)
}

func dictKey(key any) (string, error) {
	s, ok := key.(string)
	if !ok {
		return "", errors.Newf("dict key must be string, got %T", key)
	}

	return s, nil
}

// GetIndex returns the value stored under key.
func (d Dict) GetIndex(key any) (any, error) {
	k, err := dictKey(key)
	if err != nil {
		return nil, err
	}

	v, ok := d[k]
	if !ok {
		return nil, errors.Newf("dict has no key %q", k)
	}

	return v, nil
}

// SetIndex stores value under key.
func (d Dict) SetIndex(key, value any) error {
	k, err := dictKey(key)
	if err != nil {
		return err
	}

	d[k] = value

	return nil
}

// DelIndex removes key from the dict.
func (d Dict) DelIndex(key any) error {
	k, err := dictKey(key)
	if err != nil {
		return err
	}

	delete(d, k)

	return nil
}

// Contains reports whether the key is present.
func (d Dict) Contains(v any) bool {
	k, ok := v.(string)
	if !ok {
		return false
	}

	_, ok = d[k]

	return ok
}

// Keys returns the keys in sorted order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Iter yields the keys in sorted order.
func (d Dict) Iter() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, k := range d.Keys() {
			if !yield(k) {
				return
			}
		}
	}
}

// Equal reports key/value equality with another Dict.
func (d Dict) Equal(other any) bool {
	o, ok := other.(Dict)
	if !ok {
		if m, isMap := other.(map[string]any); isMap {
			o = Dict(m)
		} else {
			return false
		}
	}

	if len(d) != len(o) {
		return false
	}

	for k, v := range d {
		ov, present := o[k]
		if !present || ov != v {
			return false
		}
	}

	return true
}

// NotEqual is the negation of Equal.
func (d Dict) NotEqual(other any) bool {
	return !d.Equal(other)
}

// Len returns the number of entries.
func (d Dict) Len() int {
	return len(d)
}

// Bool reports whether the dict is non-empty.
func (d Dict) Bool() bool {
	return len(d) > 0
}

// AsMap exports the entries, recursing into nested exporters.
func (d Dict) AsMap() map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = ExportValue(v)
	}

	return out
}

// String renders the entries in sorted key order.
func (d Dict) String() string {
	var sb strings.Builder

	sb.WriteString("{")

	for i, k := range d.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(&sb, "%s: %v", k, d[k])
	}

	sb.WriteString("}")

	return sb.String()
}
