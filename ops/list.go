package ops

import (
	"fmt"
	"hash/fnv"
	"iter"

	"github.com/cockroachdb/errors"
)

// List is a slice-backed reference container implementing the container-ish
// protocol hooks. Records that want sequence behavior declare a field of
// type ops.List (or *ops.List if they use in-place hooks) and delegate the
// relevant categories to it.
type List []any

// NewList builds a List from the given items.
func NewList(items ...any) List {
	return List(items)
}

// listItems normalizes a binary operand: Lists and []any concatenate
// elementwise, anything else participates as a single element.
func listItems(v any) []any {
	switch t := v.(type) {
	case List:
		return t
	case *List:
		return *t
	case []any:
		return t
	default:
		return []any{v}
	}
}

// Add returns the concatenation "l + other" as a new List.
func (l List) Add(other any) any {
	items := listItems(other)
	out := make(List, 0, len(l)+len(items))
	out = append(out, l...)
	out = append(out, items...)

	return out
}

// RAdd returns the concatenation "other + l" as a new List.
func (l List) RAdd(other any) any {
	items := listItems(other)
	out := make(List, 0, len(l)+len(items))
	out = append(out, items...)
	out = append(out, l...)

	return out
}

// AddAssign appends other's elements in place.
func (l *List) AddAssign(other any) {
	*l = append(*l, listItems(other)...)
}

// Mul returns the list repeated n times; non-integer operands yield an
// empty List.
func (l List) Mul(other any) any {
	n, ok := other.(int)
	if !ok || n <= 0 {
		return List{}
	}

	out := make(List, 0, len(l)*n)
	for range n {
		out = append(out, l...)
	}

	return out
}

// Equal reports elementwise equality with another list-like value.
func (l List) Equal(other any) bool {
	items := listItems(other)
	if len(items) != len(l) {
		return false
	}

	for i, v := range l {
		if v != items[i] {
			return false
		}
	}

	return true
}

// NotEqual is the negation of Equal.
func (l List) NotEqual(other any) bool {
	return !l.Equal(other)
}

// Contains reports whether v is an element of the list.
func (l List) Contains(v any) bool {
	for _, e := range l {
		if e == v {
			return true
		}
	}

	return false
}

// Iter yields the elements in order.
func (l List) Iter() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range l {
			if !yield(v) {
				return
			}
		}
	}
}

// Reversed yields the elements in reverse order.
func (l List) Reversed() iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := len(l) - 1; i >= 0; i-- {
			if !yield(l[i]) {
				return
			}
		}
	}
}

// index normalizes a possibly negative index against the list length.
func (l List) index(key any) (int, error) {
	i, ok := key.(int)
	if !ok {
		return 0, errors.Newf("list index must be int, got %T", key)
	}

	if i < 0 {
		i += len(l)
	}

	if i < 0 || i >= len(l) {
		return 0, errors.Newf("list index %v out of range [0, %d)", key, len(l))
	}

	return i, nil
}

// GetIndex returns the element at key; negative keys count from the end.
func (l List) GetIndex(key any) (any, error) {
	i, err := l.index(key)
	if err != nil {
		return nil, err
	}

	return l[i], nil
}

// SetIndex replaces the element at key.
func (l List) SetIndex(key, value any) error {
	i, err := l.index(key)
	if err != nil {
		return err
	}

	l[i] = value

	return nil
}

// DelIndex removes the element at key.
func (l *List) DelIndex(key any) error {
	i, err := l.index(key)
	if err != nil {
		return err
	}

	*l = append((*l)[:i], (*l)[i+1:]...)

	return nil
}

// Len returns the number of elements.
func (l List) Len() int {
	return len(l)
}

// Bool reports whether the list is non-empty.
func (l List) Bool() bool {
	return len(l) > 0
}

// String renders the elements like a plain Go slice.
func (l List) String() string {
	return fmt.Sprintf("%v", []any(l))
}

// Hash returns an FNV-1a hash of the rendered elements.
func (l List) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(l.String()))

	return h.Sum64()
}
