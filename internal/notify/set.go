package notify

import "reflect"

// Set writes value into *field and notifies name, unless the field already
// holds an equal value. It reports whether a write happened.
func Set[T comparable](n *Notifier, name string, field *T, value T) bool {
	if same(*field, value) {
		return false
	}
	*field = value
	n.Notify(name)
	return true
}

// SetVia is Set for values stored behind accessors, e.g. a view model
// delegating to its model.
func SetVia[T comparable](n *Notifier, name string, get func() T, set func(T), value T) bool {
	if same(get(), value) {
		return false
	}
	set(value)
	n.Notify(name)
	return true
}

// SetFunc is SetVia with a caller-supplied equality, for value types that
// are not comparable.
func SetFunc[T any](n *Notifier, name string, get func() T, set func(T), value T, equal func(a, b T) bool) bool {
	if equal == nil {
		equal = func(a, b T) bool { return Equal(a, b) }
	}
	if equal(get(), value) {
		return false
	}
	set(value)
	n.Notify(name)
	return true
}

// Equal compares dynamic values by value, not identity. Comparable values
// use ==, everything else falls back to reflect.DeepEqual.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b || (isNaN(a) && isNaN(b))
	}
	return reflect.DeepEqual(a, b)
}

// same treats NaN as equal to NaN so float properties settle.
func same[T comparable](a, b T) bool {
	return a == b || (a != a && b != b)
}

func isNaN(v any) bool {
	switch f := v.(type) {
	case float64:
		return f != f
	case float32:
		return f != f
	}
	return false
}
