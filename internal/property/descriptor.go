package property

import (
	"fmt"
	"reflect"
)

// Descriptor is a typed accessor pair bound to a property name and owner
// type. Descriptors are values and never change once built.
type Descriptor struct {
	owner    reflect.Type
	name     string
	typ      reflect.Type
	get      func(inst any) (any, bool)
	set      func(inst, value any) error
	writable func(inst any) bool
}

// TypeOf returns the type identifier used to key registrations for T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Define builds a descriptor for property name on owner type O with value
// type V. A nil set makes the property read-only.
func Define[O, V any](name string, get func(O) V, set func(O, V)) Descriptor {
	d := Descriptor{
		owner: TypeOf[O](),
		name:  name,
		typ:   TypeOf[V](),
	}
	if get != nil {
		d.get = func(inst any) (any, bool) {
			o, ok := inst.(O)
			if !ok || isNil(inst) {
				return nil, false
			}
			return get(o), true
		}
	}
	if set != nil {
		d.set = func(inst, value any) error {
			o, ok := inst.(O)
			if !ok {
				return fmt.Errorf("%w: %s.%s wants %s, got %T", ErrInstanceType, d.owner, name, d.owner, inst)
			}
			if isNil(inst) {
				return nil
			}
			v, err := assertValue[V](value)
			if err != nil {
				return fmt.Errorf("%w: %s.%s", err, d.owner, name)
			}
			set(o, v)
			return nil
		}
	}
	return d
}

// ReadOnly builds a descriptor without a setter.
func ReadOnly[O, V any](name string, get func(O) V) Descriptor {
	return Define[O, V](name, get, nil)
}

// WritableWhen attaches a per-instance writability predicate to d.
func WritableWhen[O any](d Descriptor, fn func(O) bool) Descriptor {
	if fn == nil {
		return d
	}
	d.writable = func(inst any) bool {
		o, ok := inst.(O)
		return ok && fn(o)
	}
	return d
}

// Owner returns the type the descriptor reads from.
func (d Descriptor) Owner() reflect.Type { return d.owner }

// Name returns the property name, or the dotted path for composed descriptors.
func (d Descriptor) Name() string { return d.name }

// Type returns the property's value type.
func (d Descriptor) Type() reflect.Type { return d.typ }

// IsZero reports whether d was never built.
func (d Descriptor) IsZero() bool { return d.get == nil }

// HasSetter reports whether the descriptor can ever be written.
func (d Descriptor) HasSetter() bool { return d.set != nil }

// Get reads the property. ok is false when the value is absent: inst is
// nil, of the wrong type, or an intermediate path segment is nil.
func (d Descriptor) Get(inst any) (any, bool) {
	if d.get == nil {
		return nil, false
	}
	return d.get(inst)
}

// Set writes the property. Writing through an absent intermediate segment
// is a no-op.
func (d Descriptor) Set(inst, value any) error {
	if d.set == nil {
		return fmt.Errorf("%w: %s", ErrPropertyNotWritable, d.String())
	}
	return d.set(inst, value)
}

// CanWrite reports whether Set would currently reach the property on inst.
func (d Descriptor) CanWrite(inst any) bool {
	if d.set == nil || isNil(inst) {
		return false
	}
	if d.writable != nil {
		return d.writable(inst)
	}
	return true
}

func (d Descriptor) String() string {
	if d.owner == nil {
		return d.name
	}
	return d.owner.String() + "." + d.name
}

// Writability returns a read-only bool descriptor reporting d.CanWrite for
// an instance. It is meant for binding a control's enabled flag to whether
// the underlying property accepts writes.
func Writability(d Descriptor) Descriptor {
	return Descriptor{
		owner: d.owner,
		name:  d.name + "#CanWrite",
		typ:   TypeOf[bool](),
		get: func(inst any) (any, bool) {
			if isNil(inst) {
				return nil, false
			}
			return d.CanWrite(inst), true
		},
	}
}

func assertValue[V any](value any) (V, error) {
	var zero V
	if value == nil {
		switch reflect.TypeFor[V]().Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return zero, nil
		}
		return zero, fmt.Errorf("%w: nil for %s", ErrValueType, reflect.TypeFor[V]())
	}
	v, ok := value.(V)
	if !ok {
		return zero, fmt.Errorf("%w: want %s, got %T", ErrValueType, reflect.TypeFor[V](), value)
	}
	return v, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
