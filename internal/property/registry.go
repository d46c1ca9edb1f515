package property

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

type key struct {
	owner reflect.Type
	name  string
}

// Registry stores descriptors by (owner type, name). Duplicate
// registrations are rejected with ErrDuplicateProperty.
type Registry struct {
	mu    sync.RWMutex
	items map[key]Descriptor
}

// NewRegistry creates an empty property registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[key]Descriptor)}
}

// Register is the typed shorthand for r.Add(Define(name, get, set)).
func Register[O, V any](r *Registry, name string, get func(O) V, set func(O, V)) error {
	if get == nil {
		return fmt.Errorf("%w: %s.%s", ErrNilAccessor, TypeOf[O](), name)
	}
	return r.Add(Define(name, get, set))
}

// Add stores a single-segment descriptor.
func (r *Registry) Add(d Descriptor) error {
	if err := validate(d); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{owner: d.owner, name: d.name}
	if _, ok := r.items[k]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProperty, d.String())
	}
	r.items[k] = d
	return nil
}

// AddAll stores every descriptor or none of them.
func (r *Registry) AddAll(ds ...Descriptor) error {
	seen := make(map[key]struct{}, len(ds))
	for _, d := range ds {
		if err := validate(d); err != nil {
			return err
		}
		k := key{owner: d.owner, name: d.name}
		if _, ok := seen[k]; ok {
			return fmt.Errorf("%w: %s listed twice", ErrDuplicateProperty, d.String())
		}
		seen[k] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range seen {
		if existing, ok := r.items[k]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateProperty, existing.String())
		}
	}
	for _, d := range ds {
		r.items[key{owner: d.owner, name: d.name}] = d
	}
	return nil
}

// Find resolves a single name or dotted path against owner. Each segment
// is looked up on the value type produced by the previous one.
func (r *Registry) Find(owner reflect.Type, raw string) (Descriptor, error) {
	path, err := ParsePath(raw)
	if err != nil {
		return Descriptor{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	chain := make([]Descriptor, 0, len(path))
	current := owner
	for _, seg := range path {
		d, ok := r.items[key{owner: current, name: seg}]
		if !ok {
			return Descriptor{}, fmt.Errorf("%w: %q on %s (path %q)", ErrPropertyNotFound, seg, current, raw)
		}
		chain = append(chain, d)
		current = d.typ
	}
	if len(chain) == 1 {
		return chain[0], nil
	}
	return compose(owner, path.String(), chain), nil
}

// Get reads d on inst.
func (r *Registry) Get(d Descriptor, inst any) (any, bool) {
	return d.Get(inst)
}

// Set writes value through d on inst.
func (r *Registry) Set(d Descriptor, inst, value any) error {
	return d.Set(inst, value)
}

// Names returns the sorted property names registered for owner.
func (r *Registry) Names(owner reflect.Type) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0)
	for k := range r.items {
		if k.owner == owner {
			names = append(names, k.name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func validate(d Descriptor) error {
	if d.get == nil {
		return fmt.Errorf("%w: %s", ErrNilAccessor, d.String())
	}
	if d.owner == nil || d.typ == nil {
		return fmt.Errorf("%w: descriptor %q has no owner or value type", ErrInvalidPath, d.name)
	}
	if !isIdentifier(d.name) {
		return fmt.Errorf("%w: property name %q", ErrInvalidPath, d.name)
	}
	return nil
}

// compose chains single-segment descriptors. Reads walk every segment,
// writes walk to the penultimate value and then write the last segment.
// A nil intermediate makes reads absent and writes a no-op.
func compose(owner reflect.Type, name string, chain []Descriptor) Descriptor {
	last := chain[len(chain)-1]
	parents := chain[:len(chain)-1]

	walk := func(inst any) (any, bool) {
		current := inst
		for _, d := range parents {
			next, ok := d.Get(current)
			if !ok || isNil(next) {
				return nil, false
			}
			current = next
		}
		return current, true
	}

	d := Descriptor{
		owner: owner,
		name:  name,
		typ:   last.typ,
		get: func(inst any) (any, bool) {
			parent, ok := walk(inst)
			if !ok {
				return nil, false
			}
			return last.Get(parent)
		},
		writable: func(inst any) bool {
			parent, ok := walk(inst)
			return ok && last.CanWrite(parent)
		},
	}
	if last.set != nil {
		d.set = func(inst, value any) error {
			parent, ok := walk(inst)
			if !ok {
				return nil
			}
			return last.Set(parent, value)
		}
	}
	return d
}
