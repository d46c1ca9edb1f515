package convert

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Registry stores one converter per ordered type pair. Registering a pair
// twice is rejected with ErrDuplicateConverter.
type Registry struct {
	mu    sync.RWMutex
	items map[Pair]Converter
}

// NewRegistry creates an empty converter registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[Pair]Converter)}
}

// NewDefaultRegistry creates a registry holding the Builtin converters.
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	if err := r.RegisterAll(Builtin()...); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds one converter.
func (r *Registry) Register(reg Registration) error {
	return r.RegisterAll(reg)
}

// RegisterAll adds every registration or none of them.
func (r *Registry) RegisterAll(regs ...Registration) error {
	seen := make(map[Pair]struct{}, len(regs))
	for _, reg := range regs {
		if reg.Converter == nil {
			return fmt.Errorf("%w: %s", ErrNilConverter, reg.Pair)
		}
		if reg.Pair.Source == nil || reg.Pair.Target == nil {
			return fmt.Errorf("%w: incomplete pair %s", ErrNilConverter, reg.Pair)
		}
		if _, ok := seen[reg.Pair]; ok {
			return fmt.Errorf("%w: %s listed twice", ErrDuplicateConverter, reg.Pair)
		}
		seen[reg.Pair] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for pair := range seen {
		if _, ok := r.items[pair]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateConverter, pair)
		}
	}
	for _, reg := range regs {
		r.items[reg.Pair] = reg.Converter
	}
	return nil
}

// Find returns the converter registered for exactly (source, target).
func (r *Registry) Find(source, target reflect.Type) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[Pair{Source: source, Target: target}]
	return c, ok
}

// Resolve returns the converter a binding from source to target should
// use. A nil converter with a nil error means the types already match.
// When only (target, source) is registered it is returned inverted.
func (r *Registry) Resolve(source, target reflect.Type) (Converter, error) {
	if source == target {
		return nil, nil
	}
	if r != nil {
		if c, ok := r.Find(source, target); ok {
			return c, nil
		}
		if c, ok := r.Find(target, source); ok {
			return Invert(c), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoConverterAvailable, Pair{Source: source, Target: target})
}

// Pairs returns the registered pairs sorted by name.
func (r *Registry) Pairs() []Pair {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pairs := make([]Pair, 0, len(r.items))
	for p := range r.items {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].String() < pairs[j].String()
	})
	return pairs
}

// Len returns the number of registered converters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
