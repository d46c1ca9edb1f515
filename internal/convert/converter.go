package convert

import (
	"fmt"
	"reflect"
)

// Outcome is either a converted value or NoValue.
type Outcome struct {
	value any
	ok    bool
}

// NoValue reports that the input cannot currently be converted.
var NoValue = Outcome{}

// Value wraps a successful conversion.
func Value(v any) Outcome {
	return Outcome{value: v, ok: true}
}

// Get returns the converted value; ok is false for NoValue.
func (o Outcome) Get() (any, bool) { return o.value, o.ok }

// IsNoValue reports whether o is the NoValue sentinel.
func (o Outcome) IsNoValue() bool { return !o.ok }

func (o Outcome) String() string {
	if !o.ok {
		return "NoValue"
	}
	return fmt.Sprintf("Value(%v)", o.value)
}

// Converter converts between the source and target types of the pair it
// is registered for. targetType is the type the caller wants back and
// parameter is an optional caller hint passed through unchanged.
type Converter interface {
	// ConvertTo converts a source-typed value to the target type.
	ConvertTo(value any, targetType reflect.Type, parameter any) Outcome
	// ConvertFrom converts a target-typed value back to the source type.
	ConvertFrom(value any, targetType reflect.Type, parameter any) Outcome
}

// Pair keys a converter by ordered (source, target) types.
type Pair struct {
	Source reflect.Type
	Target reflect.Type
}

// PairOf returns the pair for source type S and target type T.
func PairOf[S, T any]() Pair {
	return Pair{Source: reflect.TypeFor[S](), Target: reflect.TypeFor[T]()}
}

// Reverse swaps source and target.
func (p Pair) Reverse() Pair {
	return Pair{Source: p.Target, Target: p.Source}
}

func (p Pair) String() string {
	return fmt.Sprintf("%s->%s", typeName(p.Source), typeName(p.Target))
}

// Registration declares the pair a converter serves.
type Registration struct {
	Pair      Pair
	Converter Converter
}

// For declares c as the converter for (S, T).
func For[S, T any](c Converter) Registration {
	return Registration{Pair: PairOf[S, T](), Converter: c}
}

// Funcs adapts a typed conversion pair into a Converter. Inputs of the
// wrong dynamic type yield NoValue.
func Funcs[S, T any](to func(S, any) (T, bool), from func(T, any) (S, bool)) Converter {
	return &funcs[S, T]{to: to, from: from}
}

type funcs[S, T any] struct {
	to   func(S, any) (T, bool)
	from func(T, any) (S, bool)
}

func (f *funcs[S, T]) ConvertTo(value any, _ reflect.Type, parameter any) Outcome {
	s, ok := value.(S)
	if !ok || f.to == nil {
		return NoValue
	}
	t, ok := f.to(s, parameter)
	if !ok {
		return NoValue
	}
	return Value(t)
}

func (f *funcs[S, T]) ConvertFrom(value any, _ reflect.Type, parameter any) Outcome {
	t, ok := value.(T)
	if !ok || f.from == nil {
		return NoValue
	}
	s, ok := f.from(t, parameter)
	if !ok {
		return NoValue
	}
	return Value(s)
}

// Invert swaps the directions of c, turning a (T, S) converter into an
// (S, T) one.
func Invert(c Converter) Converter {
	if inv, ok := c.(inverted); ok {
		return inv.Converter
	}
	return inverted{Converter: c}
}

type inverted struct {
	Converter
}

func (i inverted) ConvertTo(value any, targetType reflect.Type, parameter any) Outcome {
	return i.Converter.ConvertFrom(value, targetType, parameter)
}

func (i inverted) ConvertFrom(value any, targetType reflect.Type, parameter any) Outcome {
	return i.Converter.ConvertTo(value, targetType, parameter)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
