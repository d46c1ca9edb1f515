package demo

import (
	"fmt"
	"reflect"

	"github.com/danmuck/bindkit/internal/binding"
	"github.com/danmuck/bindkit/internal/property"
)

// Descriptors lists every demo property.
func Descriptors() []property.Descriptor {
	return []property.Descriptor{
		property.Define("Number", (*ViewModel).Number, (*ViewModel).SetNumber),
		property.Define("Text", (*ViewModel).Text, (*ViewModel).SetText),
		property.ReadOnly("Computed", (*ViewModel).Computed),

		property.Define("Text", (*TextBox).Text, (*TextBox).SetText),
		property.Define("Enabled", (*TextBox).Enabled, (*TextBox).SetEnabled),

		property.ReadOnly("NumericBox", func(v *View) *TextBox { return v.NumericBox }),
		property.ReadOnly("StringBox", func(v *View) *TextBox { return v.StringBox }),
		property.ReadOnly("ComputedBox", func(v *View) *TextBox { return v.ComputedBox }),
	}
}

// Register adds the demo properties to props.
func Register(props *property.Registry) error {
	return props.AddAll(Descriptors()...)
}

// Wire binds each text box to its view-model property and each box's
// Enabled flag to whether that property accepts writes.
func Wire(g *binding.Group, view *View, vm *ViewModel) error {
	pairs := []struct {
		box  string
		prop string
	}{
		{"NumericBox", "Number"},
		{"StringBox", "Text"},
		{"ComputedBox", "Computed"},
	}
	props := g.Properties()
	for _, p := range pairs {
		if _, err := g.Bind(vm, p.prop, view, p.box+".Text"); err != nil {
			return fmt.Errorf("wire %s: %w", p.box, err)
		}

		src, err := props.Find(reflect.TypeOf(vm), p.prop)
		if err != nil {
			return fmt.Errorf("wire %s: %w", p.box, err)
		}
		dst, err := props.Find(reflect.TypeOf(view), p.box+".Enabled")
		if err != nil {
			return fmt.Errorf("wire %s: %w", p.box, err)
		}
		_, err = g.BindDescriptors(
			binding.Endpoint{Object: vm, Descriptor: property.Writability(src)},
			binding.Endpoint{Object: view, Descriptor: dst},
		)
		if err != nil {
			return fmt.Errorf("wire %s enabled: %w", p.box, err)
		}
	}
	return nil
}
