package demo

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/danmuck/bindkit/internal/binding"
	"github.com/danmuck/bindkit/internal/config"
	"github.com/danmuck/bindkit/internal/convert"
	"github.com/danmuck/bindkit/internal/property"
	"github.com/rs/zerolog/log"
)

const (
	ObjectViewModel = "viewmodel"
	ObjectView      = "view"
)

var (
	ErrUnknownObject = errors.New("demo: unknown object")
	ErrStepValue     = errors.New("demo: step value not convertible")
)

// Scene holds the demo objects, their registries and the bindings created
// from a manifest.
type Scene struct {
	Model     *Model
	ViewModel *ViewModel
	View      *View
	Group     *binding.Group

	objects map[string]any
	touched map[string]map[string]struct{}
}

func NewScene() (*Scene, error) {
	props := property.NewRegistry()
	if err := Register(props); err != nil {
		return nil, err
	}
	convs, err := convert.NewDefaultRegistry()
	if err != nil {
		return nil, err
	}
	m := &Model{}
	s := &Scene{
		Model:     m,
		ViewModel: NewViewModel(m),
		View:      NewView(),
		Group:     binding.NewGroup(props, convs),
		touched:   make(map[string]map[string]struct{}),
	}
	s.objects = map[string]any{
		ObjectViewModel: s.ViewModel,
		ObjectView:      s.View,
	}
	return s, nil
}

// Apply creates the manifest bindings, or the default wiring when the
// manifest declares none, and then replays its steps in order.
func (s *Scene) Apply(m config.Manifest) error {
	if len(m.Bindings) == 0 {
		if err := Wire(s.Group, s.View, s.ViewModel); err != nil {
			return err
		}
		for _, b := range s.Group.Bindings() {
			s.touchEndpoint(b.Source())
			s.touchEndpoint(b.Target())
		}
	}
	for i, bc := range m.Bindings {
		if err := s.bind(bc); err != nil {
			return fmt.Errorf("binding[%d]: %w", i, err)
		}
	}
	for i, step := range m.Steps {
		if err := s.Step(step.Object, step.Path, step.Value); err != nil {
			return fmt.Errorf("step[%d]: %w", i, err)
		}
	}
	return nil
}

func (s *Scene) bind(bc config.BindingConfig) error {
	source, err := s.object(bc.Source)
	if err != nil {
		return err
	}
	target, err := s.object(bc.Target)
	if err != nil {
		return err
	}
	mode, err := binding.ParseMode(bc.Mode)
	if err != nil {
		return err
	}
	param, err := bc.ConverterParameter()
	if err != nil {
		return err
	}
	opts := []binding.Option{binding.WithMode(mode), binding.WithParameter(param)}

	props := s.Group.Properties()
	if bc.Enabled {
		src, err := props.Find(reflect.TypeOf(source), bc.SourcePath)
		if err != nil {
			return err
		}
		dst, err := props.Find(reflect.TypeOf(target), bc.TargetPath)
		if err != nil {
			return err
		}
		if _, err := s.Group.BindDescriptors(
			binding.Endpoint{Object: source, Descriptor: property.Writability(src)},
			binding.Endpoint{Object: target, Descriptor: dst},
			opts...,
		); err != nil {
			return err
		}
	} else if _, err := s.Group.Bind(source, bc.SourcePath, target, bc.TargetPath, opts...); err != nil {
		return err
	}
	s.touch(bc.Source, bc.SourcePath)
	s.touch(bc.Target, bc.TargetPath)
	return nil
}

// Step writes raw to the property at path on the named object, converting
// from string when the property has another type.
func (s *Scene) Step(object, path, raw string) error {
	obj, err := s.object(object)
	if err != nil {
		return err
	}
	d, err := s.Group.Properties().Find(reflect.TypeOf(obj), path)
	if err != nil {
		return err
	}
	var value any = raw
	if stringType := reflect.TypeFor[string](); d.Type() != stringType {
		conv, err := s.Group.Converters().Resolve(stringType, d.Type())
		if err != nil {
			return err
		}
		converted, ok := conv.ConvertTo(raw, d.Type(), nil).Get()
		if !ok {
			return fmt.Errorf("%w: %q for %s", ErrStepValue, raw, d)
		}
		value = converted
	}
	if err := d.Set(obj, value); err != nil {
		return err
	}
	s.touch(object, path)
	log.Debug().Str("object", object).Str("path", path).Str("value", raw).Msg("demo.Scene.Step applied")
	return nil
}

// Snapshot reads every path a binding or step touched, keyed by object
// name and then path.
func (s *Scene) Snapshot() map[string]map[string]any {
	out := make(map[string]map[string]any, len(s.touched))
	props := s.Group.Properties()
	for object, paths := range s.touched {
		obj := s.objects[object]
		values := make(map[string]any, len(paths))
		for _, path := range sortedKeys(paths) {
			d, err := props.Find(reflect.TypeOf(obj), path)
			if err != nil {
				continue
			}
			if v, ok := d.Get(obj); ok {
				values[path] = v
			}
		}
		out[object] = values
	}
	return out
}

// Close detaches every binding and stops the view relays.
func (s *Scene) Close() {
	s.Group.DetachAll()
	s.View.Close()
}

func (s *Scene) object(name string) (any, error) {
	obj, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObject, name)
	}
	return obj, nil
}

func (s *Scene) touchEndpoint(ep binding.Endpoint) {
	for name, obj := range s.objects {
		if obj == ep.Object {
			if _, err := property.ParsePath(ep.Descriptor.Name()); err == nil {
				s.touch(name, ep.Descriptor.Name())
			}
		}
	}
}

func (s *Scene) touch(object, path string) {
	if s.touched[object] == nil {
		s.touched[object] = make(map[string]struct{})
	}
	s.touched[object][path] = struct{}{}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
