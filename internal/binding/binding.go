package binding

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/danmuck/bindkit/internal/convert"
	"github.com/danmuck/bindkit/internal/notify"
	"github.com/danmuck/bindkit/internal/observability"
	"github.com/danmuck/bindkit/internal/property"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Endpoint is one side of a binding: an object and a descriptor resolved
// against its type.
type Endpoint struct {
	Object     any
	Descriptor property.Descriptor
}

type Option func(*options)

type options struct {
	mode      Mode
	converter convert.Converter
	parameter any
}

// WithMode sets the propagation mode. The default is TwoWay.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithConverter forces c instead of looking one up by type pair.
func WithConverter(c convert.Converter) Option {
	return func(o *options) { o.converter = c }
}

// WithParameter threads p through to every converter call.
func WithParameter(p any) Option {
	return func(o *options) { o.parameter = p }
}

type direction int

const (
	forward direction = iota
	backward
)

func (d direction) String() string {
	if d == forward {
		return observability.DirectionForward
	}
	return observability.DirectionBackward
}

type end struct {
	obj      any
	notifier *notify.Notifier
	desc     property.Descriptor
	trigger  property.Path
	sub      notify.Subscription
}

// Binding links a source property to a target property.
type Binding struct {
	id        string
	source    end
	target    end
	converter convert.Converter
	parameter any
	mode      Mode
	back      bool
	state     State
	depth     int
}

// maxDepth bounds nested propagation through one binding. Equality
// suppression normally settles a cycle within a few hops; the bound only
// stops converters whose round trip never reaches a fixed point.
const maxDepth = 16

// Bind resolves both paths, picks a converter when the property types
// differ, pushes the source value to the target and subscribes to both
// endpoints. Any failure is returned before a subscription is made.
func Bind(
	props *property.Registry,
	convs *convert.Registry,
	source any,
	sourcePath string,
	target any,
	targetPath string,
	opts ...Option,
) (*Binding, error) {
	sd, err := props.Find(reflect.TypeOf(source), sourcePath)
	if err != nil {
		return nil, setupFailed(fmt.Errorf("source: %w", err))
	}
	td, err := props.Find(reflect.TypeOf(target), targetPath)
	if err != nil {
		return nil, setupFailed(fmt.Errorf("target: %w", err))
	}
	return BindDescriptors(
		convs,
		Endpoint{Object: source, Descriptor: sd},
		Endpoint{Object: target, Descriptor: td},
		opts...,
	)
}

// BindDescriptors is Bind for descriptors the caller already holds, such
// as property.Writability results.
func BindDescriptors(convs *convert.Registry, source, target Endpoint, opts ...Option) (*Binding, error) {
	o := options{mode: TwoWay}
	for _, opt := range opts {
		opt(&o)
	}
	if o.mode != TwoWay && o.mode != OneWay {
		return nil, setupFailed(fmt.Errorf("%w: %d", ErrInvalidMode, int(o.mode)))
	}

	src, err := newEnd(source)
	if err != nil {
		return nil, setupFailed(fmt.Errorf("source: %w", err))
	}
	dst, err := newEnd(target)
	if err != nil {
		return nil, setupFailed(fmt.Errorf("target: %w", err))
	}
	if !dst.desc.HasSetter() {
		return nil, setupFailed(fmt.Errorf("target: %w: %s", property.ErrPropertyNotWritable, dst.desc))
	}

	back := o.mode == TwoWay && src.desc.HasSetter()
	conv := o.converter
	if conv == nil {
		conv, err = resolveConverter(convs, src.desc.Type(), dst.desc.Type(), back)
		if err != nil {
			return nil, setupFailed(err)
		}
	}

	b := &Binding{
		id:        uuid.NewString(),
		source:    src,
		target:    dst,
		converter: conv,
		parameter: o.parameter,
		mode:      o.mode,
		back:      back,
		state:     Attached,
	}
	b.propagate(forward)

	b.source.sub = b.source.notifier.Subscribe(b.onSource)
	if b.back {
		b.target.sub = b.target.notifier.Subscribe(b.onTarget)
	}
	observability.BindingAttached()
	log.Debug().
		Str("binding", b.id).
		Str("source", src.desc.String()).
		Str("target", dst.desc.String()).
		Str("mode", o.mode.String()).
		Bool("backward", back).
		Msg("binding.Bind attached")
	return b, nil
}

func newEnd(ep Endpoint) (end, error) {
	if ep.Descriptor.IsZero() {
		return end{}, fmt.Errorf("%w: empty descriptor", property.ErrPropertyNotFound)
	}
	if isNil(ep.Object) {
		return end{}, fmt.Errorf("%w: %T", ErrNilEndpoint, ep.Object)
	}
	n, ok := ep.Object.(notify.Notifiable)
	if !ok || n.Notifier() == nil {
		return end{}, fmt.Errorf("%w: %T", ErrNotNotifier, ep.Object)
	}
	name, _, _ := strings.Cut(ep.Descriptor.Name(), "#")
	return end{
		obj:      ep.Object,
		notifier: n.Notifier(),
		desc:     ep.Descriptor,
		trigger:  property.Path(strings.Split(name, ".")),
	}, nil
}

// resolveConverter returns nil when values can be assigned across in every
// active direction without conversion.
func resolveConverter(convs *convert.Registry, source, target reflect.Type, back bool) (convert.Converter, error) {
	if source == target {
		return nil, nil
	}
	if source.AssignableTo(target) && (!back || target.AssignableTo(source)) {
		return nil, nil
	}
	return convs.Resolve(source, target)
}

// ID identifies the binding in logs.
func (b *Binding) ID() string { return b.id }

func (b *Binding) State() State { return b.state }

func (b *Binding) Mode() Mode { return b.mode }

// PropagatesBack reports whether target changes flow to the source.
func (b *Binding) PropagatesBack() bool { return b.back }

// Converter returns the converter in use; nil means values pass through.
func (b *Binding) Converter() convert.Converter { return b.converter }

func (b *Binding) Source() Endpoint {
	return Endpoint{Object: b.source.obj, Descriptor: b.source.desc}
}

func (b *Binding) Target() Endpoint {
	return Endpoint{Object: b.target.obj, Descriptor: b.target.desc}
}

// Refresh pushes the current source value to the target.
func (b *Binding) Refresh() error {
	if b.state == Detached {
		return ErrDetached
	}
	if b.propagate(forward) == observability.OutcomeError {
		return fmt.Errorf("binding %s: refresh failed", b.id)
	}
	return nil
}

// UpdateSource pushes the current target value to the source.
func (b *Binding) UpdateSource() error {
	if b.state == Detached {
		return ErrDetached
	}
	if !b.back {
		return fmt.Errorf("%w: %s", property.ErrPropertyNotWritable, b.source.desc)
	}
	if b.propagate(backward) == observability.OutcomeError {
		return fmt.Errorf("binding %s: update source failed", b.id)
	}
	return nil
}

// Detach unsubscribes from both endpoints. Calling it again is a no-op.
func (b *Binding) Detach() {
	if b.state == Detached {
		return
	}
	b.state = Detached
	b.source.notifier.Unsubscribe(b.source.sub)
	if b.back {
		b.target.notifier.Unsubscribe(b.target.sub)
	}
	observability.BindingDetached()
	log.Debug().Str("binding", b.id).Msg("binding.Binding.Detach detached")
}

func (b *Binding) onSource(ev notify.ChangeEvent) {
	if b.source.trigger.Covers(ev.Property) {
		b.propagate(forward)
	}
}

func (b *Binding) onTarget(ev notify.ChangeEvent) {
	if b.target.trigger.Covers(ev.Property) {
		b.propagate(backward)
	}
}

// propagate copies the value across in dir and returns the outcome.
// Notifications raised by its own write are handled like any other: the
// echo is suppressed because both sides already hold equal values, and a
// setter that adjusts the value is copied back.
func (b *Binding) propagate(dir direction) string {
	if b.state != Attached {
		return ""
	}
	if b.depth >= maxDepth {
		log.Warn().
			Str("binding", b.id).
			Str("direction", dir.String()).
			Int("depth", b.depth).
			Msg("binding.Binding.propagate did not settle")
		return b.record(dir, observability.OutcomeReentrant)
	}

	from, to := b.source, b.target
	if dir == backward {
		from, to = b.target, b.source
	}

	value, ok := from.desc.Get(from.obj)
	if !ok {
		return b.record(dir, observability.OutcomeAbsent)
	}
	if b.converter != nil {
		var out convert.Outcome
		if dir == forward {
			out = b.converter.ConvertTo(value, to.desc.Type(), b.parameter)
		} else {
			out = b.converter.ConvertFrom(value, to.desc.Type(), b.parameter)
		}
		converted, ok := out.Get()
		if !ok {
			log.Debug().
				Str("binding", b.id).
				Str("direction", dir.String()).
				Str("from", from.desc.String()).
				Msg("binding.Binding.propagate skipped no_value")
			return b.record(dir, observability.OutcomeNoValue)
		}
		value = converted
	}

	if !to.desc.CanWrite(to.obj) {
		return b.record(dir, observability.OutcomeAbsent)
	}
	if current, ok := to.desc.Get(to.obj); ok && notify.Equal(current, value) {
		return b.record(dir, observability.OutcomeSuppressed)
	}
	if err := b.write(to, value); err != nil {
		log.Warn().
			Err(err).
			Str("binding", b.id).
			Str("direction", dir.String()).
			Str("to", to.desc.String()).
			Msg("binding.Binding.propagate write failed")
		return b.record(dir, observability.OutcomeError)
	}
	return b.record(dir, observability.OutcomeWritten)
}

func (b *Binding) write(to end, value any) error {
	b.depth++
	defer func() { b.depth-- }()
	return to.desc.Set(to.obj, value)
}

func (b *Binding) record(dir direction, outcome string) string {
	observability.RecordPropagation(dir.String(), outcome)
	return outcome
}

func setupFailed(err error) error {
	reason := "other"
	switch {
	case errors.Is(err, property.ErrPropertyNotFound):
		reason = "property_not_found"
	case errors.Is(err, property.ErrInvalidPath):
		reason = "invalid_path"
	case errors.Is(err, property.ErrPropertyNotWritable):
		reason = "not_writable"
	case errors.Is(err, convert.ErrNoConverterAvailable):
		reason = "no_converter"
	case errors.Is(err, ErrNotNotifier):
		reason = "not_notifier"
	case errors.Is(err, ErrNilEndpoint):
		reason = "nil_endpoint"
	case errors.Is(err, ErrInvalidMode):
		reason = "invalid_mode"
	}
	observability.RecordBindFailure(reason)
	log.Debug().Err(err).Str("reason", reason).Msg("binding.Bind rejected")
	return err
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
