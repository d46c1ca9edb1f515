package binding

import (
	"github.com/danmuck/bindkit/internal/convert"
	"github.com/danmuck/bindkit/internal/property"
)

// Group creates bindings over shared registries and tears them down
// together. A view typically owns one group for all of its bindings.
type Group struct {
	props    *property.Registry
	convs    *convert.Registry
	bindings []*Binding
}

func NewGroup(props *property.Registry, convs *convert.Registry) *Group {
	return &Group{props: props, convs: convs}
}

// Bind creates a binding and adds it to the group.
func (g *Group) Bind(source any, sourcePath string, target any, targetPath string, opts ...Option) (*Binding, error) {
	b, err := Bind(g.props, g.convs, source, sourcePath, target, targetPath, opts...)
	if err != nil {
		return nil, err
	}
	g.bindings = append(g.bindings, b)
	return b, nil
}

// BindDescriptors creates a binding from resolved endpoints and adds it to
// the group.
func (g *Group) BindDescriptors(source, target Endpoint, opts ...Option) (*Binding, error) {
	b, err := BindDescriptors(g.convs, source, target, opts...)
	if err != nil {
		return nil, err
	}
	g.bindings = append(g.bindings, b)
	return b, nil
}

// Properties returns the registry the group resolves paths with.
func (g *Group) Properties() *property.Registry { return g.props }

// Converters returns the registry the group resolves converters with.
func (g *Group) Converters() *convert.Registry { return g.convs }

func (g *Group) Bindings() []*Binding {
	out := make([]*Binding, len(g.bindings))
	copy(out, g.bindings)
	return out
}

func (g *Group) Len() int { return len(g.bindings) }

// DetachAll detaches every binding and empties the group.
func (g *Group) DetachAll() {
	for _, b := range g.bindings {
		b.Detach()
	}
	g.bindings = nil
}
