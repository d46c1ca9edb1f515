package demo

import (
	"github.com/danmuck/bindkit/internal/notify"
)

// TextBox is a headless stand-in for a text input control.
type TextBox struct {
	Name    string
	n       *notify.Notifier
	text    string
	enabled bool
}

func NewTextBox(name string) *TextBox {
	tb := &TextBox{Name: name, enabled: true}
	tb.n = notify.New(tb)
	return tb
}

func (tb *TextBox) Notifier() *notify.Notifier { return tb.n }

func (tb *TextBox) Text() string { return tb.text }

func (tb *TextBox) SetText(v string) { notify.Set(tb.n, "Text", &tb.text, v) }

func (tb *TextBox) Enabled() bool { return tb.enabled }

func (tb *TextBox) SetEnabled(v bool) { notify.Set(tb.n, "Enabled", &tb.enabled, v) }

// View owns three text boxes and re-raises their changes at view level as
// "<Box>.<Property>", so bindings can target paths like "NumericBox.Text".
type View struct {
	n           *notify.Notifier
	NumericBox  *TextBox
	StringBox   *TextBox
	ComputedBox *TextBox
	subs        []forward
}

type forward struct {
	box *TextBox
	sub notify.Subscription
}

func NewView() *View {
	v := &View{
		NumericBox:  NewTextBox("NumericBox"),
		StringBox:   NewTextBox("StringBox"),
		ComputedBox: NewTextBox("ComputedBox"),
	}
	v.n = notify.New(v)
	for _, box := range v.Boxes() {
		v.relay(box)
	}
	return v
}

func (v *View) Notifier() *notify.Notifier { return v.n }

// Boxes returns the controls in display order.
func (v *View) Boxes() []*TextBox {
	return []*TextBox{v.NumericBox, v.StringBox, v.ComputedBox}
}

// Close stops relaying control notifications.
func (v *View) Close() {
	for _, f := range v.subs {
		f.box.Notifier().Unsubscribe(f.sub)
	}
	v.subs = nil
}

func (v *View) relay(box *TextBox) {
	name := box.Name
	sub := box.Notifier().Subscribe(func(ev notify.ChangeEvent) {
		v.n.Notify(name + "." + ev.Property)
	})
	v.subs = append(v.subs, forward{box: box, sub: sub})
}
