package demo

import (
	"fmt"

	"github.com/danmuck/bindkit/internal/notify"
)

// Model is plain data with no change notification.
type Model struct {
	Number int
	Text   string
}

// ViewModel presents a Model and raises notifications for it. Computed is
// derived from the other two properties.
type ViewModel struct {
	n     *notify.Notifier
	model *Model
}

func NewViewModel(m *Model) *ViewModel {
	if m == nil {
		m = &Model{}
	}
	vm := &ViewModel{model: m}
	vm.n = notify.New(vm)
	vm.n.Derive("Computed", "Number", "Text")
	return vm
}

func (vm *ViewModel) Notifier() *notify.Notifier { return vm.n }

func (vm *ViewModel) Number() int { return vm.model.Number }

func (vm *ViewModel) SetNumber(v int) {
	notify.SetVia(vm.n, "Number", vm.Number, func(v int) { vm.model.Number = v }, v)
}

func (vm *ViewModel) Text() string { return vm.model.Text }

func (vm *ViewModel) SetText(v string) {
	notify.SetVia(vm.n, "Text", vm.Text, func(v string) { vm.model.Text = v }, v)
}

func (vm *ViewModel) Computed() string {
	return fmt.Sprintf("%s: %d", vm.model.Text, vm.model.Number)
}
