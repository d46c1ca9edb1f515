package binding

import (
	"fmt"
	"strings"
)

// Mode selects the propagation directions of a binding.
type Mode int

const (
	// TwoWay propagates source -> target, and target -> source when the
	// source property has a setter.
	TwoWay Mode = iota
	// OneWay propagates source -> target only.
	OneWay
)

func (m Mode) String() string {
	switch m {
	case TwoWay:
		return "two_way"
	case OneWay:
		return "one_way"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts the String forms; empty means TwoWay.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "two_way", "twoway":
		return TwoWay, nil
	case "one_way", "oneway":
		return OneWay, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
}

// State is the lifecycle state of a binding.
type State int

const (
	Attached State = iota
	Detached
)

func (s State) String() string {
	if s == Attached {
		return "attached"
	}
	return "detached"
}
