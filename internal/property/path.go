package property

import (
	"fmt"
	"strings"
)

// Path is an ordered sequence of property names, "Outer.Inner" -> [Outer Inner].
type Path []string

// ParsePath splits raw on "." and validates every segment.
func ParsePath(raw string) (Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segments := strings.Split(raw, ".")
	for i, seg := range segments {
		if !isIdentifier(seg) {
			return nil, fmt.Errorf("%w: segment %d of %q is %q", ErrInvalidPath, i, raw, seg)
		}
	}
	return Path(segments), nil
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Covers reports whether a change notification for name invalidates the
// value at p. An empty name means every property of the owner changed.
func (p Path) Covers(name string) bool {
	if name == "" {
		return true
	}
	full := p.String()
	return full == name || strings.HasPrefix(full, name+".")
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
		isDigit := c >= '0' && c <= '9'
		if !(isLetter || (isDigit && i > 0)) {
			return false
		}
	}
	return true
}
