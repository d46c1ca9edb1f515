package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Builtin lists the converters every default registry starts with.
//
// Integer <-> string parameters:
//   - nil: plain decimal
//   - string: a fmt verb layout such as "%05d", also used to scan input back
//   - language.Tag: locale digit grouping, e.g. "1,234" for en or "1.234" for de
func Builtin() []Registration {
	return []Registration{
		For[int, string](signedString[int](strconv.IntSize)),
		For[int32, string](signedString[int32](32)),
		For[int64, string](signedString[int64](64)),
		For[float64, string](Funcs(formatFloat, parseFloat)),
		For[bool, string](Funcs(formatBool, parseBool)),
		For[int, float64](Funcs(intToFloat, floatToInt)),
	}
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

func signedString[T signed](bits int) Converter {
	to := func(v T, parameter any) (string, bool) {
		switch p := parameter.(type) {
		case string:
			if p != "" {
				return fmt.Sprintf(p, v), true
			}
		case language.Tag:
			return message.NewPrinter(p).Sprintf("%d", v), true
		}
		return strconv.FormatInt(int64(v), 10), true
	}
	from := func(s string, parameter any) (T, bool) {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		switch p := parameter.(type) {
		case string:
			if p != "" {
				var v T
				if _, err := fmt.Sscanf(s, p, &v); err != nil {
					return 0, false
				}
				return v, true
			}
		case language.Tag:
			n, ok := parseGrouped(s, p, bits)
			return T(n), ok
		}
		n, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return 0, false
		}
		return T(n), true
	}
	return Funcs(to, from)
}

// parseGrouped parses a locale-formatted integer. Plain digits are always
// accepted. Input carrying the locale's group separator must be exactly
// what the locale would print for the parsed value.
func parseGrouped(s string, tag language.Tag, bits int) (int64, bool) {
	p := message.NewPrinter(tag)
	sep := groupSeparator(p)
	s = normalizeMinus(s)
	if sep != "" && isSpaceSeparator(sep) {
		s = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return []rune(sep)[0]
			}
			return r
		}, s)
	}

	plain := s
	if sep != "" {
		plain = strings.ReplaceAll(s, sep, "")
	}
	n, err := strconv.ParseInt(plain, 10, bits)
	if err != nil {
		return 0, false
	}
	if plain != s && normalizeMinus(p.Sprintf("%d", n)) != s {
		return 0, false
	}
	return n, true
}

// groupSeparator derives the digit group separator from how the printer
// renders a seven digit number.
func groupSeparator(p *message.Printer) string {
	formatted := p.Sprintf("%d", 1234567)
	start := strings.IndexFunc(formatted, func(r rune) bool { return !unicode.IsDigit(r) })
	if start < 0 {
		return ""
	}
	rest := formatted[start:]
	end := strings.IndexFunc(rest, unicode.IsDigit)
	if end < 0 {
		return ""
	}
	return rest[:end]
}

func isSpaceSeparator(sep string) bool {
	runes := []rune(sep)
	return len(runes) == 1 && unicode.IsSpace(runes[0])
}

func normalizeMinus(s string) string {
	return strings.ReplaceAll(s, "\u2212", "-")
}

func formatFloat(v float64, parameter any) (string, bool) {
	if p, ok := parameter.(string); ok && p != "" {
		return fmt.Sprintf(p, v), true
	}
	return strconv.FormatFloat(v, 'g', -1, 64), true
}

func parseFloat(s string, parameter any) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if p, ok := parameter.(string); ok && p != "" {
		var v float64
		if _, err := fmt.Sscanf(s, p, &v); err != nil {
			return 0, false
		}
		return v, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatBool(v bool, _ any) (string, bool) {
	return strconv.FormatBool(v), true
}

func parseBool(s string, _ any) (bool, bool) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, false
	}
	return v, true
}

func intToFloat(v int, _ any) (float64, bool) {
	return float64(v), true
}

// floatToInt only accepts integral values that fit an int.
func floatToInt(v float64, _ any) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	if v < math.MinInt || v >= -math.MinInt {
		return 0, false
	}
	return int(v), true
}
