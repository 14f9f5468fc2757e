package parser

import (
	"strconv"
	"strings"
)

// ParseNumber parses an integer literal with auto-base detection: a
// "0x" prefix selects base 16, a "0b" prefix selects base 2, otherwise
// base 10. An optional leading "-" is honoured in all three bases.
func ParseNumber(text string) (int64, error) {
	neg := false
	if strings.HasPrefix(text, "-") {
		neg = true
		text = text[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		base = 16
		text = text[2:]
	case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
		base = 2
		text = text[2:]
	}
	v, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return v, nil
}
