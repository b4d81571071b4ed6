// Package rut validates Chilean national identity numbers (RUT) against
// their modulo-11 check digit.
package rut

import "strings"

// Validate reports whether id is a RUT whose check character matches the
// modulo-11 scheme. Separators (periods, a hyphen) are stripped before
// validation. It fails closed: empty input, a missing body, or non-digit
// body characters all return false.
func Validate(id string) bool {
	cleaned := strip(id)
	if len(cleaned) < 2 {
		return false
	}

	body := cleaned[:len(cleaned)-1]
	check := upper(cleaned[len(cleaned)-1])

	sum := 0
	multiplier := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			// Malformed body, never a parse panic.
			return false
		}
		sum += int(c-'0') * multiplier
		if multiplier == 7 {
			multiplier = 2
		} else {
			multiplier++
		}
	}

	return checkChar(11-(sum%11)) == check
}

// Format normalizes a RUT to its canonical BODY-DV form without validating
// it. Useful for storing what the caller sent in a single shape.
func Format(id string) string {
	cleaned := strip(id)
	if len(cleaned) < 2 {
		return strings.ToUpper(cleaned)
	}
	return strings.ToUpper(cleaned[:len(cleaned)-1]) + "-" + string(upper(cleaned[len(cleaned)-1]))
}

// checkChar maps the modulo-11 remainder to its check character:
// 11 -> '0', 10 -> 'K', otherwise the decimal digit.
func checkChar(remainder int) byte {
	switch remainder {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + remainder)
	}
}

func strip(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	hyphens := 0
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c == '.':
			// thousands separator, ignored
		case c == '-':
			hyphens++
			if hyphens > 1 {
				return ""
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
