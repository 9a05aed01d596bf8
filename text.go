package pgcopy

import (
	"fmt"
	"strings"
)

// Escape returns s as a COPY text field.
func Escape(s string) string {
	if !strings.ContainsAny(s, "\\\t\n\r\b\f\v") {
		return s
	}

	sb := &strings.Builder{}
	sb.Grow(len(s) + 8)

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\v':
			sb.WriteString(`\v`)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

// Unescape reverses Escape. It also accepts the octal (\123) and hex (\x53)
// byte escapes COPY reads. Any other escaped character stands for itself.
func Unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	sb := &strings.Builder{}
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)

			continue
		}

		i++
		if i == len(s) {
			return "", fmt.Errorf("%w: trailing backslash in %q", ErrInvalidField, s)
		}

		switch c = s[i]; {
		case c == 't':
			sb.WriteByte('\t')
		case c == 'n':
			sb.WriteByte('\n')
		case c == 'r':
			sb.WriteByte('\r')
		case c == 'b':
			sb.WriteByte('\b')
		case c == 'f':
			sb.WriteByte('\f')
		case c == 'v':
			sb.WriteByte('\v')
		case c >= '0' && c <= '7':
			var b byte
			j := i
			for ; j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7'; j++ {
				b = b<<3 | (s[j] - '0')
			}
			sb.WriteByte(b)
			i = j - 1
		case c == 'x' && i+1 < len(s) && isHex(s[i+1]):
			var b byte
			j := i + 1
			for ; j < len(s) && j < i+3 && isHex(s[j]); j++ {
				b = b<<4 | unhex(s[j])
			}
			sb.WriteByte(b)
			i = j - 1
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	}

	return c - '0'
}
