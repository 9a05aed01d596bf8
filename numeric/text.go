package numeric

import (
	"fmt"
	"math"
	"strings"
)

// String renders v the way the database prints it: exactly Scale digits after
// the decimal point and no sign on zero.
func (v Value) String() string {
	switch v.Kind {
	case NaN:
		return "NaN"
	case PositiveInfinity:
		return "Infinity"
	case NegativeInfinity:
		return "-Infinity"
	}

	digit := func(i int) uint16 {
		if i < 0 || i >= len(v.Digits) {
			return 0
		}

		return v.Digits[i]
	}

	weight := int(v.Weight)

	sb := &strings.Builder{}
	size := 2 + int(v.Scale)
	if weight >= 0 {
		size += GroupDigits * (weight + 1)
	}
	sb.Grow(size)

	// Reserve the sign position; it is only known once the digits are out.
	sb.WriteByte('-')

	var nonzero bool
	var group [GroupDigits]byte

	put := func(d uint16, n int, trim bool) {
		for i := GroupDigits - 1; i >= 0; i-- {
			group[i] = byte('0' + d%10)
			d /= 10
		}

		out := group[:n]
		if trim {
			for len(out) > 1 && out[0] == '0' {
				out = out[1:]
			}
		}

		for _, c := range out {
			if c != '0' {
				nonzero = true
			}
		}

		sb.Write(out)
	}

	if weight < 0 {
		sb.WriteByte('0')
	} else {
		var started bool
		for i := 0; i <= weight; i++ {
			d := digit(i)
			if !started && d == 0 && i < weight {
				continue
			}

			put(d, GroupDigits, !started)
			started = true
		}
	}

	if v.Scale > 0 {
		sb.WriteByte('.')

		remaining := int(v.Scale)
		for i := weight + 1; remaining > 0; i++ {
			n := GroupDigits
			if remaining < n {
				n = remaining
			}

			put(digit(i), n, false)
			remaining -= n
		}
	}

	s := sb.String()
	if v.Negative && nonzero {
		return s
	}

	return s[1:]
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Value) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// Parse converts decimal text into its canonical Value.
//
// The accepted syntax is an optional sign, digits with an optional decimal
// point and an optional exponent, or one of the case insensitive special
// tokens "NaN", "Infinity" and "inf". Surrounding whitespace is ignored. The
// display scale is the number of fraction digits written, less the exponent.
func Parse(text string) (v Value, err error) {
	defer Error.WrapP(&err)

	s := strings.TrimSpace(text)

	var (
		pos   int
		width = len(s)
		neg   bool
		signd bool
	)

	// Sign
	if pos < width && (s[pos] == '-' || s[pos] == '+') {
		neg = s[pos] == '-'
		signd = true
		pos++
	}

	if pos < width && !isDigit(s[pos]) && s[pos] != '.' {
		return parseSpecial(text, s[pos:], neg, signd)
	}

	var (
		digits   = make([]byte, 0, width)
		point    = -1
		hascoef  bool
		exp      int
		eneg     bool
		hasexp   bool
		fraction int
	)

	// Integer
	for pos < width && isDigit(s[pos]) {
		digits = append(digits, s[pos]-'0')
		hascoef = true
		pos++
	}

	// Fraction
	if pos < width && s[pos] == '.' {
		point = len(digits)
		pos++
		for pos < width && isDigit(s[pos]) {
			digits = append(digits, s[pos]-'0')
			hascoef = true
			fraction++
			pos++
		}
	}
	if point < 0 {
		point = len(digits)
	}

	// Exponential part
	if pos < width && (s[pos] == 'e' || s[pos] == 'E') {
		pos++
		if pos < width && (s[pos] == '-' || s[pos] == '+') {
			eneg = s[pos] == '-'
			pos++
		}
		for pos < width && isDigit(s[pos]) {
			if exp <= math.MaxInt32/10 {
				exp = exp*10 + int(s[pos]-'0')
			}
			hasexp = true
			pos++
		}
		if !hasexp {
			return Value{}, fmt.Errorf("%w: no exponent in %q", ErrInvalidSyntax, text)
		}
	}

	if pos != width {
		return Value{}, fmt.Errorf("%w: invalid character %q in %q", ErrInvalidSyntax, s[pos], text)
	}
	if !hascoef {
		return Value{}, fmt.Errorf("%w: no digits in %q", ErrInvalidSyntax, text)
	}

	if eneg {
		exp = -exp
	}

	// The decimal point moves right by the exponent.
	point += exp

	scale := fraction - exp
	if scale < 0 {
		scale = 0
	}
	if scale > math.MaxUint16 {
		return Value{}, fmt.Errorf("%w: scale %d in %q", ErrOutOfRange, scale, text)
	}

	// Align the digits on group boundaries relative to the decimal point.
	// Digit i sits at decimal position point-1-i (0 is the ones place).
	lead := (GroupDigits - mod(point, GroupDigits)) % GroupDigits
	weight := floorDiv(point+lead, GroupDigits) - 1

	ngroups := (lead + len(digits) + GroupDigits - 1) / GroupDigits
	groups := make([]uint16, ngroups)
	for i, d := range digits {
		j := lead + i
		groups[j/GroupDigits] = groups[j/GroupDigits]*10 + uint16(d)
	}
	// Pad the last group on the right.
	if tail := (lead + len(digits)) % GroupDigits; tail != 0 && ngroups > 0 {
		groups[ngroups-1] *= pow10[GroupDigits-tail]
	}

	start := 0
	for start < len(groups) && groups[start] == 0 {
		start++
	}
	end := len(groups)
	for end > start && groups[end-1] == 0 {
		end--
	}

	if start == end {
		return Value{Scale: uint16(scale)}, nil
	}

	weight -= start
	if weight > math.MaxInt16 || weight < math.MinInt16 {
		return Value{}, fmt.Errorf("%w: weight %d in %q", ErrOutOfRange, weight, text)
	}

	return Value{
		Negative: neg,
		Digits:   groups[start:end],
		Weight:   int16(weight),
		Scale:    uint16(scale),
	}, nil
}

func parseSpecial(text, token string, neg, signd bool) (Value, error) {
	switch strings.ToLower(token) {
	case "nan":
		if signd {
			return Value{}, fmt.Errorf("%w: %q", ErrUnsupportedSpecial, text)
		}

		return Special(NaN), nil
	case "infinity", "inf":
		if neg {
			return Special(NegativeInfinity), nil
		}

		return Special(PositiveInfinity), nil
	}

	return Value{}, fmt.Errorf("%w: %q", ErrInvalidSyntax, text)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}

	return m
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
