package numeric

import (
	"errors"

	"github.com/zeebo/errs"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("numeric")

// Decode errors.
var (
	ErrBadSign         = errors.New("invalid sign")
	ErrDigitOutOfRange = errors.New("digit out of range")
	ErrLengthMismatch  = errors.New("invalid length")
	ErrTooManyDigits   = errors.New("too many digits")
	ErrScaleOutOfRange = errors.New("scale out of range")
)

// Parse errors.
var (
	ErrInvalidSyntax      = errors.New("invalid syntax")
	ErrUnsupportedSpecial = errors.New("unsupported special value")
	ErrOutOfRange         = errors.New("value out of range")
)

// Base is the radix of a digit group.
const Base = 10000

// GroupDigits is the number of decimal digits packed into a digit group.
const GroupDigits = 4

// MaxGroups is the largest number of digit groups the wire format can carry.
const MaxGroups = 0xFFFF

var pow10 = [...]uint16{1, 10, 100, 1000, 10000}

// Sign is the wire sign code.
type Sign uint16

// Sign codes.
const (
	SignPos  Sign = 0x0000
	SignNeg  Sign = 0x4000
	SignNaN  Sign = 0xC000
	SignPinf Sign = 0xD000
	SignNinf Sign = 0xF000
)

// Kind distinguishes finite numbers from the special values.
type Kind uint8

// Kinds. The zero Kind is Finite.
const (
	Finite Kind = iota
	NaN
	PositiveInfinity
	NegativeInfinity
)

func (k Kind) String() string {
	switch k {
	case Finite:
		return "finite"
	case NaN:
		return "NaN"
	case PositiveInfinity:
		return "Infinity"
	case NegativeInfinity:
		return "-Infinity"
	}

	return "unknown"
}

// Value is a NUMERIC value as carried on the wire.
//
// For a Finite value the number is
//
//	sum(Digits[i] * 10000^(Weight-i))
//
// rendered with exactly Scale digits after the decimal point. Digits, Weight,
// Scale and Negative are ignored for the special kinds.
type Value struct {
	Kind     Kind
	Negative bool
	Digits   []uint16
	Weight   int16
	Scale    uint16
}

// Special returns the special value of kind k.
func Special(k Kind) Value {
	return Value{Kind: k}
}

// IsZero reports whether v is a finite value with no nonzero digit groups.
func (v Value) IsZero() bool {
	if v.Kind != Finite {
		return false
	}

	for _, d := range v.Digits {
		if d != 0 {
			return false
		}
	}

	return true
}

// Sign returns the wire sign code for v.
func (v Value) Sign() Sign {
	switch v.Kind {
	case NaN:
		return SignNaN
	case PositiveInfinity:
		return SignPinf
	case NegativeInfinity:
		return SignNinf
	}

	if v.Negative {
		return SignNeg
	}

	return SignPos
}

// Canonical returns v in the form the database stores: digit groups past the
// display scale are truncated, leading and trailing zero groups are removed and
// zero is positive with weight 0.
func (v Value) Canonical() Value {
	if v.Kind != Finite {
		return Special(v.Kind)
	}

	// Number of groups that hold any digit within the scale.
	keep := int(v.Weight) + 1 + (int(v.Scale)+GroupDigits-1)/GroupDigits
	if keep < 0 {
		keep = 0
	}

	n := len(v.Digits)
	if keep < n {
		n = keep
	}

	out := make([]uint16, n)
	copy(out, v.Digits)

	if n > 0 && n == keep && int(v.Scale)%GroupDigits != 0 {
		// The last group straddles the scale boundary.
		m := pow10[GroupDigits-int(v.Scale)%GroupDigits]
		out[n-1] = out[n-1] / m * m
	}

	weight := int(v.Weight)

	start := 0
	for start < len(out) && out[start] == 0 {
		start++
		weight--
	}

	end := len(out)
	for end > start && out[end-1] == 0 {
		end--
	}

	if start == end {
		return Value{Scale: v.Scale}
	}

	return Value{
		Negative: v.Negative,
		Digits:   out[start:end],
		Weight:   int16(weight),
		Scale:    v.Scale,
	}
}
