package fixed

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	gvdecimal "github.com/govalues/decimal"
	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"

	"github.com/calebcase/pgcopy/numeric"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("fixed")

// Conversion errors.
var (
	ErrNotFinite  = errors.New("not finite")
	ErrOutOfRange = errors.New("out of range")
)

// Fixed is a fixed point base 10 number equal to Value * 10^-Scale. A nil
// Value is zero.
type Fixed struct {
	Value *big.Int
	Scale uint16
}

// FromNumeric returns the fixed point form of v at its display scale. Digits
// past the display scale are truncated.
func FromNumeric(v numeric.Value) (f Fixed, err error) {
	defer Error.WrapP(&err)

	if v.Kind != numeric.Finite {
		return Fixed{}, fmt.Errorf("%w: %s", ErrNotFinite, v.Kind)
	}

	text := strings.Replace(v.String(), ".", "", 1)

	value, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Fixed{}, fmt.Errorf("%w: %q", ErrOutOfRange, text)
	}

	return Fixed{
		Value: value,
		Scale: v.Scale,
	}, nil
}

// Numeric returns f as a canonical numeric value.
func (f Fixed) Numeric() (v numeric.Value, err error) {
	defer Error.WrapP(&err)

	v, err = numeric.Parse(f.String())
	if err != nil {
		return numeric.Value{}, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}

	return v, nil
}

// Sign returns -1, 0 or +1.
func (f Fixed) Sign() int {
	if f.Value == nil {
		return 0
	}

	return f.Value.Sign()
}

// String formats f with exactly Scale fraction digits.
func (f Fixed) String() string {
	var digits string
	if f.Value == nil {
		digits = "0"
	} else {
		digits = new(big.Int).Abs(f.Value).String()
	}

	scale := int(f.Scale)
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}

	sb := &strings.Builder{}
	sb.Grow(len(digits) + 2)

	if f.Sign() < 0 {
		sb.WriteByte('-')
	}

	sb.WriteString(digits[:len(digits)-scale])
	if scale > 0 {
		sb.WriteByte('.')
		sb.WriteString(digits[len(digits)-scale:])
	}

	return sb.String()
}

// Shopspring returns f as a shopspring decimal.
func (f Fixed) Shopspring() decimal.Decimal {
	value := new(big.Int)
	if f.Value != nil {
		value.Set(f.Value)
	}

	return decimal.NewFromBigInt(value, -int32(f.Scale))
}

// FromShopspring returns the fixed point form of d. Positive exponents are
// multiplied out to scale 0.
func FromShopspring(d decimal.Decimal) (f Fixed, err error) {
	defer Error.WrapP(&err)

	value := new(big.Int).Set(d.Coefficient())
	exp := d.Exponent()

	if exp >= 0 {
		value.Mul(value, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))

		return Fixed{Value: value}, nil
	}

	if -int64(exp) > math.MaxUint16 {
		return Fixed{}, fmt.Errorf("%w: exponent %d", ErrOutOfRange, exp)
	}

	return Fixed{
		Value: value,
		Scale: uint16(-exp),
	}, nil
}

// Govalues returns f as a govalues decimal. It fails when f cannot be
// represented exactly in gvdecimal.MaxPrec digits.
func (f Fixed) Govalues() (d gvdecimal.Decimal, err error) {
	defer Error.WrapP(&err)

	text := f.String()

	d, err = gvdecimal.Parse(text)
	if err != nil {
		return gvdecimal.Decimal{}, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}

	// Parse rounds fractions longer than MaxScale.
	if FromGovalues(d).String() != text {
		return gvdecimal.Decimal{}, fmt.Errorf("%w: %s rounds to %s", ErrOutOfRange, text, d)
	}

	return d, nil
}

// FromGovalues returns the fixed point form of d.
func FromGovalues(d gvdecimal.Decimal) Fixed {
	value := new(big.Int).SetUint64(d.Coef())
	if d.IsNeg() {
		value.Neg(value)
	}

	return Fixed{
		Value: value,
		Scale: uint16(d.Scale()),
	}
}
