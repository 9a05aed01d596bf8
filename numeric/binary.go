package numeric

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of the fixed NUMERIC header: ndigits, weight, sign
// and dscale.
const HeaderSize = 8

// MaxScale is the largest display scale the database itself accepts.
const MaxScale = 0x3FFF

// Schema configures decoding limits. The zero Schema accepts everything the
// wire format can express.
type Schema struct {
	// MaxDigits rejects payloads declaring more digit groups. Zero means no
	// limit beyond the wire format's 65535.
	MaxDigits int

	// StrictScale rejects display scales above MaxScale.
	StrictScale bool
}

// Decoder decodes NUMERIC field payloads.
type Decoder struct {
	schema Schema
}

// NewDecoder returns a new decoder.
func NewDecoder(schema Schema) *Decoder {
	return &Decoder{
		schema: schema,
	}
}

// Decode parses a field payload into v. On error v is left unmodified.
func (d *Decoder) Decode(data []byte, v *Value) (err error) {
	defer Error.WrapP(&err)

	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes is shorter than the header", ErrLengthMismatch, len(data))
	}

	ndigits := int(binary.BigEndian.Uint16(data[0:]))
	weight := int16(binary.BigEndian.Uint16(data[2:]))
	sign := Sign(binary.BigEndian.Uint16(data[4:]))
	dscale := binary.BigEndian.Uint16(data[6:])

	var kind Kind
	switch sign {
	case SignPos, SignNeg:
		kind = Finite
	case SignNaN:
		kind = NaN
	case SignPinf:
		kind = PositiveInfinity
	case SignNinf:
		kind = NegativeInfinity
	default:
		return fmt.Errorf("%w: %#04x", ErrBadSign, uint16(sign))
	}

	if d.schema.MaxDigits > 0 && ndigits > d.schema.MaxDigits {
		return fmt.Errorf("%w: %d > %d", ErrTooManyDigits, ndigits, d.schema.MaxDigits)
	}

	if want := HeaderSize + 2*ndigits; len(data) != want {
		return fmt.Errorf("%w: %d bytes for %d digits, want %d", ErrLengthMismatch, len(data), ndigits, want)
	}

	if kind != Finite {
		*v = Special(kind)

		return nil
	}

	if d.schema.StrictScale && dscale > MaxScale {
		return fmt.Errorf("%w: %#04x", ErrScaleOutOfRange, dscale)
	}

	var digits []uint16
	if ndigits > 0 {
		digits = make([]uint16, ndigits)
	}

	body := data[HeaderSize:]
	for i := range digits {
		digit := binary.BigEndian.Uint16(body[2*i:])
		if digit >= Base {
			return fmt.Errorf("%w: %d at group %d", ErrDigitOutOfRange, digit, i)
		}

		digits[i] = digit
	}

	*v = Value{
		Negative: sign == SignNeg,
		Digits:   digits,
		Weight:   weight,
		Scale:    dscale,
	}

	return nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler with the zero Schema.
func (v *Value) UnmarshalBinary(data []byte) (err error) {
	return NewDecoder(Schema{}).Decode(data, v)
}

// MarshalBinary implements encoding.BinaryMarshaler.
//
// Digit groups are written as they are; use Canonical first to produce the
// database's canonical form.
func (v Value) MarshalBinary() (data []byte, err error) {
	return v.AppendBinary(nil)
}

// AppendBinary appends the wire form of v to buf.
func (v Value) AppendBinary(buf []byte) (data []byte, err error) {
	defer Error.WrapP(&err)

	if v.Kind != Finite {
		buf = binary.BigEndian.AppendUint16(buf, 0)
		buf = binary.BigEndian.AppendUint16(buf, 0)
		buf = binary.BigEndian.AppendUint16(buf, uint16(v.Sign()))
		buf = binary.BigEndian.AppendUint16(buf, 0)

		return buf, nil
	}

	if len(v.Digits) > MaxGroups {
		return nil, fmt.Errorf("%w: %d digit groups", ErrLengthMismatch, len(v.Digits))
	}

	for i, digit := range v.Digits {
		if digit >= Base {
			return nil, fmt.Errorf("%w: %d at group %d", ErrDigitOutOfRange, digit, i)
		}
	}

	buf = binary.BigEndian.AppendUint16(buf, uint16(len(v.Digits)))
	buf = binary.BigEndian.AppendUint16(buf, uint16(v.Weight))
	buf = binary.BigEndian.AppendUint16(buf, uint16(v.Sign()))
	buf = binary.BigEndian.AppendUint16(buf, v.Scale)

	for _, digit := range v.Digits {
		buf = binary.BigEndian.AppendUint16(buf, digit)
	}

	return buf, nil
}
