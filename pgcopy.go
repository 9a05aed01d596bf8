// Package pgcopy reads and writes the database's COPY binary format and the
// NUMERIC values it carries.
//
// The work is split by layer:
//
//   - frame: the COPY binary envelope of tuples and length prefixed fields.
//   - numeric: the NUMERIC field payload and its decimal text form.
//   - fixed: a big.Int fixed point view of NUMERIC values.
//
// This package ties them together: the functions below cover the common
// conversions and Decoder/Encoder translate whole streams to and from the
// text rows COPY prints, using the column type OIDs to pick a codec for each
// field.
package pgcopy

import (
	"github.com/calebcase/pgcopy/frame"
	"github.com/calebcase/pgcopy/numeric"
)

// DecodeFrame parses a complete COPY binary stream.
func DecodeFrame(data []byte) ([]frame.Tuple, error) {
	return frame.Decode(data)
}

// EncodeFrame writes tuples as a complete COPY binary stream.
func EncodeFrame(tuples []frame.Tuple) ([]byte, error) {
	return frame.Encode(tuples)
}

// DecodeNumeric parses a NUMERIC field payload.
func DecodeNumeric(data []byte) (v numeric.Value, err error) {
	err = v.UnmarshalBinary(data)
	if err != nil {
		return numeric.Value{}, err
	}

	return v, nil
}

// EncodeNumeric returns the NUMERIC field payload for v.
func EncodeNumeric(v numeric.Value) ([]byte, error) {
	return v.MarshalBinary()
}

// DecimalToText renders v as the database prints it.
func DecimalToText(v numeric.Value) string {
	return v.String()
}

// TextToDecimal parses decimal text into its canonical value.
func TextToDecimal(s string) (numeric.Value, error) {
	return numeric.Parse(s)
}
