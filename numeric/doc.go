// Package numeric provides the binary NUMERIC field payload used by the
// database's COPY binary format.
//
// A NUMERIC value is a sequence of base 10000 digit groups, the power of 10000
// of the first group (weight), a sign and a display scale:
//
//	number = sum(digit[i] * 10000 ^ (weight - i))
//
// For example:
//
//	12345.678 = 1 * 10000^1 + 2345 * 10000^0 + 6780 * 10000^-1
//
// The display scale (dscale) is the number of digits printed after the
// decimal point. It is independent of the digit groups: 1.50 and 1.5 carry
// the same groups and differ only in dscale.
//
// Encoding
//
// All fields are big-endian:
//
//	| Offset | Size | Field   |                                             |
//	|--------|------|---------|---------------------------------------------|
//	| 0      | 2    | ndigits | unsigned count of digit groups              |
//	| 2      | 2    | weight  | signed power of 10000 of the first group    |
//	| 4      | 2    | sign    | 0x0000, 0x4000, 0xC000, 0xD000 or 0xF000    |
//	| 6      | 2    | dscale  | unsigned display scale                      |
//	| 8      | 2 *n | digits  | unsigned digit groups, each less than 10000 |
//	|--------|------|---------|---------------------------------------------|
//
// The sign codes are:
//
//	| Code   | Meaning   |
//	|--------|-----------|
//	| 0x0000 | positive  |
//	| 0x4000 | negative  |
//	| 0xC000 | NaN       |
//	| 0xD000 | Infinity  |
//	| 0xF000 | -Infinity |
//	|--------|-----------|
//
// Special values are written with ndigits, weight and dscale of zero. They are
// read without looking at those fields, but the payload must still be exactly
// as long as ndigits says.
//
// Examples
//
// 12345.678 (14 bytes)
//
//	0003 0001 0000 0003 0001 0929 1a7c
//
// -0.0001 (10 bytes)
//
//	0001 ffff 4000 0004 0001
//
// 0.00 (8 bytes)
//
//	0000 0000 0000 0002
//
// Limits
//
// The wire format bounds ndigits at 65535, so decoding is always linear in the
// payload. Schema.MaxDigits imposes a tighter bound and Schema.StrictScale
// applies the database's own 0x3FFF display scale limit.
package numeric
