// Package fixed provides a fixed point base 10 view of NUMERIC values.
//
// The equation for a fixed point number is:
//
//	number = value * 10 ^ -scale
//
// Where value is an unscaled integer and scale is the display scale of the
// NUMERIC value it came from. For example:
//
//	1.23 = 123 * 10^-2
//
// Converting from a NUMERIC value keeps its display scale, so 1.50 becomes
// 150 * 10^-2 rather than 15 * 10^-1. NaN and the infinities have no fixed
// point form.
//
// The fixed point form is the bridge to the decimal types of other libraries:
// github.com/shopspring/decimal (arbitrary precision) and
// github.com/govalues/decimal (19 digits).
package fixed
