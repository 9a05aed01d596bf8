package pgcopy_test

import (
	"bytes"
	"testing"

	"github.com/calebcase/oops"
	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/pgcopy"
	"github.com/calebcase/pgcopy/frame"
	"github.com/calebcase/pgcopy/numeric"
)

func TestRows(t *testing.T) {
	types := []oid.Oid{
		oid.T_numeric,
		oid.T_text,
		oid.T_bool,
		oid.T_int2,
		oid.T_int4,
		oid.T_int8,
		oid.T_float4,
		oid.T_float8,
		oid.T_bytea,
	}

	rows := [][]string{
		{"1.50", "hello", "t", "-2", "70000", "-9000000000", "1.5", "0.1", `\\x0102ff`},
		{`\N`, `tab\there`, "f", "32767", "-1", "0", "NaN", "-Infinity", `\\x`},
		{"-0.001", `back\\slash`, `\N`, "0", "0", "1", "Infinity", "1e+20", `\N`},
	}

	buf := &bytes.Buffer{}

	e, err := pgcopy.NewEncoder(pgcopy.Schema{}, buf, types...)
	require.NoError(t, err)

	for _, row := range rows {
		require.NoError(t, e.Encode(row...))
	}
	require.NoError(t, e.Close())

	d, err := pgcopy.NewDecoder(pgcopy.Schema{}, bytes.NewReader(buf.Bytes()), types...)
	require.NoError(t, err)

	var got [][]string
	for d.Next() {
		got = append(got, d.Row())
	}
	require.NoError(t, d.Err())
	require.Equal(t, rows, got)
}

func TestRowsNumericFixture(t *testing.T) {
	// A stream in the shape the database writes for COPY (VALUES ...) TO
	// STDOUT (FORMAT binary).
	input := unhex(t, ""+
		"5047434f50590aff0d0a00 00000000 00000000"+
		"0001 00000008 0000 0000 0000 0002"+
		"0001 0000000e 0003 0001 0000 0003 0001 0929 1a7c"+
		"0001 00000008 0000 0000 c000 0000"+
		"0001 ffffffff"+
		"ffff")

	d, err := pgcopy.NewDecoder(pgcopy.Schema{}, bytes.NewReader(input), oid.T_numeric)
	require.NoError(t, err)

	var lines []string
	for d.Next() {
		lines = append(lines, d.Line())
	}
	require.NoError(t, d.Err())
	require.Equal(t, []string{"0.00", "12345.678", "NaN", `\N`}, lines)
}

func TestRowsErrors(t *testing.T) {
	t.Run("unsupported type", func(t *testing.T) {
		_, err := pgcopy.NewDecoder(pgcopy.Schema{}, &bytes.Buffer{}, oid.T_json)
		require.ErrorIs(t, err, pgcopy.ErrUnsupportedType)

		_, err = pgcopy.NewEncoder(pgcopy.Schema{}, &bytes.Buffer{}, oid.T_point)
		require.ErrorIs(t, err, pgcopy.ErrUnsupportedType)
	})

	t.Run("column count", func(t *testing.T) {
		data, err := frame.Encode([]frame.Tuple{{nil, nil}})
		require.NoError(t, err)

		d, err := pgcopy.NewDecoder(pgcopy.Schema{}, bytes.NewReader(data), oid.T_numeric)
		require.NoError(t, err)
		require.False(t, d.Next())
		require.ErrorIs(t, d.Err(), pgcopy.ErrColumnCount)
		require.True(t, pgcopy.Error.Has(d.Err()))

		e, err := pgcopy.NewEncoder(pgcopy.Schema{}, &bytes.Buffer{}, oid.T_numeric)
		require.NoError(t, err)
		require.ErrorIs(t, e.Encode("1", "2"), pgcopy.ErrColumnCount)
	})

	t.Run("bad numeric field", func(t *testing.T) {
		data, err := frame.Encode([]frame.Tuple{{unhex(t, "0001 0000 0000 0000 2710")}})
		require.NoError(t, err)

		d, err := pgcopy.NewDecoder(pgcopy.Schema{}, bytes.NewReader(data), oid.T_numeric)
		require.NoError(t, err)
		require.False(t, d.Next())
		require.ErrorIs(t, d.Err(), numeric.ErrDigitOutOfRange)
		require.Nil(t, d.Row())
	})

	t.Run("numeric limits", func(t *testing.T) {
		data, err := frame.Encode([]frame.Tuple{{unhex(t, "0003 0000 0000 0000 0001 0001 0001")}})
		require.NoError(t, err)

		schema := pgcopy.Schema{Numeric: numeric.Schema{MaxDigits: 2}}

		d, err := pgcopy.NewDecoder(schema, bytes.NewReader(data), oid.T_numeric)
		require.NoError(t, err)
		require.False(t, d.Next())
		require.ErrorIs(t, d.Err(), numeric.ErrTooManyDigits)
	})

	t.Run("frame error", func(t *testing.T) {
		d, err := pgcopy.NewDecoder(pgcopy.Schema{}, bytes.NewReader([]byte("junk")), oid.T_numeric)
		require.NoError(t, err)
		require.False(t, d.Next())
		require.ErrorIs(t, d.Err(), frame.ErrBadSignature)
	})

	t.Run("bad text", func(t *testing.T) {
		type TC struct {
			Type oid.Oid
			Text string
			Err  error
			Mark error
		}

		tcs := []TC{
			{Type: oid.T_numeric, Text: "1.2.3", Err: numeric.ErrInvalidSyntax, Mark: oops.New("unexpected")},
			{Type: oid.T_int2, Text: "40000", Err: pgcopy.ErrInvalidField, Mark: oops.New("unexpected")},
			{Type: oid.T_bool, Text: "maybe", Err: pgcopy.ErrInvalidField, Mark: oops.New("unexpected")},
			{Type: oid.T_float8, Text: "one", Err: pgcopy.ErrInvalidField, Mark: oops.New("unexpected")},
			{Type: oid.T_bytea, Text: "0102", Err: pgcopy.ErrInvalidField, Mark: oops.New("unexpected")},
			{Type: oid.T_text, Text: `trailing\`, Err: pgcopy.ErrInvalidField, Mark: oops.New("unexpected")},
		}

		for _, tc := range tcs {
			e, err := pgcopy.NewEncoder(pgcopy.Schema{}, &bytes.Buffer{}, tc.Type)
			require.NoError(t, err, tc.Mark)

			err = e.Encode(tc.Text)
			require.ErrorIs(t, err, tc.Err, tc.Mark)
			require.True(t, pgcopy.Error.Has(err), tc.Mark)
		}
	})
}

func TestEncodeLine(t *testing.T) {
	buf := &bytes.Buffer{}

	e, err := pgcopy.NewEncoder(pgcopy.Schema{}, buf, oid.T_numeric, oid.T_text)
	require.NoError(t, err)
	require.NoError(t, e.EncodeLine("1.0\t\\N\n"))
	require.NoError(t, e.Close())

	tuples, err := frame.Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, []frame.Tuple{{unhex(t, "0001 0000 0000 0001 0001"), nil}}, tuples)
}

func TestParseType(t *testing.T) {
	typ, err := pgcopy.ParseType("numeric")
	require.NoError(t, err)
	require.Equal(t, oid.T_numeric, typ)

	typ, err = pgcopy.ParseType(" INT8 ")
	require.NoError(t, err)
	require.Equal(t, oid.T_int8, typ)

	_, err = pgcopy.ParseType("decimal128")
	require.ErrorIs(t, err, pgcopy.ErrUnsupportedType)
}
