package frame_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/calebcase/oops"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/pgcopy/frame"
)

const sig = "5047434f50590aff0d0a00 00000000 00000000"

func unhex(t *testing.T, s string) []byte {
	t.Helper()

	data, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)

	return data
}

func TestSignature(t *testing.T) {
	require.Equal(t, 19, frame.SignatureSize)
	require.Equal(t, []byte("PGCOPY\n\xff\r\n\x00\x00\x00\x00\x00\x00\x00\x00\x00"), []byte(frame.Signature))
}

func TestDecoder(t *testing.T) {
	type TC struct {
		Name   string
		Input  string
		Tuples []frame.Tuple
		Mark   error
	}

	tcs := []TC{
		{
			Name:   "empty stream",
			Input:  sig + "ffff",
			Tuples: nil,
			Mark:   oops.New("unexpected"),
		},
		{
			Name:  "one numeric",
			Input: sig + "0001 0000000a 0001000000000000 0001" + "ffff",
			Tuples: []frame.Tuple{
				{unhex(t, "0001000000000000 0001")},
			},
			Mark: oops.New("unexpected"),
		},
		{
			Name:  "null",
			Input: sig + "0001 ffffffff" + "ffff",
			Tuples: []frame.Tuple{
				{nil},
			},
			Mark: oops.New("unexpected"),
		},
		{
			Name:  "empty field",
			Input: sig + "0001 00000000" + "ffff",
			Tuples: []frame.Tuple{
				{frame.Field{}},
			},
			Mark: oops.New("unexpected"),
		},
		{
			Name:  "zero fields",
			Input: sig + "0000" + "ffff",
			Tuples: []frame.Tuple{
				{},
			},
			Mark: oops.New("unexpected"),
		},
		{
			Name:  "mixed",
			Input: sig + "0003 00000002 abcd ffffffff 00000000" + "0001 00000001 01" + "ffff",
			Tuples: []frame.Tuple{
				{frame.Field{0xab, 0xcd}, nil, frame.Field{}},
				{frame.Field{0x01}},
			},
			Mark: oops.New("unexpected"),
		},
	}

	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			input := unhex(t, tc.Input)
			d := frame.NewDecoder(bytes.NewReader(input))

			var tuples []frame.Tuple
			for d.Next() {
				tuple := d.Tuple()
				t.Logf("Tuple: %s", spew.Sdump(tuple))

				tuples = append(tuples, tuple)
			}
			require.NoError(t, d.Err(), tc.Mark)

			require.Equal(t, tc.Tuples, tuples, tc.Mark)
			require.Equal(t, uint64(len(input)), d.Consumed(), tc.Mark)

			for i, tuple := range tuples {
				for j, field := range tuple {
					require.Equal(t, tc.Tuples[i][j].IsNull(), field.IsNull(), tc.Mark)
				}
			}

			// Finished decoders stay finished.
			require.False(t, d.Next(), tc.Mark)
			require.NoError(t, d.Err(), tc.Mark)
		})
	}
}

func TestDecoderStopsAtTrailer(t *testing.T) {
	input := unhex(t, sig+"0001 00000001 07 ffff deadbeef")
	r := bytes.NewReader(input)

	d := frame.NewDecoder(r)
	require.True(t, d.Next())
	require.Equal(t, frame.Tuple{{0x07}}, d.Tuple())
	require.False(t, d.Next())
	require.NoError(t, d.Err())

	// Nothing past the trailer was read.
	require.Equal(t, 4, r.Len())
	require.Equal(t, uint64(len(input)-4), d.Consumed())
}

func TestDecoderErrors(t *testing.T) {
	type TC struct {
		Name     string
		Input    string
		Schema   frame.Schema
		Err      error
		Consumed uint64
		Mark     error
	}

	tcs := []TC{
		{
			Name:     "bad signature",
			Input:    "5047434f50590aff0d0a01 00000000 00000000 ffff",
			Err:      frame.ErrBadSignature,
			Consumed: 19,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "bad flags",
			Input:    "5047434f50590aff0d0a00 00010000 00000000 ffff",
			Err:      frame.ErrBadSignature,
			Consumed: 19,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "short bad signature",
			Input:    "4e4f",
			Err:      frame.ErrBadSignature,
			Consumed: 2,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "short signature",
			Input:    "5047434f5059",
			Err:      frame.ErrTruncated,
			Consumed: 6,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "empty input",
			Input:    "",
			Err:      frame.ErrTruncated,
			Consumed: 0,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "missing trailer",
			Input:    sig,
			Err:      frame.ErrTruncated,
			Consumed: 19,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "half a count",
			Input:    sig + "00",
			Err:      frame.ErrTruncated,
			Consumed: 20,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "missing length",
			Input:    sig + "0002 00000001 01",
			Err:      frame.ErrTruncated,
			Consumed: 26,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "short payload",
			Input:    sig + "0001 00000004 0102",
			Err:      frame.ErrTruncated,
			Consumed: 27,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "large declared payload",
			Input:    sig + "0001 7fffffff 0102",
			Err:      frame.ErrTruncated,
			Consumed: 27,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "negative count",
			Input:    sig + "fffe" + "ffff",
			Err:      frame.ErrMalformedLength,
			Consumed: 21,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "negative length",
			Input:    sig + "0001 fffffffe" + "ffff",
			Err:      frame.ErrMalformedLength,
			Consumed: 25,
			Mark:     oops.New("unexpected"),
		},
		{
			Name:     "field too large",
			Input:    sig + "0001 00000004 01020304" + "ffff",
			Schema:   frame.Schema{MaxFieldSize: 3},
			Err:      frame.ErrMalformedLength,
			Consumed: 25,
			Mark:     oops.New("unexpected"),
		},
	}

	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			d := frame.NewDecoderSchema(tc.Schema, bytes.NewReader(unhex(t, tc.Input)))

			for d.Next() {
			}

			err := d.Err()
			require.ErrorIs(t, err, tc.Err, tc.Mark)
			require.True(t, frame.Error.Has(err), tc.Mark)
			require.Nil(t, d.Tuple(), tc.Mark)
			require.Equal(t, tc.Consumed, d.Consumed(), tc.Mark)

			// Errors are terminal.
			require.False(t, d.Next(), tc.Mark)
			require.Equal(t, err, d.Err(), tc.Mark)
		})
	}
}

func TestDecoderOneByteReader(t *testing.T) {
	payload := bytes.Repeat([]byte{0x23, 0x45}, 40000)
	input := append(unhex(t, sig+"0002 ffffffff 00013880"), payload...)
	input = append(input, 0xff, 0xff)

	d := frame.NewDecoder(iotest.OneByteReader(bytes.NewReader(input)))

	require.True(t, d.Next())
	require.Equal(t, frame.Tuple{nil, payload}, d.Tuple())
	require.False(t, d.Next())
	require.NoError(t, d.Err())
}

func TestDecoderReadError(t *testing.T) {
	failure := errors.New("boom")

	d := frame.NewDecoder(iotest.ErrReader(failure))

	require.False(t, d.Next())
	require.Error(t, d.Err())
	require.True(t, frame.Error.Has(d.Err()))
}

func TestDecode(t *testing.T) {
	tuples, err := frame.Decode(unhex(t, sig+"0001 00000001 2a"+"ffff"))
	require.NoError(t, err)
	require.Equal(t, []frame.Tuple{{{0x2a}}}, tuples)

	_, err = frame.Decode(unhex(t, sig+"ffff 00"))
	require.ErrorIs(t, err, frame.ErrTrailingData)
	require.True(t, frame.Error.Has(err))

	_, err = frame.Decode(unhex(t, sig+"0001"))
	require.ErrorIs(t, err, frame.ErrTruncated)
}
