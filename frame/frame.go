package frame

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/zeebo/errs"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("frame")

// Frame errors.
var (
	ErrBadSignature    = errors.New("bad signature")
	ErrTruncated       = errors.New("truncated")
	ErrMalformedLength = errors.New("malformed length")
	ErrTrailingData    = errors.New("trailing data")
	ErrClosed          = errors.New("encoder closed")
)

// Signature starts every COPY binary stream: the 11 byte magic, a zero 32 bit
// flags field and a zero 32 bit header extension length.
const Signature = "PGCOPY\n\xff\r\n\x00" + "\x00\x00\x00\x00" + "\x00\x00\x00\x00"

// SignatureSize is the length of Signature.
const SignatureSize = len(Signature)

// Sentinel values on the wire.
const (
	// Trailer is the field count ending the stream.
	Trailer int16 = -1

	// NullLength is the field length of a NULL field.
	NullLength int32 = -1
)

// Field limits imposed by the wire format.
const (
	MaxFields    = 1<<15 - 1
	MaxFieldSize = 1<<31 - 1
)

// Field is a field payload. A nil Field is NULL; an empty non-nil Field is a
// zero length value.
type Field []byte

// IsNull reports whether the field is NULL.
func (f Field) IsNull() bool {
	return f == nil
}

// Tuple is one row of fields.
type Tuple []Field

// Schema configures decoding limits.
type Schema struct {
	// MaxFieldSize rejects longer fields with ErrMalformedLength. Zero
	// means the wire format limit.
	MaxFieldSize int
}

// Decode parses a complete COPY binary stream. Bytes after the trailer are an
// error.
func Decode(data []byte) (tuples []Tuple, err error) {
	r := bytes.NewReader(data)
	d := NewDecoder(r)

	for d.Next() {
		tuples = append(tuples, d.Tuple())
	}

	err = d.Err()
	if err != nil {
		return nil, err
	}

	if r.Len() != 0 {
		return nil, Error.Wrap(fmt.Errorf("%w: %d bytes after trailer", ErrTrailingData, r.Len()))
	}

	return tuples, nil
}

// Encode writes tuples as a complete COPY binary stream.
func Encode(tuples []Tuple) (data []byte, err error) {
	buf := &bytes.Buffer{}
	e := NewEncoder(buf)

	for _, t := range tuples {
		err = e.Encode(t)
		if err != nil {
			return nil, err
		}
	}

	err = e.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
