package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/calebcase/oops"
)

// Payloads up to this size are read into a buffer of the declared length.
// Larger ones grow with the bytes actually read.
const directReadSize = 64 << 10

// Decoder reads tuples from a COPY binary stream.
type Decoder interface {
	// Next reads the next tuple. It returns false at the trailer or on
	// error; check Err to tell them apart.
	Next() (ok bool)
	Err() (err error)

	// Tuple returns the tuple read by the last successful Next.
	Tuple() Tuple

	// Consumed is the number of bytes read from the stream.
	Consumed() uint64
}

type decoder struct {
	r      io.Reader
	schema Schema

	consumed uint64
	tuples   int

	started  bool
	finished bool

	scratch [4]byte
	tuple   Tuple

	err error
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) Decoder {
	return NewDecoderSchema(Schema{}, r)
}

// NewDecoderSchema returns a decoder reading from r with the given limits.
func NewDecoderSchema(schema Schema, r io.Reader) Decoder {
	return &decoder{
		r:      r,
		schema: schema,
	}
}

// read fills buf from the stream. Running out of input is ErrTruncated.
func (d *decoder) read(buf []byte) (err error) {
	n, err := io.ReadFull(d.r, buf)
	d.consumed += uint64(n)

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: read %d of %d bytes at offset %d", ErrTruncated, n, len(buf), d.consumed-uint64(n))
	}
	if err != nil {
		return oops.Trace(err)
	}

	return nil
}

func (d *decoder) signature() (err error) {
	buf := make([]byte, SignatureSize)

	n, err := io.ReadFull(d.r, buf)
	d.consumed += uint64(n)

	if !bytes.Equal(buf[:n], []byte(Signature[:n])) {
		return fmt.Errorf("%w: %q", ErrBadSignature, buf[:n])
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: read %d of %d signature bytes", ErrTruncated, n, SignatureSize)
	}
	if err != nil {
		return oops.Trace(err)
	}

	return nil
}

func (d *decoder) payload(size int) (field Field, err error) {
	if size == 0 {
		return Field{}, nil
	}

	if size <= directReadSize {
		field = make(Field, size)

		err = d.read(field)
		if err != nil {
			return nil, err
		}

		return field, nil
	}

	buf := &bytes.Buffer{}

	n, err := io.CopyN(buf, d.r, int64(size))
	d.consumed += uint64(n)

	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: read %d of %d bytes at offset %d", ErrTruncated, n, size, d.consumed-uint64(n))
	}
	if err != nil {
		return nil, oops.Trace(err)
	}

	return Field(buf.Bytes()), nil
}

func (d *decoder) next() (err error) {
	if !d.started {
		d.started = true

		err = d.signature()
		if err != nil {
			return err
		}
	}

	err = d.read(d.scratch[:2])
	if err != nil {
		return err
	}

	count := int16(binary.BigEndian.Uint16(d.scratch[:2]))

	switch {
	case count == Trailer:
		d.finished = true

		return nil
	case count < 0:
		return fmt.Errorf("%w: field count %d in tuple %d", ErrMalformedLength, count, d.tuples)
	}

	tuple := make(Tuple, count)

	for i := range tuple {
		err = d.read(d.scratch[:4])
		if err != nil {
			return err
		}

		length := int32(binary.BigEndian.Uint32(d.scratch[:4]))

		switch {
		case length == NullLength:
			continue
		case length < 0:
			return fmt.Errorf("%w: field %d of tuple %d has length %d", ErrMalformedLength, i, d.tuples, length)
		case d.schema.MaxFieldSize > 0 && int(length) > d.schema.MaxFieldSize:
			return fmt.Errorf(
				"%w: field %d of tuple %d has length %d > %d",
				ErrMalformedLength,
				i,
				d.tuples,
				length,
				d.schema.MaxFieldSize,
			)
		}

		tuple[i], err = d.payload(int(length))
		if err != nil {
			return err
		}
	}

	d.tuple = tuple
	d.tuples++

	return nil
}

func (d *decoder) Next() (ok bool) {
	if d.finished || d.err != nil {
		return false
	}

	d.tuple = nil

	err := d.next()
	if err != nil {
		d.err = Error.Wrap(err)

		return false
	}

	return !d.finished
}

func (d *decoder) Err() error {
	return d.err
}

func (d *decoder) Tuple() Tuple {
	return d.tuple
}

func (d *decoder) Consumed() uint64 {
	return d.consumed
}
