package frame

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/calebcase/oops"
)

// Wire forms of Trailer and NullLength.
var (
	trailer    = []byte{0xff, 0xff}
	nullLength = []byte{0xff, 0xff, 0xff, 0xff}
)

// Encoder writes tuples as a COPY binary stream.
type Encoder interface {
	// Encode writes one tuple, preceded by the signature on first use.
	Encode(t Tuple) (err error)

	// Close writes the trailer. The underlying writer is not closed.
	Close() (err error)
}

type encoder struct {
	w io.Writer

	started bool
	closed  bool

	header []byte
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) Encoder {
	return &encoder{
		w: w,
	}
}

func (e *encoder) write(data []byte) (err error) {
	_, err = e.w.Write(data)
	if err != nil {
		return oops.Trace(err)
	}

	return nil
}

func (e *encoder) start() (err error) {
	if e.started {
		return nil
	}

	err = e.write([]byte(Signature))
	if err != nil {
		return err
	}

	e.started = true

	return nil
}

func (e *encoder) Encode(t Tuple) (err error) {
	defer Error.WrapP(&err)

	if e.closed {
		return ErrClosed
	}

	if len(t) > MaxFields {
		return fmt.Errorf("%w: %d fields", ErrMalformedLength, len(t))
	}

	for i, f := range t {
		if len(f) > MaxFieldSize {
			return fmt.Errorf("%w: field %d has %d bytes", ErrMalformedLength, i, len(f))
		}
	}

	err = e.start()
	if err != nil {
		return err
	}

	e.header = binary.BigEndian.AppendUint16(e.header[:0], uint16(len(t)))

	for _, f := range t {
		if f.IsNull() {
			e.header = append(e.header, nullLength...)

			continue
		}

		e.header = binary.BigEndian.AppendUint32(e.header, uint32(len(f)))

		err = e.write(e.header)
		if err != nil {
			return err
		}

		e.header = e.header[:0]

		err = e.write(f)
		if err != nil {
			return err
		}
	}

	if len(e.header) > 0 {
		return e.write(e.header)
	}

	return nil
}

func (e *encoder) Close() (err error) {
	defer Error.WrapP(&err)

	if e.closed {
		return nil
	}

	err = e.start()
	if err != nil {
		return err
	}

	e.closed = true

	return e.write(trailer)
}
