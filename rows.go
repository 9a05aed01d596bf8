package pgcopy

import (
	"fmt"
	"io"
	"strings"

	"github.com/lib/pq/oid"

	"github.com/calebcase/pgcopy/frame"
)

// Null is the text form of a NULL field.
const Null = `\N`

func lookupAll(schema Schema, types []oid.Oid) (codecs []Codec, err error) {
	codecs = make([]Codec, len(types))

	for i, t := range types {
		codecs[i], err = Lookup(schema, t)
		if err != nil {
			return nil, err
		}
	}

	return codecs, nil
}

// Decoder translates a COPY binary stream into text rows. Each row holds
// one COPY text field per column: escaped, with NULL as Null.
type Decoder struct {
	fd     frame.Decoder
	codecs []Codec

	rows int
	row  []string
	err  error
}

// NewDecoder returns a decoder for rows of the given column types.
func NewDecoder(schema Schema, r io.Reader, types ...oid.Oid) (d *Decoder, err error) {
	codecs, err := lookupAll(schema, types)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		fd:     frame.NewDecoderSchema(schema.Frame, r),
		codecs: codecs,
	}, nil
}

// Next reads the next row. It returns false at the end of the stream or on
// error; check Err to tell them apart.
func (d *Decoder) Next() (ok bool) {
	if d.err != nil {
		return false
	}

	d.row = nil

	if !d.fd.Next() {
		d.err = d.fd.Err()

		return false
	}

	tuple := d.fd.Tuple()
	if len(tuple) != len(d.codecs) {
		d.err = Error.Wrap(fmt.Errorf("%w: row %d has %d fields, want %d", ErrColumnCount, d.rows, len(tuple), len(d.codecs)))

		return false
	}

	row := make([]string, len(tuple))
	for i, field := range tuple {
		if field.IsNull() {
			row[i] = Null

			continue
		}

		text, err := d.codecs[i].Decode(field)
		if err != nil {
			d.err = Error.Wrap(fmt.Errorf("row %d column %d: %w", d.rows, i, err))

			return false
		}

		row[i] = Escape(text)
	}

	d.row = row
	d.rows++

	return true
}

// Row returns the row read by the last successful Next.
func (d *Decoder) Row() []string {
	return d.row
}

// Line returns the row as a tab separated COPY text line without the newline.
func (d *Decoder) Line() string {
	return strings.Join(d.row, "\t")
}

// Err returns the error that stopped Next, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Encoder translates text rows into a COPY binary stream.
type Encoder struct {
	fe     frame.Encoder
	codecs []Codec
	rows   int
}

// NewEncoder returns an encoder for rows of the given column types.
func NewEncoder(schema Schema, w io.Writer, types ...oid.Oid) (e *Encoder, err error) {
	codecs, err := lookupAll(schema, types)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		fe:     frame.NewEncoder(w),
		codecs: codecs,
	}, nil
}

// Encode writes one row of COPY text fields.
func (e *Encoder) Encode(row ...string) (err error) {
	if len(row) != len(e.codecs) {
		return Error.Wrap(fmt.Errorf("%w: row %d has %d fields, want %d", ErrColumnCount, e.rows, len(row), len(e.codecs)))
	}

	tuple := make(frame.Tuple, len(row))
	for i, text := range row {
		if text == Null {
			continue
		}

		raw, err := Unescape(text)
		if err != nil {
			return Error.Wrap(fmt.Errorf("row %d column %d: %w", e.rows, i, err))
		}

		data, err := e.codecs[i].Encode(raw)
		if err != nil {
			return Error.Wrap(fmt.Errorf("row %d column %d: %w", e.rows, i, err))
		}

		tuple[i] = data
		if tuple[i] == nil {
			tuple[i] = frame.Field{}
		}
	}

	err = e.fe.Encode(tuple)
	if err != nil {
		return err
	}

	e.rows++

	return nil
}

// EncodeLine writes one tab separated COPY text line.
func (e *Encoder) EncodeLine(line string) error {
	return e.Encode(strings.Split(strings.TrimSuffix(line, "\n"), "\t")...)
}

// Close writes the trailer.
func (e *Encoder) Close() error {
	return e.fe.Close()
}
