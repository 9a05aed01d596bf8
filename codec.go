package pgcopy

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lib/pq/oid"
	"github.com/zeebo/errs"

	"github.com/calebcase/pgcopy/frame"
	"github.com/calebcase/pgcopy/numeric"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("pgcopy")

// Row errors.
var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrColumnCount     = errors.New("column count mismatch")
	ErrInvalidField    = errors.New("invalid field")
)

// Schema configures the layers used by Decoder and Encoder.
type Schema struct {
	Frame   frame.Schema
	Numeric numeric.Schema
}

// Codec converts one column type between its binary field payload and its
// text form.
type Codec struct {
	Decode func(data []byte) (text string, err error)
	Encode func(text string) (data []byte, err error)
}

// Lookup returns the codec for the type.
func Lookup(schema Schema, t oid.Oid) (c Codec, err error) {
	switch t {
	case oid.T_numeric:
		nd := numeric.NewDecoder(schema.Numeric)

		return Codec{
			Decode: func(data []byte) (string, error) {
				var v numeric.Value

				err := nd.Decode(data, &v)
				if err != nil {
					return "", err
				}

				return v.String(), nil
			},
			Encode: func(text string) ([]byte, error) {
				v, err := numeric.Parse(text)
				if err != nil {
					return nil, err
				}

				return v.MarshalBinary()
			},
		}, nil
	case oid.T_text, oid.T_varchar, oid.T_bpchar, oid.T_name:
		return Codec{
			Decode: func(data []byte) (string, error) {
				return string(data), nil
			},
			Encode: func(text string) ([]byte, error) {
				return []byte(text), nil
			},
		}, nil
	case oid.T_bytea:
		return Codec{
			Decode: func(data []byte) (string, error) {
				return `\x` + hex.EncodeToString(data), nil
			},
			Encode: func(text string) ([]byte, error) {
				if !strings.HasPrefix(text, `\x`) {
					return nil, fmt.Errorf("%w: bytea %q", ErrInvalidField, text)
				}

				data, err := hex.DecodeString(text[2:])
				if err != nil {
					return nil, fmt.Errorf("%w: bytea %q: %v", ErrInvalidField, text, err)
				}

				return data, nil
			},
		}, nil
	case oid.T_bool:
		return Codec{
			Decode: func(data []byte) (string, error) {
				if len(data) != 1 {
					return "", fmt.Errorf("%w: bool of %d bytes", ErrInvalidField, len(data))
				}

				if data[0] != 0 {
					return "t", nil
				}

				return "f", nil
			},
			Encode: func(text string) ([]byte, error) {
				b, err := strconv.ParseBool(text)
				if err != nil {
					return nil, fmt.Errorf("%w: bool %q", ErrInvalidField, text)
				}

				if b {
					return []byte{1}, nil
				}

				return []byte{0}, nil
			},
		}, nil
	case oid.T_int2:
		return intCodec(2), nil
	case oid.T_int4:
		return intCodec(4), nil
	case oid.T_int8:
		return intCodec(8), nil
	case oid.T_float4:
		return floatCodec(4), nil
	case oid.T_float8:
		return floatCodec(8), nil
	}

	return Codec{}, Error.Wrap(fmt.Errorf("%w: %s", ErrUnsupportedType, typeName(t)))
}

// ParseType returns the type OID for a name such as "numeric" or "int4".
func ParseType(name string) (oid.Oid, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))

	for t, n := range oid.TypeName {
		if n == upper {
			return t, nil
		}
	}

	return 0, Error.Wrap(fmt.Errorf("%w: %q", ErrUnsupportedType, name))
}

func typeName(t oid.Oid) string {
	if n, ok := oid.TypeName[t]; ok {
		return strings.ToLower(n)
	}

	return fmt.Sprintf("oid %d", t)
}

func intCodec(size int) Codec {
	bits := 8 * size

	return Codec{
		Decode: func(data []byte) (string, error) {
			if len(data) != size {
				return "", fmt.Errorf("%w: int%d of %d bytes", ErrInvalidField, size, len(data))
			}

			var i int64
			switch size {
			case 2:
				i = int64(int16(binary.BigEndian.Uint16(data)))
			case 4:
				i = int64(int32(binary.BigEndian.Uint32(data)))
			case 8:
				i = int64(binary.BigEndian.Uint64(data))
			}

			return strconv.FormatInt(i, 10), nil
		},
		Encode: func(text string) ([]byte, error) {
			i, err := strconv.ParseInt(strings.TrimSpace(text), 10, bits)
			if err != nil {
				return nil, fmt.Errorf("%w: int%d %q", ErrInvalidField, size, text)
			}

			data := make([]byte, size)
			switch size {
			case 2:
				binary.BigEndian.PutUint16(data, uint16(i))
			case 4:
				binary.BigEndian.PutUint32(data, uint32(i))
			case 8:
				binary.BigEndian.PutUint64(data, uint64(i))
			}

			return data, nil
		},
	}
}

func floatCodec(size int) Codec {
	bits := 8 * size

	return Codec{
		Decode: func(data []byte) (string, error) {
			if len(data) != size {
				return "", fmt.Errorf("%w: float%d of %d bytes", ErrInvalidField, size, len(data))
			}

			var f float64
			if size == 4 {
				f = float64(math.Float32frombits(binary.BigEndian.Uint32(data)))
			} else {
				f = math.Float64frombits(binary.BigEndian.Uint64(data))
			}

			switch {
			case math.IsNaN(f):
				return "NaN", nil
			case math.IsInf(f, 1):
				return "Infinity", nil
			case math.IsInf(f, -1):
				return "-Infinity", nil
			}

			return strconv.FormatFloat(f, 'g', -1, bits), nil
		},
		Encode: func(text string) ([]byte, error) {
			var f float64

			switch strings.ToLower(strings.TrimSpace(text)) {
			case "nan":
				f = math.NaN()
			case "infinity", "inf", "+infinity", "+inf":
				f = math.Inf(1)
			case "-infinity", "-inf":
				f = math.Inf(-1)
			default:
				var err error

				f, err = strconv.ParseFloat(strings.TrimSpace(text), bits)
				if err != nil {
					return nil, fmt.Errorf("%w: float%d %q", ErrInvalidField, size, text)
				}
			}

			if size == 4 {
				return binary.BigEndian.AppendUint32(nil, math.Float32bits(float32(f))), nil
			}

			return binary.BigEndian.AppendUint64(nil, math.Float64bits(f)), nil
		},
	}
}
