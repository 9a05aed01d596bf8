// Package frame provides the COPY binary envelope.
//
// A stream is a fixed signature followed by tuples and a trailer. Field
// payloads are opaque to this package.
//
//	| Element     | Size     |                                              |
//	|-------------|----------|----------------------------------------------|
//	| Signature   | 19 bytes | "PGCOPY\n\xff\r\n\0", flags 0, extension 0   |
//	| Field count | 2 bytes  | signed; -1 is the trailer ending the stream  |
//	| Length      | 4 bytes  | signed; -1 is a NULL field with no payload   |
//	| Payload     | Length   | field bytes                                  |
//	|-------------|----------|----------------------------------------------|
//
// All integers are big-endian. Each tuple is a field count followed by that
// many length prefixed fields:
//
//	| 0 . 1 | 2 . 3 . 4 . 5 | 6 ...  | ... | n . n+1 |
//	|-------|---------------|--------|-----|---------|
//	| count | length        | bytes  | ... | ff . ff |
//	|-------|---------------|--------|-----|---------|
//
// A zero length field is an empty value and is distinct from NULL. The Field
// type carries that distinction as nil (NULL) versus empty.
//
// Decoding stops at the trailer without reading further. Running out of input
// before the trailer is ErrTruncated, a signature mismatch is ErrBadSignature
// and negative counts or lengths other than -1 are ErrMalformedLength.
package frame
