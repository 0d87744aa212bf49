// Package codec implements the little-endian binary framing shared by
// every entity in package bytecode: fixed-width scalars, length-prefixed
// strings and sequences, and single-byte option discriminants.
package codec

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Error is the codec layer's closed error taxonomy. No other error kinds
// are produced by this package.
type Error struct {
	kind errKind
}

type errKind uint8

const (
	errEOF errKind = iota
	errInvalidString
	errUnexpectedValue
)

func (e *Error) Error() string {
	switch e.kind {
	case errEOF:
		return "codec: unexpected end of input"
	case errInvalidString:
		return "codec: invalid UTF-8 in length-prefixed string"
	case errUnexpectedValue:
		return "codec: unexpected value"
	default:
		return "codec: unknown error"
	}
}

// Is reports whether err has the same kind as this sentinel, so callers
// can write `errors.Is(err, codec.ErrEOF)`.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.kind == e.kind
}

var (
	// ErrEOF is returned when the cursor is exhausted before a value can
	// be fully decoded.
	ErrEOF error = &Error{kind: errEOF}
	// ErrInvalidString is returned when a length-prefixed string's bytes
	// are not valid UTF-8.
	ErrInvalidString error = &Error{kind: errInvalidString}
	// ErrUnexpectedValue is returned when a tag byte falls outside its
	// declared enum range, or an option/variant payload is otherwise
	// malformed (e.g. a Void ImmediateValue).
	ErrUnexpectedValue error = &Error{kind: errUnexpectedValue}
)

// Sink is an append-only byte destination. It is the Go analogue of the
// reference implementation's `&mut Vec<u8>` encode target.
type Sink struct {
	buf []byte
}

// NewSink returns an empty Sink.
func NewSink() *Sink { return &Sink{} }

// Bytes returns the accumulated, encoded byte sequence.
func (s *Sink) Bytes() []byte { return s.buf }

// Len returns the number of bytes written to the sink so far.
func (s *Sink) Len() int { return len(s.buf) }

func (s *Sink) writeByte(b byte) { s.buf = append(s.buf, b) }
func (s *Sink) write(b []byte)   { s.buf = append(s.buf, b...) }

// Cursor is a read-only window into a byte slice that advances on every
// successful decode and leaves its position unspecified after an error,
// matching the reference `&mut &[u8]` decode source.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data for decoding.
func NewCursor(data []byte) *Cursor { return &Cursor{data: data} }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, ErrEOF
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// --- scalars ---

// EncodeU8 appends a single byte.
func EncodeU8(s *Sink, v uint8) { s.writeByte(v) }

// DecodeU8 reads a single byte.
func DecodeU8(c *Cursor) (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// EncodeI8 appends a single byte, reinterpreting the sign bit.
func EncodeI8(s *Sink, v int8) { s.writeByte(uint8(v)) }

// DecodeI8 reads a single byte as a signed value.
func DecodeI8(c *Cursor) (int8, error) {
	v, err := DecodeU8(c)
	return int8(v), err
}

// EncodeBool writes 1 for true, 0 for false.
func EncodeBool(s *Sink, v bool) {
	if v {
		s.writeByte(1)
	} else {
		s.writeByte(0)
	}
}

// DecodeBool decodes strictly: 1 means true, any other byte means false.
func DecodeBool(c *Cursor) (bool, error) {
	v, err := DecodeU8(c)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// EncodeU16 appends v little-endian.
func EncodeU16(s *Sink, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	s.write(b[:])
}

// DecodeU16 reads a little-endian uint16.
func DecodeU16(c *Cursor) (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// EncodeU32 appends v little-endian.
func EncodeU32(s *Sink, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	s.write(b[:])
}

// DecodeU32 reads a little-endian uint32.
func DecodeU32(c *Cursor) (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// EncodeU64 appends v little-endian.
func EncodeU64(s *Sink, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	s.write(b[:])
}

// DecodeU64 reads a little-endian uint64.
func DecodeU64(c *Cursor) (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// EncodeI16 appends v little-endian.
func EncodeI16(s *Sink, v int16) { EncodeU16(s, uint16(v)) }

// DecodeI16 reads a little-endian int16.
func DecodeI16(c *Cursor) (int16, error) {
	v, err := DecodeU16(c)
	return int16(v), err
}

// EncodeI32 appends v little-endian.
func EncodeI32(s *Sink, v int32) { EncodeU32(s, uint32(v)) }

// DecodeI32 reads a little-endian int32.
func DecodeI32(c *Cursor) (int32, error) {
	v, err := DecodeU32(c)
	return int32(v), err
}

// EncodeI64 appends v little-endian.
func EncodeI64(s *Sink, v int64) { EncodeU64(s, uint64(v)) }

// DecodeI64 reads a little-endian int64.
func DecodeI64(c *Cursor) (int64, error) {
	v, err := DecodeU64(c)
	return int64(v), err
}

// EncodeF32 appends v little-endian.
func EncodeF32(s *Sink, v float32) { EncodeU32(s, math.Float32bits(v)) }

// DecodeF32 reads a little-endian float32.
func DecodeF32(c *Cursor) (float32, error) {
	v, err := DecodeU32(c)
	return math.Float32frombits(v), err
}

// EncodeF64 appends v little-endian.
func EncodeF64(s *Sink, v float64) { EncodeU64(s, math.Float64bits(v)) }

// DecodeF64 reads a little-endian float64.
func DecodeF64(c *Cursor) (float64, error) {
	v, err := DecodeU64(c)
	return math.Float64frombits(v), err
}

// EncodeUsize encodes a length/size as a u64, per the wire format.
func EncodeUsize(s *Sink, v int) { EncodeU64(s, uint64(v)) }

// DecodeUsize decodes a u64-encoded length/size.
func DecodeUsize(c *Cursor) (int, error) {
	v, err := DecodeU64(c)
	return int(v), err
}

// EncodeString writes a u64 byte length followed by raw UTF-8 bytes.
func EncodeString(s *Sink, v string) {
	EncodeUsize(s, len(v))
	s.write([]byte(v))
}

// DecodeString reads a length-prefixed, UTF-8-validated string.
func DecodeString(c *Cursor) (string, error) {
	n, err := DecodeUsize(c)
	if err != nil {
		return "", err
	}
	b, err := c.take(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidString
	}
	return string(b), nil
}

// EncodeSeq encodes a sequence length followed by each element, via elem.
func EncodeSeq[T any](s *Sink, v []T, elem func(*Sink, T)) {
	EncodeUsize(s, len(v))
	for _, e := range v {
		elem(s, e)
	}
}

// DecodeSeq decodes a u64 element count followed by that many elements.
func DecodeSeq[T any](c *Cursor, elem func(*Cursor) (T, error)) ([]T, error) {
	n, err := DecodeUsize(c)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ErrEOF
	}
	out := make([]T, 0, min(n, c.Remaining()))
	for i := 0; i < n; i++ {
		v, err := elem(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// EncodeOption writes the one-byte Some/None discriminant, then the
// payload via elem if present. Encoders must emit 1 for Some.
func EncodeOption[T any](s *Sink, v *T, elem func(*Sink, T)) {
	if v != nil {
		EncodeBool(s, true)
		elem(s, *v)
	} else {
		EncodeBool(s, false)
	}
}

// DecodeOption reads the discriminant byte; any nonzero value means Some.
func DecodeOption[T any](c *Cursor, elem func(*Cursor) (T, error)) (*T, error) {
	disc, err := DecodeU8(c)
	if err != nil {
		return nil, err
	}
	if disc == 0 {
		return nil, nil
	}
	v, err := elem(c)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// EncodeTag writes the one-byte tag of a sum type.
func EncodeTag(s *Sink, tag uint8) { s.writeByte(tag) }

// DecodeTag reads a one-byte tag and range-checks it against [0, max]
// (inclusive), returning ErrUnexpectedValue if it falls outside.
func DecodeTag(c *Cursor, max uint8) (uint8, error) {
	b, err := DecodeU8(c)
	if err != nil {
		return 0, err
	}
	if b > max {
		return 0, ErrUnexpectedValue
	}
	return b, nil
}
