// Package wire implements the positional binary format spoken with the
// calculation service.
//
// The layout matches bincode's standard configuration: no field tags,
// fields in declaration order, unsigned integers as variable-length
// integers (values below 251 take one byte, larger values are prefixed with
// 251, 252 or 253 and stored as little-endian u16, u32 or u64), signed
// integers zig-zag encoded first, u8 stored raw, bools as 0 or 1,
// sequences prefixed by their length and fixed arrays unprefixed. Enum
// variants are encoded as their discriminant.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	ErrTruncated      = errors.New("wire: unexpected end of input")
	ErrInvalidVarint  = errors.New("wire: invalid varint")
	ErrInvalidBool    = errors.New("wire: invalid bool")
	ErrInvalidEnum    = errors.New("wire: invalid enum discriminant")
	ErrLengthOverflow = errors.New("wire: sequence length exceeds input")
	ErrTrailingBytes  = errors.New("wire: trailing bytes")
)

const (
	singleByteMax = 250
	markerU16     = 251
	markerU32     = 252
	markerU64     = 253
)

type Encoder struct {
	buf []byte
}

func (e *Encoder) Bytes() []byte { return e.buf }

func (e *Encoder) Uvarint(v uint64) {
	switch {
	case v <= singleByteMax:
		e.buf = append(e.buf, byte(v))
	case v <= math.MaxUint16:
		e.buf = append(e.buf, markerU16)
		e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(v))
	case v <= math.MaxUint32:
		e.buf = append(e.buf, markerU32)
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(v))
	default:
		e.buf = append(e.buf, markerU64)
		e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	}
}

func (e *Encoder) Varint(v int64) {
	e.Uvarint(uint64(v<<1) ^ uint64(v>>63))
}

func (e *Encoder) U8(v uint8) { e.buf = append(e.buf, v) }

func (e *Encoder) Bool(v bool) {
	if v {
		e.U8(1)
		return
	}
	e.U8(0)
}

func (e *Encoder) Len(n int) { e.Uvarint(uint64(n)) }

// Decoder reads values in order. The first failure sticks: later reads
// return zero values and Err reports the original cause.
type Decoder struct {
	buf []byte
	off int
	err error
}

func NewDecoder(b []byte) *Decoder { return &Decoder{buf: b} }

func (d *Decoder) Err() error { return d.err }

func (d *Decoder) Fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// Finish reports the first decode error, or ErrTrailingBytes when input is
// left over.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if d.off != len(d.buf) {
		return fmt.Errorf("%w: %d unread", ErrTrailingBytes, len(d.buf)-d.off)
	}
	return nil
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.buf)-d.off < n {
		d.Fail(ErrTruncated)
		return nil
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

func (d *Decoder) Uvarint() uint64 {
	b := d.take(1)
	if b == nil {
		return 0
	}
	switch m := b[0]; {
	case m <= singleByteMax:
		return uint64(m)
	case m == markerU16:
		if v := d.take(2); v != nil {
			return uint64(binary.LittleEndian.Uint16(v))
		}
	case m == markerU32:
		if v := d.take(4); v != nil {
			return uint64(binary.LittleEndian.Uint32(v))
		}
	case m == markerU64:
		if v := d.take(8); v != nil {
			return binary.LittleEndian.Uint64(v)
		}
	default:
		d.Fail(fmt.Errorf("%w: marker %d", ErrInvalidVarint, m))
	}
	return 0
}

func (d *Decoder) uvarintMax(limit uint64) uint64 {
	v := d.Uvarint()
	if v > limit {
		d.Fail(fmt.Errorf("%w: %d overflows %d", ErrInvalidVarint, v, limit))
		return 0
	}
	return v
}

func (d *Decoder) U16() uint16 { return uint16(d.uvarintMax(math.MaxUint16)) }

func (d *Decoder) U32() uint32 { return uint32(d.uvarintMax(math.MaxUint32)) }

func (d *Decoder) U64() uint64 { return d.Uvarint() }

func (d *Decoder) I32() int32 {
	u := d.U32()
	return int32(u>>1) ^ -int32(u&1)
}

func (d *Decoder) U8() uint8 {
	if b := d.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *Decoder) Bool() bool {
	switch v := d.U8(); v {
	case 0:
		return false
	case 1:
		return true
	default:
		d.Fail(fmt.Errorf("%w: %d", ErrInvalidBool, v))
		return false
	}
}

// Len reads a sequence length. Every element takes at least one byte, so a
// length larger than the remaining input is rejected before allocating.
func (d *Decoder) Len() int {
	n := d.Uvarint()
	if d.err != nil {
		return 0
	}
	if n > uint64(len(d.buf)-d.off) {
		d.Fail(fmt.Errorf("%w: %d elements, %d bytes left", ErrLengthOverflow, n, len(d.buf)-d.off))
		return 0
	}
	return int(n)
}

// Enum reads a discriminant and checks it against the variant count.
func (d *Decoder) Enum(name string, count uint32) uint32 {
	v := d.U32()
	if d.err == nil && v >= count {
		d.Fail(fmt.Errorf("%w: %s %d", ErrInvalidEnum, name, v))
		return 0
	}
	return v
}

func encodeSeq[T any](e *Encoder, s []T, f func(*Encoder, T)) {
	e.Len(len(s))
	for _, v := range s {
		f(e, v)
	}
}

// decodeSeq returns nil for empty sequences.
func decodeSeq[T any](d *Decoder, f func(*Decoder) T) []T {
	n := d.Len()
	if n == 0 {
		return nil
	}
	out := make([]T, 0, n)
	for range n {
		v := f(d)
		if d.err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}
