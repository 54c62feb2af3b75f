// Package bitpack provides little-endian binary encoding and decoding
// utilities for reading and writing PXG file data.
//
// PXG uses little-endian byte order for multi-byte header fields and packs
// pixel palette indices MSB-first into a continuous bit stream. This package
// provides bounds-checked readers and a growable writer for both the
// byte-level and bit-level parts of the format.
package bitpack

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrShortBuffer is returned when a read operation cannot complete
	// because there isn't enough data left in the buffer.
	ErrShortBuffer = errors.New("bitpack: buffer too short")

	// ErrNegativeSize is returned when a size parameter is negative.
	ErrNegativeSize = errors.New("bitpack: negative size")

	// ErrBitCount is returned when a bit count is outside the range 1-8.
	ErrBitCount = errors.New("bitpack: bit count out of range")
)

// ByteOrder is the byte order used by PXG headers.
var ByteOrder = binary.LittleEndian

// Reader provides bounds-checked reading from a byte slice.
// It maintains a byte position plus a bit offset into the current byte so
// that byte-aligned header reads and MSB-first bit reads can share one
// cursor. Byte-level reads must not be interleaved with bit-level reads
// unless the cursor is byte-aligned (see AlignByte).
type Reader struct {
	data []byte
	pos  int
	bit  uint // bits consumed of data[pos], 0-7
}

// NewReader creates a Reader from a byte slice.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of whole unread bytes.
func (r *Reader) Len() int {
	if r.pos >= len(r.data) {
		return 0
	}
	return len(r.data) - r.pos
}

// Pos returns the current byte position.
func (r *Reader) Pos() int {
	return r.pos
}

// AlignByte discards any partially consumed byte, advancing the cursor to
// the next byte boundary.
func (r *Reader) AlignByte() {
	if r.bit != 0 {
		r.bit = 0
		r.pos++
	}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrShortBuffer
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads n bytes into a new slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeSize
	}
	if r.pos+n > len(r.data) {
		return nil, ErrShortBuffer
	}
	result := make([]byte, n)
	copy(result, r.data[r.pos:r.pos+n])
	r.pos += n
	return result, nil
}

// ReadUint16 reads an unsigned 16-bit integer in little-endian order.
func (r *Reader) ReadUint16() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, ErrShortBuffer
	}
	v := ByteOrder.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadBits reads n bits (1-8) MSB-first and returns them right-aligned.
func (r *Reader) ReadBits(n uint) (uint8, error) {
	if n == 0 || n > 8 {
		return 0, ErrBitCount
	}
	var v uint8
	for i := uint(0); i < n; i++ {
		if r.pos >= len(r.data) {
			return 0, ErrShortBuffer
		}
		v = v<<1 | (r.data[r.pos]>>(7-r.bit))&1
		r.bit++
		if r.bit == 8 {
			r.bit = 0
			r.pos++
		}
	}
	return v, nil
}

// BufferWriter provides a growing buffer for writing binary data.
// Unlike Reader, writes cannot fail: the buffer grows as needed.
type BufferWriter struct {
	buf []byte
	bit uint // bits used in the final byte of buf, 0-7
}

// NewBufferWriter creates a BufferWriter with an initial capacity.
func NewBufferWriter(capacity int) *BufferWriter {
	return &BufferWriter{buf: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written, including a final partial byte.
func (w *BufferWriter) Len() int {
	return len(w.buf)
}

// Bytes returns the written data.
func (w *BufferWriter) Bytes() []byte {
	return w.buf
}

// Reset clears the buffer for reuse.
func (w *BufferWriter) Reset() {
	w.buf = w.buf[:0]
	w.bit = 0
}

// WriteByte appends a single byte. The writer must be byte-aligned.
func (w *BufferWriter) WriteByte(b byte) {
	w.buf = append(w.buf, b)
}

// WriteBytes appends a byte slice. The writer must be byte-aligned.
func (w *BufferWriter) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteUint16 appends an unsigned 16-bit integer in little-endian order.
func (w *BufferWriter) WriteUint16(v uint16) {
	w.buf = append(w.buf, byte(v), byte(v>>8))
}

// WriteBits appends the low n bits (1-8) of v, MSB-first. Counts outside
// 1-8 are ignored.
func (w *BufferWriter) WriteBits(v uint8, n uint) {
	if n == 0 || n > 8 {
		return
	}
	for i := n; i > 0; i-- {
		if w.bit == 0 {
			w.buf = append(w.buf, 0)
		}
		if (v>>(i-1))&1 != 0 {
			w.buf[len(w.buf)-1] |= 1 << (7 - w.bit)
		}
		w.bit++
		if w.bit == 8 {
			w.bit = 0
		}
	}
}

// AlignByte zero-pads the current byte so subsequent writes are
// byte-aligned.
func (w *BufferWriter) AlignByte() {
	w.bit = 0
}
