// Package wire implements the flat binary encoding used by grid snapshots:
// little-endian fixed-width integers and length-prefixed strings over a
// cursor-based buffer. There are no tags, no versioning, and no integrity
// metadata; the format is exactly what the writer emits, in order.
package wire

import (
	"encoding/binary"
	"fmt"
)

// Writer appends encoded values to an in-memory buffer.
// The zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter creates a Writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the encoded buffer. The slice is owned by the Writer and is
// only valid until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of encoded bytes.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteUint32 appends a little-endian uint32.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// WriteUint64 appends a little-endian uint64.
func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// WriteBool appends a bool as a single byte (0 or 1).
func (w *Writer) WriteBool(v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	w.buf = append(w.buf, b)
}

// WriteString appends a uint32 byte length followed by the raw bytes.
func (w *Writer) WriteString(s string) {
	w.WriteUint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// Reader decodes values from a buffer in write order. Reads past the end of
// the buffer return zero values and latch an error; callers check Err once
// after a decode pass rather than after every read.
type Reader struct {
	buf []byte
	pos int
	err error
}

// NewReader creates a Reader over buf. The Reader does not copy buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Err returns the first cursor error encountered, or nil.
func (r *Reader) Err() error {
	return r.err
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.pos+n > len(r.buf) {
		r.err = fmt.Errorf("wire: read of %d bytes at offset %d exceeds buffer size %d", n, r.pos, len(r.buf))
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// ReadUint64 reads a little-endian uint64.
func (r *Reader) ReadUint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// ReadBool reads a single byte as a bool.
func (r *Reader) ReadBool() bool {
	b := r.take(1)
	if b == nil {
		return false
	}
	return b[0] != 0
}

// ReadString reads a uint32 length prefix followed by that many bytes.
func (r *Reader) ReadString() string {
	n := r.ReadUint32()
	b := r.take(int(n))
	if b == nil {
		return ""
	}
	return string(b)
}
