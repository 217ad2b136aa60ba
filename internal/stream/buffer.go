// Package stream implements a cursor-based byte buffer with little-endian
// primitives and a sticky error latch, the building block every message
// codec in internal/messages is written against.
package stream

import (
	"encoding/binary"
	"math"

	"github.com/sbgstream/sbgstream/internal/errcode"
)

// Buffer is a cursor over a byte slice. A Buffer created for reading
// borrows its slice; one created for writing owns a growable backing
// array. Once an operation overruns the slice, lastErr latches to
// errcode.BufferOverflow and stays latched until Reset.
type Buffer struct {
	buf     []byte
	cursor  int
	lastErr errcode.Code
}

// NewReader wraps b for sequential little-endian field reads. b is not
// copied; the caller must not mutate it while the Buffer is in use.
func NewReader(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// NewWriter returns a Buffer ready to accumulate written fields, with an
// initial capacity hint.
func NewWriter(capacityHint int) *Buffer {
	return &Buffer{buf: make([]byte, 0, capacityHint)}
}

// Reset rewinds the cursor to zero and clears the error latch. For a
// writer Buffer it also truncates the backing slice to empty.
func (s *Buffer) Reset() {
	s.cursor = 0
	s.lastErr = errcode.NoError
	if cap(s.buf) > 0 {
		s.buf = s.buf[:0]
	}
}

// Bytes returns the buffer's current contents (the written bytes for a
// writer, or the full backing slice for a reader).
func (s *Buffer) Bytes() []byte {
	return s.buf
}

// Len returns the number of bytes currently in the buffer.
func (s *Buffer) Len() int {
	return len(s.buf)
}

// Cursor returns the current read/write offset.
func (s *Buffer) Cursor() int {
	return s.cursor
}

// Space returns the number of unread bytes remaining, used by
// version-tolerant decoders to probe for optional trailing fields.
func (s *Buffer) Space() int {
	n := len(s.buf) - s.cursor
	if n < 0 {
		return 0
	}
	return n
}

// LastError returns the sticky error latch.
func (s *Buffer) LastError() errcode.Code {
	return s.lastErr
}

func (s *Buffer) fail() {
	if s.lastErr == errcode.NoError {
		s.lastErr = errcode.BufferOverflow
	}
}

func (s *Buffer) readN(n int) []byte {
	if s.lastErr != errcode.NoError {
		return nil
	}
	if s.cursor+n > len(s.buf) {
		s.fail()
		s.cursor = len(s.buf)
		return nil
	}
	out := s.buf[s.cursor : s.cursor+n]
	s.cursor += n
	return out
}

func (s *Buffer) writeN(p []byte) {
	if s.lastErr != errcode.NoError {
		return
	}
	s.buf = append(s.buf, p...)
	s.cursor += len(p)
}

// ReadBytes reads and returns a run of n raw bytes. The slice aliases the
// underlying buffer; copy it if it must outlive the next decode call.
func (s *Buffer) ReadBytes(n int) []byte {
	return s.readN(n)
}

// WriteBytes appends a raw byte run.
func (s *Buffer) WriteBytes(p []byte) {
	s.writeN(p)
}

// ReadUint8 reads one byte.
func (s *Buffer) ReadUint8() uint8 {
	b := s.readN(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// WriteUint8 appends one byte.
func (s *Buffer) WriteUint8(v uint8) {
	s.writeN([]byte{v})
}

// ReadInt8 reads one signed byte.
func (s *Buffer) ReadInt8() int8 {
	return int8(s.ReadUint8())
}

// WriteInt8 appends one signed byte.
func (s *Buffer) WriteInt8(v int8) {
	s.WriteUint8(uint8(v))
}

// ReadUint16LE reads a little-endian 16-bit unsigned integer.
func (s *Buffer) ReadUint16LE() uint16 {
	b := s.readN(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// WriteUint16LE appends a little-endian 16-bit unsigned integer.
func (s *Buffer) WriteUint16LE(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	s.writeN(b[:])
}

// ReadInt16LE reads a little-endian 16-bit signed integer.
func (s *Buffer) ReadInt16LE() int16 {
	return int16(s.ReadUint16LE())
}

// WriteInt16LE appends a little-endian 16-bit signed integer.
func (s *Buffer) WriteInt16LE(v int16) {
	s.WriteUint16LE(uint16(v))
}

// ReadUint32LE reads a little-endian 32-bit unsigned integer.
func (s *Buffer) ReadUint32LE() uint32 {
	b := s.readN(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// WriteUint32LE appends a little-endian 32-bit unsigned integer.
func (s *Buffer) WriteUint32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	s.writeN(b[:])
}

// ReadInt32LE reads a little-endian 32-bit signed integer.
func (s *Buffer) ReadInt32LE() int32 {
	return int32(s.ReadUint32LE())
}

// WriteInt32LE appends a little-endian 32-bit signed integer.
func (s *Buffer) WriteInt32LE(v int32) {
	s.WriteUint32LE(uint32(v))
}

// ReadUint64LE reads a little-endian 64-bit unsigned integer.
func (s *Buffer) ReadUint64LE() uint64 {
	b := s.readN(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// WriteUint64LE appends a little-endian 64-bit unsigned integer.
func (s *Buffer) WriteUint64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	s.writeN(b[:])
}

// ReadInt64LE reads a little-endian 64-bit signed integer.
func (s *Buffer) ReadInt64LE() int64 {
	return int64(s.ReadUint64LE())
}

// WriteInt64LE appends a little-endian 64-bit signed integer.
func (s *Buffer) WriteInt64LE(v int64) {
	s.WriteUint64LE(uint64(v))
}

// ReadFloat32LE reads a little-endian IEEE-754 single-precision float.
func (s *Buffer) ReadFloat32LE() float32 {
	return math.Float32frombits(s.ReadUint32LE())
}

// WriteFloat32LE appends a little-endian IEEE-754 single-precision float.
func (s *Buffer) WriteFloat32LE(v float32) {
	s.WriteUint32LE(math.Float32bits(v))
}

// ReadFloat64LE reads a little-endian IEEE-754 double-precision float.
func (s *Buffer) ReadFloat64LE() float64 {
	return math.Float64frombits(s.ReadUint64LE())
}

// WriteFloat64LE appends a little-endian IEEE-754 double-precision float.
func (s *Buffer) WriteFloat64LE(v float64) {
	s.WriteUint64LE(math.Float64bits(v))
}
