package stream

import (
	"math"
	"testing"

	"github.com/sbgstream/sbgstream/internal/errcode"
)

func TestRoundTripPrimitives(t *testing.T) {
	w := NewWriter(64)
	w.WriteUint8(0xAB)
	w.WriteInt8(-12)
	w.WriteUint16LE(0xBEEF)
	w.WriteInt16LE(-1000)
	w.WriteUint32LE(0xDEADBEEF)
	w.WriteInt32LE(-123456)
	w.WriteUint64LE(0x0102030405060708)
	w.WriteInt64LE(-1)
	w.WriteFloat32LE(3.14159)
	w.WriteFloat64LE(2.718281828)
	w.WriteBytes([]byte{1, 2, 3, 4})

	if w.LastError() != errcode.NoError {
		t.Fatalf("writer LastError = %v, want NoError", w.LastError())
	}

	r := NewReader(w.Bytes())
	if got := r.ReadUint8(); got != 0xAB {
		t.Errorf("ReadUint8 = %x, want 0xAB", got)
	}
	if got := r.ReadInt8(); got != -12 {
		t.Errorf("ReadInt8 = %d, want -12", got)
	}
	if got := r.ReadUint16LE(); got != 0xBEEF {
		t.Errorf("ReadUint16LE = %x, want 0xBEEF", got)
	}
	if got := r.ReadInt16LE(); got != -1000 {
		t.Errorf("ReadInt16LE = %d, want -1000", got)
	}
	if got := r.ReadUint32LE(); got != 0xDEADBEEF {
		t.Errorf("ReadUint32LE = %x, want 0xDEADBEEF", got)
	}
	if got := r.ReadInt32LE(); got != -123456 {
		t.Errorf("ReadInt32LE = %d, want -123456", got)
	}
	if got := r.ReadUint64LE(); got != 0x0102030405060708 {
		t.Errorf("ReadUint64LE = %x, want 0x0102030405060708", got)
	}
	if got := r.ReadInt64LE(); got != -1 {
		t.Errorf("ReadInt64LE = %d, want -1", got)
	}
	if got := r.ReadFloat32LE(); math.Abs(float64(got)-3.14159) > 1e-5 {
		t.Errorf("ReadFloat32LE = %v, want ~3.14159", got)
	}
	if got := r.ReadFloat64LE(); math.Abs(got-2.718281828) > 1e-9 {
		t.Errorf("ReadFloat64LE = %v, want ~2.718281828", got)
	}
	if got := r.ReadBytes(4); !equalBytes(got, []byte{1, 2, 3, 4}) {
		t.Errorf("ReadBytes = %v, want [1 2 3 4]", got)
	}
	if r.LastError() != errcode.NoError {
		t.Fatalf("reader LastError = %v, want NoError", r.LastError())
	}
	if r.Space() != 0 {
		t.Errorf("Space() = %d, want 0", r.Space())
	}
}

func TestOverflowLatchesAndReturnsZero(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if got := r.ReadUint32LE(); got != 0 {
		t.Errorf("ReadUint32LE on short buffer = %d, want 0", got)
	}
	if r.LastError() != errcode.BufferOverflow {
		t.Fatalf("LastError = %v, want BufferOverflow", r.LastError())
	}
	// Once latched, further reads are no-ops returning zero values.
	if got := r.ReadUint8(); got != 0 {
		t.Errorf("ReadUint8 after latch = %d, want 0", got)
	}
	if r.LastError() != errcode.BufferOverflow {
		t.Fatalf("LastError after further read = %v, want BufferOverflow", r.LastError())
	}
}

func TestWriteNoopAfterLatch(t *testing.T) {
	r := NewReader([]byte{0x01})
	r.ReadUint32LE() // latches
	w := NewWriter(4)
	w.lastErr = errcode.BufferOverflow
	before := len(w.Bytes())
	w.WriteUint32LE(42)
	if len(w.Bytes()) != before {
		t.Errorf("write after latch mutated buffer, len=%d want %d", len(w.Bytes()), before)
	}
}

func TestSpaceAndReset(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	if r.Space() != 5 {
		t.Fatalf("Space() = %d, want 5", r.Space())
	}
	r.ReadUint16LE()
	if r.Space() != 3 {
		t.Fatalf("Space() after read = %d, want 3", r.Space())
	}
	r.Reset()
	if r.Cursor() != 0 || r.LastError() != errcode.NoError {
		t.Fatalf("Reset did not clear cursor/latch")
	}
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
