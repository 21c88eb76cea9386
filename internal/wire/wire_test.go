package wire

import (
	"bytes"
	"testing"
)

// TestRoundtrip verifies that values decode in write order with no framing
// overhead beyond string length prefixes.
func TestRoundtrip(t *testing.T) {
	w := NewWriter(64)
	w.WriteUint32(7)
	w.WriteString("node-01")
	w.WriteUint64(1 << 40)
	w.WriteBool(true)
	w.WriteString("")
	w.WriteBool(false)

	r := NewReader(w.Bytes())
	if got := r.ReadUint32(); got != 7 {
		t.Errorf("ReadUint32 = %d, want 7", got)
	}
	if got := r.ReadString(); got != "node-01" {
		t.Errorf("ReadString = %q, want %q", got, "node-01")
	}
	if got := r.ReadUint64(); got != 1<<40 {
		t.Errorf("ReadUint64 = %d, want %d", got, uint64(1)<<40)
	}
	if got := r.ReadBool(); !got {
		t.Error("ReadBool = false, want true")
	}
	if got := r.ReadString(); got != "" {
		t.Errorf("ReadString = %q, want empty", got)
	}
	if got := r.ReadBool(); got {
		t.Error("ReadBool = true, want false")
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err = %v", err)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", r.Remaining())
	}
}

// TestLittleEndianLayout pins the byte-level layout: uint32 values are
// little-endian and strings carry a uint32 length prefix.
func TestLittleEndianLayout(t *testing.T) {
	w := NewWriter(16)
	w.WriteUint32(0x01020304)
	w.WriteString("ab")

	want := []byte{0x04, 0x03, 0x02, 0x01, 0x02, 0x00, 0x00, 0x00, 'a', 'b'}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("encoded bytes = %v, want %v", w.Bytes(), want)
	}
}

// TestShortBufferLatchesError verifies that a truncated buffer produces zero
// values and a sticky error instead of a panic.
func TestShortBufferLatchesError(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if got := r.ReadUint32(); got != 0 {
		t.Errorf("ReadUint32 on short buffer = %d, want 0", got)
	}
	if r.Err() == nil {
		t.Fatal("Err = nil after short read")
	}
	// Subsequent reads stay zero-valued, error unchanged.
	first := r.Err()
	if got := r.ReadString(); got != "" {
		t.Errorf("ReadString after error = %q, want empty", got)
	}
	if r.Err() != first {
		t.Error("Err changed after subsequent read")
	}
}

// TestStringLengthBeyondBuffer checks that a corrupt length prefix larger
// than the remaining bytes is caught by the cursor.
func TestStringLengthBeyondBuffer(t *testing.T) {
	w := NewWriter(8)
	w.WriteUint32(1000) // claims 1000 bytes follow
	r := NewReader(w.Bytes())
	if got := r.ReadString(); got != "" {
		t.Errorf("ReadString = %q, want empty", got)
	}
	if r.Err() == nil {
		t.Fatal("Err = nil for oversized length prefix")
	}
}
