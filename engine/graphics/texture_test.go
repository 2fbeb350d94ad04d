package graphics

import (
	"encoding/binary"
	"testing"
)

func TestPaddedRowBytes(t *testing.T) {
	tests := []struct {
		width uint32
		want  uint32
	}{
		{1, 256},
		{64, 256},   // exactly one alignment unit
		{65, 512},   // one texel over
		{640, 2560}, // 640*4 is already aligned
		{641, 2816},
	}
	for _, tt := range tests {
		if got := paddedRowBytes(tt.width); got != tt.want {
			t.Errorf("paddedRowBytes(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestTexelOffset(t *testing.T) {
	const paddedRow, width, height = 512, 100, 50
	tests := []struct {
		name string
		x, y uint32
		want uint64
	}{
		{"origin", 0, 0, 0},
		{"same row", 3, 0, 12},
		{"row stride uses padding", 0, 2, 1024},
		{"interior", 10, 5, 5*512 + 40},
		{"x clamped", 100, 0, 99 * 4},
		{"y clamped", 0, 50, 49 * 512},
		{"both clamped", 9999, 9999, 49*512 + 99*4},
	}
	for _, tt := range tests {
		if got := texelOffset(paddedRow, width, height, tt.x, tt.y); got != tt.want {
			t.Errorf("%s: texelOffset(%d, %d) = %d, want %d", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestReadbackIndexAt(t *testing.T) {
	b := &ReadbackBuffer{width: 4, height: 3, paddedRow: 256}
	data := make([]byte, 256*3)
	binary.LittleEndian.PutUint32(data[0:], 11)        // (0,0)
	binary.LittleEndian.PutUint32(data[256+8:], 42)    // (2,1)
	binary.LittleEndian.PutUint32(data[2*256+12:], 99) // (3,2)

	if got := b.IndexAt(data, 0, 0); got != 11 {
		t.Errorf("IndexAt(0,0) = %d, want 11", got)
	}
	if got := b.IndexAt(data, 2, 1); got != 42 {
		t.Errorf("IndexAt(2,1) = %d, want 42", got)
	}
	if got := b.IndexAt(data, 1, 0); got != 0 {
		t.Errorf("IndexAt(1,0) = %d, want 0 (cleared)", got)
	}
	// Clamped coordinates land on the last texel.
	if got := b.IndexAt(data, 100, 100); got != 99 {
		t.Errorf("IndexAt(clamped) = %d, want 99", got)
	}
	// Truncated mapping decodes to the sentinel instead of panicking.
	if got := b.IndexAt(data[:4], 3, 2); got != 0 {
		t.Errorf("IndexAt on short data = %d, want 0", got)
	}
}
