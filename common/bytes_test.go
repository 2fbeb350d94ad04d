package common

import "testing"

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 7, 3); got != 7 {
		t.Errorf("Coalesce(0, 0, 7, 3) = %d, want 7", got)
	}
	if got := Coalesce("", "planetary"); got != "planetary" {
		t.Errorf("Coalesce(\"\", \"planetary\") = %q, want \"planetary\"", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce of all zeros = %d, want 0", got)
	}
	if got := Coalesce[int](); got != 0 {
		t.Errorf("Coalesce of nothing = %d, want 0", got)
	}
}

func TestSliceToBytesEmpty(t *testing.T) {
	if got := SliceToBytes([]uint32(nil)); got != nil {
		t.Errorf("SliceToBytes(nil) = %v, want nil", got)
	}
}

func TestSliceToBytesLength(t *testing.T) {
	data := []uint32{1, 2, 3}
	b := SliceToBytes(data)
	if len(b) != 12 {
		t.Errorf("len = %d, want 12", len(b))
	}
	if b[0] != 1 || b[4] != 2 || b[8] != 3 {
		t.Errorf("little-endian content wrong: %v", b)
	}
}
