package editor

import (
	"testing"
	"unsafe"
)

// The uniform layout has to match the WGSL struct byte for byte; the shader
// side has no padding flexibility.
func TestIcoUniformLayout(t *testing.T) {
	var u IcoUniform

	if got := unsafe.Sizeof(u); got != 128 {
		t.Fatalf("IcoUniform size = %d, want 128", got)
	}

	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"ViewProj", unsafe.Offsetof(u.ViewProj), 0},
		{"ViewPos", unsafe.Offsetof(u.ViewPos), 64},
		{"Selected", unsafe.Offsetof(u.Selected), 76},
		{"LightDir", unsafe.Offsetof(u.LightDir), 80},
		{"S1", unsafe.Offsetof(u.S1), 92},
		{"Siblings", unsafe.Offsetof(u.Siblings), 96},
		{"S2", unsafe.Offsetof(u.S2), 108},
		{"S3", unsafe.Offsetof(u.S3), 112},
	}
	for _, f := range offsets {
		if f.got != f.want {
			t.Errorf("offset of %s = %d, want %d", f.name, f.got, f.want)
		}
	}
}
