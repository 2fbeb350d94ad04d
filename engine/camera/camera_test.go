package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestZoomClamped(t *testing.T) {
	c := New(1.0, 1.0, 1.0)

	c.SetZoom(5.0)
	if got := c.ZoomLevel(); got != ZoomMax {
		t.Errorf("SetZoom(5.0): zoom = %v, want clamp to %v", got, ZoomMax)
	}

	c.SetZoom(0.01)
	if got := c.ZoomLevel(); got != ZoomMin {
		t.Errorf("SetZoom(0.01): zoom = %v, want clamp to %v", got, ZoomMin)
	}

	// Scrolling never escapes the clamp range either.
	for i := 0; i < 100; i++ {
		c.Zoom(1)
	}
	if got := c.ZoomLevel(); got != ZoomMax {
		t.Errorf("repeated zoom in: zoom = %v, want %v", got, ZoomMax)
	}
	for i := 0; i < 100; i++ {
		c.Zoom(-1)
	}
	if got := c.ZoomLevel(); got != ZoomMin {
		t.Errorf("repeated zoom out: zoom = %v, want %v", got, ZoomMin)
	}
}

func TestZoomMovesEye(t *testing.T) {
	near := New(1.0, 2.0, 1.0)
	far := New(1.0, 0.5, 1.0)
	if near.Position().Len() >= far.Position().Len() {
		t.Errorf("zoom 2.0 eye distance %v not closer than zoom 0.5 distance %v",
			near.Position().Len(), far.Position().Len())
	}
}

func TestRotatePreservesDistance(t *testing.T) {
	c := New(1.0, 1.0, 1.0)
	d0 := c.Position().Len()
	c.Rotate(0.3, -0.2)
	c.Rotate(1.1, 0.4)
	c.Roll(0.5)
	d1 := c.Position().Len()
	if math.Abs(float64(d0-d1)) > 1e-4 {
		t.Errorf("orbit changed eye distance: %v -> %v", d0, d1)
	}
}

func TestPanMovesInViewPlane(t *testing.T) {
	c := New(1.0, 1.0, 1.0)
	before := c.Position()
	c.Pan(0.5, -0.25)
	after := c.Position()
	if before.Sub(after).Len() < 1e-6 {
		t.Fatal("pan did not move the camera")
	}
	// From the initial +Z viewpoint the view plane is the XY plane, so a pan
	// must not change the eye's Z.
	if math.Abs(float64(before.Z()-after.Z())) > 1e-5 {
		t.Errorf("pan moved the eye along the view axis: %v -> %v", before.Z(), after.Z())
	}
}

func TestViewProjectionClipSpace(t *testing.T) {
	c := New(16.0/9.0, 1.0, 1.0)
	vp := c.ViewProjection()

	// The orbit target (origin) sits in front of the camera; after projection
	// its depth must land inside WebGPU's [0,1] clip range.
	clip := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	z := clip.Z() / clip.W()
	if z < 0 || z > 1 {
		t.Errorf("origin depth = %v, want within [0,1]", z)
	}

	// A point behind the far plane projects outside the depth range.
	behind := vp.Mul4x1(mgl32.Vec4{0, 0, -200, 1})
	if bz := behind.Z() / behind.W(); bz <= 1 {
		t.Errorf("point beyond far plane has depth %v, want > 1", bz)
	}
}

func TestOrthoBlendKeepsTargetCentered(t *testing.T) {
	for _, p := range []float32{0, 0.25, 0.5, 1} {
		c := New(1.0, 1.0, 1.0)
		c.SetPerspective(p)
		clip := c.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		x, y := clip.X()/clip.W(), clip.Y()/clip.W()
		if math.Abs(float64(x)) > 1e-5 || math.Abs(float64(y)) > 1e-5 {
			t.Errorf("perspective=%v: target projects to (%v, %v), want screen center", p, x, y)
		}
	}
}
