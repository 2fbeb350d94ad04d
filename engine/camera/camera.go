// Package camera implements the editor's orbit camera: a quaternion
// orientation around a pannable target, zoom with clamped range, and a
// projection that blends between perspective and orthographic.
package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ZoomMin and ZoomMax bound the zoom factor; distance is base/zoom so
	// higher zoom moves closer.
	ZoomMin = 0.1
	ZoomMax = 2.0

	baseDistance = 4.0
	fovY         = float32(math.Pi / 4)
	nearPlane    = 0.1
	farPlane     = 100.0
)

// glToWGPU converts GL clip space (z in [-1,1]) to WebGPU clip space
// (z in [0,1]). Column-major, applied after the projection.
var glToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type cameraImpl struct {
	mu *sync.Mutex

	orientation mgl32.Quat
	target      mgl32.Vec3
	zoom        float32
	aspect      float32

	// perspective blends the projection: 1 is fully perspective, 0 is
	// orthographic.
	perspective float32
}

// Camera is the orbit camera driven by editor input. All methods are safe
// for concurrent use; input arrives on the update goroutine while resizes
// come from the main thread.
type Camera interface {
	// Rotate orbits the camera by yaw around the world up axis and pitch
	// around the camera's right axis, in radians.
	Rotate(yaw, pitch float32)

	// Roll rotates the camera around its view direction, in radians.
	Roll(angle float32)

	// Pan moves the orbit target in the camera's view plane. Deltas are in
	// view-plane units already scaled by the caller; distance scaling is
	// applied here so panning covers the same screen fraction at any zoom.
	Pan(dx, dy float32)

	// Zoom multiplies the zoom factor by steps of factor, clamped to
	// [ZoomMin, ZoomMax]. Positive steps zoom in.
	Zoom(steps float32)

	// SetZoom sets the zoom factor directly, clamped to [ZoomMin, ZoomMax].
	SetZoom(zoom float32)

	// ZoomLevel returns the current zoom factor.
	ZoomLevel() float32

	// SetAspect updates the projection aspect ratio (width / height).
	SetAspect(aspect float32)

	// SetPerspective sets the projection blend: 1 perspective, 0 ortho.
	SetPerspective(p float32)

	// Position returns the camera eye position in world space.
	Position() mgl32.Vec3

	// ViewProjection returns the combined view-projection matrix in WebGPU
	// clip space.
	ViewProjection() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// New returns a camera orbiting the origin from the +Z axis at the given
// zoom and projection blend.
func New(aspect, zoom, perspective float32) Camera {
	return &cameraImpl{
		mu:          &sync.Mutex{},
		orientation: mgl32.QuatIdent(),
		zoom:        clampZoom(zoom),
		aspect:      aspect,
		perspective: perspective,
	}
}

func clampZoom(z float32) float32 {
	return min(max(z, ZoomMin), ZoomMax)
}

func (c *cameraImpl) Rotate(yaw, pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	right := c.orientation.Rotate(mgl32.Vec3{1, 0, 0})
	c.orientation = mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).
		Mul(mgl32.QuatRotate(pitch, right)).
		Mul(c.orientation).Normalize()
}

func (c *cameraImpl) Roll(angle float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	forward := c.orientation.Rotate(mgl32.Vec3{0, 0, -1})
	c.orientation = mgl32.QuatRotate(angle, forward).Mul(c.orientation).Normalize()
}

func (c *cameraImpl) Pan(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dist := baseDistance / c.zoom
	right := c.orientation.Rotate(mgl32.Vec3{1, 0, 0})
	up := c.orientation.Rotate(mgl32.Vec3{0, 1, 0})
	c.target = c.target.Add(right.Mul(-dx * dist)).Add(up.Mul(dy * dist))
}

func (c *cameraImpl) Zoom(steps float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	factor := float32(math.Pow(1.1, float64(steps)))
	c.zoom = clampZoom(c.zoom * factor)
}

func (c *cameraImpl) SetZoom(zoom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = clampZoom(zoom)
}

func (c *cameraImpl) ZoomLevel() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect > 0 {
		c.aspect = aspect
	}
}

func (c *cameraImpl) SetPerspective(p float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.perspective = min(max(p, 0), 1)
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

func (c *cameraImpl) position() mgl32.Vec3 {
	dist := baseDistance / c.zoom
	return c.target.Add(c.orientation.Rotate(mgl32.Vec3{0, 0, 1}).Mul(dist))
}

func (c *cameraImpl) ViewProjection() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()

	eye := c.position()
	up := c.orientation.Rotate(mgl32.Vec3{0, 1, 0})
	view := mgl32.LookAtV(eye, c.target, up)

	dist := baseDistance / c.zoom
	persp := mgl32.Perspective(fovY, c.aspect, nearPlane, farPlane)

	// The ortho extent matches what the perspective frustum covers at the
	// target distance, so blending keeps the sphere at the same screen size.
	extent := dist * float32(math.Tan(float64(fovY)/2))
	ortho := mgl32.Ortho(-extent*c.aspect, extent*c.aspect, -extent, extent, nearPlane, farPlane)

	proj := lerpMat4(ortho, persp, c.perspective)
	return glToWGPU.Mul4(proj).Mul4(view)
}

func lerpMat4(a, b mgl32.Mat4, t float32) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range a {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}
