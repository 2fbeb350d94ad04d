package editor

// IcoUniform is the shared uniform block of the screen and selection
// shaders. The field order and padding mirror the WGSL struct's std140-style
// offsets exactly: the whole struct is uploaded as raw bytes.
type IcoUniform struct {
	// ViewProj is the column-major combined view-projection matrix.
	ViewProj [16]float32

	// ViewPos is the camera eye position; Selected packs into the vec3's
	// trailing padding slot.
	ViewPos  [3]float32
	Selected uint32

	// LightDir is the directional light in world space.
	LightDir [3]float32

	// S1 blends the projection (1 perspective, 0 ortho).
	S1 float32

	// Siblings are the selected face's three neighbors, all 0 when nothing
	// is selected. The shader tints them below the selected face.
	Siblings [3]uint32

	// S2 mixes lighting (0 unlit, 1 fully lambertian), S3 scales the
	// selection highlight.
	S2 float32
	S3 float32

	_ [3]uint32
}
