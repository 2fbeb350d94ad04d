// Package graphics wraps the GPU resources the editor renders with: vertex
// buffers with reallocation hysteresis, uniform bind groups, render target
// textures, pipeline construction, and a validity-tracking cache that
// rebuilds pipelines and render bundles only when their inputs change.
package graphics

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// State carries the shared GPU handles and surface properties every resource
// constructor needs. It is created once at startup and its handle fields
// never change; Width and Height track the surface and are updated on resize.
type State struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue

	// Format is the configured surface color format.
	Format wgpu.TextureFormat

	Width  uint32
	Height uint32
}

// DepthFormat is the depth attachment format used by every pass.
const DepthFormat = wgpu.TextureFormatDepth32Float

// SelectFormat is the color format of the face-index selection target. Each
// texel holds one face index; 0 means no face.
const SelectFormat = wgpu.TextureFormatR32Uint
