package graphics

import (
	"encoding/binary"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Texture pairs a GPU texture with its default view and the creation
// parameters passes and copies need.
type Texture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView

	format  wgpu.TextureFormat
	width   uint32
	height  uint32
	samples uint32
}

func newTexture(state *State, desc *wgpu.TextureDescriptor) (*Texture, error) {
	tex, err := state.Device.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", desc.Label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("failed to create %s view: %w", desc.Label, err)
	}
	return &Texture{
		texture: tex,
		view:    view,
		format:  desc.Format,
		width:   desc.Size.Width,
		height:  desc.Size.Height,
		samples: desc.SampleCount,
	}, nil
}

// NewDepth creates a depth attachment matching the surface size. The sample
// count must match the color attachment of the pass using it.
func NewDepth(state *State, label string, samples uint32) (*Texture, error) {
	return newTexture(state, &wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              state.Width,
			Height:             state.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
}

// NewMSAA creates a multisampled color target in the surface format. The
// main pass draws into it and resolves to the swapchain view.
func NewMSAA(state *State, label string, samples uint32) (*Texture, error) {
	return newTexture(state, &wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              state.Width,
			Height:             state.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        state.Format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
}

// NewSelect creates the face-index selection target: single-sampled R32Uint,
// drawable and copyable to a readback buffer.
func NewSelect(state *State, label string) (*Texture, error) {
	return newTexture(state, &wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              state.Width,
			Height:             state.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        SelectFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
}

// ArrayLayer holds one layer of a texture array as an RGBA8 mip chain. Mip i
// is (width>>i) x (height>>i), each at least 1 texel.
type ArrayLayer struct {
	Mips [][]byte
}

// NewArray creates and fills a 2D texture array for the face atlas. Every
// layer must carry the same mip count; mip data is tightly packed RGBA8.
//
// Parameters:
//   - state: the shared GPU handles
//   - label: debug label
//   - width, height: dimensions of mip 0
//   - layers: per-layer mip chains
//
// Returns:
//   - *Texture: the filled texture array
//   - error: an error if creation fails or the mip chains are inconsistent
func NewArray(state *State, label string, width, height uint32, layers []ArrayLayer) (*Texture, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("%s: texture array needs at least one layer", label)
	}
	mipCount := len(layers[0].Mips)
	for i, l := range layers {
		if len(l.Mips) != mipCount {
			return nil, fmt.Errorf("%s: layer %d has %d mips, want %d", label, i, len(l.Mips), mipCount)
		}
	}

	tex, err := newTexture(state, &wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: uint32(len(layers)),
		},
		MipLevelCount: uint32(mipCount),
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	for layer, l := range layers {
		for mip, pixels := range l.Mips {
			w := max(width>>uint(mip), 1)
			h := max(height>>uint(mip), 1)
			state.Queue.WriteTexture(
				&wgpu.ImageCopyTexture{
					Texture:  tex.texture,
					MipLevel: uint32(mip),
					Origin:   wgpu.Origin3D{Z: uint32(layer)},
					Aspect:   wgpu.TextureAspectAll,
				},
				pixels,
				&wgpu.TextureDataLayout{
					Offset:       0,
					BytesPerRow:  w * 4,
					RowsPerImage: h,
				},
				&wgpu.Extent3D{
					Width:              w,
					Height:             h,
					DepthOrArrayLayers: 1,
				},
			)
		}
	}

	return tex, nil
}

// View returns the default whole-texture view.
func (t *Texture) View() *wgpu.TextureView {
	return t.view
}

// Handle returns the underlying texture for copy commands.
func (t *Texture) Handle() *wgpu.Texture {
	return t.texture
}

// Format returns the texture's pixel format.
func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

// Release frees the view and texture.
func (t *Texture) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

// selectTexelSize is the byte size of one selection texel (R32Uint).
const selectTexelSize = 4

// paddedRowBytes rounds a row of width R32Uint texels up to the copy
// alignment WebGPU requires for texture-to-buffer copies.
func paddedRowBytes(width uint32) uint32 {
	row := width * selectTexelSize
	align := uint32(wgpu.CopyBytesPerRowAlignment)
	return (row + align - 1) / align * align
}

// texelOffset returns the byte offset of texel (x, y) in a readback buffer
// with the given padded row stride. Coordinates outside the copied area are
// clamped to the last texel, so a pick at the window edge stays in range.
func texelOffset(paddedRow, width, height, x, y uint32) uint64 {
	if width == 0 || height == 0 {
		return 0
	}
	x = min(x, width-1)
	y = min(y, height-1)
	return uint64(y)*uint64(paddedRow) + uint64(x)*selectTexelSize
}

// ReadbackBuffer is a mappable staging buffer sized for one copy of the
// selection texture, rows padded to the copy alignment.
type ReadbackBuffer struct {
	buffer *wgpu.Buffer

	width     uint32
	height    uint32
	paddedRow uint32
	size      uint64
}

// NewReadback creates the staging buffer for a width x height selection
// texture.
func NewReadback(state *State, label string, width, height uint32) (*ReadbackBuffer, error) {
	paddedRow := paddedRowBytes(width)
	size := uint64(paddedRow) * uint64(height)
	buf, err := state.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	return &ReadbackBuffer{
		buffer:    buf,
		width:     width,
		height:    height,
		paddedRow: paddedRow,
		size:      size,
	}, nil
}

// Copy records a full copy of the selection texture into the buffer on the
// given encoder. The copy executes when the encoder's commands are submitted.
func (b *ReadbackBuffer) Copy(encoder *wgpu.CommandEncoder, tex *Texture) {
	encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  tex.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: b.buffer,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  b.paddedRow,
				RowsPerImage: b.height,
			},
		},
		&wgpu.Extent3D{
			Width:              b.width,
			Height:             b.height,
			DepthOrArrayLayers: 1,
		},
	)
}

// Buffer returns the underlying mappable buffer.
func (b *ReadbackBuffer) Buffer() *wgpu.Buffer {
	return b.buffer
}

// Size returns the buffer's byte size.
func (b *ReadbackBuffer) Size() uint64 {
	return b.size
}

// IndexAt decodes the face index at texel (x, y) from the mapped buffer
// contents. Out-of-range coordinates are clamped.
func (b *ReadbackBuffer) IndexAt(data []byte, x, y uint32) uint32 {
	off := texelOffset(b.paddedRow, b.width, b.height, x, y)
	if off+selectTexelSize > uint64(len(data)) {
		return 0
	}
	return binary.LittleEndian.Uint32(data[off:])
}

// Release frees the staging buffer.
func (b *ReadbackBuffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}
