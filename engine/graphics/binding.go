package graphics

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureBinding exposes a texture array and its sampler to the fragment
// stage as one bind group.
type TextureBinding struct {
	sampler *wgpu.Sampler
	layout  *wgpu.BindGroupLayout
	group   *wgpu.BindGroup
}

// NewTextureArrayBinding builds the bind group for sampling tex as a
// texture_2d_array with a linear-filtering repeat sampler.
//
// Parameters:
//   - state: the shared GPU handles
//   - label: debug label for the created objects
//   - tex: the texture array to bind at binding 0; its sampler sits at 1
//
// Returns:
//   - *TextureBinding: the binding
//   - error: an error if any GPU object creation fails
func NewTextureArrayBinding(state *State, label string, tex *Texture) (*TextureBinding, error) {
	sampler, err := state.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s sampler: %w", label, err)
	}

	layout, err := state.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2DArray,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s layout: %w", label, err)
	}

	view, err := tex.texture.CreateView(&wgpu.TextureViewDescriptor{
		Label:     label,
		Dimension: wgpu.TextureViewDimension2DArray,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s array view: %w", label, err)
	}

	group, err := state.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: sampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s bind group: %w", label, err)
	}

	return &TextureBinding{sampler: sampler, layout: layout, group: group}, nil
}

// Layout returns the bind group layout for pipeline construction.
func (t *TextureBinding) Layout() *wgpu.BindGroupLayout {
	return t.layout
}

// BindGroup returns the bind group for draw recording.
func (t *TextureBinding) BindGroup() *wgpu.BindGroup {
	return t.group
}

// Release frees the GPU objects.
func (t *TextureBinding) Release() {
	if t.group != nil {
		t.group.Release()
		t.group = nil
	}
	if t.layout != nil {
		t.layout.Release()
		t.layout = nil
	}
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
}
