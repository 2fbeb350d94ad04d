package graphics

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineSettings collects everything BuildPipeline needs to construct a
// render pipeline. Zero values get sensible defaults: backface culling, CCW
// front faces, triangle lists, depth test with write.
type PipelineSettings struct {
	Label string

	// Shader is the compiled module holding both entry points.
	Shader           *wgpu.ShaderModule
	VertexEntry      string
	FragmentEntry    string
	VertexLayouts    []wgpu.VertexBufferLayout
	BindGroupLayouts []*wgpu.BindGroupLayout

	// Target is the color attachment format the pipeline renders to.
	Target wgpu.TextureFormat

	// Samples is the MSAA sample count of the target.
	Samples uint32

	CullMode wgpu.CullMode
}

// BuildPipeline creates a render pipeline against the single color target
// and the shared depth format. The shader module comes precompiled from the
// resource registry; the pipeline does not own it.
//
// Parameters:
//   - state: the shared GPU handles
//   - s: the pipeline description
//
// Returns:
//   - *wgpu.RenderPipeline: the created pipeline
//   - error: an error if pipeline creation fails
func BuildPipeline(state *State, s PipelineSettings) (*wgpu.RenderPipeline, error) {
	layout, err := state.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            s.Label,
		BindGroupLayouts: s.BindGroupLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s layout: %w", s.Label, err)
	}
	defer layout.Release()

	samples := s.Samples
	if samples == 0 {
		samples = 1
	}
	// CullModeNone is the zero value, so an unset CullMode defaults to
	// backface culling; a pass that really wants no culling must say so in
	// its own settings type.
	cull := s.CullMode
	if cull == wgpu.CullModeNone {
		cull = wgpu.CullModeBack
	}

	pipeline, err := state.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  s.Label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     s.Shader,
			EntryPoint: s.VertexEntry,
			Buffers:    s.VertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     s.Shader,
			EntryPoint: s.FragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    s.Target,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cull,
		},
		Multisample: wgpu.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s pipeline: %w", s.Label, err)
	}
	return pipeline, nil
}

// BuildBundle records a render bundle compatible with a pass targeting the
// given color format, the shared depth format, and sample count. The record
// callback issues the draw state; the finished bundle replays it on any
// compatible pass.
//
// Parameters:
//   - state: the shared GPU handles
//   - label: debug label
//   - target: the color attachment format of the pass
//   - samples: the pass's sample count
//   - record: callback that encodes the bundle's draw commands
//
// Returns:
//   - *wgpu.RenderBundle: the finished bundle
//   - error: an error if encoder creation fails
func BuildBundle(state *State, label string, target wgpu.TextureFormat, samples uint32, record func(*wgpu.RenderBundleEncoder)) (*wgpu.RenderBundle, error) {
	encoder, err := state.Device.CreateRenderBundleEncoder(&wgpu.RenderBundleEncoderDescriptor{
		Label:              label,
		ColorFormats:       []wgpu.TextureFormat{target},
		DepthStencilFormat: DepthFormat,
		SampleCount:        samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s bundle encoder: %w", label, err)
	}

	record(encoder)

	return encoder.Finish(&wgpu.RenderBundleDescriptor{Label: label}), nil
}
