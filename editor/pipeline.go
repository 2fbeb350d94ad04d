package editor

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pepijnd/planetary/engine/graphics"
	"github.com/pepijnd/planetary/engine/resources"
	"github.com/pepijnd/planetary/icosphere"
)

//go:embed ico.wgsl
var icoShaderSource string

//go:embed select.wgsl
var selectShaderSource string

// Registry keys for the editor's shaders and textures.
const (
	shaderIco    = "ico"
	shaderSelect = "select"
	textureAtlas = "atlas"
)

// IcoPipeline renders the icosphere's vertex buffer with a recorded bundle.
// The same type backs both the screen pass (surface format, atlas bound,
// MSAA) and the selection pass (R32Uint, uniform only, single sample); the
// constructors differ only in shader, target and bindings.
type IcoPipeline struct {
	label  string
	shader string
	reg    *resources.Registry
	target wgpu.TextureFormat

	buffer  *IcoBuffer
	uniform *graphics.UniformBinding[IcoUniform]
	atlas   *graphics.TextureBinding // nil for the selection variant

	cullMode wgpu.CullMode

	pipeline *wgpu.RenderPipeline
	bundle   *wgpu.RenderBundle
	samples  uint32
}

var _ graphics.Pipeline = &IcoPipeline{}

// NewScreenPipeline creates the main scene pipeline drawing to the surface
// format with the atlas bound.
func NewScreenPipeline(state *graphics.State, reg *resources.Registry, buffer *IcoBuffer, uniform *graphics.UniformBinding[IcoUniform], atlas *graphics.TextureBinding) *IcoPipeline {
	return &IcoPipeline{
		label:    "ico screen",
		shader:   shaderIco,
		reg:      reg,
		target:   state.Format,
		buffer:   buffer,
		uniform:  uniform,
		atlas:    atlas,
		cullMode: wgpu.CullModeBack,
	}
}

// NewSelectPipeline creates the face-index pipeline drawing to the R32Uint
// selection target.
func NewSelectPipeline(reg *resources.Registry, buffer *IcoBuffer, uniform *graphics.UniformBinding[IcoUniform]) *IcoPipeline {
	return &IcoPipeline{
		label:    "ico select",
		shader:   shaderSelect,
		reg:      reg,
		target:   graphics.SelectFormat,
		buffer:   buffer,
		uniform:  uniform,
		cullMode: wgpu.CullModeBack,
	}
}

// DataID folds the vertex buffer generation with the draw count. A
// reallocation re-records the bundle against the new buffer handle; a length
// change that reuses the existing allocation still re-records the count
// baked into the bundle's Draw.
func (p *IcoPipeline) DataID() uint64 {
	v := p.buffer.Vertices()
	return dataID(v.Generation(), v.Len())
}

func dataID(generation uint64, length int) uint64 {
	return generation<<32 | uint64(uint32(length))
}

// RebuildPipeline creates the render pipeline for the given sample count
// from the registered shader module.
func (p *IcoPipeline) RebuildPipeline(state *graphics.State, samples uint32) error {
	shader, err := p.reg.Shader(p.shader)
	if err != nil {
		return err
	}

	layouts := []*wgpu.BindGroupLayout{p.uniform.Layout()}
	if p.atlas != nil {
		layouts = append(layouts, p.atlas.Layout())
	}

	pipeline, err := graphics.BuildPipeline(state, graphics.PipelineSettings{
		Label:            p.label,
		Shader:           shader,
		VertexEntry:      "vs_main",
		FragmentEntry:    "fs_main",
		VertexLayouts:    []wgpu.VertexBufferLayout{icosphere.VertexLayout()},
		BindGroupLayouts: layouts,
		Target:           p.target,
		Samples:          samples,
		CullMode:         p.cullMode,
	})
	if err != nil {
		return err
	}

	if p.pipeline != nil {
		p.pipeline.Release()
	}
	p.pipeline = pipeline
	p.samples = samples
	return nil
}

// RebuildBundle re-records the draw against the current pipeline, buffer and
// bind groups.
func (p *IcoPipeline) RebuildBundle(state *graphics.State) error {
	bundle, err := graphics.BuildBundle(state, p.label, p.target, p.samples,
		func(enc *wgpu.RenderBundleEncoder) {
			enc.SetPipeline(p.pipeline)
			enc.SetBindGroup(0, p.uniform.BindGroup(), nil)
			if p.atlas != nil {
				enc.SetBindGroup(1, p.atlas.BindGroup(), nil)
			}
			enc.SetVertexBuffer(0, p.buffer.Vertices().Buffer(), 0, wgpu.WholeSize)
			enc.Draw(p.buffer.VertexCount(), 1, 0, 0)
		})
	if err != nil {
		return err
	}

	if p.bundle != nil {
		p.bundle.Release()
	}
	p.bundle = bundle
	return nil
}

// Bundle returns the recorded bundle for pass execution.
func (p *IcoPipeline) Bundle() *wgpu.RenderBundle {
	return p.bundle
}
