package graphics

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pepijnd/planetary/common"
)

// UniformBinding owns a uniform buffer holding one value of T together with
// the bind group layout and bind group exposing it to shaders. T must be laid
// out to match the shader's uniform block, including explicit padding.
type UniformBinding[T any] struct {
	buffer *wgpu.Buffer
	layout *wgpu.BindGroupLayout
	group  *wgpu.BindGroup
}

// NewUniformBinding creates the buffer, layout and bind group for a uniform
// of type T visible to the given shader stages.
//
// Parameters:
//   - state: the shared GPU handles
//   - label: debug label applied to all three objects
//   - visibility: shader stages that may read the uniform
//
// Returns:
//   - *UniformBinding[T]: the binding, zero-initialized until the first Write
//   - error: an error if any GPU object creation fails
func NewUniformBinding[T any](state *State, label string, visibility wgpu.ShaderStage) (*UniformBinding[T], error) {
	size := uint64(common.SizeOf[T]())

	buffer, err := state.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s buffer: %w", label, err)
	}

	layout, err := state.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: visibility,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: size,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s layout: %w", label, err)
	}

	group, err := state.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s bind group: %w", label, err)
	}

	return &UniformBinding[T]{buffer: buffer, layout: layout, group: group}, nil
}

// Write uploads the uniform value. Callers write once per update tick; the
// queue orders the write before the frame's draw submission.
func (u *UniformBinding[T]) Write(state *State, value *T) {
	state.Queue.WriteBuffer(u.buffer, 0, common.StructToBytes(value))
}

// Layout returns the bind group layout for pipeline construction.
func (u *UniformBinding[T]) Layout() *wgpu.BindGroupLayout {
	return u.layout
}

// BindGroup returns the bind group for draw recording.
func (u *UniformBinding[T]) BindGroup() *wgpu.BindGroup {
	return u.group
}

// Release frees the GPU objects.
func (u *UniformBinding[T]) Release() {
	if u.group != nil {
		u.group.Release()
		u.group = nil
	}
	if u.layout != nil {
		u.layout.Release()
		u.layout = nil
	}
	if u.buffer != nil {
		u.buffer.Release()
		u.buffer = nil
	}
}
