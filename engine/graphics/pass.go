package graphics

import "github.com/cogentcore/webgpu/wgpu"

// BeginMainPass starts the scene color pass. With samples > 1 the pass draws
// into the MSAA target and resolves into the swapchain view; otherwise it
// draws into the swapchain view directly.
//
// Parameters:
//   - encoder: the frame's command encoder
//   - target: the swapchain view
//   - msaa: the multisampled color target, nil when samples == 1
//   - depth: the depth attachment matching the pass's sample count
//   - samples: the MSAA sample count
//
// Returns:
//   - *wgpu.RenderPassEncoder: the open pass; callers must End it
func BeginMainPass(encoder *wgpu.CommandEncoder, target, msaa, depth *wgpu.TextureView, samples uint32) *wgpu.RenderPassEncoder {
	color := wgpu.RenderPassColorAttachment{
		View:       target,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	if samples > 1 {
		color.View = msaa
		color.ResolveTarget = target
		// Multisampled contents are resolved, not stored.
		color.StoreOp = wgpu.StoreOpDiscard
	}

	return encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            "main pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depth,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
}

// BeginSelectPass starts the face-index pass. The target clears to 0, the
// "no face" sentinel, and is stored for the readback copy. Always one sample
// so every texel holds exactly one face index.
//
// Parameters:
//   - encoder: the frame's command encoder
//   - target: the R32Uint selection target view
//   - depth: a single-sampled depth attachment
//
// Returns:
//   - *wgpu.RenderPassEncoder: the open pass; callers must End it
func BeginSelectPass(encoder *wgpu.CommandEncoder, target, depth *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "select pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depth,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
}
