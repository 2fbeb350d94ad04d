package editor

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pepijnd/planetary/engine/graphics"
)

// pickCursor is a cursor position in surface texel coordinates.
type pickCursor struct {
	x uint32
	y uint32
}

// Picker resolves the face index under the cursor through the selection
// readback buffer. The cursor is tracked continuously from the event
// goroutine; the render loop copies the selection texture once per frame and
// decodes the previous frame's copy at the start of the next, so the
// highlight trails the cursor by one frame.
type Picker struct {
	mu       sync.Mutex
	cursor   *pickCursor
	inFlight *pickCursor
	readback *graphics.ReadbackBuffer
}

// NewPicker sizes the readback buffer for the current surface.
func NewPicker(state *graphics.State) (*Picker, error) {
	readback, err := graphics.NewReadback(state, "pick readback", state.Width, state.Height)
	if err != nil {
		return nil, err
	}
	return &Picker{readback: readback}, nil
}

// Track records the latest cursor position, replacing the previous one. The
// face under it is decoded once the next selection copy has been submitted
// and resolved.
func (p *Picker) Track(x, y uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = &pickCursor{x: x, y: y}
}

// Copy records the texture-to-buffer copy for the tracked cursor on the
// frame encoder. The cursor position is snapshotted so Resolve decodes the
// texel the copy was taken for, not wherever the cursor has moved since.
// Returns false when no cursor position is known yet.
func (p *Picker) Copy(encoder *wgpu.CommandEncoder, selectTex *graphics.Texture) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cursor == nil {
		return false
	}
	p.readback.Copy(encoder, selectTex)
	snap := *p.cursor
	p.inFlight = &snap
	return true
}

// Resolve maps the readback buffer and decodes the face index under the
// cursor position captured by the previous frame's Copy. Call it before
// recording this frame's copy; the buffer must be unmapped again before it
// can serve as a copy destination.
//
// The map is asynchronous: the callback fires during Device.Poll, which
// blocks until the GPU finishes the submitted copy. By the following frame
// that work is long done, so the wait is nominal. On a failed map the copy
// stays in flight and the next call retries.
//
// Parameters:
//   - state: the shared GPU handles
//
// Returns:
//   - uint32: the picked face index, 0 for background
//   - bool: whether a pick was resolved this call
//   - error: an error if mapping failed
func (p *Picker) Resolve(state *graphics.State) (uint32, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight == nil {
		return 0, false, nil
	}

	status := wgpu.BufferMapAsyncStatusUnknown
	buf := p.readback.Buffer()
	err := buf.MapAsync(wgpu.MapModeRead, 0, p.readback.Size(),
		func(s wgpu.BufferMapAsyncStatus) {
			status = s
		})
	if err != nil {
		return 0, false, fmt.Errorf("pick map request failed: %w", err)
	}

	state.Device.Poll(true, nil)
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return 0, false, fmt.Errorf("pick map completed with status %v", status)
	}

	data := buf.GetMappedRange(0, uint(p.readback.Size()))
	index := p.readback.IndexAt(data, p.inFlight.x, p.inFlight.y)
	buf.Unmap()

	p.inFlight = nil
	return index, true, nil
}

// Resize replaces the readback buffer to match a new surface size. The
// tracked cursor and any in-flight copy are dropped; their coordinates no
// longer map to the new target.
func (p *Picker) Resize(state *graphics.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	readback, err := graphics.NewReadback(state, "pick readback", state.Width, state.Height)
	if err != nil {
		return err
	}
	p.readback.Release()
	p.readback = readback
	p.cursor = nil
	p.inFlight = nil
	return nil
}
