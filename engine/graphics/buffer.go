package graphics

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pepijnd/planetary/common"
	"github.com/pepijnd/planetary/logger"
)

// ItemBuffer is a GPU buffer of fixed-size items with reallocation
// hysteresis. Capacity (items the GPU allocation can hold) is tracked
// separately from length (items currently in use): writes that fit the
// current capacity reuse the allocation, and the buffer is reallocated only
// when the item count grows past capacity or shrinks below half of it. Each
// reallocation bumps the generation, which render bundles use to detect that
// their recorded buffer handle went stale.
type ItemBuffer[T any] struct {
	buffer *wgpu.Buffer

	label string
	usage wgpu.BufferUsage

	capacity   int
	length     int
	generation uint64
}

// shouldRealloc reports whether a buffer with the given item capacity must be
// reallocated to hold n items. Growth past capacity always reallocates;
// shrinking reallocates only below half capacity, so oscillating counts near
// the boundary don't thrash.
func shouldRealloc(capacity, n int) bool {
	return n > capacity || n < capacity/2
}

// NewItemBuffer creates a buffer sized exactly for items and uploads them.
// The usage is extended with CopyDst for later writes.
//
// Parameters:
//   - state: the shared GPU handles
//   - label: debug label for the underlying buffer
//   - usage: buffer usage (vertex, storage, ...)
//   - items: initial contents; also sets the initial capacity
//
// Returns:
//   - *ItemBuffer[T]: the buffer at generation 0
//   - error: an error if buffer creation fails
func NewItemBuffer[T any](state *State, label string, usage wgpu.BufferUsage, items []T) (*ItemBuffer[T], error) {
	b := &ItemBuffer[T]{
		label: label,
		usage: usage | wgpu.BufferUsageCopyDst,
	}
	if err := b.alloc(state, len(items)); err != nil {
		return nil, err
	}
	b.generation = 0
	b.write(state, items)
	return b, nil
}

// alloc replaces the GPU allocation with one sized exactly for n items and
// bumps the generation. A zero-item buffer still allocates one item so the
// handle stays bindable.
func (b *ItemBuffer[T]) alloc(state *State, n int) error {
	size := uint64(max(n, 1)) * uint64(common.SizeOf[T]())
	buf, err := state.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: b.label,
		Size:  size,
		Usage: b.usage,
	})
	if err != nil {
		return fmt.Errorf("failed to allocate %s: %w", b.label, err)
	}
	if b.buffer != nil {
		b.buffer.Release()
	}
	b.buffer = buf
	b.capacity = n
	b.generation++
	return nil
}

// Update uploads items, reallocating first if the count falls outside the
// hysteresis window around the current capacity.
//
// Parameters:
//   - state: the shared GPU handles
//   - items: the new buffer contents
//
// Returns:
//   - error: an error if a required reallocation fails; the old allocation
//     stays valid in that case
func (b *ItemBuffer[T]) Update(state *State, items []T) error {
	if shouldRealloc(b.capacity, len(items)) {
		logger.Sugar.Debugw("reallocating item buffer",
			"label", b.label, "capacity", b.capacity, "items", len(items))
		if err := b.alloc(state, len(items)); err != nil {
			return err
		}
	}
	b.write(state, items)
	return nil
}

func (b *ItemBuffer[T]) write(state *State, items []T) {
	if len(items) > 0 {
		state.Queue.WriteBuffer(b.buffer, 0, common.SliceToBytes(items))
	}
	b.length = len(items)
}

// Buffer returns the current GPU buffer. The handle changes whenever
// Generation does.
func (b *ItemBuffer[T]) Buffer() *wgpu.Buffer {
	return b.buffer
}

// Len returns the number of items in use.
func (b *ItemBuffer[T]) Len() int {
	return b.length
}

// Capacity returns the number of items the current allocation can hold.
func (b *ItemBuffer[T]) Capacity() int {
	return b.capacity
}

// Generation returns the reallocation counter. It increments exactly when
// the underlying buffer handle is replaced.
func (b *ItemBuffer[T]) Generation() uint64 {
	return b.generation
}

// Release frees the GPU allocation.
func (b *ItemBuffer[T]) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}
