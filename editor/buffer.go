package editor

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pepijnd/planetary/engine/graphics"
	"github.com/pepijnd/planetary/icosphere"
	"github.com/pepijnd/planetary/logger"
)

// emitChunkFaces is the number of faces each vertex emission task handles.
// Deep meshes fan out across the pool; shallow ones stay on one task.
const emitChunkFaces = 2048

// IcoBuffer owns the current mesh and its GPU vertex buffer. Depth changes
// rebuild the mesh and re-emit vertices; the underlying buffer reallocates
// through the hysteresis rules, bumping its generation for the render
// bundles.
type IcoBuffer struct {
	pool worker.DynamicWorkerPool

	mesh     *icosphere.Mesh
	vertices *graphics.ItemBuffer[icosphere.Vertex]
}

// NewIcoBuffer builds the mesh at the given depth and uploads its vertices.
//
// Parameters:
//   - state: the shared GPU handles
//   - depth: initial subdivision depth
//
// Returns:
//   - *IcoBuffer: the buffer
//   - error: an error if the GPU allocation fails
func NewIcoBuffer(state *graphics.State, depth int) (*IcoBuffer, error) {
	b := &IcoBuffer{
		// Queue size covers the deepest practical mesh (81920 faces / chunk).
		pool: worker.NewDynamicWorkerPool(max(runtime.NumCPU()-1, 1), 64, 1*time.Second),
		mesh: icosphere.Build(depth),
	}

	vertices, err := graphics.NewItemBuffer(state, "ico vertices",
		wgpu.BufferUsageVertex, b.emit())
	if err != nil {
		return nil, err
	}
	b.vertices = vertices
	return b, nil
}

// emit flattens the current mesh into vertices, spreading face chunks across
// the worker pool. Chunks write into disjoint ranges of one preallocated
// slice, so no synchronization beyond the barrier is needed.
func (b *IcoBuffer) emit() []icosphere.Vertex {
	faces := b.mesh.Faces()
	out := make([]icosphere.Vertex, 3*len(faces))

	if len(faces) <= emitChunkFaces {
		icosphere.EmitVertices(out, faces)
		return out
	}

	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(faces); start += emitChunkFaces {
		end := min(start+emitChunkFaces, len(faces))
		wg.Add(1)
		s, e := start, end
		id := taskID
		taskID++
		b.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				icosphere.EmitVertices(out[s*3:e*3], faces[s:e])
				return nil, nil
			},
		})
	}
	wg.Wait()
	return out
}

// SetDepth rebuilds the mesh at a new subdivision depth and uploads the new
// vertex data. A no-op when the depth already matches.
//
// Parameters:
//   - state: the shared GPU handles
//   - depth: the new subdivision depth
//
// Returns:
//   - error: an error if the GPU reallocation fails
func (b *IcoBuffer) SetDepth(state *graphics.State, depth int) error {
	if depth == b.mesh.Level() {
		return nil
	}
	b.mesh = icosphere.Build(depth)
	logger.Sugar.Infow("rebuilt mesh", "depth", depth, "faces", b.mesh.FaceCount())
	return b.vertices.Update(state, b.emit())
}

// Mesh returns the current mesh for face lookups.
func (b *IcoBuffer) Mesh() *icosphere.Mesh {
	return b.mesh
}

// Vertices returns the GPU vertex buffer.
func (b *IcoBuffer) Vertices() *graphics.ItemBuffer[icosphere.Vertex] {
	return b.vertices
}

// VertexCount returns the number of vertices to draw.
func (b *IcoBuffer) VertexCount() uint32 {
	return uint32(b.vertices.Len())
}
