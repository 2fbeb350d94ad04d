package editor

import (
	"runtime"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/pepijnd/planetary/icosphere"
)

// TestEmitMatchesSerial checks that chunked emission across the worker pool
// produces exactly the vertices a single serial pass would. Depth 4 has
// 5120 faces, enough to split into multiple chunks.
func TestEmitMatchesSerial(t *testing.T) {
	mesh := icosphere.Build(4)
	if mesh.FaceCount() <= emitChunkFaces {
		t.Fatalf("depth 4 has %d faces, need more than %d to exercise chunking",
			mesh.FaceCount(), emitChunkFaces)
	}

	b := &IcoBuffer{
		pool: worker.NewDynamicWorkerPool(max(runtime.NumCPU()-1, 1), 64, 1*time.Second),
		mesh: mesh,
	}

	got := b.emit()

	want := make([]icosphere.Vertex, 3*mesh.FaceCount())
	icosphere.EmitVertices(want, mesh.Faces())

	if len(got) != len(want) {
		t.Fatalf("emitted %d vertices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("vertex %d differs: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEmitSmallMeshStaysSerial(t *testing.T) {
	mesh := icosphere.Build(1)
	b := &IcoBuffer{mesh: mesh} // nil pool: the serial path must not touch it

	got := b.emit()
	if len(got) != 3*mesh.FaceCount() {
		t.Fatalf("emitted %d vertices, want %d", len(got), 3*mesh.FaceCount())
	}
}
