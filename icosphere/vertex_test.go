package icosphere

import (
	"testing"
	"unsafe"
)

func TestVertexSize(t *testing.T) {
	if got := unsafe.Sizeof(Vertex{}); got != VertexSize {
		t.Fatalf("Vertex size = %d, want %d", got, VertexSize)
	}
	layout := VertexLayout()
	if layout.ArrayStride != VertexSize {
		t.Errorf("layout stride = %d, want %d", layout.ArrayStride, VertexSize)
	}
	if len(layout.Attributes) != 7 {
		t.Errorf("layout has %d attributes, want 7", len(layout.Attributes))
	}
}

func TestVertexData(t *testing.T) {
	m := Build(1)
	data := m.VertexData()
	if len(data) != 3*m.FaceCount() {
		t.Fatalf("VertexData len = %d, want %d", len(data), 3*m.FaceCount())
	}
	for i, f := range m.Faces() {
		for c := 0; c < 3; c++ {
			v := data[i*3+c]
			if v.Index != f.Index {
				t.Fatalf("vertex %d carries face index %d, want %d", i*3+c, v.Index, f.Index)
			}
			if v.Position != [3]float32(f.Positions[c]) {
				t.Fatalf("vertex %d position mismatch", i*3+c)
			}
			if v.Normal != [3]float32(f.Normal) {
				t.Fatalf("vertex %d does not carry the flat face normal", i*3+c)
			}
			if v.TexIdx != f.TexIndex {
				t.Fatalf("vertex %d TexIdx = %d, want %d", i*3+c, v.TexIdx, f.TexIndex)
			}
		}
		// All three vertices of a face share one tangent frame.
		if data[i*3].Tangent != data[i*3+1].Tangent || data[i*3].Tangent != data[i*3+2].Tangent {
			t.Fatalf("face %d vertices disagree on tangent", f.Index)
		}
	}
}

func TestEmitVerticesChunked(t *testing.T) {
	m := Build(2)
	faces := m.Faces()
	whole := m.VertexData()

	chunked := make([]Vertex, 3*len(faces))
	const chunk = 77
	for start := 0; start < len(faces); start += chunk {
		end := min(start+chunk, len(faces))
		EmitVertices(chunked[start*3:end*3], faces[start:end])
	}

	for i := range whole {
		if whole[i] != chunked[i] {
			t.Fatalf("vertex %d differs between whole and chunked emission", i)
		}
	}
}
