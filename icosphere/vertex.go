package icosphere

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the GPU vertex format. Field layout matches the shader's vertex
// inputs exactly; the struct is uploaded by reinterpreting the slice as raw
// bytes, so fields must stay 4-byte aligned with no implicit padding.
type Vertex struct {
	Position  [3]float32
	Normal    [3]float32
	Index     uint32
	TexCoords [2]float32
	TexIdx    uint32
	Tangent   [3]float32
	Bitangent [3]float32
}

// VertexSize is the byte stride of one Vertex.
const VertexSize = 16 * 4

// VertexLayout describes Vertex to the render pipeline, one attribute per
// shader location in declaration order.
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatUint32, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 28, ShaderLocation: 3},
			{Format: wgpu.VertexFormatUint32, Offset: 36, ShaderLocation: 4},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 40, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 52, ShaderLocation: 6},
		},
	}
}

// calcTangent computes the tangent and bitangent of a triangle from its
// positions and texture coordinates, for normal mapping in tangent space.
func calcTangent(p [3]mgl32.Vec3, uv [3]mgl32.Vec2) (mgl32.Vec3, mgl32.Vec3) {
	edge1 := p[1].Sub(p[0])
	edge2 := p[2].Sub(p[0])
	duv1 := uv[1].Sub(uv[0])
	duv2 := uv[2].Sub(uv[0])

	det := duv1.X()*duv2.Y() - duv2.X()*duv1.Y()
	if det == 0 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	f := 1.0 / det

	tangent := edge1.Mul(duv2.Y()).Sub(edge2.Mul(duv1.Y())).Mul(f).Normalize()
	bitangent := edge2.Mul(duv1.X()).Sub(edge1.Mul(duv2.X())).Mul(f).Normalize()
	return tangent, bitangent
}

// EmitVertices writes three vertices per face into dst, which must have
// length 3*len(faces). Faces map to disjoint dst ranges, so callers may split
// a mesh's face slice across goroutines writing into subslices of one shared
// vertex buffer.
func EmitVertices(dst []Vertex, faces []Face) {
	for i := range faces {
		f := &faces[i]
		tangent, bitangent := calcTangent(f.Positions, f.TexCoords)
		for c := 0; c < 3; c++ {
			dst[i*3+c] = Vertex{
				Position:  [3]float32(f.Positions[c]),
				Normal:    [3]float32(f.Normal),
				Index:     f.Index,
				TexCoords: [2]float32(f.TexCoords[c]),
				TexIdx:    f.TexIndex,
				Tangent:   [3]float32(tangent),
				Bitangent: [3]float32(bitangent),
			}
		}
	}
}

// VertexData flattens the mesh into a renderable vertex slice, three vertices
// per face in face order. All three vertices of a face share its flat normal,
// face index, and tangent frame.
func (m *Mesh) VertexData() []Vertex {
	out := make([]Vertex, 3*len(m.faces))
	EmitVertices(out, m.faces)
	return out
}
