// Package icosphere builds geodesic sphere meshes by recursively subdividing
// an icosahedron. Faces carry their own corner positions (no shared vertex
// buffer), a flat normal, a per-face texture assignment, and the indices of
// the three faces sharing their edges. Faces reference each other only by
// dense 1-based index into the mesh's face slice; index 0 is reserved as the
// "no face" sentinel used by the selection readback.
package icosphere

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// texPalette is the number of atlas layers a face's TexIndex can select from.
const texPalette = 4

// Face is the atomic mesh unit.
type Face struct {
	// Index is the dense, 1-based face identifier. Never 0.
	Index uint32

	// Corners are indices into the deduplicated edge-midpoint index space.
	// They identify shared sphere points for adjacency resolution only;
	// geometry lives in Positions.
	Corners [3]uint32

	// Positions are the face's own copies of its corner points on the unit
	// sphere, in winding order.
	Positions [3]mgl32.Vec3

	// Normal is the flat face normal computed at creation.
	Normal mgl32.Vec3

	// Siblings holds the index of the face across each edge, one per edge in
	// fixed order: edge 0 is Corners[0]->Corners[1], edge 1 is
	// Corners[1]->Corners[2], edge 2 is Corners[2]->Corners[0]. A value of 0
	// means unresolved, which does not occur in a closed mesh.
	Siblings [3]uint32

	// TexCoords are the per-corner atlas coordinates.
	TexCoords [3]mgl32.Vec2

	// TexIndex selects the atlas layer for this face.
	TexIndex uint32
}

// Mesh is an immutable set of faces at a fixed subdivision level. Build a new
// one to change depth; meshes are never edited in place after construction.
type Mesh struct {
	level int
	faces []Face
}

// baseVertices returns the 12 canonical icosahedron vertices on the unit
// sphere, from the golden-ratio construction.
func baseVertices() [12]mgl32.Vec3 {
	r := float32(1.0+math.Sqrt(5.0)) / 2.0
	s := float32(math.Sqrt(float64(r + 2.0)))
	x := r / s
	z := 1.0 / s
	return [12]mgl32.Vec3{
		{-z, x, 0}, {z, x, 0}, {-z, -x, 0}, {z, -x, 0},
		{0, -z, x}, {0, z, x}, {0, -z, -x}, {0, z, -x},
		{x, 0, -z}, {x, 0, z}, {-x, 0, -z}, {-x, 0, z},
	}
}

// baseFaces returns the 20 icosahedron faces as index triples into the
// 12-vertex table. The winding is hand-ordered so every normal faces outward.
func baseFaces() [20][3]uint32 {
	return [20][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
}

// calcNormal returns the unit normal of the triangle (v1, v2, v3).
func calcNormal(v1, v2, v3 mgl32.Vec3) mgl32.Vec3 {
	u := v2.Sub(v1)
	v := v3.Sub(v1)
	return u.Cross(v).Normalize()
}

// texFromRadius maps an angle to atlas coordinates on the unit circle
// inscribed in the [0,1] texture square, rotated per corner.
func texFromRadius(base float32, corner int) mgl32.Vec2 {
	offset := base + float32(math.Pi)*(2.0/3.0)*float32(corner)
	return mgl32.Vec2{
		float32(math.Cos(float64(offset)))*-0.5 + 0.5,
		float32(math.Sin(float64(offset)))*-0.5 + 0.5,
	}
}

// texCoords derives the three atlas coordinates of a face from a corner-index
// seed, so that coordinates are stable for a given topology.
func texCoords(seed uint32) [3]mgl32.Vec2 {
	base := float32(math.Mod(float64(seed), 2.0*math.Pi))
	return [3]mgl32.Vec2{
		texFromRadius(base, 0),
		texFromRadius(base, 1),
		texFromRadius(base, 2),
	}
}

// Base builds the 20-face icosahedron with full sibling adjacency.
//
// Every face inserts its three directed edges (corner i, corner i+1) into an
// edge-to-face map; siblings are then resolved by looking up the reverse
// directed edge, which finds the face owning that edge in the opposite
// winding. In a closed mesh every lookup succeeds.
//
// Returns:
//   - *Mesh: the level-0 mesh with 20 faces indexed 1..20
func Base() *Mesh {
	vs := baseVertices()
	edges := make(map[[2]uint32]uint32, 60)

	faces := make([]Face, 0, 20)
	for i, c := range baseFaces() {
		index := uint32(i) + 1
		edges[[2]uint32{c[0], c[1]}] = index
		edges[[2]uint32{c[1], c[2]}] = index
		edges[[2]uint32{c[2], c[0]}] = index

		f0, f1, f2 := vs[c[0]], vs[c[1]], vs[c[2]]

		faces = append(faces, Face{
			Index:     index,
			Corners:   c,
			Positions: [3]mgl32.Vec3{f0, f1, f2},
			Normal:    calcNormal(f0, f1, f2),
			TexCoords: texCoords(c[0] + c[1]*c[2]),
			TexIndex:  uint32(rand.IntN(texPalette)),
		})
	}

	for i := range faces {
		c := faces[i].Corners
		faces[i].Siblings = [3]uint32{
			edges[[2]uint32{c[1], c[0]}],
			edges[[2]uint32{c[2], c[1]}],
			edges[[2]uint32{c[0], c[2]}],
		}
	}

	return &Mesh{level: 0, faces: faces}
}

// vertexCount returns the number of distinct sphere points at a subdivision
// level: 10*4^level + 2. Fresh midpoint indices are allocated past this so
// they never collide with corner indices carried over from the parent level.
func vertexCount(level int) uint32 {
	return 10*pow4(level) + 2
}

func pow4(n int) uint32 {
	return uint32(1) << (2 * uint(n))
}

// Subdivide replaces every face with its four geodesic children, recomputing
// adjacency for the new index space. The old face set is discarded entirely.
//
// For a face with corners (c0, c1, c2) the three edge midpoints are
// interpolated at t=0.5 and re-normalized onto the unit sphere. Midpoint
// indices are deduplicated through a canonical (max, min) edge key so the two
// faces bordering an edge agree on the midpoint's identity. Children keep the
// parent's dense numbering: parent n yields 4n-3, 4n-2, 4n-1, 4n.
func (m *Mesh) Subdivide() {
	nextIndex := vertexCount(m.level) - 1 // last index in use at this level
	midpoints := make(map[[2]uint32]uint32, len(m.faces)*3/2)
	edges := make(map[[2]uint32]uint32, len(m.faces)*12)
	children := make([]Face, 0, len(m.faces)*4)

	midpoint := func(a, b uint32) uint32 {
		key := [2]uint32{max(a, b), min(a, b)}
		if j, ok := midpoints[key]; ok {
			return j
		}
		nextIndex++
		midpoints[key] = nextIndex
		return nextIndex
	}

	for i := range m.faces {
		f := &m.faces[i]
		n := f.Index
		c0, c1, c2 := f.Corners[0], f.Corners[1], f.Corners[2]
		f0, f1, f2 := f.Positions[0], f.Positions[1], f.Positions[2]

		// Geodesic, not flat: midpoints are pushed back onto the sphere.
		n0 := lerp(f0, f1, 0.5).Normalize()
		n1 := lerp(f1, f2, 0.5).Normalize()
		n2 := lerp(f2, f0, 0.5).Normalize()

		j0 := midpoint(c0, c1)
		j1 := midpoint(c1, c2)
		j2 := midpoint(c2, c0)

		edges[[2]uint32{j2, c0}] = n*4 - 3
		edges[[2]uint32{c0, j0}] = n*4 - 3
		edges[[2]uint32{j0, j2}] = n*4 - 3

		edges[[2]uint32{j1, c2}] = n*4 - 2
		edges[[2]uint32{c2, j2}] = n*4 - 2
		edges[[2]uint32{j2, j1}] = n*4 - 2

		edges[[2]uint32{j0, c1}] = n*4 - 1
		edges[[2]uint32{c1, j1}] = n*4 - 1
		edges[[2]uint32{j1, j0}] = n*4 - 1

		edges[[2]uint32{j0, j1}] = n * 4
		edges[[2]uint32{j1, j2}] = n * 4
		edges[[2]uint32{j2, j0}] = n * 4

		children = append(children,
			Face{
				Index:     n*4 - 3,
				Corners:   [3]uint32{j2, c0, j0},
				Positions: [3]mgl32.Vec3{n2, f0, n0},
				Normal:    calcNormal(n2, f0, n0),
				TexCoords: texCoords(j2 + c0*j0),
				TexIndex:  uint32(rand.IntN(texPalette)),
			},
			Face{
				Index:     n*4 - 2,
				Corners:   [3]uint32{j1, c2, j2},
				Positions: [3]mgl32.Vec3{n1, f2, n2},
				Normal:    calcNormal(n1, f2, n2),
				TexCoords: texCoords(j1 + c2*j2),
				TexIndex:  uint32(rand.IntN(texPalette)),
			},
			Face{
				Index:     n*4 - 1,
				Corners:   [3]uint32{j0, c1, j1},
				Positions: [3]mgl32.Vec3{n0, f1, n1},
				Normal:    calcNormal(n0, f1, n1),
				TexCoords: texCoords(j0 + c1*j1),
				TexIndex:  uint32(rand.IntN(texPalette)),
			},
			Face{
				Index:     n * 4,
				Corners:   [3]uint32{j0, j1, j2},
				Positions: [3]mgl32.Vec3{n0, n1, n2},
				Normal:    calcNormal(n0, n1, n2),
				TexCoords: texCoords(j0 + j1*j2),
				TexIndex:  uint32(rand.IntN(texPalette)),
			},
		)
	}

	for i := range children {
		c := children[i].Corners
		children[i].Siblings = [3]uint32{
			edges[[2]uint32{c[1], c[0]}],
			edges[[2]uint32{c[2], c[1]}],
			edges[[2]uint32{c[0], c[2]}],
		}
	}

	m.level++
	m.faces = children
}

// Build constructs a mesh at the given subdivision depth. Depth 0 yields the
// base icosahedron. Depth is unconstrained, but values above ~6 produce
// impractically large meshes (20*4^d faces).
//
// Parameters:
//   - depth: number of subdivision passes to apply
//
// Returns:
//   - *Mesh: the subdivided mesh
func Build(depth int) *Mesh {
	m := Base()
	for i := 0; i < depth; i++ {
		m.Subdivide()
	}
	return m
}

// Level returns the mesh's subdivision depth.
func (m *Mesh) Level() int {
	return m.level
}

// FaceCount returns the number of faces: 20*4^level.
func (m *Mesh) FaceCount() int {
	return len(m.faces)
}

// Faces returns the mesh's face slice. The slice is owned by the mesh and
// must not be modified.
func (m *Mesh) Faces() []Face {
	return m.faces
}

// Face looks up a face by its dense 1-based index.
//
// Parameters:
//   - index: the face index; 0 is the reserved "no selection" sentinel
//
// Returns:
//   - *Face: the face, or nil for index 0 or out of range
func (m *Mesh) Face(index uint32) *Face {
	if index == 0 || int(index) > len(m.faces) {
		return nil
	}
	f := &m.faces[index-1]
	if f.Index != index {
		// Dense-index invariant violated; construction bug.
		panic("icosphere: face index mismatch")
	}
	return f
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
