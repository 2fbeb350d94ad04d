package icosphere

import (
	"math"
	"testing"
)

func TestFaceCountPerLevel(t *testing.T) {
	tests := []struct {
		depth int
		want  int
	}{
		{0, 20},
		{1, 80},
		{2, 320},
		{3, 1280},
		{4, 5120},
		{5, 20480},
		{6, 81920},
	}
	for _, tt := range tests {
		m := Build(tt.depth)
		if m.Level() != tt.depth {
			t.Errorf("Build(%d).Level() = %d, want %d", tt.depth, m.Level(), tt.depth)
		}
		if m.FaceCount() != tt.want {
			t.Errorf("Build(%d).FaceCount() = %d, want %d", tt.depth, m.FaceCount(), tt.want)
		}
	}
}

func TestDenseIndices(t *testing.T) {
	m := Build(3)
	for i, f := range m.Faces() {
		if f.Index != uint32(i)+1 {
			t.Fatalf("face at slot %d has index %d, want %d", i, f.Index, i+1)
		}
	}
}

func TestFaceLookup(t *testing.T) {
	m := Build(2)
	if got := m.Face(0); got != nil {
		t.Errorf("Face(0) = %v, want nil", got)
	}
	if got := m.Face(uint32(m.FaceCount()) + 1); got != nil {
		t.Errorf("Face(out of range) = %v, want nil", got)
	}
	f := m.Face(37)
	if f == nil {
		t.Fatal("Face(37) = nil, want face")
	}
	if f.Index != 37 {
		t.Errorf("Face(37).Index = %d, want 37", f.Index)
	}
}

func TestBaseSiblings(t *testing.T) {
	m := Base()
	// Face 5 is (0, 10, 11); its edge neighbors in the base table are faces
	// 4, 8 and 1, one per directed edge.
	f := m.Face(5)
	if f == nil {
		t.Fatal("Face(5) = nil")
	}
	want := [3]uint32{4, 8, 1}
	if f.Siblings != want {
		t.Errorf("Face(5).Siblings = %v, want %v", f.Siblings, want)
	}

	// Each declared sibling lists 5 back exactly once.
	for _, s := range f.Siblings {
		sib := m.Face(s)
		if sib == nil {
			t.Fatalf("Face(%d) = nil", s)
		}
		count := 0
		for _, b := range sib.Siblings {
			if b == 5 {
				count++
			}
		}
		if count != 1 {
			t.Errorf("face %d lists 5 as sibling %d times, want 1", s, count)
		}
	}
}

func TestSiblingSymmetry(t *testing.T) {
	for depth := 0; depth <= 6; depth++ {
		m := Build(depth)
		for _, f := range m.Faces() {
			for e, s := range f.Siblings {
				if s == 0 {
					t.Fatalf("depth %d: face %d edge %d has no sibling", depth, f.Index, e)
				}
				if s == f.Index {
					t.Fatalf("depth %d: face %d is its own sibling", depth, f.Index)
				}
				sib := m.Face(s)
				if sib == nil {
					t.Fatalf("depth %d: face %d sibling %d out of range", depth, f.Index, s)
				}
				back := false
				for _, b := range sib.Siblings {
					if b == f.Index {
						back = true
						break
					}
				}
				if !back {
					t.Fatalf("depth %d: face %d lists sibling %d, but %d does not list %d",
						depth, f.Index, s, s, f.Index)
				}
			}
		}
	}
}

func TestSiblingsShareEdge(t *testing.T) {
	m := Build(3)
	for _, f := range m.Faces() {
		for e := 0; e < 3; e++ {
			a, b := f.Corners[e], f.Corners[(e+1)%3]
			sib := m.Face(f.Siblings[e])
			shared := 0
			for _, c := range sib.Corners {
				if c == a || c == b {
					shared++
				}
			}
			if shared != 2 {
				t.Fatalf("face %d edge %d (%d,%d): sibling %d corners %v share %d endpoints, want 2",
					f.Index, e, a, b, sib.Index, sib.Corners, shared)
			}
		}
	}
}

func TestCornerIndexSpace(t *testing.T) {
	for depth := 0; depth <= 4; depth++ {
		m := Build(depth)
		seen := make(map[uint32]bool)
		var maxIdx uint32
		for _, f := range m.Faces() {
			for _, c := range f.Corners {
				seen[c] = true
				if c > maxIdx {
					maxIdx = c
				}
			}
		}
		want := 10*pow4(depth) + 2
		if uint32(len(seen)) != want {
			t.Errorf("depth %d: %d distinct corner indices, want %d", depth, len(seen), want)
		}
		if maxIdx != want-1 {
			t.Errorf("depth %d: max corner index %d, want %d", depth, maxIdx, want-1)
		}
	}
}

func TestSphericalGeometry(t *testing.T) {
	m := Build(2)
	for _, f := range m.Faces() {
		for _, p := range f.Positions {
			if d := math.Abs(float64(p.Len()) - 1.0); d > 1e-5 {
				t.Fatalf("face %d has position %v off the unit sphere by %g", f.Index, p, d)
			}
		}
		if d := math.Abs(float64(f.Normal.Len()) - 1.0); d > 1e-5 {
			t.Fatalf("face %d has non-unit normal %v", f.Index, f.Normal)
		}
		// Outward winding: the flat normal points away from the origin.
		center := f.Positions[0].Add(f.Positions[1]).Add(f.Positions[2]).Mul(1.0 / 3.0)
		if f.Normal.Dot(center) <= 0 {
			t.Fatalf("face %d normal %v points inward", f.Index, f.Normal)
		}
	}
}

func TestTopologyDeterministic(t *testing.T) {
	a := Build(3)
	b := Build(3)
	fa, fb := a.Faces(), b.Faces()
	if len(fa) != len(fb) {
		t.Fatalf("face counts differ: %d vs %d", len(fa), len(fb))
	}
	for i := range fa {
		if fa[i].Corners != fb[i].Corners {
			t.Fatalf("face %d corners differ: %v vs %v", i+1, fa[i].Corners, fb[i].Corners)
		}
		if fa[i].Siblings != fb[i].Siblings {
			t.Fatalf("face %d siblings differ: %v vs %v", i+1, fa[i].Siblings, fb[i].Siblings)
		}
		if fa[i].Positions != fb[i].Positions {
			t.Fatalf("face %d positions differ", i+1)
		}
		if fa[i].TexCoords != fb[i].TexCoords {
			t.Fatalf("face %d tex coords differ", i+1)
		}
	}
}

func TestTexAssignment(t *testing.T) {
	m := Build(2)
	for _, f := range m.Faces() {
		if f.TexIndex >= texPalette {
			t.Fatalf("face %d TexIndex = %d, want < %d", f.Index, f.TexIndex, texPalette)
		}
		for _, uv := range f.TexCoords {
			if uv.X() < 0 || uv.X() > 1 || uv.Y() < 0 || uv.Y() > 1 {
				t.Fatalf("face %d tex coord %v outside [0,1]", f.Index, uv)
			}
		}
	}
}
