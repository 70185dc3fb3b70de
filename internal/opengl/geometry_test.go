package opengl

import (
	"testing"
)

func TestNewUVSphereCounts(t *testing.T) {
	const rings, segments = 8, 12
	m := NewUVSphere(rings, segments)

	wantVerts := (rings + 1) * (segments + 1)
	if len(m.Vertices) != wantVerts {
		t.Errorf("expected %d vertices, got %d", wantVerts, len(m.Vertices))
	}
	wantIndices := rings * segments * 6
	if len(m.Indices) != wantIndices {
		t.Errorf("expected %d indices, got %d", wantIndices, len(m.Indices))
	}
}

func TestNewUVSphereUnitRadius(t *testing.T) {
	m := NewUVSphere(6, 10)
	for i, v := range m.Vertices {
		if r := v.Position.Len(); r < 0.9999 || r > 1.0001 {
			t.Errorf("vertex %d: |position| = %v, want 1", i, r)
		}
		if v.Normal != v.Position {
			t.Errorf("vertex %d: normal %v should equal position %v on a unit sphere", i, v.Normal, v.Position)
		}
	}
}

func TestNewUVSphereIndicesInRange(t *testing.T) {
	m := NewUVSphere(4, 6)
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			t.Errorf("index %d: %d out of range (%d vertices)", i, idx, n)
		}
	}
}

func TestNewUVSphereUVRange(t *testing.T) {
	m := NewUVSphere(4, 6)
	for i, v := range m.Vertices {
		if v.UV[0] < 0 || v.UV[0] > 1 || v.UV[1] < 0 || v.UV[1] > 1 {
			t.Errorf("vertex %d: UV %v outside [0,1]", i, v.UV)
		}
	}
}

func TestNewUVSpherePoles(t *testing.T) {
	m := NewUVSphere(4, 6)
	top := m.Vertices[0].Position
	if top[1] < 0.9999 {
		t.Errorf("first ring should sit at the north pole, got %v", top)
	}
	bottom := m.Vertices[len(m.Vertices)-1].Position
	if bottom[1] > -0.9999 {
		t.Errorf("last ring should sit at the south pole, got %v", bottom)
	}
}
