package nav

import (
	"errors"
	"math"
	"testing"
)

func mustMesh(t *testing.T, footprints []Footprint, padding float64) *Mesh {
	t.Helper()
	mesh, err := NewMesh(footprints, padding)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}
	return mesh
}

func mustContains(t *testing.T, mesh *Mesh, x, z float64) bool {
	t.Helper()
	contained, err := mesh.Contains(x, z)
	if err != nil {
		t.Fatalf("Contains(%v, %v) failed: %v", x, z, err)
	}
	return contained
}

func TestMeshContainsNoPadding(t *testing.T) {
	mesh := mustMesh(t, []Footprint{{MinX: 0, MinZ: 0, MaxX: 2, MaxZ: 2}}, 0)

	for _, tc := range []struct {
		name string
		x, z float64
		want bool
	}{
		{name: "interior", x: 1, z: 1, want: true},
		{name: "outside", x: 3, z: 3, want: false},
		{name: "edge-is-open", x: 2, z: 1, want: false},
		{name: "corner-is-open", x: 0, z: 0, want: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustContains(t, mesh, tc.x, tc.z); got != tc.want {
				t.Fatalf("Contains(%v, %v) = %v, want %v", tc.x, tc.z, got, tc.want)
			}
		})
	}
}

func TestMeshBoundaryOpenness(t *testing.T) {
	const padding = 0.3
	const eps = 1e-6
	mesh := mustMesh(t, []Footprint{{MinX: 0, MinZ: 0, MaxX: 2, MaxZ: 2}}, padding)

	if mustContains(t, mesh, 2+padding, 1) {
		t.Fatalf("point exactly on the padded boundary must not be contained")
	}
	if !mustContains(t, mesh, 2+padding-eps, 1) {
		t.Fatalf("point just inside the padded boundary must be contained")
	}
	if mustContains(t, mesh, -padding, 1) {
		t.Fatalf("point exactly on the padded min boundary must not be contained")
	}
	if !mustContains(t, mesh, -padding+eps, 1) {
		t.Fatalf("point just inside the padded min boundary must be contained")
	}
}

func TestMeshPaddingMonotonic(t *testing.T) {
	footprints := []Footprint{
		{MinX: 0, MinZ: 0, MaxX: 2, MaxZ: 2},
		{MinX: 4, MinZ: 4, MaxX: 5, MaxZ: 5},
	}
	narrow := mustMesh(t, footprints, 0.1)
	wide := mustMesh(t, footprints, 0.5)

	sampleGrid(-2, -2, 7, 7, 0.2, func(x, z float64) {
		if mustContains(t, narrow, x, z) && !mustContains(t, wide, x, z) {
			t.Fatalf("larger padding lost point (%v, %v)", x, z)
		}
	})
}

func TestMeshEmptyAlwaysFree(t *testing.T) {
	mesh := mustMesh(t, nil, 0.3)
	for _, p := range [][2]float64{{0, 0}, {1e9, -1e9}, {-3.5, 7.25}} {
		if mustContains(t, mesh, p[0], p[1]) {
			t.Fatalf("empty mesh must never contain (%v, %v)", p[0], p[1])
		}
	}
	if regions := mesh.Regions(); regions != nil {
		t.Fatalf("expected nil region list, got %v", regions)
	}
}

func TestMeshContainsRejectsNonFinite(t *testing.T) {
	mesh := mustMesh(t, []Footprint{{MinX: 0, MinZ: 0, MaxX: 2, MaxZ: 2}}, 0.3)
	for _, tc := range []struct {
		name string
		x, z float64
	}{
		{name: "nan-x", x: math.NaN(), z: 1},
		{name: "nan-z", x: 1, z: math.NaN()},
		{name: "pos-inf", x: math.Inf(1), z: 1},
		{name: "neg-inf", x: 1, z: math.Inf(-1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			contained, err := mesh.Contains(tc.x, tc.z)
			if !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("expected ErrInvalidQuery, got %v", err)
			}
			if contained {
				t.Fatalf("failed query must not report containment")
			}
		})
	}
}

func TestNewMeshRejectsBadGeometry(t *testing.T) {
	if _, err := NewMesh([]Footprint{{MinX: 2, MinZ: 0, MaxX: 0, MaxZ: 2}}, 0.3); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry for inverted footprint, got %v", err)
	}
	if _, err := NewMesh(nil, math.NaN()); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry for NaN padding, got %v", err)
	}
}

func TestMeshRegionsCopy(t *testing.T) {
	mesh := mustMesh(t, []Footprint{{MinX: 0, MinZ: 0, MaxX: 2, MaxZ: 2}}, 0)
	regions := mesh.Regions()
	regions[0].MaxX = 99

	if mustContains(t, mesh, 50, 1) {
		t.Fatalf("mutating the returned slice must not affect the mesh")
	}
}

func TestNilMeshContains(t *testing.T) {
	var mesh *Mesh
	if mustContains(t, mesh, 1, 1) {
		t.Fatalf("nil mesh must report false")
	}
	if mesh.Padding() != 0 || mesh.Regions() != nil {
		t.Fatalf("nil mesh accessors must be zero-valued")
	}
}
