package nav

import (
	"fmt"
	"math"
)

// Mesh answers padded point-in-blocked-area queries against the unioned
// footprint regions. A Mesh is immutable once built; geometry changes are
// handled by constructing a new Mesh and swapping it in, so concurrent
// readers never need locking.
type Mesh struct {
	regions []Region
	padding float64
}

// NewMesh builds the disjoint region set from the given footprints and
// captures the padding applied to every containment query.
func NewMesh(footprints []Footprint, padding float64) (*Mesh, error) {
	if math.IsNaN(padding) || math.IsInf(padding, 0) {
		return nil, fmt.Errorf("%w: non-finite padding %v", ErrInvalidGeometry, padding)
	}
	regions, err := UnionRectangles(footprints)
	if err != nil {
		return nil, err
	}
	return &Mesh{regions: regions, padding: padding}, nil
}

// Contains reports whether the point falls inside any region expanded by the
// mesh padding. The padded boundary itself is open: a point exactly on it is
// not contained, which is what lets a player graze an edge without sticking.
// Non-finite coordinates are a caller bug and are rejected rather than
// classified.
func (m *Mesh) Contains(x, z float64) (bool, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(z) || math.IsInf(z, 0) {
		return false, fmt.Errorf("%w: point (%v, %v)", ErrInvalidQuery, x, z)
	}
	if m == nil {
		return false, nil
	}
	for _, r := range m.regions {
		if x > r.MinX-m.padding && x < r.MaxX+m.padding &&
			z > r.MinZ-m.padding && z < r.MaxZ+m.padding {
			return true, nil
		}
	}
	return false, nil
}

// Regions returns a copy of the disjoint region list.
func (m *Mesh) Regions() []Region {
	if m == nil || len(m.regions) == 0 {
		return nil
	}
	return append([]Region(nil), m.regions...)
}

// Padding reports the query margin captured at construction time.
func (m *Mesh) Padding() float64 {
	if m == nil {
		return 0
	}
	return m.padding
}
