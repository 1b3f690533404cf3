package nav

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidGeometry reports a footprint whose extents are malformed.
	ErrInvalidGeometry = errors.New("nav: invalid geometry")
	// ErrInvalidQuery reports a containment query with non-finite coordinates.
	ErrInvalidQuery = errors.New("nav: invalid query")
)

// Footprint is an obstacle's axis-aligned ground-plane extent. The height
// axis is already dropped by the caller; only x/z survive the projection.
type Footprint struct {
	MinX float64 `json:"minX"`
	MinZ float64 `json:"minZ"`
	MaxX float64 `json:"maxX"`
	MaxZ float64 `json:"maxZ"`
}

// Region is one rectangle of the unioned walk-blocking area. Regions produced
// by UnionRectangles never overlap in area, though they may share edges.
type Region struct {
	MinX float64 `json:"minX"`
	MinZ float64 `json:"minZ"`
	MaxX float64 `json:"maxX"`
	MaxZ float64 `json:"maxZ"`
}

// Interval is a one-dimensional extent used while merging slab coverage.
type Interval struct {
	Start float64
	End   float64
}

// Validate rejects footprints with inverted or non-finite extents. Zero-area
// footprints are legal; they simply contribute nothing to the union.
func (f Footprint) Validate() error {
	for _, v := range [4]float64{f.MinX, f.MinZ, f.MaxX, f.MaxZ} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite footprint %+v", ErrInvalidGeometry, f)
		}
	}
	if f.MinX > f.MaxX || f.MinZ > f.MaxZ {
		return fmt.Errorf("%w: inverted footprint %+v", ErrInvalidGeometry, f)
	}
	return nil
}
