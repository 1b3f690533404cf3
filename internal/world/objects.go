package world

import "boxwalk/server/internal/nav"

// Object is a static axis-aligned box placed in the level. Position is the
// minimum corner; size extends along +x/+y/+z. Only objects with Clipping set
// contribute to the navmesh; the floor and other decoration never block
// movement.
type Object struct {
	ID       string     `json:"id"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Z        float64    `json:"z"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Depth    float64    `json:"depth"`
	Color    [3]float64 `json:"color"`
	Clipping bool       `json:"clipping"`
}

// Footprint projects the object onto the ground plane, dropping the height
// axis.
func (o Object) Footprint() nav.Footprint {
	return nav.Footprint{
		MinX: o.X,
		MinZ: o.Z,
		MaxX: o.X + o.Width,
		MaxZ: o.Z + o.Depth,
	}
}

// ClippingFootprints collects the ground-plane footprints of every clipping
// object.
func ClippingFootprints(objects []Object) []nav.Footprint {
	var footprints []nav.Footprint
	for _, obj := range objects {
		if !obj.Clipping {
			continue
		}
		footprints = append(footprints, obj.Footprint())
	}
	return footprints
}
