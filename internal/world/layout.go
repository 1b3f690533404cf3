package world

// DefaultObjects reproduces the demo level: a large non-clipping floor, a
// green cube, and a red pillar standing in for the old cylinder prop.
func DefaultObjects() []Object {
	return []Object{
		{
			ID:    "floor",
			X:     -15,
			Y:     -1.1,
			Z:     -15,
			Width: 30, Height: 0.1, Depth: 30,
			Color: [3]float64{0.1, 0.1, 0.1},
		},
		{
			ID:    "cube",
			X:     -10,
			Y:     -1,
			Z:     -10,
			Width: 5, Height: 5, Depth: 5,
			Color:    [3]float64{0, 0.2, 0},
			Clipping: true,
		},
		{
			ID:    "pillar",
			X:     5,
			Y:     -1,
			Z:     5,
			Width: 2, Height: 3, Depth: 2,
			Color:    [3]float64{0.5, 0, 0},
			Clipping: true,
		},
	}
}
