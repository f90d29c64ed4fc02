package renderer

// cubeVertices returns a unit cube centered on the origin as 36 vertices of
// interleaved position (xyz) and normal (xyz).
func cubeVertices() []float32 {
	type face struct {
		normal [3]float32
		u, v   [3]float32 // In-plane axes, u x v = normal
	}
	faces := []face{
		{[3]float32{1, 0, 0}, [3]float32{0, 1, 0}, [3]float32{0, 0, 1}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
		{[3]float32{0, 1, 0}, [3]float32{0, 0, 1}, [3]float32{1, 0, 0}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{0, 0, -1}, [3]float32{0, 1, 0}, [3]float32{1, 0, 0}},
	}
	corners := [6][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, -1}, {1, 1}, {-1, 1}}

	out := make([]float32, 0, 36*6)
	for _, f := range faces {
		for _, c := range corners {
			for k := 0; k < 3; k++ {
				out = append(out, 0.5*(f.normal[k]+c[0]*f.u[k]+c[1]*f.v[k]))
			}
			out = append(out, f.normal[:]...)
		}
	}
	return out
}

// quadVertices returns the unit square [0,1]x[0,1] in fan/loop order.
func quadVertices() []float32 {
	return []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	}
}
