package math

// Plane is ax + by + cz + d = 0 with (a, b, c) as Normal.
// The positive half-space faces the inside of the frustum.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// FrustumPlanes holds the six clip planes of a view volume.
type FrustumPlanes struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// Frustum plane indices.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// ExtractFrustum extracts normalized clip planes from a combined
// projection * view matrix (Gribb/Hartmann).
func ExtractFrustum(m Mat4) FrustumPlanes {
	// Row i of a column-major matrix is m[i], m[4+i], m[8+i], m[12+i].
	row := func(i int) (Vec3, float32) {
		return Vec3{m[i], m[4+i], m[8+i]}, m[12+i]
	}
	r0, d0 := row(0)
	r1, d1 := row(1)
	r2, d2 := row(2)
	r3, d3 := row(3)

	var f FrustumPlanes
	f.Planes[PlaneLeft] = Plane{r3.Add(r0), d3 + d0}
	f.Planes[PlaneRight] = Plane{r3.Sub(r0), d3 - d0}
	f.Planes[PlaneBottom] = Plane{r3.Add(r1), d3 + d1}
	f.Planes[PlaneTop] = Plane{r3.Sub(r1), d3 - d1}
	f.Planes[PlaneNear] = Plane{r3.Add(r2), d3 + d2}
	f.Planes[PlaneFar] = Plane{r3.Sub(r2), d3 - d2}

	for i := range f.Planes {
		p := &f.Planes[i]
		if l := p.Normal.Length(); l > 0 {
			p.Normal = p.Normal.Scale(1 / l)
			p.Distance /= l
		}
	}
	return f
}

// ContainsSphere reports whether a sphere intersects or lies inside the frustum.
func (f FrustumPlanes) ContainsSphere(center Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.Normal.Dot(center)+p.Distance < -radius {
			return false
		}
	}
	return true
}
