package player

// Placement positions the unit square in clip space. A zero offset centers
// the picture; Scale 1 makes it span the shorter viewport axis.
type Placement struct {
	Scale   float32
	OffsetX float32
	OffsetY float32
}

// Identity maps the unit square onto the viewport's central square.
var Identity = Placement{Scale: 1}

// Matrix returns the column-major transform for a viewport, keeping the
// picture square.
func (p Placement) Matrix(viewportWidth, viewportHeight float32) [16]float32 {
	sx, sy := 2*p.Scale, 2*p.Scale
	if viewportWidth > 0 && viewportHeight > 0 {
		if viewportWidth > viewportHeight {
			sx *= viewportHeight / viewportWidth
		} else {
			sy *= viewportWidth / viewportHeight
		}
	}
	return [16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		p.OffsetX - sx/2, p.OffsetY - sy/2, 0, 1,
	}
}

// Apply maps a unit square point to clip space.
func Apply(m [16]float32, x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}
