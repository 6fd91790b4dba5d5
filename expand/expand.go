// Package expand turns a normalized vertex stream into discrete line
// segments for the distance field renderer.
package expand

import (
	"github.com/lightswitch/lightswitch/vertex"
	"honnef.co/go/curve"
)

const DefaultHalfWidth = 0.005

// minLength is the segment length below which the direction is not
// normalized.
const minLength = 1e-9

// Buffers is the expander output. Lines holds two vertices per segment,
// Meta holds the raw endpoints of the segment for both of them.
type Buffers struct {
	Lines vertex.Stream
	Meta  []vertex.Segment
}

// Segments returns the number of expanded segments.
func (b Buffers) Segments() int {
	return len(b.Lines) / 2
}

// Expand uses DefaultHalfWidth.
func Expand(s vertex.Stream) Buffers {
	return ExpandWidth(s, DefaultHalfWidth)
}

// ExpandWidth pushes both ends of every segment outward along the segment
// direction by halfWidth so that the line caps cover the antialiased edge.
func ExpandWidth(s vertex.Stream, halfWidth float64) Buffers {
	if len(s) < 2 {
		return Buffers{}
	}

	n := len(s) - 1
	b := Buffers{
		Lines: make(vertex.Stream, 0, 2*n),
		Meta:  make([]vertex.Segment, 0, 2*n),
	}
	for i := 0; i < n; i++ {
		v1, v2 := s[i], s[i+1]
		p1 := curve.Vec(float64(v1.X), float64(v1.Y))
		p2 := curve.Vec(float64(v2.X), float64(v2.Y))

		d := p2.Sub(p1)
		k := halfWidth
		if l := d.Hypot(); l > minLength {
			k = halfWidth / l
		}
		off := d.Mul(k)
		q1 := p1.Sub(off)
		q2 := p2.Add(off)

		b.Lines = append(b.Lines,
			vertex.Vertex{X: float32(q1.X), Y: float32(q1.Y), T: v1.T, Pressure: v1.Pressure},
			vertex.Vertex{X: float32(q2.X), Y: float32(q2.Y), T: v2.T, Pressure: v2.Pressure},
		)
		seg := vertex.Segment{X1: v1.X, Y1: v1.Y, X2: v2.X, Y2: v2.Y}
		b.Meta = append(b.Meta, seg, seg)
	}
	return b
}
