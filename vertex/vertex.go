// Package vertex defines the normalized vertex stream shared by the
// archive, the geometry expander and the picture player.
package vertex

import (
	"math"

	"honnef.co/go/safeish"
)

// Size is the encoded size of one Vertex in bytes.
const Size = 16

// Vertex is a normalized pen sample: position in the unit square, time in
// [0, 1] and pressure in [0, 1]. Zero pressure marks a pen-up vertex.
type Vertex struct {
	X        float32
	Y        float32
	T        float32
	Pressure float32
}

// Stream is a fixed-stride vertex array. It is not modified after
// construction.
type Stream []Vertex

// Bytes returns the stream memory as bytes in host order, suitable for a
// vertex buffer upload. The result aliases the stream.
func (s Stream) Bytes() []byte {
	if len(s) == 0 {
		return nil
	}
	return safeish.SliceCast[[]byte](s)
}

// Equal reports whether both streams hold the same bits.
func (s Stream) Equal(o Stream) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		a, b := s[i], o[i]
		if math.Float32bits(a.X) != math.Float32bits(b.X) ||
			math.Float32bits(a.Y) != math.Float32bits(b.Y) ||
			math.Float32bits(a.T) != math.Float32bits(b.T) ||
			math.Float32bits(a.Pressure) != math.Float32bits(b.Pressure) {
			return false
		}
	}
	return true
}

// Rect is an axis aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

func (r Rect) Width() float32  { return r.MaxX - r.MinX }
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Bounds returns the bounding box of all vertices.
func (s Stream) Bounds() Rect {
	if len(s) == 0 {
		return Rect{}
	}
	r := Rect{MinX: s[0].X, MinY: s[0].Y, MaxX: s[0].X, MaxY: s[0].Y}
	for _, v := range s[1:] {
		r.MinX = min(r.MinX, v.X)
		r.MinY = min(r.MinY, v.Y)
		r.MaxX = max(r.MaxX, v.X)
		r.MaxY = max(r.MaxY, v.Y)
	}
	return r
}

// PenUps counts the zero pressure vertices.
func (s Stream) PenUps() int {
	n := 0
	for _, v := range s {
		if v.Pressure == 0 {
			n++
		}
	}
	return n
}

// Segment carries the raw endpoints of one expanded line segment.
type Segment struct {
	X1, Y1 float32
	X2, Y2 float32
}
