package shader

import (
	"honnef.co/go/safeish"
)

// EraseDisabled is an erase time far enough in the past that the erase
// sweep never reaches any vertex.
const EraseDisabled float32 = -10

// Color is a linear RGBA colour. Components may exceed 1 to saturate
// under additive blending.
type Color struct {
	R, G, B, A float32
}

var Transparent Color

func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Mix interpolates linearly from c to o.
func (c Color) Mix(o Color, f float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*f,
		G: c.G + (o.G-c.G)*f,
		B: c.B + (o.B-c.B)*f,
		A: c.A + (o.A-c.A)*f,
	}
}

// Params are the tuned timeline and edge constants.
type Params struct {
	RenderPreTime   float32
	RenderPostTime  float32
	UnrenderPreTime float32
	HalfWidth       float32
	Steepness       float32
}

func DefaultParams() Params {
	return Params{
		RenderPreTime:   0.1,
		RenderPostTime:  0.2,
		UnrenderPreTime: 0.1,
		HalfWidth:       0.005,
		Steepness:       350,
	}
}

// Uniforms mirrors the WGSL uniform block, including its trailing padding.
type Uniforms struct {
	Transform       [16]float32
	MainColor       Color
	TipColor        Color
	Viewport        [2]float32
	RenderTime      float32
	UnrenderTime    float32
	RenderPreTime   float32
	RenderPostTime  float32
	UnrenderPreTime float32
	HalfWidth       float32
	Steepness       float32
	_               [3]float32
}

// UniformSize is the size of the uniform block in bytes.
const UniformSize = 144

// UnitSquare maps [0,1]x[0,1] onto clip space, +y up.
var UnitSquare = [16]float32{
	2, 0, 0, 0,
	0, 2, 0, 0,
	0, 0, 1, 0,
	-1, -1, 0, 1,
}

func DefaultUniforms() Uniforms {
	u := Uniforms{
		Transform:    UnitSquare,
		MainColor:    RGBA(1, 1, 1, 1),
		TipColor:     RGBA(2, 0.3, 0.3, 1),
		UnrenderTime: EraseDisabled,
	}
	u.SetParams(DefaultParams())
	return u
}

func (u *Uniforms) SetParams(p Params) {
	u.RenderPreTime = p.RenderPreTime
	u.RenderPostTime = p.RenderPostTime
	u.UnrenderPreTime = p.UnrenderPreTime
	u.HalfWidth = p.HalfWidth
	u.Steepness = p.Steepness
}

// Bytes returns the uniform block for upload. The result aliases u.
func (u *Uniforms) Bytes() []byte {
	return safeish.AsBytes(u)
}
