package shader

import (
	"math"

	"github.com/lightswitch/lightswitch/vertex"
)

// Phase is the timeline branch a fragment falls into. Exactly one phase
// applies to any time; they are listed from the future to the past.
type Phase int

const (
	// Undrawn: the reveal sweep has not reached the fragment yet.
	Undrawn Phase = iota
	// TipIn: fading in ahead of the reveal time.
	TipIn
	// TipSettle: just drawn, blending from the tip colour into ink.
	TipSettle
	// Ink: steady drawn ink.
	Ink
	// FadeOut: the erase sweep is passing over the fragment.
	FadeOut
	// Erased: the erase sweep has passed.
	Erased
)

var phaseNames = [...]string{"undrawn", "tip-in", "tip-settle", "ink", "fade-out", "erased"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "phase?"
	}
	return phaseNames[p]
}

// Phase selects the timeline branch for time t.
func (u *Uniforms) Phase(t float32) Phase {
	switch {
	case t > u.RenderTime+u.RenderPreTime:
		return Undrawn
	case t > u.RenderTime:
		return TipIn
	case t > u.RenderTime-u.RenderPostTime:
		return TipSettle
	case t > u.UnrenderTime+u.UnrenderPreTime:
		return Ink
	case t > u.UnrenderTime:
		return FadeOut
	}
	return Erased
}

// Shade evaluates the ink timeline the way the fragment stage does.
func (u *Uniforms) Shade(t, pressure float32) Color {
	ink := Color{R: u.MainColor.R, G: u.MainColor.G, B: u.MainColor.B, A: pressure}
	switch u.Phase(t) {
	case TipIn:
		return Transparent.Mix(u.TipColor, (t-u.RenderTime)/u.RenderPreTime)
	case TipSettle:
		return u.TipColor.Mix(ink, (u.RenderTime-t)/u.RenderPostTime)
	case Ink:
		return ink
	case FadeOut:
		return Transparent.Mix(ink, (t-u.UnrenderTime)/u.UnrenderPreTime)
	}
	return Transparent
}

// Coverage is the distance field alpha of point (x, y) for a segment drawn
// with the given pressure. Points beyond the segment ends get zero.
func (u *Uniforms) Coverage(x, y float32, seg vertex.Segment, pressure float32) float32 {
	ax, ay := seg.X2-seg.X1, seg.Y2-seg.Y1
	l := float32(math.Hypot(float64(ax), float64(ay)))

	var nx, ny float32
	if l > 0 {
		nx, ny = -ay/l, ax/l
	}
	offset := nx*seg.X1 + ny*seg.Y1
	dist := float32(math.Abs(float64(nx*x + ny*y - offset)))

	alpha := clamp01(1 - (dist-pressure*u.HalfWidth)*u.Steepness)

	along := (x-seg.X1)*ax + (y-seg.Y1)*ay
	if along < 0 || along > ax*ax+ay*ay {
		return 0
	}
	return alpha
}

// ShadeSegment evaluates the segment program's fragment stage.
func (u *Uniforms) ShadeSegment(x, y, t, pressure float32, seg vertex.Segment) Color {
	c := u.Shade(t, pressure)
	c.A *= u.Coverage(x, y, seg, pressure)
	return c
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
