package player

import (
	"fmt"
	"testing"

	"github.com/lightswitch/lightswitch/expand"
	"github.com/lightswitch/lightswitch/shader"
	"github.com/lightswitch/lightswitch/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op       string
	variant  shader.Variant
	uniforms shader.Uniforms
	n        int
}

type recorder struct {
	calls []call
	bound shader.Variant
	width float32
	blend BlendMode
	u     shader.Uniforms
}

func (r *recorder) Bind(m *shader.Module) {
	r.bound = m.Variant
	r.calls = append(r.calls, call{op: "bind", variant: m.Variant})
}

func (r *recorder) SetBlend(mode BlendMode) { r.blend = mode }

func (r *recorder) SetLineWidth(px float32) { r.width = px }

func (r *recorder) SetUniforms(u *shader.Uniforms) { r.u = *u }

func (r *recorder) DrawLineStrip(s vertex.Stream) {
	r.calls = append(r.calls, call{op: "strip", variant: r.bound, uniforms: r.u, n: len(s)})
}

func (r *recorder) DrawLines(b expand.Buffers) {
	r.calls = append(r.calls, call{op: "lines", variant: r.bound, uniforms: r.u, n: len(b.Lines)})
}

func (r *recorder) draws() []call {
	var out []call
	for _, c := range r.calls {
		if c.op != "bind" {
			out = append(out, c)
		}
	}
	return out
}

var testStream = vertex.Stream{
	{X: 0.1, Y: 0.1, T: 0, Pressure: 0},
	{X: 0.1, Y: 0.1, T: 0, Pressure: 0.5},
	{X: 0.9, Y: 0.9, T: 1, Pressure: 0.5},
	{X: 0.9, Y: 0.9, T: 1, Pressure: 0},
}

func TestRenderLineStrip(t *testing.T) {
	dev := &recorder{}
	p := New(shader.Load(), dev, "cat", testStream, Options{})

	red := shader.RGBA(1, 0, 0, 1)
	white := shader.RGBA(1, 1, 1, 1)
	p.RenderSetup(red, white, 800, 600)
	p.Reveal(0.5)

	assert.Equal(t, BlendAdditive, dev.blend)
	assert.Equal(t, float32(4), dev.width)

	draws := dev.draws()
	require.Len(t, draws, 1)
	d := draws[0]
	assert.Equal(t, "strip", d.op)
	assert.Equal(t, shader.LineStrip, d.variant)
	assert.Equal(t, 4, d.n)
	assert.Equal(t, float32(0.5), d.uniforms.RenderTime)
	assert.Equal(t, shader.EraseDisabled, d.uniforms.UnrenderTime)
	assert.Equal(t, red, d.uniforms.MainColor)
	assert.Equal(t, white, d.uniforms.TipColor)
	assert.Equal(t, [2]float32{800, 600}, d.uniforms.Viewport)
}

func TestRenderThickLines(t *testing.T) {
	dev := &recorder{}
	p := New(shader.Load(), dev, "cat", testStream, Options{ThickLines: true})

	p.RenderSetup(shader.RGBA(1, 1, 1, 1), shader.RGBA(1, 1, 1, 1), 100, 100)
	p.Render(1.5, 0.25)

	draws := dev.draws()
	require.Len(t, draws, 1)
	assert.Equal(t, "lines", draws[0].op)
	assert.Equal(t, shader.Segments, draws[0].variant)
	assert.Equal(t, 6, draws[0].n)
	assert.Equal(t, float32(0.25), draws[0].uniforms.UnrenderTime)
}

func TestPlayersShareProgram(t *testing.T) {
	program := shader.Load()
	dev := &recorder{}
	a := New(program, dev, "a", testStream, Options{})
	b := New(program, dev, "b", testStream, Options{})

	green := shader.RGBA(0.3, 2, 0.3, 1)
	red := shader.RGBA(2, 0.3, 0.3, 1)
	white := shader.RGBA(1, 1, 1, 1)

	a.RenderSetup(green, white, 800, 600)
	a.Render(1, -1.5)
	b.RenderSetup(red, white, 800, 600)
	b.Render(0.2, shader.EraseDisabled)

	draws := dev.draws()
	require.Len(t, draws, 2)
	assert.Equal(t, green, draws[0].uniforms.MainColor)
	assert.Equal(t, float32(-1.5), draws[0].uniforms.UnrenderTime)
	assert.Equal(t, red, draws[1].uniforms.MainColor)
	assert.Equal(t, float32(0.2), draws[1].uniforms.RenderTime)
}

func TestPlacementMatrix(t *testing.T) {
	tests := []struct {
		pl     Placement
		w, h   float32
		x, y   float32
		cx, cy float32
	}{
		{Identity, 100, 100, 0, 0, -1, -1},
		{Identity, 100, 100, 1, 1, 1, 1},
		{Identity, 200, 100, 0, 0, -0.5, -1},
		{Identity, 200, 100, 0.5, 0.5, 0, 0},
		{Placement{Scale: 0.5, OffsetX: 0.2, OffsetY: -0.4}, 100, 100, 0.5, 0.5, 0.2, -0.4},
		{Placement{Scale: 0.5}, 100, 200, 1, 1, 0.5, 0.25},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			cx, cy := Apply(tt.pl.Matrix(tt.w, tt.h), tt.x, tt.y)
			assert.InDelta(t, tt.cx, cx, 1e-6)
			assert.InDelta(t, tt.cy, cy, 1e-6)
		})
	}
}
