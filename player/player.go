// Package player plays a word picture back through a draw device: it holds
// one vertex stream and draws it as revealed, and optionally erased, at a
// given time.
package player

import (
	"github.com/lightswitch/lightswitch/expand"
	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/shader"
	"github.com/lightswitch/lightswitch/vertex"
)

// BlendMode is the framebuffer blend function.
type BlendMode int

const (
	// BlendAdditive adds src.rgb*src.a to the destination.
	BlendAdditive BlendMode = iota
	// BlendOver is ordinary source-over compositing.
	BlendOver
)

// Device is the drawing surface a Player issues its draw calls to. Draw
// calls use the program and uniforms bound last.
type Device interface {
	Bind(m *shader.Module)
	SetBlend(mode BlendMode)
	SetLineWidth(px float32)
	SetUniforms(u *shader.Uniforms)
	DrawLineStrip(s vertex.Stream)
	DrawLines(b expand.Buffers)
}

// Options selects the draw variant.
type Options struct {
	// ThickLines draws expanded segments with a distance field edge
	// instead of a native wide line strip.
	ThickLines bool
	// LineWidth is the native line width in pixels.
	LineWidth float32
	// HalfWidth is the expander epsilon in unit square coordinates.
	HalfWidth float64
}

func DefaultOptions() Options {
	return Options{LineWidth: 4, HalfWidth: expand.DefaultHalfWidth}
}

// Player owns one word picture. Any number of players may share one
// compiled program; the uniforms set by RenderSetup belong to the program,
// so RenderSetup has to be called again before drawing with other colours.
type Player struct {
	Word string

	program   *shader.Program
	dev       Device
	opts      Options
	stream    vertex.Stream
	lines     expand.Buffers
	placement Placement
}

// New creates a player for stream. The stream is not copied and must not
// be modified afterwards.
func New(program *shader.Program, dev Device, word string, stream vertex.Stream, opts Options) *Player {
	if opts.LineWidth == 0 {
		opts.LineWidth = DefaultOptions().LineWidth
	}
	if opts.HalfWidth == 0 {
		opts.HalfWidth = expand.DefaultHalfWidth
	}
	p := &Player{
		Word:      word,
		program:   program,
		dev:       dev,
		opts:      opts,
		stream:    stream,
		placement: Identity,
	}
	if opts.ThickLines {
		p.lines = expand.ExpandWidth(stream, opts.HalfWidth)
		log.Trace.Printf("%s: expanded %d vertices into %d segments", word, len(stream), p.lines.Segments())
	}
	return p
}

// Stream returns the held vertex stream.
func (p *Player) Stream() vertex.Stream {
	return p.stream
}

func (p *Player) variant() shader.Variant {
	if p.opts.ThickLines {
		return shader.Segments
	}
	return shader.LineStrip
}

// SetPlacement positions the picture for the following Render calls.
func (p *Player) SetPlacement(pl Placement) {
	p.placement = pl
}

// RenderSetup configures the shared draw state for a colour scheme.
func (p *Player) RenderSetup(main, tip shader.Color, viewportWidth, viewportHeight float32) {
	p.dev.Bind(p.program.Module(p.variant()))
	p.dev.SetBlend(BlendAdditive)
	p.dev.SetLineWidth(p.opts.LineWidth)

	u := p.program.Uniforms()
	u.MainColor = main
	u.TipColor = tip
	u.Viewport = [2]float32{viewportWidth, viewportHeight}
}

// Render draws the picture revealed up to reveal. Pass
// shader.EraseDisabled as erase to skip the erase sweep.
func (p *Player) Render(reveal, erase float32) {
	u := p.program.Uniforms()
	u.RenderTime = reveal
	u.UnrenderTime = erase
	u.Transform = p.placement.Matrix(u.Viewport[0], u.Viewport[1])
	p.dev.SetUniforms(u)

	if p.opts.ThickLines {
		p.dev.DrawLines(p.lines)
		return
	}
	p.dev.DrawLineStrip(p.stream)
}

// Reveal draws without erasing.
func (p *Player) Reveal(reveal float32) {
	p.Render(reveal, shader.EraseDisabled)
}
