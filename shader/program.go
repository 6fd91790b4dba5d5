// Package shader holds the word picture GPU programs and a CPU rendition of
// their fragment stage.
//
// Both programs share one uniform block and the ink timeline: a vertex with
// normalized time t is hidden until the reveal time R comes within
// render_pre_time of it, shows the tip colour while R passes over it, settles
// into the main colour with pressure as alpha, and fades out again when the
// erase time U sweeps over it.
package shader

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/lightswitch/lightswitch/log"
)

//go:embed shaders/timeline.wgsl
var timelineSource string

//go:embed shaders/line_strip.wgsl
var lineStripSource string

//go:embed shaders/segments.wgsl
var segmentsSource string

// Variant selects how a picture is drawn.
type Variant int

const (
	// LineStrip draws the vertex stream as one connected wide line.
	LineStrip Variant = iota
	// Segments draws expanded segments with a distance field edge.
	Segments
)

func (v Variant) String() string {
	switch v {
	case LineStrip:
		return "line strip"
	case Segments:
		return "segments"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// CompilationError is returned when a program fails to compile. It is
// fatal: there is no degraded rendering mode.
type CompilationError struct {
	Label string
	Err   error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("shader compilation failed (%s): %v", e.Label, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// Module is one compiled program.
type Module struct {
	Variant Variant
	Label   string
	Source  string
	SPIRV   []uint32
}

// Program is the compiled word picture program pair together with its
// uniform state. It is created once at startup and shared by all players.
type Program struct {
	modules  [2]Module
	uniforms Uniforms
}

// Load returns the program with its WGSL sources but without SPIR-V, for
// devices that evaluate the fragment stage themselves.
func Load() *Program {
	p := &Program{uniforms: DefaultUniforms()}
	sources := [...]string{
		LineStrip: lineStripSource,
		Segments:  segmentsSource,
	}
	for v, src := range sources {
		p.modules[v] = Module{
			Variant: Variant(v),
			Label:   Variant(v).String(),
			Source:  timelineSource + "\n" + src,
		}
	}
	return p
}

// Compile builds both variants.
func Compile() (*Program, error) {
	p := Load()
	for v := range p.modules {
		m, err := compileModule(Variant(v), p.modules[v].Source)
		if err != nil {
			return nil, err
		}
		p.modules[v] = m
	}
	return p, nil
}

func compileModule(v Variant, src string) (Module, error) {
	label := v.String()
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return Module{}, &CompilationError{Label: label, Err: err}
	}
	if len(spirvBytes)%4 != 0 {
		return Module{}, &CompilationError{
			Label: label,
			Err:   fmt.Errorf("SPIR-V size %d is not a multiple of 4", len(spirvBytes)),
		}
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	log.Trace.Printf("compiled %s program: %d words", label, len(code))

	return Module{Variant: v, Label: label, Source: src, SPIRV: code}, nil
}

// Module returns the compiled program for v.
func (p *Program) Module(v Variant) *Module {
	return &p.modules[v]
}

// Uniforms returns the shared uniform state. Callers set the fields they
// own before each draw.
func (p *Program) Uniforms() *Uniforms {
	return &p.uniforms
}

// Clone returns a program sharing the compiled modules but with its own
// copy of the uniform state, for drawing from another goroutine.
func (p *Program) Clone() *Program {
	c := *p
	return &c
}
