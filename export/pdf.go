// Package export writes word pictures as vector PDF pages.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/shader"
	"github.com/lightswitch/lightswitch/vertex"
	"github.com/unidoc/unipdf/v3/contentstream"
	"github.com/unidoc/unipdf/v3/contentstream/draw"
	"github.com/unidoc/unipdf/v3/creator"
)

const (
	// PageSize is the side of a square page in points.
	PageSize = 432
	margin   = 36
	minWidth = 0.25
)

type PdfGeneratorOptions struct {
	Reveal float32
	Erase  float32
	Main   shader.Color
	Tip    shader.Color
	// WidthScale converts pressure to a line width in points.
	WidthScale float64
	AddLabels  bool
}

func DefaultOptions() PdfGeneratorOptions {
	return PdfGeneratorOptions{
		Reveal:     2,
		Erase:      shader.EraseDisabled,
		Main:       shader.RGBA(0, 0, 0, 1),
		Tip:        shader.RGBA(1, 0, 0, 1),
		WidthScale: 3,
		AddLabels:  true,
	}
}

type page struct {
	word   string
	stream vertex.Stream
}

type PdfGenerator struct {
	options PdfGeneratorOptions
	u       shader.Uniforms
	pages   []page
}

func CreatePdfGenerator(options PdfGeneratorOptions) *PdfGenerator {
	u := shader.DefaultUniforms()
	u.MainColor = options.Main
	u.TipColor = options.Tip
	u.RenderTime = options.Reveal
	u.UnrenderTime = options.Erase
	return &PdfGenerator{options: options, u: u}
}

// AddPicture adds one page.
func (p *PdfGenerator) AddPicture(word string, s vertex.Stream) {
	p.pages = append(p.pages, page{word: word, stream: s})
}

// run is a polyline drawn with one colour and width.
type run struct {
	points  []draw.Point
	r, g, b float64
	width   float64
}

func (r *run) same(o run) bool {
	return r.r == o.r && r.g == o.g && r.b == o.b && r.width == o.width
}

// quantize keeps runs long when colours differ only by rounding noise.
func quantize(v float32) float64 {
	return math.Round(float64(min(max(v, 0), 1))*255) / 255
}

// runs splits the stream into visible polylines. Every segment is shaded
// at its midpoint and composited over white.
func (p *PdfGenerator) runs(s vertex.Stream) []run {
	var (
		out []run
		cur *run
	)
	scale := float64(PageSize - 2*margin)
	pt := func(v vertex.Vertex) draw.Point {
		return draw.NewPoint(margin+float64(v.X)*scale, margin+float64(v.Y)*scale)
	}

	for i := 0; i+1 < len(s); i++ {
		v1, v2 := s[i], s[i+1]
		t := (v1.T + v2.T) / 2
		pressure := (v1.Pressure + v2.Pressure) / 2
		c := p.u.Shade(t, pressure)
		a := min(max(c.A, 0), 1)
		if a == 0 || (v1.X == v2.X && v1.Y == v2.Y) {
			cur = nil
			continue
		}

		next := run{
			r:     quantize(c.R*a + 1 - a),
			g:     quantize(c.G*a + 1 - a),
			b:     quantize(c.B*a + 1 - a),
			width: math.Max(minWidth, math.Round(float64(pressure)*p.options.WidthScale*4)/4),
		}
		if cur != nil && cur.same(next) {
			cur.points = append(cur.points, pt(v2))
			continue
		}
		next.points = []draw.Point{pt(v1), pt(v2)}
		out = append(out, next)
		cur = &out[len(out)-1]
	}
	return out
}

func (p *PdfGenerator) build() (*creator.Creator, error) {
	c := creator.New()
	c.SetPageSize(creator.PageSize{PageSize, PageSize})

	for _, pg := range p.pages {
		page := c.NewPage()

		contentCreator := contentstream.NewContentCreator()
		runs := p.runs(pg.stream)
		for _, r := range runs {
			path := draw.NewPath()
			for _, point := range r.points {
				path = path.AppendPoint(point)
			}
			contentCreator.Add_q()
			contentCreator.Add_w(r.width)
			contentCreator.Add_RG(r.r, r.g, r.b)
			draw.DrawPathWithCreator(path, contentCreator)
			contentCreator.Add_S()
			contentCreator.Add_Q()
		}
		if err := page.AppendContentStream(string(contentCreator.Operations().Bytes())); err != nil {
			return nil, err
		}
		log.Trace.Printf("%s: %d runs", pg.word, len(runs))

		if p.options.AddLabels {
			label := c.NewParagraph(pg.word)
			label.SetFontSize(10)
			label.SetPos(margin, PageSize-margin/2)
			if err := c.Draw(label); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// Write writes the document to w.
func (p *PdfGenerator) Write(w io.Writer) error {
	if len(p.pages) == 0 {
		return fmt.Errorf("no pictures to export")
	}
	c, err := p.build()
	if err != nil {
		return err
	}
	return c.Write(w)
}

// Generate writes the document to outputFilePath.
func (p *PdfGenerator) Generate(outputFilePath string) error {
	if len(p.pages) == 0 {
		return fmt.Errorf("no pictures to export")
	}
	c, err := p.build()
	if err != nil {
		return err
	}
	return c.WriteToFile(outputFilePath)
}
