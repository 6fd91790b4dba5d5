// Package render is a software implementation of the picture draw device.
// It rasterizes into a floating point framebuffer so that additive blending
// can exceed full intensity before the final conversion to 8-bit colour.
package render

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/lightswitch/lightswitch/expand"
	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/player"
	"github.com/lightswitch/lightswitch/shader"
	"github.com/lightswitch/lightswitch/vertex"
)

// maxPieces bounds the subdivision of one line strip segment.
const maxPieces = 16

// Device draws into an in-memory framebuffer.
type Device struct {
	width, height int
	fb            []float32
	layer         *gg.Pixmap

	variant   shader.Variant
	blend     player.BlendMode
	lineWidth float32
	u         shader.Uniforms
}

var _ player.Device = (*Device)(nil)

func NewDevice(width, height int) *Device {
	return &Device{
		width:     width,
		height:    height,
		fb:        make([]float32, width*height*4),
		layer:     gg.NewPixmap(width, height),
		lineWidth: 1,
		u:         shader.DefaultUniforms(),
	}
}

func (d *Device) Width() int  { return d.width }
func (d *Device) Height() int { return d.height }

// Clear fills the framebuffer with c.
func (d *Device) Clear(c shader.Color) {
	for i := 0; i < len(d.fb); i += 4 {
		d.fb[i+0] = c.R
		d.fb[i+1] = c.G
		d.fb[i+2] = c.B
		d.fb[i+3] = c.A
	}
}

func (d *Device) Bind(m *shader.Module) {
	d.variant = m.Variant
}

func (d *Device) SetBlend(mode player.BlendMode) {
	d.blend = mode
}

func (d *Device) SetLineWidth(px float32) {
	d.lineWidth = px
}

func (d *Device) SetUniforms(u *shader.Uniforms) {
	d.u = *u
}

// toPixel maps a unit square point through the bound transform to pixel
// coordinates, +y down.
func (d *Device) toPixel(x, y float32) (float64, float64) {
	cx, cy := player.Apply(d.u.Transform, x, y)
	px := (float64(cx) + 1) / 2 * float64(d.width)
	py := (1 - float64(cy)) / 2 * float64(d.height)
	return px, py
}

// toUnit is the inverse of toPixel.
func (d *Device) toUnit(px, py float64) (float32, float32, bool) {
	m := d.u.Transform
	cx := float32(px/float64(d.width)*2 - 1)
	cy := float32(1 - py/float64(d.height)*2)
	det := m[0]*m[5] - m[4]*m[1]
	if det == 0 {
		return 0, 0, false
	}
	rx, ry := cx-m[12], cy-m[13]
	return (m[5]*rx - m[4]*ry) / det, (m[0]*ry - m[1]*rx) / det, true
}

func (d *Device) composite(i int, c shader.Color) {
	if c.A <= 0 {
		return
	}
	switch d.blend {
	case player.BlendAdditive:
		d.fb[i+0] += c.R * c.A
		d.fb[i+1] += c.G * c.A
		d.fb[i+2] += c.B * c.A
		d.fb[i+3] += c.A * c.A
	case player.BlendOver:
		a := min(c.A, 1)
		d.fb[i+0] = c.R*a + d.fb[i+0]*(1-a)
		d.fb[i+1] = c.G*a + d.fb[i+1]*(1-a)
		d.fb[i+2] = c.B*a + d.fb[i+2]*(1-a)
		d.fb[i+3] = a + d.fb[i+3]*(1-a)
	}
}

// DrawLineStrip draws the stream as a connected wide line. Every segment
// is split into pieces shaded at their midpoint time and pressure.
func (d *Device) DrawLineStrip(s vertex.Stream) {
	if len(s) < 2 {
		return
	}

	d.layer.Clear(gg.Transparent)
	layer := gg.NewContext(d.width, d.height, gg.WithPixmap(d.layer))
	defer layer.Close()
	layer.SetLineWidth(float64(d.lineWidth))
	layer.SetLineCap(gg.LineCapRound)

	drawn := 0
	for i := 0; i < len(s)-1; i++ {
		v1, v2 := s[i], s[i+1]
		x1, y1 := d.toPixel(v1.X, v1.Y)
		x2, y2 := d.toPixel(v2.X, v2.Y)
		l := math.Hypot(x2-x1, y2-y1)
		if l == 0 {
			continue
		}
		pieces := int(math.Ceil(l / float64(max(d.lineWidth, 1))))
		pieces = max(1, min(pieces, maxPieces))

		for k := 0; k < pieces; k++ {
			f0 := float64(k) / float64(pieces)
			f1 := float64(k+1) / float64(pieces)
			fm := float32((f0 + f1) / 2)
			c := d.u.Shade(v1.T+(v2.T-v1.T)*fm, v1.Pressure+(v2.Pressure-v1.Pressure)*fm)
			if c.A <= 0 {
				continue
			}
			layer.SetRGBA(float64(c.R), float64(c.G), float64(c.B), float64(c.A))
			layer.DrawLine(x1+(x2-x1)*f0, y1+(y2-y1)*f0, x1+(x2-x1)*f1, y1+(y2-y1)*f1)
			if err := layer.Stroke(); err != nil {
				log.Error.Printf("stroke: %v", err)
				return
			}
			drawn++
		}
	}
	if drawn == 0 {
		return
	}

	if err := layer.FlushGPU(); err != nil {
		log.Error.Printf("flush: %v", err)
		return
	}
	d.compositeLayer(d.layer.Data())
}

// compositeLayer blends a layer of straight alpha RGBA bytes into the
// framebuffer.
func (d *Device) compositeLayer(pix []uint8) {
	for i := 0; i+3 < len(pix) && i < len(d.fb); i += 4 {
		if pix[i+3] == 0 {
			continue
		}
		d.composite(i, shader.Color{
			R: float32(pix[i+0]) / 255,
			G: float32(pix[i+1]) / 255,
			B: float32(pix[i+2]) / 255,
			A: float32(pix[i+3]) / 255,
		})
	}
}

// DrawLines shades the pixels around every expanded segment with the
// distance field of its unexpanded centerline.
func (d *Device) DrawLines(b expand.Buffers) {
	for i := 0; i+1 < len(b.Lines); i += 2 {
		v1, v2 := b.Lines[i], b.Lines[i+1]
		seg := b.Meta[i]
		if seg.X1 == seg.X2 && seg.Y1 == seg.Y2 {
			continue
		}
		d.drawSegment(v1, v2, seg)
	}
}

func (d *Device) drawSegment(v1, v2 vertex.Vertex, seg vertex.Segment) {
	reach := max(v1.Pressure, v2.Pressure)*d.u.HalfWidth + 1/d.u.Steepness

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, c := range [][2]float32{
		{min(v1.X, v2.X) - reach, min(v1.Y, v2.Y) - reach},
		{max(v1.X, v2.X) + reach, min(v1.Y, v2.Y) - reach},
		{min(v1.X, v2.X) - reach, max(v1.Y, v2.Y) + reach},
		{max(v1.X, v2.X) + reach, max(v1.Y, v2.Y) + reach},
	} {
		px, py := d.toPixel(c[0], c[1])
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}
	x0 := max(0, int(math.Floor(minX)))
	x1 := min(d.width-1, int(math.Ceil(maxX)))
	y0 := max(0, int(math.Floor(minY)))
	y1 := min(d.height-1, int(math.Ceil(maxY)))

	ax, ay := v2.X-v1.X, v2.Y-v1.Y
	l2 := ax*ax + ay*ay

	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			x, y, ok := d.toUnit(float64(px)+0.5, float64(py)+0.5)
			if !ok {
				return
			}
			var f float32
			if l2 > 0 {
				f = min(1, max(0, ((x-v1.X)*ax+(y-v1.Y)*ay)/l2))
			}
			t := v1.T + (v2.T-v1.T)*f
			p := v1.Pressure + (v2.Pressure-v1.Pressure)*f
			d.composite((py*d.width+px)*4, d.u.ShadeSegment(x, y, t, p, seg))
		}
	}
}

// At returns the framebuffer colour of a pixel, unclamped.
func (d *Device) At(x, y int) shader.Color {
	i := (y*d.width + x) * 4
	return shader.Color{R: d.fb[i], G: d.fb[i+1], B: d.fb[i+2], A: d.fb[i+3]}
}

// Image converts the framebuffer to 8-bit colour.
func (d *Device) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	for i, v := range d.fb {
		img.Pix[i] = uint8(math.Round(float64(min(max(v, 0), 1)) * 255))
	}
	return img
}
