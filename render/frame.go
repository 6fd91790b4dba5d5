package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lightswitch/lightswitch/player"
	"github.com/lightswitch/lightswitch/shader"
	"github.com/lightswitch/lightswitch/vertex"
	"github.com/nfnt/resize"
)

var (
	Background = shader.RGBA(0.2, 0.2, 0.2, 1)
	Ink        = shader.RGBA(1, 1, 1, 1)
	Tip        = shader.RGBA(2, 0.3, 0.3, 1)
)

// FrameOptions describes a single picture frame.
type FrameOptions struct {
	Size       int
	Reveal     float32
	Erase      float32
	Main, Tip  shader.Color
	Background shader.Color
	Player     player.Options
}

// DefaultFrameOptions shows the fully revealed picture.
func DefaultFrameOptions(size int) FrameOptions {
	return FrameOptions{
		Size:       size,
		Reveal:     2,
		Erase:      shader.EraseDisabled,
		Main:       Ink,
		Tip:        Tip,
		Background: Background,
		Player:     player.DefaultOptions(),
	}
}

// Frame renders one picture into a square image. The uniforms of program
// are not touched, so frames may be rendered concurrently.
func Frame(program *shader.Program, word string, s vertex.Stream, o FrameOptions) *image.RGBA {
	dev := NewDevice(o.Size, o.Size)
	dev.Clear(o.Background)

	p := player.New(program.Clone(), dev, word, s, o.Player)
	p.RenderSetup(o.Main, o.Tip, float32(o.Size), float32(o.Size))
	p.Render(o.Reveal, o.Erase)
	return dev.Image()
}

// Picture is one contact sheet cell.
type Picture struct {
	Word   string
	Stream vertex.Stream
}

// Sheet renders pictures at full size and scales them down into a grid of
// cell sized thumbnails.
func Sheet(program *shader.Program, pictures []Picture, cell, columns, renderSize int) *image.RGBA {
	if columns <= 0 {
		columns = 1
	}
	rows := (len(pictures) + columns - 1) / columns
	sheet := image.NewRGBA(image.Rect(0, 0, columns*cell, max(rows, 1)*cell))
	draw.Draw(sheet, sheet.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	o := DefaultFrameOptions(renderSize)
	for i, pic := range pictures {
		full := Frame(program, pic.Word, pic.Stream, o)
		thumb := resize.Resize(uint(cell), uint(cell), full, resize.Lanczos3)

		at := image.Pt((i%columns)*cell, (i/columns)*cell)
		draw.Draw(sheet, image.Rectangle{Min: at, Max: at.Add(image.Pt(cell, cell))}, thumb, thumb.Bounds().Min, draw.Src)
	}
	return sheet
}
